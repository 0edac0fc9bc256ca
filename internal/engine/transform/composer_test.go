package transform

import (
	gomath "math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/cassini/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestComposeFrameIdentityView(t *testing.T) {
	c := DefaultComposer()
	f := c.ComposeFrame(math.Identity())

	want := c.Projection().
		Mul(math.Translate(0, 0, -5)).
		Mul(math.RotateAxis(math.Vec3{X: 0.707, Y: 0.707}, 0.7))
	if diff := cmp.Diff(want, f.MVP, approx); diff != "" {
		t.Errorf("MVP mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(math.Identity(), f.Normal, approx); diff != "" {
		t.Errorf("Normal matrix for identity view should be identity (-want +got):\n%s", diff)
	}
}

func TestComposeFrameOrigin(t *testing.T) {
	// The origin only feels the translation: z = -5 maps to 5/17 in clip space.
	f := DefaultComposer().ComposeFrame(math.Identity())
	got := f.MVP.TransformPoint([3]float32{0, 0, 0})
	want := [3]float32{0, 0, 5.0 / 17}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("origin mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeFrameRotatedView(t *testing.T) {
	// A quarter turn around Z sends +X to +Y. The fixed tilt then moves +Y
	// to (t/2, cos 0.7 + t/2, sin 0.7 / sqrt 2) with t = 1 - cos 0.7, the
	// translation pushes it to z - 5 and the [-17, 17] cube scales by 1/17
	// with z flipped.
	view := math.RotateAxis(math.Vec3{Z: 1}, gomath.Pi/2)
	f := DefaultComposer().ComposeFrame(view)

	got := f.MVP.TransformPoint([3]float32{1, 0, 0})
	want := [3]float32{0.0069164, 0.0519071, 0.2673217}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("rotated point mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeFrameOrderSensitive(t *testing.T) {
	c := DefaultComposer()
	view := math.RotateAxis(math.Vec3{X: 1, Y: -2, Z: 0.5}, 1.3)
	f := c.ComposeFrame(view)

	rotation := math.RotateAxis(c.RotationAxis, c.RotationAngle)
	translation := math.Translate(0, 0, -5)
	projection := c.Projection()

	reordered := []struct {
		name string
		m    math.Mat4
	}{
		{"rotation after translation", projection.Mul(rotation.Mul(translation.Mul(view)))},
		{"view before rotation", projection.Mul(translation.Mul(view.Mul(rotation)))},
	}
	for _, r := range reordered {
		if cmp.Equal(r.m, f.MVP, approx) {
			t.Errorf("%s produced the same MVP; composition order is not being checked", r.name)
		}
	}
}

func TestComposeFrameNormalMatrix(t *testing.T) {
	view := math.Translate(1, 2, 3).Mul(math.RotateAxis(math.Vec3{Y: 1}, 0.5))
	f := DefaultComposer().ComposeFrame(view)

	// The rotation part stays; the inverse translation lands in the bottom row.
	c, s := float32(gomath.Cos(0.5)), float32(gomath.Sin(0.5))
	want := math.Mat4{
		c, 0, -s, -(c - 3*s),
		0, 1, 0, -2,
		s, 0, c, -(s + 3*c),
		0, 0, 0, 1,
	}
	if diff := cmp.Diff(want, f.Normal, approx); diff != "" {
		t.Errorf("Normal matrix mismatch (-want +got):\n%s", diff)
	}

	// For a pure rotation the inverse-transpose is the rotation itself.
	rot := math.RotateAxis(math.Vec3{X: 1, Y: 1, Z: 1}, 2.1)
	f = DefaultComposer().ComposeFrame(rot)
	if diff := cmp.Diff(rot, f.Normal, approx); diff != "" {
		t.Errorf("Normal of rotation view mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeFramePure(t *testing.T) {
	c := DefaultComposer()
	view := math.RotateAxis(math.Vec3{Z: 1}, 0.25)
	a := c.ComposeFrame(view)
	c.ComposeFrame(math.RotateAxis(math.Vec3{X: 1}, 2))
	b := c.ComposeFrame(view)
	if a != b {
		t.Error("ComposeFrame depends on earlier calls")
	}
}
