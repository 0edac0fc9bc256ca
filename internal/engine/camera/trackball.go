// Package camera provides the trackball that owns the user's view orientation.
package camera

import (
	gomath "math"

	"github.com/Faultbox/cassini/pkg/math"
)

// minDragAngle is the smallest rotation a drag step applies, in radians.
const minDragAngle = 1e-6

// Trackball turns pointer drags into rotations of a virtual sphere that fills
// the viewport. The view matrix is a pure rotation (the view distance is 0).
type Trackball struct {
	width, height int

	orientation math.Quat
	dragging    bool
	last        math.Vec3 // previous drag point on the sphere
}

// NewTrackball creates a trackball for a viewport of the given size.
func NewTrackball(width, height int) *Trackball {
	return &Trackball{
		width:       width,
		height:      height,
		orientation: math.QuatIdentity(),
	}
}

// Resize updates the viewport the sphere is fitted to.
func (t *Trackball) Resize(width, height int) {
	t.width = width
	t.height = height
}

// Begin starts a drag at window coordinates (x, y).
func (t *Trackball) Begin(x, y int) {
	t.dragging = true
	t.last = t.project(x, y)
}

// Drag continues a drag and reports whether the orientation changed.
func (t *Trackball) Drag(x, y int) bool {
	if !t.dragging {
		return false
	}

	cur := t.project(x, y)
	axis := t.last.Cross(cur)
	dot := t.last.Dot(cur)
	angle := float32(gomath.Atan2(float64(axis.Length()), float64(dot)))
	if angle < minDragAngle {
		return false
	}

	t.orientation = math.QuatFromAxisAngle(axis, angle).Mul(t.orientation).Normalize()
	t.last = cur
	return true
}

// End finishes the current drag.
func (t *Trackball) End() {
	t.dragging = false
}

// Dragging reports whether a drag is in progress.
func (t *Trackball) Dragging() bool {
	return t.dragging
}

// Reset restores the initial orientation.
func (t *Trackball) Reset() {
	t.orientation = math.QuatIdentity()
	t.dragging = false
}

// ViewMatrix returns the current view rotation.
func (t *Trackball) ViewMatrix() math.Mat4 {
	return t.orientation.ToMat4()
}

// project maps window coordinates onto the unit sphere centered in the
// square that fits the viewport. Points outside the sphere's silhouette
// are pulled onto its rim.
func (t *Trackball) project(x, y int) math.Vec3 {
	size := float32(min(t.width, t.height))
	if size <= 0 {
		return math.Vec3{Z: 1}
	}
	half := size / 2
	p := math.Vec3{
		X: (float32(x) - float32(t.width)/2) / half,
		Y: (float32(t.height)/2 - float32(y)) / half,
	}

	d2 := p.X*p.X + p.Y*p.Y
	if d2 >= 1 {
		return p.Normalize()
	}
	p.Z = float32(gomath.Sqrt(float64(1 - d2)))
	return p
}
