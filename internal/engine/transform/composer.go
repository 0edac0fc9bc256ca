// Package transform builds the per-frame matrices handed to the surface shader.
package transform

import (
	"github.com/Faultbox/cassini/pkg/math"
)

// Composer holds the fixed parts of the frame transform. The view matrix is
// supplied on every call.
type Composer struct {
	ProjVal       float32   // half-extent of the orthographic view cube
	RotationAxis  math.Vec3 // fixed model rotation axis (normalized on use)
	RotationAngle float32   // fixed model rotation, radians
	Translation   math.Vec3 // fixed model offset
}

// Frame is the result of composing one frame.
type Frame struct {
	MVP    math.Mat4 // projection * translation * rotation * view
	Normal math.Mat4 // transpose(inverse(view))
}

// DefaultComposer returns the reference view: a [-17, 17] ortho cube, a 0.7 rad
// tilt around (0.707, 0.707, 0) and a -5 push along z.
func DefaultComposer() Composer {
	return Composer{
		ProjVal:       17,
		RotationAxis:  math.Vec3{X: 0.707, Y: 0.707, Z: 0},
		RotationAngle: 0.7,
		Translation:   math.Vec3{X: 0, Y: 0, Z: -5},
	}
}

// Projection returns the orthographic projection.
func (c Composer) Projection() math.Mat4 {
	return math.OrthoCube(c.ProjVal)
}

// ComposeFrame combines view with the fixed transforms. It has no state and
// must be called again whenever view changes.
//
// Operand order matters: in a.Mul(b), b is applied first.
func (c Composer) ComposeFrame(view math.Mat4) Frame {
	projection := c.Projection()
	rotation := math.RotateAxis(c.RotationAxis, c.RotationAngle)
	translation := math.Translate(c.Translation.X, c.Translation.Y, c.Translation.Z)

	accum0 := rotation.Mul(view)
	accum1 := translation.Mul(accum0)

	return Frame{
		MVP:    projection.Mul(accum1),
		Normal: view.Inverse().Transpose(),
	}
}
