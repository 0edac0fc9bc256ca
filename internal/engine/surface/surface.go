// Package surface evaluates parametric surfaces and estimates their normals.
package surface

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the forward-difference step used by EstimateNormal.
const Epsilon = 1e-4

// minNormalLength is the length below which a normal collapses to zero.
const minNormalLength = 1e-5

// Func maps a parameter pair (u, z) to a point in space.
type Func interface {
	Point(u, z float64) r3.Vec
}

// EstimateNormal returns the unit normal of f at (u, z) using forward
// differences along both parameters. Degenerate tangents give the zero
// vector; NaN tangents give a NaN normal.
func EstimateNormal(f Func, u, z float64) r3.Vec {
	p := f.Point(u, z)
	dU := r3.Scale(1/Epsilon, r3.Sub(p, f.Point(u+Epsilon, z)))
	dZ := r3.Scale(1/Epsilon, r3.Sub(p, f.Point(u, z+Epsilon)))
	return normalize(r3.Cross(dU, dZ))
}

func normalize(v r3.Vec) r3.Vec {
	l := r3.Norm(v)
	// NaN fails this comparison and falls through to the division.
	if l <= minNormalLength {
		return r3.Vec{}
	}
	return r3.Scale(1/l, v)
}
