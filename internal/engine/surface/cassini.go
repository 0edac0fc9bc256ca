package surface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cassini is the surface swept by Cassini ovals whose focal distance grows
// linearly with height: at height z the cross-section is the oval with
// shape constant A and focal parameter c(z) = K*z.
type Cassini struct {
	A     float64 // shape constant
	K     float64 // focal scale per unit of z
	Scale float64 // uniform display scale applied to every component
}

// DefaultCassini returns the reference surface (a=8, k=3, unscaled).
func DefaultCassini() Cassini {
	return Cassini{A: 8, K: 3, Scale: 1}
}

// Point evaluates the surface at (u, z).
//
// Outside the real domain of the oval one of the square roots sees a
// negative argument and the point comes back with NaN components. The
// value is not clamped; callers keep it in their buffers as-is.
func (c Cassini) Point(u, z float64) r3.Vec {
	r := c.radius(u, z)
	return r3.Vec{
		X: c.Scale * r * math.Cos(u),
		Y: c.Scale * r * math.Sin(u),
		Z: c.Scale * z,
	}
}

// Normal estimates the unit normal at (u, z).
func (c Cassini) Normal(u, z float64) r3.Vec {
	return EstimateNormal(c, u, z)
}

// InDomain reports whether both radicands of the oval are non-negative at
// (u, z), i.e. whether Point returns finite coordinates.
func (c Cassini) InDomain(u, z float64) bool {
	inner, outer := c.radicands(u, z)
	return inner >= 0 && outer >= 0
}

func (c Cassini) radius(u, z float64) float64 {
	_, outer := c.radicands(u, z)
	return math.Sqrt(outer)
}

// radicands returns a^4 - c^4 sin^2(2u) and c^2 cos(2u) + sqrt(inner).
func (c Cassini) radicands(u, z float64) (inner, outer float64) {
	cz := c.K * z
	c2 := cz * cz
	s := math.Sin(2 * u)
	inner = math.Pow(c.A, 4) - c2*c2*s*s
	outer = c2*math.Cos(2*u) + math.Sqrt(inner)
	return inner, outer
}
