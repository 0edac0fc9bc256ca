// Package mesh tessellates parametric surfaces into unindexed triangle lists.
package mesh

import (
	"errors"
	"fmt"
	"math"
)

// Floats per vertex position/normal and vertices per triangle.
const (
	Components      = 3
	VerticesPerTri  = 3
	VerticesPerCell = 6
	floatsPerTri    = Components * VerticesPerTri
	floatsPerCell   = Components * VerticesPerCell
)

// Domain is the rectangular (u, z) parameter grid a surface is sampled on.
// U covers [MinU, MaxU) and Z covers [MinZ, MaxZ).
type Domain struct {
	MinU, MaxU float64
	MinZ, MaxZ float64
	StepsU     int
	StepsZ     int
}

// DefaultDomain returns the 50x50 grid over u in [0, 2pi), z in [-3, 3).
func DefaultDomain() Domain {
	return Domain{
		MinU:   0,
		MaxU:   2 * math.Pi,
		MinZ:   -3,
		MaxZ:   3,
		StepsU: 50,
		StepsZ: 50,
	}
}

// StepU returns the u spacing between grid lines.
func (d Domain) StepU() float64 {
	return (d.MaxU - d.MinU) / float64(d.StepsU)
}

// StepZ returns the z spacing between grid lines.
func (d Domain) StepZ() float64 {
	return (d.MaxZ - d.MinZ) / float64(d.StepsZ)
}

// Cells returns the number of grid cells.
func (d Domain) Cells() int {
	return d.StepsU * d.StepsZ
}

// ErrInvalidDomain is returned for grids that cannot be tessellated.
var ErrInvalidDomain = errors.New("invalid domain")

// Validate checks that the grid has at least one cell and finite, non-empty ranges.
func (d Domain) Validate() error {
	if d.StepsU <= 0 || d.StepsZ <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %dx%d", ErrInvalidDomain, d.StepsU, d.StepsZ)
	}
	for _, v := range []float64{d.MinU, d.MaxU, d.MinZ, d.MaxZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds must be finite", ErrInvalidDomain)
		}
	}
	if d.MaxU <= d.MinU {
		return fmt.Errorf("%w: u range [%g, %g) is empty", ErrInvalidDomain, d.MinU, d.MaxU)
	}
	if d.MaxZ <= d.MinZ {
		return fmt.Errorf("%w: z range [%g, %g) is empty", ErrInvalidDomain, d.MinZ, d.MaxZ)
	}
	return nil
}

// Mesh is an unindexed triangle list ready for GPU upload.
// Vertices and Normals are parallel: floats [3i, 3i+3) of each describe the
// same corner. A Mesh is never modified after Tessellate returns it.
type Mesh struct {
	Vertices []float32
	Normals  []float32
}

// VertexCount returns the number of vertices (and normals).
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / Components
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / floatsPerTri
}

// Stats summarizes numeric degeneracies in a mesh.
type Stats struct {
	Vertices          int
	Triangles         int
	NonFiniteVertices int // vertices with a NaN or Inf component
	DegenerateNormals int // normals that are zero or non-finite
}

// Stats scans the buffers for non-finite and degenerate values. The mesh is
// left untouched; these values are rendered as-is. A corner without a
// matching normal counts as a degenerate normal.
func (m *Mesh) Stats() Stats {
	s := Stats{
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
	}
	for i := 0; i+Components <= len(m.Vertices); i += Components {
		if !finite(m.Vertices[i : i+Components]) {
			s.NonFiniteVertices++
		}
		if i+Components > len(m.Normals) {
			s.DegenerateNormals++
			continue
		}
		n := m.Normals[i : i+Components]
		if !finite(n) || (n[0] == 0 && n[1] == 0 && n[2] == 0) {
			s.DegenerateNormals++
		}
	}
	return s
}

func finite(v []float32) bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
