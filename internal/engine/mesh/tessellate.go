package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a parametric surface with per-point normals.
type Surface interface {
	Point(u, z float64) r3.Vec
	Normal(u, z float64) r3.Vec
}

// corner is one evaluated sample of the surface.
type corner struct {
	pos, normal r3.Vec
}

// Tessellate samples s on every cell of d and returns the triangle list.
//
// Each cell (u, z)-(u+du, z+dz) becomes two triangles:
//
//	A: (u, z)     (u+du, z)  (u, z+dz)
//	B: (u, z+dz)  (u+du, z)  (u+du, z+dz)
//
// The (u, z+dz) corner is evaluated once and written to both of its slots.
// The (u+du, z) corner is evaluated separately for each triangle. Normals are
// never shared or averaged between cells.
//
// Non-finite samples are written unchanged; see Mesh.Stats.
func Tessellate(s Surface, d Domain) (*Mesh, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}

	n := d.Cells() * floatsPerCell
	b := builder{
		vertices: make([]float32, 0, n),
		normals:  make([]float32, 0, n),
	}

	stepU, stepZ := d.StepU(), d.StepZ()
	eval := func(u, z float64) corner {
		return corner{pos: s.Point(u, z), normal: s.Normal(u, z)}
	}

	// Grid positions come from integer indices so the cell count is exact.
	for i := 0; i < d.StepsU; i++ {
		u := d.MinU + float64(i)*stepU
		for j := 0; j < d.StepsZ; j++ {
			z := d.MinZ + float64(j)*stepZ

			diag := eval(u, z+stepZ)

			b.add(eval(u, z))
			b.add(eval(u+stepU, z))
			b.add(diag)

			b.add(diag)
			b.add(eval(u+stepU, z))
			b.add(eval(u+stepU, z+stepZ))
		}
	}

	return &Mesh{Vertices: b.vertices, Normals: b.normals}, nil
}

type builder struct {
	vertices []float32
	normals  []float32
}

func (b *builder) add(c corner) {
	b.vertices = append(b.vertices, float32(c.pos.X), float32(c.pos.Y), float32(c.pos.Z))
	b.normals = append(b.normals, float32(c.normal.X), float32(c.normal.Y), float32(c.normal.Z))
}
