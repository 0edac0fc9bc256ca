package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/cassini/internal/engine/surface"
)

// plane is a flat z=0 surface that records how often it is sampled.
type plane struct {
	points, normals int
}

func (p *plane) Point(u, z float64) r3.Vec {
	p.points++
	return r3.Vec{X: u, Y: z}
}

func (p *plane) Normal(u, z float64) r3.Vec {
	p.normals++
	return r3.Vec{Z: 1}
}

func TestTessellateCounts(t *testing.T) {
	tests := []struct {
		name           string
		stepsU, stepsZ int
	}{
		{"4x2", 4, 2},
		{"1x1", 1, 1},
		{"default", 50, 50},
		{"uneven", 7, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultDomain()
			d.StepsU, d.StepsZ = tt.stepsU, tt.stepsZ

			m, err := Tessellate(surface.DefaultCassini(), d)
			if err != nil {
				t.Fatalf("Tessellate: %v", err)
			}

			wantVerts := tt.stepsU * tt.stepsZ * VerticesPerCell
			if got := m.VertexCount(); got != wantVerts {
				t.Errorf("VertexCount = %d, want %d", got, wantVerts)
			}
			if got := m.TriangleCount(); got != wantVerts/3 {
				t.Errorf("TriangleCount = %d, want %d", got, wantVerts/3)
			}
			if len(m.Vertices) != len(m.Normals) {
				t.Errorf("len(Vertices) = %d, len(Normals) = %d, want equal", len(m.Vertices), len(m.Normals))
			}
			if len(m.Vertices)%Components != 0 || len(m.Vertices)%floatsPerTri != 0 {
				t.Errorf("len(Vertices) = %d not a whole number of triangles", len(m.Vertices))
			}
		})
	}
}

func TestTessellateScenario4x2(t *testing.T) {
	d := Domain{MinU: 0, MaxU: 2 * math.Pi, MinZ: -3, MaxZ: 3, StepsU: 4, StepsZ: 2}
	m, err := Tessellate(surface.DefaultCassini(), d)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if m.VertexCount() != 48 {
		t.Errorf("VertexCount = %d, want 48", m.VertexCount())
	}
	if len(m.Normals)/Components != 48 {
		t.Errorf("normal count = %d, want 48", len(m.Normals)/Components)
	}
	if m.TriangleCount() != 16 {
		t.Errorf("TriangleCount = %d, want 16", m.TriangleCount())
	}
}

func TestTessellateCellLayout(t *testing.T) {
	d := Domain{MinU: 0, MaxU: 2, MinZ: 10, MaxZ: 13, StepsU: 2, StepsZ: 3}
	m, err := Tessellate(&plane{}, d)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	// First cell is (0,10)-(1,11). Plane maps (u,z) to (u,z,0).
	want := []float32{
		0, 10, 0, 1, 10, 0, 0, 11, 0,
		0, 11, 0, 1, 10, 0, 1, 11, 0,
	}
	if diff := cmp.Diff(want, m.Vertices[:floatsPerCell]); diff != "" {
		t.Errorf("first cell mismatch (-want +got):\n%s", diff)
	}

	// z is the inner loop: the second cell starts at (0, 11).
	if got := m.Vertices[floatsPerCell : floatsPerCell+3]; !cmp.Equal(got, []float32{0, 11, 0}) {
		t.Errorf("second cell origin = %v, want [0 11 0]", got)
	}
	// The cell after the last z cell moves on to u = 1.
	fourth := 3 * floatsPerCell
	if got := m.Vertices[fourth : fourth+3]; !cmp.Equal(got, []float32{1, 10, 0}) {
		t.Errorf("fourth cell origin = %v, want [1 10 0]", got)
	}

	for i := 0; i < m.VertexCount(); i++ {
		if got := m.Normals[i*3 : i*3+3]; !cmp.Equal(got, []float32{0, 0, 1}) {
			t.Fatalf("normal %d = %v, want [0 0 1]", i, got)
		}
	}
}

func TestTessellateEvaluations(t *testing.T) {
	p := &plane{}
	d := Domain{MinU: 0, MaxU: 1, MinZ: 0, MaxZ: 1, StepsU: 3, StepsZ: 4}
	if _, err := Tessellate(p, d); err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	// Six slots per cell, the diagonal corner evaluated once for two of them.
	want := d.Cells() * 5
	if p.points != want {
		t.Errorf("Point calls = %d, want %d", p.points, want)
	}
	if p.normals != want {
		t.Errorf("Normal calls = %d, want %d", p.normals, want)
	}
}

func TestTessellateSharedDiagonal(t *testing.T) {
	m, err := Tessellate(surface.DefaultCassini(), DefaultDomain())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	slot := func(buf []float32, cell, k int) []float32 {
		off := cell*floatsPerCell + k*Components
		return buf[off : off+Components]
	}
	for cell := 0; cell < DefaultDomain().Cells(); cell++ {
		for _, pair := range [][2]int{{2, 3}, {1, 4}} {
			if !bitsEqual(slot(m.Vertices, cell, pair[0]), slot(m.Vertices, cell, pair[1])) {
				t.Fatalf("cell %d: vertex slots %v differ", cell, pair)
			}
			if !bitsEqual(slot(m.Normals, cell, pair[0]), slot(m.Normals, cell, pair[1])) {
				t.Fatalf("cell %d: normal slots %v differ", cell, pair)
			}
		}
	}
}

func TestTessellateDeterministic(t *testing.T) {
	a, err := Tessellate(surface.DefaultCassini(), DefaultDomain())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	b, err := Tessellate(surface.DefaultCassini(), DefaultDomain())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	if !bitsEqual(a.Vertices, b.Vertices) {
		t.Error("vertex buffers differ between runs")
	}
	if !bitsEqual(a.Normals, b.Normals) {
		t.Error("normal buffers differ between runs")
	}
}

func TestTessellateUnitNormals(t *testing.T) {
	m, err := Tessellate(surface.DefaultCassini(), DefaultDomain())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	checked := 0
	for i := 0; i < m.VertexCount(); i++ {
		n := m.Normals[i*3 : i*3+3]
		if !finite(n) || (n[0] == 0 && n[1] == 0 && n[2] == 0) {
			continue
		}
		l := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if math.Abs(l-1) > 1e-4 {
			t.Errorf("normal %d has length %g", i, l)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no usable normals")
	}
}

func TestTessellateKeepsNonFinite(t *testing.T) {
	m, err := Tessellate(surface.DefaultCassini(), DefaultDomain())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	s := m.Stats()
	if s.Vertices != 50*50*6 || s.Triangles != 50*50*2 {
		t.Errorf("Stats counts = %d vertices, %d triangles", s.Vertices, s.Triangles)
	}
	// The default grid reaches |z| = 3 where the ovals split; those samples
	// stay in the buffers as NaN.
	if s.NonFiniteVertices == 0 {
		t.Error("expected non-finite vertices on the default grid")
	}
	if s.NonFiniteVertices >= s.Vertices {
		t.Error("expected some finite vertices on the default grid")
	}
	if s.DegenerateNormals < s.NonFiniteVertices {
		t.Errorf("DegenerateNormals = %d, want at least NonFiniteVertices = %d", s.DegenerateNormals, s.NonFiniteVertices)
	}
}

func TestStats(t *testing.T) {
	nan := float32(math.NaN())
	m := &Mesh{
		Vertices: []float32{0, 0, 0, nan, 1, 1, 2, 2, 2},
		Normals:  []float32{0, 0, 1, nan, nan, nan, 0, 0, 0},
	}
	want := Stats{Vertices: 3, Triangles: 1, NonFiniteVertices: 1, DegenerateNormals: 2}
	if diff := cmp.Diff(want, m.Stats()); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsShortNormals(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 1, 1, 1, 2, 2, 2},
		Normals:  []float32{0, 0, 1},
	}
	want := Stats{Vertices: 3, Triangles: 1, DegenerateNormals: 2}
	if diff := cmp.Diff(want, m.Stats()); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDomainValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Domain)
		ok     bool
	}{
		{"default", func(*Domain) {}, true},
		{"zero u steps", func(d *Domain) { d.StepsU = 0 }, false},
		{"negative z steps", func(d *Domain) { d.StepsZ = -1 }, false},
		{"empty u range", func(d *Domain) { d.MaxU = d.MinU }, false},
		{"inverted z range", func(d *Domain) { d.MinZ, d.MaxZ = 3, -3 }, false},
		{"nan bound", func(d *Domain) { d.MaxZ = math.NaN() }, false},
		{"inf bound", func(d *Domain) { d.MaxU = math.Inf(1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultDomain()
			tt.mutate(&d)
			err := d.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidDomain) {
					t.Errorf("Validate() = %v, want ErrInvalidDomain", err)
				}
				if _, terr := Tessellate(&plane{}, d); !errors.Is(terr, ErrInvalidDomain) {
					t.Errorf("Tessellate() = %v, want ErrInvalidDomain", terr)
				}
			}
		})
	}
}

func TestDefaultDomainSteps(t *testing.T) {
	d := DefaultDomain()
	if got, want := d.StepU(), 2*math.Pi/50; got != want {
		t.Errorf("StepU = %g, want %g", got, want)
	}
	if got, want := d.StepZ(), 6.0/50; got != want {
		t.Errorf("StepZ = %g, want %g", got, want)
	}
}

func bitsEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}
