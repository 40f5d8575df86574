package collide

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/hull"
)

func box(min v3.Vec, size float64) *geom.Mesh {
	return geom.Box(min, v3.Vec{X: size, Y: size, Z: size})
}

func boxHull(min v3.Vec, size v3.Vec) *hull.ConvexHull {
	return hull.Build(geom.Box(min, size).Verts, 0)
}

func TestExtractPartition(t *testing.T) {
	m := box(v3.Vec{}, 1)
	m.Join(box(v3.Vec{X: 5}, 1))
	m.Join(box(v3.Vec{X: 10}, 2))
	m.AddVert(v3.Vec{X: 100}) // stray vertex

	candidates := Extract(m)
	if len(candidates) != 4 {
		t.Fatalf("candidate count = %d, want 4", len(candidates))
	}

	total := 0
	for _, c := range candidates {
		total += c.VertexCount()
	}
	if total != m.VertexCount() {
		t.Errorf("candidates cover %d vertices, want %d", total, m.VertexCount())
	}
}

func TestExtractNamesAreUnique(t *testing.T) {
	m := box(v3.Vec{}, 1)
	m.Name = "crate"
	m.Join(box(v3.Vec{X: 5}, 1))

	candidates := Extract(m)
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c.Name] {
			t.Errorf("duplicate candidate name %q", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestConvexifyDropsDegenerates(t *testing.T) {
	solid := box(v3.Vec{}, 1)

	flat := geom.NewMesh("flat")
	flat.AddVert(v3.Vec{})
	flat.AddVert(v3.Vec{X: 1})
	flat.AddVert(v3.Vec{Y: 1})
	flat.AddFace(0, 1, 2)

	point := geom.NewMesh("point")
	point.AddVert(v3.Vec{X: 9})

	hulls, dropped := Convexify([]*geom.Mesh{solid, flat, point}, 0)
	if len(hulls) != 1 {
		t.Errorf("hull count = %d, want 1", len(hulls))
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}

func TestConvexifyDiscardsInterior(t *testing.T) {
	m := box(v3.Vec{}, 2)
	m.AddVert(v3.Vec{X: 1, Y: 1, Z: 1}) // interior point joins the component
	m.AddFace(0, 1, 8)

	hulls, dropped := Convexify(Extract(m), 0)
	if dropped != 0 || len(hulls) != 1 {
		t.Fatalf("hulls = %d dropped = %d, want 1 and 0", len(hulls), dropped)
	}
	if hulls[0].VertexCount() != 8 {
		t.Errorf("hull vertex count = %d, want 8 (interior discarded)", hulls[0].VertexCount())
	}
	if len(hulls[0].Interior) != 1 {
		t.Errorf("interior count = %d, want 1", len(hulls[0].Interior))
	}
}
