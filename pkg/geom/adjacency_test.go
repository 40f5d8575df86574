package geom

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestComponentsPartition(t *testing.T) {
	m := unitCube()
	m.Join(Box(v3.Vec{X: 10}, v3.Vec{X: 1, Y: 1, Z: 1}))
	m.Join(Box(v3.Vec{X: 20}, v3.Vec{X: 1, Y: 1, Z: 1}))
	m.AddVert(v3.Vec{X: 50}) // isolated vertex

	comps := m.Components()
	if len(comps) != 4 {
		t.Fatalf("component count = %d, want 4", len(comps))
	}

	// Every vertex appears in exactly one component.
	seen := make(map[int]int)
	for _, comp := range comps {
		for _, vi := range comp {
			seen[vi]++
		}
	}
	if len(seen) != m.VertexCount() {
		t.Errorf("covered %d vertices, want %d", len(seen), m.VertexCount())
	}
	for vi, n := range seen {
		if n != 1 {
			t.Errorf("vertex %d appears in %d components", vi, n)
		}
	}

	// The isolated vertex is its own single-vertex component.
	last := comps[len(comps)-1]
	if len(last) != 1 || last[0] != 24 {
		t.Errorf("isolated component = %v, want [24]", last)
	}
}

func TestComponentsLargeMeshNoStackExhaustion(t *testing.T) {
	// A long vertex chain; recursive flood fill would blow the stack.
	m := NewMesh("chain")
	const n = 50000
	for i := 0; i < n; i++ {
		m.AddVert(v3.Vec{X: float64(i)})
	}
	for i := 0; i+2 < n; i += 2 {
		m.AddFace(i, i+1, i+2)
	}
	comps := m.Components()
	if len(comps) != 1 {
		t.Fatalf("component count = %d, want 1", len(comps))
	}
	if len(comps[0]) != n {
		t.Errorf("component size = %d, want %d", len(comps[0]), n)
	}
}

func TestSubMesh(t *testing.T) {
	m := unitCube()
	m.Join(Box(v3.Vec{X: 10}, v3.Vec{X: 2, Y: 2, Z: 2}))

	comps := m.Components()
	if len(comps) != 2 {
		t.Fatalf("component count = %d, want 2", len(comps))
	}

	second := m.SubMesh(comps[1])
	if second.VertexCount() != 8 {
		t.Errorf("sub vertex count = %d, want 8", second.VertexCount())
	}
	if second.FaceCount() != 6 {
		t.Errorf("sub face count = %d, want 6", second.FaceCount())
	}
	if vol := second.Volume(); vol < 7.9 || vol > 8.1 {
		t.Errorf("sub volume = %f, want 8", vol)
	}
}

func TestAdjacencyIsolatedVertex(t *testing.T) {
	m := NewMesh("point")
	m.AddVert(v3.Vec{})
	adj := m.Adjacency()
	if len(adj) != 1 || len(adj[0]) != 0 {
		t.Errorf("isolated vertex adjacency = %v, want one empty list", adj)
	}
}

func TestEdgeUseCounts(t *testing.T) {
	m := unitCube()
	counts := m.EdgeUseCounts()
	if len(counts) != 12 {
		t.Fatalf("edge count = %d, want 12", len(counts))
	}
	for e, n := range counts {
		if n != 2 {
			t.Errorf("edge %v used %d times, want 2 (manifold)", e, n)
		}
	}
}
