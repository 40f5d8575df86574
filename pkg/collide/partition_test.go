package collide

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/theanine3d/collidegen/pkg/hull"
)

func rowOfHulls(n int) []*hull.ConvexHull {
	hulls := make([]*hull.ConvexHull, n)
	for i := range hulls {
		hulls[i] = boxHull(v3.Vec{X: float64(2 * i)}, v3.Vec{X: 1, Y: 1, Z: 1})
	}
	return hulls
}

func TestPartition65(t *testing.T) {
	groups := Partition(rowOfHulls(65), "crate", MaxHullsPerGroup)
	if len(groups) != 3 {
		t.Fatalf("group count = %d, want 3", len(groups))
	}
	for i, want := range []int{32, 32, 1} {
		if got := len(groups[i].Hulls); got != want {
			t.Errorf("group %d size = %d, want %d", i, got, want)
		}
	}
}

func TestPartitionNames(t *testing.T) {
	groups := Partition(rowOfHulls(70), "crate", 32)
	want := []string{"crate_part_000", "crate_part_001", "crate_part_002"}
	for i, g := range groups {
		if g.Name != want[i] {
			t.Errorf("group %d name = %q, want %q", i, g.Name, want[i])
		}
		if g.Index != i {
			t.Errorf("group %d index = %d", i, g.Index)
		}
	}
}

func TestPartitionPreservesOrder(t *testing.T) {
	hulls := rowOfHulls(40)
	groups := Partition(hulls, "b", 32)

	var flat []*hull.ConvexHull
	for _, g := range groups {
		flat = append(flat, g.Hulls...)
	}
	if len(flat) != len(hulls) {
		t.Fatalf("regrouped hull count = %d, want %d", len(flat), len(hulls))
	}
	for i := range flat {
		if flat[i] != hulls[i] {
			t.Fatalf("hull %d reordered", i)
		}
	}
}

func TestPartitionExactMultiple(t *testing.T) {
	groups := Partition(rowOfHulls(64), "b", 32)
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	for i, g := range groups {
		if len(g.Hulls) != 32 {
			t.Errorf("group %d size = %d, want 32", i, len(g.Hulls))
		}
	}
}

func TestPartitionEmpty(t *testing.T) {
	if groups := Partition(nil, "b", 32); len(groups) != 0 {
		t.Errorf("group count = %d, want 0", len(groups))
	}
}

func TestPartitionDefaultCap(t *testing.T) {
	groups := Partition(rowOfHulls(33), "b", 0)
	if len(groups) != 2 {
		t.Fatalf("group count with default cap = %d, want 2", len(groups))
	}
}

func TestGroupMesh(t *testing.T) {
	groups := Partition(rowOfHulls(2), "b", 32)
	m := groups[0].Mesh()
	if m.Name != "b_part_000" {
		t.Errorf("mesh name = %q", m.Name)
	}
	if m.VertexCount() != 16 || m.FaceCount() != 24 {
		t.Errorf("joined mesh = %d verts, %d faces; want 16 and 24",
			m.VertexCount(), m.FaceCount())
	}
}
