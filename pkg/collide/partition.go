package collide

import (
	"fmt"

	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/hull"
)

// Group is one export batch of at most MaxPerGroup hulls.
type Group struct {
	Index int
	Name  string
	Hulls []*hull.ConvexHull
}

// Mesh unions the group's hulls into a single vertex-disjoint mesh named
// after the group.
func (g Group) Mesh() *geom.Mesh {
	m := geom.NewMesh(g.Name)
	for _, h := range g.Hulls {
		m.Join(h.Mesh(""))
	}
	return m
}

// Partition splits hulls into contiguous groups of at most k, preserving
// order. Group names are deterministic: base + "_part_000", "_part_001", …
// ceil(len/k) groups come back; no hull is split or duplicated.
func Partition(hulls []*hull.ConvexHull, base string, k int) []Group {
	if k < 1 {
		k = MaxHullsPerGroup
	}
	var groups []Group
	for start := 0; start < len(hulls); start += k {
		end := start + k
		if end > len(hulls) {
			end = len(hulls)
		}
		i := len(groups)
		groups = append(groups, Group{
			Index: i,
			Name:  GroupName(base, i),
			Hulls: hulls[start:end],
		})
	}
	return groups
}

// GroupName formats the deterministic name of group i for base object name.
func GroupName(base string, i int) string {
	return fmt.Sprintf("%s_part_%03d", base, i)
}
