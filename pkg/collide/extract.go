package collide

import (
	"fmt"

	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/hull"
)

// Extract partitions the mesh into its maximal connected components under
// edge adjacency, one candidate mesh per component. Every input vertex lands
// in exactly one candidate and no two candidates share a vertex. Isolated
// vertices come back as single-vertex candidates; convexification discards
// them later.
func Extract(m *geom.Mesh) []*geom.Mesh {
	comps := m.Components()
	out := make([]*geom.Mesh, 0, len(comps))
	for i, comp := range comps {
		sub := m.SubMesh(comp)
		sub.Name = fmt.Sprintf("%s_hull_%d", m.Name, i)
		out = append(out, sub)
	}
	return out
}

// Convexify replaces each candidate with the convex hull of its vertex set,
// discarding interior and unused geometry. Candidates too degenerate to
// enclose a volume produce no hull and are dropped silently; the dropped
// count is returned for user feedback.
func Convexify(candidates []*geom.Mesh, eps float64) (hulls []*hull.ConvexHull, dropped int) {
	for _, c := range candidates {
		h := hull.Build(c.Verts, eps)
		if h == nil {
			dropped++
			continue
		}
		hulls = append(hulls, h)
	}
	return hulls, dropped
}
