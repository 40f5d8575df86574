package collide

import (
	"github.com/theanine3d/collidegen/pkg/geom"
)

// RemoveThinFaces deletes faces with area below ratio times the mesh's
// average face area. With linked set, every face connected to a thin face is
// deleted as well, removing whole sliver hulls instead of punching holes in
// them. Orphaned vertices are compacted away. Returns the face and vertex
// removal counts.
func RemoveThinFaces(m *geom.Mesh, ratio float64, linked bool) (faces, verts int) {
	if m.FaceCount() == 0 {
		return 0, 0
	}

	var total float64
	areas := make([]float64, len(m.Faces))
	for i, f := range m.Faces {
		areas[i] = m.FaceArea(f)
		total += areas[i]
	}
	threshold := total / float64(len(m.Faces)) * ratio

	doomed := make([]bool, len(m.Faces))
	any := false
	for i := range m.Faces {
		if areas[i] < threshold {
			doomed[i] = true
			any = true
		}
	}
	if !any {
		return 0, 0
	}

	if linked {
		// Expand each thin face to its whole connected component.
		comps := m.Components()
		compOf := make([]int, len(m.Verts))
		for ci, comp := range comps {
			for _, vi := range comp {
				compOf[vi] = ci
			}
		}
		doomedComp := make([]bool, len(comps))
		for i, f := range m.Faces {
			if doomed[i] {
				doomedComp[compOf[f[0]]] = true
			}
		}
		for i, f := range m.Faces {
			if doomedComp[compOf[f[0]]] {
				doomed[i] = true
			}
		}
	}

	kept := m.Faces[:0]
	for i, f := range m.Faces {
		if doomed[i] {
			faces++
			continue
		}
		kept = append(kept, f)
	}
	m.Faces = kept
	verts = m.Compact()
	return faces, verts
}
