package hull

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/theanine3d/collidegen/pkg/geom"
)

// ConvexHull is a closed, convex, triangulated surface. Every vertex is an
// extreme point of the point set it was built from and every face is wound
// outward.
type ConvexHull struct {
	Verts []v3.Vec
	Faces [][3]int

	// Interior holds the indices of the input points that did not survive
	// as hull vertices (interior or duplicate geometry).
	Interior []int
}

// VertexCount returns the number of hull vertices.
func (h *ConvexHull) VertexCount() int {
	return len(h.Verts)
}

// FaceCount returns the number of triangular facets.
func (h *ConvexHull) FaceCount() int {
	return len(h.Faces)
}

// Mesh converts the hull into a geom.Mesh.
func (h *ConvexHull) Mesh(name string) *geom.Mesh {
	m := geom.NewMesh(name)
	m.Verts = append(m.Verts, h.Verts...)
	for _, f := range h.Faces {
		m.Faces = append(m.Faces, []int{f[0], f[1], f[2]})
	}
	return m
}

// Volume returns the enclosed volume.
func (h *ConvexHull) Volume() float64 {
	var vol float64
	for _, f := range h.Faces {
		a := h.Verts[f[0]]
		b := h.Verts[f[1]]
		c := h.Verts[f[2]]
		vol += a.Dot(b.Cross(c))
	}
	return vol / 6
}

// Centroid returns the volume centroid.
func (h *ConvexHull) Centroid() v3.Vec {
	var vol float64
	var c v3.Vec
	for _, f := range h.Faces {
		a := h.Verts[f[0]]
		b := h.Verts[f[1]]
		d := h.Verts[f[2]]
		tv := a.Dot(b.Cross(d)) / 6
		vol += tv
		c = c.Add(a.Add(b).Add(d).MulScalar(tv / 4))
	}
	const tiny = 1e-12
	if vol > tiny || vol < -tiny {
		return c.DivScalar(vol)
	}
	// Flat hulls should not occur, but fall back to the vertex mean.
	var mean v3.Vec
	for _, p := range h.Verts {
		mean = mean.Add(p)
	}
	return mean.DivScalar(float64(len(h.Verts)))
}

// Bounds returns the hull's axis-aligned bounding box.
func (h *ConvexHull) Bounds() geom.AABB {
	return geom.BoundsOf(h.Verts)
}

// FacesToward counts the facets whose outward normal points toward p from
// the facet center. A point strictly inside a convex hull sees zero facets.
func (h *ConvexHull) FacesToward(p v3.Vec) int {
	n := 0
	for _, f := range h.Faces {
		a := h.Verts[f[0]]
		b := h.Verts[f[1]]
		c := h.Verts[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).DivScalar(3)
		if normal.Dot(p.Sub(center)) > 0 {
			n++
		}
	}
	return n
}

// Encloses reports whether p lies inside the hull (within eps of the
// surface counts as inside).
func (h *ConvexHull) Encloses(p v3.Vec, eps float64) bool {
	for _, f := range h.Faces {
		a := h.Verts[f[0]]
		b := h.Verts[f[1]]
		c := h.Verts[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		l := normal.Length()
		if l == 0 {
			continue
		}
		if normal.DivScalar(l).Dot(p.Sub(a)) > eps {
			return false
		}
	}
	return true
}
