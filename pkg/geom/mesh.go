package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an indexed polygon mesh. Faces reference vertices by index and own
// no geometry of their own; edges are derived from faces on demand. A Mesh is
// mutated in place by each pipeline stage and holds no state between
// operator invocations.
type Mesh struct {
	Verts []v3.Vec
	Faces [][]int
	Name  string
}

// NewMesh creates an empty mesh with the given name.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Verts)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Verts) == 0
}

// AddVert appends a vertex and returns its index.
func (m *Mesh) AddVert(v v3.Vec) int {
	m.Verts = append(m.Verts, v)
	return len(m.Verts) - 1
}

// AddFace appends a face. Faces with fewer than 3 indices are ignored.
func (m *Mesh) AddFace(idx ...int) {
	if len(idx) < 3 {
		return
	}
	m.Faces = append(m.Faces, idx)
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Verts: make([]v3.Vec, len(m.Verts)),
		Faces: make([][]int, len(m.Faces)),
		Name:  m.Name,
	}
	copy(c.Verts, m.Verts)
	for i, f := range m.Faces {
		c.Faces[i] = append([]int(nil), f...)
	}
	return c
}

// Join appends the geometry of other to m, offsetting face indices.
// The vertex sets stay disjoint; use Weld to fuse coincident vertices.
func (m *Mesh) Join(other *Mesh) {
	base := len(m.Verts)
	m.Verts = append(m.Verts, other.Verts...)
	for _, f := range other.Faces {
		nf := make([]int, len(f))
		for i, vi := range f {
			nf[i] = vi + base
		}
		m.Faces = append(m.Faces, nf)
	}
}

// Scale multiplies every vertex position by k about the origin.
func (m *Mesh) Scale(k float64) {
	for i := range m.Verts {
		m.Verts[i] = m.Verts[i].MulScalar(k)
	}
}

// Translate moves every vertex by d.
func (m *Mesh) Translate(d v3.Vec) {
	for i := range m.Verts {
		m.Verts[i] = m.Verts[i].Add(d)
	}
}

// Triangles returns the faces fan-triangulated into vertex-index triples.
// Planar convex polygons are assumed, which holds for convexified hulls.
func (m *Mesh) Triangles() [][3]int {
	var tris [][3]int
	for _, f := range m.Faces {
		for i := 1; i < len(f)-1; i++ {
			tris = append(tris, [3]int{f[0], f[i], f[i+1]})
		}
	}
	return tris
}

// Compact drops vertices not referenced by any face and reindexes the
// remaining faces. Returns the number of vertices removed.
func (m *Mesh) Compact() int {
	used := make([]bool, len(m.Verts))
	for _, f := range m.Faces {
		for _, vi := range f {
			used[vi] = true
		}
	}
	remap := make([]int, len(m.Verts))
	verts := m.Verts[:0]
	kept := 0
	for i, v := range m.Verts {
		if used[i] {
			remap[i] = kept
			verts = append(verts, v)
			kept++
		}
	}
	removed := len(m.Verts) - kept
	m.Verts = verts
	for _, f := range m.Faces {
		for i, vi := range f {
			f[i] = remap[vi]
		}
	}
	return removed
}
