package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FaceNormal computes the face normal by Newell's method, which stays stable
// for near-degenerate and slightly non-planar polygons. The result is not
// normalized; its length is twice the face area.
func (m *Mesh) FaceNormal(face []int) v3.Vec {
	var n v3.Vec
	for i := range face {
		a := m.Verts[face[i]]
		b := m.Verts[face[(i+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// FaceCenter returns the mean of a face's vertex positions.
func (m *Mesh) FaceCenter(face []int) v3.Vec {
	var c v3.Vec
	for _, vi := range face {
		c = c.Add(m.Verts[vi])
	}
	return c.DivScalar(float64(len(face)))
}

// FaceArea returns the area of a (planar) polygon face.
func (m *Mesh) FaceArea(face []int) float64 {
	return m.FaceNormal(face).Length() / 2
}

// Volume returns the signed volume enclosed by the mesh via the divergence
// theorem over fan-triangulated faces. Consistent outward winding yields a
// positive volume.
func (m *Mesh) Volume() float64 {
	var vol float64
	for _, t := range m.Triangles() {
		a := m.Verts[t[0]]
		b := m.Verts[t[1]]
		c := m.Verts[t[2]]
		vol += a.Dot(b.Cross(c))
	}
	return vol / 6
}

// Centroid returns the volume centroid of a closed mesh. For meshes with
// negligible enclosed volume it falls back to the vertex mean.
func (m *Mesh) Centroid() v3.Vec {
	var vol float64
	var c v3.Vec
	for _, t := range m.Triangles() {
		a := m.Verts[t[0]]
		b := m.Verts[t[1]]
		d := m.Verts[t[2]]
		tv := a.Dot(b.Cross(d)) / 6
		vol += tv
		c = c.Add(a.Add(b).Add(d).MulScalar(tv / 4))
	}
	const tiny = 1e-12
	if vol > tiny || vol < -tiny {
		return c.DivScalar(vol)
	}
	return vertexMean(m.Verts)
}

func vertexMean(pts []v3.Vec) v3.Vec {
	if len(pts) == 0 {
		return v3.Vec{}
	}
	var c v3.Vec
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.DivScalar(float64(len(pts)))
}
