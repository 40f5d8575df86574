package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Box builds an axis-aligned box mesh with its minimum corner at min and the
// given size, quad faces wound outward. Used as a fixture source by the
// console and by tests; real content arrives through the host collaborator.
func Box(min, size v3.Vec) *Mesh {
	m := NewMesh("box")
	x, y, z := size.X, size.Y, size.Z
	m.Verts = []v3.Vec{
		min,
		min.Add(v3.Vec{X: x}),
		min.Add(v3.Vec{X: x, Y: y}),
		min.Add(v3.Vec{Y: y}),
		min.Add(v3.Vec{Z: z}),
		min.Add(v3.Vec{X: x, Z: z}),
		min.Add(v3.Vec{X: x, Y: y, Z: z}),
		min.Add(v3.Vec{Y: y, Z: z}),
	}
	m.Faces = [][]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{2, 3, 7, 6}, // back
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
	return m
}

// Tetra builds a tetrahedron from four points with outward winding when the
// points are in general position with p3 above the p0-p1-p2 plane.
func Tetra(p0, p1, p2, p3 v3.Vec) *Mesh {
	m := NewMesh("tetra")
	m.Verts = []v3.Vec{p0, p1, p2, p3}
	m.Faces = [][]int{
		{0, 2, 1},
		{0, 1, 3},
		{1, 2, 3},
		{2, 0, 3},
	}
	return m
}
