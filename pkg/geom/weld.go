package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultWeldTolerance is the coincidence tolerance for vertex welding at
// unit scale. It corresponds to matching positions rounded to two decimals.
const DefaultWeldTolerance = 0.01

// Scale-dependent threshold coefficients measured against reference content.
// The doubles threshold grows exponentially with the longest dimension of
// the object so that large architectural meshes weld as aggressively as
// small props.
const (
	doublesBase   = 0.14999999999999999769
	doublesGrowth = 1.00080240446594588574
	extrudeBase   = -0.17962946163683473686
	extrudeGrowth = 1.00103086506704893382
)

// DoublesThreshold returns the doubles-removal distance for an object whose
// longest bounding-box dimension is longestDim.
func DoublesThreshold(longestDim float64) float64 {
	return doublesBase * math.Pow(doublesGrowth, longestDim)
}

// ExtrudeFactor returns the inward extrusion distance for hull thickening,
// scaled by the user's extrusion modifier.
func ExtrudeFactor(longestDim, modifier float64) float64 {
	return extrudeBase * math.Pow(extrudeGrowth, longestDim) * modifier
}

// WeldKey quantizes a position onto a grid of the given tolerance. Two
// vertices are considered coincident iff their keys match. This is the
// explicit-tolerance replacement for fixed two-decimal rounding.
type WeldKey struct {
	X, Y, Z int64
}

// Weld returns the weld key for v at tolerance tol.
func Weld(v v3.Vec, tol float64) WeldKey {
	if tol <= 0 {
		tol = DefaultWeldTolerance
	}
	return WeldKey{
		X: int64(math.Round(v.X / tol)),
		Y: int64(math.Round(v.Y / tol)),
		Z: int64(math.Round(v.Z / tol)),
	}
}

// WeldVerts fuses vertices closer than tol, rewrites faces to the surviving
// indices, drops faces collapsed below 3 distinct vertices, and compacts the
// vertex array. Returns the number of vertices removed.
func (m *Mesh) WeldVerts(tol float64) int {
	first := make(map[WeldKey]int)
	remap := make(map[int]int, len(m.Verts))
	var verts []v3.Vec

	for i, v := range m.Verts {
		k := Weld(v, tol)
		if j, ok := first[k]; ok {
			remap[i] = j
			continue
		}
		idx := len(verts)
		verts = append(verts, v)
		first[k] = idx
		remap[i] = idx
	}

	removed := len(m.Verts) - len(verts)
	if removed == 0 {
		return 0
	}
	m.Verts = verts

	var faces [][]int
	for _, f := range m.Faces {
		// Membership, not adjacency: a welded polygon can repeat a vertex
		// non-consecutively (a,b,a,c) and the repeat still has to go.
		nf := make([]int, 0, len(f))
		seen := make(map[int]bool, len(f))
		for _, vi := range f {
			ni := remap[vi]
			if seen[ni] {
				continue
			}
			seen[ni] = true
			nf = append(nf, ni)
		}
		if len(nf) >= 3 {
			faces = append(faces, nf)
		}
	}
	m.Faces = faces
	return removed
}
