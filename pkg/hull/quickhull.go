package hull

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/theanine3d/collidegen/pkg/geom"
)

// qhFace is a triangular facet under construction. Facets keep the subset of
// unclaimed input points lying outside their plane; a facet with an empty
// outside set is final.
type qhFace struct {
	v       [3]int
	normal  v3.Vec // unit outward normal
	offset  float64
	outside []int
	removed bool
}

func (f *qhFace) dist(p v3.Vec) float64 {
	return f.normal.Dot(p) - f.offset
}

// autoEpsilon derives a coplanarity tolerance from the spread of the input,
// so that meshes at Source-map scale and at unit scale behave alike.
func autoEpsilon(points []v3.Vec) float64 {
	bb := geom.BoundsOf(points)
	ext := bb.Size()
	span := ext.X + ext.Y + ext.Z
	if span < 1 {
		span = 1
	}
	return span * 1e-10
}

// Build computes the convex hull of points using incremental quickhull.
//
// eps is the coplanarity/collinearity tolerance; pass 0 to derive one from
// the input's extent. If the points span fewer than four affinely
// independent positions at that tolerance, Build returns nil: a degenerate
// set yields no hull, never an error.
func Build(points []v3.Vec, eps float64) *ConvexHull {
	if len(points) < 4 {
		return nil
	}
	if eps <= 0 {
		eps = autoEpsilon(points)
	}

	faces := initialSimplex(points, eps)
	if faces == nil {
		return nil
	}

	// Claim every point for the first facet it lies outside of. Points
	// inside all four simplex facets are interior from the start.
	onSimplex := make(map[int]bool, 4)
	for _, f := range faces {
		for _, vi := range f.v {
			onSimplex[vi] = true
		}
	}
	for i, p := range points {
		if onSimplex[i] {
			continue
		}
		claim(faces, i, p, eps)
	}

	// Each round consumes the furthest outside point of some facet, so the
	// loop is bounded by the input size; the guard catches tolerance
	// pathologies without looping forever.
	maxRounds := 4*len(points) + 16
	for round := 0; round < maxRounds; round++ {
		fi := nextOpenFace(faces)
		if fi < 0 {
			break
		}
		faces = expand(faces, points, fi, eps)
	}

	return gather(faces, points)
}

// initialSimplex finds four affinely independent points and returns the four
// outward-wound facets of their tetrahedron, or nil if the input is
// degenerate at the given tolerance.
func initialSimplex(points []v3.Vec, eps float64) []*qhFace {
	// Extreme points along each axis bound the spread.
	extremes := make([]int, 0, 6)
	minI := [3]int{0, 0, 0}
	maxI := [3]int{0, 0, 0}
	coord := func(p v3.Vec, axis int) float64 {
		switch axis {
		case 0:
			return p.X
		case 1:
			return p.Y
		}
		return p.Z
	}
	for i, p := range points {
		for a := 0; a < 3; a++ {
			if coord(p, a) < coord(points[minI[a]], a) {
				minI[a] = i
			}
			if coord(p, a) > coord(points[maxI[a]], a) {
				maxI[a] = i
			}
		}
	}
	for a := 0; a < 3; a++ {
		extremes = append(extremes, minI[a], maxI[a])
	}

	// Farthest extreme pair spans the base edge.
	i0, i1 := -1, -1
	best := 0.0
	for x := 0; x < len(extremes); x++ {
		for y := x + 1; y < len(extremes); y++ {
			d := points[extremes[x]].Sub(points[extremes[y]]).Length2()
			if d > best {
				best = d
				i0, i1 = extremes[x], extremes[y]
			}
		}
	}
	if i0 < 0 || math.Sqrt(best) <= eps {
		return nil // all points coincident
	}

	// Furthest point from the base line completes the base triangle.
	a, b := points[i0], points[i1]
	dir := b.Sub(a).Normalize()
	i2, best := -1, eps
	for i, p := range points {
		if i == i0 || i == i1 {
			continue
		}
		d := p.Sub(a).Cross(dir).Length()
		if d > best {
			best = d
			i2 = i
		}
	}
	if i2 < 0 {
		return nil // collinear
	}

	// Furthest point from the base plane completes the tetrahedron.
	c := points[i2]
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	i3, bestAbs := -1, eps
	bestSigned := 0.0
	for i, p := range points {
		if i == i0 || i == i1 || i == i2 {
			continue
		}
		d := n.Dot(p.Sub(a))
		if math.Abs(d) > bestAbs {
			bestAbs = math.Abs(d)
			bestSigned = d
			i3 = i
		}
	}
	if i3 < 0 {
		return nil // coplanar
	}
	if bestSigned > 0 {
		// Flip the base so the apex lies below it.
		i1, i2 = i2, i1
	}

	return []*qhFace{
		newFace(points, i0, i1, i2),
		newFace(points, i0, i2, i3),
		newFace(points, i2, i1, i3),
		newFace(points, i1, i0, i3),
	}
}

func newFace(points []v3.Vec, i, j, k int) *qhFace {
	a, b, c := points[i], points[j], points[k]
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l > 0 {
		n = n.DivScalar(l)
	}
	return &qhFace{
		v:      [3]int{i, j, k},
		normal: n,
		offset: n.Dot(a),
	}
}

// claim assigns point i to the first live facet it lies outside of. Points
// inside every facet are interior and stay unclaimed.
func claim(faces []*qhFace, i int, p v3.Vec, eps float64) {
	for _, f := range faces {
		if f.removed {
			continue
		}
		if f.dist(p) > eps {
			f.outside = append(f.outside, i)
			return
		}
	}
}

func nextOpenFace(faces []*qhFace) int {
	for i, f := range faces {
		if !f.removed && len(f.outside) > 0 {
			return i
		}
	}
	return -1
}

// expand consumes the furthest outside point of faces[fi]: removes every
// facet visible from it, walks the horizon, and fans new facets from the
// horizon edges to the point.
func expand(faces []*qhFace, points []v3.Vec, fi int, eps float64) []*qhFace {
	f := faces[fi]
	apex := f.outside[0]
	bestD := f.dist(points[apex])
	for _, i := range f.outside[1:] {
		if d := f.dist(points[i]); d > bestD {
			bestD = d
			apex = i
		}
	}
	p := points[apex]

	// Visibility scan over all live facets. The visible region of a convex
	// surface is connected, so membership alone is enough to find it.
	var visible []*qhFace
	for _, vf := range faces {
		if !vf.removed && vf.dist(p) > eps {
			visible = append(visible, vf)
		}
	}

	// Directed edges of the visible region; a horizon edge is one whose
	// reverse belongs to a hidden facet.
	type edge [2]int
	edgeSet := make(map[edge]bool)
	var edgeOrder []edge
	for _, vf := range visible {
		for e := 0; e < 3; e++ {
			de := edge{vf.v[e], vf.v[(e+1)%3]}
			edgeSet[de] = true
			edgeOrder = append(edgeOrder, de)
		}
	}

	var orphans []int
	for _, vf := range visible {
		for _, o := range vf.outside {
			if o != apex {
				orphans = append(orphans, o)
			}
		}
		vf.removed = true
		vf.outside = nil
	}

	var created []*qhFace
	for _, de := range edgeOrder {
		if edgeSet[edge{de[1], de[0]}] {
			continue // interior edge of the visible region
		}
		// The hidden neighbor traverses this edge as (v,u); the new facet
		// keeps (u,v) so windings stay consistent.
		created = append(created, newFace(points, de[0], de[1], apex))
	}
	faces = append(faces, created...)

	for _, o := range orphans {
		claim(created, o, points[o], eps)
	}
	return faces
}

// gather compacts the surviving facets into a ConvexHull, recording the
// input indices that did not become hull vertices.
func gather(faces []*qhFace, points []v3.Vec) *ConvexHull {
	remap := make(map[int]int)
	h := &ConvexHull{}
	for _, f := range faces {
		if f.removed {
			continue
		}
		var tri [3]int
		for i, vi := range f.v {
			ni, ok := remap[vi]
			if !ok {
				ni = len(h.Verts)
				h.Verts = append(h.Verts, points[vi])
				remap[vi] = ni
			}
			tri[i] = ni
		}
		h.Faces = append(h.Faces, tri)
	}
	if len(h.Faces) < 4 {
		return nil
	}
	for i := range points {
		if _, ok := remap[i]; !ok {
			h.Interior = append(h.Interior, i)
		}
	}
	return h
}
