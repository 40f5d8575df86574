package collide

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/hull"
)

// ProximityFactor bounds merge candidates to centroids closer than
// ProximityFactor times the cube root of the first hull's volume.
const ProximityFactor = 2.5

// record tracks one hull through a merge pass. A tombstoned record was
// consumed by a merge and is never compared again.
type record struct {
	id       int
	hull     *hull.ConvexHull
	volume   float64
	faces    int
	centroid v3.Vec
	keys     map[geom.WeldKey]struct{}
	dead     bool
}

func (r *record) Bounds() rtreego.Rect {
	return rectOf(r.hull.Bounds(), 0)
}

// MergeResult reports a merge pass for user feedback.
type MergeResult struct {
	Input  int // hulls going in
	Merged int // net hulls merged away
}

// MergeSimilar performs one similarity-merge pass over the hull set.
//
// Candidate pairs are visited in index order; a pair merges when the second
// hull's volume and face count sit inside the symmetric band
// [s·v, (2−s)·v] around the first's, the centroids are within
// ProximityFactor·volume^(1/3), and the two hulls share a welded vertex.
// Both inputs are tombstoned on a merge and their vertex union is
// re-convexified into a new surviving hull.
//
// The pass is single and non-cascading: a hull created by a
// merge is not compared against the remainder. Convergence is the caller's
// loop (invoke the pass again), which keeps each pass's cost bounded.
func MergeSimilar(hulls []*hull.ConvexHull, opts Options) ([]*hull.ConvexHull, MergeResult) {
	res := MergeResult{Input: len(hulls)}
	if len(hulls) < 2 {
		// Nothing to merge; informational, not an error.
		return hulls, res
	}

	recs := make([]*record, len(hulls))
	tree := rtreego.NewTree(3, 2, 8)
	for i, h := range hulls {
		recs[i] = &record{
			id:       i,
			hull:     h,
			volume:   h.Volume(),
			faces:    h.FaceCount(),
			centroid: h.Centroid(),
			keys:     weldKeys(h.Verts, opts.WeldTolerance),
		}
		tree.Insert(recs[i])
	}

	s := opts.SimilarThreshold
	var created []*hull.ConvexHull

	for i := 0; i < len(recs); i++ {
		a := recs[i]
		if a.dead {
			continue
		}
		radius := ProximityFactor * math.Cbrt(math.Abs(a.volume))

		for _, j := range candidatesNear(tree, a.centroid, radius) {
			if j <= i {
				continue
			}
			b := recs[j]
			if a.dead || b.dead {
				continue
			}
			if !similar(a, b, s, radius) {
				continue
			}

			union := make([]v3.Vec, 0, len(a.hull.Verts)+len(b.hull.Verts))
			union = append(union, a.hull.Verts...)
			union = append(union, b.hull.Verts...)
			merged := hull.Build(union, opts.Epsilon)
			if merged == nil {
				// Degenerate union; absorb and keep both hulls.
				continue
			}

			a.dead = true
			b.dead = true
			created = append(created, merged)
			res.Merged++
			break // first match wins; a is consumed
		}
	}

	out := make([]*hull.ConvexHull, 0, len(hulls)-res.Merged)
	for _, r := range recs {
		if !r.dead {
			out = append(out, r.hull)
		}
	}
	out = append(out, created...)
	return out, res
}

// similar applies the three scalar similarity tests plus weld adjacency.
func similar(a, b *record, s, radius float64) bool {
	lo, hi := s, 2-s
	if b.volume < lo*a.volume || b.volume > hi*a.volume {
		return false
	}
	fa, fb := float64(a.faces), float64(b.faces)
	if fb < lo*fa || fb > hi*fa {
		return false
	}
	if b.centroid.Sub(a.centroid).Length() >= radius {
		return false
	}
	return touches(a.keys, b.keys)
}

// touches reports whether the two welded vertex sets share a position.
func touches(a, b map[geom.WeldKey]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

func weldKeys(verts []v3.Vec, tol float64) map[geom.WeldKey]struct{} {
	keys := make(map[geom.WeldKey]struct{}, len(verts))
	for _, v := range verts {
		keys[geom.Weld(v, tol)] = struct{}{}
	}
	return keys
}

// candidatesNear returns the record ids whose bounding boxes intersect the
// cube of half-size radius around c, sorted for deterministic pair order.
func candidatesNear(tree *rtreego.Rtree, c v3.Vec, radius float64) []int {
	query := rectOf(geom.AABB{
		Min: c.Sub(v3.Vec{X: radius, Y: radius, Z: radius}),
		Max: c.Add(v3.Vec{X: radius, Y: radius, Z: radius}),
	}, 0)
	var ids []int
	for _, sp := range tree.SearchIntersect(query) {
		ids = append(ids, sp.(*record).id)
	}
	sort.Ints(ids)
	return ids
}

// rectOf converts a geom.AABB into an rtreego rectangle, padding so flat
// boxes keep the positive extents rtreego requires.
func rectOf(bb geom.AABB, pad float64) rtreego.Rect {
	if pad <= 0 {
		pad = 1e-9
	}
	size := bb.Size()
	r, err := rtreego.NewRect(
		rtreego.Point{bb.Min.X - pad, bb.Min.Y - pad, bb.Min.Z - pad},
		[]float64{size.X + 2*pad, size.Y + 2*pad, size.Z + 2*pad},
	)
	if err != nil {
		// Only reachable with NaN bounds; fall back to a unit rect.
		r, _ = rtreego.NewRect(rtreego.Point{0, 0, 0}, []float64{1, 1, 1})
	}
	return r
}
