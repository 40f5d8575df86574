package collide

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/theanine3d/collidegen/pkg/hull"
)

// cullEntry pairs a hull with its precomputed bounds for the R-tree.
type cullEntry struct {
	id     int
	hull   *hull.ConvexHull
	bounds rtreego.Rect
}

func (e *cullEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// CullContained removes every hull wholly enclosed by another hull in the
// set. A hull is enclosed when some other hull's bounding box strictly
// contains its own and no facet of that outer hull faces its centroid. All
// decisions are made against the original set, so culling is a pure filter:
// running it twice removes nothing on the second pass.
func CullContained(hulls []*hull.ConvexHull) ([]*hull.ConvexHull, int) {
	if len(hulls) < 2 {
		return hulls, 0
	}

	entries := make([]*cullEntry, len(hulls))
	tree := rtreego.NewTree(3, 2, 8)
	for i, h := range hulls {
		entries[i] = &cullEntry{id: i, hull: h, bounds: rectOf(h.Bounds(), 0)}
		tree.Insert(entries[i])
	}

	removed := make([]bool, len(hulls))
	for i, inner := range hulls {
		innerBB := inner.Bounds()
		centroid := inner.Centroid()

		// Only hulls whose bbox overlaps this one can enclose it.
		var candidates []int
		for _, sp := range tree.SearchIntersect(entries[i].bounds) {
			candidates = append(candidates, sp.(*cullEntry).id)
		}
		sort.Ints(candidates)

		for _, j := range candidates {
			if j == i {
				continue
			}
			outer := hulls[j]
			outerBB := outer.Bounds()
			if !outerBB.Contains(innerBB) {
				continue
			}
			if outerBB.LongestDim() <= innerBB.LongestDim() {
				continue
			}
			if outer.FacesToward(centroid) == 0 {
				removed[i] = true
				break
			}
		}
	}

	var out []*hull.ConvexHull
	culled := 0
	for i, h := range hulls {
		if removed[i] {
			culled++
			continue
		}
		out = append(out, h)
	}
	return out, culled
}
