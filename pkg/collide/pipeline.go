package collide

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/hull"
	"github.com/theanine3d/collidegen/pkg/kernel"
)

// CollisionSuffix marks generated collision models. An input already
// carrying it is refused to prevent double-processing.
const CollisionSuffix = "_phys"

var (
	// ErrNoMesh reports a missing or empty input selection.
	ErrNoMesh = errors.New("no active mesh")

	// ErrAlreadyCollision reports an input that is itself a generated
	// collision model.
	ErrAlreadyCollision = errors.New("selection is already a collision model")
)

// Summary reports one pipeline run for user feedback.
type Summary struct {
	Extracted int // connected hull candidates found
	Dropped   int // candidates too degenerate to convexify
	Merged    int // hulls merged away by the similarity pass
	Culled    int // hulls removed as fully enclosed
	Hulls     int // hulls in the final set
}

func (s Summary) String() string {
	return fmt.Sprintf("%d hulls (%d extracted, %d degenerate, %d merged, %d culled)",
		s.Hulls, s.Extracted, s.Dropped, s.Merged, s.Culled)
}

// Pipeline runs the full decomposition for one object. The input mesh is
// never mutated; all work happens on a scaled working copy that is handed
// off as the result.
type Pipeline struct {
	Simplifier kernel.Simplifier
	Opts       Options

	// MergePass and CullPass enable the optional cleanup stages.
	MergePass bool
	CullPass  bool
}

// Run turns a visual mesh into a set of convex hulls and the unioned
// collision mesh. Returns the mesh, the hull set, and a run summary.
func (p *Pipeline) Run(m *geom.Mesh) (*geom.Mesh, []*hull.ConvexHull, Summary, error) {
	var sum Summary

	if err := p.Opts.Validate(); err != nil {
		return nil, nil, sum, err
	}
	if m == nil || m.IsEmpty() {
		return nil, nil, sum, ErrNoMesh
	}
	if strings.Contains(m.Name, CollisionSuffix) {
		return nil, nil, sum, fmt.Errorf("%w: %q", ErrAlreadyCollision, m.Name)
	}

	work := m.Clone()
	work.Name = m.Name + CollisionSuffix

	// Resize per the scale modifier so the exponential thresholds see the
	// size the user intends; undone before hand-off.
	scale := math.Pow(10, float64(p.Opts.ScaleModifier))
	if scale != 1 {
		work.Scale(scale)
	}

	longest := work.Bounds().LongestDim()
	simplifier := p.Simplifier
	if simplifier == nil {
		simplifier = kernel.WeldSimplifier{}
	}
	simplified, err := simplifier.Simplify(work, kernel.SimplifyOptions{
		DoublesThreshold: geom.DoublesThreshold(longest),
		DecimateRatio:    p.Opts.DecimateRatio,
		ExtrudeDistance:  geom.ExtrudeFactor(longest, p.Opts.ExtrudeModifier),
	})
	if err != nil {
		return nil, nil, sum, fmt.Errorf("simplify: %w", err)
	}

	candidates := Extract(simplified)
	sum.Extracted = len(candidates)

	hulls, dropped := Convexify(candidates, p.Opts.Epsilon)
	sum.Dropped = dropped

	if p.MergePass {
		var mres MergeResult
		hulls, mres = MergeSimilar(hulls, p.Opts)
		sum.Merged = mres.Merged
	}
	if p.CullPass {
		var culled int
		hulls, culled = CullContained(hulls)
		sum.Culled = culled
	}
	sum.Hulls = len(hulls)

	// Uniform scaling preserves convexity, so the hulls rescale in place.
	if scale != 1 {
		for _, h := range hulls {
			for i := range h.Verts {
				h.Verts[i] = h.Verts[i].DivScalar(scale)
			}
		}
	}

	out := geom.NewMesh(work.Name)
	for _, h := range hulls {
		out.Join(h.Mesh(""))
	}
	return out, hulls, sum, nil
}
