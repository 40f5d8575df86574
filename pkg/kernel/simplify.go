package kernel

import (
	"github.com/theanine3d/collidegen/pkg/geom"
)

// SimplifyOptions parameterizes one simplification call. The engine computes
// the scale-dependent thresholds; the collaborator decides how to honor
// them.
type SimplifyOptions struct {
	// DoublesThreshold is the vertex weld distance.
	DoublesThreshold float64

	// DecimateRatio in [0,1]; 1 keeps every face. Collaborators without a
	// decimator may ignore it.
	DecimateRatio float64

	// ExtrudeDistance thickens hulls by moving faces inward (negative
	// values). Collaborators without extrusion may ignore it.
	ExtrudeDistance float64
}

// Simplifier is the narrow mesh-in/mesh-out boundary to the external
// simplification stage (decimation, planar merging, doubles removal). The
// engine calls it once per run, before hull extraction, and never
// re-simplifies.
type Simplifier interface {
	Simplify(m *geom.Mesh, opts SimplifyOptions) (*geom.Mesh, error)
}

// WeldSimplifier is the built-in minimal collaborator: it welds coincident
// vertices at the doubles threshold and compacts unused geometry. It is the
// only polygon editing the engine owns; decimation and extrusion require a
// real host.
type WeldSimplifier struct{}

// Compile-time interface check.
var _ Simplifier = WeldSimplifier{}

// Simplify welds doubles on a copy of m.
func (WeldSimplifier) Simplify(m *geom.Mesh, opts SimplifyOptions) (*geom.Mesh, error) {
	out := m.Clone()
	out.WeldVerts(opts.DoublesThreshold)
	out.Compact()
	return out, nil
}

// PassthroughSimplifier returns the input unchanged. Used when the mesh was
// already simplified by the host before hand-off.
type PassthroughSimplifier struct{}

var _ Simplifier = PassthroughSimplifier{}

func (PassthroughSimplifier) Simplify(m *geom.Mesh, _ SimplifyOptions) (*geom.Mesh, error) {
	return m, nil
}
