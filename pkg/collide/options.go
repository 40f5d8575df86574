package collide

import (
	"errors"
	"fmt"
)

// ErrBadConfig wraps all option range violations so callers can report them
// before any mutation or file write happens.
var ErrBadConfig = errors.New("invalid configuration")

// MaxHullsPerGroup is the engine's per-object hull budget. Exported objects
// never carry more hulls than this.
const MaxHullsPerGroup = 32

// Options carries the externally supplied tuning for one pipeline run.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// SimilarThreshold s bounds the volume and face-count band
	// [s·v, (2−s)·v] used by the similarity merger.
	SimilarThreshold float64

	// WeldTolerance is the vertex coincidence distance used for doubles
	// removal and merge adjacency.
	WeldTolerance float64

	// Epsilon is the coplanarity tolerance for hull construction.
	// Zero derives a tolerance from each candidate's extent.
	Epsilon float64

	// ThinRatio marks faces with area below ThinRatio times the mesh
	// average for removal.
	ThinRatio float64

	// ThinLinked also removes geometry connected to removed thin faces.
	ThinLinked bool

	// DecimateRatio is forwarded to the host simplifier.
	DecimateRatio float64

	// ExtrudeModifier scales the hull thickening extrusion.
	ExtrudeModifier float64

	// ScaleModifier resizes the working copy by 10^ScaleModifier before
	// processing, for meshes whose native scale defeats the thresholds.
	ScaleModifier int

	// MaxPerGroup is the partition cap. Fixed at MaxHullsPerGroup for
	// engine exports; kept settable for tests.
	MaxPerGroup int
}

// DefaultOptions are the defaults for a typical prop-scale decomposition.
func DefaultOptions() Options {
	return Options{
		SimilarThreshold: 0.9,
		WeldTolerance:    0.01,
		ThinRatio:        0.1,
		ThinLinked:       true,
		DecimateRatio:    0.5,
		ExtrudeModifier:  1.0,
		MaxPerGroup:      MaxHullsPerGroup,
	}
}

// Validate range-checks every option. It reports the first violation
// wrapped in ErrBadConfig.
func (o Options) Validate() error {
	if o.SimilarThreshold < 0.5 || o.SimilarThreshold > 1.0 {
		return fmt.Errorf("%w: similarity threshold %v outside [0.5, 1.0]", ErrBadConfig, o.SimilarThreshold)
	}
	if o.WeldTolerance <= 0 {
		return fmt.Errorf("%w: weld tolerance %v must be positive", ErrBadConfig, o.WeldTolerance)
	}
	if o.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon %v must not be negative", ErrBadConfig, o.Epsilon)
	}
	if o.ThinRatio <= 0 || o.ThinRatio > 0.5 {
		return fmt.Errorf("%w: thin ratio %v outside (0, 0.5]", ErrBadConfig, o.ThinRatio)
	}
	if o.DecimateRatio < 0 || o.DecimateRatio > 1 {
		return fmt.Errorf("%w: decimate ratio %v outside [0, 1]", ErrBadConfig, o.DecimateRatio)
	}
	if o.ExtrudeModifier <= 0 {
		return fmt.Errorf("%w: extrude modifier %v must be positive", ErrBadConfig, o.ExtrudeModifier)
	}
	if o.ScaleModifier < -5 || o.ScaleModifier > 5 {
		return fmt.Errorf("%w: scale modifier %d outside [-5, 5]", ErrBadConfig, o.ScaleModifier)
	}
	if o.MaxPerGroup < 1 {
		return fmt.Errorf("%w: max hulls per group %d must be at least 1", ErrBadConfig, o.MaxPerGroup)
	}
	return nil
}
