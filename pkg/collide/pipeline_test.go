package collide

import (
	"errors"
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/kernel"
)

func TestPipelineTwoBoxes(t *testing.T) {
	m := box(v3.Vec{}, 1)
	m.Join(box(v3.Vec{X: 5}, 1))
	m.Name = "crate"

	p := &Pipeline{Opts: DefaultOptions()}
	out, hulls, sum, err := p.Run(m)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hulls) != 2 {
		t.Fatalf("hull count = %d, want 2", len(hulls))
	}
	if sum.Extracted != 2 || sum.Dropped != 0 || sum.Hulls != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if out.Name != "crate_phys" {
		t.Errorf("output name = %q, want crate_phys", out.Name)
	}
	if out.FaceCount() != 24 {
		t.Errorf("output faces = %d, want 24", out.FaceCount())
	}

	for i, h := range hulls {
		if v := h.Volume(); math.Abs(v-1) > 1e-9 {
			t.Errorf("hull %d volume = %f, want 1", i, v)
		}
	}
	// Input untouched.
	if m.Name != "crate" || m.FaceCount() != 12 {
		t.Errorf("input mutated: name %q, %d faces", m.Name, m.FaceCount())
	}
}

func TestPipelineRejectsNilAndEmpty(t *testing.T) {
	p := &Pipeline{Opts: DefaultOptions()}

	if _, _, _, err := p.Run(nil); !errors.Is(err, ErrNoMesh) {
		t.Errorf("nil mesh err = %v, want ErrNoMesh", err)
	}
	if _, _, _, err := p.Run(geom.NewMesh("empty")); !errors.Is(err, ErrNoMesh) {
		t.Errorf("empty mesh err = %v, want ErrNoMesh", err)
	}
}

func TestPipelineRejectsCollisionModel(t *testing.T) {
	m := box(v3.Vec{}, 1)
	m.Name = "crate_phys"

	p := &Pipeline{Opts: DefaultOptions()}
	_, _, _, err := p.Run(m)
	if !errors.Is(err, ErrAlreadyCollision) {
		t.Fatalf("err = %v, want ErrAlreadyCollision", err)
	}
	if !strings.Contains(err.Error(), "crate_phys") {
		t.Errorf("error does not name the offending object: %v", err)
	}
}

func TestPipelineRejectsBadOptions(t *testing.T) {
	m := box(v3.Vec{}, 1)
	m.Name = "crate"

	opts := DefaultOptions()
	opts.SimilarThreshold = 1.5

	p := &Pipeline{Opts: opts}
	if _, _, _, err := p.Run(m); !errors.Is(err, ErrBadConfig) {
		t.Errorf("err = %v, want ErrBadConfig", err)
	}
}

func TestPipelineMergePass(t *testing.T) {
	// Two touching, similar boxes. Welding would fuse them into a single
	// component, so the pass runs behind a passthrough simplifier; the
	// boxes then extract as two coincident hulls that the merge pass
	// collapses into one.
	build := func() *geom.Mesh {
		m := box(v3.Vec{}, 1)
		m.Join(box(v3.Vec{X: 1}, 1))
		m.Name = "wall"
		return m
	}

	p := &Pipeline{Simplifier: kernel.PassthroughSimplifier{}, Opts: DefaultOptions()}
	_, hulls, _, err := p.Run(build())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hulls) != 2 {
		t.Fatalf("hull count without merge = %d, want 2", len(hulls))
	}

	p.MergePass = true
	_, hulls, sum, err := p.Run(build())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hulls) != 1 || sum.Merged != 1 {
		t.Errorf("hulls = %d, merged = %d; want 1 and 1", len(hulls), sum.Merged)
	}
}

func TestPipelineScaleModifierRoundTrip(t *testing.T) {
	m := box(v3.Vec{}, 1)
	m.Name = "crate"

	opts := DefaultOptions()
	opts.ScaleModifier = 2

	p := &Pipeline{Opts: opts}
	_, hulls, _, err := p.Run(m)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(hulls) != 1 {
		t.Fatalf("hull count = %d, want 1", len(hulls))
	}
	if v := hulls[0].Volume(); math.Abs(v-1) > 1e-6 {
		t.Errorf("volume after scale round trip = %f, want 1", v)
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{Extracted: 5, Dropped: 1, Merged: 2, Culled: 1, Hulls: 1}
	got := s.String()
	for _, want := range []string{"1 hulls", "5 extracted", "1 degenerate", "2 merged", "1 culled"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
