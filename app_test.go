package main

import (
	"os"
	"strings"
	"testing"
)

// TestE2ECrateExample exercises the full path a host binding takes: console
// source → engine → pipeline → hull data, without any UI runtime.
func TestE2ECrateExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/crate.lisp")
	if err != nil {
		t.Fatalf("failed to read crate.lisp: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Both fixtures decompose to one hull each.
	if len(result.Hulls) != 2 {
		t.Fatalf("expected 2 hulls, got %d", len(result.Hulls))
	}

	sets := map[string]bool{}
	for _, h := range result.Hulls {
		sets[h.SetName] = true
		if len(h.Vertices) == 0 || len(h.Indices) == 0 {
			t.Errorf("hull in %q has empty geometry", h.SetName)
		}
		if len(h.Vertices)%3 != 0 || len(h.Indices)%3 != 0 {
			t.Errorf("hull in %q has ragged arrays", h.SetName)
		}
		if h.Color == "" {
			t.Errorf("hull in %q has no color", h.SetName)
		}
		if h.Volume <= 0 {
			t.Errorf("hull in %q has volume %f", h.SetName, h.Volume)
		}
	}
	for _, want := range []string{"crate_phys", "post_phys"} {
		if !sets[want] {
			t.Errorf("missing hull set %q", want)
		}
	}

	// The script ends with (stats ...), so the output reports the set.
	if !strings.Contains(result.Output, "crate_phys") {
		t.Errorf("output = %q, want the stats line", result.Output)
	}
}
