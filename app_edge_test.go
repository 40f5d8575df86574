package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Empty console input produces no hulls and no errors.
// ---------------------------------------------------------------------------

func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Hulls) != 0 {
		t.Errorf("expected 0 hulls for empty source, got %d", len(result.Hulls))
	}
	// Slices must be non-nil so JSON serializes [] rather than null.
	if result.Hulls == nil {
		t.Error("Hulls should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
}

// ---------------------------------------------------------------------------
// Syntax errors surface as eval errors, never as a panic or fatal error.
// ---------------------------------------------------------------------------

func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()

	result := app.Evaluate("(+ 1 2)\n(box \"test\"")
	if len(result.Errors) == 0 {
		t.Fatal("expected errors for unclosed paren")
	}
	if len(result.Hulls) != 0 {
		t.Errorf("expected no hulls on syntax error, got %d", len(result.Hulls))
	}
	for _, e := range result.Errors {
		if e.Message == "" {
			t.Error("error carries no message")
		}
	}
}

// ---------------------------------------------------------------------------
// Runtime errors from builtins carry the operator name for the console.
// ---------------------------------------------------------------------------

func TestE2EBuiltinError(t *testing.T) {
	app := NewApp()

	result := app.Evaluate(`(generate "ghost")`)
	if len(result.Errors) == 0 {
		t.Fatal("expected error for unknown mesh")
	}
	joined := ""
	for _, e := range result.Errors {
		joined += e.Message + " "
	}
	if !strings.Contains(joined, "generate") {
		t.Errorf("errors should name the operator: %q", joined)
	}
}

// ---------------------------------------------------------------------------
// Generating from a collision model is refused, and the refusal reaches the
// console as an eval error.
// ---------------------------------------------------------------------------

func TestE2ERegenerateRefused(t *testing.T) {
	app := NewApp()

	result := app.Evaluate(`(box "a" :size (vec3 1 1 1)) (generate "a")`)
	if len(result.Errors) != 0 {
		t.Fatalf("setup failed: %v", result.Errors)
	}

	result = app.Evaluate(`(generate "a_phys")`)
	if len(result.Errors) == 0 {
		t.Fatal("expected refusal to decompose a collision model")
	}
	if !strings.Contains(result.Errors[0].Message, "collision") {
		t.Errorf("error = %q, want the already-collision refusal", result.Errors[0].Message)
	}
}

// ---------------------------------------------------------------------------
// Session state survives an evaluation that errors part way through.
// ---------------------------------------------------------------------------

func TestE2EStateSurvivesError(t *testing.T) {
	app := NewApp()

	result := app.Evaluate(`(box "keep" :size (vec3 1 1 1))`)
	if len(result.Errors) != 0 {
		t.Fatalf("setup failed: %v", result.Errors)
	}

	result = app.Evaluate(`(generate "missing")`)
	if len(result.Errors) == 0 {
		t.Fatal("expected error")
	}

	if _, err := app.Session().Mesh("keep"); err != nil {
		t.Errorf("mesh lost after failed evaluation: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Re-running generate on the same source mesh replaces the hull set rather
// than accumulating.
// ---------------------------------------------------------------------------

func TestE2ERegenerateReplaces(t *testing.T) {
	app := NewApp()

	for i := 0; i < 2; i++ {
		result := app.Evaluate(`(box "a" :size (vec3 1 1 1)) (generate "a")`)
		if len(result.Errors) != 0 {
			t.Fatalf("run %d failed: %v", i, result.Errors)
		}
	}
	hulls, err := app.Session().HullSet("a_phys")
	if err != nil {
		t.Fatal(err)
	}
	if len(hulls) != 1 {
		t.Errorf("hull count = %d, want 1 (set replaced, not appended)", len(hulls))
	}
}
