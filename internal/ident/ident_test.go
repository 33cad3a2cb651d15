package ident

import (
	"strings"
	"testing"
)

// TestNewUnique verifies that consecutive IDs differ. The generator mixes a
// random fragment with a millisecond timestamp, so two calls in the same
// millisecond must still diverge.
func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := New()
		if id == "" {
			t.Fatal("empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}

// TestExercisePrefix verifies the ej- addressing prefix.
func TestExercisePrefix(t *testing.T) {
	id := Exercise()
	if !strings.HasPrefix(id, "ej-") {
		t.Errorf("Exercise() = %q, want ej- prefix", id)
	}
}

// TestSetComposition verifies set IDs embed the parent exercise and position.
func TestSetComposition(t *testing.T) {
	id := Set("ej-abc123", 2)
	if !strings.HasPrefix(id, "s-ej-abc123-2-") {
		t.Errorf("Set() = %q, want s-ej-abc123-2- prefix", id)
	}
	if id == "s-ej-abc123-2-" {
		t.Error("set ID missing random suffix")
	}
}
