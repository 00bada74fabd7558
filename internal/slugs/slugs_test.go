package slugs_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-manuscript/internal/slugs"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := slugs.Normalize("  Results and Discussion ")
	if got == "" {
		t.Fatal("Normalize() returned empty for a latin title")
	}
	if strings.ContainsAny(got, " ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		t.Errorf("Normalize() = %q, want lower-case without spaces", got)
	}
	if got := slugs.Normalize("   "); got != "" {
		t.Errorf("Normalize(blank) = %q, want empty", got)
	}
}

func TestSet_Make(t *testing.T) {
	t.Parallel()

	s := slugs.NewSet("sec-")

	first := s.Make("Methods")
	second := s.Make("Methods")
	third := s.Make("Methods")

	if !strings.HasPrefix(first, "sec-") {
		t.Errorf("Make() = %q, want sec- prefix", first)
	}
	if second != first+"-2" {
		t.Errorf("second = %q, want %q", second, first+"-2")
	}
	if third != first+"-3" {
		t.Errorf("third = %q, want %q", third, first+"-3")
	}
}

func TestSet_MakeFallback(t *testing.T) {
	t.Parallel()

	s := slugs.NewSet("sec-")
	s.Make("Intro")
	if got := s.Make(""); got != "sec-2" {
		t.Errorf("Make(empty) = %q, want positional %q", got, "sec-2")
	}
}

func TestSet_MakeUnique(t *testing.T) {
	t.Parallel()

	s := slugs.NewSet("fig-")
	seen := map[string]bool{}
	for _, title := range []string{"A", "A", "A-2", "A", "b", "B"} {
		id := s.Make(title)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
