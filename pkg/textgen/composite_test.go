package textgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComposite(t *testing.T) {
	t.Run("Default separator", func(t *testing.T) {
		c := NewComposite(&stubGenerator{outputs: []string{"jane"}}, &stubGenerator{outputs: []string{"doe"}}, "")
		got, err := c.GenerateOne()
		if err != nil {
			t.Fatalf("GenerateOne() error = %v", err)
		}
		if got != "jane doe" {
			t.Errorf("GenerateOne() got %q, want %q", got, "jane doe")
		}
	})

	t.Run("Custom separator appears exactly once", func(t *testing.T) {
		first := setupDraw(t, 1)
		second := setupDraw(t, 2)
		c := NewComposite(first, second, "-")
		for i := 0; i < 200; i++ {
			got, err := c.GenerateOne()
			if err != nil {
				t.Fatalf("GenerateOne() error = %v", err)
			}
			if n := strings.Count(got, "-"); n != 1 {
				t.Fatalf("expected exactly one separator in %q, found %d", got, n)
			}
		}
	})

	t.Run("SetSeparator allows empty", func(t *testing.T) {
		c := NewComposite(&stubGenerator{outputs: []string{"ab"}}, &stubGenerator{outputs: []string{"cd"}}, "-")
		c.SetSeparator("")
		got, _ := c.GenerateOne()
		if got != "abcd" {
			t.Errorf("GenerateOne() got %q, want %q", got, "abcd")
		}
	})

	t.Run("Parameters split between sides", func(t *testing.T) {
		first := &stubGenerator{outputs: []string{"a"}}
		second := &stubGenerator{outputs: []string{"b"}}
		c := NewComposite(first, second, " ")
		if _, err := c.Generate(3, 9, "st", "en"); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if diff := cmp.Diff([]Filter{{MinLength: 3, MaxLength: 9, StartsWith: "st"}}, first.calls); diff != "" {
			t.Errorf("first side calls mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]Filter{{MinLength: 3, MaxLength: 9, EndsWith: "en"}}, second.calls); diff != "" {
			t.Errorf("second side calls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Per-side filters", func(t *testing.T) {
		first := &stubGenerator{outputs: []string{"a"}}
		second := &stubGenerator{outputs: []string{"b"}}
		c := NewComposite(first, second, " ")
		a := Filter{MinLength: 2, StartsWith: "x"}
		b := Filter{MaxLength: 7, EndsWith: "y"}
		if _, err := c.GenerateSides(a, b); err != nil {
			t.Fatalf("GenerateSides() error = %v", err)
		}
		if diff := cmp.Diff([]Filter{a}, first.calls); diff != "" {
			t.Errorf("first side calls mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]Filter{b}, second.calls); diff != "" {
			t.Errorf("second side calls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Errors propagate", func(t *testing.T) {
		c := NewComposite(&stubGenerator{outputs: []string{"a"}}, NewRandomDraw(Filter{}, NewSource(1)), " ")
		if _, err := c.GenerateOne(); !errors.Is(err, ErrNotTrained) {
			t.Errorf("expected ErrNotTrained from untrained side, got %v", err)
		}
	})
}
