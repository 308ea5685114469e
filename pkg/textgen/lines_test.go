package textgen

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	seq, errFn := Lines(strings.NewReader("  Zeus \n\nHera\r\n\t\nApollo"))
	got := slices.Collect(seq)
	if err := errFn(); err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Zeus", "Hera", "Apollo"}, got); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestLinesError(t *testing.T) {
	boom := errors.New("disk on fire")
	seq, errFn := Lines(io.MultiReader(strings.NewReader("Zeus\n"), failingReader{err: boom}))
	got := slices.Collect(seq)
	if !errors.Is(errFn(), boom) {
		t.Errorf("expected %v, got %v", boom, errFn())
	}
	if len(got) != 1 || got[0] != "Zeus" {
		t.Errorf("expected the line read before the failure, got %v", got)
	}
}
