package markov

import (
	"slices"
	"testing"
)

func TestPrune(t *testing.T) {
	g := setupGeneratorFromWords(t, WithOrder(3))
	before := g.Stats()

	removed := g.Prune(1)
	if removed == 0 {
		t.Fatal("expected Prune(1) to remove rare transitions")
	}
	after := g.Stats()
	if after.Transitions != before.Transitions-removed {
		t.Errorf("Transitions = %d, want %d", after.Transitions, before.Transitions-removed)
	}

	if n := g.tables.observations["c"]['e']; n != 1 {
		t.Errorf("single-rune contexts must survive pruning, got count %d", n)
	}
	if _, ok := g.tables.observations["bc"]['e']; ok {
		t.Error("expected rare transition bc->e to be pruned")
	}
	if n := g.tables.observations["bc"]['d']; n != 2 {
		t.Errorf("expected frequent transition bc->d to survive, got %d", n)
	}
	if _, ok := g.tables.observations["ce"]; ok {
		t.Error("expected emptied context 'ce' to be dropped")
	}
	if after.Contexts[1] != before.Contexts[1] {
		t.Errorf("single-rune contexts changed from %d to %d", before.Contexts[1], after.Contexts[1])
	}

	for i := 0; i < 100; i++ {
		if _, err := g.GenerateOne(); err != nil {
			t.Fatalf("GenerateOne() after Prune failed: %v", err)
		}
	}
}

func TestPruneZero(t *testing.T) {
	g := setupGenerator(t)
	before := g.Stats()
	if removed := g.Prune(0); removed != 0 {
		t.Errorf("Prune(0) removed %d transitions", removed)
	}
	if g.Stats().Transitions != before.Transitions {
		t.Error("Prune(0) changed the model")
	}
}

func setupGeneratorFromWords(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g := New(opts...)
	g.Train(slices.Values([]string{"abcd", "abce", "abcd"}))
	return g
}
