package markov

import (
	"slices"
	"strings"
	"testing"

	"github.com/CTAG07/namegen/pkg/textgen"
)

var greekNames = []string{
	"Achilles", "Aeolus", "Agamemnon", "Ajax", "Alcmene", "Andromeda", "Antigone",
	"Aphrodite", "Apollo", "Ares", "Ariadne", "Artemis", "Asclepius", "Athena",
	"Atlas", "Atreus", "Calliope", "Cassandra", "Castor", "Cronus", "Daedalus",
	"Danae", "Demeter", "Dionysus", "Electra", "Eros", "Europa", "Eurydice",
	"Gaia", "Hades", "Hector", "Helios", "Hephaestus", "Hera", "Heracles",
	"Hermes", "Hestia", "Hyperion", "Icarus", "Iphigenia", "Jason", "Leda",
	"Medea", "Medusa", "Menelaus", "Morpheus", "Narcissus", "Nereus",
	"Odysseus", "Oedipus", "Orpheus", "Pandora", "Peleus", "Penelope",
	"Persephone", "Perseus", "Poseidon", "Priam", "Prometheus", "Proteus",
	"Rhea", "Selene", "Sisyphus", "Tantalus", "Telemachus", "Tethys",
	"Themis", "Theseus", "Thetis", "Typhon", "Uranus", "Xanthus", "Zephyrus",
	"Zeus",
}

// setupGenerator returns a generator with a fixed seed, trained on greekNames.
func setupGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g := New(append([]Option{WithSource(textgen.NewSource(1))}, opts...)...)
	g.Train(slices.Values(greekNames))
	if !g.IsTrained() {
		t.Fatalf("setup: generator is not trained")
	}
	return g
}

func setupGeneratorBench(b *testing.B, opts ...Option) *Generator {
	b.Helper()
	g := New(append([]Option{WithSource(textgen.NewSource(1))}, opts...)...)
	g.Train(slices.Values(createBenchmarkCorpus()))
	return g
}

// createBenchmarkCorpus derives a larger word list by pairing names.
func createBenchmarkCorpus() []string {
	corpus := make([]string, 0, len(greekNames)*len(greekNames))
	for _, a := range greekNames {
		for _, b := range greekNames {
			corpus = append(corpus, a[:len(a)/2]+strings.ToLower(b[len(b)/2:]))
		}
	}
	return corpus
}

// learned reports whether every rune of s occurs in the generator's alphabet.
func learned(g *Generator, s string) bool {
	for _, r := range s {
		if !slices.Contains(g.Alphabet(), r) {
			return false
		}
	}
	return true
}
