package textgen

import (
	"slices"
	"strings"
	"testing"
)

// greekNames is a small training set of mythological names.
var greekNames = []string{
	"Aphrodite", "Artemis", "Athena", "Apollo", "Ares", "Demeter", "Dionysus", "Hades", "Hephaestus", "Hermes",
	"Hestia", "Poseidon", "Zeus", "Coeus", "Crius", "Cronus", "Hyperion", "Iapetus", "Mnemosyne", "Oceanus", "Phoebe",
	"Rhea", "Tethys", "Theia", "Themis", "Asteria", "Astraeus", "Atlas", "Aura", "Clymene", "Dione", "Helios", "Selene",
	"Eos", "Epimetheus", "Eurybia", "Eurynome", "Lelantos", "Leto", "Menoetius", "Metis", "Ophion", "Pallas", "Perses",
	"Prometheus", "Styx",
}

// setupDraw returns a RandomDraw trained on greekNames with a fixed seed.
func setupDraw(t *testing.T, seed uint64) *RandomDraw {
	t.Helper()
	d := NewRandomDraw(Filter{}, NewSource(seed))
	d.Train(slices.Values(greekNames))
	if !d.IsTrained() {
		t.Fatalf("setup: RandomDraw reports untrained after Train")
	}
	return d
}

// stubGenerator returns canned strings in order and records the parameters of
// each Generate call.
type stubGenerator struct {
	outputs []string
	err     error
	calls   []Filter
}

func (s *stubGenerator) GenerateOne() (string, error) {
	return s.Generate(0, 0, "", "")
}

func (s *stubGenerator) Generate(minLength, maxLength int, startsWith, endsWith string) (string, error) {
	s.calls = append(s.calls, Filter{MinLength: minLength, MaxLength: maxLength, StartsWith: startsWith, EndsWith: endsWith})
	if s.err != nil {
		return "", s.err
	}
	if len(s.outputs) == 0 {
		return "", nil
	}
	out := s.outputs[0]
	s.outputs = s.outputs[1:]
	return out, nil
}

func lowered(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
