package markov

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// tables holds the raw training statistics. Weights are always derived from
// them, so blending, pruning and reweighting never lose information.
type tables struct {
	// order is the longest context the observations were gathered with.
	order         int
	datasetLength int
	alphabet      map[rune]struct{}
	// observations maps a context of 1..order runes to the runes seen
	// directly after it and how often.
	observations map[string]map[rune]int
}

func newTables(order int) *tables {
	return &tables{
		order:        order,
		alphabet:     make(map[rune]struct{}),
		observations: make(map[string]map[rune]int),
	}
}

func (t *tables) observe(context []rune, next rune) {
	key := string(context)
	counts, ok := t.observations[key]
	if !ok {
		counts = make(map[rune]int)
		t.observations[key] = counts
	}
	counts[next]++
}

// analyze records every context of length 1..order in word. The word is
// padded with order Control runes in front and one behind, so the first runes
// of a word are learned as following the word start.
func (t *tables) analyze(word []rune, order int) {
	padded := make([]rune, 0, order+len(word)+1)
	for range order {
		padded = append(padded, Control)
	}
	padded = append(padded, word...)
	padded = append(padded, Control)

	for o := 1; o <= order; o++ {
		for i := order - o; i+o < len(padded); i++ {
			t.observe(padded[i:i+o], padded[i+o])
		}
	}
}

// Train discards any previous model and learns from words. Blank entries are
// skipped and do not count towards the dataset length.
func (g *Generator) Train(words iter.Seq[string]) {
	t := newTables(g.order)
	g.ingest(t, words)
	g.install(t)
}

// TrainReader trains from r, one word per line. The previous model is kept
// if reading fails.
func (g *Generator) TrainReader(r io.Reader) error {
	words, readErr := textgen.Lines(r)
	t := newTables(g.order)
	g.ingest(t, words)
	if err := readErr(); err != nil {
		return fmt.Errorf("could not read training data: %w", err)
	}
	g.install(t)
	return nil
}

// Blend adds words to the existing model instead of replacing it. Use it to
// mix a second corpus into an already trained generator. The words are
// analysed at the order the model was trained with, even if SetOrder has
// been called since; an untrained generator is simply trained.
func (g *Generator) Blend(words iter.Seq[string]) {
	if !g.IsTrained() {
		g.Train(words)
		return
	}
	g.ingest(g.tables, words)
	g.install(g.tables)
}

func (g *Generator) ingest(t *tables, words iter.Seq[string]) {
	for word := range words {
		word = g.normalize(word, true)
		if word == "" {
			continue
		}
		runes := []rune(word)
		for _, r := range runes {
			t.alphabet[r] = struct{}{}
		}
		t.analyze(runes, t.order)
		t.datasetLength++
	}
}

// install derives the sorted alphabet and the weight tables from t and makes
// them current. Every observed context gets a weight for every alphabet rune:
// the observed count, or the prior if the pair was never seen.
func (g *Generator) install(t *tables) {
	alphabet := slices.Sorted(maps.Keys(t.alphabet))
	if t.datasetLength > 0 {
		alphabet = append(alphabet, Control)
		slices.Sort(alphabet)
	}
	index := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		index[r] = i
	}

	model := make(map[string]*weights, len(t.observations))
	for context, counts := range t.observations {
		w := &weights{values: make([]float64, len(alphabet))}
		for i, r := range alphabet {
			if n, ok := counts[r]; ok {
				w.values[i] = float64(n)
			} else {
				w.values[i] = g.prior
			}
			w.total += w.values[i]
		}
		model[context] = w
	}

	g.tables = t
	g.alphabet = alphabet
	g.index = index
	g.model = model

	if t.datasetLength > 0 {
		g.logger.Info("Training completed",
			slog.Int("dataset_length", t.datasetLength),
			slog.Int("alphabet_size", len(alphabet)-1),
			slog.Int("contexts", len(model)),
			slog.Int("order", t.order))
	}
}
