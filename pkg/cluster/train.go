package cluster

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// Train discards any previous model and learns from words. Words are
// lower-cased and trimmed; blank entries are skipped.
func (g *Generator) Train(words iter.Seq[string]) {
	g.reset()
	g.ingest(words)
}

// TrainReader trains from r, one word per line. The previous model is kept
// if reading fails.
func (g *Generator) TrainReader(r io.Reader) error {
	words, readErr := textgen.Lines(r)
	collected := slices.Collect(words)
	if err := readErr(); err != nil {
		return fmt.Errorf("could not read training data: %w", err)
	}
	g.Train(slices.Values(collected))
	return nil
}

// Blend adds words to the existing model instead of replacing it, at the
// order the model was trained with. An untrained generator is simply trained.
func (g *Generator) Blend(words iter.Seq[string]) {
	if !g.IsTrained() {
		g.Train(words)
		return
	}
	g.ingest(words)
}

func (g *Generator) reset() {
	g.datasetLength = 0
	g.trainedOrder = g.order
	g.transitions = make(map[string]*successors)
	g.known = make(map[string]struct{})
	g.longest = 0
}

func (g *Generator) ingest(words iter.Seq[string]) {
	for word := range words {
		word = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(word, Control, "")))
		if word == "" {
			continue
		}
		sequence := append([]string{Control}, g.clusterizer.Clusterize(word)...)
		sequence = append(sequence, Control)
		g.analyze(sequence)
		g.datasetLength++
	}

	g.logger.Info("Training completed",
		slog.Int("dataset_length", g.datasetLength),
		slog.Int("clusters", len(g.KnownClusters())),
		slog.Int("contexts", len(g.transitions)),
		slog.Int("order", g.trainedOrder))
}

// analyze records, for every context of 1..order clusters in sequence, the
// cluster that follows it.
func (g *Generator) analyze(sequence []string) {
	for o := 1; o <= g.trainedOrder; o++ {
		for i := 0; i+o < len(sequence); i++ {
			g.observe(sequence[i:i+o], sequence[i+o], 1)
		}
	}
}

func (g *Generator) observe(context []string, next string, n int) {
	key := contextKey(context)
	s, ok := g.transitions[key]
	if !ok {
		s = newSuccessors(context)
		g.transitions[key] = s
	}
	s.add(next, n)
	g.learn(next)
}

func (g *Generator) learn(cluster string) {
	g.known[cluster] = struct{}{}
	if cluster != Control {
		g.longest = max(g.longest, utf8.RuneCountInString(cluster))
	}
}
