package markov

import (
	"fmt"
	"strings"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// GenerateOne returns a word that satisfies the configured filter.
//
// Generation retries until a candidate passes. Without a retry budget
// (WithMaxAttempts) a filter the model cannot satisfy blocks forever. A start
// filter the model can never produce fails with textgen.ErrUnreachableStart.
func (g *Generator) GenerateOne() (string, error) {
	return g.generate(g.filter)
}

// Generate returns a word that satisfies the configured filter, with every
// non-zero argument overriding the matching setting for this call only.
//
// A start filter containing a rune that never occurs in the training data
// fails with textgen.ErrUnreachableStart before any candidate is drawn.
func (g *Generator) Generate(minLength, maxLength int, startsWith, endsWith string) (string, error) {
	return g.generate(g.filter.Override(minLength, maxLength, startsWith, endsWith))
}

func (g *Generator) generate(filter textgen.Filter) (string, error) {
	if !g.IsTrained() {
		return "", textgen.ErrNotTrained
	}
	filter = g.normalizeFilter(filter)

	prefix := []rune(filter.StartsWith)
	for _, r := range prefix {
		if _, ok := g.index[r]; !ok {
			return "", fmt.Errorf("%w: %q never occurs in the training data", textgen.ErrUnreachableStart, r)
		}
	}

	return textgen.Sample(g.maxAttempts, func() (string, error) {
		return g.candidate(prefix, filter.MaxLength)
	}, filter.Accept)
}

// candidate produces one unfiltered word starting with prefix. Once the word
// grows past maxLength it can no longer be accepted, so it is returned early.
func (g *Generator) candidate(prefix []rune, maxLength int) (string, error) {
	order := g.tables.order
	word := make([]rune, 0, order+len(prefix)+max(maxLength, 0)+1)
	for range order {
		word = append(word, Control)
	}
	word = append(word, prefix...)

	for maxLength <= 0 || len(word)-order <= maxLength {
		next, err := g.next(word[len(word)-order:])
		if err != nil {
			return "", err
		}
		if next == Control {
			break
		}
		word = append(word, next)
	}
	return string(word[order:]), nil
}

// next samples the rune following context, backing off to ever shorter
// suffixes of context until one has a model.
func (g *Generator) next(context []rune) (rune, error) {
	for o := len(context); o > 0; o-- {
		if w, ok := g.model[string(context[len(context)-o:])]; ok {
			return g.roulette(w), nil
		}
	}
	return 0, fmt.Errorf("%w '%s'", textgen.ErrNoModel, printable(context))
}

// roulette draws a rune with probability proportional to its weight. The
// alphabet is walked in sorted order so a seeded source is reproducible.
func (g *Generator) roulette(w *weights) rune {
	roll := w.total * g.rng.Float64()
	last := len(w.values) - 1
	for i, v := range w.values {
		if v <= 0 {
			continue
		}
		if roll < v {
			return g.alphabet[i]
		}
		roll -= v
		last = i
	}
	return g.alphabet[last]
}

func printable(context []rune) string {
	return strings.ReplaceAll(string(context), string(Control), "#")
}
