package cluster

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// GenerateOne returns a word that satisfies the configured filter.
//
// Generation retries until a candidate passes. Without a retry budget
// (WithMaxAttempts) a filter the model cannot satisfy blocks forever.
func (g *Generator) GenerateOne() (string, error) {
	return g.generate(g.filter)
}

// Generate returns a word that satisfies the configured filter, with every
// non-zero argument overriding the matching setting for this call only.
func (g *Generator) Generate(minLength, maxLength int, startsWith, endsWith string) (string, error) {
	return g.generate(g.filter.Override(minLength, maxLength, startsWith, endsWith))
}

func (g *Generator) generate(filter textgen.Filter) (string, error) {
	if !g.IsTrained() {
		return "", textgen.ErrNotTrained
	}
	filter = filter.Lower()

	start := g.clusterizer.Clusterize(filter.StartsWith)
	for _, c := range start {
		if _, ok := g.known[c]; !ok {
			return "", fmt.Errorf("%w: cluster '%s' of start filter '%s' never occurs in the training data",
				textgen.ErrUnreachableStart, c, filter.StartsWith)
		}
	}
	end := g.clusterizer.Clusterize(filter.EndsWith)

	return textgen.Sample(g.maxAttempts, func() (string, error) {
		return g.candidate(start, end, filter)
	}, filter.Accept)
}

// candidate walks the chain from the start clusters until Control is drawn.
//
// Once the word is close enough to the maximum length that only the end
// filter and one more cluster still fit, and the last cluster has been seen
// followed by the first cluster of the end filter, the end filter is appended
// and the word closed instead of drawing further.
func (g *Generator) candidate(start, end []string, filter textgen.Filter) (string, error) {
	word := make([]string, 0, len(start)+8)
	word = append(word, Control)
	word = append(word, start...)
	length := utf8.RuneCountInString(filter.StartsWith)

	endLength := utf8.RuneCountInString(filter.EndsWith)
	for filter.MaxLength <= 0 || length <= filter.MaxLength {
		if len(end) > 0 && filter.MaxLength > 0 && length >= filter.MaxLength-g.longest-endLength-1 {
			if s, ok := g.transitions[word[len(word)-1]]; ok && s.has(end[0]) {
				word = append(word, end...)
				break
			}
		}

		next, err := g.next(word)
		if err != nil {
			return "", err
		}
		if next == Control {
			break
		}
		word = append(word, next)
		length += utf8.RuneCountInString(next)
	}
	return strings.Join(word[1:], ""), nil
}

// next draws the cluster following word, backing off from the longest
// context to the last cluster alone.
func (g *Generator) next(word []string) (string, error) {
	for o := min(g.trainedOrder, len(word)); o > 0; o-- {
		if s, ok := g.transitions[contextKey(word[len(word)-o:])]; ok {
			return g.draw(s), nil
		}
	}
	return "", fmt.Errorf("%w '%s'", textgen.ErrNoModel, strings.ReplaceAll(strings.Join(word, "-"), Control, "#"))
}

func (g *Generator) draw(s *successors) string {
	if !g.weighted {
		return s.clusters[g.rng.IntN(len(s.clusters))]
	}
	roll := g.rng.IntN(s.total)
	for _, c := range s.clusters {
		n := s.counts[c]
		if roll < n {
			return c
		}
		roll -= n
	}
	return s.clusters[len(s.clusters)-1]
}
