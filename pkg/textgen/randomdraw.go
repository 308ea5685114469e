package textgen

import (
	"io"
	"iter"
	"math/rand/v2"
	"strings"
)

// RandomDraw is a baseline generator that returns one of its training strings,
// lower-cased, chosen uniformly at random. It honours the same filters as the
// model-based generators and is mostly useful for comparing against them.
type RandomDraw struct {
	words       []string
	filter      Filter
	rng         *rand.Rand
	maxAttempts int
}

// NewRandomDraw returns an untrained RandomDraw. A nil src selects a randomly
// seeded source.
func NewRandomDraw(filter Filter, src rand.Source) *RandomDraw {
	if src == nil {
		src = NewRandomSource()
	}
	return &RandomDraw{filter: filter.Lower(), rng: rand.New(src)}
}

// SetFilter replaces the configured filter.
func (d *RandomDraw) SetFilter(filter Filter) { d.filter = filter.Lower() }

// SetSource replaces the random source.
func (d *RandomDraw) SetSource(src rand.Source) { d.rng = rand.New(src) }

// SetMaxAttempts sets a retry budget; zero means retry forever.
func (d *RandomDraw) SetMaxAttempts(n int) { d.maxAttempts = n }

// Filter returns the configured filter.
func (d *RandomDraw) Filter() Filter { return d.filter }

// Train replaces the word list.
func (d *RandomDraw) Train(words iter.Seq[string]) {
	d.words = d.collect(words)
}

// TrainReader replaces the word list with the non-blank lines of r.
func (d *RandomDraw) TrainReader(r io.Reader) error {
	seq, errFn := Lines(r)
	words := d.collect(seq)
	if err := errFn(); err != nil {
		return err
	}
	d.words = words
	return nil
}

// IsTrained reports whether the word list is non-empty.
func (d *RandomDraw) IsTrained() bool { return len(d.words) > 0 }

// GenerateOne draws a training string that passes the configured filter.
func (d *RandomDraw) GenerateOne() (string, error) {
	return d.generate(d.filter)
}

// Generate draws a training string that passes the configured filter with the
// given overrides applied.
func (d *RandomDraw) Generate(minLength, maxLength int, startsWith, endsWith string) (string, error) {
	return d.generate(d.filter.Override(minLength, maxLength, strings.ToLower(startsWith), strings.ToLower(endsWith)))
}

func (d *RandomDraw) generate(filter Filter) (string, error) {
	if !d.IsTrained() {
		return "", ErrNotTrained
	}
	return Sample(d.maxAttempts, func() (string, error) {
		return d.words[d.rng.IntN(len(d.words))], nil
	}, filter.Accept)
}

func (d *RandomDraw) collect(words iter.Seq[string]) []string {
	var out []string
	for w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
