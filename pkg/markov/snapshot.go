package markov

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// Snapshot is the complete serialisable state of a Generator: its settings,
// raw observations and, when the source supports it, the random source state.
// Restoring a snapshot yields a generator that produces the same output as
// the original would have from the same point.
type Snapshot struct {
	Order          int     `json:"order" msgpack:"order"`
	Prior          float64 `json:"prior" msgpack:"prior"`
	CasePreserving bool    `json:"case_preserving" msgpack:"case_preserving"`
	MinLength      int     `json:"min_length" msgpack:"min_length"`
	MaxLength      int     `json:"max_length" msgpack:"max_length"`
	StartFilter    string  `json:"start_filter,omitempty" msgpack:"start_filter,omitempty"`
	EndFilter      string  `json:"end_filter,omitempty" msgpack:"end_filter,omitempty"`
	MaxAttempts    int     `json:"max_attempts,omitempty" msgpack:"max_attempts,omitempty"`
	DatasetLength  int     `json:"dataset_length" msgpack:"dataset_length"`
	// Alphabet lists the learned runes in ascending order, without Control.
	Alphabet string `json:"alphabet" msgpack:"alphabet"`
	// Observations maps each context to its followers, keyed by the follower
	// as a one-rune string.
	Observations map[string]map[string]int `json:"observations" msgpack:"observations"`
	Source       *textgen.SourceState      `json:"source,omitempty" msgpack:"source,omitempty"`
}

// Snapshot captures the generator's state. A trained model records the order
// it was trained with.
func (g *Generator) Snapshot() (*Snapshot, error) {
	src, err := textgen.SaveSource(g.src)
	if err != nil {
		return nil, err
	}

	order := g.order
	if g.IsTrained() {
		order = g.tables.order
	}
	s := &Snapshot{
		Order:          order,
		Prior:          g.prior,
		CasePreserving: g.casePreserving,
		MinLength:      g.filter.MinLength,
		MaxLength:      g.filter.MaxLength,
		StartFilter:    g.filter.StartsWith,
		EndFilter:      g.filter.EndsWith,
		MaxAttempts:    g.maxAttempts,
		DatasetLength:  g.tables.datasetLength,
		Alphabet:       string(slices.Sorted(maps.Keys(g.tables.alphabet))),
		Observations:   make(map[string]map[string]int, len(g.tables.observations)),
		Source:         src,
	}
	for context, counts := range g.tables.observations {
		followers := make(map[string]int, len(counts))
		for r, n := range counts {
			followers[string(r)] = n
		}
		s.Observations[context] = followers
	}
	return s, nil
}

// Restore replaces the generator's state with s. If s carries no source
// state, the current source is kept. On error the generator is unchanged.
//
// A trained snapshot must have a single-rune context for Control and for
// every alphabet rune, so that generation can always back off to one.
func (g *Generator) Restore(s *Snapshot) error {
	if s == nil {
		return errors.New("nil snapshot")
	}
	if s.Order < 1 {
		return fmt.Errorf("invalid order %d in snapshot", s.Order)
	}
	if s.DatasetLength < 0 {
		return fmt.Errorf("invalid dataset length %d in snapshot", s.DatasetLength)
	}
	if !(s.Prior >= 0) {
		return fmt.Errorf("invalid prior %v in snapshot", s.Prior)
	}
	if s.DatasetLength == 0 && len(s.Observations) > 0 {
		return errors.New("snapshot has observations but an empty dataset")
	}

	t := newTables(s.Order)
	t.datasetLength = s.DatasetLength
	for _, r := range s.Alphabet {
		if r == Control {
			return errors.New("snapshot alphabet contains the control rune")
		}
		t.alphabet[r] = struct{}{}
	}
	known := func(r rune) bool {
		_, ok := t.alphabet[r]
		return ok || r == Control
	}

	for context, followers := range s.Observations {
		runes := []rune(context)
		if len(runes) == 0 || len(runes) > s.Order {
			return fmt.Errorf("invalid context length %d for order %d", len(runes), s.Order)
		}
		if slices.ContainsFunc(runes, func(r rune) bool { return !known(r) }) {
			return fmt.Errorf("context '%s' uses runes outside the snapshot alphabet", printable(runes))
		}
		if len(followers) == 0 {
			return fmt.Errorf("context '%s' has no followers", printable(runes))
		}
		counts := make(map[rune]int, len(followers))
		for follower, n := range followers {
			f := []rune(follower)
			if len(f) != 1 {
				return fmt.Errorf("invalid follower %q for context '%s'", follower, printable(runes))
			}
			if !known(f[0]) {
				return fmt.Errorf("follower %q is not in the snapshot alphabet", follower)
			}
			if n < 1 {
				return fmt.Errorf("invalid count %d for follower %q of context '%s'", n, follower, printable(runes))
			}
			counts[f[0]] = n
		}
		t.observations[context] = counts
	}

	if t.datasetLength > 0 {
		for _, r := range append([]rune{Control}, []rune(s.Alphabet)...) {
			if _, ok := t.observations[string(r)]; !ok {
				return fmt.Errorf("%w '%s' in snapshot", textgen.ErrNoModel, printable([]rune{r}))
			}
		}
	}

	if s.Source != nil {
		src, err := textgen.LoadSource(s.Source)
		if err != nil {
			return err
		}
		g.setSource(src)
	}

	g.order = s.Order
	g.prior = s.Prior
	g.casePreserving = s.CasePreserving
	g.filter = textgen.Filter{
		MinLength:  s.MinLength,
		MaxLength:  s.MaxLength,
		StartsWith: s.StartFilter,
		EndsWith:   s.EndFilter,
	}
	g.maxAttempts = s.MaxAttempts
	g.install(t)
	return nil
}
