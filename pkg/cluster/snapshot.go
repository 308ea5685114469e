package cluster

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/CTAG07/namegen/pkg/textgen"
)

// Transition is one context of the chain with its successors in first-seen
// order and their observation counts.
type Transition struct {
	Context    []string `json:"context" msgpack:"context"`
	Successors []string `json:"successors" msgpack:"successors"`
	Counts     []int    `json:"counts" msgpack:"counts"`
}

// Snapshot is the complete serialisable state of a Generator.
type Snapshot struct {
	Order              int                  `json:"order" msgpack:"order"`
	Vowels             string               `json:"vowels" msgpack:"vowels"`
	MinLength          int                  `json:"min_length" msgpack:"min_length"`
	MaxLength          int                  `json:"max_length" msgpack:"max_length"`
	StartFilter        string               `json:"start_filter,omitempty" msgpack:"start_filter,omitempty"`
	EndFilter          string               `json:"end_filter,omitempty" msgpack:"end_filter,omitempty"`
	FrequencyWeighting bool                 `json:"frequency_weighting,omitempty" msgpack:"frequency_weighting,omitempty"`
	MaxAttempts        int                  `json:"max_attempts,omitempty" msgpack:"max_attempts,omitempty"`
	DatasetLength      int                  `json:"dataset_length" msgpack:"dataset_length"`
	Transitions        []Transition         `json:"transitions" msgpack:"transitions"`
	Source             *textgen.SourceState `json:"source,omitempty" msgpack:"source,omitempty"`
}

// Snapshot captures the generator's state. Transitions are ordered by
// context so equal models produce equal snapshots. A trained model records
// the order it was trained with.
func (g *Generator) Snapshot() (*Snapshot, error) {
	src, err := textgen.SaveSource(g.src)
	if err != nil {
		return nil, err
	}

	order := g.order
	if g.IsTrained() {
		order = g.trainedOrder
	}
	s := &Snapshot{
		Order:              order,
		Vowels:             string(g.clusterizer.Vowels()),
		MinLength:          g.filter.MinLength,
		MaxLength:          g.filter.MaxLength,
		StartFilter:        g.filter.StartsWith,
		EndFilter:          g.filter.EndsWith,
		FrequencyWeighting: g.weighted,
		MaxAttempts:        g.maxAttempts,
		DatasetLength:      g.datasetLength,
		Transitions:        make([]Transition, 0, len(g.transitions)),
		Source:             src,
	}
	for _, succ := range g.transitions {
		t := Transition{
			Context:    slices.Clone(succ.context),
			Successors: slices.Clone(succ.clusters),
			Counts:     make([]int, len(succ.clusters)),
		}
		for i, c := range succ.clusters {
			t.Counts[i] = succ.counts[c]
		}
		s.Transitions = append(s.Transitions, t)
	}
	slices.SortFunc(s.Transitions, func(a, b Transition) int {
		return cmp.Or(cmp.Compare(len(a.Context), len(b.Context)), slices.Compare(a.Context, b.Context))
	})
	return s, nil
}

// Restore replaces the generator's state with s. If s carries no source
// state, the current source is kept. On error the generator is unchanged.
//
// A trained snapshot must have a transition for the Control context and for
// every successor other than Control, and a positive count for every
// successor.
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
	if s.DatasetLength == 0 && len(s.Transitions) > 0 {
		return errors.New("snapshot has transitions but an empty dataset")
	}
	seen := make(map[string]struct{}, len(s.Transitions))
	for _, t := range s.Transitions {
		if len(t.Context) == 0 || len(t.Context) > s.Order {
			return fmt.Errorf("invalid context length %d for order %d", len(t.Context), s.Order)
		}
		if len(t.Successors) == 0 || len(t.Successors) != len(t.Counts) {
			return fmt.Errorf("malformed transition for context %q", t.Context)
		}
		key := contextKey(t.Context)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate transition for context %q", t.Context)
		}
		seen[key] = struct{}{}
		for i, n := range t.Counts {
			if n < 1 {
				return fmt.Errorf("invalid count %d for successor %q of context %q", n, t.Successors[i], t.Context)
			}
		}
	}
	if _, ok := seen[Control]; s.DatasetLength > 0 && !ok {
		return fmt.Errorf("%w '#' in snapshot", textgen.ErrNoModel)
	}
	for _, t := range s.Transitions {
		for _, c := range t.Successors {
			if _, ok := seen[c]; !ok && c != Control {
				return fmt.Errorf("%w '%s' in snapshot", textgen.ErrNoModel, c)
			}
		}
	}

	restored := &Generator{
		transitions: make(map[string]*successors, len(s.Transitions)),
		known:       make(map[string]struct{}),
	}
	for _, t := range s.Transitions {
		succ := newSuccessors(t.Context)
		for i, c := range t.Successors {
			succ.add(c, t.Counts[i])
			restored.learn(c)
		}
		restored.transitions[contextKey(t.Context)] = succ
	}

	if s.Source != nil {
		source, err := textgen.LoadSource(s.Source)
		if err != nil {
			return err
		}
		g.setSource(source)
	}

	g.order = s.Order
	g.trainedOrder = s.Order
	g.clusterizer = NewClusterizer([]rune(s.Vowels)...)
	g.filter = textgen.Filter{
		MinLength:  s.MinLength,
		MaxLength:  s.MaxLength,
		StartsWith: s.StartFilter,
		EndsWith:   s.EndFilter,
	}
	g.weighted = s.FrequencyWeighting
	g.maxAttempts = s.MaxAttempts
	g.datasetLength = s.DatasetLength
	g.transitions = restored.transitions
	g.known = restored.known
	g.longest = restored.longest
	return nil
}
