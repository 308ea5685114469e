package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/CTAG07/namegen/pkg/cluster"
	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/CTAG07/namegen/pkg/store"
	"github.com/CTAG07/namegen/pkg/textgen"
)

var (
	errUnknownEngine   = errors.New("unknown engine")
	errUnknownVowels   = errors.New("unknown vowel set")
	errEngineMismatch  = errors.New("stored model uses a different engine")
	errInvalidArgument = errors.New("invalid argument")
)

// configurable is implemented by both engines.
type configurable interface {
	textgen.Model
	SetSource(src rand.Source)
	SetMaxAttempts(n int)
	Filter() textgen.Filter
	SetFilter(f textgen.Filter)
}

// TrainOptions selects and configures the engine for a new model.
type TrainOptions struct {
	Engine string `json:"engine"`
	// Order of zero selects the engine's default.
	Order int `json:"order"`
	// Prior applies to the markov engine. Nil selects markov.DefaultPrior.
	Prior          *float64 `json:"prior,omitempty"`
	Vowels         string   `json:"vowels"`
	CasePreserving bool     `json:"case_preserving"`
	Weighted       bool     `json:"weighted"`
	// Blend adds the words to the stored model instead of replacing it.
	Blend bool `json:"blend"`
}

func vowelSet(name string) ([]rune, error) {
	switch name {
	case "", "latin":
		return cluster.LatinVowels, nil
	case "english":
		return cluster.EnglishVowels, nil
	}
	return nil, fmt.Errorf("%w %q, want latin or english", errUnknownVowels, name)
}

// newModel builds an untrained generator from o.
func (o TrainOptions) newModel() (textgen.Model, error) {
	switch o.Engine {
	case "", store.EngineMarkov:
		var opts []markov.Option
		if o.Order > 0 {
			opts = append(opts, markov.WithOrder(o.Order))
		}
		if o.Prior != nil {
			opts = append(opts, markov.WithPrior(*o.Prior))
		}
		if o.CasePreserving {
			return markov.NewCasePreserving(opts...), nil
		}
		return markov.New(opts...), nil
	case store.EngineCluster:
		vowels, err := vowelSet(o.Vowels)
		if err != nil {
			return nil, err
		}
		opts := []cluster.Option{cluster.WithVowels(vowels...)}
		if o.Order > 0 {
			opts = append(opts, cluster.WithOrder(o.Order))
		}
		if o.Weighted {
			opts = append(opts, cluster.WithFrequencyWeighting())
		}
		return cluster.New(opts...), nil
	}
	return nil, fmt.Errorf("%w %q, want markov or cluster", errUnknownEngine, o.Engine)
}

// modelSettings names the options in o that only take effect on a new model.
func (o TrainOptions) modelSettings() []string {
	var set []string
	if o.Order > 0 {
		set = append(set, "order")
	}
	if o.Prior != nil {
		set = append(set, "prior")
	}
	if o.CasePreserving {
		set = append(set, "case_preserving")
	}
	if o.Vowels != "" {
		set = append(set, "vowels")
	}
	if o.Weighted {
		set = append(set, "weighted")
	}
	return set
}

// trainModel trains a model on the lines of r and saves it under name. When
// blending into a stored model, settings that only apply to a new model are
// rejected.
func trainModel(ctx context.Context, st *store.Store, name string, r io.Reader, o TrainOptions) (store.Info, error) {
	lines, readErr := textgen.Lines(r)
	words := slices.Collect(lines)
	if err := readErr(); err != nil {
		return store.Info{}, fmt.Errorf("failed to read words: %w", err)
	}

	if o.Blend {
		rec, err := st.Load(ctx, name)
		switch {
		case errors.Is(err, store.ErrModelNotFound):
			// Nothing to blend into yet.
		case err != nil:
			return store.Info{}, err
		default:
			if o.Engine != "" && o.Engine != rec.Engine {
				return store.Info{}, fmt.Errorf("%w: %q is a %s model", errEngineMismatch, name, rec.Engine)
			}
			if set := o.modelSettings(); len(set) > 0 {
				return store.Info{}, fmt.Errorf("%w: %s cannot be changed when blending into %q",
					errInvalidArgument, strings.Join(set, ", "), name)
			}
			m, err := rec.Generator()
			if err != nil {
				return store.Info{}, err
			}
			switch g := m.(type) {
			case *markov.Generator:
				g.Blend(slices.Values(words))
			case *cluster.Generator:
				g.Blend(slices.Values(words))
			default:
				return store.Info{}, store.ErrUnsupportedModel
			}
			return st.Save(ctx, name, m)
		}
	}

	m, err := o.newModel()
	if err != nil {
		return store.Info{}, err
	}
	m.Train(slices.Values(words))
	if !m.IsTrained() {
		return store.Info{}, fmt.Errorf("%w: no words to train on", errInvalidArgument)
	}
	return st.Save(ctx, name, m)
}

// GenerateOptions controls a batch of generated names.
type GenerateOptions struct {
	Count  int
	Filter textgen.Filter
	// Seed makes the output reproducible. Nil draws from a random source.
	Seed        *uint64
	MaxAttempts int
	// Second, when set, names a model whose output is joined to each name.
	Second    string
	Separator string
}

// loadConfigured loads name and applies the source, filter and retry budget
// from o.
func loadConfigured(ctx context.Context, st *store.Store, name string, o GenerateOptions, seedOffset uint64) (configurable, error) {
	m, err := st.LoadGenerator(ctx, name)
	if err != nil {
		return nil, err
	}
	g, ok := m.(configurable)
	if !ok {
		return nil, store.ErrUnsupportedModel
	}
	if o.Seed != nil {
		g.SetSource(textgen.NewSource(*o.Seed + seedOffset))
	} else {
		g.SetSource(textgen.NewRandomSource())
	}
	f := o.Filter
	g.SetFilter(g.Filter().Override(f.MinLength, f.MaxLength, f.StartsWith, f.EndsWith))
	g.SetMaxAttempts(o.MaxAttempts)
	return g, nil
}

// newNameGenerator loads the generator described by o, composing two models
// when o.Second is set. The filter applies to the first model only.
func newNameGenerator(ctx context.Context, st *store.Store, name string, o GenerateOptions) (textgen.Generator, error) {
	first, err := loadConfigured(ctx, st, name, o, 0)
	if err != nil {
		return nil, err
	}
	if o.Second == "" {
		return first, nil
	}

	secondOpts := o
	secondOpts.Filter = textgen.Filter{}
	second, err := loadConfigured(ctx, st, o.Second, secondOpts, 1)
	if err != nil {
		return nil, err
	}
	return textgen.NewComposite(first, second, o.Separator), nil
}

// generateNames produces o.Count names from the model stored under name.
func generateNames(ctx context.Context, st *store.Store, name string, o GenerateOptions) ([]string, error) {
	if o.Count < 1 {
		return nil, fmt.Errorf("%w: count must be positive", errInvalidArgument)
	}
	g, err := newNameGenerator(ctx, st, name, o)
	if err != nil {
		return nil, err
	}
	return textgen.Batch(ctx, g, o.Count)
}
