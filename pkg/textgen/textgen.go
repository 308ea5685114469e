package textgen

import (
	"io"
	"iter"
)

// Generator produces random text strings on demand.
type Generator interface {
	// GenerateOne returns a string using the generator's configured length
	// bounds and filters.
	GenerateOne() (string, error)
	// Generate returns a string constrained by the given parameters. A zero
	// length or an empty string means "use the configured default" for that
	// parameter. Requesting outcomes the training data cannot produce may
	// make the call loop forever unless the generator has a retry budget.
	Generate(minLength, maxLength int, startsWith, endsWith string) (string, error)
}

// Trainer is implemented by generators that learn from example strings.
type Trainer interface {
	// Train replaces any existing model with one built from words. The
	// sequence is consumed exactly once. An empty sequence leaves the
	// generator untrained.
	Train(words iter.Seq[string])
	// TrainReader trains on the non-blank lines of r. If reading fails the
	// previous model is kept and the error is returned.
	TrainReader(r io.Reader) error
	// IsTrained reports whether at least one string has been ingested.
	IsTrained() bool
}

// Model is a Generator that can be trained.
type Model interface {
	Generator
	Trainer
}
