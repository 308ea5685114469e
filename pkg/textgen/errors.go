package textgen

import "errors"

var (
	// ErrNotTrained is returned when a generator is asked for output before
	// it has ingested any training data.
	ErrNotTrained = errors.New("model has not yet been trained")

	// ErrUnreachableStart is returned when a start filter cannot be reached
	// from anything observed in the training data.
	ErrUnreachableStart = errors.New("start filter is not reachable from the training data")

	// ErrNoModel indicates a bug in training: sampling found a context with
	// no model at any backoff length.
	ErrNoModel = errors.New("no model found for context")

	// ErrAttemptsExhausted is returned when a generator with a retry budget
	// rejects that many candidates in a row.
	ErrAttemptsExhausted = errors.New("no candidate passed the filters")
)
