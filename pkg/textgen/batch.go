package textgen

import "context"

// Result carries one streamed string or the error that ended the stream.
type Result struct {
	Text string
	Err  error
}

// Batch generates n strings from g. The context is checked between strings,
// so a single generation that never satisfies its filters is not interrupted.
func Batch(ctx context.Context, g Generator, n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		s, err := g.GenerateOne()
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Stream generates strings from g on a separate goroutine and sends them on
// the returned channel. It stops after n strings (or never, if n <= 0), on the
// first error, which is sent as the final Result, or when ctx is cancelled.
// The channel is closed when generation ends. g must not be used by anything
// else until the channel is closed.
func Stream(ctx context.Context, g Generator, n int) <-chan Result {
	results := make(chan Result)

	go func() {
		defer close(results)
		for i := 0; n <= 0 || i < n; i++ {
			s, err := g.GenerateOne()
			select {
			case <-ctx.Done():
				return
			case results <- Result{Text: s, Err: err}:
			}
			if err != nil {
				return
			}
		}
	}()

	return results
}
