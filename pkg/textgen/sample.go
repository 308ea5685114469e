package textgen

import "fmt"

// Sample calls next until it yields a candidate that accept approves, and
// returns that candidate. Errors from next are returned immediately.
//
// With maxAttempts <= 0 the loop is unbounded: a filter that no candidate can
// satisfy never returns. With maxAttempts > 0, Sample gives up after that many
// rejections and returns an error wrapping ErrAttemptsExhausted.
func Sample(maxAttempts int, next func() (string, error), accept func(string) bool) (string, error) {
	for attempt := 1; maxAttempts <= 0 || attempt <= maxAttempts; attempt++ {
		candidate, err := next()
		if err != nil {
			return "", err
		}
		if accept(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrAttemptsExhausted, maxAttempts)
}
