package textgen

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Lines adapts r to a one-pass sequence of its trimmed, non-blank lines, such
// as a word list with one name per line. The returned function reports any
// read error once the sequence has been consumed.
func Lines(r io.Reader) (iter.Seq[string], func() error) {
	var scanErr error
	seq := func(yield func(string) bool) {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
		scanErr = scanner.Err()
	}
	return seq, func() error { return scanErr }
}
