package markov

import (
	"log/slog"
	"unicode/utf8"
)

// Prune removes transitions seen minFreq times or fewer from contexts longer
// than one rune, and drops contexts left empty. Single-rune contexts are
// never pruned, so generation can always back off to them. It returns the
// number of transitions removed.
func (g *Generator) Prune(minFreq int) int {
	removed := 0
	for context, counts := range g.tables.observations {
		if utf8.RuneCountInString(context) <= 1 {
			continue
		}
		for r, n := range counts {
			if n <= minFreq {
				delete(counts, r)
				removed++
			}
		}
		if len(counts) == 0 {
			delete(g.tables.observations, context)
		}
	}
	g.install(g.tables)

	g.logger.Info("Model pruned",
		slog.Int("min_frequency", minFreq),
		slog.Int("transitions_removed", removed))
	return removed
}
