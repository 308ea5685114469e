package markov

import "unicode/utf8"

// Stats summarises a trained model.
type Stats struct {
	DatasetLength int `json:"dataset_length"`
	// AlphabetSize excludes Control.
	AlphabetSize int `json:"alphabet_size"`
	// Contexts counts observed contexts by their length in runes.
	Contexts map[int]int `json:"contexts"`
	// Transitions counts distinct (context, next rune) pairs.
	Transitions int `json:"transitions"`
	// Observations is the sum of all transition counts.
	Observations int `json:"observations"`
}

// Stats returns a summary of the current model.
func (g *Generator) Stats() Stats {
	s := Stats{
		DatasetLength: g.tables.datasetLength,
		AlphabetSize:  len(g.tables.alphabet),
		Contexts:      make(map[int]int),
	}
	for context, counts := range g.tables.observations {
		s.Contexts[utf8.RuneCountInString(context)]++
		s.Transitions += len(counts)
		for _, n := range counts {
			s.Observations += n
		}
	}
	return s
}
