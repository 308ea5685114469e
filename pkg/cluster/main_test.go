package cluster

import (
	"slices"
	"testing"

	"github.com/CTAG07/namegen/pkg/textgen"
)

var romanNames = []string{
	"Aelius", "Agrippa", "Albion", "Amphion", "Antonius", "Appius", "Arion", "Augustus", "Aurelius",
	"Brutus", "Caesar", "Caius", "Camillus", "Cassius", "Cato", "Cicero", "Claudius", "Cornelius",
	"Crassus", "Decimus", "Dion", "Domitius", "Drusus", "Fabius", "Flavius", "Gaius", "Gallio",
	"Germanicus", "Gnaeus", "Hadrian", "Horatius", "Ixion", "Julius", "Junius", "Livius", "Lucius",
	"Manlius", "Marcellus", "Marcia", "Marcion", "Marcus", "Marius", "Maximus", "Nero", "Numerius",
	"Octavius", "Ovidius", "Pandion", "Petronius", "Pompeius", "Publius", "Quintus", "Remus",
	"Romulus", "Rufus", "Scipio", "Septimus", "Servius", "Sextus", "Spurius", "Tiberius", "Titus",
	"Tullius", "Valerius", "Vibius",
}

// setupGenerator returns a generator with a fixed seed, trained on romanNames.
func setupGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g := New(append([]Option{WithSource(textgen.NewSource(1))}, opts...)...)
	g.Train(slices.Values(romanNames))
	if !g.IsTrained() {
		t.Fatalf("setup: generator is not trained")
	}
	return g
}

func generateN(t *testing.T, g *Generator, n int) []string {
	t.Helper()
	words := make([]string, n)
	for i := range words {
		word, err := g.GenerateOne()
		if err != nil {
			t.Fatalf("GenerateOne() failed: %v", err)
		}
		words[i] = word
	}
	return words
}
