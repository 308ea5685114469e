package store

import (
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/CTAG07/namegen/pkg/cluster"
	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/CTAG07/namegen/pkg/textgen"

	_ "modernc.org/sqlite"
)

var names = []string{
	"Aelius", "Agrippa", "Antonius", "Augustus", "Aurelius", "Brutus", "Caesar", "Cassius",
	"Cicero", "Claudius", "Cornelius", "Crassus", "Decimus", "Drusus", "Flavius", "Gaius",
	"Julius", "Lucius", "Marcus", "Maximus", "Nero", "Octavius", "Publius", "Quintus",
	"Remus", "Romulus", "Septimus", "Tiberius", "Titus", "Valerius",
}

// setupTestDB opens a fresh SQLite database with the schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}
	return db
}

// setupTestStore returns a Store on a fresh database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(setupTestDB(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func trainedMarkov(seed uint64) *markov.Generator {
	g := markov.New(markov.WithSource(textgen.NewSource(seed)), markov.WithOrder(2))
	g.Train(slices.Values(names))
	return g
}

func trainedCluster(seed uint64) *cluster.Generator {
	g := cluster.New(cluster.WithSource(textgen.NewSource(seed)), cluster.WithOrder(2))
	g.Train(slices.Values(names))
	return g
}

func generateN(t *testing.T, g textgen.Generator, n int) []string {
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
