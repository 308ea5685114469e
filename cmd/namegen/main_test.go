package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/namegen/pkg/store"
	"github.com/CTAG07/namegen/pkg/templating"
)

var latinNames = []string{
	"aurelia", "cornelia", "claudia", "julia", "livia", "octavia", "valeria",
	"marcus", "lucius", "gaius", "titus", "quintus", "sextus", "decimus",
	"aurelius", "cornelius", "claudius", "julius", "livius", "octavius",
	"valerius", "flavius", "antonius", "aemilius", "fabius", "tullius",
	"septimus", "maximus", "cassius", "brutus",
}

var placeNames = []string{
	"roma", "ostia", "capua", "neapolis", "pompeii", "tarentum", "brundisium",
	"ravenna", "verona", "mediolanum", "aquileia", "arretium", "florentia",
}

func wordList(words []string) string {
	return strings.Join(words, "\n") + "\n"
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestStore opens a fresh model database in a temporary directory.
func setupTestStore(tb testing.TB) *store.Store {
	tb.Helper()
	db, err := initDB(filepath.Join(tb.TempDir(), "models.db"))
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	if err = store.SetupSchema(db); err != nil {
		tb.Fatalf("Failed to setup schema: %v", err)
	}
	st, err := store.New(db)
	if err != nil {
		tb.Fatalf("Failed to create store: %v", err)
	}
	tb.Cleanup(st.Close)
	return st
}

// setupTestAPI creates an API backed by a fresh store, with one template that
// uses the "romans" model.
func setupTestAPI(tb testing.TB, config *Config) (*API, *store.Store) {
	tb.Helper()
	if config == nil {
		config = DefaultConfig()
	}
	dir := tb.TempDir()
	config.Server.TemplateDir = dir
	if err := os.WriteFile(filepath.Join(dir, "roman.tmpl"), []byte(`{{title (gen "romans")}}`), 0o644); err != nil {
		tb.Fatalf("Failed to write template: %v", err)
	}

	st := setupTestStore(tb)
	tm, err := templating.NewTemplateManager(discardLogger(), st, config.Templates, dir)
	if err != nil {
		tb.Fatalf("NewTemplateManager failed: %v", err)
	}
	return NewAPI(st, tm, config, discardLogger()), st
}

// runCLI executes the root command with args against the config file in dir.
func runCLI(tb testing.TB, dir string, stdin io.Reader, args ...string) (string, error) {
	tb.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(append([]string{
		"--config", filepath.Join(dir, "namegen.yaml"),
		"--db", filepath.Join(dir, "models.db"),
		"--log-level", "error",
	}, args...))
	err := root.Execute()
	return out.String(), err
}
