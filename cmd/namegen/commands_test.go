package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/CTAG07/namegen/pkg/store"
	"github.com/google/go-cmp/cmp"
)

func writeWords(tb testing.TB, dir, name string, words []string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(wordList(words)), 0o644); err != nil {
		tb.Fatalf("failed to write word list: %v", err)
	}
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestCLI_TrainAndGenerate(t *testing.T) {
	dir := t.TempDir()
	words := writeWords(t, dir, "romans.txt", latinNames)

	out, err := runCLI(t, dir, nil, "train", "romans", words, "--order", "2")
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}
	if !strings.Contains(out, "markov model trained on 30 words") {
		t.Errorf("unexpected train output %q", out)
	}
	if _, err = os.Stat(filepath.Join(dir, "namegen.yaml")); err != nil {
		t.Errorf("expected a default config file to be written: %v", err)
	}

	out, err = runCLI(t, dir, nil, "generate", "romans", "-n", "15", "--min", "5", "--max", "9", "--end", "us", "--seed", "3")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	names := lines(out)
	if len(names) != 15 {
		t.Fatalf("expected 15 names, got %d: %q", len(names), out)
	}
	for _, name := range names {
		n := len([]rune(name))
		if n < 5 || n > 9 || !strings.HasSuffix(name, "us") {
			t.Errorf("name %q violates the filters", name)
		}
	}

	again, err := runCLI(t, dir, nil, "generate", "romans", "-n", "15", "--min", "5", "--max", "9", "--end", "us", "--seed", "3")
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if diff := cmp.Diff(out, again); diff != "" {
		t.Errorf("same seed gave different names (-first +second):\n%s", diff)
	}
}

func TestCLI_TrainFromStdin(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, strings.NewReader(wordList(placeNames)),
		"train", "places", "-", "--engine", "cluster", "--vowels", "english")
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}
	if !strings.Contains(out, "cluster model trained") {
		t.Errorf("unexpected train output %q", out)
	}

	// Blending keeps the stored engine when --engine is not given.
	if _, err = runCLI(t, dir, strings.NewReader("lutetia\nburdigala\n"), "train", "places", "-", "--blend"); err != nil {
		t.Fatalf("blend failed: %v", err)
	}
	out, err = runCLI(t, dir, nil, "models", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	rows := lines(out)
	if len(rows) != 2 || !strings.HasPrefix(rows[0], "NAME") {
		t.Fatalf("unexpected listing %q", out)
	}
	if fields := strings.Fields(rows[1]); fields[0] != "places" || fields[1] != store.EngineCluster || fields[2] != "15" {
		t.Errorf("unexpected row %q", rows[1])
	}
}

func TestCLI_BlendRejectsModelSettings(t *testing.T) {
	dir := t.TempDir()
	words := writeWords(t, dir, "places.txt", placeNames)
	if _, err := runCLI(t, dir, nil, "train", "places", words, "--engine", "cluster", "--order", "2"); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	for _, flag := range []string{"--order=3", "--prior=0.1", "--case-preserving", "--vowels=english", "--weighted"} {
		if _, err := runCLI(t, dir, nil, "train", "places", words, "--blend", flag); !errors.Is(err, errInvalidArgument) {
			t.Errorf("blend with %s: expected errInvalidArgument, got %v", flag, err)
		}
	}

	// A new model takes the settings as usual.
	if _, err := runCLI(t, dir, nil, "train", "romans", words, "--blend", "--order=3", "--vowels=english", "--engine=cluster"); err != nil {
		t.Errorf("blend into a new model failed: %v", err)
	}
}

func TestCLI_GenerateComposite(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, nil, "train", "romans", writeWords(t, dir, "romans.txt", latinNames)); err != nil {
		t.Fatalf("train failed: %v", err)
	}
	if _, err := runCLI(t, dir, nil, "train", "places", writeWords(t, dir, "places.txt", placeNames), "--engine", "cluster"); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	out, err := runCLI(t, dir, nil, "generate", "romans", "--second", "places", "--separator", " of ", "-n", "5")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, name := range lines(out) {
		if strings.Count(name, " of ") != 1 {
			t.Errorf("expected exactly one separator in %q", name)
		}
	}
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()
	words := writeWords(t, dir, "romans.txt", latinNames)
	if _, err := runCLI(t, dir, nil, "train", "romans", words); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	if _, err := runCLI(t, dir, nil, "generate", "greeks"); !errors.Is(err, store.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
	if _, err := runCLI(t, dir, nil, "train", "x", words, "--engine", "lstm"); !errors.Is(err, errUnknownEngine) {
		t.Errorf("expected errUnknownEngine, got %v", err)
	}
	if _, err := runCLI(t, dir, nil, "train", "x", filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected an error for a missing word list")
	}
	if _, err := runCLI(t, dir, nil, "generate", "romans", "--count=-1"); !errors.Is(err, errInvalidArgument) {
		t.Errorf("expected errInvalidArgument, got %v", err)
	}
	if _, err := runCLI(t, dir, nil, "generate", "romans"); err != nil {
		t.Errorf("generate with defaults failed: %v", err)
	}
	if _, err := runCLI(t, dir, nil, "models", "remove", "greeks"); !errors.Is(err, store.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, nil, "train", "romans", writeWords(t, dir, "romans.txt", latinNames)); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	exported := filepath.Join(dir, "romans.json")
	if _, err := runCLI(t, dir, nil, "models", "export", "romans", exported); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	stdout, err := runCLI(t, dir, nil, "models", "export", "romans")
	if err != nil {
		t.Fatalf("export to stdout failed: %v", err)
	}
	file, err := os.ReadFile(exported)
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if strings.TrimSpace(string(file)) != strings.TrimSpace(stdout) {
		t.Error("file and stdout exports differ")
	}

	if _, err = runCLI(t, dir, nil, "models", "rm", "romans"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	out, err := runCLI(t, dir, nil, "models", "import", exported)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "romans: imported markov model") {
		t.Errorf("unexpected import output %q", out)
	}
	if _, err = runCLI(t, dir, nil, "generate", "romans", "-n", "3"); err != nil {
		t.Errorf("generate after import failed: %v", err)
	}
}

func TestCLI_Render(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, nil, "train", "romans", writeWords(t, dir, "romans.txt", latinNames)); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	out, err := runCLI(t, dir, nil, "render", "--inline", `{{upper (gen "romans")}}`, "-n", "4", "--seed", "9")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	rendered := lines(out)
	if len(rendered) != 4 {
		t.Fatalf("expected 4 renders, got %q", out)
	}
	for _, s := range rendered {
		if s == "" || s != strings.ToUpper(s) {
			t.Errorf("expected an upper-case name, got %q", s)
		}
	}

	again, err := runCLI(t, dir, nil, "render", "--inline", `{{upper (gen "romans")}}`, "-n", "4", "--seed", "9")
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if diff := cmp.Diff(out, again); diff != "" {
		t.Errorf("same seed gave different renders (-first +second):\n%s", diff)
	}

	// The default template directory is empty.
	if _, err = runCLI(t, dir, nil, "render"); err == nil {
		t.Error("expected an error when no templates exist")
	}
}

func TestCLI_Version(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, nil, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("unexpected version output %q", out)
	}
	if _, err = os.Stat(filepath.Join(dir, "namegen.yaml")); !os.IsNotExist(err) {
		t.Error("version should not touch the configuration")
	}

	var names []string
	for _, cmd := range newRootCmd().Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"train", "generate", "models", "render", "serve", "version"} {
		if !slices.Contains(names, want) {
			t.Errorf("command %q missing from %v", want, names)
		}
	}
}

func TestCLI_StatsAndPrune(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, nil, "train", "romans", writeWords(t, dir, "romans.txt", latinNames)); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	readStats := func() markov.Stats {
		t.Helper()
		out, err := runCLI(t, dir, nil, "models", "stats", "romans")
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		var s markov.Stats
		if err = json.Unmarshal([]byte(out), &s); err != nil {
			t.Fatalf("stats output is not JSON: %v", err)
		}
		return s
	}

	before := readStats()
	if before.DatasetLength != len(latinNames) || before.Transitions == 0 {
		t.Fatalf("unexpected stats %+v", before)
	}

	out, err := runCLI(t, dir, nil, "models", "prune", "romans", "--min-freq", "1")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.HasPrefix(out, "romans: pruned ") {
		t.Errorf("unexpected prune output %q", out)
	}
	if after := readStats(); after.Transitions >= before.Transitions {
		t.Errorf("expected fewer transitions after pruning, got %d then %d", before.Transitions, after.Transitions)
	}

	if _, err = runCLI(t, dir, nil, "train", "places", writeWords(t, dir, "places.txt", placeNames), "--engine", "cluster"); err != nil {
		t.Fatalf("train failed: %v", err)
	}
	if _, err = runCLI(t, dir, nil, "models", "prune", "places"); !errors.Is(err, errInvalidArgument) {
		t.Errorf("pruning a cluster model should fail with errInvalidArgument, got %v", err)
	}
	if _, err = runCLI(t, dir, nil, "models", "stats", "places"); err != nil {
		t.Errorf("stats for a cluster model failed: %v", err)
	}
}
