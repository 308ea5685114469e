package templating

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/CTAG07/namegen/pkg/store"
	"github.com/CTAG07/namegen/pkg/textgen"
)

// ModelSource supplies stored generators. *store.Store satisfies it.
type ModelSource interface {
	List(ctx context.Context) ([]store.Info, error)
	LoadGenerator(ctx context.Context, name string) (textgen.Model, error)
}

// attemptLimiter is implemented by generators with a retry budget.
type attemptLimiter interface {
	SetMaxAttempts(n int)
}

// reseedable is implemented by generators with a replaceable random source.
type reseedable interface {
	SetSource(src rand.Source)
}

// TemplateManager loads, parses and executes name patterns. All methods are
// safe for concurrent use; calls into generators are serialised because the
// generators themselves are not.
type TemplateManager struct {
	logger         *slog.Logger
	config         *TemplateConfig
	models         ModelSource
	generators     map[string]textgen.Generator
	templates      *template.Template
	cleanTemplates *template.Template
	templateNames  []string
	funcMap        template.FuncMap
	templateDir    string
	rng            *rand.Rand
	mu             sync.RWMutex
	genMu          sync.Mutex
}

// NewTemplateManager creates a TemplateManager for the patterns in
// templateDir. models may be nil, in which case generators must be added with
// Register. It performs an initial Refresh.
func NewTemplateManager(logger *slog.Logger, models ModelSource, config *TemplateConfig, templateDir string) (*TemplateManager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	tm := &TemplateManager{
		logger:      logger,
		config:      config,
		models:      models,
		generators:  make(map[string]textgen.Generator),
		templateDir: templateDir,
		rng:         rand.New(textgen.NewLockedSource(textgen.NewRandomSource())),
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Template manager initialized")
	return tm, nil
}

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Names (from funcs_names.go)
		"gen":     tm.gen,
		"genWith": tm.genWith,
		"full":    tm.full,

		// Text (from funcs_text.go)
		"title":   tm.title,
		"upper":   tm.upper,
		"lower":   tm.lower,
		"join":    join,
		"initial": initial,

		// Logic & Control (from funcs_logic.go)
		"repeat":    tm.repeat,
		"list":      list,
		"pick":      tm.pick,
		"randomInt": tm.randomInt,
		"chance":    tm.chance,
		"inc":       inc,
	}
}

// SetSource replaces the random source used by pick, randomInt and chance,
// and reseeds every registered generator from it in name order, so a fixed
// seed makes renders reproducible.
func (tm *TemplateManager) SetSource(src rand.Source) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.rng = rand.New(textgen.NewLockedSource(src))

	names := slices.Sorted(maps.Keys(tm.generators))
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	for _, name := range names {
		tm.reseed(tm.generators[name])
	}
}

// reseed must be called with genMu held.
func (tm *TemplateManager) reseed(g textgen.Generator) {
	if r, ok := g.(reseedable); ok {
		r.SetSource(textgen.NewSource(tm.rng.Uint64()))
	}
}

// SetConfig applies a new configuration. The retry budget is pushed to every
// registered generator that supports one.
func (tm *TemplateManager) SetConfig(config *TemplateConfig) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.config = config
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	for _, g := range tm.generators {
		tm.limit(g)
	}
}

// GetConfig returns a copy of the current configuration.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}

// Register makes g available to templates under name, replacing any
// generator already registered under it.
func (tm *TemplateManager) Register(name string, g textgen.Generator) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	tm.limit(g)
	tm.generators[name] = g
}

// limit must be called with genMu held.
func (tm *TemplateManager) limit(g textgen.Generator) {
	if l, ok := g.(attemptLimiter); ok {
		l.SetMaxAttempts(tm.config.MaxAttempts)
	}
}

// GetGeneratorNames returns the names of all registered generators, sorted.
func (tm *TemplateManager) GetGeneratorNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	names := make([]string, 0, len(tm.generators))
	for name := range tm.generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Refresh reloads all templates from the filesystem and, if a ModelSource is
// set, loads every stored model into the registry. Generators added with
// Register are kept unless a stored model has the same name.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info("Loading template files...")
	parsed, err := template.New("").Funcs(tm.funcMap).ParseGlob(filepath.Join(tm.templateDir, "*.tmpl"))
	var names []string
	if err != nil {
		if !strings.Contains(err.Error(), "pattern matches no files") {
			tm.logger.Error("failed to parse template files", "error", err)
			return err
		}
		parsed = template.New("").Funcs(tm.funcMap)
	} else {
		for _, t := range parsed.Templates() {
			if strings.HasSuffix(t.Name(), ".tmpl") {
				names = append(names, t.Name())
			}
		}
		slices.Sort(names)
	}

	tm.logger.Info("Loading partial files...")
	withPartials, err := parsed.ParseGlob(filepath.Join(tm.templateDir, "*.part"))
	if err != nil {
		if !strings.Contains(err.Error(), "pattern matches no files") {
			tm.logger.Error("failed to parse partial files", "error", err)
			return err
		}
		withPartials = parsed
	}

	if len(names) == 0 {
		tm.logger.Warn("No template files found", "dir", tm.templateDir)
	}

	clean, err := withPartials.Clone()
	if err != nil {
		tm.logger.Error("failed to create a clean clone of templates", "error", err)
		return err
	}

	if tm.models != nil {
		if err := tm.loadModels(context.Background()); err != nil {
			tm.logger.Error("failed to load stored models", "error", err)
			return err
		}
	}

	tm.templates = withPartials
	tm.cleanTemplates = clean
	tm.templateNames = names
	tm.logger.Info("Loaded template files", "count", len(names), "generators", len(tm.generators))
	return nil
}

// loadModels must be called with mu held.
func (tm *TemplateManager) loadModels(ctx context.Context) error {
	infos, err := tm.models.List(ctx)
	if err != nil {
		return err
	}
	loaded := make([]textgen.Generator, len(infos))
	for i, info := range infos {
		g, err := tm.models.LoadGenerator(ctx, info.Name)
		if err != nil {
			return fmt.Errorf("could not load model '%s': %w", info.Name, err)
		}
		loaded[i] = g
	}

	// Stored models carry the source state they were saved with.
	tm.genMu.Lock()
	defer tm.genMu.Unlock()
	for i, g := range loaded {
		tm.limit(g)
		tm.reseed(g)
		tm.generators[infos[i].Name] = g
	}
	tm.logger.Info("Loaded stored models", "count", len(loaded))
	return nil
}

// Execute renders the template called name to w.
func (tm *TemplateManager) Execute(w io.Writer, name string, data any) error {
	if name == "" {
		return nil
	}
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templates.ExecuteTemplate(w, name, data)
}

// ExecuteTemplateString parses and executes a raw pattern using the manager's
// functions and partials, without saving it to disk.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	tempSet, err := tm.cleanTemplates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone clean templates for string execution: %w", err)
	}
	t, err := tempSet.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}
	return t.Execute(w, data)
}

// GetRandomTemplate returns the name of a randomly selected pattern, or ""
// if none are loaded.
func (tm *TemplateManager) GetRandomTemplate() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	if len(tm.templateNames) == 0 {
		return ""
	}
	return tm.templateNames[tm.rng.IntN(len(tm.templateNames))]
}

// GetTemplateNames returns the names of the loaded patterns, sorted.
func (tm *TemplateManager) GetTemplateNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return slices.Clone(tm.templateNames)
}

// GetTemplateDir returns the directory patterns are loaded from.
func (tm *TemplateManager) GetTemplateDir() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templateDir
}
