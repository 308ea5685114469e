package markov

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/CTAG07/namegen/pkg/textgen"
)

const (
	// DefaultOrder is the default number of preceding characters used as context.
	DefaultOrder = 3
	// DefaultPrior is the default weight given to characters never seen after a context.
	DefaultPrior = 0.005
	// DefaultMinLength is the default minimum length of generated words.
	DefaultMinLength = 4
	// DefaultMaxLength is the default maximum length of generated words.
	DefaultMaxLength = 12
	// Control marks the start and end of a word. It is stripped from training
	// text and filters, so it can never be part of the real alphabet.
	Control rune = '\u001f'
)

var _ textgen.Model = (*Generator)(nil)

// Generator is a trainable multi-order character Markov model. It is not safe
// for concurrent use.
type Generator struct {
	order          int
	prior          float64
	filter         textgen.Filter
	casePreserving bool
	maxAttempts    int
	src            rand.Source
	rng            *rand.Rand
	logger         *slog.Logger

	tables   *tables
	alphabet []rune
	index    map[rune]int
	model    map[string]*weights
}

// weights holds the relative likelihood of each alphabet rune following one
// context. values is parallel to Generator.alphabet.
type weights struct {
	values []float64
	total  float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithOrder sets the longest context, in characters. Values below 1 are raised to 1.
// Default: 3
func WithOrder(order int) Option {
	return func(g *Generator) { g.order = max(order, 1) }
}

// WithPrior sets the weight of unseen transitions. Increase it to make output
// more random or to compensate for sparse training data.
// Default: 0.005
func WithPrior(prior float64) Option {
	return func(g *Generator) { g.prior = max(prior, 0) }
}

// WithMinLength sets the minimum length of accepted output.
// Default: 4
func WithMinLength(n int) Option {
	return func(g *Generator) { g.filter.MinLength = n }
}

// WithMaxLength sets the maximum length of accepted output.
// Default: 12
func WithMaxLength(n int) Option {
	return func(g *Generator) { g.filter.MaxLength = n }
}

// WithStartFilter requires output to begin with s.
func WithStartFilter(s string) Option {
	return func(g *Generator) { g.filter.StartsWith = s }
}

// WithEndFilter requires output to end with s.
func WithEndFilter(s string) Option {
	return func(g *Generator) { g.filter.EndsWith = s }
}

// WithSource sets the random source. Supplying a seeded source makes output
// reproducible for the same training data and call sequence.
func WithSource(src rand.Source) Option {
	return func(g *Generator) { g.setSource(src) }
}

// WithCasePreserving keeps upper/lower case distinct in training, filters and
// output instead of folding everything to lower case.
func WithCasePreserving() Option {
	return func(g *Generator) { g.casePreserving = true }
}

// WithMaxAttempts bounds the number of rejected candidates per call. Zero, the
// default, retries forever.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = max(n, 0) }
}

// New returns an untrained Generator configured by opts.
func New(opts ...Option) *Generator {
	g := &Generator{
		order: DefaultOrder,
		prior: DefaultPrior,
		filter: textgen.Filter{
			MinLength: DefaultMinLength,
			MaxLength: DefaultMaxLength,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	g.setSource(textgen.NewRandomSource())
	for _, opt := range opts {
		opt(g)
	}
	g.install(newTables(g.order))
	return g
}

// NewCasePreserving returns an untrained Generator that learns and reproduces
// capitalisation, such as the "Mc" and "Mac" prefixes of some surnames. It
// learns less from the same data, since "A" and "a" are modelled separately.
func NewCasePreserving(opts ...Option) *Generator {
	return New(append([]Option{WithCasePreserving()}, opts...)...)
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// SetSource replaces the random source.
func (g *Generator) SetSource(src rand.Source) { g.setSource(src) }

// Source returns the random source in use.
func (g *Generator) Source() rand.Source { return g.src }

func (g *Generator) setSource(src rand.Source) {
	g.src = src
	g.rng = rand.New(src)
}

// Order returns the longest context length.
func (g *Generator) Order() int { return g.order }

// SetOrder changes the longest context length used by the next Train call. A
// trained model keeps generating, blending and snapshotting at the order it
// was trained with until it is retrained.
func (g *Generator) SetOrder(order int) { g.order = max(order, 1) }

// Prior returns the weight of unseen transitions.
func (g *Generator) Prior() float64 { return g.prior }

// SetPrior changes the weight of unseen transitions. A trained model is
// reweighted immediately.
func (g *Generator) SetPrior(prior float64) {
	g.prior = max(prior, 0)
	g.install(g.tables)
}

// CasePreserving reports whether case is kept distinct.
func (g *Generator) CasePreserving() bool { return g.casePreserving }

// SetMaxAttempts bounds the number of rejected candidates per call; zero retries forever.
func (g *Generator) SetMaxAttempts(n int) { g.maxAttempts = max(n, 0) }

// MaxAttempts returns the retry budget; zero means unbounded.
func (g *Generator) MaxAttempts() int { return g.maxAttempts }

// Filter returns the configured filter with its affixes normalised the way
// generation will see them.
func (g *Generator) Filter() textgen.Filter { return g.normalizeFilter(g.filter) }

// SetFilter replaces the configured length bounds and affixes.
func (g *Generator) SetFilter(f textgen.Filter) { g.filter = f }

// MinLength returns the configured minimum output length.
func (g *Generator) MinLength() int { return g.filter.MinLength }

// SetMinLength sets the minimum output length.
func (g *Generator) SetMinLength(n int) { g.filter.MinLength = n }

// MaxLength returns the configured maximum output length.
func (g *Generator) MaxLength() int { return g.filter.MaxLength }

// SetMaxLength sets the maximum output length.
func (g *Generator) SetMaxLength(n int) { g.filter.MaxLength = n }

// StartFilter returns the normalised start filter.
func (g *Generator) StartFilter() string { return g.normalize(g.filter.StartsWith, false) }

// SetStartFilter requires output to begin with s.
func (g *Generator) SetStartFilter(s string) { g.filter.StartsWith = s }

// EndFilter returns the normalised end filter.
func (g *Generator) EndFilter() string { return g.normalize(g.filter.EndsWith, false) }

// SetEndFilter requires output to end with s.
func (g *Generator) SetEndFilter(s string) { g.filter.EndsWith = s }

// IsTrained reports whether at least one word has been ingested.
func (g *Generator) IsTrained() bool { return g.tables.datasetLength > 0 }

// DatasetLength returns the number of words ingested by the last training call
// (plus any blended since).
func (g *Generator) DatasetLength() int { return g.tables.datasetLength }

// Alphabet returns every rune the model can emit, in ascending order,
// including Control.
func (g *Generator) Alphabet() []rune { return slices.Clone(g.alphabet) }

// normalize prepares text for the model: Control is removed, and unless the
// generator preserves case the text is lower-cased. Training text is also
// trimmed; filters are not, since leading or trailing spaces in them may be
// intentional.
func (g *Generator) normalize(s string, trim bool) string {
	s = strings.ReplaceAll(s, string(Control), "")
	if trim {
		s = strings.TrimSpace(s)
	}
	if !g.casePreserving {
		s = strings.ToLower(s)
	}
	return s
}

func (g *Generator) normalizeFilter(f textgen.Filter) textgen.Filter {
	f.StartsWith = g.normalize(f.StartsWith, false)
	f.EndsWith = g.normalize(f.EndsWith, false)
	return f
}
