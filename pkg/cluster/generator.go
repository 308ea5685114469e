package cluster

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/CTAG07/namegen/pkg/textgen"
)

const (
	// DefaultOrder is the default number of preceding clusters used as context.
	DefaultOrder = 1
	// DefaultMinLength is the default minimum length of generated words.
	DefaultMinLength = 4
	// DefaultMaxLength is the default maximum length of generated words.
	DefaultMaxLength = 12
	// Control is the cluster marking the start and end of a word. It is
	// stripped from training text, so no real cluster ever contains it.
	Control = "\u001f"
)

var _ textgen.Model = (*Generator)(nil)

// Generator is a trainable cluster chain. It is not safe for concurrent use.
type Generator struct {
	order       int
	clusterizer *Clusterizer
	filter      textgen.Filter
	weighted    bool
	maxAttempts int
	src         rand.Source
	rng         *rand.Rand
	logger      *slog.Logger

	datasetLength int
	// trainedOrder is the order the transitions were learned with.
	trainedOrder int
	// transitions maps a context of 1..order clusters, joined by Control, to
	// the clusters observed directly after it.
	transitions map[string]*successors
	known       map[string]struct{}
	longest     int
}

// successors keeps distinct followers in the order they were first seen, so
// draws from a seeded source are reproducible.
type successors struct {
	context  []string
	clusters []string
	counts   map[string]int
	total    int
}

func newSuccessors(context []string) *successors {
	return &successors{
		context: slices.Clone(context),
		counts:  make(map[string]int),
	}
}

func (s *successors) add(cluster string, n int) {
	if _, ok := s.counts[cluster]; !ok {
		s.clusters = append(s.clusters, cluster)
	}
	s.counts[cluster] += n
	s.total += n
}

func (s *successors) has(cluster string) bool {
	_, ok := s.counts[cluster]
	return ok
}

// Option configures a Generator.
type Option func(*Generator)

// WithOrder sets the longest cluster context. Values below 1 are raised to 1.
// Default: 1
func WithOrder(order int) Option {
	return func(g *Generator) { g.order = max(order, 1) }
}

// WithVowels sets the vowel set used to split words into clusters.
// Default: LatinVowels
func WithVowels(vowels ...rune) Option {
	return func(g *Generator) { g.clusterizer = NewClusterizer(vowels...) }
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

// WithSource sets the random source.
func WithSource(src rand.Source) Option {
	return func(g *Generator) { g.setSource(src) }
}

// WithFrequencyWeighting draws successors in proportion to how often they
// were observed, instead of uniformly from the set of observed successors.
func WithFrequencyWeighting() Option {
	return func(g *Generator) { g.weighted = true }
}

// WithMaxAttempts bounds the number of rejected candidates per call. Zero, the
// default, retries forever.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = max(n, 0) }
}

// New returns an untrained Generator configured by opts.
func New(opts ...Option) *Generator {
	g := &Generator{
		order:       DefaultOrder,
		clusterizer: defaultClusterizer,
		filter: textgen.Filter{
			MinLength: DefaultMinLength,
			MaxLength: DefaultMaxLength,
		},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		transitions: make(map[string]*successors),
		known:       make(map[string]struct{}),
	}
	g.setSource(textgen.NewRandomSource())
	for _, opt := range opts {
		opt(g)
	}
	return g
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

// Order returns the longest cluster context.
func (g *Generator) Order() int { return g.order }

// SetOrder changes the longest cluster context used by the next Train call. A
// trained model keeps generating, blending and snapshotting at the order it
// was trained with until it is retrained.
func (g *Generator) SetOrder(order int) { g.order = max(order, 1) }

// Clusterizer returns the clusterizer used for training and filters.
func (g *Generator) Clusterizer() *Clusterizer { return g.clusterizer }

// SetVowels replaces the vowel set. Retrain afterwards: clusters learned with
// the previous set are kept as they are.
func (g *Generator) SetVowels(vowels ...rune) { g.clusterizer = NewClusterizer(vowels...) }

// FrequencyWeighting reports whether successors are drawn by observed frequency.
func (g *Generator) FrequencyWeighting() bool { return g.weighted }

// SetMaxAttempts bounds the number of rejected candidates per call; zero retries forever.
func (g *Generator) SetMaxAttempts(n int) { g.maxAttempts = max(n, 0) }

// MaxAttempts returns the retry budget; zero means unbounded.
func (g *Generator) MaxAttempts() int { return g.maxAttempts }

// Filter returns the configured filter with lower-cased affixes.
func (g *Generator) Filter() textgen.Filter { return g.filter.Lower() }

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

// StartFilter returns the lower-cased start filter.
func (g *Generator) StartFilter() string { return strings.ToLower(g.filter.StartsWith) }

// SetStartFilter requires output to begin with s.
func (g *Generator) SetStartFilter(s string) { g.filter.StartsWith = s }

// EndFilter returns the lower-cased end filter.
func (g *Generator) EndFilter() string { return strings.ToLower(g.filter.EndsWith) }

// SetEndFilter requires output to end with s.
func (g *Generator) SetEndFilter(s string) { g.filter.EndsWith = s }

// IsTrained reports whether at least one word has been ingested.
func (g *Generator) IsTrained() bool { return g.datasetLength > 0 }

// DatasetLength returns the number of words ingested.
func (g *Generator) DatasetLength() int { return g.datasetLength }

// LongestCluster returns the length in runes of the longest learned cluster.
func (g *Generator) LongestCluster() int { return g.longest }

// KnownClusters returns every learned cluster in ascending order, excluding Control.
func (g *Generator) KnownClusters() []string {
	clusters := make([]string, 0, len(g.known))
	for c := range g.known {
		if c != Control {
			clusters = append(clusters, c)
		}
	}
	slices.Sort(clusters)
	return clusters
}

// Successors returns the clusters observed directly after cluster, in the
// order they were first seen. Pass Control to list possible first clusters.
func (g *Generator) Successors(cluster string) []string {
	s, ok := g.transitions[cluster]
	if !ok {
		return nil
	}
	return slices.Clone(s.clusters)
}

func contextKey(clusters []string) string {
	return strings.Join(clusters, Control)
}
