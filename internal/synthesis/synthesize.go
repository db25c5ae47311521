package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/alchemist/internal/wordlength"
)

// DefaultMaxDepth bounds variable expansion so that self-referencing
// variables cannot recurse forever.
const DefaultMaxDepth = 32

// Synthesizer generates morphemes from a grammar. It never mutates the
// grammar, so one Synthesizer may be shared by concurrent callers; each call
// draws from its own random source.
type Synthesizer struct {
	vars     *Vars
	maxDepth int
	logger   *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithMaxDepth sets the variable expansion depth limit.
func WithMaxDepth(depth int) Option {
	return func(s *Synthesizer) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynthesizer returns a synthesizer reading from vars.
func NewSynthesizer(vars *Vars, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		vars:     vars,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newRand returns an independently seeded source. The package-level
// generator is safe for concurrent use, so seeding from it never races.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SynthesizeMorpheme generates one morpheme using a fresh random source.
// The weights must already be valid (see wordlength.Verify).
func SynthesizeMorpheme(vars *Vars, weights wordlength.Weights) string {
	return NewSynthesizer(vars).Morpheme(newRand(), weights)
}

// Morpheme samples a syllable count from weights and generates that many
// syllables: a single syllable from SingleSyllable, otherwise one initial,
// count-2 middle and one terminal syllable.
func (s *Synthesizer) Morpheme(r *rand.Rand, weights wordlength.Weights) string {
	n := weights.Sample(r)

	var out strings.Builder
	if n == 1 {
		s.syllable(&s.vars.roots.Single, r, &out, 0)
		return out.String()
	}
	s.syllable(&s.vars.roots.Initial, r, &out, 0)
	for i := 0; i < n-2; i++ {
		s.syllable(&s.vars.roots.Middle, r, &out, 0)
	}
	s.syllable(&s.vars.roots.Terminal, r, &out, 0)
	return out.String()
}

// Syllable generates one syllable from the named rule. Unknown names yield
// an empty string.
func (s *Synthesizer) Syllable(r *rand.Rand, rule string) string {
	var out strings.Builder
	if or, ok := s.vars.Get(rule); ok {
		s.syllable(or, r, &out, 0)
	}
	return out.String()
}

func (s *Synthesizer) syllable(rule *OrRule, r *rand.Rand, out *strings.Builder, depth int) {
	if depth > s.maxDepth {
		s.logger.Debug("variable expansion depth limit reached", "max_depth", s.maxDepth)
		return
	}
	if len(rule.alts) == 0 {
		return
	}
	alt := rule.alts[r.IntN(len(rule.alts))]
	for _, leaf := range alt.leaves {
		switch leaf.Kind {
		case LeafSequence:
			for _, g := range leaf.Sequence {
				out.WriteString(string(g))
			}
		case LeafSet:
			if n := leaf.Set.Len(); n > 0 {
				out.WriteString(string(leaf.Set.At(r.IntN(n))))
			}
		case LeafVariable:
			if next, ok := s.vars.Get(leaf.Name); ok {
				s.syllable(next, r, out, depth+1)
			}
		case LeafBlank, LeafUninitialized:
		}
	}
}

// Batch generates n morphemes using up to workers goroutines. Every worker
// owns its random source.
func (s *Synthesizer) Batch(ctx context.Context, weights wordlength.Weights, n, workers int) ([]string, error) {
	if !wordlength.Verify(weights) {
		return nil, fmt.Errorf("word length weights sum to %d%%, want %d%%", weights.Sum(), wordlength.Total)
	}
	if n < 0 {
		return nil, fmt.Errorf("cannot generate %d words", n)
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]string, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.Morpheme(newRand(), weights)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Debug("synthesized batch", "count", n, "workers", workers)
	return out, nil
}
