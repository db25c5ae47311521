// Package language aggregates everything that defines one constructed
// language and converts it to and from its persisted documents.
package language

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/alchemist/internal/grammar"
	"github.com/leapstack-labs/alchemist/internal/grapheme"
	"github.com/leapstack-labs/alchemist/internal/lexicon"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
	"github.com/leapstack-labs/alchemist/internal/translate"
	"github.com/leapstack-labs/alchemist/internal/wordlength"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// EmptyInventoryMessage is reported when a language has no graphemes.
const EmptyInventoryMessage = "The graphemic inventory must contain at least one grapheme"

// Language is one constructed language.
type Language struct {
	ID        uuid.UUID
	Name      string
	Graphemes *grapheme.Master
	Syllables *synthesis.Vars
	Weights   wordlength.Distribution
	Lexicon   *lexicon.Lexicon
	Rules     *grammar.RuleSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns an empty language with default word-length weights.
func New(name string, logger *slog.Logger) *Language {
	now := time.Now().UTC()
	return &Language{
		ID:        uuid.New(),
		Name:      name,
		Graphemes: grapheme.NewSet(),
		Syllables: synthesis.NewVars(),
		Weights:   wordlength.Default(),
		Lexicon:   lexicon.New(),
		Rules:     grammar.NewRuleSet(logger),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsConfigValid reports whether generation-driven features may run.
func (l *Language) IsConfigValid() bool {
	return l.Weights.IsConfigValid()
}

// Synthesizer returns a synthesizer over the language's syllable grammar.
func (l *Language) Synthesizer(opts ...synthesis.Option) *synthesis.Synthesizer {
	return synthesis.NewSynthesizer(l.Syllables, opts...)
}

// Translator returns a translator recording minted words in the lexicon.
func (l *Language) Translator(synthOpts []synthesis.Option, opts ...translate.Option) *translate.Translator {
	return translate.New(l.Lexicon, l.Synthesizer(synthOpts...), l.Weights, opts...)
}

// Problems collects every validity finding shown to the user. Only
// error-level findings block generation.
func (l *Language) Problems() core.Problems {
	var out core.Problems
	if l.Graphemes.IsEmpty() {
		out = append(out, core.Problem{
			Severity:  core.SeverityError,
			Component: "graphemes",
			Message:   EmptyInventoryMessage,
		})
	}
	out = append(out, l.Weights.Problems()...)
	out = append(out, synthesis.Analyze(l.Syllables, l.Graphemes).Problems()...)

	for i, r := range l.Rules.Rules() {
		if !r.IsValid() {
			out = append(out, core.Problem{
				Severity:  core.SeverityInfo,
				Component: "rules",
				Message:   fmt.Sprintf("rule %d is not set", i+1),
			})
		}
		for _, p := range r.Replace() {
			if !r.IsResolved(p) {
				out = append(out, core.Problem{
					Severity:  core.SeverityWarning,
					Component: "rules",
					Message:   fmt.Sprintf("rule %d has a capture that is not set", i+1),
				})
				break
			}
		}
	}
	return out
}

// Touch records a modification.
func (l *Language) Touch() {
	l.UpdatedAt = time.Now().UTC()
}
