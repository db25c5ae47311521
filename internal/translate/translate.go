// Package translate turns native text into conlang text using a language's
// lexicon, minting new morphemes for words the lexicon does not know yet.
package translate

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/alchemist/internal/lexicon"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
	"github.com/leapstack-labs/alchemist/internal/wordlength"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// ErrInvalidConfig is returned when the word-length weights do not sum to 100.
var ErrInvalidConfig = errors.New("this language's configuration contains errors")

// Translator translates text for one language. It records every minted word
// in the lexicon, so it is not safe for concurrent use.
type Translator struct {
	lex     *lexicon.Lexicon
	synth   *synthesis.Synthesizer
	weights wordlength.Distribution
	fold    cases.Caser
	rand    *rand.Rand
	logger  *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithRand fixes the random source used to mint words.
func WithRand(r *rand.Rand) Option {
	return func(t *Translator) { t.rand = r }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New returns a translator over lex, minting words from synth.
func New(lex *lexicon.Lexicon, synth *synthesis.Synthesizer, weights wordlength.Distribution, opts ...Option) *Translator {
	t := &Translator{
		lex:     lex,
		synth:   synth,
		weights: weights,
		fold:    cases.Lower(language.Und),
		rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate replaces every alphanumeric run of text with its conlang word
// and keeps all other characters as they are. Lookups use the lowercased
// word.
func (t *Translator) Translate(text string) (string, error) {
	if !t.weights.IsConfigValid() {
		return "", ErrInvalidConfig
	}

	var out strings.Builder
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out.WriteString(t.Word(text[start:i]))
			start = -1
		}
		out.WriteRune(r)
	}
	if start >= 0 {
		out.WriteString(t.Word(text[start:]))
	}
	return out.String(), nil
}

// Word translates a single word, minting and recording a content morpheme
// on a lexicon miss. The caller must have checked the weights.
func (t *Translator) Word(word string) string {
	key := t.fold.String(word)
	return t.lex.GetOrCreate(key, func() string {
		w := t.synth.Morpheme(t.rand, t.weights.For(core.ClassContent))
		t.logger.Debug("minted word", "native", key, "conlang", w)
		return w
	})
}
