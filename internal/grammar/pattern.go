package grammar

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/alchemist/pkg/core"
)

// PatternKind selects the variant held by a PatternType.
type PatternKind int

// Pattern kinds.
const (
	KindPhrase PatternKind = iota
	KindWord
	KindLiteral
)

func (k PatternKind) String() string {
	switch k {
	case KindPhrase:
		return "phrase"
	case KindWord:
		return "word"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// ParsePatternKind converts a persisted kind name back to a PatternKind.
func ParsePatternKind(s string) (PatternKind, error) {
	for k := KindPhrase; k <= KindLiteral; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern kind %q", s)
}

// PatternType is what a find pattern matches: a phrase of some type, a word
// of some type, or an exact word. Only the field selected by Kind is
// meaningful. PatternType is comparable and used as part of the label key.
type PatternType struct {
	Kind    PatternKind
	Phrase  core.PhraseType
	Word    core.WordType
	Literal string
}

// Phrase returns a pattern type matching a phrase constituent.
func Phrase(p core.PhraseType) PatternType {
	return PatternType{Kind: KindPhrase, Phrase: p}
}

// Word returns a pattern type matching a word constituent.
func Word(w core.WordType) PatternType {
	return PatternType{Kind: KindWord, Word: w}
}

// Literal returns a pattern type matching the exact word s.
func Literal(s string) PatternType {
	return PatternType{Kind: KindLiteral, Literal: s}
}

// ShortName is the abbreviated label text: "Arg", "Noun" or "\"word\"".
func (p PatternType) ShortName() string {
	switch p.Kind {
	case KindPhrase:
		return p.Phrase.ShortName()
	case KindWord:
		return p.Word.ShortName()
	default:
		return `"` + p.Literal + `"`
	}
}

// Name is the menu text: "Argument Phrase", "Noun Modifier" or "Exact Word".
func (p PatternType) Name() string {
	switch p.Kind {
	case KindPhrase:
		return p.Phrase.Name()
	case KindWord:
		return p.Word.Name()
	default:
		return "Exact Word"
	}
}

// String renders the type as kind:value, the form accepted by ParsePatternType.
func (p PatternType) String() string {
	switch p.Kind {
	case KindPhrase:
		return "phrase:" + p.Phrase.String()
	case KindWord:
		return "word:" + p.Word.String()
	default:
		return "literal:" + p.Literal
	}
}

// ParsePatternType accepts "phrase:<type>", "word:<type>", "literal:<text>"
// or a bare word or phrase type name. Bare names are tried as word types
// first.
func ParsePatternType(s string) (PatternType, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		if w, err := core.ParseWordType(s); err == nil {
			return Word(w), nil
		}
		if p, err := core.ParsePhraseType(s); err == nil {
			return Phrase(p), nil
		}
		return PatternType{}, fmt.Errorf("unknown pattern type %q", s)
	}
	switch strings.ToLower(kind) {
	case "phrase":
		p, err := core.ParsePhraseType(value)
		if err != nil {
			return PatternType{}, err
		}
		return Phrase(p), nil
	case "word":
		w, err := core.ParseWordType(value)
		if err != nil {
			return PatternType{}, err
		}
		return Word(w), nil
	case "literal", "exact":
		return Literal(value), nil
	default:
		return PatternType{}, fmt.Errorf("unknown pattern kind %q", kind)
	}
}

// PatternChoice is one entry of the "new find pattern" menu.
type PatternChoice struct {
	Name string
	New  func() PatternType
}

// DefaultLiteral is the text of a freshly created exact word pattern.
const DefaultLiteral = "word"

// FindChoices returns the find pattern menu: phrase types, word types, then
// an exact word.
func FindChoices() []PatternChoice {
	var out []PatternChoice
	for _, p := range core.PhraseTypes() {
		out = append(out, PatternChoice{Name: p.Name(), New: func() PatternType { return Phrase(p) }})
	}
	for _, w := range core.WordTypes() {
		out = append(out, PatternChoice{Name: w.Name(), New: func() PatternType { return Word(w) }})
	}
	out = append(out, PatternChoice{Name: "Exact Word", New: func() PatternType { return Literal(DefaultLiteral) }})
	return out
}

// modifierSuffix renders the multimatch/optional flags.
func modifierSuffix(multimatch, optional bool) string {
	switch {
	case multimatch && optional:
		return "*"
	case multimatch:
		return "+"
	case optional:
		return "?"
	default:
		return ""
	}
}
