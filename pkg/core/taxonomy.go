package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// WordType
// =============================================================================

// WordType is a word category, roughly a part of speech but simplified so it
// can describe arbitrary languages.
type WordType int

// Word types, in menu order.
const (
	WordAdposition WordType = iota
	WordConjunction
	WordDeterminer
	WordNoun
	WordNounModifier
	WordPronoun
	WordVerb
	WordVerbModifier
)

var wordTypeNames = [...]struct{ name, short, key string }{
	WordAdposition:   {"Adposition", "Adp", "adposition"},
	WordConjunction:  {"Conjunction", "Conj", "conjunction"},
	WordDeterminer:   {"Determiner", "Det", "determiner"},
	WordNoun:         {"Noun", "Noun", "noun"},
	WordNounModifier: {"Noun Modifier", "NM", "noun_modifier"},
	WordPronoun:      {"Pronoun", "Pro", "pronoun"},
	WordVerb:         {"Verb", "Verb", "verb"},
	WordVerbModifier: {"Verb Modifier", "VM", "verb_modifier"},
}

// WordTypes returns every word type in menu order.
func WordTypes() []WordType {
	out := make([]WordType, len(wordTypeNames))
	for i := range wordTypeNames {
		out[i] = WordType(i)
	}
	return out
}

// Valid reports whether w is one of the defined word types.
func (w WordType) Valid() bool {
	return w >= 0 && int(w) < len(wordTypeNames)
}

// Name returns the full display name, e.g. "Noun Modifier".
func (w WordType) Name() string {
	if !w.Valid() {
		return "unknown"
	}
	return wordTypeNames[w].name
}

// ShortName returns the abbreviated name used in compact labels, e.g. "NM".
func (w WordType) ShortName() string {
	if !w.Valid() {
		return "?"
	}
	return wordTypeNames[w].short
}

// String returns the stable key used in persisted documents.
func (w WordType) String() string {
	if !w.Valid() {
		return "unknown"
	}
	return wordTypeNames[w].key
}

// ParseWordType accepts a persisted key, full name or short name (case-insensitive).
func ParseWordType(s string) (WordType, error) {
	for i, n := range wordTypeNames {
		if strings.EqualFold(s, n.key) || strings.EqualFold(s, n.name) || strings.EqualFold(s, n.short) {
			return WordType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown word type %q", s)
}

// =============================================================================
// PhraseType
// =============================================================================

// PhraseType is a constituent type. A phrase is composed of words and other phrases.
type PhraseType int

// Phrase types, in menu order.
const (
	PhraseAction PhraseType = iota
	PhraseArgument
	PhraseClause
	PhraseRelation
)

var phraseTypeNames = [...]struct{ name, short, key string }{
	PhraseAction:   {"Action Phrase", "Action", "action"},
	PhraseArgument: {"Argument Phrase", "Arg", "argument"},
	PhraseClause:   {"Clause Phrase", "Clause", "clause"},
	PhraseRelation: {"Relation Phrase", "Rel", "relation"},
}

// PhraseTypes returns every phrase type in menu order.
func PhraseTypes() []PhraseType {
	out := make([]PhraseType, len(phraseTypeNames))
	for i := range phraseTypeNames {
		out[i] = PhraseType(i)
	}
	return out
}

// Valid reports whether p is one of the defined phrase types.
func (p PhraseType) Valid() bool {
	return p >= 0 && int(p) < len(phraseTypeNames)
}

// Name returns the full display name, e.g. "Argument Phrase".
func (p PhraseType) Name() string {
	if !p.Valid() {
		return "unknown"
	}
	return phraseTypeNames[p].name
}

// ShortName returns the abbreviated name used in compact labels, e.g. "Arg".
func (p PhraseType) ShortName() string {
	if !p.Valid() {
		return "?"
	}
	return phraseTypeNames[p].short
}

// String returns the stable key used in persisted documents.
func (p PhraseType) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return phraseTypeNames[p].key
}

// ParsePhraseType accepts a persisted key, full name or short name (case-insensitive).
func ParsePhraseType(s string) (PhraseType, error) {
	for i, n := range phraseTypeNames {
		if strings.EqualFold(s, n.key) || strings.EqualFold(s, n.name) || strings.EqualFold(s, n.short) {
			return PhraseType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phrase type %q", s)
}

// =============================================================================
// WordClass
// =============================================================================

// WordClass selects which word-length distribution is used when minting a word.
// Function words (conjunctions, determiners, etc.) are usually shorter than
// content words.
type WordClass int

// Word classes.
const (
	ClassFunction WordClass = iota
	ClassContent
)

// String returns the lowercase class key.
func (c WordClass) String() string {
	switch c {
	case ClassFunction:
		return "function"
	case ClassContent:
		return "content"
	default:
		return "unknown"
	}
}

// Title returns the column title shown to users.
func (c WordClass) Title() string {
	switch c {
	case ClassFunction:
		return "Function Words"
	case ClassContent:
		return "Content Words"
	default:
		return "Unknown Words"
	}
}

// ParseWordClass converts a string to a WordClass.
func ParseWordClass(s string) (WordClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "function", "func", "f":
		return ClassFunction, nil
	case "content", "c", "":
		return ClassContent, nil
	default:
		return 0, fmt.Errorf("unknown word class %q (want function or content)", s)
	}
}
