// Package synthesis implements the syllable rule grammar and word synthesis.
//
// The grammar is in sum-of-products form: an OrRule is a list of AndRule
// alternatives, each a sequence of LeafRules. Four root rules generate the
// initial, middle, terminal and single syllables of a word; any number of
// named variables can be referenced from leaves.
//
// Malformed grammars stay explorable: an undefined variable, an empty set or
// an uninitialized leaf simply produces no output.
package synthesis

import "errors"

var (
	// ErrIndexOutOfRange is returned when an alternative or leaf index is invalid.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownRule is returned when a rule name is neither a root nor a variable.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUninitializedRule is returned when adding an alternative to a rule
	// whose first leaf has not been set.
	ErrUninitializedRule = errors.New("rule has no content yet")
)
