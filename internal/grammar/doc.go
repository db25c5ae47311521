// Package grammar models grammar rewrite rules: a forest of find patterns
// matched against sentence constituents and a list of replace patterns that
// either echo a captured find pattern or insert a literal word.
//
// Find patterns live in a per-rule arena and are addressed by generational
// Handles. Removing a pattern bumps its slot generation, so every capture
// still holding the old handle resolves to "unset" without further
// bookkeeping.
//
// Only the data model and its editing API live here. Executing rules against
// parsed input is not implemented.
package grammar

import "errors"

var (
	// ErrStaleHandle is returned when a handle no longer refers to a live
	// find pattern of the rule.
	ErrStaleHandle = errors.New("find pattern no longer exists")
	// ErrLiteralChildren is returned when nesting a pattern under an exact word.
	ErrLiteralChildren = errors.New("exact word patterns cannot have children")
	// ErrNotLiteral is returned when editing the text of a non-literal pattern.
	ErrNotLiteral = errors.New("find pattern is not an exact word")
	// ErrIndexOutOfRange is returned for an invalid list position.
	ErrIndexOutOfRange = errors.New("index out of range")
)
