// Package grapheme provides the atomic output units of a language and the
// containers that hold them.
//
// A Grapheme is a letter, multigraph or symbol. Containers choose their own
// policies on ordering and duplicates: Set is ordered and unique, List keeps
// insertion order and allows duplicates. Any container may be checked against
// a Master inventory; graphemes missing from the master are flagged invalid
// but never removed automatically.
package grapheme

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Grapheme is a grapheme or multigraph. Identity is string equality.
type Grapheme string

// New returns the NFC-normalised grapheme for s so that visually identical
// input typed with combining marks compares equal.
func New(s string) Grapheme {
	return Grapheme(norm.NFC.String(s))
}

// String returns the grapheme text.
func (g Grapheme) String() string {
	return string(g)
}

// Storage is a container that can hold graphemes.
type Storage interface {
	// Add inserts a grapheme, following the container's duplicate policy.
	Add(g Grapheme)
	// Contains reports whether the container holds g.
	Contains(g Grapheme) bool
	// IsEmpty reports whether the container holds no graphemes.
	IsEmpty() bool
	// RetainIf removes every grapheme for which keep returns false.
	RetainIf(keep func(Grapheme) bool)
	// Graphemes returns the contents in container order.
	Graphemes() []Grapheme
}

// Split breaks user input into graphemes on whitespace, dropping empty tokens.
func Split(input string) []Grapheme {
	fields := strings.FieldsFunc(input, unicode.IsSpace)
	out := make([]Grapheme, 0, len(fields))
	for _, f := range fields {
		out = append(out, New(f))
	}
	return out
}

// AddAll adds each grapheme of input (split on whitespace) to s.
func AddAll(s Storage, input string) {
	for _, g := range Split(input) {
		s.Add(g)
	}
}

// Remove drops every copy of g from s.
func Remove(s Storage, g Grapheme) {
	s.RetainIf(func(x Grapheme) bool { return x != g })
}

// Join concatenates the graphemes of s in container order.
func Join(s Storage) string {
	var b strings.Builder
	for _, g := range s.Graphemes() {
		b.WriteString(string(g))
	}
	return b.String()
}

// Invalid returns the graphemes of s that are not in master, in container
// order. A nil master links nothing, so nothing is invalid.
func Invalid(s Storage, master *Master) []Grapheme {
	if master == nil {
		return nil
	}
	var out []Grapheme
	for _, g := range s.Graphemes() {
		if !master.Contains(g) {
			out = append(out, g)
		}
	}
	return out
}

// Strings converts graphemes to plain strings for persistence.
func Strings(gs []Grapheme) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}
