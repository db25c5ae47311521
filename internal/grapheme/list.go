package grapheme

import "slices"

// List is an ordered sequence of graphemes that allows duplicates.
type List []Grapheme

// NewList returns a list holding gs in order.
func NewList(gs ...Grapheme) *List {
	l := List(slices.Clone(gs))
	return &l
}

// Add appends g.
func (l *List) Add(g Grapheme) {
	*l = append(*l, g)
}

// Contains reports whether g occurs anywhere in the list.
func (l *List) Contains(g Grapheme) bool {
	return slices.Contains(*l, g)
}

// IsEmpty reports whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(*l) == 0
}

// RetainIf removes every grapheme for which keep returns false.
func (l *List) RetainIf(keep func(Grapheme) bool) {
	*l = slices.DeleteFunc(*l, func(g Grapheme) bool { return !keep(g) })
}

// Graphemes returns a copy of the list.
func (l *List) Graphemes() []Grapheme {
	return slices.Clone(*l)
}
