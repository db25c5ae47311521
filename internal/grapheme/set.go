package grapheme

import (
	"encoding/json"
	"slices"
)

// Set is an ordered set of unique graphemes, sorted lexicographically.
// The zero value is an empty set ready to use.
type Set struct {
	items []Grapheme
}

// Master is the authoritative inventory of a language. Other containers link
// to it for validity checking.
type Master = Set

// NewSet returns a set holding gs.
func NewSet(gs ...Grapheme) *Set {
	s := &Set{}
	for _, g := range gs {
		s.Add(g)
	}
	return s
}

// Add inserts g if it is not already present.
func (s *Set) Add(g Grapheme) {
	i, found := slices.BinarySearch(s.items, g)
	if found {
		return
	}
	s.items = slices.Insert(s.items, i, g)
}

// Contains reports whether g is in the set.
func (s *Set) Contains(g Grapheme) bool {
	if s == nil {
		return false
	}
	_, found := slices.BinarySearch(s.items, g)
	return found
}

// IsEmpty reports whether the set is empty.
func (s *Set) IsEmpty() bool {
	return s == nil || len(s.items) == 0
}

// Len returns the number of graphemes.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// RetainIf removes every grapheme for which keep returns false.
func (s *Set) RetainIf(keep func(Grapheme) bool) {
	s.items = slices.DeleteFunc(s.items, func(g Grapheme) bool { return !keep(g) })
}

// Graphemes returns a copy of the members in sorted order.
func (s *Set) Graphemes() []Grapheme {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

// At returns the i-th member in sorted order.
func (s *Set) At(i int) Grapheme {
	return s.items[i]
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	if s == nil {
		return &Set{}
	}
	return &Set{items: slices.Clone(s.items)}
}

// MarshalJSON encodes the set as a sorted string array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(Strings(s.items))
}

// UnmarshalJSON decodes a string array, deduplicating and sorting.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.items = nil
	for _, r := range raw {
		s.Add(New(r))
	}
	return nil
}
