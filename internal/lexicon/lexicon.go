// Package lexicon maps native-language phrases to conlang phrases.
package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEntryExists is returned when a native phrase is already mapped.
	ErrEntryExists = errors.New("native phrase already mapped")
	// ErrEmptyPhrase is returned when the native phrase is empty.
	ErrEmptyPhrase = errors.New("native phrase is empty")
	// ErrNotFound is returned when editing or removing a missing entry.
	ErrNotFound = errors.New("no such lexicon entry")
)

// Entry is one native→conlang mapping.
type Entry struct {
	Native  string `json:"native" yaml:"native"`
	Conlang string `json:"conlang" yaml:"conlang"`
}

// Lexicon is a set of entries keyed by native phrase.
type Lexicon struct {
	entries map[string]string
}

// New returns an empty lexicon.
func New() *Lexicon {
	return &Lexicon{entries: make(map[string]string)}
}

// FromEntries builds a lexicon. Later duplicates overwrite earlier ones.
func FromEntries(entries []Entry) *Lexicon {
	l := New()
	for _, e := range entries {
		l.entries[e.Native] = e.Conlang
	}
	return l
}

// Len returns the number of entries.
func (l *Lexicon) Len() int { return len(l.entries) }

// Get returns the conlang phrase for native.
func (l *Lexicon) Get(native string) (string, bool) {
	c, ok := l.entries[native]
	return c, ok
}

// Set maps native to conlang, overwriting any existing entry.
func (l *Lexicon) Set(native, conlang string) error {
	if native == "" {
		return ErrEmptyPhrase
	}
	l.entries[native] = conlang
	return nil
}

// GetOrCreate returns the entry for native, calling mint to create and
// record it when missing.
func (l *Lexicon) GetOrCreate(native string, mint func() string) string {
	if c, ok := l.entries[native]; ok {
		return c
	}
	c := mint()
	l.entries[native] = c
	return c
}

// OverwriteWarning returns the message shown while typing a native phrase
// that is already mapped, or "".
func (l *Lexicon) OverwriteWarning(native string) string {
	if c, ok := l.entries[native]; ok {
		return fmt.Sprintf("Already mapped to <%s>", c)
	}
	return ""
}

// CanEdit reports whether an edit of original (or a new entry when original
// is "") to native may be applied: native is non-empty and does not collide
// with another entry.
func (l *Lexicon) CanEdit(original, native string) bool {
	if native == "" {
		return false
	}
	if native == original {
		return true
	}
	_, taken := l.entries[native]
	return !taken
}

// Add creates a new entry.
func (l *Lexicon) Add(native, conlang string) error {
	if !l.CanEdit("", native) {
		if native == "" {
			return ErrEmptyPhrase
		}
		return fmt.Errorf("%w: %s", ErrEntryExists, l.OverwriteWarning(native))
	}
	l.entries[native] = conlang
	return nil
}

// Edit replaces the entry for original, renaming it to native.
func (l *Lexicon) Edit(original, native, conlang string) error {
	if _, ok := l.entries[original]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, original)
	}
	if !l.CanEdit(original, native) {
		if native == "" {
			return ErrEmptyPhrase
		}
		return fmt.Errorf("%w: %s", ErrEntryExists, l.OverwriteWarning(native))
	}
	delete(l.entries, original)
	l.entries[native] = conlang
	return nil
}

// Remove deletes the entry for native.
func (l *Lexicon) Remove(native string) error {
	if _, ok := l.entries[native]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, native)
	}
	delete(l.entries, native)
	return nil
}

// Entries returns every entry sorted by native phrase.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for n, c := range l.entries {
		out = append(out, Entry{Native: n, Conlang: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Native < out[j].Native })
	return out
}

// SearchMode selects which side of an entry a search looks at.
type SearchMode int

// Search modes.
const (
	SearchNative SearchMode = iota
	SearchConlang
)

// ParseSearchMode accepts "native" or "conlang".
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(s) {
	case "", "native":
		return SearchNative, nil
	case "conlang":
		return SearchConlang, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q", s)
	}
}

// Search returns the entries whose native or conlang phrase contains query,
// sorted by native phrase. An empty query matches everything.
func (l *Lexicon) Search(mode SearchMode, query string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		field := e.Native
		if mode == SearchConlang {
			field = e.Conlang
		}
		if strings.Contains(field, query) {
			out = append(out, e)
		}
	}
	return out
}

// Homonyms counts conlang phrases shared by more than one native phrase.
func (l *Lexicon) Homonyms() int {
	seen := make(map[string]int, len(l.entries))
	for _, c := range l.entries {
		seen[c]++
	}
	n := 0
	for _, count := range seen {
		if count > 1 {
			n++
		}
	}
	return n
}

// MarshalJSON writes the lexicon as a sorted entry list.
func (l *Lexicon) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Entries())
}

// UnmarshalJSON reads an entry list.
func (l *Lexicon) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*l = *FromEntries(entries)
	return nil
}
