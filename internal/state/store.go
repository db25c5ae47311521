// Package state persists languages in a local SQLite database.
//
// A language is stored as one JSON document plus its lexicon entries, which
// live in their own table so they can be listed and searched without
// decoding the whole document.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/alchemist/internal/language"
)

// ErrLanguageNotFound is returned when no language has the requested name.
var ErrLanguageNotFound = errors.New("language not found")

// LanguageSummary is one row of the language list.
type LanguageSummary struct {
	ID          string
	Name        string
	LexiconSize int
	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store is the persistence contract used by the CLI.
type Store interface {
	SaveLanguage(ctx context.Context, lang *language.Language) (bool, error)
	ReplaceLanguage(ctx context.Context, lang *language.Language) error
	GetLanguage(ctx context.Context, name string) (*language.Language, error)
	ListLanguages(ctx context.Context) ([]LanguageSummary, error)
	DeleteLanguage(ctx context.Context, name string) error
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
