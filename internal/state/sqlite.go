package state

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/alchemist/internal/language"
	"github.com/leapstack-labs/alchemist/internal/lexicon"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite state store instance. A nil logger
// discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewWithDB wraps an already opened database. The schema must exist.
func NewWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens a connection to the SQLite database, creating the parent
// directory if needed. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened state database", "path", path)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// contentHash is the blake3 digest of a stored document.
func contentHash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// storedLanguage is a language encoded for the languages and
// lexicon_entries tables.
type storedLanguage struct {
	doc     language.Document
	body    []byte
	hash    string
	stamp   time.Time
	entries []lexicon.Entry
}

func encodeLanguage(lang *language.Language) (storedLanguage, error) {
	doc := lang.Document()
	entries := doc.Lexicon
	doc.Lexicon = nil
	// UpdatedAt changes on every touch; keep it out of the hash.
	stamp := doc.UpdatedAt
	doc.UpdatedAt = time.Time{}

	body, err := json.Marshal(doc)
	if err != nil {
		return storedLanguage{}, fmt.Errorf("failed to encode language: %w", err)
	}
	lexBody, err := json.Marshal(entries)
	if err != nil {
		return storedLanguage{}, fmt.Errorf("failed to encode lexicon: %w", err)
	}
	return storedLanguage{
		doc:     doc,
		body:    body,
		hash:    contentHash(append(body, lexBody...)),
		stamp:   stamp,
		entries: entries,
	}, nil
}

// writeLanguage upserts the document row and rewrites its lexicon.
func writeLanguage(ctx context.Context, tx *sql.Tx, sl storedLanguage) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO languages (id, name, document, content_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   document = excluded.document,
		   content_hash = excluded.content_hash,
		   updated_at = excluded.updated_at`,
		sl.doc.ID, sl.doc.Name, string(sl.body), sl.hash,
		sl.doc.CreatedAt.UTC().Format(time.RFC3339Nano), sl.stamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM lexicon_entries WHERE language_id = ?`, sl.doc.ID); err != nil {
		return fmt.Errorf("failed to clear lexicon: %w", err)
	}
	for _, e := range sl.entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO lexicon_entries (language_id, native, conlang) VALUES (?, ?, ?)`,
			sl.doc.ID, e.Native, e.Conlang,
		)
		if err != nil {
			return fmt.Errorf("failed to save lexicon entry %q: %w", e.Native, err)
		}
	}
	return nil
}

// SaveLanguage inserts or updates a language. It reports false when the
// stored document was already identical and nothing was written.
func (s *SQLiteStore) SaveLanguage(ctx context.Context, lang *language.Language) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}

	sl, err := encodeLanguage(lang)
	if err != nil {
		return false, err
	}

	var current string
	err = s.db.QueryRowContext(ctx, `SELECT content_hash FROM languages WHERE id = ?`, sl.doc.ID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to read language: %w", err)
	}
	if current == sl.hash {
		s.logger.Debug("language unchanged", "name", lang.Name, "hash", sl.hash)
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeLanguage(ctx, tx, sl); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit language: %w", err)
	}
	s.logger.Debug("saved language", "name", lang.Name, "entries", len(sl.entries), "hash", sl.hash)
	return true, nil
}

// ReplaceLanguage stores lang in place of any language with the same name.
// The old language is removed in the same transaction, so a failed write
// leaves it untouched.
func (s *SQLiteStore) ReplaceLanguage(ctx context.Context, lang *language.Language) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	sl, err := encodeLanguage(lang)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM languages WHERE name = ? AND id <> ?`, sl.doc.Name, sl.doc.ID)
	if err != nil {
		return fmt.Errorf("failed to replace language: %w", err)
	}
	if err := writeLanguage(ctx, tx, sl); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit language: %w", err)
	}

	n, _ := res.RowsAffected()
	s.logger.Debug("replaced language", "name", lang.Name, "replaced", n > 0, "hash", sl.hash)
	return nil
}

// GetLanguage loads a language by name.
func (s *SQLiteStore) GetLanguage(ctx context.Context, name string) (*language.Language, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var id, body, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, document, updated_at FROM languages WHERE name = ?`, name,
	).Scan(&id, &body, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get language: %w", err)
	}

	var doc language.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode language %s: %w", name, err)
	}
	if doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	entries, err := s.lexiconEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Lexicon = entries

	lang, err := language.FromDocument(doc, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load language %s: %w", name, err)
	}
	return lang, nil
}

func (s *SQLiteStore) lexiconEntries(ctx context.Context, languageID string) ([]lexicon.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT native, conlang FROM lexicon_entries WHERE language_id = ? ORDER BY native`, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lexicon: %w", err)
	}
	defer rows.Close()

	var out []lexicon.Entry
	for rows.Next() {
		var e lexicon.Entry
		if err := rows.Scan(&e.Native, &e.Conlang); err != nil {
			return nil, fmt.Errorf("failed to scan lexicon entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListLanguages returns every stored language ordered by name.
func (s *SQLiteStore) ListLanguages(ctx context.Context) ([]LanguageSummary, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.content_hash, l.created_at, l.updated_at,
		       (SELECT COUNT(*) FROM lexicon_entries e WHERE e.language_id = l.id)
		FROM languages l
		ORDER BY l.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	var out []LanguageSummary
	for rows.Next() {
		var sum LanguageSummary
		var created, updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.ContentHash, &created, &updated, &sum.LexiconSize); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteLanguage removes a language and its lexicon.
func (s *SQLiteStore) DeleteLanguage(ctx context.Context, name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM languages WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLanguageNotFound, name)
	}
	return nil
}
