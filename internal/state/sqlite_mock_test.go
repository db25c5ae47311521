package state

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/internal/language"
)

func TestSQLiteStore_ErrorPaths(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(s *SQLiteStore) error
		wantIs    error
		wantMsg   string
	}{
		{
			name: "get missing language",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, document, updated_at FROM languages").
					WithArgs("Nope").
					WillReturnError(sql.ErrNoRows)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.GetLanguage(context.Background(), "Nope")
				return err
			},
			wantIs: ErrLanguageNotFound,
		},
		{
			name: "get corrupt document",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, document, updated_at FROM languages").
					WillReturnRows(sqlmock.NewRows([]string{"id", "document", "updated_at"}).
						AddRow("id-1", "{not json", "2026-01-01T00:00:00Z"))
			},
			run: func(s *SQLiteStore) error {
				_, err := s.GetLanguage(context.Background(), "Broken")
				return err
			},
			wantMsg: "failed to decode language Broken",
		},
		{
			name: "delete failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM languages").WillReturnError(errors.New("disk full"))
			},
			run: func(s *SQLiteStore) error {
				return s.DeleteLanguage(context.Background(), "x")
			},
			wantMsg: "failed to delete language: disk full",
		},
		{
			name: "save rolls back on lexicon failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT content_hash FROM languages").WillReturnError(sql.ErrNoRows)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO languages").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("DELETE FROM lexicon_entries").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO lexicon_entries").WillReturnError(errors.New("constraint"))
				mock.ExpectRollback()
			},
			run: func(s *SQLiteStore) error {
				lang := language.New("Broken", nil)
				if err := lang.Lexicon.Add("sun", "ke"); err != nil {
					return err
				}
				_, err := s.SaveLanguage(context.Background(), lang)
				return err
			},
			wantMsg: `failed to save lexicon entry "sun"`,
		},
		{
			name: "replace rolls back on write failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM languages WHERE name").
					WithArgs("Elvish", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO languages").WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			run: func(s *SQLiteStore) error {
				return s.ReplaceLanguage(context.Background(), language.New("Elvish", nil))
			},
			wantMsg: "failed to save language: disk full",
		},
		{
			name: "list query failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT l.id").WillReturnError(errors.New("locked"))
			},
			run: func(s *SQLiteStore) error {
				_, err := s.ListLanguages(context.Background())
				return err
			},
			wantMsg: "failed to list languages: locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			err = tt.run(NewWithDB(db, nil))
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
