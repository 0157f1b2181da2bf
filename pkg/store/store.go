// Package store persists SVG templates and the documents minted from them in
// SQLite. Template schemas are never authored by hand: every save re-parses
// the SVG text, so the stored field JSON always matches the document. Test
// documents are watermarked on read and cleaned again when upgraded to paid.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	internalfields "github.com/goliatone/go-svgform/internal/fields"
	"github.com/goliatone/go-svgform/pkg/fields"
	"github.com/goliatone/go-svgform/pkg/update"
)

// Store wraps a SQLite database holding templates and documents.
type Store struct {
	db     *sql.DB
	parser fields.Parser
	engine *update.Engine
	now    func() time.Time
	newID  func() string
}

// Option customises the store configuration.
type Option func(*Store)

// WithParser overrides the parser used to recompute field schemas on save.
func WithParser(parser fields.Parser) Option {
	return func(s *Store) {
		s.parser = parser
	}
}

// WithUpdateEngine overrides the engine ApplyValues runs.
func WithUpdateEngine(engine *update.Engine) Option {
	return func(s *Store) {
		s.engine = engine
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the row id generator. Intended for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Open opens (creating if necessary) the SQLite database at path and runs the
// schema migration.
func Open(path string, options ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s, err := New(db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle and runs the schema migration. The
// store takes ownership of the handle; Close releases it.
func New(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: database handle is nil")
	}

	s := &Store{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.parser == nil {
		s.parser = internalfields.New(fields.NewParserOptions())
	}
	if s.engine == nil {
		s.engine = update.New()
	}

	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys=ON;`,
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			kind TEXT NOT NULL DEFAULT 'design',
			svg BLOB NOT NULL,
			fields TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			svg BLOB NOT NULL,
			fields TEXT NOT NULL,
			test INTEGER NOT NULL DEFAULT 1,
			tracking_id TEXT,
			status TEXT NOT NULL DEFAULT 'processing',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_tracking
			ON documents(tracking_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}
