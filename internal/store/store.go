// Package store archives merged lines in PostgreSQL or SQLite so that
// upload files can be audited across runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"scene-crowdin/internal/translation"
	"scene-crowdin/internal/worker"
)

const (
	table = "merged_lines"

	// batchSize bounds the rows of one INSERT statement.
	batchSize = 200
)

// ErrUnsupportedURL is returned by Open for an unknown database scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

var columns = []string{"file", "scene", "identifier", "source_hash", "text", "context", "translations", "updated_at"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS merged_lines (
		file         TEXT NOT NULL,
		scene        TEXT NOT NULL,
		identifier   TEXT NOT NULL,
		source_hash  TEXT NOT NULL,
		text         TEXT NOT NULL,
		context      TEXT NOT NULL,
		translations TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (file, identifier)
	)`,
	`CREATE INDEX IF NOT EXISTS merged_lines_source_hash ON merged_lines (source_hash)`,
}

// Line is one archived merged record.
type Line struct {
	File         string
	Scene        string
	Identifier   string
	SourceHash   string
	Text         string
	Context      string
	Translations map[string]translation.Translation
	UpdatedAt    time.Time
}

// Store persists merged lines.
type Store struct {
	db      backend
	builder squirrel.StatementBuilderType
}

// Open connects to the database named by url. postgres:// and
// postgresql:// use a pgx pool; sqlite:// and file: use SQLite.
func Open(ctx context.Context, url string) (*Store, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return newStore(&pgBackend{pool: pool}, squirrel.Dollar), nil

	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"):
		dsn := strings.TrimPrefix(url, "sqlite://")
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure sqlite db: %w", err)
		}
		return newStore(&sqlBackend{db: db}, squirrel.Question), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
}

func newStore(db backend, placeholder squirrel.PlaceholderFormat) *Store {
	return &Store{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Close releases the connection.
func (s *Store) Close() {
	if s == nil || s.db == nil {
		return
	}
	s.db.Close()
}

// EnsureSchema creates the archive table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert inserts lines, replacing rows with the same file and identifier.
func (s *Store) Upsert(ctx context.Context, lines []Line) (int, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	written := 0
	for _, batch := range worker.Batch(lines, batchSize) {
		insert := s.builder.Insert(table).Columns(columns...)
		for _, l := range batch {
			translations, err := json.Marshal(l.Translations)
			if err != nil {
				return written, fmt.Errorf("encode translations of %s: %w", l.Identifier, err)
			}
			insert = insert.Values(l.File, l.Scene, l.Identifier, l.SourceHash, l.Text, l.Context, string(translations), now)
		}
		insert = insert.Suffix(`ON CONFLICT (file, identifier) DO UPDATE SET
			scene = excluded.scene,
			source_hash = excluded.source_hash,
			text = excluded.text,
			context = excluded.context,
			translations = excluded.translations,
			updated_at = excluded.updated_at`)

		query, args, err := insert.ToSql()
		if err != nil {
			return written, fmt.Errorf("build upsert: %w", err)
		}
		if err := s.db.Exec(ctx, query, args...); err != nil {
			return written, fmt.Errorf("upsert merged lines: %w", err)
		}
		written += len(batch)
	}

	log.Debug().Int("lines", written).Msg("Archived merged lines")
	return written, nil
}

// List returns the archived lines of one file, or of every file when file
// is empty, ordered by file, scene and identifier.
func (s *Store) List(ctx context.Context, file string) ([]Line, error) {
	q := s.builder.Select(columns...).From(table).OrderBy("file", "scene", "identifier")
	if file != "" {
		q = q.Where(squirrel.Eq{"file": file})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query merged lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var (
			l            Line
			translations string
			updatedAt    string
		)
		if err := rows.Scan(&l.File, &l.Scene, &l.Identifier, &l.SourceHash, &l.Text, &l.Context, &translations, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan merged line: %w", err)
		}
		if err := json.Unmarshal([]byte(translations), &l.Translations); err != nil {
			return nil, fmt.Errorf("decode translations of %s: %w", l.Identifier, err)
		}
		if l.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at of %s: %w", l.Identifier, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merged lines: %w", err)
	}
	return lines, nil
}
