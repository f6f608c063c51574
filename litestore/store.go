// Package litestore is a SQLite implementation of folio.Store for local
// preview and tests. It runs the same queries as the Postgres store.
package litestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quinnchrest/folio"
)

// Dates are stored as fixed-width UTC text so ORDER BY date sorts
// chronologically.
const dateLayout = "2006-01-02T15:04:05.000Z"

var readLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Store wraps a SQLite database holding devlog and projects tables.
type Store struct {
	db *sql.DB
}

var _ folio.Store = (*Store)(nil)

// Open opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the tables if they are missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS devlog (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    category INTEGER,
    content TEXT,
    tags TEXT
);
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    status INTEGER,
    featured INTEGER,
    thumbnail TEXT,
    tags TEXT,
    repo TEXT,
    demo TEXT
);
`)
	return err
}

// ListDevlog returns devlog rows newest first, at most limit when limit > 0.
func (s *Store) ListDevlog(ctx context.Context, limit int) ([]folio.DevlogRecord, error) {
	query := `SELECT id, title, date, category, content, tags FROM devlog ORDER BY date DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devlog: %w", err)
	}
	defer rows.Close()

	var records []folio.DevlogRecord
	for rows.Next() {
		var (
			r             folio.DevlogRecord
			date          string
			category      sql.NullInt64
			content, tags sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &date, &category, &content, &tags); err != nil {
			return nil, fmt.Errorf("list devlog: %w", err)
		}
		if r.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("list devlog: row %d: %w", r.ID, err)
		}
		r.Category = int(category.Int64)
		r.Content = content.String
		r.Tags = tags.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list devlog: %w", err)
	}
	return records, nil
}

// ListDevlogStamps returns the id and date of every devlog row.
func (s *Store) ListDevlogStamps(ctx context.Context) ([]folio.DevlogStamp, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date FROM devlog ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list devlog stamps: %w", err)
	}
	defer rows.Close()

	var stamps []folio.DevlogStamp
	for rows.Next() {
		var (
			st   folio.DevlogStamp
			date string
		)
		if err := rows.Scan(&st.ID, &date); err != nil {
			return nil, fmt.Errorf("list devlog stamps: %w", err)
		}
		if st.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("list devlog stamps: row %d: %w", st.ID, err)
		}
		stamps = append(stamps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list devlog stamps: %w", err)
	}
	return stamps, nil
}

// ListProjects returns featured projects first, then by id descending.
func (s *Store) ListProjects(ctx context.Context) ([]folio.ProjectRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, status, featured, thumbnail, tags, repo, demo, description
FROM projects ORDER BY featured DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var records []folio.ProjectRecord
	for rows.Next() {
		var (
			r                                 folio.ProjectRecord
			status, featured                  sql.NullInt64
			thumbnail, tags, repo, demo, desc sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &status, &featured, &thumbnail, &tags, &repo, &demo, &desc); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		r.Status = int(status.Int64)
		r.Featured = featured.Int64 != 0
		r.Thumbnail = thumbnail.String
		r.Tags = tags.String
		r.Repo = repo.String
		r.Demo = demo.String
		r.Description = desc.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return records, nil
}

// PutDevlog inserts or replaces a devlog row. Empty text fields are stored
// as NULL.
func (s *Store) PutDevlog(ctx context.Context, r folio.DevlogRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO devlog (id, title, date, category, content, tags) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Date.UTC().Format(dateLayout), nullInt(r.Category), nullString(r.Content), nullString(r.Tags))
	if err != nil {
		return fmt.Errorf("put devlog %d: %w", r.ID, err)
	}
	return nil
}

// PutProject inserts or replaces a projects row.
func (s *Store) PutProject(ctx context.Context, r folio.ProjectRecord) error {
	featured := 0
	if r.Featured {
		featured = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO projects (id, title, description, status, featured, thumbnail, tags, repo, demo) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, nullString(r.Description), nullInt(r.Status), featured,
		nullString(r.Thumbnail), nullString(r.Tags), nullString(r.Repo), nullString(r.Demo))
	if err != nil {
		return fmt.Errorf("put project %d: %w", r.ID, err)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
