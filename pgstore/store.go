package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quinnchrest/folio"
)

const (
	listDevlogSQL   = `SELECT id, title, date, category, content, tags FROM devlog ORDER BY date DESC`
	listStampsSQL   = `SELECT id, date FROM devlog ORDER BY date DESC`
	listProjectsSQL = `SELECT id, title, status, featured, thumbnail, tags, repo, demo, description
FROM projects ORDER BY featured DESC NULLS LAST, id DESC`
)

// Store implements folio.Store on a Pool.
type Store struct {
	pool *Pool
}

var _ folio.Store = (*Store)(nil)

// NewStore returns a Store that reads through pool.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Open creates the pool and wraps it in a Store.
func Open(ctx context.Context, cfg folio.DatabaseConfig, log *zap.Logger) (*Store, error) {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}

// Pool exposes the underlying pool, for the watchdog.
func (s *Store) Pool() *Pool {
	return s.pool
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// withConn runs fn on a pooled connection and always releases it.
func (s *Store) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Release(conn)
	return fn(conn)
}

// ListDevlog returns devlog rows newest first, at most limit when limit > 0.
func (s *Store) ListDevlog(ctx context.Context, limit int) ([]folio.DevlogRecord, error) {
	query := listDevlogSQL
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	var records []folio.DevlogRecord
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		records, err = pgx.CollectRows(rows, scanDevlog)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list devlog: %w", err)
	}
	return records, nil
}

// ListDevlogStamps returns the id and date of every devlog row.
func (s *Store) ListDevlogStamps(ctx context.Context) ([]folio.DevlogStamp, error) {
	var stamps []folio.DevlogStamp
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, listStampsSQL)
		if err != nil {
			return err
		}
		stamps, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (folio.DevlogStamp, error) {
			var st folio.DevlogStamp
			err := row.Scan(&st.ID, &st.Date)
			return st, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list devlog stamps: %w", err)
	}
	return stamps, nil
}

// ListProjects returns featured projects first, then by id descending.
func (s *Store) ListProjects(ctx context.Context) ([]folio.ProjectRecord, error) {
	var records []folio.ProjectRecord
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, listProjectsSQL)
		if err != nil {
			return err
		}
		records, err = pgx.CollectRows(rows, scanProject)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return records, nil
}

func scanDevlog(row pgx.CollectableRow) (folio.DevlogRecord, error) {
	var (
		id                   int64
		date                 time.Time
		title, content, tags *string
		category             *int64
	)
	if err := row.Scan(&id, &title, &date, &category, &content, &tags); err != nil {
		return folio.DevlogRecord{}, err
	}
	return folio.DevlogRecord{
		ID:       id,
		Title:    deref(title),
		Date:     date,
		Category: int(derefInt(category)),
		Content:  deref(content),
		Tags:     deref(tags),
	}, nil
}

func scanProject(row pgx.CollectableRow) (folio.ProjectRecord, error) {
	var (
		id                          int64
		status                      *int64
		featured                    *bool
		title, description          *string
		thumbnail, tags, repo, demo *string
	)
	if err := row.Scan(&id, &title, &status, &featured, &thumbnail, &tags, &repo, &demo, &description); err != nil {
		return folio.ProjectRecord{}, err
	}
	return folio.ProjectRecord{
		ID:          id,
		Title:       deref(title),
		Description: deref(description),
		Status:      int(derefInt(status)),
		Featured:    featured != nil && *featured,
		Thumbnail:   deref(thumbnail),
		Tags:        deref(tags),
		Repo:        deref(repo),
		Demo:        deref(demo),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
