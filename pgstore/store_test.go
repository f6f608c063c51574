package pgstore

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/quinnchrest/folio"
)

// openTestStore connects to the database named by PGSTORE_TEST_* variables.
// The pool is capped at one connection so session-scoped temp tables shadow
// any real devlog/projects tables for every query the test makes.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	host := os.Getenv("PGSTORE_TEST_HOST")
	if host == "" {
		t.Skip("PGSTORE_TEST_HOST not set")
	}
	port, _ := strconv.Atoi(os.Getenv("PGSTORE_TEST_PORT"))
	if port == 0 {
		port = 5432
	}
	cfg := folio.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     os.Getenv("PGSTORE_TEST_NAME"),
		User:     os.Getenv("PGSTORE_TEST_USER"),
		Password: os.Getenv("PGSTORE_TEST_PASSWORD"),
		MaxConns: 1,
	}
	ctx := context.Background()
	s, err := Open(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	conn, err := s.pool.Acquire(ctx)
	require.NoError(t, err)
	defer s.pool.Release(conn)
	_, err = conn.Exec(ctx, `
CREATE TEMP TABLE devlog (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    date TIMESTAMPTZ NOT NULL,
    category SMALLINT,
    content TEXT,
    tags TEXT
);
CREATE TEMP TABLE projects (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    status SMALLINT,
    featured BOOLEAN,
    thumbnail TEXT,
    tags TEXT,
    repo TEXT,
    demo TEXT
);`)
	require.NoError(t, err)
	return s
}

func TestStoreListDevlog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	conn, err := s.pool.Acquire(ctx)
	require.NoError(t, err)
	for i := 1; i <= 25; i++ {
		_, err := conn.Exec(ctx, `INSERT INTO devlog (id, title, date, category, content, tags) VALUES ($1, $2, $3, $4, $5, $6)`,
			i, "entry "+strconv.Itoa(i), time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC), i%4, "<p>body</p>", nil)
		require.NoError(t, err)
	}
	s.pool.Release(conn)

	all, err := s.ListDevlog(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 25)
	assert.Equal(t, int64(25), all[0].ID)
	assert.Equal(t, "", all[0].Tags)

	limited, err := s.ListDevlog(ctx, folio.FeedLimit)
	require.NoError(t, err)
	assert.Len(t, limited, folio.FeedLimit)

	stamps, err := s.ListDevlogStamps(ctx)
	require.NoError(t, err)
	require.Len(t, stamps, 25)
	assert.True(t, stamps[0].Date.After(stamps[1].Date))
}

func TestStoreListProjects(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	conn, err := s.pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, `INSERT INTO projects (id, title, status, featured, thumbnail, tags, repo) VALUES
		(1, 'one', 3, true, NULL, 'go, sql', 'https://github.com/x/one'),
		(2, 'two', NULL, false, 'https://img/two.png', NULL, NULL),
		(3, 'three', 2, true, '', 'svelte', NULL)`)
	require.NoError(t, err)
	s.pool.Release(conn)

	got, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 0, got[2].Status)
	assert.False(t, got[2].Featured)
	assert.Equal(t, "https://github.com/x/one", got[1].Repo)
}
