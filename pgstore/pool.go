// Package pgstore is the Postgres implementation of folio.Store, built on a
// pgx connection pool.
package pgstore

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quinnchrest/folio"
)

// Pool is the process-wide set of database connections shared by every
// request. Construct it once at startup and Close it on shutdown.
type Pool struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewPool connects to the database described by cfg.
func NewPool(ctx context.Context, cfg folio.DatabaseConfig, log *zap.Logger) (*Pool, error) {
	pcfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pcfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		log.Info("connected to PostgreSQL database", zap.Uint32("pid", conn.PgConn().PID()))
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &Pool{pool: pool, log: log}, nil
}

func poolConfig(cfg folio.DatabaseConfig) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig("")
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	cc := pcfg.ConnConfig
	cc.Host = cfg.Host
	cc.Port = uint16(cfg.Port)
	cc.Database = cfg.Name
	cc.User = cfg.User
	cc.Password = cfg.Password

	// No plaintext fallback either way: TLS is on or off as configured.
	cc.Fallbacks = nil
	cc.TLSConfig = nil
	if cfg.SSL {
		cc.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         cfg.Host,
		}
	}

	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	return pcfg, nil
}

// Acquire blocks until a connection is available or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

// Release returns conn to the pool.
func (p *Pool) Release(conn *pgxpool.Conn) {
	conn.Release()
}

// Close closes every connection. Blocks until acquired connections are released.
func (p *Pool) Close() {
	p.pool.Close()
}

// Watch pings the idle connections every interval and returns the first
// failure. It returns nil once ctx is cancelled. Callers treat a non-nil
// result as fatal: without the database the service has nothing to serve.
// Busy connections are never waited on, so a saturated pool is not an error.
func (p *Pool) Watch(ctx context.Context, interval time.Duration) error {
	return watch(ctx, idlePinger{p.pool}, interval, p.log)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// idlePinger pings only the connections sitting idle in the pool.
type idlePinger struct {
	pool *pgxpool.Pool
}

func (p idlePinger) Ping(ctx context.Context) error {
	var firstErr error
	for _, conn := range p.pool.AcquireAllIdle(ctx) {
		if err := conn.Ping(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		conn.Release()
	}
	return firstErr
}

func watch(ctx context.Context, db pinger, interval time.Duration, log *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := db.Ping(pingCtx)
			cancel()
			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn("database ping timed out", zap.Duration("timeout", interval))
				continue
			}
			log.Error("unexpected error on idle connection", zap.Error(err))
			return fmt.Errorf("database unreachable: %w", err)
		}
	}
}
