// Package folio serves the read-only portfolio API: the devlog and project
// listings as JSON, the devlog RSS feed, and the sitemap.
//
// Handlers depend only on the Store interface. The pgstore package provides
// the production Postgres implementation and litestore a SQLite one for local
// preview and tests.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App wires the store, logger, middleware, and routes onto an Echo instance.
type App struct {
	Echo  *echo.Echo
	Store Store

	log *zap.Logger
	now func() time.Time
}

// New creates an App with routes and middleware registered.
func New(store Store, opts ...Option) *App {
	a := &App{
		Echo:  echo.New(),
		Store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/api/devlog", a.handleDevlog)
	e.GET("/api/feed.xml", a.handleFeed)
	e.GET("/api/projects", a.handleProjects)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealth)
}

// ServeHTTP lets the App be used directly as an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Echo.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", addr))
		errCh <- a.Echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.log.Info("shutting down")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
