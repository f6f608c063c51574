package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quinnchrest/folio"
	"github.com/quinnchrest/folio/litestore"
	"github.com/quinnchrest/folio/pgstore"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Read-only API for the devlog, projects, RSS feed and sitemap",
		Long: `folio serves the portfolio site's data endpoints:

  GET /api/devlog     devlog entries as JSON, newest first
  GET /api/projects   projects as JSON, featured first
  GET /api/feed.xml   RSS 2.0 feed of the latest 20 devlog entries
  GET /sitemap.xml    sitemap of the site root and every devlog entry

Database settings come from DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD
and DB_SSL, optionally layered over a YAML file given with --config.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to an optional YAML config file")

	root.AddCommand(newServeCmd(), newCheckCmd(), newSeedCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Listen address, overrides ADDR")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Connect to the database and run every query once",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture into a SQLite preview database",
		Long: `Loads devlog and project rows from a YAML fixture into the SQLite
database named by DB_PATH. Only available with DB_DRIVER=sqlite; the
production Postgres database is never written to.`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
	cmd.Flags().StringP("file", "f", "", "Fixture file to load")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}

func loadConfig(cmd *cobra.Command) (folio.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return folio.Config{}, err
	}
	return folio.LoadConfig(path)
}

type watcher interface {
	Watch(ctx context.Context, interval time.Duration) error
}

// openStore returns the configured store and, for Postgres, the pool to watch.
func openStore(ctx context.Context, cfg folio.DatabaseConfig, log *zap.Logger) (folio.Store, watcher, error) {
	if cfg.Driver == folio.DriverSQLite {
		s, err := litestore.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite store", zap.String("path", cfg.Path))
		return s, nil, nil
	}
	s, err := pgstore.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Pool(), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	log, err := folio.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, w, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		log.Error("open store", zap.Error(err))
		return err
	}
	app := folio.New(store, folio.WithLogger(log))
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Run(gctx, cfg.Addr)
	})
	if w != nil {
		g.Go(func() error {
			return w.Watch(gctx, cfg.WatchInterval)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("terminating", zap.Error(err))
		return err
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := folio.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	store, _, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer store.Close()

	devlog, err := store.ListDevlog(ctx, 0)
	if err != nil {
		return err
	}
	stamps, err := store.ListDevlogStamps(ctx)
	if err != nil {
		return err
	}
	projects, err := store.ListProjects(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "devlog:   %d rows\n", len(devlog))
	fmt.Fprintf(out, "sitemap:  %d urls\n", len(stamps)+1)
	fmt.Fprintf(out, "projects: %d rows\n", len(projects))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != folio.DriverSQLite {
		return fmt.Errorf("seed requires DB_DRIVER=%s, got %q", folio.DriverSQLite, cfg.Database.Driver)
	}
	file, _ := cmd.Flags().GetString("file")
	fixture, err := litestore.LoadFixture(file)
	if err != nil {
		return err
	}

	store, err := litestore.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(cmd.Context(), fixture); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d devlog entries and %d projects into %s\n",
		len(fixture.Devlog), len(fixture.Projects), cfg.Database.Path)
	return nil
}
