package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/docgen"

	"newsdesk/internal/articles"
	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/router"
	"newsdesk/internal/seed"
	"newsdesk/internal/store"
	"newsdesk/internal/valkey"
)

const (
	shutdownTimeout = 30 * time.Second
	limiterIdleTTL  = 10 * time.Minute
)

// openStore connects the configured store driver. For PostgreSQL it also
// runs pending migrations. The returned func releases the store.
func openStore(cfg *config.Config) (articles.Repository, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		slog.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return store.NewArticleStore(db), func() { db.Close() }, nil
}

// newLimiter returns the shared Valkey limiter when VALKEY_HOST is set and
// the in-process limiter otherwise.
func newLimiter(cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.UseValkey() {
		client, err := valkey.Connect(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("connect valkey: %w", err)
		}
		return middleware.NewValkeyLimiter(client, cfg.RateLimitPerMinute, time.Minute), func() { client.Close() }, nil
	}

	rl := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, limiterIdleTTL)
	return rl, rl.Stop, nil
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreDriver,
		"valkey", cfg.UseValkey(),
	)

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Seed sample articles (no-op if the store already has data).
	if cfg.SeedOnStart {
		if _, err := seed.Run(context.Background(), repo); err != nil {
			return err
		}
	}

	limiter, closeLimiter, err := newLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	svc := articles.NewService(repo)
	r := router.New(handlers.NewArticles(svc), svc, limiter, cfg.TrustProxy)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("migrate requires STORE_DRIVER=%s", config.DriverPostgres)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("migrations applied")
	return nil
}

func runSeed(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := seed.Run(ctx, repo)
	if err != nil {
		return err
	}
	slog.Info("seed finished", "inserted", n)
	return nil
}

// runRoutes prints route docs generated from the real router. No store or
// limiter is contacted.
func runRoutes(w io.Writer) error {
	svc := articles.NewService(store.NewMemoryStore())
	rl := middleware.NewRateLimiter(1, 1, time.Minute)
	defer rl.Stop()

	r := router.New(handlers.NewArticles(svc), svc, rl, false)
	_, err := fmt.Fprintln(w, docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
		ProjectPath: "newsdesk",
		Intro:       "Routes served by the newsdesk article API.",
	}))
	return err
}
