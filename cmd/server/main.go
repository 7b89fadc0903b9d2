package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"derdiedas/internal/config"
	"derdiedas/internal/database"
	"derdiedas/internal/handlers"
	"derdiedas/internal/logger"
	"derdiedas/internal/metrics"
	"derdiedas/internal/repository"
	"derdiedas/internal/security"
	"derdiedas/internal/service"
	"derdiedas/internal/wordsource"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "derdiedas: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	log.Info("database connection established", zap.String("type", cfg.DatabaseType))

	applied, err := db.RunMigrations(ctx, cfg.MigrationsPath)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations completed", zap.Strings("applied", applied))

	wordRepo := repository.NewWordRepository(db)
	wordService := service.NewWordService(wordRepo, log)
	backupService := service.NewBackupService(wordRepo, cfg.DatabaseType, log)

	// Seed the noun pool from the bundled CSV on first start
	if _, err := wordService.SeedFromCSV(ctx, cfg.WordsCSVPath); err != nil {
		log.Warn("failed to seed noun pool", zap.String("path", cfg.WordsCSVPath), zap.Error(err))
	}

	source, err := newWordSource(cfg, wordRepo)
	if err != nil {
		return err
	}
	log.Info("word source selected", zap.String("source", cfg.WordSource))

	m := metrics.New()
	drills := service.NewDrillService(source, service.NewSessionStore(cfg.SessionTTL), m, log, cfg.RandSeed)
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)

	if cfg.AdminTokenHash == "" {
		log.Warn("ADMIN_TOKEN_HASH is not set, admin endpoints are disabled")
	}

	mw := handlers.NewMiddleware(log, m, limiter, csrf, cfg.AdminTokenHash)
	router := handlers.Routes(mw,
		handlers.NewDrillHandler(drills, csrf, log),
		handlers.NewAdminHandler(wordService, backupService, log),
		handlers.NewHealthHandler(db, log),
		m)

	go drills.RunCleanup(ctx, time.Minute)
	go limiter.Run(ctx, cfg.RateLimitWindow)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func newWordSource(cfg *config.Config, repo *repository.WordRepository) (wordsource.Source, error) {
	switch cfg.WordSource {
	case config.WordSourceDatabase:
		return wordsource.Repository{Words: repo}, nil
	case config.WordSourceCSV:
		return wordsource.CSVFile{Path: cfg.WordsCSVPath}, nil
	case config.WordSourceURL:
		return wordsource.NewCSVURL(cfg.WordsURL), nil
	default:
		return nil, fmt.Errorf("unsupported word source %q", cfg.WordSource)
	}
}
