package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookstore/catalog-api/internal/api"
	"github.com/bookstore/catalog-api/internal/api/handler"
	"github.com/bookstore/catalog-api/internal/core/ports"
	"github.com/bookstore/catalog-api/internal/core/service"
	dbmongo "github.com/bookstore/catalog-api/internal/infrastructure/db/mongo"
	"github.com/bookstore/catalog-api/internal/infrastructure/db/postgres"
	dbredis "github.com/bookstore/catalog-api/internal/infrastructure/db/redis"
	"github.com/bookstore/catalog-api/internal/infrastructure/queue"
	"github.com/bookstore/catalog-api/internal/infrastructure/storage"
	"github.com/bookstore/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var flagAutoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagAutoMigrate, "migrate", false, "Migrate the schema before serving")
}

func serve(ctx context.Context) error {
	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	if flagAutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}

	// Both stores are optional. Disabled ones stay nil interfaces so the
	// services skip them.
	var tokens ports.TokenCache
	if cfg.Redis.Enabled {
		cache, err := dbredis.Open(ctx, dbredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = cache.Close() }()
		tokens = cache
		checks["redis"] = cache.Ping
	}

	var audit ports.AuditLog
	if cfg.Mongo.Enabled {
		store, err := dbmongo.Open(ctx, dbmongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close(context.Background()) }()

		// Writes go through the dispatcher so a slow audit store never
		// delays a response.
		dispatcher := queue.NewDispatcher(0, 0, store, logger.Component("audit"))
		dispatcher.Start(context.Background())
		defer dispatcher.Close()
		audit = dispatcher
		checks["mongo"] = store.Ping
	}

	images, err := storage.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
	if err != nil {
		return err
	}

	authorRepo := postgres.NewAuthorRepository(db)
	genreRepo := postgres.NewGenreRepository(db)
	bookRepo := postgres.NewBookRepository(db)

	e := api.NewRouter(api.Dependencies{
		Logger:        logger.Component("http"),
		Authors:       service.NewAuthorService(authorRepo, audit, logger.Component("authors")),
		Genres:        service.NewGenreService(genreRepo, audit, logger.Component("genres")),
		Books:         service.NewBookService(bookRepo, authorRepo, genreRepo, images, cfg.Upload.MaxBytes, audit, logger.Component("books")),
		Auth:          service.NewAuthService(postgres.NewAuthRepository(db), tokens, cfg.Auth.TokenTTL, logger.Component("auth")),
		HealthChecks:  checks,
		UploadDir:     images.Dir(),
		UploadPrefix:  cfg.Upload.PublicPrefix,
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
