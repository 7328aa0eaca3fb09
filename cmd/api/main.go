package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	"github.com/BruksfildServices01/salon-de-belleza/internal/cache"
	"github.com/BruksfildServices01/salon-de-belleza/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-de-belleza/internal/db"
	"github.com/BruksfildServices01/salon-de-belleza/internal/media"
	"github.com/BruksfildServices01/salon-de-belleza/internal/routes"
	"github.com/BruksfildServices01/salon-de-belleza/internal/timezone"
	"github.com/BruksfildServices01/salon-de-belleza/internal/validators"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	if err := validators.Register(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	rdb := cache.NewRedisClient(ctx, cfg.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	// a migração de dados pode ter criado serviços
	if err := cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL).Invalidate(ctx); err != nil {
		logger.Warn("catalog cache invalidation failed", "error", err)
	}

	infra := routes.Infra{
		DB:       db,
		Redis:    rdb,
		Audit:    audit.NewDispatcher(audit.New(db), logger),
		Location: timezone.Location(cfg.Timezone),
		Logger:   logger,
	}
	defer infra.Audit.Close()

	if up := media.NewS3Uploader(cfg.S3, logger); up != nil {
		infra.Images = up
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, cfg, infra); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "timezone", infra.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
