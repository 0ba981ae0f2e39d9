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

	"shopping_backend/internal/app/di"
	"shopping_backend/internal/app/router"
	"shopping_backend/internal/config"
	producthandler "shopping_backend/internal/feature/product/transport/handler"
	productusecase "shopping_backend/internal/feature/product/usecase"
	platformdb "shopping_backend/internal/platform/db"
	platformhandler "shopping_backend/internal/platform/http/handler"
	jwtmw "shopping_backend/internal/platform/jwt"
	platformredis "shopping_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.Open(cfg.DB)
	if err != nil {
		slog.Error("database unavailable", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis is optional; run without cache when it is down.
	rdb, err := platformredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	codec := jwtmw.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	productRepo := di.NewProductRepository(rdb, db, cfg.ProductCacheTTL)
	productH := producthandler.NewProductHandler(productusecase.NewProductUsecase(productRepo))

	r := router.NewRouter(cfg.CORSOrigins, codec, router.Handlers{
		Health:   platformhandler.NewHealthHandler(sqlDB),
		Auth:     di.NewAuthHandler(cfg, db, codec),
		Products: productH,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "db_driver", cfg.DB.Driver, "cache", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
