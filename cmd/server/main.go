package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-booking-api/internal/config"
	"clinic-booking-api/internal/handler"
	"clinic-booking-api/internal/logger"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/store"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("config", zap.Error(err))
	}

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("db", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		logger.Log.Fatal("db ping", zap.Error(err))
	}
	logger.SLog.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		logger.SLog.Warnf("migration file not found, skipping: %v", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		logger.SLog.Warnf("migration warning: %v", err)
	} else {
		logger.SLog.Info("migration applied")
	}

	st := store.New(pool)
	h := handler.New(st, cfg.JWTSecret, time.Duration(cfg.RefreshTTLHours)*time.Hour)
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Router(h, st, cfg.JWTSecret, cfg.FrontendURL, rl),
	}
	go func() {
		logger.SLog.Infof("http on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.SLog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown", zap.Error(err))
	}
}
