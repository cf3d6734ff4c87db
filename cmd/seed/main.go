package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/config"
	"clinic-booking-api/internal/logger"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/slotgen"
	"clinic-booking-api/internal/store"
)

// Seeds the admin account and the initial slot grid. Safe to run repeatedly.
func main() {
	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("config", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("db", zap.Error(err))
	}
	defer pool.Close()

	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err == nil {
		if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
			logger.SLog.Warnf("migration warning: %v", err)
		}
	}

	st := store.New(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := auth.HashPassword(env("ADMIN_PASSWORD", "Passw0rd!"))
	if err != nil {
		logger.Log.Fatal("hash admin password", zap.Error(err))
	}
	admin := &model.User{
		ID:           uuid.New().String(),
		Name:         env("ADMIN_NAME", "Admin User"),
		Email:        env("ADMIN_EMAIL", "admin@example.com"),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := st.UpsertUser(ctx, admin); err != nil {
		logger.Log.Fatal("seed admin", zap.Error(err))
	}
	logger.SLog.Infof("admin user ensured: %s", admin.Email)

	n, err := st.CountSlots(ctx)
	if err != nil {
		logger.Log.Fatal("count slots", zap.Error(err))
	}
	if n > 0 {
		logger.SLog.Info("slots already exist, skipping slot creation")
		return
	}

	windows := slotgen.Generate(time.Now())
	if err := st.InsertSlots(ctx, windows); err != nil {
		logger.Log.Fatal("seed slots", zap.Error(err))
	}
	logger.SLog.Infof("created %d slots", len(windows))
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
