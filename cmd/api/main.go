package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/foodtrace/backend/config"
	"github.com/pageza/foodtrace/backend/internal/database"
	"github.com/pageza/foodtrace/backend/internal/logging"
	"github.com/pageza/foodtrace/backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.New(os.Stdout, config.IsProduction(), cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("configuration loaded", "environment", config.GetEnvironment(), "db_driver", cfg.DBDriver)

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.RunMigrations(ctx, db, log); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer rdb.Close()
	} else {
		log.Warn("redis not configured; sessions are kept in memory and login is not rate limited")
	}

	srv, err := server.New(ctx, cfg, db, rdb, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
