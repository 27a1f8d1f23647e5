package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/pageza/foodtrace/backend/internal/database"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	status := flag.Bool("status", false, "Print migration status and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error("DATABASE_URL environment variable is not set")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrate(context.Background(), db, *rollback, *status); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations complete")
}

func migrate(ctx context.Context, db *sql.DB, rollback, status bool) error {
	goose.SetBaseFS(database.Migrations())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch {
	case status:
		return goose.StatusContext(ctx, db, "migrations")
	case rollback:
		return goose.DownContext(ctx, db, "migrations")
	default:
		return goose.UpContext(ctx, db, "migrations")
	}
}
