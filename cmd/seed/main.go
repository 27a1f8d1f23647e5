package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/foodtrace/backend/config"
	"github.com/pageza/foodtrace/backend/internal/database"
	"github.com/pageza/foodtrace/backend/internal/hasher"
	"github.com/pageza/foodtrace/backend/internal/logging"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/store"
	"github.com/pageza/foodtrace/backend/internal/types"
)

func main() {
	password := flag.String("password", "testpassword123", "Password for the seeded accounts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, false, cfg.LogLevel)

	if err := run(context.Background(), cfg, *password, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, password string, log *slog.Logger) error {
	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db, log); err != nil {
		return err
	}

	h, err := hasher.New(cfg.PasswordHasher)
	if err != nil {
		return err
	}
	accounts, err := service.NewAccountService(store.NewUsers(db, store.WithLogger(log)), h, log)
	if err != nil {
		return err
	}
	return seed(ctx, accounts, store.NewItems(db, store.WithLogger(log)), password, log)
}

var demoEmails = []string{
	"john.doe@example.com",
	"jane.smith@example.com",
	"admin@example.com",
}

func f(v float64) *float64 { return &v }

var demoItems = []types.ItemRequest{
	{Name: "Apple", Category: "Fruit", Energy: f(52), Carbohydrates: f(14), Sugar: f(10.4), Protein: f(0.3), Fat: f(0.2), Fibre: f(2.4), Salt: f(0), CountryOfOrigin: "Spain", CountryOfProvenance: "France"},
	{Name: "Cheddar", Category: "Dairy", Certificate: "PDO", Energy: f(403), Carbohydrates: f(1.3), Protein: f(25), Fat: f(33), SaturatedFat: f(21), UnsaturatedFat: f(12), Salt: f(1.8), CountryOfOrigin: "United Kingdom", CountryOfProvenance: "United Kingdom"},
	{Name: "Rolled Oats", Category: "Cereal", Certificate: "Organic", Energy: f(379), Carbohydrates: f(67.7), Sugar: f(1), Protein: f(13.2), Fat: f(6.5), Fibre: f(10.1), CountryOfOrigin: "Finland", CountryOfProvenance: "Germany"},
}

// seed creates the demo accounts, skipping those that exist, and adds the
// sample items when the catalogue is empty.
func seed(ctx context.Context, accounts service.IAccountService, items store.ItemStore, password string, log *slog.Logger) error {
	for _, email := range demoEmails {
		_, err := accounts.Register(ctx, &types.RegisterRequest{Email: email, Password: password, ConfirmPassword: password})
		switch {
		case errors.Is(err, types.ErrConflict):
			log.Info("account exists, skipping", "email", email)
		case err != nil:
			return err
		default:
			log.Info("account created", "email", email)
		}
	}

	existing, err := items.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("items present, skipping", "count", len(existing))
		return nil
	}
	for i := range demoItems {
		item, err := items.Create(ctx, demoItems[i].ToModel())
		if err != nil {
			return err
		}
		log.Info("item created", "id", item.ID, "name", item.Name)
	}
	return nil
}
