// Command seed-db loads the menu catalog and a demo access token into the
// database. Run it once against a fresh database before starting the API
// server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bellavista/ordering/db"
	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/storage/postgres"
)

type menuItemJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Popular     bool            `json:"popular"`
}

const upsertMenuItemSQL = `INSERT INTO menu_items (id, name, description, price, image, category, popular)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		image = EXCLUDED.image,
		category = EXCLUDED.category,
		popular = EXCLUDED.popular`

func main() {
	var (
		databaseURL string
		menuFile    string
		accessToken string
		tokenPepper string
		userID      string
		userEmail   string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&menuFile, "menu-file", "", "path to menu JSON file (default: embedded catalog)")
	flag.StringVar(&accessToken, "access-token", "", "access token to seed (or BELLA_SEED_TOKEN env)")
	flag.StringVar(&tokenPepper, "token-pepper", "", "HMAC pepper for token hashing (or BELLA_TOKEN_PEPPER env)")
	flag.StringVar(&userID, "user-id", "demo-user", "user ID the seeded token belongs to")
	flag.StringVar(&userEmail, "user-email", "demo@example.com", "email of the seeded user")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if accessToken == "" {
		accessToken = os.Getenv("BELLA_SEED_TOKEN")
	}
	if accessToken == "" {
		slog.Error("access token is required: set --access-token or BELLA_SEED_TOKEN")
		os.Exit(1)
	}
	if tokenPepper == "" {
		tokenPepper = os.Getenv("BELLA_TOKEN_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, menuFile, accessToken, tokenPepper, userID, userEmail); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, menuFile, accessToken, pepper, userID, userEmail string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedMenu(ctx, pool, menuFile); err != nil {
		return errors.Wrap(err, "seed menu")
	}

	tokens := postgres.NewTokenRepository(pool)
	verifier := auth.NewTokenVerifier(tokens, []byte(pepper))

	slog.Info("seeding access token", slog.String("user_id", userID))

	if err := tokens.Store(ctx, userID, userEmail, verifier.HashToken(accessToken)); err != nil {
		return errors.Wrap(err, "seed access token")
	}

	return nil
}

func seedMenu(ctx context.Context, pool *pgxpool.Pool, menuFile string) error {
	data := db.SeedMenu
	if menuFile != "" {
		slog.Info("reading menu file", slog.String("path", menuFile))
		var err error
		data, err = os.ReadFile(menuFile)
		if err != nil {
			return errors.Wrap(err, "read menu file")
		}
	}

	var items []menuItemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "parse menu JSON")
	}

	slog.Info("upserting menu items", slog.Int("count", len(items)))

	for _, it := range items {
		_, err := pool.Exec(ctx, upsertMenuItemSQL,
			it.ID, it.Name, it.Description, it.Price, it.Image, it.Category, it.Popular)
		if err != nil {
			return errors.Wrapf(err, "upsert menu item %s", it.ID)
		}

		slog.Info("upserted menu item", slog.String("id", it.ID), slog.String("name", it.Name))
	}

	return nil
}
