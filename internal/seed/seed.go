package seed

import (
	"context"
	"fmt"

	"storefront/internal/auth"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
)

var categories = []string{"electronics", "clothing", "home", "toys", "books"}

// Apply inserts demo data for manual testing: one admin account and a batch
// of fake products. Safe to run repeatedly, existing rows are kept.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@storefront.local", "Admin1234"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	faker := gofakeit.New(42)
	for i := 0; i < 25; i++ {
		category := categories[i%len(categories)]
		name := faker.ProductName()
		if err := upsertProduct(ctx, pool, productSeed{
			Name:        name,
			Description: faker.ProductDescription(),
			PriceCents:  int64(faker.Price(5, 500) * 100),
			Currency:    "USD",
			Category:    category,
			Images:      []string{fmt.Sprintf("https://cdn.storefront.local/images/%s.jpg", faker.UUID())},
			Stock:       faker.Number(0, 50),
		}); err != nil {
			return fmt.Errorf("upsert product %q: %w", name, err)
		}
	}
	return nil
}

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Category    string
	Images      []string
	Stock       int
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (name, email, password_hash, is_verified, is_admin)
VALUES ('Store Admin', $1, $2, TRUE, TRUE)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, hash)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price_cents, currency, category, images, stock)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.PriceCents, p.Currency, p.Category, p.Images, p.Stock)
	return err
}
