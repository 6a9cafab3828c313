package newsletter

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Subscribe records the email once. Returns false if already subscribed.
	Subscribe(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Subscribe(ctx context.Context, email string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `
INSERT INTO newsletter_subscribers (email)
VALUES ($1)
ON CONFLICT (email) DO NOTHING
`, email)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&n)
	return n, err
}
