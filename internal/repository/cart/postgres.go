package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, user_id::text, created_at, updated_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lazy cart creation; the upsert also serializes concurrent first adds
	// for the same user on the unique user_id constraint.
	var cartID string
	err = tx.QueryRow(ctx, `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING id::text
`, userID).Scan(&cartID)
	if err != nil {
		return nil, err
	}

	// Lock the existing line so concurrent adds for the same product see each
	// other's committed quantity.
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT quantity
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
FOR UPDATE
`, cartID, product.ID).Scan(&existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	stock, err := currentStock(ctx, tx, product.ID)
	if err != nil {
		return nil, err
	}
	newQty, err := domain.MergedQuantity(product.ID, existingQty, quantity, stock)
	if err != nil {
		return nil, err
	}

	// Snapshot fields are refreshed on every merge.
	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, name, price_cents, currency, image, category, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    image = EXCLUDED.image,
    category = EXCLUDED.category,
    quantity = $8
`, cartID, product.ID, product.Name, product.PriceCents, product.Currency, product.Image(), product.Category, newQty); err != nil {
		return nil, err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, err := cartIDForUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT quantity
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
FOR UPDATE
`, cartID, productID).Scan(&existingQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	stock, err := currentStock(ctx, tx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > stock {
		return nil, &domain.InsufficientStockError{ProductID: productID, Available: stock}
	}

	if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $3
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID, quantity); err != nil {
		return nil, err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, err := cartIDForUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	// Deleting an absent line is a no-op so removal stays idempotent.
	if _, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
		return nil, err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
USING carts
WHERE cart_items.cart_id = carts.id AND carts.user_id = $1
`, userID)
	return err
}

func (r *postgresRepo) Checkout(ctx context.Context, userID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `
SELECT id::text
FROM carts
WHERE user_id = $1
FOR UPDATE
`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEmptyCart
		}
		return err
	}

	rows, err := tx.Query(ctx, `
SELECT product_id::text, quantity
FROM cart_items
WHERE cart_id = $1
FOR UPDATE
`, cartID)
	if err != nil {
		return err
	}
	type line struct {
		productID string
		quantity  int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.ErrEmptyCart
	}

	for _, l := range lines {
		stock, err := currentStock(ctx, tx, l.productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Product deleted since it was added.
				return &domain.InsufficientStockError{ProductID: l.productID, Available: 0}
			}
			return err
		}
		if l.quantity > stock {
			return &domain.InsufficientStockError{ProductID: l.productID, Available: stock}
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) loadItems(ctx context.Context, cart *domain.Cart) error {
	const q = `
SELECT id::text, product_id::text, name, price_cents, currency, COALESCE(image, ''), COALESCE(category, ''), quantity, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.Name, &item.PriceCents, &item.Currency,
			&item.Image, &item.Category, &item.Quantity, &item.CreatedAt,
		); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

func cartIDForUser(ctx context.Context, tx pgx.Tx, userID string) (string, error) {
	var cartID string
	err := tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return cartID, nil
}

func currentStock(ctx context.Context, tx pgx.Tx, productID string) (int, error) {
	var stock int
	err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}
