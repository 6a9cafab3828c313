package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists one cart per user. Every mutating method applies its
// read-check-write sequence atomically: either the whole mutation commits or
// the stored cart is unchanged.
type Repository interface {
	// GetByUser returns the user's cart or domain.ErrNotFound.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem merges quantity into the line for product, creating the cart
	// lazily. The line snapshot is refreshed from product on every merge. The
	// merged quantity is checked against the product's current stock.
	AddItem(ctx context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error)
	// UpdateItemQuantity overwrites the line quantity after re-checking stock.
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	// RemoveItem deletes the line if present. Removing an absent line from an
	// existing cart is a no-op; a missing cart is domain.ErrNotFound.
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	// Clear deletes all lines. Idempotent.
	Clear(ctx context.Context, userID string) error
	// Checkout re-validates every line against current stock and empties the
	// cart, all-or-nothing. Returns domain.ErrEmptyCart or a
	// *domain.InsufficientStockError naming the offending line.
	Checkout(ctx context.Context, userID string) error
}
