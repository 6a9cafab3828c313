package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates the caller supplied an unusable value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCart is returned by checkout when there is nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")
)

// InsufficientStockError reports a requested quantity that exceeds the
// product's current stock. Available is the stock observed at decision time.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}
