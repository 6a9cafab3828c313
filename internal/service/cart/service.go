package cart

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

// Service owns per-user carts. Stock invariants are enforced by the
// repository inside each call's transaction; this layer validates input and
// resolves products.
type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
	Checkout(ctx context.Context, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// CouponResult reports whether a coupon code grants a discount.
type CouponResult struct {
	Valid           bool `json:"valid"`
	DiscountPercent int  `json:"discountPercent"`
}

// Static coupon table; codes are matched case-insensitively.
var coupons = map[string]int{
	"SAVE20": 20,
}

// GetCart returns the user's cart, or an empty cart if none exists yet.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem merges quantity units of the product into the user's cart,
// creating the cart on first use.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if err := validateIDs(userID, productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.repo.AddItem(ctx, userID, *product, quantity)
}

// UpdateItemQuantity overwrites the quantity of an existing line.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if err := validateIDs(userID, productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	return s.repo.UpdateItemQuantity(ctx, userID, productID, quantity)
}

// RemoveItem deletes the line for the product if present.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if err := validateIDs(userID, productID); err != nil {
		return nil, err
	}
	return s.repo.RemoveItem(ctx, userID, productID)
}

// ClearCart empties the cart. Clearing a missing cart succeeds.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	return s.repo.Clear(ctx, userID)
}

// Checkout finalizes the cart: every line is re-validated against current
// stock and the cart is emptied, all-or-nothing.
func (s *Service) Checkout(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	return s.repo.Checkout(ctx, userID)
}

// ValidateCoupon looks the code up in the static coupon table. Unknown codes
// are not an error, just invalid.
func (s *Service) ValidateCoupon(code string) CouponResult {
	percent, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return CouponResult{}
	}
	return CouponResult{Valid: true, DiscountPercent: percent}
}

func validateIDs(userID, productID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return fmt.Errorf("%w: malformed product id", domain.ErrInvalidInput)
	}
	return nil
}
