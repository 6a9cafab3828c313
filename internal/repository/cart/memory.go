package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/domain"
)

// Memory is an in-memory Repository with the same contract as the Postgres
// implementation. The mutex gives each call the required read-check-write
// atomicity. Used by tests and local development without a database.
type Memory struct {
	mu       sync.Mutex
	products map[string]domain.Product
	carts    map[string]*domain.Cart
	nextID   int
}

func NewMemory() *Memory {
	return &Memory{
		products: make(map[string]domain.Product),
		carts:    make(map[string]*domain.Cart),
	}
}

// PutProduct registers or replaces the product record stock checks read from.
func (m *Memory) PutProduct(p domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

func (m *Memory) GetByUser(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyCart(cart), nil
}

func (m *Memory) AddItem(_ context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		m.nextID++
		cart = &domain.Cart{
			ID:        fmt.Sprintf("cart-%d", m.nextID),
			UserID:    userID,
			Items:     []domain.CartItem{},
			CreatedAt: time.Now().UTC(),
		}
		m.carts[userID] = cart
	}

	existing := 0
	if item := cart.Item(product.ID); item != nil {
		existing = item.Quantity
	}
	stock := product.Stock
	if p, ok := m.products[product.ID]; ok {
		stock = p.Stock
	}
	newQty, err := domain.MergedQuantity(product.ID, existing, quantity, stock)
	if err != nil {
		return nil, err
	}

	if item := cart.Item(product.ID); item != nil {
		item.Name = product.Name
		item.PriceCents = product.PriceCents
		item.Currency = product.Currency
		item.Image = product.Image()
		item.Category = product.Category
		item.Quantity = newQty
	} else {
		m.nextID++
		cart.Items = append(cart.Items, domain.CartItem{
			ID:         fmt.Sprintf("item-%d", m.nextID),
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Currency:   product.Currency,
			Image:      product.Image(),
			Category:   product.Category,
			Quantity:   newQty,
			CreatedAt:  time.Now().UTC(),
		})
	}
	cart.UpdatedAt = time.Now().UTC()
	return copyCart(cart), nil
}

func (m *Memory) UpdateItemQuantity(_ context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item := cart.Item(productID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if quantity > p.Stock {
		return nil, &domain.InsufficientStockError{ProductID: productID, Available: p.Stock}
	}
	item.Quantity = quantity
	cart.UpdatedAt = time.Now().UTC()
	return copyCart(cart), nil
}

func (m *Memory) RemoveItem(_ context.Context, userID, productID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.UpdatedAt = time.Now().UTC()
	return copyCart(cart), nil
}

func (m *Memory) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart, ok := m.carts[userID]; ok {
		cart.Items = []domain.CartItem{}
		cart.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (m *Memory) Checkout(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok || len(cart.Items) == 0 {
		return domain.ErrEmptyCart
	}
	for _, item := range cart.Items {
		p, ok := m.products[item.ProductID]
		if !ok {
			return &domain.InsufficientStockError{ProductID: item.ProductID, Available: 0}
		}
		if item.Quantity > p.Stock {
			return &domain.InsufficientStockError{ProductID: item.ProductID, Available: p.Stock}
		}
	}
	cart.Items = []domain.CartItem{}
	cart.UpdatedAt = time.Now().UTC()
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	out := *cart
	out.Items = make([]domain.CartItem, len(cart.Items))
	copy(out.Items, cart.Items)
	return &out
}
