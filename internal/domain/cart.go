package domain

import "time"

type Cart struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

// CartItem is one line of a cart. Name, price, image and category are a
// snapshot of the product taken at the most recent add of this product.
type CartItem struct {
	ID         string    `json:"id,omitempty"`
	ProductID  string    `json:"productId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	Image      string    `json:"image,omitempty"`
	Category   string    `json:"category,omitempty"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// TotalCents sums price*quantity over all lines.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// Item returns the line for productID, or nil.
func (c Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// MergedQuantity validates adding requested units of a product on top of an
// existing line against the product's current stock. It returns the new line
// quantity or an InsufficientStockError.
func MergedQuantity(productID string, existing, requested, stock int) (int, error) {
	newQty := existing + requested
	if newQty > stock {
		return 0, &InsufficientStockError{ProductID: productID, Available: stock}
	}
	return newQty, nil
}
