package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/domain"
	usersvc "storefront/internal/service/user"

	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged and hidden behind a 500.
func (a *api) respondError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"productId": stockErr.ProductID,
			"available": stockErr.Available,
		})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, usersvc.ErrNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "please verify your email before logging in"})
	case errors.Is(err, usersvc.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already verified"})
	case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	default:
		a.logger.Printf("http: %s %s error=%v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type cartResponse struct {
	domain.Cart
	TotalCents int64  `json:"totalCents"`
	Total      string `json:"total"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	total := cart.TotalCents()
	return cartResponse{
		Cart:       *cart,
		TotalCents: total,
		Total:      domain.PriceFromCents(total).StringFixed(2),
	}
}

type productResponse struct {
	domain.Product
	Price string `json:"price"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		Product: p,
		Price:   domain.PriceFromCents(p.PriceCents).StringFixed(2),
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
