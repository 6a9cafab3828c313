package httpserver

import (
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type validateCouponRequest struct {
	Code       string `json:"code"`
	TotalCents int64  `json:"totalCents"`
}

func (a *api) getCart(c *gin.Context) {
	cart, err := a.deps.CartSvc.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (a *api) addCartItem(c *gin.Context) {
	var in addItemRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId and quantity required"})
		return
	}
	cart, err := a.deps.CartSvc.AddItem(c.Request.Context(), currentUserID(c), in.ProductID, in.Quantity)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartResponse(cart))
}

func (a *api) updateCartItem(c *gin.Context) {
	var in updateItemRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
		return
	}
	cart, err := a.deps.CartSvc.UpdateItemQuantity(c.Request.Context(), currentUserID(c), c.Param("productId"), in.Quantity)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (a *api) removeCartItem(c *gin.Context) {
	cart, err := a.deps.CartSvc.RemoveItem(c.Request.Context(), currentUserID(c), c.Param("productId"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (a *api) clearCart(c *gin.Context) {
	if err := a.deps.CartSvc.ClearCart(c.Request.Context(), currentUserID(c)); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

func (a *api) checkout(c *gin.Context) {
	if err := a.deps.CartSvc.Checkout(c.Request.Context(), currentUserID(c)); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checkout complete"})
}

func (a *api) validateCoupon(c *gin.Context) {
	var in validateCouponRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
		return
	}
	result := a.deps.CartSvc.ValidateCoupon(in.Code)
	resp := gin.H{
		"valid":           result.Valid,
		"discountPercent": result.DiscountPercent,
	}
	if result.Valid && in.TotalCents > 0 {
		resp["discountedTotalCents"] = domain.ApplyDiscountCents(in.TotalCents, result.DiscountPercent)
	}
	c.JSON(http.StatusOK, resp)
}
