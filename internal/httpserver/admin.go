package httpserver

import (
	"net/http"

	adminsvc "storefront/internal/service/admin"
	productsvc "storefront/internal/service/product"

	"github.com/gin-gonic/gin"
)

type setStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func (a *api) dashboard(c *gin.Context) {
	stats, err := a.deps.AdminSvc.Dashboard(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *api) listUsers(c *gin.Context) {
	users, err := a.deps.AdminSvc.ListUsers(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (a *api) deleteUser(c *gin.Context) {
	if err := a.deps.AdminSvc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (a *api) createProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product, err := a.deps.ProductSvc.Create(c.Request.Context(), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

func (a *api) updateProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product, err := a.deps.ProductSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func (a *api) deleteProduct(c *gin.Context) {
	if err := a.deps.ProductSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (a *api) setProductStock(c *gin.Context) {
	var in setStockRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock required"})
		return
	}
	product, err := a.deps.ProductSvc.SetStock(c.Request.Context(), c.Param("id"), *in.Stock)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func (a *api) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, a.deps.AdminSvc.Settings())
}

func (a *api) updateSettings(c *gin.Context) {
	var in adminsvc.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated := a.deps.AdminSvc.UpdateSettings(in)
	c.JSON(http.StatusOK, gin.H{"message": "settings updated", "settings": updated})
}
