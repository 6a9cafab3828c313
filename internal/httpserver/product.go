package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *api) listProducts(c *gin.Context) {
	products, err := a.deps.ProductSvc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products)})
}

func (a *api) getProduct(c *gin.Context) {
	product, err := a.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// streamStockUpdates pushes stock changes to the client as server-sent
// events until the client disconnects.
func (a *api) streamStockUpdates(c *gin.Context) {
	updates, cancel := a.deps.Stream.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.SSEvent("connected", "stock updates")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("stockUpdated", update)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
