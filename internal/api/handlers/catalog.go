package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
)

// HandleGetCatalogProducts handles GET /v1/catalog/products. The full
// pricing configuration is returned so the storefront can display prices
// as options are selected; the checkout path still re-resolves server-side.
func HandleGetCatalogProducts(cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"data":  cat.List(),
			"count": cat.Len(),
		})
	}
}
