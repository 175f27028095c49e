package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/cart"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/pricing"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

// AddItemRequest adds one product+options combination to a server-held cart.
// The unit price is resolved from the catalog, never taken from the caller.
type AddItemRequest struct {
	ID       string                 `json:"id" binding:"required"`
	Quantity int                    `json:"quantity"`
	Options  domain.SelectedOptions `json:"options,omitempty"`
	Note     string                 `json:"note,omitempty"`
}

// UpdateItemRequest sets a line's quantity exactly; zero or below removes it
type UpdateItemRequest struct {
	ID       string                 `json:"id" binding:"required"`
	Quantity int                    `json:"quantity"`
	Options  domain.SelectedOptions `json:"options,omitempty"`
}

// RemoveItemRequest identifies a line to remove
type RemoveItemRequest struct {
	ID      string                 `json:"id" binding:"required"`
	Options domain.SelectedOptions `json:"options,omitempty"`
}

// CartResponse is the cart view returned by every cart endpoint
type CartResponse struct {
	Lines         []domain.CartLine `json:"lines"`
	TotalQuantity int               `json:"total_quantity"`
	Subtotal      float64           `json:"subtotal"`
}

func cartResponse(c *cart.Cart) CartResponse {
	lines := c.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponse{
		Lines:         lines,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal(),
	}
}

// HandleGetCart handles GET /v1/cart/:key. A missing or malformed stored
// cart reads as empty.
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		basket := cart.LoadCart(c.Request.Context(), repos.Cart, c.Param("key"))
		c.JSON(http.StatusOK, cartResponse(basket))
	}
}

// HandleAddCartItem handles POST /v1/cart/:key/items
func HandleAddCartItem(cat *catalog.Catalog, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		product, err := cat.Get(req.ID)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		unit, err := pricing.Resolve(product, req.Options)
		if err != nil {
			if sel, ok := err.(*errors.ErrMissingSelection); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":        sel.Error(),
					"option_group": sel.OptionGroup,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if unit <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": (&errors.ErrInvalidPrice{ProductID: product.ID, Amount: unit}).Error(),
			})
			return
		}

		key := c.Param("key")
		basket := cart.LoadCart(c.Request.Context(), repos.Cart, key)
		basket.Add(domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: unit,
			Quantity:  req.Quantity,
			Options:   req.Options,
			Note:      req.Note,
		})

		if err := cart.SaveCart(c.Request.Context(), repos.Cart, key, basket); err != nil {
			logger.Error("Failed to save cart", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(basket))
	}
}

// HandleUpdateCartItem handles PATCH /v1/cart/:key/items
func HandleUpdateCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		key := c.Param("key")
		basket := cart.LoadCart(c.Request.Context(), repos.Cart, key)
		basket.SetQuantity(domain.MergeKey(req.ID, req.Options), req.Quantity)

		if err := cart.SaveCart(c.Request.Context(), repos.Cart, key, basket); err != nil {
			logger.Error("Failed to save cart", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(basket))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/:key/items
func HandleRemoveCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RemoveItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		key := c.Param("key")
		basket := cart.LoadCart(c.Request.Context(), repos.Cart, key)
		basket.Remove(domain.MergeKey(req.ID, req.Options))

		if err := cart.SaveCart(c.Request.Context(), repos.Cart, key, basket); err != nil {
			logger.Error("Failed to save cart", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(basket))
	}
}

// HandleClearCart handles DELETE /v1/cart/:key
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		if err := repos.Cart.Delete(c.Request.Context(), key); err != nil {
			logger.Error("Failed to clear cart", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(cart.New()))
	}
}
