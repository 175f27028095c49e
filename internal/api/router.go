package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/api/handlers"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/api/middleware"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, cat *catalog.Catalog, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Storefront Checkout API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/products",
				"GET /v1/cart/:key",
				"POST /v1/cart/:key/items",
				"PATCH /v1/cart/:key/items",
				"DELETE /v1/cart/:key/items",
				"DELETE /v1/cart/:key",
				"POST /v1/checkout",
				"GET /v1/checkout/sessions/:id",
				"GET /v1/orders/:id",
				"GET /v1/admin/orders",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/catalog/products", handlers.HandleGetCatalogProducts(cat, logger))

		v1.GET("/cart/:key", handlers.HandleGetCart(repos, logger))
		v1.POST("/cart/:key/items", handlers.HandleAddCartItem(cat, repos, logger))
		v1.PATCH("/cart/:key/items", handlers.HandleUpdateCartItem(repos, logger))
		v1.DELETE("/cart/:key/items", handlers.HandleRemoveCartItem(repos, logger))
		v1.DELETE("/cart/:key", handlers.HandleClearCart(repos, logger))

		checkoutRoutes := v1.Group("")
		checkoutRoutes.Use(middleware.IdempotencyMiddleware(repos, logger))
		{
			checkoutRoutes.POST("/checkout", handlers.HandleCheckout(cfg, cat, repos, logger))
		}
		v1.GET("/checkout/sessions/:id", handlers.HandleVerifySession(cfg, logger))

		v1.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
		v1.GET("/admin/orders", handlers.HandleListOrders(repos, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
