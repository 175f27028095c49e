package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/api/middleware"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/checkout"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/delivery"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/shipping"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/stripe"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

// CheckoutRequest is the checkout submission payload. Item prices are
// client-side display snapshots and are ignored by the server.
type CheckoutRequest struct {
	Cart          []CheckoutItem   `json:"cart"`
	DeliveryCount int              `json:"deliveryCount"`
	DeliverySpeed domain.SpeedTier `json:"deliverySpeed"`
	DeliveryDate  string           `json:"deliveryDate"`
	Addresses     []domain.Address `json:"addresses,omitempty"`
}

type CheckoutItem struct {
	ID       string                 `json:"id" binding:"required"`
	Name     string                 `json:"name"`
	Price    float64                `json:"price"`
	Quantity int                    `json:"quantity"`
	Options  domain.SelectedOptions `json:"options,omitempty"`
}

// CheckoutResponse carries the hosted payment session redirect
type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
	SessionID   string `json:"session_id"`
	OrderID     string `json:"order_id,omitempty"`
}

// HandleCheckout handles POST /v1/checkout: re-prices the submitted cart
// from the catalog, creates the payment session, and archives the order.
func HandleCheckout(cfg *config.Config, cat *catalog.Catalog, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	orchestrator := checkout.NewOrchestrator(cat, shipping.NewCalculator(cfg.Shipping), logger)
	payments := stripe.NewClient(cfg.Stripe, logger)

	return func(c *gin.Context) {
		// Idempotent replay: same key, same payload - return the recorded order
		_, _, existingOrderID, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			orderID, err := uuid.Parse(existingOrderID)
			if err != nil {
				logger.Error("Invalid existing order ID from idempotency", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			order, err := repos.Order.GetByID(c.Request.Context(), orderID)
			if err != nil {
				logger.Error("Failed to get existing order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			c.JSON(http.StatusOK, CheckoutResponse{
				RedirectURL: order.SessionURL,
				SessionID:   order.SessionID,
				OrderID:     order.ID.String(),
			})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request",
				"details": err.Error(),
			})
			return
		}

		// Date-floor pre-check. This is caller-side convenience: the
		// orchestrator itself only requires the date's presence.
		if req.DeliveryDate != "" {
			chosen, err := time.Parse(delivery.DateLayout, req.DeliveryDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "invalid delivery date",
					"details": "expected format " + delivery.DateLayout,
				})
				return
			}
			today := time.Now()
			if !delivery.MeetsFloor(req.DeliverySpeed, today, chosen) {
				earliest := delivery.EarliestDate(req.DeliverySpeed, today)
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":    "delivery date is earlier than allowed",
					"earliest": earliest.Format(delivery.DateLayout),
				})
				return
			}
		}

		lines := make([]domain.CartLine, 0, len(req.Cart))
		for _, item := range req.Cart {
			lines = append(lines, domain.CartLine{
				ProductID: item.ID,
				Name:      item.Name,
				UnitPrice: item.Price, // ignored by the orchestrator
				Quantity:  item.Quantity,
				Options:   item.Options,
			})
		}

		manifest, err := orchestrator.BuildOrder(lines, domain.DeliveryRequest{
			DeliveryCount: req.DeliveryCount,
			Speed:         req.DeliverySpeed,
			Date:          req.DeliveryDate,
			Addresses:     req.Addresses,
		})
		if err != nil {
			status, body := checkoutErrorResponse(err)
			c.JSON(status, body)
			return
		}

		session, err := payments.CreateSession(c.Request.Context(), manifest)
		if err != nil {
			logger.Error("Failed to create payment session", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "checkout failed",
				"details": err.Error(),
			})
			return
		}

		// Archive the order. The payment session already exists, so a
		// failure here is logged rather than surfaced to the buyer.
		order := &domain.OrderRecord{
			ID:            uuid.New(),
			SessionID:     session.ID,
			SessionURL:    session.URL,
			Currency:      manifest.Currency,
			Subtotal:      manifest.Subtotal(),
			Shipping:      manifest.Shipping.LineTotal(),
			Total:         manifest.Total(),
			DeliveryCount: manifest.Delivery.Count,
			DeliverySpeed: manifest.Delivery.Speed,
			DeliveryDate:  manifest.Delivery.Date,
			Addresses:     manifest.Delivery.Addresses,
			Lines:         manifest.Lines,
		}
		archived := true
		if err := repos.Order.Create(c.Request.Context(), order); err != nil {
			logger.Warn("Failed to archive order", zap.Error(err), zap.String("session_id", session.ID))
			archived = false
		}

		// Store idempotency key if provided
		idempotencyKey, requestHash, _, _ := middleware.GetIdempotencyInfo(c)
		if idempotencyKey != "" && archived {
			idempotency := &domain.IdempotencyKey{
				Key:         idempotencyKey,
				OrderID:     order.ID,
				RequestHash: requestHash,
			}
			if err := repos.IdempotencyKey.Create(c.Request.Context(), idempotency); err != nil {
				logger.Warn("Failed to store idempotency key", zap.Error(err))
			}
		}

		resp := CheckoutResponse{
			RedirectURL: session.URL,
			SessionID:   session.ID,
		}
		if archived {
			resp.OrderID = order.ID.String()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// checkoutErrorResponse maps orchestrator error kinds to HTTP responses.
// Malformed requests are 400s; requests that are well-formed but cannot be
// priced or delivered as submitted are 422s.
func checkoutErrorResponse(err error) (int, gin.H) {
	switch e := err.(type) {
	case *errors.ErrEmptyCart:
		return http.StatusBadRequest, gin.H{"error": e.Error()}
	case *errors.ErrMissingDeliveryDate:
		return http.StatusBadRequest, gin.H{"error": e.Error()}
	case *errors.ErrDeliveryCountMismatch:
		return http.StatusBadRequest, gin.H{
			"error":    e.Error(),
			"expected": e.Expected,
			"got":      e.Got,
		}
	case *errors.ErrIncompleteAddress:
		return http.StatusUnprocessableEntity, gin.H{
			"error":          e.Error(),
			"address_index":  e.Index,
			"missing_fields": e.Fields,
		}
	case *errors.ErrMissingSelection:
		return http.StatusUnprocessableEntity, gin.H{
			"error":        e.Error(),
			"product_id":   e.ProductID,
			"option_group": e.OptionGroup,
		}
	case *errors.ErrUnknownProduct:
		return http.StatusUnprocessableEntity, gin.H{
			"error":      e.Error(),
			"product_id": e.ProductID,
		}
	case *errors.ErrInvalidPrice:
		return http.StatusUnprocessableEntity, gin.H{
			"error":      e.Error(),
			"product_id": e.ProductID,
		}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()}
	}
}
