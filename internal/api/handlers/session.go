package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/stripe"
)

// HandleVerifySession handles GET /v1/checkout/sessions/:id. The success
// page uses it to confirm payment status after the provider redirect.
func HandleVerifySession(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	payments := stripe.NewClient(cfg.Stripe, logger)

	return func(c *gin.Context) {
		sessionID := c.Param("id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id required"})
			return
		}

		session, err := payments.RetrieveSession(c.Request.Context(), sessionID)
		if err != nil {
			logger.Warn("Failed to retrieve payment session",
				zap.String("session_id", sessionID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "failed to verify session",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":             session.ID,
			"status":         session.Status,
			"payment_status": session.PaymentStatus,
			"amount_total":   session.AmountTotal,
			"currency":       session.Currency,
		})
	}
}
