package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"keepup-api/internal/logger"
	"keepup-api/internal/services"
)

// WebhookVerifier verifies a raw payload against its signature header.
type WebhookVerifier interface {
	ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

// StripeWebhookHandler receives Stripe webhook deliveries, verifies their
// signatures, and hands verified events to the processor.
type StripeWebhookHandler struct {
	verifier  WebhookVerifier
	processor *services.StripeEventProcessor
}

// NewStripeWebhookHandler creates a new Stripe webhook handler
func NewStripeWebhookHandler(verifier WebhookVerifier, processor *services.StripeEventProcessor) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		verifier:  verifier,
		processor: processor,
	}
}

// HandleStripeWebhook godoc
// @Summary Receive a Stripe webhook event
// @Description Verifies the delivery signature and processes the event exactly once
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stripe/webhook [post]
func (h *StripeWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Could not read request body", err)
		return
	}

	event, err := h.verifier.ConstructWebhookEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid webhook signature", err)
		return
	}

	outcome, err := h.processor.ProcessEvent(c.Request.Context(), event)
	if err != nil {
		// The failure is already recorded on the event log entry; answering
		// with a 5xx makes Stripe redeliver so the entry can be reclaimed.
		sendError(c, http.StatusInternalServerError, "Webhook processing failed", err)
		return
	}

	if outcome.Duplicate {
		logger.Debug("Acknowledged duplicate webhook delivery",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
		)
		sendSuccess(c, http.StatusOK, gin.H{"received": true, "duplicate": true})
		return
	}

	sendSuccess(c, http.StatusOK, gin.H{"received": true, "ignored": outcome.Ignored})
}
