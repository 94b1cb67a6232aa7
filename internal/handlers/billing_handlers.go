package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/services"
)

// BillingHandler manages the admin billing endpoints: reconciliation, the
// billing summary, and Stripe-hosted session creation.
type BillingHandler struct {
	queries  db.Querier
	sync     *services.BillingSyncService
	checkout *services.CheckoutService
	state    *services.BillingStateService
}

// NewBillingHandler creates a new billing handler with the required dependencies
func NewBillingHandler(queries db.Querier, sync *services.BillingSyncService, checkout *services.CheckoutService, state *services.BillingStateService) *BillingHandler {
	return &BillingHandler{
		queries:  queries,
		sync:     sync,
		checkout: checkout,
		state:    state,
	}
}

// CreateSessionRequest carries the optional return path for hosted sessions.
type CreateSessionRequest struct {
	ReturnPath string `json:"return_path"`
}

// SessionResponse returns the URL of a Stripe-hosted session.
type SessionResponse struct {
	URL string `json:"url"`
}

func (h *BillingHandler) parseCompanyID(c *gin.Context) (uuid.UUID, bool) {
	parsedUUID, err := uuid.Parse(c.Param("company_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid company ID format", err)
		return uuid.Nil, false
	}
	return parsedUUID, true
}

// SyncCompanyBilling godoc
// @Summary Reconcile a company's subscription
// @Description Recomputes desired quantities from current usage and pushes them to Stripe
// @Tags billing
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} services.SyncResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security AdminKeyAuth
// @Router /admin/companies/{company_id}/billing/sync [post]
func (h *BillingHandler) SyncCompanyBilling(c *gin.Context) {
	companyID, ok := h.parseCompanyID(c)
	if !ok {
		return
	}

	result, err := h.sync.SyncCompanySubscription(c.Request.Context(), companyID)
	if err != nil {
		// The failure is recorded on the company row so operators can see it
		// without digging through logs.
		_ = h.state.RecordSyncOutcome(c.Request.Context(), companyID, constants.SyncStatusError, err.Error())
		if errors.Is(err, pgx.ErrNoRows) {
			sendError(c, http.StatusNotFound, "Company not found", err)
			return
		}
		sendError(c, http.StatusBadGateway, "Billing sync failed", err)
		return
	}

	sendSuccess(c, http.StatusOK, result)
}

// GetBillingSummary godoc
// @Summary Get a company's billing summary
// @Description Returns stored billing state plus freshly computed desired quantities, without calling Stripe
// @Tags billing
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} services.BillingSummary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security AdminKeyAuth
// @Router /admin/companies/{company_id}/billing/summary [get]
func (h *BillingHandler) GetBillingSummary(c *gin.Context) {
	companyID, ok := h.parseCompanyID(c)
	if !ok {
		return
	}

	summary, err := h.sync.BillingSummary(c.Request.Context(), companyID)
	if err != nil {
		handleDBError(c, err, "Company not found")
		return
	}

	sendSuccess(c, http.StatusOK, summary)
}

// CreateCheckoutSession godoc
// @Summary Create a subscription checkout session
// @Tags billing
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param request body CreateSessionRequest false "Session options"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security AdminKeyAuth
// @Router /admin/companies/{company_id}/billing/checkout-session [post]
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	h.createSession(c, h.checkout.CreateCheckoutSession)
}

// CreateSetupSession godoc
// @Summary Create a payment-method setup session
// @Tags billing
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param request body CreateSessionRequest false "Session options"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security AdminKeyAuth
// @Router /admin/companies/{company_id}/billing/setup-session [post]
func (h *BillingHandler) CreateSetupSession(c *gin.Context) {
	h.createSession(c, h.checkout.CreateSetupSession)
}

// CreatePortalSession godoc
// @Summary Create a customer portal session
// @Tags billing
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param request body CreateSessionRequest false "Session options"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security AdminKeyAuth
// @Router /admin/companies/{company_id}/billing/portal-session [post]
func (h *BillingHandler) CreatePortalSession(c *gin.Context) {
	h.createSession(c, h.checkout.CreatePortalSession)
}

func (h *BillingHandler) createSession(c *gin.Context, create func(ctx context.Context, companyID uuid.UUID, returnPath string) (string, error)) {
	companyID, ok := h.parseCompanyID(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	url, err := create(c.Request.Context(), companyID, req.ReturnPath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfServeBlocked):
			sendError(c, http.StatusForbidden, "Self-serve billing is disabled for this company", err)
		case errors.Is(err, pgx.ErrNoRows):
			sendError(c, http.StatusNotFound, "Company not found", err)
		default:
			sendError(c, http.StatusBadGateway, "Could not create session", err)
		}
		return
	}

	sendSuccess(c, http.StatusOK, SessionResponse{URL: url})
}

// ListBillingEvents godoc
// @Summary List recent webhook events for a company
// @Tags billing
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param limit query int false "Maximum number of events (default 20, max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security AdminKeyAuth
// @Router /admin/companies/{company_id}/billing/events [get]
func (h *BillingHandler) ListBillingEvents(c *gin.Context) {
	companyID, ok := h.parseCompanyID(c)
	if !ok {
		return
	}

	limit := int32(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 || parsed > 100 {
			sendError(c, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = int32(parsed)
	}

	logs, err := h.queries.ListRecentStripeEventLogs(c.Request.Context(), db.ListRecentStripeEventLogsParams{
		CompanyID: pgtype.UUID{Bytes: companyID, Valid: true},
		Limit:     limit,
	})
	if err != nil {
		handleDBError(c, err, "Company not found")
		return
	}

	sendList(c, logs)
}
