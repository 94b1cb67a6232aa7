package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	stripeclient "keepup-api/internal/client/stripe"
	"keepup-api/internal/config"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// ErrSelfServeBlocked is returned when a company's policy disallows
// self-serve billing surfaces.
var ErrSelfServeBlocked = fmt.Errorf("self-serve billing is disabled for this company")

// CheckoutService creates Stripe Checkout and customer portal sessions for
// admin-initiated billing actions.
type CheckoutService struct {
	queries   db.Querier
	stripe    StripeAPI
	usage     *UsageService
	customers *StripeCustomerService
	cfg       *config.BillingConfig
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(queries db.Querier, stripeAPI StripeAPI, usage *UsageService, customers *StripeCustomerService, cfg *config.BillingConfig) *CheckoutService {
	return &CheckoutService{
		queries:   queries,
		stripe:    stripeAPI,
		usage:     usage,
		customers: customers,
		cfg:       cfg,
		logger:    logger.Log,
	}
}

// CreateCheckoutSession builds a subscription-mode Checkout session for the
// company's currently desired line items. Blocked for waived/internal seat
// policies, and refused when nothing is billable.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, companyID uuid.UUID, returnPath string) (string, error) {
	company, err := s.queries.GetCompany(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("loading company %s: %w", companyID, err)
	}

	policy := PolicyFromCompany(company)
	if policy.SelfServeBlocked() {
		return "", ErrSelfServeBlocked
	}

	usage, err := s.usage.SnapshotCompanyUsage(ctx, company)
	if err != nil {
		return "", err
	}
	quantities := ComputeDesiredQuantities(policy, usage, SeatConfig{
		IncludedInBase: s.cfg.SeatsIncludedInBase,
		MinBilled:      s.cfg.MinBilledSeats,
	})
	if !quantities.ShouldUseStripe() {
		return "", fmt.Errorf("company %s has nothing billable", companyID)
	}

	company, customerRes, err := s.customers.GetOrCreateCustomer(ctx, company)
	if err != nil {
		return "", err
	}

	successURL, cancelURL, err := s.returnURLs(returnPath)
	if err != nil {
		return "", err
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, stripeclient.CheckoutInput{
		CustomerID: customerRes.CustomerID,
		Items:      desiredLineItems(s.cfg.PriceIDs, quantities),
		Metadata: map[string]string{
			"companyId":   company.ID.String(),
			"companySlug": company.Slug,
		},
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// CreateSetupSession builds a setup-mode Checkout session so a company can
// put a payment method on file before anything is billable.
func (s *CheckoutService) CreateSetupSession(ctx context.Context, companyID uuid.UUID, returnPath string) (string, error) {
	company, err := s.queries.GetCompany(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("loading company %s: %w", companyID, err)
	}

	company, customerRes, err := s.customers.GetOrCreateCustomer(ctx, company)
	if err != nil {
		return "", err
	}

	successURL, cancelURL, err := s.returnURLs(returnPath)
	if err != nil {
		return "", err
	}

	session, err := s.stripe.CreateSetupSession(ctx, customerRes.CustomerID, map[string]string{
		"companyId":   company.ID.String(),
		"companySlug": company.Slug,
	}, successURL, cancelURL)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// CreatePortalSession opens the Stripe customer portal. A stale customer
// reference is a descriptive error here, not a recreation trigger — the
// portal is meaningless for a customer that no longer exists.
func (s *CheckoutService) CreatePortalSession(ctx context.Context, companyID uuid.UUID, returnPath string) (string, error) {
	company, err := s.queries.GetCompany(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("loading company %s: %w", companyID, err)
	}
	if !company.StripeCustomerID.Valid || company.StripeCustomerID.String == "" {
		return "", fmt.Errorf("company %s has no Stripe customer; run a billing sync first", companyID)
	}

	returnURL, _, err := s.returnURLs(returnPath)
	if err != nil {
		return "", err
	}

	session, err := s.stripe.CreatePortalSession(ctx, company.StripeCustomerID.String, returnURL)
	if err != nil {
		if stripeclient.IsNoSuchCustomer(err) {
			return "", fmt.Errorf("stored Stripe customer %s no longer exists; run a billing sync to repair it", company.StripeCustomerID.String)
		}
		return "", err
	}
	return session.URL, nil
}

func (s *CheckoutService) returnURLs(returnPath string) (string, string, error) {
	if s.cfg.AppBaseURL == "" {
		return "", "", fmt.Errorf("APP_BASE_URL is not configured")
	}
	if returnPath == "" {
		returnPath = "/settings/billing"
	}
	base := s.cfg.AppBaseURL + returnPath
	return base + "?billing=success", base + "?billing=cancelled", nil
}
