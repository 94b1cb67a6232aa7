package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	stripeclient "keepup-api/internal/client/stripe"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// StripeCustomerService resolves a usable Stripe customer for a company,
// creating one only when necessary and self-healing stale references.
type StripeCustomerService struct {
	stripe StripeAPI
	state  *BillingStateService
	logger *zap.Logger
}

// NewStripeCustomerService creates a new Stripe customer service
func NewStripeCustomerService(stripe StripeAPI, state *BillingStateService) *StripeCustomerService {
	return &StripeCustomerService{
		stripe: stripe,
		state:  state,
		logger: logger.Log,
	}
}

// CustomerResolution reports how the customer id was obtained.
type CustomerResolution struct {
	CustomerID string
	Created    bool
}

// GetOrCreateCustomer returns a valid Stripe customer id for the company.
// A stored id that Stripe reports deleted or missing is treated as stale and
// replaced; any other retrieval error propagates so transient failures never
// silently spawn duplicate customers.
func (s *StripeCustomerService) GetOrCreateCustomer(ctx context.Context, company db.Company) (db.Company, CustomerResolution, error) {
	if company.StripeCustomerID.Valid && company.StripeCustomerID.String != "" {
		storedID := company.StripeCustomerID.String
		customer, err := s.stripe.RetrieveCustomer(ctx, storedID)
		switch {
		case err == nil && !customer.Deleted:
			return company, CustomerResolution{CustomerID: storedID}, nil
		case err == nil && customer.Deleted:
			s.logger.Warn("Stored Stripe customer was deleted upstream, recreating",
				zap.String("company_id", company.ID.String()),
				zap.String("stale_customer_id", storedID),
			)
		case stripeclient.IsNoSuchCustomer(err):
			s.logger.Warn("Stored Stripe customer no longer exists, recreating",
				zap.String("company_id", company.ID.String()),
				zap.String("stale_customer_id", storedID),
				zap.Error(err),
			)
		default:
			return company, CustomerResolution{}, fmt.Errorf("verifying stored customer %s: %w", storedID, err)
		}
	}

	customer, err := s.stripe.CreateCustomer(ctx, company.Name, map[string]string{
		"companyId":   company.ID.String(),
		"companySlug": company.Slug,
	})
	if err != nil {
		return company, CustomerResolution{}, fmt.Errorf("creating customer for company %s: %w", company.ID, err)
	}

	newID := customer.ID
	updated, _, err := s.state.ApplyBillingPatch(ctx, company, BillingPatch{
		StripeCustomerID: &newID,
	}, "customer_resolver")
	if err != nil {
		return company, CustomerResolution{}, err
	}

	return updated, CustomerResolution{CustomerID: newID, Created: true}, nil
}
