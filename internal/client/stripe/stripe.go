// Package stripe wraps the Stripe API behind typed operations so the billing
// services never touch raw SDK calls or sniff error message text.
package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// StripeService holds the configured Stripe client. Method implementations for
// specific resources live in separate files within this package (customer.go,
// subscription.go, paymentmethod.go, checkout.go, webhook.go).
type StripeService struct {
	client        *stripe.Client
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeService creates a StripeService using the new stripe.Client API.
func NewStripeService(apiKey, webhookSecret string, logger *zap.Logger) *StripeService {
	return &StripeService{
		client:        stripe.NewClient(apiKey, nil),
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// CheckConnection verifies the API key with a non-mutating account fetch.
func (s *StripeService) CheckConnection(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("stripe client not configured")
	}
	if _, err := s.client.V1Accounts.Retrieve(ctx, &stripe.AccountRetrieveParams{}); err != nil {
		return fmt.Errorf("failed to connect to Stripe: %w", err)
	}
	return nil
}
