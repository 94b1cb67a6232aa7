package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// CheckoutInput describes a subscription-mode Checkout session.
type CheckoutInput struct {
	CustomerID string
	Items      []LineItem
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession creates a subscription-mode Checkout session. Metadata
// is attached both to the session and to the resulting subscription so webhook
// events can be tied back to the company without extra lookups.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*stripe.CheckoutSession, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("checkout session requires at least one line item")
	}

	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, len(input.Items))
	for i, item := range input.Items {
		lineItems[i] = &stripe.CheckoutSessionCreateLineItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		}
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		Metadata:   input.Metadata,
		SubscriptionData: &stripe.CheckoutSessionCreateSubscriptionDataParams{
			Metadata: input.Metadata,
		},
	}
	if input.CustomerID != "" {
		params.Customer = stripe.String(input.CustomerID)
	}

	session, err := s.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	s.logger.Info("Created checkout session",
		zap.String("session_id", session.ID),
		zap.String("customer_id", input.CustomerID),
	)
	return session, nil
}

// CreateSetupSession creates a setup-mode Checkout session for capturing a
// payment method without starting a subscription.
func (s *StripeService) CreateSetupSession(ctx context.Context, customerID string, metadata map[string]string, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSetup)),
		Currency:   stripe.String("usd"),
		Customer:   stripe.String(customerID),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata:   metadata,
	}

	session, err := s.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating setup session: %w", err)
	}

	s.logger.Info("Created setup session",
		zap.String("session_id", session.ID),
		zap.String("customer_id", customerID),
	)
	return session, nil
}

// RetrieveCheckoutSession hydrates a Checkout session with its subscription
// and setup-intent payment method expanded, enough to finish either mode.
func (s *StripeService) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.CheckoutSessionRetrieveParams{}
	params.AddExpand("subscription")
	params.AddExpand("setup_intent.payment_method")

	session, err := s.client.V1CheckoutSessions.Retrieve(ctx, sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving checkout session %s: %w", sessionID, err)
	}
	return session, nil
}

// CreatePortalSession creates a customer portal session.
func (s *StripeService) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.BillingPortalSessionCreateParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}

	session, err := s.client.V1BillingPortalSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating portal session for customer %s: %w", customerID, err)
	}
	return session, nil
}
