package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// RetrieveCustomer fetches a customer by id using the new stripe.Client API.
func (s *StripeService) RetrieveCustomer(ctx context.Context, customerID string) (*stripe.Customer, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	customer, err := s.client.V1Customers.Retrieve(ctx, customerID, &stripe.CustomerRetrieveParams{})
	if err != nil {
		return nil, fmt.Errorf("retrieving customer %s: %w", customerID, err)
	}
	return customer, nil
}

// RetrieveCustomerWithDefaultPaymentMethod fetches a customer with the
// invoice-settings default payment method expanded.
func (s *StripeService) RetrieveCustomerWithDefaultPaymentMethod(ctx context.Context, customerID string) (*stripe.Customer, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.CustomerRetrieveParams{}
	params.AddExpand("invoice_settings.default_payment_method")

	customer, err := s.client.V1Customers.Retrieve(ctx, customerID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving customer %s: %w", customerID, err)
	}
	return customer, nil
}

// CreateCustomer creates a customer carrying the given metadata. The metadata
// links the Stripe record back to the owning company.
func (s *StripeService) CreateCustomer(ctx context.Context, name string, metadata map[string]string) (*stripe.Customer, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.CustomerCreateParams{
		Name:     stripe.String(name),
		Metadata: metadata,
	}

	customer, err := s.client.V1Customers.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	s.logger.Info("Created Stripe customer",
		zap.String("customer_id", customer.ID),
		zap.String("name", name),
	)
	return customer, nil
}

// SetCustomerDefaultPaymentMethod sets the invoice-settings default payment
// method on a customer.
func (s *StripeService) SetCustomerDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	if s.client == nil {
		return fmt.Errorf("stripe client not configured")
	}

	params := &stripe.CustomerUpdateParams{
		InvoiceSettings: &stripe.CustomerUpdateInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}

	if _, err := s.client.V1Customers.Update(ctx, customerID, params); err != nil {
		return fmt.Errorf("setting default payment method on customer %s: %w", customerID, err)
	}

	s.logger.Info("Set customer default payment method",
		zap.String("customer_id", customerID),
		zap.String("payment_method_id", paymentMethodID),
	)
	return nil
}
