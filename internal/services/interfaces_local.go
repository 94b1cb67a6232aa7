package services

import (
	"context"

	"github.com/stripe/stripe-go/v82"

	stripeclient "keepup-api/internal/client/stripe"
)

// StripeAPI is the slice of the Stripe wrapper the billing services depend on.
// Kept local so services can be tested against a generated mock.
type StripeAPI interface {
	RetrieveCustomer(ctx context.Context, customerID string) (*stripe.Customer, error)
	RetrieveCustomerWithDefaultPaymentMethod(ctx context.Context, customerID string) (*stripe.Customer, error)
	CreateCustomer(ctx context.Context, name string, metadata map[string]string) (*stripe.Customer, error)
	SetCustomerDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error

	RetrieveSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)
	CreateSubscription(ctx context.Context, input stripeclient.SubscriptionCreateInput) (*stripe.Subscription, error)
	UpdateSubscriptionItems(ctx context.Context, subscriptionID string, input stripeclient.SubscriptionUpdateInput) (*stripe.Subscription, error)

	ListCardPaymentMethods(ctx context.Context, customerID string, limit int64) ([]*stripe.PaymentMethod, error)

	CreateCheckoutSession(ctx context.Context, input stripeclient.CheckoutInput) (*stripe.CheckoutSession, error)
	CreateSetupSession(ctx context.Context, customerID string, metadata map[string]string, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*stripe.BillingPortalSession, error)

	ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

var _ StripeAPI = (*stripeclient.StripeService)(nil)
