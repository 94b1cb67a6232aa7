package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
)

// ListCardPaymentMethods lists up to limit card payment methods attached to a
// customer, newest first. Uses the iter.Seq2 pattern of the new client API.
func (s *StripeService) ListCardPaymentMethods(ctx context.Context, customerID string, limit int64) ([]*stripe.PaymentMethod, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	if limit > 0 {
		params.Limit = stripe.Int64(limit)
	}

	var methods []*stripe.PaymentMethod
	var listErr error
	// Desugared range-over-func: the toolchain predates Go 1.23, so the
	// iter.Seq2 returned by List is invoked directly with a yield callback.
	s.client.V1PaymentMethods.List(ctx, params)(func(pm *stripe.PaymentMethod, err error) bool {
		if err != nil {
			listErr = fmt.Errorf("listing payment methods for customer %s: %w", customerID, err)
			return false
		}
		if pm == nil {
			return true
		}
		methods = append(methods, pm)
		if limit > 0 && int64(len(methods)) >= limit {
			return false
		}
		return true
	})
	if listErr != nil {
		return nil, listErr
	}
	return methods, nil
}
