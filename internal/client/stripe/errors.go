package stripe

import (
	"errors"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
)

// Typed predicates over Stripe API errors. Callers branch on these instead of
// inspecting error strings, so recovery behavior survives provider message
// changes.

// IsNotFound reports whether err is a Stripe resource_missing error.
func IsNotFound(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.Code == stripe.ErrorCodeResourceMissing
}

// IsNoSuchCustomer reports whether err means the referenced customer does not
// exist (deleted in the dashboard, or an id from another Stripe account).
func IsNoSuchCustomer(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	if stripeErr.Code != stripe.ErrorCodeResourceMissing {
		return false
	}
	return stripeErr.Param == "customer" || strings.Contains(strings.ToLower(stripeErr.Msg), "no such customer")
}

// IsNoSuchSubscription reports whether err means the referenced subscription
// does not exist.
func IsNoSuchSubscription(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	if stripeErr.Code != stripe.ErrorCodeResourceMissing {
		return false
	}
	return stripeErr.Param == "subscription" || strings.Contains(strings.ToLower(stripeErr.Msg), "no such subscription")
}

// IsAuthError reports whether err indicates a bad or revoked API key.
func IsAuthError(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.HTTPStatusCode == http.StatusUnauthorized
}
