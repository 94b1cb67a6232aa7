package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// Named payment-method sources, recorded so logs show which one won.
const (
	PMSourceStoredDefault   = "company.stripe_default_payment_method_id"
	PMSourceSetupResult     = "checkout.session.setup_intent.payment_method"
	PMSourceCustomerDefault = "customer.invoice_settings.default_payment_method"
	PMSourceNewestCard      = "payment_methods.list(card)[0]"
)

// PaymentMethodService picks a default payment instrument for a company by
// trying an ordered list of named sources. Absence of any method is not an
// error; subscriptions are simply created without an explicit default.
type PaymentMethodService struct {
	stripe StripeAPI
	state  *BillingStateService
	logger *zap.Logger
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(stripe StripeAPI, state *BillingStateService) *PaymentMethodService {
	return &PaymentMethodService{
		stripe: stripe,
		state:  state,
		logger: logger.Log,
	}
}

// ResolvedPaymentMethod is a payment method id plus the source that produced it.
type ResolvedPaymentMethod struct {
	PaymentMethodID string
	Source          string
}

type paymentMethodSource struct {
	name    string
	resolve func(ctx context.Context) (string, error)
}

// ResolveDefaultPaymentMethod tries, in order: the id already stored on the
// company, the customer's configured invoice default, and finally the newest
// card on file. A method discovered outside the stored field is persisted
// opportunistically; persistence failure is logged, not fatal.
func (s *PaymentMethodService) ResolveDefaultPaymentMethod(ctx context.Context, company db.Company, customerID string) (db.Company, *ResolvedPaymentMethod, error) {
	sources := []paymentMethodSource{
		{
			name: PMSourceStoredDefault,
			resolve: func(ctx context.Context) (string, error) {
				return company.StripeDefaultPaymentMethodID.String, nil
			},
		},
		{
			name:    PMSourceCustomerDefault,
			resolve: func(ctx context.Context) (string, error) { return s.customerDefault(ctx, customerID) },
		},
		{
			name:    PMSourceNewestCard,
			resolve: func(ctx context.Context) (string, error) { return s.newestCard(ctx, customerID) },
		},
	}
	return s.resolveThroughSources(ctx, company, sources)
}

// ResolveAfterSetup runs after a setup-mode checkout completes. The freshly
// submitted payment method wins over everything else, and whichever method is
// chosen is pushed back onto the Stripe customer as its invoice default if it
// differs.
func (s *PaymentMethodService) ResolveAfterSetup(ctx context.Context, company db.Company, customerID, setupPaymentMethodID string) (db.Company, *ResolvedPaymentMethod, error) {
	sources := []paymentMethodSource{
		{
			name:    PMSourceSetupResult,
			resolve: func(ctx context.Context) (string, error) { return setupPaymentMethodID, nil },
		},
		{
			name:    PMSourceCustomerDefault,
			resolve: func(ctx context.Context) (string, error) { return s.customerDefault(ctx, customerID) },
		},
		{
			name:    PMSourceNewestCard,
			resolve: func(ctx context.Context) (string, error) { return s.newestCard(ctx, customerID) },
		},
	}

	updated, resolved, err := s.resolveThroughSources(ctx, company, sources)
	if err != nil || resolved == nil {
		return updated, resolved, err
	}

	if resolved.Source != PMSourceCustomerDefault {
		currentDefault, defErr := s.customerDefault(ctx, customerID)
		if defErr != nil {
			s.logger.Warn("Could not read customer default payment method",
				zap.String("customer_id", customerID), zap.Error(defErr))
		} else if currentDefault != resolved.PaymentMethodID {
			if setErr := s.stripe.SetCustomerDefaultPaymentMethod(ctx, customerID, resolved.PaymentMethodID); setErr != nil {
				s.logger.Warn("Could not push default payment method to customer",
					zap.String("customer_id", customerID), zap.Error(setErr))
			}
		}
	}
	return updated, resolved, nil
}

func (s *PaymentMethodService) resolveThroughSources(ctx context.Context, company db.Company, sources []paymentMethodSource) (db.Company, *ResolvedPaymentMethod, error) {
	for _, source := range sources {
		paymentMethodID, err := source.resolve(ctx)
		if err != nil {
			return company, nil, fmt.Errorf("resolving payment method via %s: %w", source.name, err)
		}
		if paymentMethodID == "" {
			continue
		}

		resolved := &ResolvedPaymentMethod{PaymentMethodID: paymentMethodID, Source: source.name}
		s.logger.Debug("Resolved default payment method",
			zap.String("company_id", company.ID.String()),
			zap.String("source", resolved.Source),
		)

		updated := s.persistResolved(ctx, company, resolved)
		return updated, resolved, nil
	}

	now := time.Now().UTC()
	hasMethod := false
	updated, _, err := s.state.ApplyBillingPatch(ctx, company, BillingPatch{
		HasPaymentMethodOnFile:         &hasMethod,
		StripeLastPaymentMethodCheckAt: &now,
	}, "payment_method_resolver")
	if err != nil {
		s.logger.Warn("Could not record empty payment method check",
			zap.String("company_id", company.ID.String()), zap.Error(err))
		return company, nil, nil
	}
	return updated, nil, nil
}

// persistResolved stores a newly discovered default on the company record.
// Best-effort: the resolved method is still usable if the write fails.
func (s *PaymentMethodService) persistResolved(ctx context.Context, company db.Company, resolved *ResolvedPaymentMethod) db.Company {
	now := time.Now().UTC()
	hasMethod := true
	updated, _, err := s.state.ApplyBillingPatch(ctx, company, BillingPatch{
		StripeDefaultPaymentMethodID:   &resolved.PaymentMethodID,
		HasPaymentMethodOnFile:         &hasMethod,
		StripeLastPaymentMethodCheckAt: &now,
	}, "payment_method_resolver")
	if err != nil {
		s.logger.Warn("Could not persist resolved payment method",
			zap.String("company_id", company.ID.String()),
			zap.String("source", resolved.Source),
			zap.Error(err),
		)
		return company
	}
	return updated
}

func (s *PaymentMethodService) customerDefault(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", nil
	}
	customer, err := s.stripe.RetrieveCustomerWithDefaultPaymentMethod(ctx, customerID)
	if err != nil {
		return "", err
	}
	if customer.InvoiceSettings == nil || customer.InvoiceSettings.DefaultPaymentMethod == nil {
		return "", nil
	}
	return customer.InvoiceSettings.DefaultPaymentMethod.ID, nil
}

func (s *PaymentMethodService) newestCard(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", nil
	}
	methods, err := s.stripe.ListCardPaymentMethods(ctx, customerID, 1)
	if err != nil {
		return "", err
	}
	if len(methods) == 0 {
		return "", nil
	}
	return methods[0].ID, nil
}
