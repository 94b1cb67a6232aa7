package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// BillingStateService is the single write path for Stripe billing state on a
// company record. Every writer (reconciler, webhook handlers) goes through
// ApplyBillingPatch so changes are diffed and logged uniformly.
type BillingStateService struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewBillingStateService creates a new billing state service
func NewBillingStateService(queries db.Querier) *BillingStateService {
	return &BillingStateService{
		queries: queries,
		logger:  logger.Log,
	}
}

// BillingPatch is a partial update of the billing columns. A nil pointer
// leaves the field alone; a pointer to the zero value clears it (needed when
// a stale subscription reference is wiped).
type BillingPatch struct {
	StripeCustomerID               *string
	StripeSubscriptionID           *string
	StripeSubscriptionStatus       *string
	CurrentPeriodEnd               *time.Time
	HasPaymentMethodOnFile         *bool
	StripeDefaultPaymentMethodID   *string
	StripeLastPaymentMethodCheckAt *time.Time
}

// ManagedActive reports whether a subscription id/status pair counts as a
// live managed subscription. Terminal statuses never do.
func ManagedActive(subscriptionID, status string) bool {
	if subscriptionID == "" {
		return false
	}
	return status != constants.SubscriptionStatusCanceled && status != constants.SubscriptionStatusIncompleteExpired
}

// ApplyBillingPatch merges the patch over the company's current billing state
// and writes it only when something actually changed, logging each delta with
// before/after values. has_stripe is always recomputed from the merged
// subscription id and status, never taken from the patch. Returns the
// (possibly updated) company and whether a write happened.
func (s *BillingStateService) ApplyBillingPatch(ctx context.Context, company db.Company, patch BillingPatch, contextLabel string) (db.Company, bool, error) {
	merged := struct {
		customerID             string
		subscriptionID         string
		subscriptionStatus     string
		currentPeriodEnd       time.Time
		hasPaymentMethod       bool
		defaultPaymentMethodID string
		lastPaymentMethodCheck time.Time
	}{
		customerID:             company.StripeCustomerID.String,
		subscriptionID:         company.StripeSubscriptionID.String,
		subscriptionStatus:     company.StripeSubscriptionStatus.String,
		currentPeriodEnd:       company.CurrentPeriodEnd.Time,
		hasPaymentMethod:       company.HasPaymentMethodOnFile,
		defaultPaymentMethodID: company.StripeDefaultPaymentMethodID.String,
		lastPaymentMethodCheck: company.StripeLastPaymentMethodCheckAt.Time,
	}

	changes := make([]zap.Field, 0, 8)

	if patch.StripeCustomerID != nil && *patch.StripeCustomerID != merged.customerID {
		changes = append(changes, zap.Dict("stripe_customer_id",
			zap.String("before", merged.customerID), zap.String("after", *patch.StripeCustomerID)))
		merged.customerID = *patch.StripeCustomerID
	}
	if patch.StripeSubscriptionID != nil && *patch.StripeSubscriptionID != merged.subscriptionID {
		changes = append(changes, zap.Dict("stripe_subscription_id",
			zap.String("before", merged.subscriptionID), zap.String("after", *patch.StripeSubscriptionID)))
		merged.subscriptionID = *patch.StripeSubscriptionID
	}
	if patch.StripeSubscriptionStatus != nil && *patch.StripeSubscriptionStatus != merged.subscriptionStatus {
		changes = append(changes, zap.Dict("stripe_subscription_status",
			zap.String("before", merged.subscriptionStatus), zap.String("after", *patch.StripeSubscriptionStatus)))
		merged.subscriptionStatus = *patch.StripeSubscriptionStatus
	}
	if patch.CurrentPeriodEnd != nil && !patch.CurrentPeriodEnd.Equal(merged.currentPeriodEnd) {
		changes = append(changes, zap.Dict("current_period_end",
			zap.Time("before", merged.currentPeriodEnd), zap.Time("after", *patch.CurrentPeriodEnd)))
		merged.currentPeriodEnd = *patch.CurrentPeriodEnd
	}
	if patch.HasPaymentMethodOnFile != nil && *patch.HasPaymentMethodOnFile != merged.hasPaymentMethod {
		changes = append(changes, zap.Dict("has_payment_method_on_file",
			zap.Bool("before", merged.hasPaymentMethod), zap.Bool("after", *patch.HasPaymentMethodOnFile)))
		merged.hasPaymentMethod = *patch.HasPaymentMethodOnFile
	}
	if patch.StripeDefaultPaymentMethodID != nil && *patch.StripeDefaultPaymentMethodID != merged.defaultPaymentMethodID {
		changes = append(changes, zap.Dict("stripe_default_payment_method_id",
			zap.String("before", merged.defaultPaymentMethodID), zap.String("after", *patch.StripeDefaultPaymentMethodID)))
		merged.defaultPaymentMethodID = *patch.StripeDefaultPaymentMethodID
	}
	if patch.StripeLastPaymentMethodCheckAt != nil && !patch.StripeLastPaymentMethodCheckAt.Equal(merged.lastPaymentMethodCheck) {
		merged.lastPaymentMethodCheck = *patch.StripeLastPaymentMethodCheckAt
	}

	hasStripe := ManagedActive(merged.subscriptionID, merged.subscriptionStatus)
	if hasStripe != company.HasStripe {
		changes = append(changes, zap.Dict("has_stripe",
			zap.Bool("before", company.HasStripe), zap.Bool("after", hasStripe)))
	}

	if len(changes) == 0 &&
		(patch.StripeLastPaymentMethodCheckAt == nil || patch.StripeLastPaymentMethodCheckAt.Equal(company.StripeLastPaymentMethodCheckAt.Time)) {
		return company, false, nil
	}

	updated, err := s.queries.UpdateCompanyBilling(ctx, db.UpdateCompanyBillingParams{
		ID:                             company.ID,
		StripeCustomerID:               textOrNull(merged.customerID),
		StripeSubscriptionID:           textOrNull(merged.subscriptionID),
		StripeSubscriptionStatus:       textOrNull(merged.subscriptionStatus),
		CurrentPeriodEnd:               timestamptzOrNull(merged.currentPeriodEnd),
		HasStripe:                      hasStripe,
		HasPaymentMethodOnFile:         merged.hasPaymentMethod,
		StripeDefaultPaymentMethodID:   textOrNull(merged.defaultPaymentMethodID),
		StripeLastPaymentMethodCheckAt: timestamptzOrNull(merged.lastPaymentMethodCheck),
	})
	if err != nil {
		return company, false, fmt.Errorf("updating billing state for company %s: %w", company.ID, err)
	}

	if len(changes) > 0 {
		s.logger.Info("Updated company billing state",
			zap.String("company_id", company.ID.String()),
			zap.String("context", contextLabel),
			zap.Dict("changes", changes...),
		)
	}
	return updated, true, nil
}

// RecordSyncOutcome stamps the admin-visible last-sync fields. The message is
// truncated so a giant provider error cannot bloat the row.
func (s *BillingStateService) RecordSyncOutcome(ctx context.Context, companyID uuid.UUID, status, message string) error {
	err := s.queries.UpdateCompanyLastSync(ctx, db.UpdateCompanyLastSyncParams{
		ID:               companyID,
		LastStripeSyncAt: pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
		LastSyncStatus:   textOrNull(status),
		LastSyncMessage:  textOrNull(truncateMessage(message, constants.MaxPersistedErrorLength)),
	})
	if err != nil {
		return fmt.Errorf("recording sync outcome for company %s: %w", companyID, err)
	}
	return nil
}

func truncateMessage(msg string, max int) string {
	if len(msg) <= max {
		return msg
	}
	return msg[:max]
}

func textOrNull(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

func timestamptzOrNull(value time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: value, Valid: !value.IsZero()}
}
