package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	stripeclient "keepup-api/internal/client/stripe"
	"keepup-api/internal/config"
	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// SkipReasonNothingBillable is returned when a sync pass has nothing to bill.
const SkipReasonNothingBillable = "nothing_billable"

// BillingSyncService reconciles a company's Stripe subscription line items
// against its desired billable quantities with minimal mutation.
type BillingSyncService struct {
	queries        db.Querier
	stripe         StripeAPI
	usage          *UsageService
	customers      *StripeCustomerService
	paymentMethods *PaymentMethodService
	state          *BillingStateService
	cfg            *config.BillingConfig
	logger         *zap.Logger
}

// NewBillingSyncService creates a new billing sync service
func NewBillingSyncService(
	queries db.Querier,
	stripeAPI StripeAPI,
	usage *UsageService,
	customers *StripeCustomerService,
	paymentMethods *PaymentMethodService,
	state *BillingStateService,
	cfg *config.BillingConfig,
) *BillingSyncService {
	return &BillingSyncService{
		queries:        queries,
		stripe:         stripeAPI,
		usage:          usage,
		customers:      customers,
		paymentMethods: paymentMethods,
		state:          state,
		cfg:            cfg,
		logger:         logger.Log,
	}
}

// UpdatedItem is one audited line-item change from a reconciliation pass.
type UpdatedItem struct {
	SKU     string `json:"sku"`
	PriceID string `json:"price_id"`
	OldQty  *int64 `json:"old_qty"`
	NewQty  int64  `json:"new_qty"`
	Action  string `json:"action"` // add | set | remove
}

// SyncResult summarizes a reconciliation pass.
type SyncResult struct {
	Skipped             bool              `json:"skipped"`
	Reason              string            `json:"reason,omitempty"`
	CreatedCustomer     bool              `json:"created_customer"`
	CreatedSubscription bool              `json:"created_subscription"`
	UpdatedItems        []UpdatedItem     `json:"updated_items"`
	Quantities          DesiredQuantities `json:"quantities"`
}

// SyncCompanySubscription runs one reconciliation pass for a company.
// Stripe API failures propagate; the caller records the failed sync outcome.
// Successful and skipped passes record their own outcome before returning.
func (s *BillingSyncService) SyncCompanySubscription(ctx context.Context, companyID uuid.UUID) (*SyncResult, error) {
	company, err := s.queries.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading company %s: %w", companyID, err)
	}

	usage, err := s.usage.SnapshotCompanyUsage(ctx, company)
	if err != nil {
		return nil, err
	}

	policy := PolicyFromCompany(company)
	quantities := ComputeDesiredQuantities(policy, usage, SeatConfig{
		IncludedInBase: s.cfg.SeatsIncludedInBase,
		MinBilled:      s.cfg.MinBilledSeats,
	})

	result := &SyncResult{Quantities: quantities, UpdatedItems: []UpdatedItem{}}

	// Fast path: a tenant with nothing billable never gets a Stripe customer
	// or subscription created on its behalf.
	if !quantities.ShouldUseStripe() {
		result.Skipped = true
		result.Reason = SkipReasonNothingBillable
		s.logger.Info("Billing sync skipped",
			zap.String("company_id", companyID.String()),
			zap.String("reason", result.Reason),
		)
		if err := s.state.RecordSyncOutcome(ctx, companyID, constants.SyncStatusSkipped, result.Reason); err != nil {
			return nil, err
		}
		return result, nil
	}

	company, customerRes, err := s.customers.GetOrCreateCustomer(ctx, company)
	if err != nil {
		return nil, err
	}
	result.CreatedCustomer = customerRes.Created

	company, sub, err := s.resolveSubscription(ctx, company)
	if err != nil {
		return nil, err
	}

	company, resolvedPM, err := s.paymentMethods.ResolveDefaultPaymentMethod(ctx, company, customerRes.CustomerID)
	if err != nil {
		return nil, err
	}
	defaultPM := ""
	if resolvedPM != nil {
		defaultPM = resolvedPM.PaymentMethodID
	}

	if sub == nil {
		sub, err = s.stripe.CreateSubscription(ctx, stripeclient.SubscriptionCreateInput{
			CustomerID: customerRes.CustomerID,
			Items:      desiredLineItems(s.cfg.PriceIDs, quantities),
			Metadata: map[string]string{
				"companyId":   company.ID.String(),
				"companySlug": company.Slug,
			},
			DefaultPaymentMethodID: defaultPM,
		})
		if err != nil {
			return nil, err
		}
		result.CreatedSubscription = true
		for _, entry := range s.cfg.PriceIDs.Ordered() {
			if qty := quantities.ForSKU(entry.SKU); qty > 0 {
				result.UpdatedItems = append(result.UpdatedItems, UpdatedItem{
					SKU: entry.SKU, PriceID: entry.PriceID, NewQty: qty, Action: "add",
				})
			}
		}
	} else {
		sub, result.UpdatedItems, err = s.reconcileItems(ctx, sub, quantities, defaultPM)
		if err != nil {
			return nil, err
		}
	}

	subID := sub.ID
	subStatus := string(sub.Status)
	periodEnd := stripeclient.CurrentPeriodEnd(sub)
	company, _, err = s.state.ApplyBillingPatch(ctx, company, BillingPatch{
		StripeCustomerID:         &customerRes.CustomerID,
		StripeSubscriptionID:     &subID,
		StripeSubscriptionStatus: &subStatus,
		CurrentPeriodEnd:         &periodEnd,
	}, "reconciler")
	if err != nil {
		return nil, err
	}

	if err := s.state.RecordSyncOutcome(ctx, companyID, constants.SyncStatusOK, s.summarize(result)); err != nil {
		return nil, err
	}

	s.logger.Info("Billing sync completed",
		zap.String("company_id", companyID.String()),
		zap.Bool("created_customer", result.CreatedCustomer),
		zap.Bool("created_subscription", result.CreatedSubscription),
		zap.Int("updated_items", len(result.UpdatedItems)),
	)
	return result, nil
}

// resolveSubscription fetches the stored subscription if there is one. A
// missing subscription clears the stale reference; a terminal-status one is
// simply not reused. Either way the caller sees nil and creates a fresh one.
func (s *BillingSyncService) resolveSubscription(ctx context.Context, company db.Company) (db.Company, *stripe.Subscription, error) {
	if !company.StripeSubscriptionID.Valid || company.StripeSubscriptionID.String == "" {
		return company, nil, nil
	}
	storedID := company.StripeSubscriptionID.String

	sub, err := s.stripe.RetrieveSubscription(ctx, storedID)
	if err != nil {
		if !stripeclient.IsNoSuchSubscription(err) {
			return company, nil, fmt.Errorf("verifying stored subscription %s: %w", storedID, err)
		}
		s.logger.Warn("Stored Stripe subscription no longer exists, clearing",
			zap.String("company_id", company.ID.String()),
			zap.String("stale_subscription_id", storedID),
		)
		empty := ""
		company, _, err = s.state.ApplyBillingPatch(ctx, company, BillingPatch{
			StripeSubscriptionID:     &empty,
			StripeSubscriptionStatus: &empty,
		}, "reconciler")
		if err != nil {
			return company, nil, err
		}
		return company, nil, nil
	}

	if !ManagedActive(sub.ID, string(sub.Status)) {
		s.logger.Info("Stored subscription is terminal, creating a fresh one",
			zap.String("company_id", company.ID.String()),
			zap.String("subscription_id", sub.ID),
			zap.String("status", string(sub.Status)),
		)
		return company, nil, nil
	}
	return company, sub, nil
}

// reconcileItems diffs the live line items against desired quantities and
// applies all changes in a single no-proration batch update. The default
// payment method is attached in the same call when the subscription lacks one.
func (s *BillingSyncService) reconcileItems(ctx context.Context, sub *stripe.Subscription, quantities DesiredQuantities, defaultPM string) (*stripe.Subscription, []UpdatedItem, error) {
	existingBySKU := make(map[string]*stripe.SubscriptionItem)
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item == nil || item.Price == nil {
				continue
			}
			if sku := s.cfg.PriceIDs.SKUForPriceID(item.Price.ID); sku != "" {
				existingBySKU[sku] = item
			}
		}
	}

	updated := []UpdatedItem{}
	var changes []stripeclient.ItemChange
	for _, entry := range s.cfg.PriceIDs.Ordered() {
		desired := quantities.ForSKU(entry.SKU)
		existing, exists := existingBySKU[entry.SKU]

		switch {
		case desired > 0 && !exists:
			changes = append(changes, stripeclient.ItemChange{PriceID: entry.PriceID, Quantity: desired})
			updated = append(updated, UpdatedItem{SKU: entry.SKU, PriceID: entry.PriceID, NewQty: desired, Action: "add"})
		case desired > 0 && exists && existing.Quantity != desired:
			old := existing.Quantity
			changes = append(changes, stripeclient.ItemChange{ItemID: existing.ID, PriceID: entry.PriceID, Quantity: desired})
			updated = append(updated, UpdatedItem{SKU: entry.SKU, PriceID: entry.PriceID, OldQty: &old, NewQty: desired, Action: "set"})
		case desired == 0 && exists:
			old := existing.Quantity
			changes = append(changes, stripeclient.ItemChange{ItemID: existing.ID, Deleted: true})
			updated = append(updated, UpdatedItem{SKU: entry.SKU, PriceID: entry.PriceID, OldQty: &old, NewQty: 0, Action: "remove"})
		}
	}

	attachPM := ""
	if sub.DefaultPaymentMethod == nil && defaultPM != "" {
		attachPM = defaultPM
	}

	if len(changes) == 0 && attachPM == "" {
		return sub, updated, nil
	}

	for _, change := range updated {
		fields := []zap.Field{
			zap.String("subscription_id", sub.ID),
			zap.String("sku", change.SKU),
			zap.String("action", change.Action),
			zap.Int64("new_qty", change.NewQty),
		}
		if change.OldQty != nil {
			fields = append(fields, zap.Int64("old_qty", *change.OldQty))
		}
		s.logger.Info("Queued subscription item change", fields...)
	}

	newSub, err := s.stripe.UpdateSubscriptionItems(ctx, sub.ID, stripeclient.SubscriptionUpdateInput{
		Items:                  changes,
		DefaultPaymentMethodID: attachPM,
	})
	if err != nil {
		return nil, nil, err
	}
	return newSub, updated, nil
}

func desiredLineItems(prices config.StripePriceIDs, quantities DesiredQuantities) []stripeclient.LineItem {
	var items []stripeclient.LineItem
	for _, entry := range prices.Ordered() {
		if qty := quantities.ForSKU(entry.SKU); qty > 0 {
			items = append(items, stripeclient.LineItem{PriceID: entry.PriceID, Quantity: qty})
		}
	}
	return items
}

// BillingSummary is the read-only view served to the admin UI.
type BillingSummary struct {
	CompanyID           uuid.UUID         `json:"company_id"`
	HasStripe           bool              `json:"has_stripe"`
	SubscriptionStatus  string            `json:"subscription_status,omitempty"`
	CurrentPeriodEnd    string            `json:"current_period_end,omitempty"`
	SelfServeBlocked    bool              `json:"self_serve_blocked"`
	SeatsMode           string            `json:"seats_mode"`
	Usage               UsageSnapshot     `json:"usage"`
	Quantities          DesiredQuantities `json:"quantities"`
	ShouldUseStripe     bool              `json:"should_use_stripe"`
	LastSyncStatus      string            `json:"last_sync_status,omitempty"`
	LastSyncMessage     string            `json:"last_sync_message,omitempty"`
	HasPaymentMethod    bool              `json:"has_payment_method_on_file"`
	StripeCustomerIDSet bool              `json:"stripe_customer_id_set"`
}

// BillingSummary computes the current policy/usage/quantity view for a
// company without touching Stripe.
func (s *BillingSyncService) BillingSummary(ctx context.Context, companyID uuid.UUID) (*BillingSummary, error) {
	company, err := s.queries.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading company %s: %w", companyID, err)
	}

	usage, err := s.usage.SnapshotCompanyUsage(ctx, company)
	if err != nil {
		return nil, err
	}

	policy := PolicyFromCompany(company)
	quantities := ComputeDesiredQuantities(policy, usage, SeatConfig{
		IncludedInBase: s.cfg.SeatsIncludedInBase,
		MinBilled:      s.cfg.MinBilledSeats,
	})

	summary := &BillingSummary{
		CompanyID:           company.ID,
		HasStripe:           company.HasStripe,
		SubscriptionStatus:  company.StripeSubscriptionStatus.String,
		SelfServeBlocked:    policy.SelfServeBlocked(),
		SeatsMode:           company.SeatsMode,
		Usage:               usage,
		Quantities:          quantities,
		ShouldUseStripe:     quantities.ShouldUseStripe(),
		LastSyncStatus:      company.LastSyncStatus.String,
		LastSyncMessage:     company.LastSyncMessage.String,
		HasPaymentMethod:    company.HasPaymentMethodOnFile,
		StripeCustomerIDSet: company.StripeCustomerID.Valid && company.StripeCustomerID.String != "",
	}
	if company.CurrentPeriodEnd.Valid {
		summary.CurrentPeriodEnd = company.CurrentPeriodEnd.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return summary, nil
}

func (s *BillingSyncService) summarize(result *SyncResult) string {
	switch {
	case result.CreatedSubscription:
		return "created subscription"
	case len(result.UpdatedItems) > 0:
		return fmt.Sprintf("updated %d subscription item(s)", len(result.UpdatedItems))
	default:
		return "in sync"
	}
}
