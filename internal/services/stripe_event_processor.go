package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	stripeclient "keepup-api/internal/client/stripe"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// errCompanyNotResolved signals that no resolution strategy matched a company.
var errCompanyNotResolved = errors.New("company not resolved from event")

// StripeEventProcessor claims verified webhook events and dispatches them to
// per-type handlers. Each handler is idempotent and independently re-runnable.
type StripeEventProcessor struct {
	queries        db.Querier
	stripe         StripeAPI
	events         *WebhookEventService
	state          *BillingStateService
	paymentMethods *PaymentMethodService
	sync           *BillingSyncService
	logger         *zap.Logger
}

// NewStripeEventProcessor creates a new Stripe event processor
func NewStripeEventProcessor(
	queries db.Querier,
	stripeAPI StripeAPI,
	events *WebhookEventService,
	state *BillingStateService,
	paymentMethods *PaymentMethodService,
	sync *BillingSyncService,
) *StripeEventProcessor {
	return &StripeEventProcessor{
		queries:        queries,
		stripe:         stripeAPI,
		events:         events,
		state:          state,
		paymentMethods: paymentMethods,
		sync:           sync,
		logger:         logger.Log,
	}
}

// ProcessOutcome reports what happened to one delivered event.
type ProcessOutcome struct {
	Duplicate bool
	Ignored   bool
	Matched   bool
	CompanyID uuid.UUID
}

// ProcessEvent claims the event, runs its handler, and finalizes the log
// entry. A handler failure is recorded on the entry and returned; the HTTP
// boundary decides how to answer Stripe.
func (p *StripeEventProcessor) ProcessEvent(ctx context.Context, event stripe.Event) (ProcessOutcome, error) {
	claim, err := p.events.ClaimEvent(ctx, event.ID, string(event.Type))
	if err != nil {
		return ProcessOutcome{}, err
	}
	if claim.Duplicate {
		return ProcessOutcome{Duplicate: true}, nil
	}

	companyID, ignored, handlerErr := p.dispatch(ctx, event)

	linked := pgtype.UUID{}
	if companyID != uuid.Nil {
		linked = pgtype.UUID{Bytes: companyID, Valid: true}
	}

	if handlerErr != nil {
		// Events for Stripe objects that belong to no known company are
		// acknowledged as processed-but-unmatched so Stripe stops
		// redelivering them.
		if errors.Is(handlerErr, errCompanyNotResolved) {
			p.logger.Warn("Webhook event matched no company",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
			)
			return p.finalize(ctx, event, ProcessOutcome{}, linked)
		}

		p.logger.Error("Webhook handler failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(handlerErr),
		)
		if markErr := p.events.MarkFailed(ctx, event.ID, handlerErr.Error(), linked); markErr != nil {
			p.logger.Error("Could not record webhook handler failure",
				zap.String("event_id", event.ID), zap.Error(markErr))
		}
		return ProcessOutcome{CompanyID: companyID}, handlerErr
	}

	outcome := ProcessOutcome{
		Ignored:   ignored,
		Matched:   companyID != uuid.Nil,
		CompanyID: companyID,
	}
	return p.finalize(ctx, event, outcome, linked)
}

// finalize marks the entry processed. If that write fails, the entry is
// flipped to failed instead of being stranded in processing, so a later
// redelivery can reclaim it.
func (p *StripeEventProcessor) finalize(ctx context.Context, event stripe.Event, outcome ProcessOutcome, linked pgtype.UUID) (ProcessOutcome, error) {
	err := p.events.MarkProcessed(ctx, event.ID, linked)
	if err == nil {
		return outcome, nil
	}

	p.logger.Error("Could not mark webhook event processed",
		zap.String("event_id", event.ID), zap.Error(err))
	if markErr := p.events.MarkFailed(ctx, event.ID, "finalizing: "+err.Error(), linked); markErr != nil {
		p.logger.Error("Could not record webhook finalization failure",
			zap.String("event_id", event.ID), zap.Error(markErr))
	}
	return ProcessOutcome{CompanyID: outcome.CompanyID}, err
}

// dispatch routes by event type. Unrecognized types are acknowledged as
// ignored rather than treated as failures.
func (p *StripeEventProcessor) dispatch(ctx context.Context, event stripe.Event) (uuid.UUID, bool, error) {
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		companyID, err := p.handleCheckoutSessionCompleted(ctx, event)
		return companyID, false, err
	case stripe.EventTypeCustomerSubscriptionCreated,
		stripe.EventTypeCustomerSubscriptionUpdated,
		stripe.EventTypeCustomerSubscriptionDeleted:
		companyID, err := p.handleSubscriptionLifecycle(ctx, event)
		return companyID, false, err
	case stripe.EventTypeInvoicePaid:
		companyID, err := p.handleInvoiceStatusChange(ctx, event, "active")
		return companyID, false, err
	case stripe.EventTypeInvoicePaymentFailed:
		companyID, err := p.handleInvoiceStatusChange(ctx, event, "past_due")
		return companyID, false, err
	default:
		p.logger.Debug("Ignoring unhandled webhook event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
		)
		return uuid.Nil, true, nil
	}
}

// resolveCompany applies the deterministic fallback chain: explicit company
// metadata, then lookup by customer id, then lookup by subscription id.
// Metadata is authoritative when present because the customer/subscription
// link may not have been persisted yet.
func (p *StripeEventProcessor) resolveCompany(ctx context.Context, metadata map[string]string, customerID, subscriptionID string) (db.Company, string, error) {
	if raw, ok := metadata["companyId"]; ok && raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return db.Company{}, "", fmt.Errorf("invalid companyId metadata %q: %w", raw, err)
		}
		company, err := p.queries.GetCompany(ctx, id)
		if err == nil {
			return company, "event.metadata.companyId", nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return db.Company{}, "", err
		}
	}

	if customerID != "" {
		company, err := p.queries.GetCompanyByStripeCustomerID(ctx, textOrNull(customerID))
		if err == nil {
			return company, "lookup.stripe_customer_id", nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return db.Company{}, "", err
		}
	}

	if subscriptionID != "" {
		company, err := p.queries.GetCompanyByStripeSubscriptionID(ctx, textOrNull(subscriptionID))
		if err == nil {
			return company, "lookup.stripe_subscription_id", nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return db.Company{}, "", err
		}
	}

	return db.Company{}, "", errCompanyNotResolved
}

// handleCheckoutSessionCompleted distinguishes setup-mode sessions (payment
// method capture only) from subscription-mode ones. The session is re-fetched
// with expansions because the webhook payload carries only bare ids.
func (p *StripeEventProcessor) handleCheckoutSessionCompleted(ctx context.Context, event stripe.Event) (uuid.UUID, error) {
	var payload stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &payload); err != nil {
		return uuid.Nil, fmt.Errorf("unmarshaling checkout session: %w", err)
	}

	session, err := p.stripe.RetrieveCheckoutSession(ctx, payload.ID)
	if err != nil {
		return uuid.Nil, err
	}

	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	company, source, err := p.resolveCompany(ctx, session.Metadata, customerID, subscriptionID)
	if err != nil {
		return uuid.Nil, err
	}
	p.logger.Info("Resolved company for checkout session",
		zap.String("company_id", company.ID.String()),
		zap.String("session_id", session.ID),
		zap.String("mode", string(session.Mode)),
		zap.String("source", source),
	)

	if session.Mode == stripe.CheckoutSessionModeSetup {
		setupPM := ""
		if session.SetupIntent != nil && session.SetupIntent.PaymentMethod != nil {
			setupPM = session.SetupIntent.PaymentMethod.ID
		}
		_, _, err := p.paymentMethods.ResolveAfterSetup(ctx, company, customerID, setupPM)
		return company.ID, err
	}

	// Subscription mode: persist what the session established, then run a
	// full reconciliation pass to catch any immediate quantity drift.
	if session.Subscription != nil {
		sub := session.Subscription
		subID := sub.ID
		subStatus := string(sub.Status)
		periodEnd := stripeclient.CurrentPeriodEnd(sub)
		patch := BillingPatch{
			StripeSubscriptionID:     &subID,
			StripeSubscriptionStatus: &subStatus,
			CurrentPeriodEnd:         &periodEnd,
		}
		if customerID != "" {
			patch.StripeCustomerID = &customerID
		}
		if company, _, err = p.state.ApplyBillingPatch(ctx, company, patch, "webhook.checkout.session.completed"); err != nil {
			return company.ID, err
		}
	}

	if _, err := p.sync.SyncCompanySubscription(ctx, company.ID); err != nil {
		return company.ID, err
	}
	return company.ID, nil
}

// handleSubscriptionLifecycle covers created/updated/deleted. Deleted arrives
// with status canceled, which flips the managed-active flag off through the
// normal recompute.
func (p *StripeEventProcessor) handleSubscriptionLifecycle(ctx context.Context, event stripe.Event) (uuid.UUID, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return uuid.Nil, fmt.Errorf("unmarshaling subscription: %w", err)
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	company, source, err := p.resolveCompany(ctx, sub.Metadata, customerID, sub.ID)
	if err != nil {
		return uuid.Nil, err
	}

	subID := sub.ID
	subStatus := string(sub.Status)
	periodEnd := stripeclient.CurrentPeriodEnd(&sub)
	patch := BillingPatch{
		StripeSubscriptionID:     &subID,
		StripeSubscriptionStatus: &subStatus,
	}
	if !periodEnd.IsZero() {
		patch.CurrentPeriodEnd = &periodEnd
	}
	if customerID != "" {
		patch.StripeCustomerID = &customerID
	}

	if _, _, err := p.state.ApplyBillingPatch(ctx, company, patch, "webhook."+string(event.Type)); err != nil {
		return company.ID, err
	}

	p.logger.Info("Applied subscription lifecycle event",
		zap.String("company_id", company.ID.String()),
		zap.String("event_type", string(event.Type)),
		zap.String("subscription_status", subStatus),
		zap.String("source", source),
	)
	return company.ID, nil
}

// handleInvoiceStatusChange maps invoice.paid to an active subscription and
// invoice.payment_failed to past_due. The subscription reference lives under
// the invoice's parent details in the current API.
func (p *StripeEventProcessor) handleInvoiceStatusChange(ctx context.Context, event stripe.Event, newStatus string) (uuid.UUID, error) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return uuid.Nil, fmt.Errorf("unmarshaling invoice: %w", err)
	}

	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}

	subscriptionID := ""
	metadata := map[string]string{}
	if invoice.Parent != nil && invoice.Parent.SubscriptionDetails != nil {
		if invoice.Parent.SubscriptionDetails.Subscription != nil {
			subscriptionID = invoice.Parent.SubscriptionDetails.Subscription.ID
		}
		if invoice.Parent.SubscriptionDetails.Metadata != nil {
			metadata = invoice.Parent.SubscriptionDetails.Metadata
		}
	}

	company, source, err := p.resolveCompany(ctx, metadata, customerID, subscriptionID)
	if err != nil {
		return uuid.Nil, err
	}

	patch := BillingPatch{StripeSubscriptionStatus: &newStatus}
	if subscriptionID != "" {
		patch.StripeSubscriptionID = &subscriptionID
	}
	if _, _, err := p.state.ApplyBillingPatch(ctx, company, patch, "webhook."+string(event.Type)); err != nil {
		return company.ID, err
	}

	p.logger.Info("Applied invoice status change",
		zap.String("company_id", company.ID.String()),
		zap.String("event_type", string(event.Type)),
		zap.String("new_status", newStatus),
		zap.String("source", source),
	)
	return company.ID, nil
}
