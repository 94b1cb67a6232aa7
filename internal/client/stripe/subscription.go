package stripe

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// LineItem is one priced line on a new subscription.
type LineItem struct {
	PriceID  string
	Quantity int64
}

// SubscriptionCreateInput describes a subscription to create.
type SubscriptionCreateInput struct {
	CustomerID             string
	Items                  []LineItem
	Metadata               map[string]string
	DefaultPaymentMethodID string
}

// ItemChange is one mutation of an existing subscription's items. ItemID is
// empty for additions; Deleted removes the item regardless of quantity.
type ItemChange struct {
	ItemID   string
	PriceID  string
	Quantity int64
	Deleted  bool
}

// SubscriptionUpdateInput batches item changes into a single update call.
type SubscriptionUpdateInput struct {
	Items                  []ItemChange
	DefaultPaymentMethodID string
}

// RetrieveSubscription fetches a subscription with its item prices and default
// payment method expanded.
func (s *StripeService) RetrieveSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.SubscriptionRetrieveParams{}
	params.AddExpand("items.data.price")
	params.AddExpand("default_payment_method")

	sub, err := s.client.V1Subscriptions.Retrieve(ctx, subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving subscription %s: %w", subscriptionID, err)
	}
	return sub, nil
}

// CreateSubscription creates a subscription using the new stripe.Client API.
func (s *StripeService) CreateSubscription(ctx context.Context, input SubscriptionCreateInput) (*stripe.Subscription, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("subscription create requires at least one item")
	}

	stripeItems := make([]*stripe.SubscriptionCreateItemParams, len(input.Items))
	for i, item := range input.Items {
		stripeItems[i] = &stripe.SubscriptionCreateItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		}
	}

	params := &stripe.SubscriptionCreateParams{
		Customer: stripe.String(input.CustomerID),
		Items:    stripeItems,
		Metadata: input.Metadata,
	}
	if input.DefaultPaymentMethodID != "" {
		params.DefaultPaymentMethod = stripe.String(input.DefaultPaymentMethodID)
	}
	params.AddExpand("items.data.price")

	sub, err := s.client.V1Subscriptions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating subscription for customer %s: %w", input.CustomerID, err)
	}

	s.logger.Info("Created Stripe subscription",
		zap.String("subscription_id", sub.ID),
		zap.String("customer_id", input.CustomerID),
		zap.Int("item_count", len(input.Items)),
	)
	return sub, nil
}

// UpdateSubscriptionItems applies a batch of item changes in one call with
// proration disabled, so quantity changes settle at the next cycle boundary.
func (s *StripeService) UpdateSubscriptionItems(ctx context.Context, subscriptionID string, input SubscriptionUpdateInput) (*stripe.Subscription, error) {
	if s.client == nil {
		return nil, fmt.Errorf("stripe client not configured")
	}

	params := &stripe.SubscriptionUpdateParams{
		ProrationBehavior: stripe.String("none"),
	}

	if len(input.Items) > 0 {
		stripeItems := make([]*stripe.SubscriptionUpdateItemParams, len(input.Items))
		for i, change := range input.Items {
			updateItem := &stripe.SubscriptionUpdateItemParams{}
			if change.ItemID != "" {
				updateItem.ID = stripe.String(change.ItemID)
			}
			if change.Deleted {
				updateItem.Deleted = stripe.Bool(true)
			} else {
				updateItem.Price = stripe.String(change.PriceID)
				updateItem.Quantity = stripe.Int64(change.Quantity)
			}
			stripeItems[i] = updateItem
		}
		params.Items = stripeItems
	}

	if input.DefaultPaymentMethodID != "" {
		params.DefaultPaymentMethod = stripe.String(input.DefaultPaymentMethodID)
	}
	params.AddExpand("items.data.price")

	sub, err := s.client.V1Subscriptions.Update(ctx, subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("updating subscription %s: %w", subscriptionID, err)
	}

	s.logger.Info("Updated Stripe subscription items",
		zap.String("subscription_id", subscriptionID),
		zap.Int("change_count", len(input.Items)),
	)
	return sub, nil
}

// CurrentPeriodEnd returns the latest period end across the subscription's
// items. Since the basil API the period boundary lives on each item rather
// than the subscription itself.
func CurrentPeriodEnd(sub *stripe.Subscription) time.Time {
	if sub == nil || sub.Items == nil {
		return time.Time{}
	}
	var maxEnd int64
	for _, item := range sub.Items.Data {
		if item != nil && item.CurrentPeriodEnd > maxEnd {
			maxEnd = item.CurrentPeriodEnd
		}
	}
	if maxEnd == 0 {
		return time.Time{}
	}
	return time.Unix(maxEnd, 0).UTC()
}
