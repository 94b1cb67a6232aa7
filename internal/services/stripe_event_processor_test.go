package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripesdk "github.com/stripe/stripe-go/v82"
	"go.uber.org/mock/gomock"

	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/mocks"
)

func newEventProcessorForTest(t *testing.T) (*StripeEventProcessor, *mocks.MockStripeAPI, *mocks.MockQuerier) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	stripeAPI := mocks.NewMockStripeAPI(ctrl)
	querier := mocks.NewMockQuerier(ctrl)

	state := NewBillingStateService(querier)
	events := NewWebhookEventService(querier)
	paymentMethods := NewPaymentMethodService(stripeAPI, state)
	customers := NewStripeCustomerService(stripeAPI, state)
	sync := NewBillingSyncService(querier, stripeAPI, NewUsageService(querier), customers, paymentMethods, state, testBillingConfig())
	return NewStripeEventProcessor(querier, stripeAPI, events, state, paymentMethods, sync), stripeAPI, querier
}

func stripeEvent(id string, eventType stripesdk.EventType, raw string) stripesdk.Event {
	return stripesdk.Event{
		ID:   id,
		Type: eventType,
		Data: &stripesdk.EventData{Raw: json.RawMessage(raw)},
	}
}

func TestProcessEventDuplicateShortCircuits(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{}, uniqueViolation())
	querier.EXPECT().GetStripeEventLog(gomock.Any(), "evt_dup").
		Return(db.StripeEventLog{EventID: "evt_dup", Status: constants.EventStatusProcessed}, nil)

	outcome, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_dup", stripesdk.EventTypeInvoicePaid, `{}`))
	require.NoError(t, err)
	assert.True(t, outcome.Duplicate)
}

func TestProcessEventUnknownTypeAcknowledgedAsIgnored(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_1", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().
		MarkStripeEventLogProcessed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkStripeEventLogProcessedParams) error {
			assert.Equal(t, "evt_1", arg.EventID)
			assert.False(t, arg.CompanyID.Valid)
			return nil
		})

	outcome, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_1", "charge.refunded", `{}`))
	require.NoError(t, err)
	assert.True(t, outcome.Ignored)
	assert.False(t, outcome.Matched)
}

func TestProcessEventInvoicePaidActivatesViaCustomerLookup(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_1")
	company.StripeSubscriptionID = pgText("sub_1")
	company.StripeSubscriptionStatus = pgText("past_due")
	company.HasStripe = false

	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_paid", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().GetCompanyByStripeCustomerID(gomock.Any(), pgText("cus_1")).
		Return(company, nil)
	querier.EXPECT().
		UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
			assert.Equal(t, "active", arg.StripeSubscriptionStatus.String)
			assert.True(t, arg.HasStripe)
			return company, nil
		})
	querier.EXPECT().
		MarkStripeEventLogProcessed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkStripeEventLogProcessedParams) error {
			assert.True(t, arg.CompanyID.Valid)
			return nil
		})

	raw := `{"id":"in_1","customer":"cus_1","parent":{"subscription_details":{"subscription":"sub_1"}}}`
	outcome, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_paid", stripesdk.EventTypeInvoicePaid, raw))
	require.NoError(t, err)
	assert.True(t, outcome.Matched)
	assert.Equal(t, company.ID, outcome.CompanyID)
}

func TestProcessEventPaymentFailedMarksPastDue(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_1")
	company.StripeSubscriptionID = pgText("sub_1")
	company.StripeSubscriptionStatus = pgText("active")
	company.HasStripe = true

	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_fail", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().GetCompanyByStripeCustomerID(gomock.Any(), pgText("cus_1")).
		Return(company, nil)
	querier.EXPECT().
		UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
			assert.Equal(t, "past_due", arg.StripeSubscriptionStatus.String)
			assert.True(t, arg.HasStripe)
			return company, nil
		})
	querier.EXPECT().MarkStripeEventLogProcessed(gomock.Any(), gomock.Any()).Return(nil)

	raw := `{"id":"in_2","customer":"cus_1","parent":{"subscription_details":{"subscription":"sub_1"}}}`
	_, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_fail", stripesdk.EventTypeInvoicePaymentFailed, raw))
	require.NoError(t, err)
}

func TestProcessEventSubscriptionLifecycleResolvesByMetadataFirst(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_other")

	// Metadata is authoritative: no lookup by customer id even though the
	// event carries one.
	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_sub", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().
		UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
			assert.Equal(t, "sub_1", arg.StripeSubscriptionID.String)
			assert.Equal(t, "canceled", arg.StripeSubscriptionStatus.String)
			assert.False(t, arg.HasStripe)
			return company, nil
		})
	querier.EXPECT().MarkStripeEventLogProcessed(gomock.Any(), gomock.Any()).Return(nil)

	raw := fmt.Sprintf(`{"id":"sub_1","status":"canceled","customer":"cus_1","metadata":{"companyId":%q}}`, company.ID)
	outcome, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_sub", stripesdk.EventTypeCustomerSubscriptionDeleted, raw))
	require.NoError(t, err)
	assert.True(t, outcome.Matched)
}

func TestProcessEventHandlerFailureIsRecorded(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_err", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().GetCompanyByStripeCustomerID(gomock.Any(), pgText("cus_1")).
		Return(db.Company{}, fmt.Errorf("db exploded"))
	querier.EXPECT().
		MarkStripeEventLogFailed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkStripeEventLogFailedParams) error {
			assert.Equal(t, "evt_err", arg.EventID)
			assert.Contains(t, arg.LastError.String, "db exploded")
			return nil
		})

	raw := `{"id":"in_3","customer":"cus_1"}`
	_, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_err", stripesdk.EventTypeInvoicePaid, raw))
	require.Error(t, err)
}

func TestProcessEventUnmatchedCompanyAcknowledgedAsProcessed(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	// An event for a Stripe object nobody owns must not loop through
	// redelivery as a failure.
	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_orphan", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().GetCompanyByStripeCustomerID(gomock.Any(), pgText("cus_unknown")).
		Return(db.Company{}, pgx.ErrNoRows)
	querier.EXPECT().
		MarkStripeEventLogProcessed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkStripeEventLogProcessedParams) error {
			assert.Equal(t, "evt_orphan", arg.EventID)
			assert.False(t, arg.CompanyID.Valid)
			return nil
		})

	raw := `{"id":"in_4","customer":"cus_unknown"}`
	outcome, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_orphan", stripesdk.EventTypeInvoicePaid, raw))
	require.NoError(t, err)
	assert.False(t, outcome.Matched)
	assert.False(t, outcome.Duplicate)
}

func TestProcessEventFinalizationFailureLeavesEventReclaimable(t *testing.T) {
	processor, _, querier := newEventProcessorForTest(t)

	querier.EXPECT().CreateStripeEventLog(gomock.Any(), gomock.Any()).
		Return(db.StripeEventLog{EventID: "evt_final", Status: constants.EventStatusProcessing, Attempts: 1}, nil)
	querier.EXPECT().
		MarkStripeEventLogProcessed(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("write timeout"))
	// The entry must not stay in processing forever: it is flipped to failed
	// so the next delivery reclaims it.
	querier.EXPECT().
		MarkStripeEventLogFailed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkStripeEventLogFailedParams) error {
			assert.Equal(t, "evt_final", arg.EventID)
			assert.Contains(t, arg.LastError.String, "write timeout")
			return nil
		})

	_, err := processor.ProcessEvent(context.Background(),
		stripeEvent("evt_final", "charge.refunded", `{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write timeout")
}
