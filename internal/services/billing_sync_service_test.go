package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripesdk "github.com/stripe/stripe-go/v82"
	"go.uber.org/mock/gomock"

	stripeclient "keepup-api/internal/client/stripe"
	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/mocks"
)

func newSyncServiceForTest(t *testing.T) (*BillingSyncService, *mocks.MockStripeAPI, *mocks.MockQuerier) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	stripeAPI := mocks.NewMockStripeAPI(ctrl)
	querier := mocks.NewMockQuerier(ctrl)

	state := NewBillingStateService(querier)
	usage := NewUsageService(querier)
	customers := NewStripeCustomerService(stripeAPI, state)
	paymentMethods := NewPaymentMethodService(stripeAPI, state)
	sync := NewBillingSyncService(querier, stripeAPI, usage, customers, paymentMethods, state, testBillingConfig())
	return sync, stripeAPI, querier
}

// billingUpdateEcho mirrors an UpdateCompanyBilling call back onto a company
// row the way the real full-row UPDATE would.
func billingUpdateEcho(company db.Company) func(context.Context, db.UpdateCompanyBillingParams) (db.Company, error) {
	return func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
		updated := company
		updated.StripeCustomerID = arg.StripeCustomerID
		updated.StripeSubscriptionID = arg.StripeSubscriptionID
		updated.StripeSubscriptionStatus = arg.StripeSubscriptionStatus
		updated.CurrentPeriodEnd = arg.CurrentPeriodEnd
		updated.HasStripe = arg.HasStripe
		updated.HasPaymentMethodOnFile = arg.HasPaymentMethodOnFile
		updated.StripeDefaultPaymentMethodID = arg.StripeDefaultPaymentMethodID
		updated.StripeLastPaymentMethodCheckAt = arg.StripeLastPaymentMethodCheckAt
		return updated, nil
	}
}

func TestSyncFastPathSkipsWithoutExternalCalls(t *testing.T) {
	sync, _, querier := newSyncServiceForTest(t)

	company := testCompany()
	company.SeatsMode = constants.SeatsModeWaived

	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(5), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)
	querier.EXPECT().
		UpdateCompanyLastSync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyLastSyncParams) error {
			assert.Equal(t, constants.SyncStatusSkipped, arg.LastSyncStatus.String)
			return nil
		})

	result, err := sync.SyncCompanySubscription(context.Background(), company.ID)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, SkipReasonNothingBillable, result.Reason)
	assert.False(t, result.CreatedCustomer)
	assert.False(t, result.CreatedSubscription)
}

func TestSyncCreatesCustomerAndSubscription(t *testing.T) {
	sync, stripeAPI, querier := newSyncServiceForTest(t)

	company := testCompany()

	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(5), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)
	querier.EXPECT().UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(billingUpdateEcho(company)).AnyTimes()

	stripeAPI.EXPECT().CreateCustomer(gomock.Any(), company.Name, gomock.Any()).
		Return(&stripesdk.Customer{ID: "cus_new"}, nil)
	stripeAPI.EXPECT().RetrieveCustomerWithDefaultPaymentMethod(gomock.Any(), "cus_new").
		Return(&stripesdk.Customer{ID: "cus_new"}, nil)
	stripeAPI.EXPECT().ListCardPaymentMethods(gomock.Any(), "cus_new", int64(1)).
		Return(nil, nil)
	stripeAPI.EXPECT().
		CreateSubscription(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input stripeclient.SubscriptionCreateInput) (*stripesdk.Subscription, error) {
			assert.Equal(t, "cus_new", input.CustomerID)
			assert.Equal(t, []stripeclient.LineItem{
				{PriceID: "price_base", Quantity: 1},
				{PriceID: "price_extra", Quantity: 2},
			}, input.Items)
			assert.Equal(t, company.ID.String(), input.Metadata["companyId"])
			assert.Empty(t, input.DefaultPaymentMethodID)
			return &stripesdk.Subscription{
				ID:     "sub_new",
				Status: stripesdk.SubscriptionStatusActive,
				Items: &stripesdk.SubscriptionItemList{Data: []*stripesdk.SubscriptionItem{
					{ID: "si_1", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_base"}, Quantity: 1},
					{ID: "si_2", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_extra"}, Quantity: 2},
				}},
			}, nil
		})

	querier.EXPECT().
		UpdateCompanyLastSync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyLastSyncParams) error {
			assert.Equal(t, constants.SyncStatusOK, arg.LastSyncStatus.String)
			return nil
		})

	result, err := sync.SyncCompanySubscription(context.Background(), company.ID)
	require.NoError(t, err)
	assert.True(t, result.CreatedCustomer)
	assert.True(t, result.CreatedSubscription)
	assert.Equal(t, []UpdatedItem{
		{SKU: constants.SKUSeatBase, PriceID: "price_base", NewQty: 1, Action: "add"},
		{SKU: constants.SKUSeatExtra, PriceID: "price_extra", NewQty: 2, Action: "add"},
	}, result.UpdatedItems)
	assert.Equal(t, DesiredQuantities{SeatBase: 1, SeatExtra: 2}, result.Quantities)
}

func TestSyncSecondRunQueuesNothing(t *testing.T) {
	sync, stripeAPI, querier := newSyncServiceForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_1")
	company.StripeSubscriptionID = pgText("sub_1")
	company.StripeSubscriptionStatus = pgText("active")
	company.HasStripe = true
	company.StripeDefaultPaymentMethodID = pgText("pm_1")
	company.HasPaymentMethodOnFile = true

	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(5), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)
	querier.EXPECT().UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(billingUpdateEcho(company)).AnyTimes()
	querier.EXPECT().UpdateCompanyLastSync(gomock.Any(), gomock.Any()).Return(nil)

	stripeAPI.EXPECT().RetrieveCustomer(gomock.Any(), "cus_1").
		Return(&stripesdk.Customer{ID: "cus_1"}, nil)
	stripeAPI.EXPECT().RetrieveSubscription(gomock.Any(), "sub_1").
		Return(&stripesdk.Subscription{
			ID:                   "sub_1",
			Status:               stripesdk.SubscriptionStatusActive,
			DefaultPaymentMethod: &stripesdk.PaymentMethod{ID: "pm_1"},
			Items: &stripesdk.SubscriptionItemList{Data: []*stripesdk.SubscriptionItem{
				{ID: "si_1", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_base"}, Quantity: 1},
				{ID: "si_2", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_extra"}, Quantity: 2},
			}},
		}, nil)
	// No UpdateSubscriptionItems expectation: an in-sync subscription must
	// produce zero queued operations.

	result, err := sync.SyncCompanySubscription(context.Background(), company.ID)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.False(t, result.CreatedSubscription)
	assert.Empty(t, result.UpdatedItems)
}

func TestSyncDiffsItemsIntoBatchedUpdate(t *testing.T) {
	sync, stripeAPI, querier := newSyncServiceForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_1")
	company.StripeSubscriptionID = pgText("sub_1")
	company.StripeSubscriptionStatus = pgText("active")
	company.HasStripe = true
	company.StripeDefaultPaymentMethodID = pgText("pm_1")
	company.HasPaymentMethodOnFile = true

	// 5 users and insights no longer active: extra seat goes 1 -> 2 and the
	// insights line gets removed.
	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(5), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)
	querier.EXPECT().UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(billingUpdateEcho(company)).AnyTimes()
	querier.EXPECT().UpdateCompanyLastSync(gomock.Any(), gomock.Any()).Return(nil)

	stripeAPI.EXPECT().RetrieveCustomer(gomock.Any(), "cus_1").
		Return(&stripesdk.Customer{ID: "cus_1"}, nil)
	stripeAPI.EXPECT().RetrieveSubscription(gomock.Any(), "sub_1").
		Return(&stripesdk.Subscription{
			ID:                   "sub_1",
			Status:               stripesdk.SubscriptionStatusActive,
			DefaultPaymentMethod: &stripesdk.PaymentMethod{ID: "pm_1"},
			Items: &stripesdk.SubscriptionItemList{Data: []*stripesdk.SubscriptionItem{
				{ID: "si_1", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_base"}, Quantity: 1},
				{ID: "si_2", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_extra"}, Quantity: 1},
				{ID: "si_3", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_insights"}, Quantity: 1},
			}},
		}, nil)
	stripeAPI.EXPECT().
		UpdateSubscriptionItems(gomock.Any(), "sub_1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, input stripeclient.SubscriptionUpdateInput) (*stripesdk.Subscription, error) {
			assert.Equal(t, []stripeclient.ItemChange{
				{ItemID: "si_2", PriceID: "price_extra", Quantity: 2},
				{ItemID: "si_3", Deleted: true},
			}, input.Items)
			assert.Empty(t, input.DefaultPaymentMethodID)
			return &stripesdk.Subscription{
				ID:                   "sub_1",
				Status:               stripesdk.SubscriptionStatusActive,
				DefaultPaymentMethod: &stripesdk.PaymentMethod{ID: "pm_1"},
				Items: &stripesdk.SubscriptionItemList{Data: []*stripesdk.SubscriptionItem{
					{ID: "si_1", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_base"}, Quantity: 1},
					{ID: "si_2", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_extra"}, Quantity: 2},
				}},
			}, nil
		})

	result, err := sync.SyncCompanySubscription(context.Background(), company.ID)
	require.NoError(t, err)
	require.Len(t, result.UpdatedItems, 2)

	assert.Equal(t, constants.SKUSeatExtra, result.UpdatedItems[0].SKU)
	assert.Equal(t, "set", result.UpdatedItems[0].Action)
	require.NotNil(t, result.UpdatedItems[0].OldQty)
	assert.Equal(t, int64(1), *result.UpdatedItems[0].OldQty)
	assert.Equal(t, int64(2), result.UpdatedItems[0].NewQty)

	assert.Equal(t, constants.SKUInsights, result.UpdatedItems[1].SKU)
	assert.Equal(t, "remove", result.UpdatedItems[1].Action)
}

func TestSyncStaleSubscriptionSelfHeals(t *testing.T) {
	sync, stripeAPI, querier := newSyncServiceForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_1")
	company.StripeSubscriptionID = pgText("sub_gone")
	company.StripeSubscriptionStatus = pgText("active")
	company.HasStripe = true
	company.StripeDefaultPaymentMethodID = pgText("pm_1")
	company.HasPaymentMethodOnFile = true

	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(5), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)
	querier.EXPECT().UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(billingUpdateEcho(company)).AnyTimes()
	querier.EXPECT().UpdateCompanyLastSync(gomock.Any(), gomock.Any()).Return(nil)

	stripeAPI.EXPECT().RetrieveCustomer(gomock.Any(), "cus_1").
		Return(&stripesdk.Customer{ID: "cus_1"}, nil)
	stripeAPI.EXPECT().RetrieveSubscription(gomock.Any(), "sub_gone").
		Return(nil, &stripesdk.Error{
			Code: stripesdk.ErrorCodeResourceMissing,
			Msg:  "No such subscription: 'sub_gone'",
		})
	stripeAPI.EXPECT().
		CreateSubscription(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input stripeclient.SubscriptionCreateInput) (*stripesdk.Subscription, error) {
			assert.Equal(t, []stripeclient.LineItem{
				{PriceID: "price_base", Quantity: 1},
				{PriceID: "price_extra", Quantity: 2},
			}, input.Items)
			assert.Equal(t, "pm_1", input.DefaultPaymentMethodID)
			return &stripesdk.Subscription{
				ID:     "sub_fresh",
				Status: stripesdk.SubscriptionStatusActive,
				Items: &stripesdk.SubscriptionItemList{Data: []*stripesdk.SubscriptionItem{
					{ID: "si_1", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_base"}, Quantity: 1},
					{ID: "si_2", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_extra"}, Quantity: 2},
				}},
			}, nil
		})

	result, err := sync.SyncCompanySubscription(context.Background(), company.ID)
	require.NoError(t, err)
	assert.True(t, result.CreatedSubscription)
}

func TestSyncNeverReusesTerminalSubscription(t *testing.T) {
	sync, stripeAPI, querier := newSyncServiceForTest(t)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_1")
	company.StripeSubscriptionID = pgText("sub_canceled")
	company.StripeSubscriptionStatus = pgText("canceled")
	company.StripeDefaultPaymentMethodID = pgText("pm_1")
	company.HasPaymentMethodOnFile = true

	querier.EXPECT().GetCompany(gomock.Any(), company.ID).Return(company, nil)
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(3), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)
	querier.EXPECT().UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(billingUpdateEcho(company)).AnyTimes()
	querier.EXPECT().UpdateCompanyLastSync(gomock.Any(), gomock.Any()).Return(nil)

	stripeAPI.EXPECT().RetrieveCustomer(gomock.Any(), "cus_1").
		Return(&stripesdk.Customer{ID: "cus_1"}, nil)
	stripeAPI.EXPECT().RetrieveSubscription(gomock.Any(), "sub_canceled").
		Return(&stripesdk.Subscription{
			ID:     "sub_canceled",
			Status: stripesdk.SubscriptionStatusCanceled,
		}, nil)
	stripeAPI.EXPECT().CreateSubscription(gomock.Any(), gomock.Any()).
		Return(&stripesdk.Subscription{
			ID:     "sub_fresh",
			Status: stripesdk.SubscriptionStatusActive,
			Items: &stripesdk.SubscriptionItemList{Data: []*stripesdk.SubscriptionItem{
				{ID: "si_1", CurrentPeriodEnd: 1790000000, Price: &stripesdk.Price{ID: "price_base"}, Quantity: 1},
			}},
		}, nil)

	result, err := sync.SyncCompanySubscription(context.Background(), company.ID)
	require.NoError(t, err)
	assert.True(t, result.CreatedSubscription)
}
