package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/mocks"
)

func TestApplyBillingPatchNoChangesNoWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewBillingStateService(querier)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_123")

	sameID := "cus_123"
	got, changed, err := service.ApplyBillingPatch(context.Background(), company, BillingPatch{
		StripeCustomerID: &sameID,
	}, "test")

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, company, got)
}

func TestApplyBillingPatchWritesDeltaAndRecomputesHasStripe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewBillingStateService(querier)

	company := testCompany()
	company.StripeCustomerID = pgText("cus_123")

	subID := "sub_456"
	subStatus := "active"
	periodEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	querier.EXPECT().
		UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
			assert.Equal(t, company.ID, arg.ID)
			assert.Equal(t, "cus_123", arg.StripeCustomerID.String)
			assert.Equal(t, "sub_456", arg.StripeSubscriptionID.String)
			assert.Equal(t, "active", arg.StripeSubscriptionStatus.String)
			assert.True(t, arg.HasStripe)
			updated := company
			updated.StripeSubscriptionID = arg.StripeSubscriptionID
			updated.StripeSubscriptionStatus = arg.StripeSubscriptionStatus
			updated.HasStripe = arg.HasStripe
			return updated, nil
		})

	got, changed, err := service.ApplyBillingPatch(context.Background(), company, BillingPatch{
		StripeSubscriptionID:     &subID,
		StripeSubscriptionStatus: &subStatus,
		CurrentPeriodEnd:         &periodEnd,
	}, "test")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, got.HasStripe)
}

func TestApplyBillingPatchTerminalStatusClearsHasStripe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewBillingStateService(querier)

	company := testCompany()
	company.StripeSubscriptionID = pgText("sub_456")
	company.StripeSubscriptionStatus = pgText("active")
	company.HasStripe = true

	canceled := constants.SubscriptionStatusCanceled
	querier.EXPECT().
		UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
			assert.False(t, arg.HasStripe)
			assert.Equal(t, canceled, arg.StripeSubscriptionStatus.String)
			updated := company
			updated.HasStripe = false
			updated.StripeSubscriptionStatus = arg.StripeSubscriptionStatus
			return updated, nil
		})

	_, changed, err := service.ApplyBillingPatch(context.Background(), company, BillingPatch{
		StripeSubscriptionStatus: &canceled,
	}, "test")

	require.NoError(t, err)
	assert.True(t, changed)
}

func TestApplyBillingPatchClearsStaleSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewBillingStateService(querier)

	company := testCompany()
	company.StripeSubscriptionID = pgText("sub_stale")
	company.StripeSubscriptionStatus = pgText("active")
	company.HasStripe = true

	empty := ""
	querier.EXPECT().
		UpdateCompanyBilling(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyBillingParams) (db.Company, error) {
			assert.False(t, arg.StripeSubscriptionID.Valid)
			assert.False(t, arg.StripeSubscriptionStatus.Valid)
			assert.False(t, arg.HasStripe)
			updated := company
			updated.StripeSubscriptionID = arg.StripeSubscriptionID
			updated.StripeSubscriptionStatus = arg.StripeSubscriptionStatus
			updated.HasStripe = false
			return updated, nil
		})

	got, changed, err := service.ApplyBillingPatch(context.Background(), company, BillingPatch{
		StripeSubscriptionID:     &empty,
		StripeSubscriptionStatus: &empty,
	}, "test")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, got.HasStripe)
}

func TestRecordSyncOutcomeTruncatesMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewBillingStateService(querier)

	company := testCompany()
	longMessage := strings.Repeat("x", constants.MaxPersistedErrorLength+200)

	querier.EXPECT().
		UpdateCompanyLastSync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateCompanyLastSyncParams) error {
			assert.Equal(t, constants.SyncStatusError, arg.LastSyncStatus.String)
			assert.Len(t, arg.LastSyncMessage.String, constants.MaxPersistedErrorLength)
			assert.True(t, arg.LastStripeSyncAt.Valid)
			return nil
		})

	err := service.RecordSyncOutcome(context.Background(), company.ID, constants.SyncStatusError, longMessage)
	require.NoError(t, err)
}

func TestManagedActive(t *testing.T) {
	assert.True(t, ManagedActive("sub_1", "active"))
	assert.True(t, ManagedActive("sub_1", "past_due"))
	assert.False(t, ManagedActive("", "active"))
	assert.False(t, ManagedActive("sub_1", constants.SubscriptionStatusCanceled))
	assert.False(t, ManagedActive("sub_1", constants.SubscriptionStatusIncompleteExpired))
}
