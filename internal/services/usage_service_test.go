package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keepup-api/internal/mocks"
)

func TestSnapshotCompanyUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewUsageService(querier)

	company := testCompany()
	company.InsightsStatus = pgText("active")

	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(7), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(2), nil)

	got, err := service.SnapshotCompanyUsage(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, UsageSnapshot{ActiveUsers: 7, ActiveSites: 2, InsightsActive: true}, got)
}

func TestSnapshotCompanyUsageTrialInsightsNotActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewUsageService(querier)

	company := testCompany()
	company.InsightsStatus = pgText("trial")

	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(3), nil)
	querier.EXPECT().CountActiveCommunitySites(gomock.Any(), company.ID).Return(int64(0), nil)

	got, err := service.SnapshotCompanyUsage(context.Background(), company)
	require.NoError(t, err)
	assert.False(t, got.InsightsActive)
}

func TestSnapshotCompanyUsagePropagatesCountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	service := NewUsageService(querier)

	company := testCompany()
	querier.EXPECT().CountActiveCompanyUsers(gomock.Any(), company.ID).Return(int64(0), fmt.Errorf("connection reset"))

	_, err := service.SnapshotCompanyUsage(context.Background(), company)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting active users")
}
