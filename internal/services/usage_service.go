package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// UsageService derives the live usage counts billing quantities are computed
// from. Read-only over the seat directory and entitlement columns.
type UsageService struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewUsageService creates a new usage service
func NewUsageService(queries db.Querier) *UsageService {
	return &UsageService{
		queries: queries,
		logger:  logger.Log,
	}
}

// SnapshotCompanyUsage counts active seats and community sites for a company
// and reads its insights entitlement state.
func (s *UsageService) SnapshotCompanyUsage(ctx context.Context, company db.Company) (UsageSnapshot, error) {
	activeUsers, err := s.queries.CountActiveCompanyUsers(ctx, company.ID)
	if err != nil {
		return UsageSnapshot{}, fmt.Errorf("counting active users for company %s: %w", company.ID, err)
	}

	activeSites, err := s.queries.CountActiveCommunitySites(ctx, company.ID)
	if err != nil {
		return UsageSnapshot{}, fmt.Errorf("counting active community sites for company %s: %w", company.ID, err)
	}

	snapshot := UsageSnapshot{
		ActiveUsers:    activeUsers,
		ActiveSites:    activeSites,
		InsightsActive: company.InsightsStatus.Valid && company.InsightsStatus.String == constants.FeatureStatusActive,
	}

	s.logger.Debug("Snapshotted company usage",
		zap.String("company_id", company.ID.String()),
		zap.Int64("active_users", snapshot.ActiveUsers),
		zap.Int64("active_sites", snapshot.ActiveSites),
		zap.Bool("insights_active", snapshot.InsightsActive),
	)
	return snapshot, nil
}
