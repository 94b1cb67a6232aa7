package services

import (
	"keepup-api/internal/constants"
	"keepup-api/internal/db"
)

// BillingPolicy is the admin-editable entitlement policy for a company,
// read-only to the billing engine.
type BillingPolicy struct {
	SeatsMode              string
	InsightsMode           string
	SiteBuilderMode        string
	MinBilledSeatsOverride *int64
}

// PolicyFromCompany extracts the billing policy columns from a company row.
func PolicyFromCompany(company db.Company) BillingPolicy {
	policy := BillingPolicy{
		SeatsMode:       company.SeatsMode,
		InsightsMode:    company.AddonInsightsMode,
		SiteBuilderMode: company.AddonSiteBuilderMode,
	}
	if company.MinBilledSeatsOverride.Valid {
		override := int64(company.MinBilledSeatsOverride.Int32)
		policy.MinBilledSeatsOverride = &override
	}
	return policy
}

// SeatsBillable reports whether seats bill at all under this policy. Waived
// and internal accounts never pay for seats.
func (p BillingPolicy) SeatsBillable() bool {
	return p.SeatsMode == constants.SeatsModeNormal
}

// SelfServeBlocked reports whether the company may use self-serve billing
// surfaces (checkout sessions). Non-normal seat modes block them.
func (p BillingPolicy) SelfServeBlocked() bool {
	return !p.SeatsBillable()
}

// UsageSnapshot holds the live usage counts desired quantities derive from.
// Computed at reconciliation time, never persisted.
type UsageSnapshot struct {
	ActiveUsers    int64
	InsightsActive bool
	ActiveSites    int64
}

// SeatConfig is the deployment-level seat plan shape.
type SeatConfig struct {
	IncludedInBase int64
	MinBilled      int64
}

// DesiredQuantities maps each SKU to the quantity that should exist on the
// subscription. Zero means the line should not exist.
type DesiredQuantities struct {
	SeatBase    int64
	SeatExtra   int64
	Insights    int64
	SiteBuilder int64
}

// ForSKU returns the desired quantity for a SKU; unknown SKUs are 0.
func (q DesiredQuantities) ForSKU(sku string) int64 {
	switch sku {
	case constants.SKUSeatBase:
		return q.SeatBase
	case constants.SKUSeatExtra:
		return q.SeatExtra
	case constants.SKUInsights:
		return q.Insights
	case constants.SKUSiteBuilder:
		return q.SiteBuilder
	}
	return 0
}

// ShouldUseStripe reports whether anything is billable at all. When false the
// reconciler takes its fast path and never touches Stripe.
func (q DesiredQuantities) ShouldUseStripe() bool {
	return q.SeatBase > 0 || q.SeatExtra > 0 || q.Insights > 0 || q.SiteBuilder > 0
}

// ComputeDesiredQuantities derives the billable quantity for every SKU from
// policy and usage. Pure and deterministic; quantities are never negative.
func ComputeDesiredQuantities(policy BillingPolicy, usage UsageSnapshot, seats SeatConfig) DesiredQuantities {
	var q DesiredQuantities

	if policy.SeatsBillable() {
		effectiveMinimum := seats.MinBilled
		if policy.MinBilledSeatsOverride != nil {
			effectiveMinimum = *policy.MinBilledSeatsOverride
		}
		billedSeats := usage.ActiveUsers
		if effectiveMinimum > billedSeats {
			billedSeats = effectiveMinimum
		}
		if billedSeats > 0 {
			q.SeatBase = 1
		}
		if extra := billedSeats - seats.IncludedInBase; extra > 0 {
			q.SeatExtra = extra
		}
	}

	if usage.InsightsActive && policy.InsightsMode != constants.AddonModeComped {
		q.Insights = 1
	}

	if policy.SiteBuilderMode != constants.AddonModeComped && usage.ActiveSites > 0 {
		q.SiteBuilder = usage.ActiveSites
	}

	return q
}
