package constants

// Billable SKUs. Each maps to exactly one Stripe price id supplied by
// deployment configuration (see internal/config).
const (
	SKUSeatBase    = "seat_base"
	SKUSeatExtra   = "seat_extra"
	SKUInsights    = "insights"
	SKUSiteBuilder = "site_builder"
)

// Seats policy modes. Anything other than "normal" makes seats entirely
// non-billable and blocks self-serve billing for the company.
const (
	SeatsModeNormal   = "normal"
	SeatsModeWaived   = "waived"
	SeatsModeInternal = "internal"
)

// Add-on policy modes.
const (
	AddonModeNormal = "normal"
	AddonModeComped = "comped"
)

// Feature statuses used by usage sources.
const (
	FeatureStatusActive = "active"
	FeatureStatusTrial  = "trial"
)

// Company user statuses counted by the seat directory.
const (
	UserStatusActive   = "active"
	UserStatusInvited  = "invited"
	UserStatusDisabled = "disabled"
)

// Stripe subscription statuses in the terminal set. A subscription in one of
// these states is never reused; reconciliation creates a fresh one.
const (
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
)

// Webhook event log statuses.
const (
	EventStatusProcessing = "processing"
	EventStatusProcessed  = "processed"
	EventStatusFailed     = "failed"
)

// Last-sync statuses persisted on the company record.
const (
	SyncStatusOK      = "ok"
	SyncStatusSkipped = "skipped"
	SyncStatusError   = "error"
)

// MaxPersistedErrorLength bounds free-text error messages written to the
// database (event log last_error, company last_sync_message).
const MaxPersistedErrorLength = 500
