package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"keepup-api/internal/constants"
	"keepup-api/internal/db"
	"keepup-api/internal/logger"
)

// WebhookEventService is the idempotency gate in front of webhook dispatch.
// Claiming is backed by the unique constraint on stripe_event_logs.event_id,
// so concurrent deliveries across process instances get exactly one winner.
type WebhookEventService struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewWebhookEventService creates a new webhook event service
func NewWebhookEventService(queries db.Querier) *WebhookEventService {
	return &WebhookEventService{
		queries: queries,
		logger:  logger.Log,
	}
}

// EventClaim is the outcome of a claim attempt.
type EventClaim struct {
	Process   bool
	Duplicate bool
	Log       db.StripeEventLog
}

// ClaimEvent takes ownership of an event id. The first delivery inserts the
// log row and wins. A later delivery hits the unique constraint: if the prior
// attempt is processed or still processing it is a duplicate; if it failed,
// the event is re-claimed with attempts incremented and the error cleared.
func (s *WebhookEventService) ClaimEvent(ctx context.Context, eventID, eventType string) (EventClaim, error) {
	entry, err := s.queries.CreateStripeEventLog(ctx, db.CreateStripeEventLogParams{
		EventID:   eventID,
		EventType: eventType,
	})
	if err == nil {
		return EventClaim{Process: true, Log: entry}, nil
	}
	if !isUniqueViolation(err) {
		return EventClaim{}, fmt.Errorf("claiming event %s: %w", eventID, err)
	}

	existing, err := s.queries.GetStripeEventLog(ctx, eventID)
	if err != nil {
		return EventClaim{}, fmt.Errorf("reading existing event log %s: %w", eventID, err)
	}

	switch existing.Status {
	case constants.EventStatusProcessed, constants.EventStatusProcessing:
		s.logger.Info("Duplicate webhook delivery skipped",
			zap.String("event_id", eventID),
			zap.String("status", existing.Status),
		)
		return EventClaim{Duplicate: true, Log: existing}, nil
	case constants.EventStatusFailed:
		// Redelivery after a failure: re-claim with a conditional update so a
		// concurrent redelivery can't both win.
		reclaimed, err := s.queries.ReclaimFailedStripeEventLog(ctx, eventID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return EventClaim{Duplicate: true, Log: existing}, nil
			}
			return EventClaim{}, fmt.Errorf("reclaiming failed event %s: %w", eventID, err)
		}
		s.logger.Info("Re-claimed previously failed webhook event",
			zap.String("event_id", eventID),
			zap.Int32("attempts", reclaimed.Attempts),
		)
		return EventClaim{Process: true, Log: reclaimed}, nil
	default:
		return EventClaim{}, fmt.Errorf("event log %s in unexpected status %q", eventID, existing.Status)
	}
}

// MarkProcessed finalizes a claimed event, attaching the resolved company
// when the handler discovered one.
func (s *WebhookEventService) MarkProcessed(ctx context.Context, eventID string, companyID pgtype.UUID) error {
	if err := s.queries.MarkStripeEventLogProcessed(ctx, db.MarkStripeEventLogProcessedParams{
		EventID:   eventID,
		CompanyID: companyID,
	}); err != nil {
		return fmt.Errorf("marking event %s processed: %w", eventID, err)
	}
	return nil
}

// MarkFailed records a handler failure with a truncated message. The event
// stays eligible for re-claim on the next redelivery.
func (s *WebhookEventService) MarkFailed(ctx context.Context, eventID, message string, companyID pgtype.UUID) error {
	if err := s.queries.MarkStripeEventLogFailed(ctx, db.MarkStripeEventLogFailedParams{
		EventID:   eventID,
		LastError: textOrNull(truncateMessage(message, constants.MaxPersistedErrorLength)),
		CompanyID: companyID,
	}); err != nil {
		return fmt.Errorf("marking event %s failed: %w", eventID, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
