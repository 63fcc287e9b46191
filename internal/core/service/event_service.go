package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/pkg/metrics"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type eventService struct {
	eventRepo ports.EventRepository
	broker    ports.EventBroker
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewEventService returns an EventService implementation. broker and dedup
// may be nil.
func NewEventService(
	eventRepo ports.EventRepository,
	broker ports.EventBroker,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		eventRepo: eventRepo,
		broker:    broker,
		dedup:     dedup,
		log:       log,
	}
}

// Process deduplicates, records and forwards a single listing event.
func (s *eventService) Process(ctx context.Context, ev domain.ListingEvent) error {
	// 1. Idempotency check: silently skip duplicates.
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, ev.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("event_id", ev.ID).Msg("dedup check failed, processing anyway")
		} else if isDup {
			metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("event_id", ev.ID).Msg("duplicate event skipped")
			return nil
		}
		metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
	}

	// 2. Audit trail is the source of truth; failure here fails the event.
	if err := s.eventRepo.InsertEvent(ctx, &ev); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("audit_failed").Inc()
		return fmt.Errorf("process event: insert: %w", err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, ev.ID); err != nil {
			s.log.Warn().Err(err).Str("event_id", ev.ID).Msg("failed to set dedup key")
		}
	}

	// 3. Broker fan-out is best effort.
	if s.broker != nil {
		if err := s.broker.PublishJSON(ctx, "home."+string(ev.Type), ev); err != nil {
			metrics.EventsErrorsTotal.WithLabelValues("publish_failed").Inc()
			s.log.Warn().Err(err).Str("event_id", ev.ID).Msg("failed to publish listing event")
		}
	}

	metrics.EventsProcessedTotal.WithLabelValues(string(ev.Type)).Inc()
	s.log.Info().
		Str("event_id", ev.ID).
		Str("type", string(ev.Type)).
		Int64("home_id", ev.HomeID).
		Msg("listing event processed")

	return nil
}
