package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

const insertListingEvent = `INSERT INTO listing_events (event_id, type, home_id, realtor_id, occurred_at, processed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (event_id) DO NOTHING`

// EventRepository writes the listing event audit trail.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// InsertEvent stores the event; an event ID already present is ignored.
func (r *EventRepository) InsertEvent(ctx context.Context, ev *domain.ListingEvent) error {
	_, err := r.db.ExecContext(ctx, insertListingEvent,
		ev.ID, string(ev.Type), ev.HomeID, ev.RealtorID, ev.OccurredAt.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert listing event: %w", err)
	}
	return nil
}
