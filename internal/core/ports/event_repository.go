package ports

import (
	"context"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// EventRepository persists listing events to the audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ListingEvent) error
}
