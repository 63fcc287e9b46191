package ports

import (
	"context"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// EventPublisher hands listing events to asynchronous processing.
type EventPublisher interface {
	Publish(event domain.ListingEvent)
}

// EventBroker forwards listing events to an external message broker.
type EventBroker interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// EventService processes a single dispatched listing event.
type EventService interface {
	Process(ctx context.Context, event domain.ListingEvent) error
}
