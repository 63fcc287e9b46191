package domain

import "time"

// ListingEventType names the mutation that produced a ListingEvent.
type ListingEventType string

const (
	ListingCreated    ListingEventType = "created"
	ListingUpdated    ListingEventType = "updated"
	ListingDeleted    ListingEventType = "deleted"
	ListingImageAdded ListingEventType = "image_added"
)

// ListingEvent records a completed mutation of a home.
type ListingEvent struct {
	ID         string           `json:"id" bson:"event_id"`
	Type       ListingEventType `json:"type" bson:"type"`
	HomeID     int64            `json:"home_id" bson:"home_id"`
	RealtorID  int64            `json:"realtor_id" bson:"realtor_id"`
	OccurredAt time.Time        `json:"occurred_at" bson:"occurred_at"`
}
