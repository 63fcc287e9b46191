package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var processedEvents = keyspace{prefix: "dedup:listing:", ttl: time.Hour}

// DedupChecker remembers which listing events were already processed so a
// redelivered event is skipped.
type DedupChecker struct {
	client *redis.Client
	keys   keyspace
}

func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client, keys: processedEvents}
}

func (d *DedupChecker) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.keys.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check %s: %w", eventID, err)
	}
	return n > 0, nil
}

// Mark flags eventID as processed until the keyspace TTL expires.
func (d *DedupChecker) Mark(ctx context.Context, eventID string) error {
	if err := d.client.Set(ctx, d.keys.key(eventID), time.Now().Unix(), d.keys.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark %s: %w", eventID, err)
	}
	return nil
}
