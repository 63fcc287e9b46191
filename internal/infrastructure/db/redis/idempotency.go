package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var createdHomes = keyspace{prefix: "idem:home:", ttl: 24 * time.Hour}

// IdempotencyStore maps an Idempotency-Key to the home it created.
type IdempotencyStore struct {
	client *redis.Client
	keys   keyspace
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, keys: createdHomes}
}

// Lookup returns the home ID stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, s.keys.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency value %q: %w", raw, err)
	}
	return id, true, nil
}

// Remember stores homeID under key unless the key is already taken.
func (s *IdempotencyStore) Remember(ctx context.Context, key string, homeID int64) error {
	return s.client.SetNX(ctx, s.keys.key(key), strconv.FormatInt(homeID, 10), s.keys.ttl).Err()
}
