package ports

import "context"

// IdempotencyStore remembers which resource a client-supplied key produced.
type IdempotencyStore interface {
	// Lookup returns the stored home ID and true when key was seen before.
	Lookup(ctx context.Context, key string) (int64, bool, error)
	Remember(ctx context.Context, key string, homeID int64) error
}
