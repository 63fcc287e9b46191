package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

type recordingService struct {
	mu     sync.Mutex
	byHome map[int64][]string
}

func (s *recordingService) Process(_ context.Context, ev domain.ListingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byHome[ev.HomeID] = append(s.byHome[ev.HomeID], ev.ID)
	return nil
}

func TestDispatcher_PreservesPerHomeOrder(t *testing.T) {
	svc := &recordingService{byHome: make(map[int64][]string)}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		d.Publish(domain.ListingEvent{ID: id, HomeID: 42})
		d.Publish(domain.ListingEvent{ID: id, HomeID: 7})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	for _, home := range []int64{42, 7} {
		got := svc.byHome[home]
		if len(got) != len(ids) {
			t.Fatalf("home %d: expected %d events, got %d", home, len(ids), len(got))
		}
		for i := range ids {
			if got[i] != ids[i] {
				t.Errorf("home %d: out of order at %d: %v", home, i, got)
			}
		}
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	for _, id := range []int64{1, 5, 1 << 40} {
		a, b := d.shardIndex(id), d.shardIndex(id)
		if a != b || a < 0 || a >= defaultWorkers {
			t.Errorf("unstable or out of range shard for %d: %d/%d", id, a, b)
		}
	}
}

func TestDispatcher_PublishAfterStopIsDropped(t *testing.T) {
	svc := &recordingService{byHome: make(map[int64][]string)}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())
	if err := d.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}

	d.Publish(domain.ListingEvent{ID: "late", HomeID: 1})

	if len(svc.byHome) != 0 {
		t.Errorf("expected no processing after stop, got %v", svc.byHome)
	}
}
