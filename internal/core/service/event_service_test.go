package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	insertErr error
	inserted  []*domain.ListingEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.ListingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, eventID string) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, eventID string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, eventID)
	return nil
}

type stubBroker struct {
	err  error
	keys []string
}

func (b *stubBroker) PublishJSON(_ context.Context, key string, _ any) error {
	b.keys = append(b.keys, key)
	return b.err
}

func newEventSvc(evRepo *stubEventRepo, broker ports.EventBroker, dedup DedupChecker) ports.EventService {
	return NewEventService(evRepo, broker, dedup, zerolog.Nop())
}

func sampleEvent() domain.ListingEvent {
	return domain.ListingEvent{
		ID:         "evt-1",
		Type:       domain.ListingCreated,
		HomeID:     5,
		RealtorID:  7,
		OccurredAt: time.Now().UTC(),
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEventService_Process_HappyPath(t *testing.T) {
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}
	broker := &stubBroker{}

	if err := newEventSvc(evRepo, broker, dedup).Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.inserted) != 1 || evRepo.inserted[0].HomeID != 5 {
		t.Errorf("expected audit event inserted, got: %v", evRepo.inserted)
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != "evt-1" {
		t.Errorf("expected dedup key marked, got: %v", dedup.marked)
	}
	if len(broker.keys) != 1 || broker.keys[0] != "home.created" {
		t.Errorf("expected publish with routing key home.created, got: %v", broker.keys)
	}
}

func TestEventService_Process_DuplicateSkipped(t *testing.T) {
	evRepo := &stubEventRepo{}
	broker := &stubBroker{}

	err := newEventSvc(evRepo, broker, &stubDedup{dupResult: true}).Process(context.Background(), sampleEvent())
	if err != nil {
		t.Fatalf("expected no error for duplicate, got: %v", err)
	}
	if len(evRepo.inserted) != 0 || len(broker.keys) != 0 {
		t.Errorf("duplicate event must not be recorded or published")
	}
}

func TestEventService_Process_DedupCheckError_ProcessesAnyway(t *testing.T) {
	evRepo := &stubEventRepo{}

	err := newEventSvc(evRepo, nil, &stubDedup{dupErr: errors.New("redis timeout")}).Process(context.Background(), sampleEvent())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.inserted) != 1 {
		t.Errorf("expected insert to proceed when dedup check errors")
	}
}

func TestEventService_Process_AuditFailureIsFatal(t *testing.T) {
	dedup := &stubDedup{}
	evRepo := &stubEventRepo{insertErr: errors.New("mongo unavailable")}

	if err := newEventSvc(evRepo, nil, dedup).Process(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected audit failure to fail the event")
	}
	if len(dedup.marked) != 0 {
		t.Error("failed events must not be marked as processed")
	}
}

func TestEventService_Process_BrokerFailureIsNonFatal(t *testing.T) {
	evRepo := &stubEventRepo{}
	broker := &stubBroker{err: errors.New("channel closed")}

	if err := newEventSvc(evRepo, broker, nil).Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("expected broker failure to be non-fatal, got: %v", err)
	}
	if len(evRepo.inserted) != 1 {
		t.Error("expected audit event to be recorded")
	}
}
