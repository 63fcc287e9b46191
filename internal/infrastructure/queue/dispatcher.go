package queue

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/pkg/metrics"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes listing events to a fixed set of workers using consistent
// hashing on the home ID, so events of one home are processed in order.
type Dispatcher struct {
	workers []chan domain.ListingEvent
	service ports.EventService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

var _ ports.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ListingEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ListingEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled or
// after Stop has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its home.
// It blocks only when that worker's buffer is full. Events published after
// Stop are dropped.
func (d *Dispatcher) Publish(event domain.ListingEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		metrics.EventsDroppedTotal.Inc()
		d.log.Warn().Str("event_id", event.ID).Int64("home_id", event.HomeID).Msg("dispatcher stopped, event dropped")
		return
	}
	idx := d.shardIndex(event.HomeID)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// Stop closes the worker channels and waits for queued events to drain or
// for ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a home ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(homeID int64) int {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(homeID))
	h := fnv.New32a()
	_, _ = h.Write(buf[:])
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ListingEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			start := time.Now()
			result := "ok"
			if err := d.service.Process(ctx, event); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("event_id", event.ID).
					Int64("home_id", event.HomeID).
					Int("worker_id", id).
					Msg("listing event processing failed")
			}
			metrics.EventProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
