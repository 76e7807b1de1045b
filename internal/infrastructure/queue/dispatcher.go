package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var (
	ErrQueueFull   = errors.New("audit queue full")
	ErrQueueClosed = errors.New("audit queue closed")
)

// Dispatcher moves audit entries off the request path. Entries are routed to
// a fixed set of workers by hashing entity and id, so the history of a single
// record is written in order.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	sink    ports.AuditLog
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers writing
// to sink. Non-positive numWorkers or buffer fall back to the defaults.
func NewDispatcher(numWorkers, buffer int, sink ports.AuditLog, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = channelBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or, after Close, once their queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues entry without blocking. It implements ports.AuditLog.
func (d *Dispatcher) Record(_ context.Context, entry domain.AuditEntry) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.workers[d.shardIndex(entry)] <- entry:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting entries and waits for the workers to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an entity record deterministically to a worker index.
func (d *Dispatcher) shardIndex(entry domain.AuditEntry) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entry.Entity))
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(entry.EntityID), 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Record(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("entity", entry.Entity).
					Uint("entity_id", entry.EntityID).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
