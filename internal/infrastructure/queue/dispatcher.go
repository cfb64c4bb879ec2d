// Package queue runs average-rating recomputations off the request path.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes recompute jobs to a fixed set of workers using consistent
// hashing on the bootcamp ID, so recomputations for the same bootcamp are
// serialized in write order while the triggering request returns immediately.
type Dispatcher struct {
	workers    []chan string
	aggregator ports.RatingAggregator
	log        zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, aggregator ports.RatingAggregator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan string, numWorkers),
		aggregator: aggregator,
		log:        log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a recomputation for the bootcamp. The call never blocks:
// when the shard's buffer is full the job is dropped with a warning, and the
// next review write for the bootcamp re-enqueues the same recomputation.
func (d *Dispatcher) Enqueue(bootcampID string) {
	i := d.shardIndex(bootcampID)
	select {
	case d.workers[i] <- bootcampID:
		metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Warn().
			Str("bootcamp_id", bootcampID).
			Int("worker_id", i).
			Msg("recompute queue full, job dropped")
	}
}

// shardIndex maps a bootcamp ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(bootcampID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bootcampID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case bootcampID, ok := <-ch:
			if !ok {
				return
			}
			if err := d.aggregator.Recompute(ctx, bootcampID); err != nil {
				d.log.Error().Err(err).
					Str("bootcamp_id", bootcampID).
					Int("worker_id", id).
					Msg("rating recompute failed")
			}
			metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
