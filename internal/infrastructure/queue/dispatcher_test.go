package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingAggregator struct {
	mu    sync.Mutex
	seen  []string
	err   error
	done  chan struct{}
	wants int
}

func newRecordingAggregator(wants int) *recordingAggregator {
	return &recordingAggregator{done: make(chan struct{}), wants: wants}
}

func (a *recordingAggregator) Recompute(_ context.Context, bootcampID string) error {
	a.mu.Lock()
	a.seen = append(a.seen, bootcampID)
	if len(a.seen) == a.wants {
		close(a.done)
	}
	a.mu.Unlock()
	return a.err
}

func (a *recordingAggregator) wait(t *testing.T) {
	t.Helper()
	select {
	case <-a.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for recomputations")
	}
}

func TestDispatcher_ProcessesEnqueuedJobs(t *testing.T) {
	agg := newRecordingAggregator(3)
	d := NewDispatcher(2, agg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue("bc_1")
	d.Enqueue("bc_2")
	d.Enqueue("bc_3")
	agg.wait(t)

	agg.mu.Lock()
	defer agg.mu.Unlock()
	counts := make(map[string]int)
	for _, id := range agg.seen {
		counts[id]++
	}
	for _, id := range []string{"bc_1", "bc_2", "bc_3"} {
		if counts[id] != 1 {
			t.Fatalf("expected exactly one recompute for %s, got %d", id, counts[id])
		}
	}
}

func TestDispatcher_SameIDAlwaysSameWorker(t *testing.T) {
	d := NewDispatcher(4, newRecordingAggregator(0), zerolog.Nop())

	first := d.shardIndex("bc_42")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("bc_42"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_RecomputeFailureDoesNotStopWorker(t *testing.T) {
	agg := newRecordingAggregator(2)
	agg.err = errors.New("mongo unavailable")
	d := NewDispatcher(1, agg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue("bc_1")
	d.Enqueue("bc_1")
	agg.wait(t)
}

func TestDispatcher_EnqueueNeverBlocksOnFullQueue(t *testing.T) {
	// No Start call, so nothing drains the buffers. Overfilling a single
	// shard must drop the surplus instead of stalling the caller.
	d := NewDispatcher(1, newRecordingAggregator(0), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10*channelBuffer; i++ {
			d.Enqueue("bc_1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	agg := newRecordingAggregator(1)
	d := NewDispatcher(1, agg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue("bc_1")
	agg.wait(t)
	cancel()

	// Jobs after cancellation stay queued; the worker must not panic.
	d.Enqueue("bc_2")
	time.Sleep(50 * time.Millisecond)

	agg.mu.Lock()
	defer agg.mu.Unlock()
	if len(agg.seen) > 2 {
		t.Fatalf("unexpected recomputations after cancel: %v", agg.seen)
	}
}
