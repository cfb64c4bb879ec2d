package ports

import "context"

// RatingAggregator recomputes a bootcamp's derived average rating from its
// reviews.
type RatingAggregator interface {
	Recompute(ctx context.Context, bootcampID string) error
}

// RatingEnqueuer schedules a recomputation after a review write. The call
// must not block the request path; failures surface in the worker's log, not
// on the triggering request.
type RatingEnqueuer interface {
	Enqueue(bootcampID string)
}
