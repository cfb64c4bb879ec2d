package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// RatingAggregator recomputes a bootcamp's average rating from its reviews.
// It runs off the request path; a failure is logged and never propagates to
// the review write that triggered it.
type RatingAggregator struct {
	reviews   ports.ReviewRepository
	bootcamps ports.BootcampRepository
	log       zerolog.Logger
}

func NewRatingAggregator(reviews ports.ReviewRepository, bootcamps ports.BootcampRepository, log zerolog.Logger) *RatingAggregator {
	return &RatingAggregator{reviews: reviews, bootcamps: bootcamps, log: log}
}

// Recompute aggregates the mean review rating for bootcampID and persists it.
// When the last review has been deleted the average is unset rather than left
// stale.
func (a *RatingAggregator) Recompute(ctx context.Context, bootcampID string) error {
	start := time.Now()

	avg, err := a.reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		metrics.RatingRecomputesTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := a.bootcamps.SetAverageRating(ctx, bootcampID, avg); err != nil {
		metrics.RatingRecomputesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RatingRecomputesTotal.WithLabelValues("ok").Inc()
	metrics.RatingRecomputeDuration.Observe(time.Since(start).Seconds())

	evt := a.log.Debug().Str("bootcamp_id", bootcampID)
	if avg != nil {
		evt = evt.Float64("average_rating", *avg)
	}
	evt.Msg("average rating recomputed")
	return nil
}
