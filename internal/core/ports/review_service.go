package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// ReviewInput carries all data needed to submit a review.
type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

// ReviewService defines use-case operations for reviews. Every successful
// mutation schedules a recomputation of the bootcamp's average rating.
type ReviewService interface {
	List(ctx context.Context, bootcampID string, q ListQuery) ([]*domain.Review, int64, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Add(ctx context.Context, actor *domain.User, bootcampID string, in ReviewInput) (*domain.Review, error)
	Update(ctx context.Context, actor *domain.User, id string, update ReviewUpdate) (*domain.Review, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
