package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// ReviewUpdate carries a partial review update.
type ReviewUpdate struct {
	Title  string
	Text   string
	Rating *int
}

// ReviewRepository defines persistence for reviews. The collection carries a
// unique compound index on (bootcamp, user); Create surfaces a collision as
// domain.ErrDuplicateReview.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	// List returns a page of reviews and the total matching count, scoped to
	// one bootcamp when bootcampID is non-empty.
	List(ctx context.Context, bootcampID string, q ListQuery) ([]*domain.Review, int64, error)
	Update(ctx context.Context, id string, update ReviewUpdate) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
	// AverageRating aggregates the mean rating across a bootcamp's reviews.
	// It returns nil when the bootcamp has no reviews.
	AverageRating(ctx context.Context, bootcampID string) (*float64, error)
}
