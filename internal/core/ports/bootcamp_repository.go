package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// BootcampUpdate carries a partial bootcamp update; nil pointers and empty
// fields are left unchanged.
type BootcampUpdate struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

// BootcampRepository defines persistence for bootcamp listings.
type BootcampRepository interface {
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	FindByID(ctx context.Context, id string) (*domain.Bootcamp, error)
	// FindByUser returns any bootcamp owned by userID, or
	// domain.ErrBootcampNotFound when the user owns none.
	FindByUser(ctx context.Context, userID string) (*domain.Bootcamp, error)
	// List returns a page of bootcamps and the total collection count.
	List(ctx context.Context, q ListQuery) ([]*domain.Bootcamp, int64, error)
	// FindWithinRadius runs a $centerSphere query; radiusRadians is the search
	// radius divided by the Earth's radius.
	FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]*domain.Bootcamp, error)
	Update(ctx context.Context, id string, update BootcampUpdate) (*domain.Bootcamp, error)
	UpdatePhoto(ctx context.Context, id string, filename string) error
	// SetAverageRating persists the derived rating; nil unsets the field.
	SetAverageRating(ctx context.Context, id string, avg *float64) error
	Delete(ctx context.Context, id string) error
}
