package ports

import (
	"context"
	"io"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// BootcampInput carries all data needed to create a bootcamp listing.
type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGi      bool
}

// PhotoUpload is a single multipart file destined for a bootcamp listing.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// BootcampService defines use-case operations for bootcamps. Mutations take
// the acting user so the ownership policy can be enforced in one place.
type BootcampService interface {
	Create(ctx context.Context, actor *domain.User, in BootcampInput) (*domain.Bootcamp, error)
	Get(ctx context.Context, id string) (*domain.Bootcamp, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Bootcamp, int64, error)
	// InRadius geocodes zipcode and returns bootcamps within distanceMiles.
	InRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*domain.Bootcamp, error)
	Update(ctx context.Context, actor *domain.User, id string, update BootcampUpdate) (*domain.Bootcamp, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	// UploadPhoto enforces the image MIME and max-size policy, stores the
	// file and persists the generated filename on the listing.
	UploadPhoto(ctx context.Context, actor *domain.User, id string, file PhotoUpload) (string, error)
}
