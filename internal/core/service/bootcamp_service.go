package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// earthRadiusMiles converts a distance in miles to radians for $centerSphere.
const earthRadiusMiles = 3963.0

// BootcampService implements listing CRUD with the resource-ownership policy.
type BootcampService struct {
	repo     ports.BootcampRepository
	geocoder ports.Geocoder
	photos   ports.PhotoStore
	maxPhoto int64
	log      zerolog.Logger
}

func NewBootcampService(repo ports.BootcampRepository, geocoder ports.Geocoder, photos ports.PhotoStore, maxPhotoBytes int64, log zerolog.Logger) *BootcampService {
	return &BootcampService{
		repo:     repo,
		geocoder: geocoder,
		photos:   photos,
		maxPhoto: maxPhotoBytes,
		log:      log,
	}
}

// Create inserts a new listing owned by actor. A non-admin may own at most
// one bootcamp; the pre-check below is racy under concurrent requests and the
// store's single-document writes are the real guarantee.
func (s *BootcampService) Create(ctx context.Context, actor *domain.User, in ports.BootcampInput) (*domain.Bootcamp, error) {
	if !actor.Role.Elevated() {
		if _, err := s.repo.FindByUser(ctx, actor.ID); err == nil {
			return nil, domain.ErrOwnershipLimit
		} else if !errors.Is(err, domain.ErrBootcampNotFound) {
			return nil, err
		}
	}

	b := &domain.Bootcamp{
		UserID:        actor.ID,
		Name:          in.Name,
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
	}

	if in.Address != "" {
		if loc, err := s.geocoder.Geocode(ctx, in.Address); err != nil {
			// The address stays on the document; radius search simply won't
			// find this listing until it is updated.
			s.log.Warn().Err(err).Str("address", in.Address).Msg("geocoding failed")
		} else {
			b.Location = &domain.Location{
				Type:             "Point",
				Coordinates:      []float64{loc.Lng, loc.Lat},
				FormattedAddress: loc.FormattedAddress,
				City:             loc.City,
				Zipcode:          loc.Zipcode,
				Country:          loc.Country,
			}
		}
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("bootcamp_id", created.ID).Str("user_id", actor.ID).Msg("bootcamp created")
	return created, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BootcampService) List(ctx context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
	return s.repo.List(ctx, q.Normalize())
}

// InRadius geocodes the zipcode and returns all bootcamps whose location lies
// within distanceMiles of it.
func (s *BootcampService) InRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*domain.Bootcamp, error) {
	loc, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode %q: %v", domain.ErrUpstream, zipcode, err)
	}

	return s.repo.FindWithinRadius(ctx, loc.Lng, loc.Lat, distanceMiles/earthRadiusMiles)
}

func (s *BootcampService) Update(ctx context.Context, actor *domain.User, id string, update ports.BootcampUpdate) (*domain.Bootcamp, error) {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, update)
}

func (s *BootcampService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("bootcamp_id", id).Str("user_id", actor.ID).Msg("bootcamp deleted")
	return nil
}

// UploadPhoto validates the file against the upload policy, writes it to the
// photo store as photo_<id><ext> and persists the filename on the listing.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor *domain.User, id string, file ports.PhotoUpload) (string, error) {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return "", err
	}

	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", domain.ErrInvalidUpload)
	}
	if s.maxPhoto > 0 && file.Size > s.maxPhoto {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidUpload, s.maxPhoto)
	}

	name := fmt.Sprintf("photo_%s%s", id, filepath.Ext(file.Filename))
	if err := s.photos.Save(ctx, name, file.Content); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	if err := s.repo.UpdatePhoto(ctx, id, name); err != nil {
		return "", err
	}

	return name, nil
}

// authorizeOwner loads the listing and rejects mutation by anyone other than
// its owner or an elevated role.
func (s *BootcampService) authorizeOwner(ctx context.Context, actor *domain.User, id string) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != actor.ID && !actor.Role.Elevated() {
		return domain.ErrForbidden
	}
	return nil
}
