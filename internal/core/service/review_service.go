package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// ReviewService implements review CRUD. There is deliberately no one-per-user
// pre-check on create: the unique (bootcamp, user) index is the only limit on
// how many reviews an account may hold, one per bootcamp.
type ReviewService struct {
	repo      ports.ReviewRepository
	bootcamps ports.BootcampRepository
	ratings   ports.RatingEnqueuer
	log       zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, bootcamps ports.BootcampRepository, ratings ports.RatingEnqueuer, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, bootcamps: bootcamps, ratings: ratings, log: log}
}

func (s *ReviewService) List(ctx context.Context, bootcampID string, q ports.ListQuery) ([]*domain.Review, int64, error) {
	return s.repo.List(ctx, bootcampID, q.Normalize())
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReviewService) Add(ctx context.Context, actor *domain.User, bootcampID string, in ports.ReviewInput) (*domain.Review, error) {
	if _, err := s.bootcamps.FindByID(ctx, bootcampID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Review{
		BootcampID: bootcampID,
		UserID:     actor.ID,
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
	})
	if err != nil {
		return nil, err
	}

	s.ratings.Enqueue(bootcampID)
	return created, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *domain.User, id string, update ports.ReviewUpdate) (*domain.Review, error) {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.ratings.Enqueue(updated.BootcampID)
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != actor.ID && !actor.Role.Elevated() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.ratings.Enqueue(r.BootcampID)
	return nil
}

func (s *ReviewService) authorizeOwner(ctx context.Context, actor *domain.User, id string) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != actor.ID && !actor.Role.Elevated() {
		return domain.ErrForbidden
	}
	return nil
}
