package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// CourseService implements course CRUD with the same ownership policy as
// bootcamps.
type CourseService struct {
	repo      ports.CourseRepository
	bootcamps ports.BootcampRepository
	log       zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, bootcamps ports.BootcampRepository, log zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, bootcamps: bootcamps, log: log}
}

func (s *CourseService) List(ctx context.Context, bootcampID string, q ports.ListQuery) ([]*domain.Course, int64, error) {
	return s.repo.List(ctx, bootcampID, q.Normalize())
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

// Add creates a course under bootcampID. The target bootcamp must exist, and
// a non-admin may own at most one course.
func (s *CourseService) Add(ctx context.Context, actor *domain.User, bootcampID string, in ports.CourseInput) (*domain.Course, error) {
	if _, err := s.bootcamps.FindByID(ctx, bootcampID); err != nil {
		return nil, err
	}

	if !actor.Role.Elevated() {
		if _, err := s.repo.FindByUser(ctx, actor.ID); err == nil {
			return nil, domain.ErrOwnershipLimit
		} else if !errors.Is(err, domain.ErrCourseNotFound) {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &domain.Course{
		BootcampID:           bootcampID,
		UserID:               actor.ID,
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", created.ID).Str("bootcamp_id", bootcampID).Str("user_id", actor.ID).Msg("course added")
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, actor *domain.User, id string, update ports.CourseUpdate) (*domain.Course, error) {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, update)
}

func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *CourseService) authorizeOwner(ctx context.Context, actor *domain.User, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != actor.ID && !actor.Role.Elevated() {
		return domain.ErrForbidden
	}
	return nil
}
