package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// CourseInput carries all data needed to add a course to a bootcamp.
type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
}

// CourseService defines use-case operations for courses.
type CourseService interface {
	List(ctx context.Context, bootcampID string, q ListQuery) ([]*domain.Course, int64, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Add(ctx context.Context, actor *domain.User, bootcampID string, in CourseInput) (*domain.Course, error)
	Update(ctx context.Context, actor *domain.User, id string, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
