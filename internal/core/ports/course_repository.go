package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// CourseUpdate carries a partial course update.
type CourseUpdate struct {
	Title                string
	Description          string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         string
	ScholarshipAvailable *bool
}

// CourseRepository defines persistence for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// FindByUser returns any course owned by userID, or
	// domain.ErrCourseNotFound when the user owns none.
	FindByUser(ctx context.Context, userID string) (*domain.Course, error)
	// List returns a page of courses and the total matching count, scoped to
	// one bootcamp when bootcampID is non-empty.
	List(ctx context.Context, bootcampID string, q ListQuery) ([]*domain.Course, int64, error)
	Update(ctx context.Context, id string, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
