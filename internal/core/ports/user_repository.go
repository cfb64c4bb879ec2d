package ports

import (
	"context"
	"time"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// UserUpdate carries a partial user update; empty fields are left unchanged.
type UserUpdate struct {
	Name  string
	Email string
	Role  domain.Role
}

// UserRepository defines persistence for accounts, including the reset-token
// fields that never cross the JSON boundary.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByResetToken matches the stored reset-token hash with an expiry
	// strictly after now. No match yields domain.ErrUserNotFound.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	// List returns a page of users and the total collection count.
	List(ctx context.Context, q ListQuery) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	// SetResetToken stores the hashed token and expiry, bypassing any other
	// field validation (partial update).
	SetResetToken(ctx context.Context, id string, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
