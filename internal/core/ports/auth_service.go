package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// RegisterInput carries the public registration fields. Role defaults to
// domain.RoleUser when empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService implements the session-token and reset-token lifecycles.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// VerifyToken validates signature and expiry and returns the embedded
	// user ID. Any failure yields domain.ErrUnauthenticated.
	VerifyToken(token string) (string, error)
	UpdateDetails(ctx context.Context, userID string, name, email string) (*domain.User, error)
	// UpdatePassword verifies the current password before setting the new one
	// and returns a fresh session token.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error)
	// ForgotPassword generates a one-time reset token, stores only its hash,
	// and emails a reset link built from baseURL.
	ForgotPassword(ctx context.Context, email, baseURL string) error
	// ResetPassword consumes a plaintext reset token and sets the new
	// password, returning the user and a fresh session token.
	ResetPassword(ctx context.Context, plaintextToken, newPassword string) (*domain.User, string, error)
}
