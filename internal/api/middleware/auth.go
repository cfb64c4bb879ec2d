package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// TokenCookie is the cookie carrying the session token when no Authorization
// header is present.
const TokenCookie = "token"

// userContextKey is the echo context key the resolved user is stored under.
const userContextKey = "user"

// TokenVerifier validates a session token and returns the embedded user ID.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// UserFinder resolves a user ID to its account record.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Protect extracts the session token from the Authorization header or the
// token cookie, verifies it, resolves the identity with exactly one lookup
// and stores the user on the request context.
func Protect(verifier TokenVerifier, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Protect, or nil on an unprotected
// route.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
