package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

func contextWithUser(e *echo.Echo, user *domain.User) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(userContextKey, user)
	}
	return c
}

func TestAuthorize_AllowedRole(t *testing.T) {
	e := echo.New()
	c := contextWithUser(e, &domain.User{ID: "u1", Role: domain.RolePublisher})

	called := false
	handler := Authorize(domain.RolePublisher, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestAuthorize_ForbiddenRole(t *testing.T) {
	e := echo.New()
	c := contextWithUser(e, &domain.User{ID: "u1", Role: domain.RoleUser})

	handler := Authorize(domain.RolePublisher, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	msg, _ := httpErr.Message.(string)
	if !strings.Contains(msg, "user") {
		t.Fatalf("expected offending role in message, got %q", msg)
	}
}

func TestAuthorize_NoUser(t *testing.T) {
	e := echo.New()
	c := contextWithUser(e, nil)

	handler := Authorize(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when Protect did not run, got %v", err)
	}
}
