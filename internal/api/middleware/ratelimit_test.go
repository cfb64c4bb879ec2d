package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allow bool
	err   error
	calls int
}

func (l *stubLimiter) Allow(_ context.Context) (bool, error) {
	l.calls++
	if l.err != nil {
		return false, l.err
	}
	return l.allow, nil
}

func limiterContext(e *echo.Echo) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestRateLimit_WithinLimit(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{allow: true}

	called := false
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(limiterContext(e)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	e := echo.New()
	handler := RateLimit(&stubLimiter{allow: false}, zerolog.Nop())(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(limiterContext(e))
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimit_StoreFailureFailsOpen(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{err: errors.New("redis down")}

	called := false
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(limiterContext(e)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("request must pass when the counter store is unreachable")
	}
}
