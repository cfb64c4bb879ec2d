package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
)

// Limiter abstracts the shared request counter (Redis).
type Limiter interface {
	// Allow records one request against the process-wide window and reports
	// whether it is within the limit.
	Allow(ctx context.Context) (bool, error)
}

// RateLimit applies one counter across all requests, with no per-identity
// partitioning. When the counter store is unreachable the request is allowed
// through with a logged warning.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context())
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitRejectedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}
