package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saasdash/dashboard-api/internal/api/metrics"
)

// Limiter is the counting backend for the fixed-window rate limiter.
type Limiter interface {
	Allow(ctx context.Context, scope, caller string, max int) (bool, error)
}

// RateLimit rejects callers that exceed max requests per window in the given
// scope, keyed by client IP. When the backend is unreachable the request is
// let through; availability wins over strict limiting.
func RateLimit(limiter Limiter, scope string, max int, message string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), scope, c.RealIP(), max)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, message)
			}
			return next(c)
		}
	}
}
