package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/material-mover/marketplace-api/internal/api/metrics"
)

// AttemptCounter abstracts the fixed-window counter (Redis).
type AttemptCounter interface {
	Incr(ctx context.Context, scope, key string, window time.Duration) (int64, error)
}

// RateLimit rejects clients exceeding limit requests per window, keyed by
// remote IP. Counter errors fail open: losing Redis must not take the
// credential endpoints down with it.
func RateLimit(counter AttemptCounter, log zerolog.Logger, scope string, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			count, err := counter.Incr(c.Request().Context(), scope, c.RealIP(), window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if count > limit {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
