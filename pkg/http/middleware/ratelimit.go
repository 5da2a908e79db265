package middleware

import (
	"context"
	"net/http"

	applogger "PriceSampler/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests with 429 once the client IP runs out of budget.
// Limiter errors let the request through.
func RateLimit(limiter Limiter, l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				l.Warn("rate limiter unavailable",
					applogger.String("request_id", GetRequestID(c)),
					applogger.Error(err),
				)
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": http.StatusText(http.StatusTooManyRequests),
				})
			}
			return next(c)
		}
	}
}
