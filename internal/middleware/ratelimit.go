package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LeadRateLimiter limits lead submissions per client IP. A nil store falls
// back to an in-process limiter of perMinute requests. A perMinute of zero or
// less turns limiting off.
func LeadRateLimiter(store echomw.RateLimiterStore, perMinute int, logger *zap.Logger) echo.MiddlewareFunc {
	if perMinute <= 0 {
		logger.Warn("Lead rate limiting disabled", zap.Int("limit", perMinute))
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if store == nil {
		store = echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(perMinute) / 60),
			Burst: perMinute,
		})
	}

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Could not identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if err != nil {
				logger.Warn("Rate limiter store error", zap.Error(err))
			}
			return echo.NewHTTPError(http.StatusTooManyRequests)
		},
	})
}
