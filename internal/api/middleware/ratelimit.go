package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	redisinfra "github.com/sanosuguru/go-theatre-ticket-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

// RateLimiter はキーごとのレート制限
type RateLimiter interface {
	Allow(ctx context.Context, key string) (redisinfra.RateLimitResult, error)
}

// RateLimit はユーザー（未認証ならIP）とルートごとにリクエストを制限する
// Redis の障害時は制限せずに通す
func RateLimit(limiter RateLimiter, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateLimitKey(c)

			res, err := limiter.Allow(ctx, key)
			if err != nil {
				logger.FromContext(ctx).Warn("レート制限の判定に失敗", zap.String("key", key), zap.Error(err))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				secs := int(math.Ceil(res.RetryAfter.Seconds()))
				h.Set("Retry-After", strconv.Itoa(secs))
				if m != nil {
					m.RateLimitedTotal.Inc()
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "リクエストが多すぎます")
			}
			return next(c)
		}
	}
}

func rateLimitKey(c echo.Context) string {
	route := c.Request().Method + " " + c.Path()
	if identity, ok := IdentityFrom(c); ok {
		return "user:" + identity.UserID + ":" + route
	}
	return "ip:" + c.RealIP() + ":" + route
}
