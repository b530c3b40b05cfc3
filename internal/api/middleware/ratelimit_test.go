package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
	redisinfra "github.com/sanosuguru/go-theatre-ticket-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (redisinfra.RateLimitResult, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(redisinfra.RateLimitResult), args.Error(1)
}

func newRateLimitEcho(limiter RateLimiter, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	withIdentity := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			SetIdentity(c, user.Identity{UserID: "user-1", Role: user.RoleCustomer})
			return next(c)
		}
	}
	e.POST("/reservations", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, withIdentity, RateLimit(limiter, m))
	return e
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := new(MockRateLimiter)
	limiter.On("Allow", mock.Anything, "user:user-1:POST /reservations").
		Return(redisinfra.RateLimitResult{Allowed: true, Limit: 20, Remaining: 19}, nil)
	e := newRateLimitEcho(limiter, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reservations", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "20", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "19", rec.Header().Get("X-RateLimit-Remaining"))
	limiter.AssertExpectations(t)
}

func TestRateLimit_Denied(t *testing.T) {
	limiter := new(MockRateLimiter)
	limiter.On("Allow", mock.Anything, mock.Anything).
		Return(redisinfra.RateLimitResult{Allowed: false, Limit: 20, RetryAfter: 1500 * time.Millisecond}, nil)
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	e := newRateLimitEcho(limiter, m)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reservations", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitedTotal))
}

func TestRateLimit_FailOpen(t *testing.T) {
	limiter := new(MockRateLimiter)
	limiter.On("Allow", mock.Anything, mock.Anything).
		Return(redisinfra.RateLimitResult{}, errors.New("connection refused"))
	e := newRateLimitEcho(limiter, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reservations", nil))

	// Redis 障害時は通す
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimitKey_Anonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/health")

	assert.Equal(t, "ip:192.0.2.1:GET /health", rateLimitKey(c))
}
