package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/handler"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/config"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

const secret = "router-test-secret"

// サービスに到達する前に拒否されるケースだけを検証する
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(Handlers{
		Catalog:     handler.NewCatalogHandler(nil),
		Performance: handler.NewPerformanceHandler(nil),
		Reservation: handler.NewReservationHandler(nil),
		Health:      handler.NewHealthHandler(),
	}, Options{
		JWTSecret:   secret,
		Metrics:     metrics.NewWithRegistry(reg),
		Gatherer:    reg,
		MetricsAuth: config.MetricsConfig{User: "prom", Password: "pass"},
	})
}

func bearer(t *testing.T, identity user.Identity) string {
	t.Helper()
	token, err := middleware.IssueToken(secret, identity, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)
	customer := user.Identity{UserID: "user-1", Role: user.RoleCustomer}

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		basic  bool
		want   int
	}{
		{"ヘルスチェックは認証不要", http.MethodGet, "/health", "", false, http.StatusOK},
		{"トークンなしのAPIは401", http.MethodGet, "/api/v1/halls", "", false, http.StatusUnauthorized},
		{"不正なトークンは401", http.MethodGet, "/api/v1/reservations", "Bearer invalid", false, http.StatusUnauthorized},
		{"一般ユーザーのホール登録は403", http.MethodPost, "/api/v1/halls", bearer(t, customer), false, http.StatusForbidden},
		{"一般ユーザーの演目登録は403", http.MethodPost, "/api/v1/plays", bearer(t, customer), false, http.StatusForbidden},
		{"一般ユーザーのジャンル登録は403", http.MethodPost, "/api/v1/genres", bearer(t, customer), false, http.StatusForbidden},
		{"一般ユーザーの俳優登録は403", http.MethodPost, "/api/v1/actors", bearer(t, customer), false, http.StatusForbidden},
		{"一般ユーザーの公演登録は403", http.MethodPost, "/api/v1/performances", bearer(t, customer), false, http.StatusForbidden},
		{"メトリクスは認証なしで401", http.MethodGet, "/metrics", "", false, http.StatusUnauthorized},
		{"メトリクスはBasic認証で取得できる", http.MethodGet, "/metrics", "", true, http.StatusOK},
		{"存在しないルートは404", http.MethodGet, "/unknown", "", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			if tt.basic {
				req.SetBasicAuth("prom", "pass")
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_MetricsExposeHTTPRequests(t *testing.T) {
	r := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prom", "pass")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/health"`)
}
