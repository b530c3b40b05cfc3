package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.ReservationsTotal)
	assert.NotNil(t, m.ReservationDuration)
	assert.NotNil(t, m.TicketsBookedTotal)
	assert.NotNil(t, m.TicketsReleasedTotal)
	assert.NotNil(t, m.CatalogCacheRequests)
	assert.NotNil(t, m.RateLimitedTotal)
}

func TestHTTPRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/performances", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "201").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "409").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "http_requests_total metric not found")
}

func TestReservationsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	// 予約の結果ごとにカウント
	m.ReservationsTotal.WithLabelValues(StatusSuccess).Inc()
	m.ReservationsTotal.WithLabelValues(StatusSuccess).Inc()
	m.ReservationsTotal.WithLabelValues(StatusConflict).Inc()
	m.ReservationsTotal.WithLabelValues(StatusInvalid).Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ReservationsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReservationsTotal.WithLabelValues(StatusConflict)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.ReservationsTotal))
}

func TestTicketCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.TicketsBookedTotal.Add(3)
	m.TicketsReleasedTotal.Add(2)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.TicketsBookedTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.TicketsReleasedTotal))
}

func TestCatalogCacheRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.CatalogCacheRequests.WithLabelValues("hit").Inc()
	m.CatalogCacheRequests.WithLabelValues("miss").Inc()
	m.CatalogCacheRequests.WithLabelValues("hit").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CatalogCacheRequests.WithLabelValues("hit")))
}

func TestHTTPRequestDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	// レイテンシを観測
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/v1/performances").Observe(0.025)
	m.HTTPRequestDuration.WithLabelValues("POST", "/api/v1/reservations").Observe(0.150)
	m.ReservationDuration.WithLabelValues(StatusSuccess).Observe(0.012)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["http_request_duration_seconds"])
	assert.True(t, names["reservation_duration_seconds"])
}

func TestNewWithRegistry_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)

	assert.Panics(t, func() {
		NewWithRegistry(reg)
	})
}

func TestInit_CreatesDefaultMetrics(t *testing.T) {
	// 既存のdefaultMetricsをバックアップ
	oldMetrics := defaultMetrics
	defer func() { defaultMetrics = oldMetrics }()

	// 注意: Initを呼ぶとデフォルトレジストリに登録するため、テストでは直接セット
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	defaultMetrics = m

	got := Get()
	assert.NotNil(t, got)
	assert.Equal(t, m, got)
}
