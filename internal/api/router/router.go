// Package router は HTTP ルーティングとミドルウェアの組み立てを行う
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/handler"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/config"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

// Handlers はルーターに登録するハンドラー群
type Handlers struct {
	Catalog     *handler.CatalogHandler
	Performance *handler.PerformanceHandler
	Reservation *handler.ReservationHandler
	Health      *handler.HealthHandler
}

// Options はルーターの設定
type Options struct {
	JWTSecret string

	// RateLimiter が nil なら予約作成のレート制限を行わない
	RateLimiter middleware.RateLimiter

	// Metrics が nil なら /metrics を公開しない
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	MetricsAuth config.MetricsConfig
}

// New はルーティング済みの Echo インスタンスを返す
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Validator = api.NewValidator()

	middleware.SetupMiddleware(e)

	if opts.Metrics != nil {
		e.Use(middleware.PrometheusMiddleware(opts.Metrics))
		gatherer := opts.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
			middleware.MetricsBasicAuth(opts.MetricsAuth))
	}

	e.GET("/health", h.Health.Check)

	v1 := e.Group("/api/v1", middleware.JWTAuth(opts.JWTSecret))
	admin := middleware.RequireAdmin()

	// カタログ
	v1.POST("/halls", h.Catalog.CreateHall, admin)
	v1.GET("/halls", h.Catalog.ListHalls)
	v1.POST("/genres", h.Catalog.CreateGenre, admin)
	v1.GET("/genres", h.Catalog.ListGenres)
	v1.POST("/actors", h.Catalog.CreateActor, admin)
	v1.GET("/actors", h.Catalog.ListActors)
	v1.POST("/plays", h.Catalog.CreatePlay, admin)
	v1.GET("/plays", h.Catalog.ListPlays)
	v1.GET("/plays/:id", h.Catalog.GetPlay)
	v1.POST("/performances", h.Catalog.CreatePerformance, admin)

	// 公演と空席数
	v1.GET("/performances", h.Performance.List)
	v1.GET("/performances/:id", h.Performance.GetByID)
	v1.GET("/performances/:id/availability", h.Performance.Availability)

	// 予約
	var createMW []echo.MiddlewareFunc
	if opts.RateLimiter != nil {
		createMW = append(createMW, middleware.RateLimit(opts.RateLimiter, opts.Metrics))
	}
	v1.POST("/reservations", h.Reservation.Create, createMW...)
	v1.GET("/reservations", h.Reservation.List)
	v1.GET("/reservations/:id", h.Reservation.GetByID)
	v1.DELETE("/reservations/:id", h.Reservation.Delete)

	return e
}
