package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/handler"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/router"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/application"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/config"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-theatre-ticket-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

func main() {
	// .env は任意
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	if cfg.Server.Env == "production" && cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Fatal("本番環境では JWT_SECRET を設定してください")
	}

	m := metrics.Init()

	// PostgreSQL
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベースに接続できません", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db.DB, cfg.MigrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis はキャッシュとレート制限のみに使うため、なくても起動する
	var (
		cache       application.PerformanceCache
		rateLimiter middleware.RateLimiter
		checks      = []handler.HealthCheck{{Name: "postgres", Check: func(ctx context.Context) error { return postgres.Ping(ctx, db) }}}
	)
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn("Redisに接続できません。キャッシュとレート制限を無効にします", zap.Error(err))
	} else {
		defer redisClient.Close()
		if cfg.Cache.CatalogTTL > 0 {
			cache = redisinfra.NewPerformanceCache(redisClient)
		}
		if cfg.RateLimit.Enabled {
			rateLimiter = redisinfra.NewRateLimiter(redisClient, cfg.RateLimit)
		}
		checks = append(checks, redisCheck(redisClient))
	}

	// リポジトリ
	hallRepo := postgres.NewHallRepository(db)
	playRepo := postgres.NewPlayRepository(db)
	genreRepo := postgres.NewGenreRepository(db)
	actorRepo := postgres.NewActorRepository(db)
	performanceRepo := postgres.NewPerformanceRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	reservationRepo := postgres.NewReservationRepository(db, ticketRepo)
	txManager := postgres.NewTxManager(db)

	// サービス
	catalogService := application.NewCatalogService(hallRepo, playRepo, genreRepo, actorRepo, performanceRepo, cache, cfg.Cache.CatalogTTL, m)
	availabilityService := application.NewAvailabilityService(catalogService, catalogService, performanceRepo, ticketRepo)
	reservationService := application.NewReservationService(txManager, reservationRepo, ticketRepo, catalogService, m)

	e := router.New(router.Handlers{
		Catalog:     handler.NewCatalogHandler(catalogService),
		Performance: handler.NewPerformanceHandler(availabilityService),
		Reservation: handler.NewReservationHandler(reservationService),
		Health:      handler.NewHealthHandler(checks...),
	}, router.Options{
		JWTSecret:   cfg.Auth.JWTSecret,
		RateLimiter: rateLimiter,
		Metrics:     m,
		MetricsAuth: cfg.Metrics,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Graceful shutdown
	go func() {
		logger.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}

func redisCheck(client *goredis.Client) handler.HealthCheck {
	return handler.HealthCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return redisinfra.Ping(ctx, client) },
	}
}
