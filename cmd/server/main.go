package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gotill/internal/adapter/http"
	"github.com/iho/gotill/internal/adapter/http/handler"
	"github.com/iho/gotill/internal/adapter/http/middleware"
	"github.com/iho/gotill/internal/adapter/report/xlsx"
	postgresRepo "github.com/iho/gotill/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gotill/internal/adapter/repository/redis"
	"github.com/iho/gotill/internal/infrastructure/auth"
	"github.com/iho/gotill/internal/infrastructure/config"
	"github.com/iho/gotill/internal/infrastructure/eventpublisher"
	"github.com/iho/gotill/internal/infrastructure/logger"
	"github.com/iho/gotill/internal/infrastructure/metrics"
	"github.com/iho/gotill/internal/infrastructure/redis"
	"github.com/iho/gotill/internal/infrastructure/tracing"
	"github.com/iho/gotill/internal/usecase"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.OTELServiceName,
	})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}
	appLogger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		ServiceName: cfg.OTELServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()
	logger.Info().Str("driver", store.name).Msg("storage ready")

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClientWithConfig(ctx, redis.Config{
			URL:      cfg.RedisURL,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info().Msg("connected to redis")
	}

	m := metrics.New()
	wired, err := newApp(cfg, logger, store, redisClient, m)
	if err != nil {
		return err
	}

	go wired.limiter.CleanupLoop(ctx, limiterCleanupInterval)

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: store.outbox,
		Publisher:  selectPublisher(cfg, redisClient, logger),
		Metrics:    m,
		Logger:     &logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      wired.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// app is the wired HTTP surface.
type app struct {
	handler http.Handler
	limiter *middleware.RateLimiter
}

// newApp wires use cases and handlers over store. redisClient may be nil, in
// which case caching, idempotent replay and the sales feed are disabled.
func newApp(
	cfg *config.Config,
	logger zerolog.Logger,
	store *storage,
	redisClient *goredis.Client,
	m *metrics.Metrics,
) (*app, error) {
	policy, err := cfg.DiscrepancyPolicy()
	if err != nil {
		return nil, err
	}

	gate := auth.NewRoleGate(nil)
	opts := []usecase.SessionOption{
		usecase.WithOutbox(store.outbox),
		usecase.WithAudit(store.audit),
		usecase.WithRetrier(store.retrier),
		usecase.WithDiscrepancyPolicy(policy),
		usecase.WithMetrics(m),
		usecase.WithLogger(logger),
	}

	var idempotency usecase.IdempotencyStore
	checks := []handler.HealthCheck{{Name: store.name, Ping: store.ping}}
	if redisClient != nil {
		opts = append(opts,
			usecase.WithSessionCache(redisRepo.NewCache(redisClient), cfg.SessionCacheTTL),
			usecase.WithSalesAggregator(redisRepo.NewSalesReader(redisClient)),
		)
		idempotency = redisRepo.NewIdempotencyStore(redisClient)
		checks = append(checks, handler.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	sessionUC := usecase.NewSessionUseCase(
		store.txManager, store.sessions, store.operations, gate, postgresRepo.NewULIDGenerator(), opts...)
	ledgerUC := usecase.NewLedgerUseCase(store.sessions, store.operations, store.ledger, gate, m, logger)
	reportUC := usecase.NewReportUseCase(store.sessions, store.operations, gate, policy)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TillHandler:      handler.NewTillHandler(sessionUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		ReportHandler:    handler.NewReportHandler(reportUC, xlsx.NewExporter(nil), xlsx.ContentType),
		HealthHandler:    handler.NewHealthHandler(checks...),
		TokenVerifier:    tokenVerifier(cfg),
		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      limiter,
		Metrics:          m,
		MetricsHandler:   promhttp.Handler(),
		Logger:           &logger,
	})

	return &app{handler: router, limiter: limiter}, nil
}

// tokenVerifier returns nil when bearer auth is disabled so the router falls
// back to actor headers.
func tokenVerifier(cfg *config.Config) middleware.TokenVerifier {
	if !cfg.AuthEnabled {
		return nil
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
}

func selectPublisher(cfg *config.Config, client *goredis.Client, logger zerolog.Logger) eventpublisher.Publisher {
	if cfg.EventsChannel != "" && client != nil {
		return eventpublisher.NewRedisPublisher(client, cfg.EventsChannel)
	}
	return eventpublisher.NewLogPublisher(logger)
}
