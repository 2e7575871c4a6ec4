package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gotill/internal/adapter/http/handler"
	"github.com/iho/gotill/internal/adapter/http/middleware"
	"github.com/iho/gotill/internal/infrastructure/metrics"
	"github.com/iho/gotill/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TillHandler   *handler.TillHandler
	LedgerHandler *handler.LedgerHandler
	ReportHandler *handler.ReportHandler
	HealthHandler *handler.HealthHandler

	// TokenVerifier enables bearer token auth. When nil, the actor is read
	// from the X-Actor-ID and X-Actor-Role headers.
	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           *zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	}
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
		} else {
			r.Use(middleware.HeaderActor)
		}
		r.Use(middleware.RequestMeta)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Get("/denominations", handler.ListDenominations)

		// Tills
		r.Route("/tills", func(r chi.Router) {
			r.Post("/", cfg.TillHandler.Open)
			r.Get("/", cfg.ReportHandler.ListSessions)
			r.Get("/{id}", cfg.TillHandler.Get)
			r.Post("/{id}/withdrawals", cfg.TillHandler.Withdraw)
			r.Post("/{id}/consumptions", cfg.TillHandler.InHouseConsumption)
			r.Post("/{id}/refunds", cfg.TillHandler.Refund)
			r.Post("/{id}/recounts", cfg.TillHandler.Recount)
			r.Post("/{id}/close", cfg.TillHandler.Close)
			r.Get("/{id}/operations", cfg.LedgerHandler.SessionOperations)
			r.Get("/{id}/verify", cfg.LedgerHandler.Verify)
			r.Get("/{id}/report", cfg.ReportHandler.ShiftReport)
		})

		// Points of sale
		r.Route("/points-of-sale/{posId}", func(r chi.Router) {
			r.Get("/open", cfg.TillHandler.GetOpen)
			r.Get("/operations", cfg.LedgerHandler.PointOfSaleOperations)
			r.Get("/sessions/export", cfg.ReportHandler.Export)
		})

		r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
	})

	return r
}
