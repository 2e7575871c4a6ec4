package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Till command metrics
	TillCommands        *prometheus.CounterVec
	TillCommandErrors   *prometheus.CounterVec
	TillCommandDuration *prometheus.HistogramVec
	TillConflictRetries prometheus.Counter
	SessionsOpen        prometheus.Gauge

	// Reconciliation metrics
	CashMovementAmount    *prometheus.HistogramVec
	CloseDiscrepancy      *prometheus.HistogramVec
	LedgerInconsistencies prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates all metrics on the default Prometheus registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TillCommands: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_commands_total",
				Help: "Total till commands applied by command",
			},
			[]string{"command"},
		),
		TillCommandErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_command_errors_total",
				Help: "Total rejected till commands by command and error type",
			},
			[]string{"command", "error_type"},
		),
		TillCommandDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotill_command_duration_seconds",
				Help:    "Duration of till commands",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		TillConflictRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "gotill_conflict_retries_total",
			Help: "Total command attempts recomputed after a concurrent write",
		}),
		SessionsOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "gotill_sessions_open",
			Help: "Sessions opened minus sessions closed since process start",
		}),

		CashMovementAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotill_cash_movement_amount",
				Help:    "Amounts of withdrawals, consumptions and refunds",
				Buckets: []float64{1, 5, 10, 20, 50, 100, 500, 1000, 5000},
			},
			[]string{"kind"},
		),
		CloseDiscrepancy: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotill_close_discrepancy_abs",
				Help:    "Absolute discrepancy recorded at close",
				Buckets: []float64{0.01, 0.5, 1, 5, 10, 50, 100, 500},
			},
			[]string{"classification"},
		),
		LedgerInconsistencies: f.NewCounter(prometheus.CounterOpts{
			Name: "gotill_ledger_inconsistencies_total",
			Help: "Ledger replays that did not reconcile with the session snapshot",
		}),

		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotill_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_events_published_total",
				Help: "Outbox events delivered by event type",
			},
			[]string{"event_type"},
		),
		EventsFailed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_events_failed_total",
				Help: "Outbox events that failed to deliver by event type",
			},
			[]string{"event_type"},
		),

		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		AuditLogsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotill_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
