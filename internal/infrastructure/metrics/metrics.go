package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Journal metrics
	EntriesPosted   *prometheus.CounterVec
	EntriesVoided   prometheus.Counter
	EntryAmount     prometheus.Histogram
	PostingDuration prometheus.Histogram
	PostingErrors   *prometheus.CounterVec

	// Approval metrics
	ApprovalsRequested *prometheus.CounterVec
	ApprovalsReviewed  *prometheus.CounterVec
	ApprovalQueueDepth *prometheus.GaugeVec

	// Reconciliation metrics
	StatementsImported  prometheus.Counter
	LinesMatched        prometheus.Counter
	ReconciliationRuns  *prometheus.CounterVec
	ReconciliationDelta prometheus.Histogram

	// Backfill metrics
	BackfillProcessed prometheus.Counter
	BackfillSkipped   prometheus.Counter
	BackfillUnmapped  prometheus.Counter

	// Budget metrics
	BudgetChecks *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Journal metrics
		EntriesPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_journal_entries_posted_total",
				Help: "Total number of journal entries posted",
			},
			[]string{"entry_type"},
		),
		EntriesVoided: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolerp_journal_entries_voided_total",
			Help: "Total number of journal entries voided",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "schoolerp_journal_entry_amount",
			Help:    "Journal entry amounts in minor units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "schoolerp_journal_posting_duration_seconds",
			Help:    "Duration of journal posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_journal_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),

		// Approval metrics
		ApprovalsRequested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_approvals_requested_total",
				Help: "Total approval requests created",
			},
			[]string{"action_type", "required_role"},
		),
		ApprovalsReviewed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_approvals_reviewed_total",
				Help: "Total approval requests reviewed",
			},
			[]string{"status"},
		),
		ApprovalQueueDepth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schoolerp_approval_queue_depth",
				Help: "Pending approval requests by required role",
			},
			[]string{"required_role"},
		),

		// Reconciliation metrics
		StatementsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolerp_bank_statements_imported_total",
			Help: "Total bank statements imported",
		}),
		LinesMatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolerp_statement_lines_matched_total",
			Help: "Total statement lines matched to journal entries",
		}),
		ReconciliationRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_reconciliation_runs_total",
				Help: "Total reconciliation runs by outcome",
			},
			[]string{"balanced"},
		),
		ReconciliationDelta: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "schoolerp_reconciliation_delta",
			Help:    "Absolute reconciliation variance in minor units",
			Buckets: []float64{0, 100, 1000, 10000, 100000},
		}),

		// Backfill metrics
		BackfillProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolerp_backfill_processed_total",
			Help: "Total legacy transactions backfilled",
		}),
		BackfillSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolerp_backfill_skipped_total",
			Help: "Total legacy transactions skipped as already processed",
		}),
		BackfillUnmapped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schoolerp_backfill_unmapped_total",
			Help: "Total legacy transactions with no account mapping",
		}),

		// Budget metrics
		BudgetChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_budget_checks_total",
				Help: "Total budget validations by outcome",
			},
			[]string{"outcome"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schoolerp_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schoolerp_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "schoolerp_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolerp_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
