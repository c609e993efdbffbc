package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/handler"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/middleware"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/auth"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	JournalHandler        *handler.JournalHandler
	ApprovalHandler       *handler.ApprovalHandler
	BudgetHandler         *handler.BudgetHandler
	OpeningBalanceHandler *handler.OpeningBalanceHandler
	ReconciliationHandler *handler.ReconciliationHandler
	BackfillHandler       *handler.BackfillHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	JWTManager            *auth.JWTManager
	RateLimiter           *middleware.RateLimiter
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Rate limiting runs after auth so it can key on the actor.
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{code}", cfg.AccountHandler.Get)
			r.Put("/{code}", cfg.AccountHandler.Update)
			r.Post("/{code}/deactivate", cfg.AccountHandler.Deactivate)
			r.Post("/{code}/reactivate", cfg.AccountHandler.Reactivate)
			r.Get("/{code}/ledger", cfg.JournalHandler.GeneralLedger)
		})

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/voided", cfg.JournalHandler.ListVoided)
			r.Get("/audits", cfg.JournalHandler.ListAudits)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Post("/{id}/void", cfg.JournalHandler.Void)
			r.Get("/{id}/audit", cfg.JournalHandler.Audit)
			r.Post("/{id}/recovery", cfg.JournalHandler.RecordRecovery)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/trial-balance", cfg.JournalHandler.TrialBalance)
			r.Get("/balance-sheet", cfg.JournalHandler.BalanceSheet)
		})

		// Approval workflow. The queue and review endpoints are for
		// approvers; the use case enforces the per-request required role.
		r.Route("/approvals", func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.RequireRole(domain.RoleBursar))
			}

			r.Get("/queue", cfg.ApprovalHandler.Queue)
			r.Get("/{id}", cfg.ApprovalHandler.Get)
			r.Post("/{id}/approve", cfg.ApprovalHandler.Approve)
			r.Post("/{id}/reject", cfg.ApprovalHandler.Reject)
			r.Post("/{id}/cancel", cfg.ApprovalHandler.Cancel)
		})

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Put("/", cfg.BudgetHandler.Set)
			r.Get("/", cfg.BudgetHandler.Get)
			r.Post("/validate", cfg.BudgetHandler.Validate)
		})

		// Opening balances
		r.Route("/opening-balances", func(r chi.Router) {
			r.Post("/students", cfg.OpeningBalanceHandler.ImportStudents)
			r.Post("/gl", cfg.OpeningBalanceHandler.ImportGL)
			r.Post("/verify/{yearID}", cfg.OpeningBalanceHandler.Verify)
		})

		// Bank reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Post("/statements", cfg.ReconciliationHandler.ImportStatement)
			r.Get("/unmatched", cfg.ReconciliationHandler.Unmatched)
			r.Post("/statements/{id}/run", cfg.ReconciliationHandler.Run)
			r.Post("/statements/{id}/adjustments", cfg.ReconciliationHandler.RecordAdjustment)
			r.Get("/lines/{id}", cfg.ReconciliationHandler.GetLine)
			r.Post("/lines/{id}/match", cfg.ReconciliationHandler.Match)
			r.Post("/lines/{id}/unmatch", cfg.ReconciliationHandler.Unmatch)
		})

		// Legacy backfill
		r.Route("/backfill", func(r chi.Router) {
			r.Post("/run", cfg.BackfillHandler.Run)
			r.Get("/status", cfg.BackfillHandler.Status)
		})
	})

	return r
}
