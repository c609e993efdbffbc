package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/handler"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/middleware"
	postgresRepo "github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/repository/postgres"
	redisRepo "github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/repository/redis"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/auth"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/config"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/logging"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/metrics"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/postgres"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/redis"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewGLAccountRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	ruleRepo := postgresRepo.NewApprovalRuleRepository(pool)
	requestRepo := postgresRepo.NewApprovalRequestRepository(pool)
	auditRepo := postgresRepo.NewVoidAuditRepository(pool)
	balanceRepo := postgresRepo.NewOpeningBalanceRepository(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	legacyRepo := postgresRepo.NewLegacyRepository(pool)
	reconRepo := postgresRepo.NewReconciliationRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	appMetrics := metrics.New()

	// Initialize use cases
	ruleEngine := usecase.NewRuleEngine(ruleRepo)
	budgetUC := usecase.NewBudgetUseCase(txManager, budgetRepo, accountRepo, requestRepo, ruleEngine, idGen)
	journalUC := usecase.NewJournalUseCase(txManager, accountRepo, journalRepo, requestRepo, auditRepo, ruleEngine, budgetUC, idGen, cache, appMetrics)
	approvalUC := usecase.NewApprovalUseCase(txManager, requestRepo, journalUC, budgetUC, appMetrics)
	chartUC := usecase.NewChartUseCase(txManager, accountRepo, idGen)
	balanceUC := usecase.NewOpeningBalanceUseCase(txManager, accountRepo, journalRepo, balanceRepo, idGen)
	reconUC := usecase.NewReconciliationUseCase(txManager, reconRepo, journalRepo, idGen)
	backfillUC := usecase.NewBackfillUseCase(txManager, legacyRepo, accountRepo, journalRepo, idGen, retrier, slogger.Logger)

	// Seed the default chart of accounts
	if cfg.SeedChart {
		created, err := chartUC.SeedChart(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed chart of accounts")
		}
		if created > 0 {
			log.Info().Int("accounts", created).Msg("seeded chart of accounts")
		}
	}

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(chartUC)
	journalHandler := handler.NewJournalHandler(journalUC, cfg.EnforceBudget)
	approvalHandler := handler.NewApprovalHandler(approvalUC)
	budgetHandler := handler.NewBudgetHandler(budgetUC)
	balanceHandler := handler.NewOpeningBalanceHandler(balanceUC)
	reconHandler := handler.NewReconciliationHandler(reconUC)
	backfillHandler := handler.NewBackfillHandler(backfillUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Authentication is optional. Without it, mutating calls fail with a
	// missing-actor error unless an upstream gateway strips and replaces it.
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	var rateLimiter *middleware.RateLimiter
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		rateLimiter.StartCleanup(time.Hour, stopCleanup)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        accountHandler,
		JournalHandler:        journalHandler,
		ApprovalHandler:       approvalHandler,
		BudgetHandler:         budgetHandler,
		OpeningBalanceHandler: balanceHandler,
		ReconciliationHandler: reconHandler,
		BackfillHandler:       backfillHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		JWTManager:            jwtManager,
		RateLimiter:           rateLimiter,
		Logger:                log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
