package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/handler"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/repository/postgres"
	redisrepo "github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/repository/redis"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/auth"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/logging"
	infraredis "github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/redis"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
	"github.com/Lameck1/mwingi-school-erp-sub010/tests/testutil"
)

// newTestRouter wires the full stack against the test database, seeds the
// chart, and returns the router.
func newTestRouter(t *testing.T, ctx context.Context, testDB *testutil.TestDB) (http.Handler, *goredis.Client) {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewGLAccountRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	ruleRepo := postgres.NewApprovalRuleRepository(pool)
	requestRepo := postgres.NewApprovalRequestRepository(pool)
	auditRepo := postgres.NewVoidAuditRepository(pool)
	balanceRepo := postgres.NewOpeningBalanceRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	legacyRepo := postgres.NewLegacyRepository(pool)
	reconRepo := postgres.NewReconciliationRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()
	cache := redisrepo.NewCache(redisClient)

	slogger := logging.New(logging.ParseLevel("error"), "text")

	ruleEngine := usecase.NewRuleEngine(ruleRepo)
	budgetUC := usecase.NewBudgetUseCase(txManager, budgetRepo, accountRepo, requestRepo, ruleEngine, idGen)
	journalUC := usecase.NewJournalUseCase(txManager, accountRepo, journalRepo, requestRepo, auditRepo, ruleEngine, budgetUC, idGen, cache, nil)
	approvalUC := usecase.NewApprovalUseCase(txManager, requestRepo, journalUC, budgetUC, nil)
	chartUC := usecase.NewChartUseCase(txManager, accountRepo, idGen)
	balanceUC := usecase.NewOpeningBalanceUseCase(txManager, accountRepo, journalRepo, balanceRepo, idGen)
	reconUC := usecase.NewReconciliationUseCase(txManager, reconRepo, journalRepo, idGen)
	backfillUC := usecase.NewBackfillUseCase(txManager, legacyRepo, accountRepo, journalRepo, idGen, retrier, slogger.Logger)

	if _, err := chartUC.SeedChart(ctx); err != nil {
		t.Fatalf("failed to seed chart: %v", err)
	}

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(chartUC),
		JournalHandler:        handler.NewJournalHandler(journalUC, false),
		ApprovalHandler:       handler.NewApprovalHandler(approvalUC),
		BudgetHandler:         handler.NewBudgetHandler(budgetUC),
		OpeningBalanceHandler: handler.NewOpeningBalanceHandler(balanceUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconUC),
		BackfillHandler:       handler.NewBackfillHandler(backfillUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		JWTManager:            auth.NewJWTManager(testutil.TestJWTSecret, time.Hour),
		Logger:                zerolog.Nop(),
	})

	return router, redisClient
}
