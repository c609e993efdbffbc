package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase/mocks"
)

func int64Ptr(v int64) *int64 { return &v }

func newJournalFixture() (*usecase.JournalUseCase, *mocks.MockJournalRepository, *mocks.MockApprovalRequestRepository, *mocks.MockApprovalRuleRepository, *mocks.MockVoidAuditRepository) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	journalRepo := mocks.NewMockJournalRepository()
	requestRepo := mocks.NewMockApprovalRequestRepository()
	ruleRepo := mocks.NewMockApprovalRuleRepository()
	auditRepo := mocks.NewMockVoidAuditRepository()

	uc := usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		journalRepo,
		requestRepo,
		auditRepo,
		usecase.NewRuleEngine(ruleRepo),
		nil,
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	return uc, journalRepo, requestRepo, ruleRepo, auditRepo
}

func TestJournalUseCase_CreateJournalEntry(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateJournalEntryInput
		expectError bool
		errorType   error
	}{
		{
			name: "balanced tuition payment posts immediately",
			input: usecase.CreateJournalEntryInput{
				Type:        domain.EntryTypeTuitionPayment,
				Description: "term 2 fees",
				CreatedBy:   "user-1",
				Lines: []usecase.JournalLineInput{
					{GLAccountCode: domain.AccountCashOnHand, DebitAmount: 500_00},
					{GLAccountCode: domain.AccountAccountsReceivable, CreditAmount: 500_00},
				},
			},
		},
		{
			name: "unbalanced entry rejected",
			input: usecase.CreateJournalEntryInput{
				Type:      domain.EntryTypeExpense,
				CreatedBy: "user-1",
				Lines: []usecase.JournalLineInput{
					{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 300_00},
					{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 200_00},
				},
			},
			expectError: true,
			errorType:   domain.ErrUnbalancedEntry,
		},
		{
			name: "line with both sides rejected",
			input: usecase.CreateJournalEntryInput{
				Type:      domain.EntryTypeExpense,
				CreatedBy: "user-1",
				Lines: []usecase.JournalLineInput{
					{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 300_00, CreditAmount: 300_00},
					{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 0},
				},
			},
			expectError: true,
			errorType:   domain.ErrLineNotExclusive,
		},
		{
			name: "single line rejected",
			input: usecase.CreateJournalEntryInput{
				Type:      domain.EntryTypeExpense,
				CreatedBy: "user-1",
				Lines: []usecase.JournalLineInput{
					{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 0},
				},
			},
			expectError: true,
			errorType:   domain.ErrInsufficientLines,
		},
		{
			name: "unknown entry type rejected",
			input: usecase.CreateJournalEntryInput{
				Type:      domain.EntryType("BRIBE"),
				CreatedBy: "user-1",
				Lines: []usecase.JournalLineInput{
					{GLAccountCode: domain.AccountCashOnHand, DebitAmount: 100},
					{GLAccountCode: domain.AccountTuitionRevenue, CreditAmount: 100},
				},
			},
			expectError: true,
			errorType:   domain.ErrUnknownEntryType,
		},
		{
			name: "unknown account code rejected",
			input: usecase.CreateJournalEntryInput{
				Type:      domain.EntryTypeExpense,
				CreatedBy: "user-1",
				Lines: []usecase.JournalLineInput{
					{GLAccountCode: "9999", DebitAmount: 100},
					{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 100},
				},
			},
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, journalRepo, _, _, _ := newJournalFixture()

			result, err := uc.CreateJournalEntry(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}

				if len(journalRepo.Entries()) != 0 {
					t.Error("no entry should be persisted on validation failure")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !result.Entry.IsPosted {
				t.Error("entry should be posted when no rule matches")
			}

			if result.Entry.ApprovalStatus != domain.ApprovalStatusApproved {
				t.Errorf("expected APPROVED, got %s", result.Entry.ApprovalStatus)
			}

			if result.RequiresApproval {
				t.Error("no approval should be required")
			}
		})
	}
}

func TestJournalUseCase_CreateJournalEntry_InactiveAccount(t *testing.T) {
	uc, _, _, _, _ := newJournalFixture()

	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()
	_ = accountRepo.SetActive(context.Background(), domain.AccountCashOnHand, false, time.Now().UTC())

	uc = usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		mocks.NewMockJournalRepository(),
		mocks.NewMockApprovalRequestRepository(),
		mocks.NewMockVoidAuditRepository(),
		usecase.NewRuleEngine(mocks.NewMockApprovalRuleRepository()),
		nil,
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	_, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeTuitionPayment,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountCashOnHand, DebitAmount: 100_00},
			{GLAccountCode: domain.AccountAccountsReceivable, CreditAmount: 100_00},
		},
	})

	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestJournalUseCase_CreateJournalEntry_ApprovalGate(t *testing.T) {
	uc, _, requestRepo, ruleRepo, _ := newJournalFixture()

	_ = ruleRepo.Create(context.Background(), &domain.ApprovalRule{
		ID:                   "rule-1",
		Name:                 "large expenses",
		TransactionType:      domain.EntryTypeExpense,
		MinAmount:            int64Ptr(500_00),
		RequiredApproverRole: domain.RoleHeadteacher,
		IsActive:             true,
	})

	result, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 600_00},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 600_00},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.RequiresApproval {
		t.Fatal("rule at 500.00 should gate a 600.00 expense")
	}

	if result.Entry.IsPosted {
		t.Error("gated entry must not be posted")
	}

	if result.Entry.ApprovalStatus != domain.ApprovalStatusPending {
		t.Errorf("expected PENDING, got %s", result.Entry.ApprovalStatus)
	}

	request, err := requestRepo.GetByID(context.Background(), result.RequestID)
	if err != nil {
		t.Fatalf("approval request not persisted: %v", err)
	}

	if request.RequiredRole != domain.RoleHeadteacher {
		t.Errorf("expected HEADTEACHER, got %s", request.RequiredRole)
	}

	if request.Action != domain.RequestActionPostEntry {
		t.Errorf("expected POST_ENTRY, got %s", request.Action)
	}
}

func TestJournalUseCase_CreateJournalEntry_BelowThresholdPostsDirectly(t *testing.T) {
	uc, _, _, ruleRepo, _ := newJournalFixture()

	_ = ruleRepo.Create(context.Background(), &domain.ApprovalRule{
		ID:                   "rule-1",
		Name:                 "large expenses",
		TransactionType:      domain.EntryTypeExpense,
		MinAmount:            int64Ptr(500_00),
		RequiredApproverRole: domain.RoleHeadteacher,
		IsActive:             true,
	})

	result, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 499_99},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 499_99},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RequiresApproval {
		t.Error("amount below threshold should not be gated")
	}

	if !result.Entry.IsPosted {
		t.Error("ungated entry should be posted")
	}
}

func TestJournalUseCase_CreateJournalEntry_BudgetEnforced(t *testing.T) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	budgetRepo := mocks.NewMockBudgetRepository()
	fiscalYear := time.Now().UTC().Format("2006")
	_ = budgetRepo.Upsert(context.Background(), nil, &domain.BudgetAllocation{
		GLAccountCode: domain.AccountSuppliesExpense,
		FiscalYear:    fiscalYear,
		Department:    domain.AllDepartments,
		Allocated:     1_000_00,
	})
	budgetRepo.SetActualSpend(domain.AccountSuppliesExpense, fiscalYear, domain.AllDepartments, 900_00)

	budget := usecase.NewBudgetUseCase(
		mocks.NewMockTransactionManager(),
		budgetRepo,
		accountRepo,
		mocks.NewMockApprovalRequestRepository(),
		usecase.NewRuleEngine(mocks.NewMockApprovalRuleRepository()),
		mocks.NewMockIDGenerator(),
	)

	uc := usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		mocks.NewMockJournalRepository(),
		mocks.NewMockApprovalRequestRepository(),
		mocks.NewMockVoidAuditRepository(),
		usecase.NewRuleEngine(mocks.NewMockApprovalRuleRepository()),
		budget,
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	input := usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 200_00},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 200_00},
		},
		EnforceBudget: true,
	}

	if _, err := uc.CreateJournalEntry(context.Background(), input); !errors.Is(err, domain.ErrExceedsBudget) {
		t.Fatalf("expected ErrExceedsBudget, got %v", err)
	}

	// Advisory mode records the same overrun as a warning instead.
	input.EnforceBudget = false

	result, err := uc.CreateJournalEntry(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.BudgetWarning == nil {
		t.Fatal("expected a budget warning")
	}

	if result.BudgetWarning.Allowed {
		t.Error("warning should report the overrun")
	}

	if !result.Entry.IsPosted {
		t.Error("advisory overrun must not block posting")
	}
}

func TestJournalUseCase_VoidJournalEntry(t *testing.T) {
	uc, journalRepo, _, _, auditRepo := newJournalFixture()

	created, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 250_00},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 250_00},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	linesBefore := append([]domain.JournalEntryLine(nil), created.Entry.Lines...)

	result, err := uc.VoidJournalEntry(context.Background(), created.Entry.ID, "duplicate receipt", "user-2")
	if err != nil {
		t.Fatalf("void: %v", err)
	}

	if !result.Voided {
		t.Fatal("entry should be voided without a matching rule")
	}

	voided, _ := journalRepo.GetByID(context.Background(), created.Entry.ID)
	if !voided.IsVoided {
		t.Error("void flag not set")
	}

	if voided.VoidedBy == nil || *voided.VoidedBy != "user-2" {
		t.Error("void actor not recorded")
	}

	if len(voided.Lines) != len(linesBefore) {
		t.Fatal("void must not touch lines")
	}

	for i := range linesBefore {
		if voided.Lines[i] != linesBefore[i] {
			t.Errorf("line %d changed during void", i+1)
		}
	}

	audit, err := auditRepo.GetByEntry(context.Background(), created.Entry.ID)
	if err != nil {
		t.Fatalf("audit row missing: %v", err)
	}

	if audit.OriginalAmount != 250_00 {
		t.Errorf("expected original amount 25000, got %d", audit.OriginalAmount)
	}

	// A second void must fail.
	if _, err := uc.VoidJournalEntry(context.Background(), created.Entry.ID, "again", "user-2"); !errors.Is(err, domain.ErrEntryAlreadyVoided) {
		t.Errorf("expected ErrEntryAlreadyVoided, got %v", err)
	}
}

func TestJournalUseCase_RecordVoidRecovery(t *testing.T) {
	uc, _, _, _, _ := newJournalFixture()

	created, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 400_00},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 400_00},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.VoidJournalEntry(context.Background(), created.Entry.ID, "overpayment", "user-2"); err != nil {
		t.Fatalf("void: %v", err)
	}

	audit, err := uc.RecordVoidRecovery(context.Background(), created.Entry.ID, 150_00, "partial refund collected", "user-3")
	if err != nil {
		t.Fatalf("record recovery: %v", err)
	}

	if audit.RecoveredAmount == nil || *audit.RecoveredAmount != 150_00 {
		t.Error("recovered amount not recorded")
	}

	if audit.RecoveredBy == nil || *audit.RecoveredBy != "user-3" {
		t.Error("recovery actor not recorded")
	}

	// The recovery outcome is write-once.
	if _, err := uc.RecordVoidRecovery(context.Background(), created.Entry.ID, 10_00, "again", "user-3"); !errors.Is(err, domain.ErrRecoveryAttached) {
		t.Errorf("expected ErrRecoveryAttached, got %v", err)
	}

	if _, err := uc.RecordVoidRecovery(context.Background(), created.Entry.ID, 10_00, "no actor", ""); !errors.Is(err, domain.ErrMissingActor) {
		t.Errorf("expected ErrMissingActor, got %v", err)
	}
}

func TestJournalUseCase_VoidJournalEntry_ApprovalGate(t *testing.T) {
	uc, journalRepo, requestRepo, ruleRepo, auditRepo := newJournalFixture()

	created, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 600_00},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 600_00},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_ = ruleRepo.Create(context.Background(), &domain.ApprovalRule{
		ID:                   "rule-void",
		Name:                 "large voids",
		TransactionType:      domain.EntryTypeVoid,
		MinAmount:            int64Ptr(500_00),
		RequiredApproverRole: domain.RoleDirector,
		IsActive:             true,
	})

	result, err := uc.VoidJournalEntry(context.Background(), created.Entry.ID, "entered twice", "user-2")
	if err != nil {
		t.Fatalf("void: %v", err)
	}

	if result.Voided {
		t.Fatal("gated void must not apply immediately")
	}

	if !result.RequiresApproval {
		t.Fatal("void above threshold should open a request")
	}

	entry, _ := journalRepo.GetByID(context.Background(), created.Entry.ID)
	if entry.IsVoided {
		t.Error("entry must stay un-voided while the request is pending")
	}

	if _, err := auditRepo.GetByEntry(context.Background(), created.Entry.ID); err == nil {
		t.Error("no audit row should exist before approval")
	}

	request, err := requestRepo.GetByID(context.Background(), result.RequestID)
	if err != nil {
		t.Fatalf("request not persisted: %v", err)
	}

	if request.Action != domain.RequestActionVoidEntry {
		t.Errorf("expected VOID_ENTRY, got %s", request.Action)
	}

	if request.RequiredRole != domain.RoleDirector {
		t.Errorf("expected DIRECTOR, got %s", request.RequiredRole)
	}
}

func TestJournalUseCase_VoidJournalEntry_MissingActor(t *testing.T) {
	uc, _, _, _, _ := newJournalFixture()

	if _, err := uc.VoidJournalEntry(context.Background(), "entry-1", "reason", ""); !errors.Is(err, domain.ErrMissingActor) {
		t.Fatalf("expected ErrMissingActor, got %v", err)
	}
}

func TestJournalUseCase_GetTrialBalance_CachesCurrentSnapshot(t *testing.T) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	journalRepo := mocks.NewMockJournalRepository()

	calls := 0
	journalRepo.TrialBalanceRowsFunc = func(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
		calls++
		return []domain.TrialBalanceRow{
			{AccountCode: domain.AccountCashOnHand, AccountType: domain.AccountTypeAsset, TotalDebits: 100_00, Balance: 100_00},
			{AccountCode: domain.AccountTuitionRevenue, AccountType: domain.AccountTypeRevenue, TotalCredits: 100_00, Balance: 100_00},
		}, nil
	}

	uc := usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		journalRepo,
		mocks.NewMockApprovalRequestRepository(),
		mocks.NewMockVoidAuditRepository(),
		usecase.NewRuleEngine(mocks.NewMockApprovalRuleRepository()),
		nil,
		mocks.NewMockIDGenerator(),
		mocks.NewMockCache(),
		nil,
	)

	tb, err := uc.GetTrialBalance(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tb.IsBalanced {
		t.Error("trial balance should report balanced")
	}

	if _, err := uc.GetTrialBalance(context.Background(), time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("second current snapshot should hit the cache, repo called %d times", calls)
	}

	// Historical snapshots bypass the cache.
	if _, err := uc.GetTrialBalance(context.Background(), time.Now().UTC().Add(-24*time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("asOf snapshot must not be served from cache, repo called %d times", calls)
	}
}

func TestJournalUseCase_GetBalanceSheet_RetainedEarningsRollup(t *testing.T) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	journalRepo := mocks.NewMockJournalRepository()
	journalRepo.TrialBalanceRowsFunc = func(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
		return []domain.TrialBalanceRow{
			{AccountCode: domain.AccountCashOnHand, AccountType: domain.AccountTypeAsset, TotalDebits: 800_00, Balance: 800_00},
			{AccountCode: domain.AccountTuitionRevenue, AccountType: domain.AccountTypeRevenue, TotalCredits: 1_000_00, Balance: 1_000_00},
			{AccountCode: domain.AccountSuppliesExpense, AccountType: domain.AccountTypeExpense, TotalDebits: 200_00, Balance: 200_00},
		}, nil
	}

	uc := usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		journalRepo,
		mocks.NewMockApprovalRequestRepository(),
		mocks.NewMockVoidAuditRepository(),
		usecase.NewRuleEngine(mocks.NewMockApprovalRuleRepository()),
		nil,
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	bs, err := uc.GetBalanceSheet(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bs.RetainedEarnings != 800_00 {
		t.Errorf("expected retained earnings 80000, got %d", bs.RetainedEarnings)
	}

	if !bs.IsBalanced {
		t.Errorf("assets %d should equal liabilities+equity %d", bs.TotalAssets, bs.TotalLiabEquity)
	}
}

func TestJournalUseCase_ApprovalDrivenPost_DropsReportCache(t *testing.T) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	journalRepo := mocks.NewMockJournalRepository()

	calls := 0
	journalRepo.TrialBalanceRowsFunc = func(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
		calls++
		return []domain.TrialBalanceRow{
			{AccountCode: domain.AccountCashOnHand, AccountType: domain.AccountTypeAsset, TotalDebits: 100_00, Balance: 100_00},
			{AccountCode: domain.AccountTuitionRevenue, AccountType: domain.AccountTypeRevenue, TotalCredits: 100_00, Balance: 100_00},
		}, nil
	}

	requestRepo := mocks.NewMockApprovalRequestRepository()
	ruleRepo := mocks.NewMockApprovalRuleRepository()

	_ = ruleRepo.Create(context.Background(), &domain.ApprovalRule{
		ID:                   "rule-1",
		Name:                 "large expenses",
		TransactionType:      domain.EntryTypeExpense,
		MinAmount:            int64Ptr(500_00),
		RequiredApproverRole: domain.RoleHeadteacher,
		IsActive:             true,
	})

	uc := usecase.NewJournalUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		journalRepo,
		requestRepo,
		mocks.NewMockVoidAuditRepository(),
		usecase.NewRuleEngine(ruleRepo),
		nil,
		mocks.NewMockIDGenerator(),
		mocks.NewMockCache(),
		nil,
	)

	result, err := uc.CreateJournalEntry(context.Background(), usecase.CreateJournalEntryInput{
		Type:      domain.EntryTypeExpense,
		CreatedBy: "user-1",
		Lines: []usecase.JournalLineInput{
			{GLAccountCode: domain.AccountSuppliesExpense, DebitAmount: 600_00},
			{GLAccountCode: domain.AccountCashOnHand, CreditAmount: 600_00},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.RequiresApproval {
		t.Fatal("rule at 500.00 should gate a 600.00 expense")
	}

	// Prime the snapshot cache while the entry is pending.
	if _, err := uc.GetTrialBalance(context.Background(), time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected one repo read, got %d", calls)
	}

	approvalUC := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, uc, nil, nil)

	if _, err := approvalUC.ApproveRequest(context.Background(), result.RequestID, "head-1", domain.RoleHeadteacher, "ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The approved post changed the ledger, so the next read recomputes.
	if _, err := uc.GetTrialBalance(context.Background(), time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("approval-driven post must drop the cached snapshot, repo called %d times", calls)
	}
}
