package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase/mocks"
)

func newOpeningBalanceFixture() (*usecase.OpeningBalanceUseCase, *mocks.MockJournalRepository, *mocks.MockOpeningBalanceRepository) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	journalRepo := mocks.NewMockJournalRepository()
	balanceRepo := mocks.NewMockOpeningBalanceRepository()

	uc := usecase.NewOpeningBalanceUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		journalRepo,
		balanceRepo,
		mocks.NewMockIDGenerator(),
	)

	return uc, journalRepo, balanceRepo
}

func TestOpeningBalanceUseCase_ImportStudentOpeningBalances(t *testing.T) {
	uc, journalRepo, _ := newOpeningBalanceFixture()

	balances := []usecase.StudentOpeningBalance{
		{StudentID: "STU-001", Amount: 1_200_00, Side: domain.BalanceSideDebit},
		{StudentID: "STU-002", Amount: 300_00, Side: domain.BalanceSideCredit},
	}

	result, err := uc.ImportStudentOpeningBalances(context.Background(), balances, "2026", "legacy export", "bursar-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}

	if result.TotalDebits != 1_200_00 || result.TotalCredits != 300_00 {
		t.Errorf("expected totals 120000/30000, got %d/%d", result.TotalDebits, result.TotalCredits)
	}

	// Every import produces a balanced, posted OPENING_BALANCE entry.
	entries := journalRepo.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}

	for _, entry := range entries {
		if entry.Type != domain.EntryTypeOpeningBalance {
			t.Errorf("expected OPENING_BALANCE, got %s", entry.Type)
		}

		if !entry.IsPosted {
			t.Error("opening entries post immediately")
		}

		if entry.TotalDebits() != entry.TotalCredits() {
			t.Errorf("entry %s unbalanced: %d vs %d", entry.ID, entry.TotalDebits(), entry.TotalCredits())
		}
	}
}

func TestOpeningBalanceUseCase_ImportStudentOpeningBalances_Invalid(t *testing.T) {
	uc, journalRepo, _ := newOpeningBalanceFixture()

	tests := []struct {
		name      string
		balances  []usecase.StudentOpeningBalance
		userID    string
		errorType error
	}{
		{
			name:      "zero amount rejected",
			balances:  []usecase.StudentOpeningBalance{{StudentID: "STU-001", Amount: 0, Side: domain.BalanceSideDebit}},
			userID:    "bursar-1",
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "negative amount rejected",
			balances:  []usecase.StudentOpeningBalance{{StudentID: "STU-001", Amount: -500, Side: domain.BalanceSideCredit}},
			userID:    "bursar-1",
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "actor required",
			balances:  []usecase.StudentOpeningBalance{{StudentID: "STU-001", Amount: 100, Side: domain.BalanceSideDebit}},
			userID:    "",
			errorType: domain.ErrMissingActor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.ImportStudentOpeningBalances(context.Background(), tt.balances, "2026", "manual", tt.userID)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected %v, got %v", tt.errorType, err)
			}

			if len(journalRepo.Entries()) != 0 {
				t.Error("failed import must not persist entries")
			}
		})
	}
}

func TestOpeningBalanceUseCase_ImportGLOpeningBalances(t *testing.T) {
	uc, journalRepo, _ := newOpeningBalanceFixture()

	balances := []usecase.GLOpeningBalance{
		{GLAccountCode: domain.AccountBank, Amount: 5_000_00, Side: domain.BalanceSideDebit},
		{GLAccountCode: domain.AccountSalariesPayable, Amount: 800_00, Side: domain.BalanceSideCredit},
	}

	result, err := uc.ImportGLOpeningBalances(context.Background(), balances, "2026", "audited statements", "bursar-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}

	for _, entry := range journalRepo.Entries() {
		if entry.TotalDebits() != entry.TotalCredits() {
			t.Errorf("entry %s unbalanced", entry.ID)
		}
	}
}

func TestOpeningBalanceUseCase_ImportGLOpeningBalances_UnknownAccount(t *testing.T) {
	uc, _, _ := newOpeningBalanceFixture()

	balances := []usecase.GLOpeningBalance{
		{GLAccountCode: "9999", Amount: 100_00, Side: domain.BalanceSideDebit},
	}

	if _, err := uc.ImportGLOpeningBalances(context.Background(), balances, "2026", "manual", "bursar-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestOpeningBalanceUseCase_VerifyOpeningBalances(t *testing.T) {
	uc, _, balanceRepo := newOpeningBalanceFixture()

	// Balanced year: a debit and a credit of equal size.
	_, err := uc.ImportStudentOpeningBalances(context.Background(), []usecase.StudentOpeningBalance{
		{StudentID: "STU-001", Amount: 400_00, Side: domain.BalanceSideDebit},
		{StudentID: "STU-002", Amount: 400_00, Side: domain.BalanceSideCredit},
	}, "2026", "legacy", "bursar-1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	summary, err := uc.VerifyOpeningBalances(context.Background(), "2026")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if !summary.IsBalanced || summary.Variance != 0 {
		t.Errorf("expected balanced year, variance %d", summary.Variance)
	}

	if !balanceRepo.Verified("2026") {
		t.Error("balanced year should be marked verified")
	}

	// Unbalanced year keeps its variance and stays unverified.
	_, err = uc.ImportStudentOpeningBalances(context.Background(), []usecase.StudentOpeningBalance{
		{StudentID: "STU-003", Amount: 250_00, Side: domain.BalanceSideDebit},
	}, "2027", "legacy", "bursar-1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	summary, err = uc.VerifyOpeningBalances(context.Background(), "2027")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if summary.IsBalanced {
		t.Error("one-sided year must not verify")
	}

	if summary.Variance != 250_00 {
		t.Errorf("expected variance 25000, got %d", summary.Variance)
	}

	if balanceRepo.Verified("2027") {
		t.Error("unbalanced year must not be marked verified")
	}
}
