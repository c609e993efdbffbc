package usecase

import (
	"fmt"
	"time"

	"context"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// OpeningBalanceUseCase bulk-loads pre-system balances as balanced journal
// entries and verifies a year's imports net to zero.
type OpeningBalanceUseCase struct {
	txManager   TransactionManager
	accountRepo GLAccountRepository
	journalRepo JournalRepository
	balanceRepo OpeningBalanceRepository
	idGen       IDGenerator
}

// NewOpeningBalanceUseCase creates a new OpeningBalanceUseCase.
func NewOpeningBalanceUseCase(
	txManager TransactionManager,
	accountRepo GLAccountRepository,
	journalRepo JournalRepository,
	balanceRepo OpeningBalanceRepository,
	idGen IDGenerator,
) *OpeningBalanceUseCase {
	return &OpeningBalanceUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		balanceRepo: balanceRepo,
		idGen:       idGen,
	}
}

// StudentOpeningBalance is one student's pre-system balance.
type StudentOpeningBalance struct {
	StudentID string
	Amount    int64
	Side      domain.BalanceSide
}

// GLOpeningBalance is one account's pre-system balance.
type GLOpeningBalance struct {
	GLAccountCode string
	Amount        int64
	Side          domain.BalanceSide
}

// ImportResult summarizes one import batch.
type ImportResult struct {
	Imported     int
	TotalDebits  int64
	TotalCredits int64
}

// ImportStudentOpeningBalances creates one balanced entry per student record.
// A DEBIT balance (student owes) debits accounts receivable against retained
// earnings; a CREDIT balance (overpayment) debits retained earnings against
// student credit balances. The whole batch commits atomically.
func (uc *OpeningBalanceUseCase) ImportStudentOpeningBalances(ctx context.Context, balances []StudentOpeningBalance, yearID, source, userID string) (*ImportResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	now := time.Now().UTC()
	result := &ImportResult{}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, b := range balances {
		if b.Amount <= 0 {
			return nil, fmt.Errorf("%w: student %s", domain.ErrInvalidAmount, b.StudentID)
		}

		var lines []domain.JournalEntryLine

		record := &domain.OpeningBalance{
			ID:             uc.idGen.Generate(),
			AcademicYearID: yearID,
			StudentID:      &b.StudentID,
			Source:         source,
			RecordedBy:     userID,
			RecordedAt:     now,
		}

		switch b.Side {
		case domain.BalanceSideDebit:
			lines = []domain.JournalEntryLine{
				{LineNumber: 1, GLAccountCode: domain.AccountAccountsReceivable, DebitAmount: b.Amount},
				{LineNumber: 2, GLAccountCode: domain.AccountRetainedEarnings, CreditAmount: b.Amount},
			}
			record.DebitAmount = b.Amount
		case domain.BalanceSideCredit:
			lines = []domain.JournalEntryLine{
				{LineNumber: 1, GLAccountCode: domain.AccountRetainedEarnings, DebitAmount: b.Amount},
				{LineNumber: 2, GLAccountCode: domain.AccountStudentCreditBalances, CreditAmount: b.Amount},
			}
			record.CreditAmount = b.Amount
		default:
			return nil, fmt.Errorf("%w: unknown balance side %q", domain.ErrInvalidAmount, b.Side)
		}

		entry, err := uc.createOpeningEntry(ctx, tx, lines, yearID, userID,
			fmt.Sprintf("Opening balance for student %s (%s)", b.StudentID, source), &b.StudentID, now)
		if err != nil {
			return nil, err
		}

		record.JournalEntryID = entry.ID

		if err := uc.balanceRepo.Create(ctx, tx, record); err != nil {
			return nil, err
		}

		result.Imported++
		result.TotalDebits += record.DebitAmount
		result.TotalCredits += record.CreditAmount
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// ImportGLOpeningBalances creates one balanced entry per account record,
// offset against retained earnings.
func (uc *OpeningBalanceUseCase) ImportGLOpeningBalances(ctx context.Context, balances []GLOpeningBalance, yearID, source, userID string) (*ImportResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	now := time.Now().UTC()
	result := &ImportResult{}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, b := range balances {
		if b.Amount <= 0 {
			return nil, fmt.Errorf("%w: account %s", domain.ErrInvalidAmount, b.GLAccountCode)
		}

		code := b.GLAccountCode

		var lines []domain.JournalEntryLine

		record := &domain.OpeningBalance{
			ID:             uc.idGen.Generate(),
			AcademicYearID: yearID,
			GLAccountCode:  &code,
			Source:         source,
			RecordedBy:     userID,
			RecordedAt:     now,
		}

		switch b.Side {
		case domain.BalanceSideDebit:
			lines = []domain.JournalEntryLine{
				{LineNumber: 1, GLAccountCode: code, DebitAmount: b.Amount},
				{LineNumber: 2, GLAccountCode: domain.AccountRetainedEarnings, CreditAmount: b.Amount},
			}
			record.DebitAmount = b.Amount
		case domain.BalanceSideCredit:
			lines = []domain.JournalEntryLine{
				{LineNumber: 1, GLAccountCode: domain.AccountRetainedEarnings, DebitAmount: b.Amount},
				{LineNumber: 2, GLAccountCode: code, CreditAmount: b.Amount},
			}
			record.CreditAmount = b.Amount
		default:
			return nil, fmt.Errorf("%w: unknown balance side %q", domain.ErrInvalidAmount, b.Side)
		}

		entry, err := uc.createOpeningEntry(ctx, tx, lines, yearID, userID,
			fmt.Sprintf("Opening balance for account %s (%s)", code, source), nil, now)
		if err != nil {
			return nil, err
		}

		record.JournalEntryID = entry.ID

		if err := uc.balanceRepo.Create(ctx, tx, record); err != nil {
			return nil, err
		}

		result.Imported++
		result.TotalDebits += record.DebitAmount
		result.TotalCredits += record.CreditAmount
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *OpeningBalanceUseCase) createOpeningEntry(ctx context.Context, tx Transaction, lines []domain.JournalEntryLine, yearID, userID, description string, studentID *string, now time.Time) (*domain.JournalEntry, error) {
	entry := &domain.JournalEntry{
		ID:             uc.idGen.Generate(),
		Ref:            "OB-" + uc.idGen.Generate(),
		Date:           now,
		Type:           domain.EntryTypeOpeningBalance,
		Description:    description,
		StudentID:      studentID,
		TermID:         &yearID,
		IsPosted:       true,
		ApprovalStatus: domain.ApprovalStatusApproved,
		CreatedBy:      userID,
		CreatedAt:      now,
		Lines:          lines,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(lines))
	for i := range lines {
		codes = append(codes, lines[i].GLAccountCode)
	}

	accounts, err := uc.accountRepo.GetByCodes(ctx, tx, codes)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*domain.GLAccount, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}

	for _, code := range codes {
		account, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, code)
		}

		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountInactive, code)
		}
	}

	if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// VerifyOpeningBalances sums a year's imported balances. The year is balanced
// only at exactly zero variance; non-zero variance blocks verification.
func (uc *OpeningBalanceUseCase) VerifyOpeningBalances(ctx context.Context, yearID string) (*domain.OpeningBalanceSummary, error) {
	debits, credits, err := uc.balanceRepo.SumByYear(ctx, yearID)
	if err != nil {
		return nil, err
	}

	summary := &domain.OpeningBalanceSummary{
		AcademicYearID: yearID,
		TotalDebits:    debits,
		TotalCredits:   credits,
		Variance:       debits - credits,
	}

	summary.IsBalanced = summary.Variance == 0

	if summary.IsBalanced {
		if err := uc.balanceRepo.MarkVerified(ctx, yearID); err != nil {
			return nil, err
		}
	}

	return summary, nil
}
