package usecase

import (
	"context"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// ReconciliationUseCase matches externally supplied bank-statement lines
// against ledger entries and computes per-statement variance.
type ReconciliationUseCase struct {
	txManager   TransactionManager
	reconRepo   ReconciliationRepository
	journalRepo JournalRepository
	idGen       IDGenerator
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	txManager TransactionManager,
	reconRepo ReconciliationRepository,
	journalRepo JournalRepository,
	idGen IDGenerator,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:   txManager,
		reconRepo:   reconRepo,
		journalRepo: journalRepo,
		idGen:       idGen,
	}
}

// StatementLineInput is one imported statement row.
type StatementLineInput struct {
	Date           time.Time
	Description    string
	DebitAmount    int64
	CreditAmount   int64
	RunningBalance int64
}

// ImportStatementInput describes an externally supplied bank statement.
type ImportStatementInput struct {
	BankAccountCode string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	OpeningBalance  int64
	ClosingBalance  int64
	Lines           []StatementLineInput
	ImportedBy      string
}

// ImportBankStatement stores a statement and its lines atomically.
func (uc *ReconciliationUseCase) ImportBankStatement(ctx context.Context, input ImportStatementInput) (*domain.BankStatement, error) {
	if input.ImportedBy == "" {
		return nil, domain.ErrMissingActor
	}

	now := time.Now().UTC()

	statement := &domain.BankStatement{
		ID:              uc.idGen.Generate(),
		BankAccountCode: input.BankAccountCode,
		PeriodStart:     input.PeriodStart,
		PeriodEnd:       input.PeriodEnd,
		OpeningBalance:  input.OpeningBalance,
		ClosingBalance:  input.ClosingBalance,
		ImportedBy:      input.ImportedBy,
		ImportedAt:      now,
	}

	lines := make([]domain.BankStatementLine, 0, len(input.Lines))
	for i, l := range input.Lines {
		lines = append(lines, domain.BankStatementLine{
			ID:             uc.idGen.Generate(),
			StatementID:    statement.ID,
			LineNumber:     i + 1,
			Date:           l.Date,
			Description:    l.Description,
			DebitAmount:    l.DebitAmount,
			CreditAmount:   l.CreditAmount,
			RunningBalance: l.RunningBalance,
		})
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.reconRepo.CreateStatement(ctx, tx, statement, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return statement, nil
}

// MatchTransaction links a statement line to a ledger entry, one-to-one.
// A matched line must be unmatched before it can be re-matched.
func (uc *ReconciliationUseCase) MatchTransaction(ctx context.Context, lineID, entryID, userID string) error {
	if userID == "" {
		return domain.ErrMissingActor
	}

	entry, err := uc.journalRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	line, err := uc.reconRepo.GetLineForUpdate(ctx, tx, lineID)
	if err != nil {
		return err
	}

	if line.IsMatched {
		return domain.ErrLineAlreadyMatched
	}

	if err := uc.reconRepo.SetLineMatch(ctx, tx, lineID, &entry.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetStatementLine retrieves one statement line with its match state.
func (uc *ReconciliationUseCase) GetStatementLine(ctx context.Context, lineID string) (*domain.BankStatementLine, error) {
	return uc.reconRepo.GetLine(ctx, lineID)
}

// UnmatchTransaction clears a line's match.
func (uc *ReconciliationUseCase) UnmatchTransaction(ctx context.Context, lineID, userID string) error {
	if userID == "" {
		return domain.ErrMissingActor
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	line, err := uc.reconRepo.GetLineForUpdate(ctx, tx, lineID)
	if err != nil {
		return err
	}

	if !line.IsMatched {
		return domain.ErrLineNotMatched
	}

	if err := uc.reconRepo.SetLineMatch(ctx, tx, lineID, nil); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AdjustmentInput records an out-of-band correction found while reconciling.
type AdjustmentInput struct {
	StatementID string
	Description string
	Amount      int64
	RecordedBy  string
}

// RecordAdjustment stores a reconciliation adjustment.
func (uc *ReconciliationUseCase) RecordAdjustment(ctx context.Context, input AdjustmentInput) (*domain.ReconciliationAdjustment, error) {
	if input.RecordedBy == "" {
		return nil, domain.ErrMissingActor
	}

	if _, err := uc.reconRepo.GetStatement(ctx, input.StatementID); err != nil {
		return nil, err
	}

	adjustment := &domain.ReconciliationAdjustment{
		ID:          uc.idGen.Generate(),
		StatementID: input.StatementID,
		Description: input.Description,
		Amount:      input.Amount,
		RecordedBy:  input.RecordedBy,
		RecordedAt:  time.Now().UTC(),
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.reconRepo.CreateAdjustment(ctx, tx, adjustment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return adjustment, nil
}

// RunReconciliation computes closing = opening + credits - debits over the
// statement's matched lines and the variance against the stated closing
// balance. Zero variance means balanced.
func (uc *ReconciliationUseCase) RunReconciliation(ctx context.Context, statementID, userID string) (*domain.ReconciliationReport, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	statement, err := uc.reconRepo.GetStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}

	debits, credits, matched, unmatched, err := uc.reconRepo.MatchedTotals(ctx, statementID)
	if err != nil {
		return nil, err
	}

	closing := statement.OpeningBalance + credits - debits

	report := &domain.ReconciliationReport{
		StatementID:     statementID,
		BankAccountCode: statement.BankAccountCode,
		OpeningBalance:  statement.OpeningBalance,
		TotalCredits:    credits,
		TotalDebits:     debits,
		ClosingBalance:  closing,
		StatedClosing:   statement.ClosingBalance,
		Variance:        statement.ClosingBalance - closing,
		MatchedLines:    matched,
		UnmatchedLines:  unmatched,
		RanBy:           userID,
		RanAt:           time.Now().UTC(),
	}

	report.IsBalanced = report.Variance == 0

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.reconRepo.SaveReport(ctx, tx, report); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return report, nil
}

// UnmatchedReview surfaces both sides awaiting manual review in a date range.
type UnmatchedReview struct {
	StatementLines []*domain.BankStatementLine
	JournalEntries []*domain.JournalEntry
}

// GetUnmatchedTransactions lists unmatched statement lines and unmatched
// posted entries within the range.
func (uc *ReconciliationUseCase) GetUnmatchedTransactions(ctx context.Context, from, to time.Time) (*UnmatchedReview, error) {
	lines, err := uc.reconRepo.ListUnmatchedLines(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries, err := uc.reconRepo.ListUnmatchedEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &UnmatchedReview{StatementLines: lines, JournalEntries: entries}, nil
}
