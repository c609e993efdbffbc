package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// ReconciliationRepository implements usecase.ReconciliationRepository.
type ReconciliationRepository struct {
	pool *pgxpool.Pool
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return &ReconciliationRepository{pool: pool}
}

// CreateStatement stores a statement and its lines inside tx.
func (r *ReconciliationRepository) CreateStatement(ctx context.Context, tx usecase.Transaction, statement *domain.BankStatement, lines []domain.BankStatementLine) error {
	pgxTx := pgxFrom(tx)

	_, err := pgxTx.Exec(ctx, `
INSERT INTO bank_statements (id, bank_account_code, period_start, period_end, opening_balance, closing_balance, imported_by, imported_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		statement.ID,
		statement.BankAccountCode,
		timeToPgTimestamptz(statement.PeriodStart),
		timeToPgTimestamptz(statement.PeriodEnd),
		statement.OpeningBalance,
		statement.ClosingBalance,
		statement.ImportedBy,
		timeToPgTimestamptz(statement.ImportedAt),
	)
	if err != nil {
		return err
	}

	for i := range lines {
		line := &lines[i]

		_, err := pgxTx.Exec(ctx, `
INSERT INTO bank_statement_lines (id, statement_id, line_number, line_date, description, debit_amount, credit_amount, running_balance, is_matched)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`,
			line.ID,
			line.StatementID,
			line.LineNumber,
			timeToPgTimestamptz(line.Date),
			line.Description,
			line.DebitAmount,
			line.CreditAmount,
			line.RunningBalance,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetStatement retrieves a statement.
func (r *ReconciliationRepository) GetStatement(ctx context.Context, id string) (*domain.BankStatement, error) {
	var (
		statement   domain.BankStatement
		periodStart pgtype.Timestamptz
		periodEnd   pgtype.Timestamptz
		importedAt  pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
SELECT id, bank_account_code, period_start, period_end, opening_balance, closing_balance, imported_by, imported_at
FROM bank_statements WHERE id = $1`, id).Scan(
		&statement.ID,
		&statement.BankAccountCode,
		&periodStart,
		&periodEnd,
		&statement.OpeningBalance,
		&statement.ClosingBalance,
		&statement.ImportedBy,
		&importedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStatementNotFound
	}

	if err != nil {
		return nil, err
	}

	statement.PeriodStart = periodStart.Time
	statement.PeriodEnd = periodEnd.Time
	statement.ImportedAt = importedAt.Time

	return &statement, nil
}

const selectLineSQL = `
SELECT id, statement_id, line_number, line_date, description,
	debit_amount, credit_amount, running_balance, is_matched, matched_transaction_id
FROM bank_statement_lines`

// GetLine retrieves a statement line.
func (r *ReconciliationRepository) GetLine(ctx context.Context, id string) (*domain.BankStatementLine, error) {
	return getLine(ctx, r.pool, id, "")
}

// GetLineForUpdate retrieves a line with a FOR UPDATE lock so concurrent
// match attempts serialize.
func (r *ReconciliationRepository) GetLineForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankStatementLine, error) {
	return getLine(ctx, pgxFrom(tx), id, " FOR UPDATE")
}

func getLine(ctx context.Context, db dbtx, id, lock string) (*domain.BankStatementLine, error) {
	row := db.QueryRow(ctx, selectLineSQL+` WHERE id = $1`+lock, id)

	line, err := scanStatementLine(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLineNotFound
	}

	return line, err
}

// SetLineMatch links or clears a line's match inside tx. The partial unique
// index on matched_transaction_id keeps matching one-to-one from the entry
// side as well.
func (r *ReconciliationRepository) SetLineMatch(ctx context.Context, tx usecase.Transaction, lineID string, matchedTransactionID *string) error {
	tag, err := pgxFrom(tx).Exec(ctx, `
UPDATE bank_statement_lines
SET is_matched = $2, matched_transaction_id = $3
WHERE id = $1`,
		lineID, matchedTransactionID != nil, strToPgText(matchedTransactionID),
	)
	if uniqueViolation(err, "uq_bank_statement_lines_match") {
		return domain.ErrEntryAlreadyMatched
	}

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}

	return nil
}

// MatchedTotals sums matched debits and credits of a statement and counts
// matched and unmatched lines.
func (r *ReconciliationRepository) MatchedTotals(ctx context.Context, statementID string) (int64, int64, int, int, error) {
	var (
		debits, credits    int64
		matched, unmatched int
	)

	err := r.pool.QueryRow(ctx, `
SELECT
	COALESCE(SUM(debit_amount) FILTER (WHERE is_matched), 0),
	COALESCE(SUM(credit_amount) FILTER (WHERE is_matched), 0),
	COUNT(*) FILTER (WHERE is_matched),
	COUNT(*) FILTER (WHERE NOT is_matched)
FROM bank_statement_lines WHERE statement_id = $1`, statementID).
		Scan(&debits, &credits, &matched, &unmatched)

	return debits, credits, matched, unmatched, err
}

// ListUnmatchedLines lists unmatched lines in a date range.
func (r *ReconciliationRepository) ListUnmatchedLines(ctx context.Context, from, to time.Time) ([]*domain.BankStatementLine, error) {
	rows, err := r.pool.Query(ctx,
		selectLineSQL+` WHERE NOT is_matched AND line_date >= $1 AND line_date <= $2 ORDER BY line_date, line_number`,
		timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.BankStatementLine
	for rows.Next() {
		line, err := scanStatementLine(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, line)
	}

	return out, rows.Err()
}

// ListUnmatchedEntries lists posted, non-voided entries in the range that no
// statement line is matched to.
func (r *ReconciliationRepository) ListUnmatchedEntries(ctx context.Context, from, to time.Time) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, selectEntrySQL+`
WHERE is_posted AND NOT is_voided
	AND entry_date >= $1 AND entry_date <= $2
	AND NOT EXISTS (
		SELECT 1 FROM bank_statement_lines l WHERE l.matched_transaction_id = journal_entries.id
	)
ORDER BY entry_date, id`,
		timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, entry)
	}

	return out, rows.Err()
}

// CreateAdjustment stores an adjustment inside tx.
func (r *ReconciliationRepository) CreateAdjustment(ctx context.Context, tx usecase.Transaction, adjustment *domain.ReconciliationAdjustment) error {
	_, err := pgxFrom(tx).Exec(ctx, `
INSERT INTO reconciliation_adjustments (id, statement_id, description, amount, recorded_by, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		adjustment.ID,
		adjustment.StatementID,
		adjustment.Description,
		adjustment.Amount,
		adjustment.RecordedBy,
		timeToPgTimestamptz(adjustment.RecordedAt),
	)

	return err
}

// SaveReport stores the outcome of a reconciliation run inside tx.
func (r *ReconciliationRepository) SaveReport(ctx context.Context, tx usecase.Transaction, report *domain.ReconciliationReport) error {
	_, err := pgxFrom(tx).Exec(ctx, `
INSERT INTO reconciliation_reports (
	statement_id, bank_account_code, opening_balance, total_credits, total_debits,
	closing_balance, stated_closing, variance, is_balanced,
	matched_lines, unmatched_lines, ran_by, ran_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		report.StatementID,
		report.BankAccountCode,
		report.OpeningBalance,
		report.TotalCredits,
		report.TotalDebits,
		report.ClosingBalance,
		report.StatedClosing,
		report.Variance,
		report.IsBalanced,
		report.MatchedLines,
		report.UnmatchedLines,
		report.RanBy,
		timeToPgTimestamptz(report.RanAt),
	)

	return err
}

func scanStatementLine(row pgx.Row) (*domain.BankStatementLine, error) {
	var (
		line      domain.BankStatementLine
		lineDate  pgtype.Timestamptz
		matchedID pgtype.Text
	)

	err := row.Scan(
		&line.ID,
		&line.StatementID,
		&line.LineNumber,
		&lineDate,
		&line.Description,
		&line.DebitAmount,
		&line.CreditAmount,
		&line.RunningBalance,
		&line.IsMatched,
		&matchedID,
	)
	if err != nil {
		return nil, err
	}

	line.Date = lineDate.Time
	line.MatchedTransactionID = pgTextToStr(matchedID)

	return &line, nil
}
