package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// OpeningBalanceRepository implements usecase.OpeningBalanceRepository.
type OpeningBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewOpeningBalanceRepository creates a new OpeningBalanceRepository.
func NewOpeningBalanceRepository(pool *pgxpool.Pool) *OpeningBalanceRepository {
	return &OpeningBalanceRepository{pool: pool}
}

// Create persists an opening balance record inside tx.
func (r *OpeningBalanceRepository) Create(ctx context.Context, tx usecase.Transaction, balance *domain.OpeningBalance) error {
	_, err := pgxFrom(tx).Exec(ctx, `
INSERT INTO opening_balances (
	id, academic_year_id, student_id, gl_account_code,
	debit_amount, credit_amount, source, is_verified,
	journal_entry_id, recorded_by, recorded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		balance.ID,
		balance.AcademicYearID,
		strToPgText(balance.StudentID),
		strToPgText(balance.GLAccountCode),
		balance.DebitAmount,
		balance.CreditAmount,
		balance.Source,
		balance.IsVerified,
		balance.JournalEntryID,
		balance.RecordedBy,
		timeToPgTimestamptz(balance.RecordedAt),
	)

	return err
}

// SumByYear totals a year's imported debits and credits.
func (r *OpeningBalanceRepository) SumByYear(ctx context.Context, yearID string) (int64, int64, error) {
	var debits, credits int64

	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
FROM opening_balances WHERE academic_year_id = $1`, yearID).Scan(&debits, &credits)

	return debits, credits, err
}

// MarkVerified flags every record of the year as verified.
func (r *OpeningBalanceRepository) MarkVerified(ctx context.Context, yearID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE opening_balances SET is_verified = TRUE WHERE academic_year_id = $1`, yearID)

	return err
}

// ListByYear lists a year's records in import order.
func (r *OpeningBalanceRepository) ListByYear(ctx context.Context, yearID string) ([]*domain.OpeningBalance, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, academic_year_id, student_id, gl_account_code,
	debit_amount, credit_amount, source, is_verified,
	journal_entry_id, recorded_by, recorded_at
FROM opening_balances WHERE academic_year_id = $1 ORDER BY recorded_at, id`, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.OpeningBalance
	for rows.Next() {
		var (
			balance    domain.OpeningBalance
			studentID  pgtype.Text
			code       pgtype.Text
			recordedAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&balance.ID,
			&balance.AcademicYearID,
			&studentID,
			&code,
			&balance.DebitAmount,
			&balance.CreditAmount,
			&balance.Source,
			&balance.IsVerified,
			&balance.JournalEntryID,
			&balance.RecordedBy,
			&recordedAt,
		)
		if err != nil {
			return nil, err
		}

		balance.StudentID = pgTextToStr(studentID)
		balance.GLAccountCode = pgTextToStr(code)
		balance.RecordedAt = recordedAt.Time

		out = append(out, &balance)
	}

	return out, rows.Err()
}
