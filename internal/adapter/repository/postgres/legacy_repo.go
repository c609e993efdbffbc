package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// LegacyRepository implements usecase.LegacyRepository. The legacy table is
// read-only; processed state is derived by anti-joining against journal
// entries on the source reference.
type LegacyRepository struct {
	pool *pgxpool.Pool
}

// NewLegacyRepository creates a new LegacyRepository.
func NewLegacyRepository(pool *pgxpool.Pool) *LegacyRepository {
	return &LegacyRepository{pool: pool}
}

const unprocessedFilter = `
NOT EXISTS (
	SELECT 1 FROM journal_entries e WHERE e.source_legacy_transaction_id = t.id
)`

// ListUnprocessed returns legacy rows without a journal entry, in ID order,
// starting after afterID.
func (r *LegacyRepository) ListUnprocessed(ctx context.Context, afterID int64, limit int) ([]*domain.LegacyTransaction, error) {
	rows, err := r.pool.Query(ctx, `
SELECT t.id, t.transaction_type, t.category, t.payment_method, t.amount,
	t.transaction_date, t.reference, t.student_id, t.staff_id, t.notes
FROM legacy_transactions t
WHERE t.id > $1 AND `+unprocessedFilter+`
ORDER BY t.id
LIMIT $2`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LegacyTransaction
	for rows.Next() {
		var (
			tx              domain.LegacyTransaction
			transactionType string
			method          string
			date            pgtype.Timestamptz
			studentID       pgtype.Text
			staffID         pgtype.Text
		)

		err := rows.Scan(
			&tx.ID,
			&transactionType,
			&tx.Category,
			&method,
			&tx.Amount,
			&date,
			&tx.Reference,
			&studentID,
			&staffID,
			&tx.Notes,
		)
		if err != nil {
			return nil, err
		}

		tx.Type = domain.LegacyType(transactionType)
		tx.Method = domain.PaymentMethod(method)
		tx.Date = date.Time
		tx.StudentID = pgTextToStr(studentID)
		tx.StaffID = pgTextToStr(staffID)

		out = append(out, &tx)
	}

	return out, rows.Err()
}

// CountUnprocessed counts legacy rows without a journal entry.
func (r *LegacyRepository) CountUnprocessed(ctx context.Context) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM legacy_transactions t WHERE `+unprocessedFilter,
	).Scan(&count)

	return count, err
}
