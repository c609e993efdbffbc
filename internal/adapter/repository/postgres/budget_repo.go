package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert inserts or replaces the allocation for its unique key. A nil tx
// writes through the pool.
func (r *BudgetRepository) Upsert(ctx context.Context, tx usecase.Transaction, allocation *domain.BudgetAllocation) error {
	var db dbtx = r.pool
	if tx != nil {
		db = pgxFrom(tx)
	}

	_, err := db.Exec(ctx, `
INSERT INTO budget_allocations (id, gl_account_code, fiscal_year, department, allocated, set_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (gl_account_code, fiscal_year, department)
DO UPDATE SET allocated = EXCLUDED.allocated, set_by = EXCLUDED.set_by, updated_at = EXCLUDED.updated_at`,
		allocation.ID,
		allocation.GLAccountCode,
		allocation.FiscalYear,
		allocation.Department,
		allocation.Allocated,
		allocation.SetBy,
		timeToPgTimestamptz(allocation.CreatedAt),
		timeToPgTimestamptz(allocation.UpdatedAt),
	)

	return err
}

// Get retrieves the allocation for a key.
func (r *BudgetRepository) Get(ctx context.Context, code, fiscalYear, department string) (*domain.BudgetAllocation, error) {
	var (
		allocation domain.BudgetAllocation
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
SELECT id, gl_account_code, fiscal_year, department, allocated, set_by, created_at, updated_at
FROM budget_allocations
WHERE gl_account_code = $1 AND fiscal_year = $2 AND department = $3`,
		code, fiscalYear, department,
	).Scan(
		&allocation.ID,
		&allocation.GLAccountCode,
		&allocation.FiscalYear,
		&allocation.Department,
		&allocation.Allocated,
		&allocation.SetBy,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAllocationNotFound
	}

	if err != nil {
		return nil, err
	}

	allocation.CreatedAt = createdAt.Time
	allocation.UpdatedAt = updatedAt.Time

	return &allocation, nil
}

// ActualSpend sums posted, non-voided debit lines against the key. The
// all-departments sentinel aggregates across every department.
func (r *BudgetRepository) ActualSpend(ctx context.Context, code, fiscalYear, department string) (int64, error) {
	sql := `
SELECT COALESCE(SUM(l.debit_amount), 0)
FROM journal_entry_lines l
JOIN journal_entries e ON e.id = l.entry_id
WHERE l.gl_account_code = $1
	AND e.is_posted AND NOT e.is_voided
	AND to_char(e.entry_date, 'YYYY') = $2`

	args := []any{code, fiscalYear}

	if department != domain.AllDepartments {
		sql += ` AND e.department = $3`
		args = append(args, department)
	}

	var total int64
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&total)

	return total, err
}
