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

// GLAccountRepository implements usecase.GLAccountRepository.
type GLAccountRepository struct {
	pool *pgxpool.Pool
}

// NewGLAccountRepository creates a new GLAccountRepository.
func NewGLAccountRepository(pool *pgxpool.Pool) *GLAccountRepository {
	return &GLAccountRepository{pool: pool}
}

const insertAccountSQL = `
INSERT INTO gl_accounts (code, name, account_type, normal_balance, parent_code, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create creates a new account. Codes are unique across the chart.
func (r *GLAccountRepository) Create(ctx context.Context, account *domain.GLAccount) error {
	_, err := r.pool.Exec(ctx, insertAccountSQL,
		account.Code,
		account.Name,
		string(account.Type),
		string(account.NormalBalance),
		strToPgText(account.ParentCode),
		account.IsActive,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if uniqueViolation(err, "gl_accounts_pkey") {
		return domain.ErrDuplicateAccountCode
	}

	return err
}

// CreateIfAbsent inserts the account unless its code already exists.
func (r *GLAccountRepository) CreateIfAbsent(ctx context.Context, tx usecase.Transaction, account *domain.GLAccount) (bool, error) {
	tag, err := pgxFrom(tx).Exec(ctx, insertAccountSQL+` ON CONFLICT (code) DO NOTHING`,
		account.Code,
		account.Name,
		string(account.Type),
		string(account.NormalBalance),
		strToPgText(account.ParentCode),
		account.IsActive,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

const selectAccountSQL = `
SELECT code, name, account_type, normal_balance, parent_code, is_active, created_at, updated_at
FROM gl_accounts`

// GetByCode retrieves an account by code.
func (r *GLAccountRepository) GetByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	row := r.pool.QueryRow(ctx, selectAccountSQL+` WHERE code = $1`, code)

	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	return account, err
}

// GetByCodes resolves several accounts inside a transaction. Codes must be
// passed sorted so concurrent resolvers lock rows in the same order.
func (r *GLAccountRepository) GetByCodes(ctx context.Context, tx usecase.Transaction, codes []string) ([]*domain.GLAccount, error) {
	rows, err := pgxFrom(tx).Query(ctx, selectAccountSQL+` WHERE code = ANY($1) ORDER BY code`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.GLAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Update writes the mutable fields.
func (r *GLAccountRepository) Update(ctx context.Context, account *domain.GLAccount) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE gl_accounts SET name = $2, parent_code = $3, updated_at = $4 WHERE code = $1`,
		account.Code,
		account.Name,
		strToPgText(account.ParentCode),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// SetActive activates or deactivates an account.
func (r *GLAccountRepository) SetActive(ctx context.Context, code string, active bool, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE gl_accounts SET is_active = $2, updated_at = $3 WHERE code = $1`,
		code, active, timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists the chart ordered by code.
func (r *GLAccountRepository) List(ctx context.Context, includeInactive bool) ([]*domain.GLAccount, error) {
	sql := selectAccountSQL
	if !includeInactive {
		sql += ` WHERE is_active`
	}

	rows, err := r.pool.Query(ctx, sql+` ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.GLAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.GLAccount, error) {
	var (
		account       domain.GLAccount
		accountType   string
		normalBalance string
		parentCode    pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&account.Code,
		&account.Name,
		&accountType,
		&normalBalance,
		&parentCode,
		&account.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.NormalBalance = domain.NormalBalance(normalBalance)
	account.ParentCode = pgTextToStr(parentCode)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
