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

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// Create persists the entry and all its lines inside tx.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := pgxFrom(tx)

	_, err := pgxTx.Exec(ctx, `
INSERT INTO journal_entries (
	id, ref, entry_date, entry_type, description,
	student_id, staff_id, term_id, department,
	is_posted, is_voided, approval_status,
	created_by, created_at, source_legacy_transaction_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		entry.ID,
		entry.Ref,
		timeToPgTimestamptz(entry.Date),
		string(entry.Type),
		entry.Description,
		strToPgText(entry.StudentID),
		strToPgText(entry.StaffID),
		strToPgText(entry.TermID),
		strToPgText(entry.Department),
		entry.IsPosted,
		entry.IsVoided,
		string(entry.ApprovalStatus),
		entry.CreatedBy,
		timeToPgTimestamptz(entry.CreatedAt),
		int64ToPgInt8(entry.SourceLegacyTransactionID),
	)

	switch {
	case uniqueViolation(err, "journal_entries_source_legacy_transaction_id_key"):
		return domain.ErrDuplicateSource
	case uniqueViolation(err, "journal_entries_ref_key"):
		return domain.ErrDuplicateRef
	case err != nil:
		return err
	}

	for i := range entry.Lines {
		line := &entry.Lines[i]

		_, err := pgxTx.Exec(ctx, `
INSERT INTO journal_entry_lines (entry_id, line_number, gl_account_code, debit_amount, credit_amount, description)
VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID,
			line.LineNumber,
			line.GLAccountCode,
			line.DebitAmount,
			line.CreditAmount,
			line.Description,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

const selectEntrySQL = `
SELECT id, ref, entry_date, entry_type, description,
	student_id, staff_id, term_id, department,
	is_posted, is_voided, voided_by, void_reason, voided_at,
	approval_status, created_by, created_at, source_legacy_transaction_id
FROM journal_entries`

// GetByID retrieves an entry with its lines.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves an entry with a FOR UPDATE lock on its row.
func (r *JournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error) {
	return r.getByID(ctx, pgxFrom(tx), id, " FOR UPDATE")
}

func (r *JournalRepository) getByID(ctx context.Context, db dbtx, id, lock string) (*domain.JournalEntry, error) {
	row := db.QueryRow(ctx, selectEntrySQL+` WHERE id = $1`+lock, id)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}

	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, db, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *JournalRepository) loadLines(ctx context.Context, db dbtx, entry *domain.JournalEntry) error {
	rows, err := db.Query(ctx, `
SELECT line_number, gl_account_code, debit_amount, credit_amount, description
FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number`, entry.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalEntryLine
		if err := rows.Scan(&line.LineNumber, &line.GLAccountCode, &line.DebitAmount, &line.CreditAmount, &line.Description); err != nil {
			return err
		}

		entry.Lines = append(entry.Lines, line)
	}

	return rows.Err()
}

// SetApproval flips approval status and posting flag together.
func (r *JournalRepository) SetApproval(ctx context.Context, tx usecase.Transaction, id string, status domain.ApprovalStatus, posted bool) error {
	tag, err := pgxFrom(tx).Exec(ctx,
		`UPDATE journal_entries SET approval_status = $2, is_posted = $3 WHERE id = $1`,
		id, string(status), posted,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// SetVoided writes the void metadata. Lines are never touched.
func (r *JournalRepository) SetVoided(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	tag, err := pgxFrom(tx).Exec(ctx, `
UPDATE journal_entries
SET is_voided = $2, voided_by = $3, void_reason = $4, voided_at = $5
WHERE id = $1`,
		entry.ID,
		entry.IsVoided,
		strToPgText(entry.VoidedBy),
		strToPgText(entry.VoidReason),
		ptrToPgTimestamptz(entry.VoidedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// ListVoided lists voided entries, most recent void first.
func (r *JournalRepository) ListVoided(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, selectEntrySQL+` WHERE is_voided ORDER BY voided_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := r.loadLines(ctx, r.pool, entry); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// TrialBalanceRows aggregates posted, non-voided lines per account up to asOf.
func (r *JournalRepository) TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := r.pool.Query(ctx, `
SELECT a.code, a.name, a.account_type, a.normal_balance,
	COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
FROM gl_accounts a
JOIN journal_entry_lines l ON l.gl_account_code = a.code
JOIN journal_entries e ON e.id = l.entry_id
WHERE e.is_posted AND NOT e.is_voided AND e.entry_date <= $1
GROUP BY a.code, a.name, a.account_type, a.normal_balance
ORDER BY a.code`, timeToPgTimestamptz(asOf))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TrialBalanceRow
	for rows.Next() {
		var (
			row           domain.TrialBalanceRow
			accountType   string
			normalBalance string
		)

		if err := rows.Scan(&row.AccountCode, &row.AccountName, &accountType, &normalBalance, &row.TotalDebits, &row.TotalCredits); err != nil {
			return nil, err
		}

		row.AccountType = domain.AccountType(accountType)
		row.NormalBalance = domain.NormalBalance(normalBalance)

		if row.NormalBalance == domain.NormalBalanceDebit {
			row.Balance = row.TotalDebits - row.TotalCredits
		} else {
			row.Balance = row.TotalCredits - row.TotalDebits
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

// AccountTotalsBefore sums one account's posted, non-voided activity strictly
// before the given time.
func (r *JournalRepository) AccountTotalsBefore(ctx context.Context, code string, before time.Time) (int64, int64, error) {
	var debits, credits int64

	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
FROM journal_entry_lines l
JOIN journal_entries e ON e.id = l.entry_id
WHERE l.gl_account_code = $1 AND e.is_posted AND NOT e.is_voided AND e.entry_date < $2`,
		code, timeToPgTimestamptz(before),
	).Scan(&debits, &credits)

	return debits, credits, err
}

// ListLinesByAccount lists one account's posted, non-voided lines in a range,
// in entry date order.
func (r *JournalRepository) ListLinesByAccount(ctx context.Context, code string, from, to time.Time) ([]domain.GeneralLedgerLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT e.id, e.ref, e.entry_date, e.entry_type, l.description, l.debit_amount, l.credit_amount
FROM journal_entry_lines l
JOIN journal_entries e ON e.id = l.entry_id
WHERE l.gl_account_code = $1 AND e.is_posted AND NOT e.is_voided
	AND e.entry_date >= $2 AND e.entry_date <= $3
ORDER BY e.entry_date, e.id, l.line_number`,
		code, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GeneralLedgerLine
	for rows.Next() {
		var (
			line      domain.GeneralLedgerLine
			entryDate pgtype.Timestamptz
			entryType string
		)

		if err := rows.Scan(&line.EntryID, &line.EntryRef, &entryDate, &entryType, &line.Description, &line.DebitAmount, &line.CreditAmount); err != nil {
			return nil, err
		}

		line.Date = entryDate.Time
		line.EntryType = domain.EntryType(entryType)

		out = append(out, line)
	}

	return out, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry          domain.JournalEntry
		entryDate      pgtype.Timestamptz
		entryType      string
		studentID      pgtype.Text
		staffID        pgtype.Text
		termID         pgtype.Text
		department     pgtype.Text
		voidedBy       pgtype.Text
		voidReason     pgtype.Text
		voidedAt       pgtype.Timestamptz
		approvalStatus string
		createdAt      pgtype.Timestamptz
		sourceID       pgtype.Int8
	)

	err := row.Scan(
		&entry.ID,
		&entry.Ref,
		&entryDate,
		&entryType,
		&entry.Description,
		&studentID,
		&staffID,
		&termID,
		&department,
		&entry.IsPosted,
		&entry.IsVoided,
		&voidedBy,
		&voidReason,
		&voidedAt,
		&approvalStatus,
		&entry.CreatedBy,
		&createdAt,
		&sourceID,
	)
	if err != nil {
		return nil, err
	}

	entry.Date = entryDate.Time
	entry.Type = domain.EntryType(entryType)
	entry.StudentID = pgTextToStr(studentID)
	entry.StaffID = pgTextToStr(staffID)
	entry.TermID = pgTextToStr(termID)
	entry.Department = pgTextToStr(department)
	entry.VoidedBy = pgTextToStr(voidedBy)
	entry.VoidReason = pgTextToStr(voidReason)
	entry.VoidedAt = pgTimestamptzToPtr(voidedAt)
	entry.ApprovalStatus = domain.ApprovalStatus(approvalStatus)
	entry.CreatedAt = createdAt.Time
	entry.SourceLegacyTransactionID = pgInt8ToInt64(sourceID)

	return &entry, nil
}
