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

// VoidAuditRepository implements usecase.VoidAuditRepository.
type VoidAuditRepository struct {
	pool *pgxpool.Pool
}

// NewVoidAuditRepository creates a new VoidAuditRepository.
func NewVoidAuditRepository(pool *pgxpool.Pool) *VoidAuditRepository {
	return &VoidAuditRepository{pool: pool}
}

const selectAuditSQL = `
SELECT id, journal_entry_id, original_amount, reason, voided_by, voided_at,
	approval_request_id, recovered_amount, recovery_notes, recovered_by, recovered_at
FROM void_audits`

// Create persists an audit row inside tx.
func (r *VoidAuditRepository) Create(ctx context.Context, tx usecase.Transaction, audit *domain.VoidAudit) error {
	_, err := pgxFrom(tx).Exec(ctx, `
INSERT INTO void_audits (id, journal_entry_id, original_amount, reason, voided_by, voided_at, approval_request_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		audit.ID,
		audit.JournalEntryID,
		audit.OriginalAmount,
		audit.Reason,
		audit.VoidedBy,
		timeToPgTimestamptz(audit.VoidedAt),
		strToPgText(audit.ApprovalRequestID),
	)

	return err
}

// GetByEntry retrieves the audit row for a voided entry.
func (r *VoidAuditRepository) GetByEntry(ctx context.Context, entryID string) (*domain.VoidAudit, error) {
	row := r.pool.QueryRow(ctx, selectAuditSQL+` WHERE journal_entry_id = $1`, entryID)

	audit, err := scanAudit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}

	return audit, err
}

// AttachRecovery records the recovery outcome once. A second attempt finds
// recovered_at already set and affects no rows.
func (r *VoidAuditRepository) AttachRecovery(ctx context.Context, auditID string, amount int64, notes, recordedBy string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE void_audits
SET recovered_amount = $2, recovery_notes = $3, recovered_by = $4, recovered_at = $5
WHERE id = $1 AND recovered_at IS NULL`,
		auditID, amount, notes, recordedBy, timeToPgTimestamptz(at),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// List lists audit rows, most recent void first.
func (r *VoidAuditRepository) List(ctx context.Context, limit, offset int) ([]*domain.VoidAudit, error) {
	rows, err := r.pool.Query(ctx, selectAuditSQL+` ORDER BY voided_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.VoidAudit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, audit)
	}

	return out, rows.Err()
}

func scanAudit(row pgx.Row) (*domain.VoidAudit, error) {
	var (
		audit           domain.VoidAudit
		voidedAt        pgtype.Timestamptz
		requestID       pgtype.Text
		recoveredAmount pgtype.Int8
		recoveryNotes   pgtype.Text
		recoveredBy     pgtype.Text
		recoveredAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&audit.ID,
		&audit.JournalEntryID,
		&audit.OriginalAmount,
		&audit.Reason,
		&audit.VoidedBy,
		&voidedAt,
		&requestID,
		&recoveredAmount,
		&recoveryNotes,
		&recoveredBy,
		&recoveredAt,
	)
	if err != nil {
		return nil, err
	}

	audit.VoidedAt = voidedAt.Time
	audit.ApprovalRequestID = pgTextToStr(requestID)
	audit.RecoveredAmount = pgInt8ToInt64(recoveredAmount)
	audit.RecoveryNotes = pgTextToStr(recoveryNotes)
	audit.RecoveredBy = pgTextToStr(recoveredBy)
	audit.RecoveredAt = pgTimestamptzToPtr(recoveredAt)

	return &audit, nil
}
