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

// ApprovalRuleRepository implements usecase.ApprovalRuleRepository.
type ApprovalRuleRepository struct {
	pool *pgxpool.Pool
}

// NewApprovalRuleRepository creates a new ApprovalRuleRepository.
func NewApprovalRuleRepository(pool *pgxpool.Pool) *ApprovalRuleRepository {
	return &ApprovalRuleRepository{pool: pool}
}

const selectRuleSQL = `
SELECT id, name, transaction_type, min_amount, max_amount, days_since_transaction,
	required_approver_role, is_active, created_at
FROM approval_rules`

// Create creates a new rule.
func (r *ApprovalRuleRepository) Create(ctx context.Context, rule *domain.ApprovalRule) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO approval_rules (id, name, transaction_type, min_amount, max_amount, days_since_transaction, required_approver_role, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rule.ID,
		rule.Name,
		string(rule.TransactionType),
		int64ToPgInt8(rule.MinAmount),
		int64ToPgInt8(rule.MaxAmount),
		intToPgInt4(rule.DaysSinceTransaction),
		string(rule.RequiredApproverRole),
		rule.IsActive,
		timeToPgTimestamptz(rule.CreatedAt),
	)

	return err
}

// ListActiveByType lists active rules for one transaction type.
func (r *ApprovalRuleRepository) ListActiveByType(ctx context.Context, txType domain.EntryType) ([]*domain.ApprovalRule, error) {
	rows, err := r.pool.Query(ctx, selectRuleSQL+` WHERE is_active AND transaction_type = $1 ORDER BY id`, string(txType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRules(rows)
}

// List lists every rule.
func (r *ApprovalRuleRepository) List(ctx context.Context) ([]*domain.ApprovalRule, error) {
	rows, err := r.pool.Query(ctx, selectRuleSQL+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRules(rows)
}

func collectRules(rows pgx.Rows) ([]*domain.ApprovalRule, error) {
	var out []*domain.ApprovalRule

	for rows.Next() {
		var (
			rule      domain.ApprovalRule
			txType    string
			minAmount pgtype.Int8
			maxAmount pgtype.Int8
			days      pgtype.Int4
			role      string
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&rule.ID, &rule.Name, &txType, &minAmount, &maxAmount, &days, &role, &rule.IsActive, &createdAt)
		if err != nil {
			return nil, err
		}

		rule.TransactionType = domain.EntryType(txType)
		rule.MinAmount = pgInt8ToInt64(minAmount)
		rule.MaxAmount = pgInt8ToInt64(maxAmount)
		rule.DaysSinceTransaction = pgInt4ToInt(days)
		rule.RequiredApproverRole = domain.Role(role)
		rule.CreatedAt = createdAt.Time

		out = append(out, &rule)
	}

	return out, rows.Err()
}

// ApprovalRequestRepository implements usecase.ApprovalRequestRepository.
type ApprovalRequestRepository struct {
	pool *pgxpool.Pool
}

// NewApprovalRequestRepository creates a new ApprovalRequestRepository.
func NewApprovalRequestRepository(pool *pgxpool.Pool) *ApprovalRequestRepository {
	return &ApprovalRequestRepository{pool: pool}
}

const selectRequestSQL = `
SELECT id, action, journal_entry_id, required_role, status, reason, payload,
	requested_by, requested_at, reviewed_by, review_notes, reviewed_at
FROM approval_requests`

// Create persists a new request inside tx. Budget-change requests have no
// journal entry; the column stays NULL.
func (r *ApprovalRequestRepository) Create(ctx context.Context, tx usecase.Transaction, request *domain.ApprovalRequest) error {
	var entryID pgtype.Text
	if request.JournalEntryID != "" {
		entryID = pgtype.Text{String: request.JournalEntryID, Valid: true}
	}

	_, err := pgxFrom(tx).Exec(ctx, `
INSERT INTO approval_requests (id, action, journal_entry_id, required_role, status, reason, payload, requested_by, requested_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		request.ID,
		string(request.Action),
		entryID,
		string(request.RequiredRole),
		string(request.Status),
		request.Reason,
		request.Payload,
		request.RequestedBy,
		timeToPgTimestamptz(request.RequestedAt),
	)

	return err
}

// GetByID retrieves a request.
func (r *ApprovalRequestRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	return getRequest(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a request with a FOR UPDATE lock.
func (r *ApprovalRequestRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ApprovalRequest, error) {
	return getRequest(ctx, pgxFrom(tx), id, " FOR UPDATE")
}

func getRequest(ctx context.Context, db dbtx, id, lock string) (*domain.ApprovalRequest, error) {
	row := db.QueryRow(ctx, selectRequestSQL+` WHERE id = $1`+lock, id)

	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}

	return request, err
}

// SetReviewed records the review outcome inside tx.
func (r *ApprovalRequestRepository) SetReviewed(ctx context.Context, tx usecase.Transaction, id string, status domain.RequestStatus, reviewedBy, notes string, reviewedAt time.Time) error {
	tag, err := pgxFrom(tx).Exec(ctx, `
UPDATE approval_requests
SET status = $2, reviewed_by = $3, review_notes = $4, reviewed_at = $5
WHERE id = $1`,
		id, string(status), reviewedBy, notes, timeToPgTimestamptz(reviewedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}

	return nil
}

// ListPending lists pending requests for one approver role, oldest first.
func (r *ApprovalRequestRepository) ListPending(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.ApprovalRequest, error) {
	rows, err := r.pool.Query(ctx,
		selectRequestSQL+` WHERE status = 'PENDING' AND required_role = $1 ORDER BY requested_at LIMIT $2 OFFSET $3`,
		string(role), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ApprovalRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, request)
	}

	return out, rows.Err()
}

func scanRequest(row pgx.Row) (*domain.ApprovalRequest, error) {
	var (
		request     domain.ApprovalRequest
		action      string
		entryID     pgtype.Text
		role        string
		status      string
		requestedAt pgtype.Timestamptz
		reviewedBy  pgtype.Text
		reviewNotes pgtype.Text
		reviewedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&request.ID,
		&action,
		&entryID,
		&role,
		&status,
		&request.Reason,
		&request.Payload,
		&request.RequestedBy,
		&requestedAt,
		&reviewedBy,
		&reviewNotes,
		&reviewedAt,
	)
	if err != nil {
		return nil, err
	}

	request.Action = domain.RequestAction(action)
	request.JournalEntryID = entryID.String
	request.RequiredRole = domain.Role(role)
	request.Status = domain.RequestStatus(status)
	request.RequestedAt = requestedAt.Time
	request.ReviewedBy = pgTextToStr(reviewedBy)
	request.ReviewNotes = pgTextToStr(reviewNotes)
	request.ReviewedAt = pgTimestamptzToPtr(reviewedAt)

	return &request, nil
}
