package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/metrics"
)

// ActionExecutor applies the side effect of a reviewed entry request inside
// the workflow's transaction, so the mutation commits atomically with the
// status flip. The journal engine implements it. InvalidateReports runs after
// commit so approved mutations are never served from a stale report cache.
type ActionExecutor interface {
	ExecutePost(ctx context.Context, tx Transaction, entryID string) error
	ExecuteReject(ctx context.Context, tx Transaction, entryID string) error
	ExecuteVoid(ctx context.Context, tx Transaction, entryID, reason, reviewerID, requestID string) error
	InvalidateReports(ctx context.Context)
}

// BudgetChangeExecutor applies an approved budget change inside the
// workflow's transaction. The budget engine implements it.
type BudgetChangeExecutor interface {
	ExecuteBudgetChange(ctx context.Context, tx Transaction, payload []byte) error
}

// ApprovalUseCase is the stateful approval workflow:
// PENDING -> APPROVED | REJECTED | CANCELLED, all terminal.
type ApprovalUseCase struct {
	txManager   TransactionManager
	requestRepo ApprovalRequestRepository
	executor    ActionExecutor
	budgetExec  BudgetChangeExecutor
	metrics     *metrics.Metrics
}

// NewApprovalUseCase creates a new ApprovalUseCase. metrics may be nil.
func NewApprovalUseCase(txManager TransactionManager, requestRepo ApprovalRequestRepository, executor ActionExecutor, budgetExec BudgetChangeExecutor, m *metrics.Metrics) *ApprovalUseCase {
	return &ApprovalUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		executor:    executor,
		budgetExec:  budgetExec,
		metrics:     m,
	}
}

func (uc *ApprovalUseCase) recordReview(status domain.RequestStatus) {
	if uc.metrics != nil {
		uc.metrics.ApprovalsReviewed.WithLabelValues(string(status)).Inc()
	}
}

// ApproveRequest grants a pending request and applies its side effect in the
// same transaction. A request left PENDING never has its mutation applied.
// The reviewer must hold at least the request's required role and must not be
// the requester.
func (uc *ApprovalUseCase) ApproveRequest(ctx context.Context, requestID, reviewerID string, reviewerRole domain.Role, notes string) (*domain.ApprovalRequest, error) {
	if reviewerID == "" {
		return nil, domain.ErrMissingActor
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	request, err := uc.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}

	if request.IsTerminal() {
		return nil, domain.ErrRequestNotPending
	}

	if err := authorizeReview(request, reviewerID, reviewerRole); err != nil {
		return nil, err
	}

	switch request.Action {
	case domain.RequestActionPostEntry:
		if err := uc.executor.ExecutePost(ctx, tx, request.JournalEntryID); err != nil {
			return nil, err
		}
	case domain.RequestActionVoidEntry:
		if err := uc.executor.ExecuteVoid(ctx, tx, request.JournalEntryID, request.Reason, reviewerID, request.ID); err != nil {
			return nil, err
		}
	case domain.RequestActionBudgetChange:
		if err := uc.budgetExec.ExecuteBudgetChange(ctx, tx, request.Payload); err != nil {
			return nil, err
		}
	}

	if err := uc.requestRepo.SetReviewed(ctx, tx, requestID, domain.RequestStatusApproved, reviewerID, notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if request.Action != domain.RequestActionBudgetChange {
		uc.executor.InvalidateReports(ctx)
	}

	request.Status = domain.RequestStatusApproved
	request.ReviewedBy = &reviewerID
	request.ReviewNotes = &notes
	request.ReviewedAt = &now

	uc.recordReview(domain.RequestStatusApproved)

	return request, nil
}

// authorizeReview enforces who may decide a request: never the requester,
// and only a reviewer whose role ranks at or above the required role.
func authorizeReview(request *domain.ApprovalRequest, reviewerID string, reviewerRole domain.Role) error {
	if request.RequestedBy == reviewerID {
		return domain.ErrSelfReview
	}

	if domain.RoleRank(reviewerRole) < domain.RoleRank(request.RequiredRole) {
		return domain.ErrInsufficientRole
	}

	return nil
}

// RejectRequest declines a pending request. Rejection always needs notes and
// is held to the same reviewer authorization as approval.
func (uc *ApprovalUseCase) RejectRequest(ctx context.Context, requestID, reviewerID string, reviewerRole domain.Role, notes string) (*domain.ApprovalRequest, error) {
	if reviewerID == "" {
		return nil, domain.ErrMissingActor
	}

	if strings.TrimSpace(notes) == "" {
		return nil, domain.ErrReviewNotesRequired
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	request, err := uc.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}

	if request.IsTerminal() {
		return nil, domain.ErrRequestNotPending
	}

	if err := authorizeReview(request, reviewerID, reviewerRole); err != nil {
		return nil, err
	}

	// A rejected posting request marks the underlying entry rejected so it
	// can never be posted later. Rejected voids leave the entry as it was.
	if request.Action == domain.RequestActionPostEntry {
		if err := uc.executor.ExecuteReject(ctx, tx, request.JournalEntryID); err != nil {
			return nil, err
		}
	}

	if err := uc.requestRepo.SetReviewed(ctx, tx, requestID, domain.RequestStatusRejected, reviewerID, notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	request.Status = domain.RequestStatusRejected
	request.ReviewedBy = &reviewerID
	request.ReviewNotes = &notes
	request.ReviewedAt = &now

	uc.recordReview(domain.RequestStatusRejected)

	return request, nil
}

// CancelRequest withdraws a pending request. Only the requester may cancel.
func (uc *ApprovalUseCase) CancelRequest(ctx context.Context, requestID, userID string) (*domain.ApprovalRequest, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	request, err := uc.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}

	if request.IsTerminal() {
		return nil, domain.ErrRequestNotPending
	}

	if request.RequestedBy != userID {
		return nil, domain.ErrNotRequester
	}

	if err := uc.requestRepo.SetReviewed(ctx, tx, requestID, domain.RequestStatusCancelled, userID, "cancelled by requester", now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	request.Status = domain.RequestStatusCancelled
	request.ReviewedBy = &userID
	request.ReviewedAt = &now

	uc.recordReview(domain.RequestStatusCancelled)

	return request, nil
}

// GetApprovalQueue lists pending requests for an approver role.
func (uc *ApprovalUseCase) GetApprovalQueue(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.ApprovalRequest, error) {
	if domain.RoleRank(role) == 0 {
		return nil, domain.ErrUnknownRole
	}

	if limit <= 0 {
		limit = 50
	}

	if limit > 500 {
		limit = 500
	}

	return uc.requestRepo.ListPending(ctx, role, limit, offset)
}

// GetRequest retrieves one request.
func (uc *ApprovalUseCase) GetRequest(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	return uc.requestRepo.GetByID(ctx, id)
}
