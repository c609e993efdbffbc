package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase/mocks"
)

// recordingExecutor captures which side effect the workflow invoked.
type recordingExecutor struct {
	posted      []string
	rejected    []string
	voided      []string
	invalidated int

	postErr error
}

func (e *recordingExecutor) ExecutePost(ctx context.Context, tx usecase.Transaction, entryID string) error {
	if e.postErr != nil {
		return e.postErr
	}

	e.posted = append(e.posted, entryID)

	return nil
}

func (e *recordingExecutor) ExecuteReject(ctx context.Context, tx usecase.Transaction, entryID string) error {
	e.rejected = append(e.rejected, entryID)
	return nil
}

func (e *recordingExecutor) ExecuteVoid(ctx context.Context, tx usecase.Transaction, entryID, reason, reviewerID, requestID string) error {
	e.voided = append(e.voided, entryID)
	return nil
}

func (e *recordingExecutor) InvalidateReports(ctx context.Context) {
	e.invalidated++
}

// recordingBudgetExecutor captures deferred budget payloads the workflow applied.
type recordingBudgetExecutor struct {
	applied [][]byte
}

func (e *recordingBudgetExecutor) ExecuteBudgetChange(ctx context.Context, tx usecase.Transaction, payload []byte) error {
	e.applied = append(e.applied, payload)
	return nil
}

func seedRequest(t *testing.T, repo *mocks.MockApprovalRequestRepository, action domain.RequestAction, status domain.RequestStatus) *domain.ApprovalRequest {
	t.Helper()

	request := &domain.ApprovalRequest{
		ID:             "req-1",
		Action:         action,
		JournalEntryID: "entry-1",
		RequiredRole:   domain.RoleHeadteacher,
		Status:         status,
		Reason:         "large expense",
		RequestedBy:    "user-1",
		RequestedAt:    time.Now().UTC(),
	}

	if err := repo.Create(context.Background(), nil, request); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	return request
}

func TestApprovalUseCase_ApproveRequest(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	executor := &recordingExecutor{}
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

	seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

	request, err := uc.ApproveRequest(context.Background(), "req-1", "reviewer-1", domain.RoleHeadteacher, "checked invoices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != domain.RequestStatusApproved {
		t.Errorf("expected APPROVED, got %s", request.Status)
	}

	if request.ReviewedBy == nil || *request.ReviewedBy != "reviewer-1" {
		t.Error("reviewer identity not recorded")
	}

	if len(executor.posted) != 1 || executor.posted[0] != "entry-1" {
		t.Errorf("expected entry-1 posted, got %v", executor.posted)
	}

	// Terminal requests cannot be re-reviewed.
	if _, err := uc.ApproveRequest(context.Background(), "req-1", "reviewer-2", domain.RoleHeadteacher, ""); !errors.Is(err, domain.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
}

func TestApprovalUseCase_ApproveRequest_SideEffectFailureLeavesPending(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	executor := &recordingExecutor{postErr: domain.ErrEntryNotPending}
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

	seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

	if _, err := uc.ApproveRequest(context.Background(), "req-1", "reviewer-1", domain.RoleHeadteacher, ""); !errors.Is(err, domain.ErrEntryNotPending) {
		t.Fatalf("expected ErrEntryNotPending, got %v", err)
	}

	request, _ := requestRepo.GetByID(context.Background(), "req-1")
	if request.Status != domain.RequestStatusPending {
		t.Errorf("request must stay PENDING when the side effect fails, got %s", request.Status)
	}
}

func TestApprovalUseCase_ApproveRequest_VoidAction(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	executor := &recordingExecutor{}
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

	seedRequest(t, requestRepo, domain.RequestActionVoidEntry, domain.RequestStatusPending)

	if _, err := uc.ApproveRequest(context.Background(), "req-1", "reviewer-1", domain.RoleHeadteacher, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(executor.voided) != 1 || executor.voided[0] != "entry-1" {
		t.Errorf("expected entry-1 voided, got %v", executor.voided)
	}
}

func TestApprovalUseCase_ApproveRequest_ReviewerAuthorization(t *testing.T) {
	tests := []struct {
		name        string
		reviewerID  string
		role        domain.Role
		expectError error
	}{
		{name: "requester cannot self-approve", reviewerID: "user-1", role: domain.RoleDirector, expectError: domain.ErrSelfReview},
		{name: "bursar cannot approve a headteacher request", reviewerID: "reviewer-1", role: domain.RoleBursar, expectError: domain.ErrInsufficientRole},
		{name: "unknown role is insufficient", reviewerID: "reviewer-1", role: domain.Role("CLERK"), expectError: domain.ErrInsufficientRole},
		{name: "director outranks the required headteacher", reviewerID: "reviewer-1", role: domain.RoleDirector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestRepo := mocks.NewMockApprovalRequestRepository()
			executor := &recordingExecutor{}
			uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

			seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

			_, err := uc.ApproveRequest(context.Background(), "req-1", tt.reviewerID, tt.role, "")

			if tt.expectError == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected %v, got %v", tt.expectError, err)
			}

			if len(executor.posted) != 0 {
				t.Errorf("refused approval must not post, got %v", executor.posted)
			}

			request, _ := requestRepo.GetByID(context.Background(), "req-1")
			if request.Status != domain.RequestStatusPending {
				t.Errorf("request must stay PENDING, got %s", request.Status)
			}
		})
	}
}

func TestApprovalUseCase_RejectRequest_ReviewerAuthorization(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	executor := &recordingExecutor{}
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

	seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

	if _, err := uc.RejectRequest(context.Background(), "req-1", "user-1", domain.RoleDirector, "no"); !errors.Is(err, domain.ErrSelfReview) {
		t.Fatalf("expected ErrSelfReview, got %v", err)
	}

	if _, err := uc.RejectRequest(context.Background(), "req-1", "reviewer-1", domain.RoleBursar, "no"); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}

	if len(executor.rejected) != 0 {
		t.Errorf("refused rejection must not touch the entry, got %v", executor.rejected)
	}
}

func TestApprovalUseCase_ApproveRequest_DropsReportCache(t *testing.T) {
	for _, action := range []domain.RequestAction{domain.RequestActionPostEntry, domain.RequestActionVoidEntry} {
		t.Run(string(action), func(t *testing.T) {
			requestRepo := mocks.NewMockApprovalRequestRepository()
			executor := &recordingExecutor{}
			uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

			seedRequest(t, requestRepo, action, domain.RequestStatusPending)

			if _, err := uc.ApproveRequest(context.Background(), "req-1", "reviewer-1", domain.RoleHeadteacher, ""); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if executor.invalidated != 1 {
				t.Errorf("approved %s must drop the report cache, invalidated %d times", action, executor.invalidated)
			}
		})
	}
}

func TestApprovalUseCase_ApproveRequest_BudgetChange(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	executor := &recordingExecutor{}
	budgetExec := &recordingBudgetExecutor{}
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, budgetExec, nil)

	payload := []byte(`{"GLAccountCode":"5100","FiscalYear":"2026","Department":"ALL_DEPARTMENTS","Allocated":5000000,"SetBy":"bursar-1"}`)

	request := &domain.ApprovalRequest{
		ID:           "req-b",
		Action:       domain.RequestActionBudgetChange,
		RequiredRole: domain.RoleDirector,
		Status:       domain.RequestStatusPending,
		Payload:      payload,
		RequestedBy:  "bursar-1",
		RequestedAt:  time.Now().UTC(),
	}

	if err := requestRepo.Create(context.Background(), nil, request); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	if _, err := uc.ApproveRequest(context.Background(), "req-b", "director-1", domain.RoleDirector, "within plan"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(budgetExec.applied) != 1 || string(budgetExec.applied[0]) != string(payload) {
		t.Fatalf("expected deferred payload to be applied, got %v", budgetExec.applied)
	}

	// Budget changes do not touch the ledger reports.
	if executor.invalidated != 0 {
		t.Errorf("budget change must not drop the report cache, invalidated %d times", executor.invalidated)
	}
}

func TestApprovalUseCase_RejectRequest(t *testing.T) {
	tests := []struct {
		name        string
		notes       string
		reviewerID  string
		expectError error
	}{
		{name: "rejection with notes", notes: "missing receipts", reviewerID: "reviewer-1"},
		{name: "notes required", notes: "   ", reviewerID: "reviewer-1", expectError: domain.ErrReviewNotesRequired},
		{name: "actor required", notes: "missing receipts", reviewerID: "", expectError: domain.ErrMissingActor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestRepo := mocks.NewMockApprovalRequestRepository()
			executor := &recordingExecutor{}
			uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, executor, nil, nil)

			seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

			request, err := uc.RejectRequest(context.Background(), "req-1", tt.reviewerID, domain.RoleHeadteacher, tt.notes)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if request.Status != domain.RequestStatusRejected {
				t.Errorf("expected REJECTED, got %s", request.Status)
			}

			// A rejected posting request marks its entry rejected.
			if len(executor.rejected) != 1 {
				t.Errorf("expected entry rejection, got %v", executor.rejected)
			}
		})
	}
}

func TestApprovalUseCase_CancelRequest(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, &recordingExecutor{}, nil, nil)

	seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

	// Only the requester may cancel.
	if _, err := uc.CancelRequest(context.Background(), "req-1", "someone-else"); !errors.Is(err, domain.ErrNotRequester) {
		t.Fatalf("expected ErrNotRequester, got %v", err)
	}

	request, err := uc.CancelRequest(context.Background(), "req-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != domain.RequestStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", request.Status)
	}
}

func TestApprovalUseCase_GetApprovalQueue(t *testing.T) {
	requestRepo := mocks.NewMockApprovalRequestRepository()
	uc := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, &recordingExecutor{}, nil, nil)

	seedRequest(t, requestRepo, domain.RequestActionPostEntry, domain.RequestStatusPending)

	queue, err := uc.GetApprovalQueue(context.Background(), domain.RoleHeadteacher, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(queue) != 1 {
		t.Errorf("expected 1 pending request for HEADTEACHER, got %d", len(queue))
	}

	// Other roles see nothing; unknown roles are rejected.
	queue, err = uc.GetApprovalQueue(context.Background(), domain.RoleDirector, 0, 0)
	if err != nil || len(queue) != 0 {
		t.Errorf("expected empty DIRECTOR queue, got %d (%v)", len(queue), err)
	}

	if _, err := uc.GetApprovalQueue(context.Background(), domain.Role("JANITOR"), 0, 0); !errors.Is(err, domain.ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}
