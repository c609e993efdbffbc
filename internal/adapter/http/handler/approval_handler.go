package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// ApprovalService defines the behavior needed by ApprovalHandler.
type ApprovalService interface {
	ApproveRequest(ctx context.Context, requestID, reviewerID string, reviewerRole domain.Role, notes string) (*domain.ApprovalRequest, error)
	RejectRequest(ctx context.Context, requestID, reviewerID string, reviewerRole domain.Role, notes string) (*domain.ApprovalRequest, error)
	CancelRequest(ctx context.Context, requestID, userID string) (*domain.ApprovalRequest, error)
	GetApprovalQueue(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.ApprovalRequest, error)
	GetRequest(ctx context.Context, id string) (*domain.ApprovalRequest, error)
}

// ApprovalHandler handles approval-workflow HTTP requests.
type ApprovalHandler struct {
	approvalUC ApprovalService
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(approvalUC ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalUC: approvalUC}
}

// Queue lists pending requests reviewable by the given role.
func (h *ApprovalHandler) Queue(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(r.URL.Query().Get("role"))
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	requests, err := h.approvalUC.GetApprovalQueue(r.Context(), role, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list approval queue", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ApprovalRequestsFromDomain(requests))
}

// Get retrieves a request by ID.
func (h *ApprovalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.approvalUC.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get approval request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ApprovalRequestFromDomain(request))
}

// Approve approves a pending request and executes its action.
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.approvalUC.ApproveRequest, "failed to approve request")
}

// Reject rejects a pending request. Notes are mandatory.
func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.approvalUC.RejectRequest, "failed to reject request")
}

func (h *ApprovalHandler) review(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, requestID, reviewerID string, reviewerRole domain.Role, notes string) (*domain.ApprovalRequest, error),
	errMsg string,
) {
	id := chi.URLParam(r, "id")

	var req dto.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	request, err := decide(r.Context(), id, actorID(r), actorRole(r), req.Notes)
	if err != nil {
		writeError(w, mapDomainError(err), errMsg, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ApprovalRequestFromDomain(request))
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (h *ApprovalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.approvalUC.CancelRequest(r.Context(), id, actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to cancel request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ApprovalRequestFromDomain(request))
}
