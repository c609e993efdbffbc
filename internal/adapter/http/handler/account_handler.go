package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// ChartService defines the behavior needed by AccountHandler.
type ChartService interface {
	CreateGLAccount(ctx context.Context, input usecase.CreateGLAccountInput) (*domain.GLAccount, error)
	UpdateGLAccount(ctx context.Context, input usecase.UpdateGLAccountInput) (*domain.GLAccount, error)
	DeactivateGLAccount(ctx context.Context, code, userID string) error
	ReactivateGLAccount(ctx context.Context, code, userID string) error
	ResolveAccount(ctx context.Context, code string) (*domain.GLAccount, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]*domain.GLAccount, error)
}

// AccountHandler handles chart-of-accounts HTTP requests.
type AccountHandler struct {
	chartUC ChartService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(chartUC ChartService) *AccountHandler {
	return &AccountHandler{chartUC: chartUC}
}

// Create adds an account to the chart.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGLAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.chartUC.CreateGLAccount(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GLAccountFromDomain(account))
}

// Get retrieves an account by code.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing account code", "")
		return
	}

	account, err := h.chartUC.ResolveAccount(r.Context(), code)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GLAccountFromDomain(account))
}

// List lists chart accounts. Inactive accounts are included only when
// requested.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	accounts, err := h.chartUC.ListAccounts(r.Context(), includeInactive)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListGLAccountsResponse{
		Accounts: dto.GLAccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Update changes an account's mutable fields.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req dto.UpdateGLAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.chartUC.UpdateGLAccount(r.Context(), usecase.UpdateGLAccountInput{
		Code:       code,
		Name:       req.Name,
		ParentCode: req.ParentCode,
		UpdatedBy:  actorID(r),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GLAccountFromDomain(account))
}

// Deactivate soft-deletes an account. History is preserved; the account just
// stops accepting new lines.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.chartUC.DeactivateGLAccount(r.Context(), code, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to deactivate account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// Reactivate re-enables a deactivated account.
func (h *AccountHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.chartUC.ReactivateGLAccount(r.Context(), code, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to reactivate account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "active"})
}
