package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	SetBudgetAllocation(ctx context.Context, input usecase.SetBudgetAllocationInput) (*usecase.SetBudgetAllocationResult, error)
	Validate(ctx context.Context, code string, amount int64, fiscalYear, department string) (*domain.BudgetCheck, error)
	GetAllocation(ctx context.Context, code, fiscalYear, department string) (*domain.BudgetAllocation, error)
}

// BudgetHandler handles budget HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// Set upserts the allocation for one (account, year, department) key. When
// a budget rule gates the change, the request is accepted but parked behind
// the approval workflow.
func (h *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBudgetAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.budgetUC.SetBudgetAllocation(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set budget allocation", err.Error())
		return
	}

	status := http.StatusOK
	if result.RequiresApproval {
		status = http.StatusAccepted
	}

	writeJSON(w, status, dto.SetBudgetAllocationResultFromUseCase(result))
}

// Get retrieves an allocation by its key.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	allocation, err := h.budgetUC.GetAllocation(r.Context(), q.Get("gl_account_code"), q.Get("fiscal_year"), q.Get("department"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get budget allocation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetAllocationFromDomain(allocation))
}

// Validate checks a proposed spend against the allocation without recording
// anything.
func (h *BudgetHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	check, err := h.budgetUC.Validate(r.Context(), req.GLAccountCode, req.Amount.Round(2).Shift(2).IntPart(), req.FiscalYear, req.Department)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to validate budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetCheckFromDomain(check))
}
