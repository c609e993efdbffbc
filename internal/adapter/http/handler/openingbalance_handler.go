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

// OpeningBalanceService defines the behavior needed by OpeningBalanceHandler.
type OpeningBalanceService interface {
	ImportStudentOpeningBalances(ctx context.Context, balances []usecase.StudentOpeningBalance, yearID, source, userID string) (*usecase.ImportResult, error)
	ImportGLOpeningBalances(ctx context.Context, balances []usecase.GLOpeningBalance, yearID, source, userID string) (*usecase.ImportResult, error)
	VerifyOpeningBalances(ctx context.Context, yearID string) (*domain.OpeningBalanceSummary, error)
}

// OpeningBalanceHandler handles opening-balance HTTP requests.
type OpeningBalanceHandler struct {
	balanceUC OpeningBalanceService
}

// NewOpeningBalanceHandler creates a new OpeningBalanceHandler.
func NewOpeningBalanceHandler(balanceUC OpeningBalanceService) *OpeningBalanceHandler {
	return &OpeningBalanceHandler{balanceUC: balanceUC}
}

// ImportStudents imports a batch of student opening balances.
func (h *OpeningBalanceHandler) ImportStudents(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportStudentBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.balanceUC.ImportStudentOpeningBalances(r.Context(), req.ToUseCaseInput(), req.AcademicYearID, req.Source, actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import student balances", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ImportResultFromUseCase(result))
}

// ImportGL imports a batch of account opening balances.
func (h *OpeningBalanceHandler) ImportGL(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportGLBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.balanceUC.ImportGLOpeningBalances(r.Context(), req.ToUseCaseInput(), req.AcademicYearID, req.Source, actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import gl balances", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ImportResultFromUseCase(result))
}

// Verify checks a year's imported balances and marks them verified when the
// variance is exactly zero.
func (h *OpeningBalanceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	yearID := chi.URLParam(r, "yearID")

	summary, err := h.balanceUC.VerifyOpeningBalances(r.Context(), yearID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify opening balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OpeningBalanceSummaryFromDomain(summary))
}
