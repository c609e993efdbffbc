package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	ImportBankStatement(ctx context.Context, input usecase.ImportStatementInput) (*domain.BankStatement, error)
	MatchTransaction(ctx context.Context, lineID, entryID, userID string) error
	UnmatchTransaction(ctx context.Context, lineID, userID string) error
	RecordAdjustment(ctx context.Context, input usecase.AdjustmentInput) (*domain.ReconciliationAdjustment, error)
	RunReconciliation(ctx context.Context, statementID, userID string) (*domain.ReconciliationReport, error)
	GetStatementLine(ctx context.Context, lineID string) (*domain.BankStatementLine, error)
	GetUnmatchedTransactions(ctx context.Context, from, to time.Time) (*usecase.UnmatchedReview, error)
}

// ReconciliationHandler handles bank-reconciliation HTTP requests.
type ReconciliationHandler struct {
	reconUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconUC: reconUC}
}

// ImportStatement stores a bank statement with its lines.
func (h *ReconciliationHandler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	statement, err := h.reconUC.ImportBankStatement(r.Context(), req.ToUseCaseInput(actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import statement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankStatementFromDomain(statement))
}

// Match links a statement line to a posted journal entry.
func (h *ReconciliationHandler) Match(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "id")

	var req dto.MatchTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.reconUC.MatchTransaction(r.Context(), lineID, req.JournalEntryID, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to match transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "matched"})
}

// GetLine retrieves one statement line with its match state.
func (h *ReconciliationHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	line, err := h.reconUC.GetStatementLine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statement line", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementLineFromDomain(line))
}

// Unmatch clears a previous match.
func (h *ReconciliationHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "id")

	if err := h.reconUC.UnmatchTransaction(r.Context(), lineID, actorID(r)); err != nil {
		writeError(w, mapDomainError(err), "failed to unmatch transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "unmatched"})
}

// RecordAdjustment records an out-of-band correction for a statement.
func (h *ReconciliationHandler) RecordAdjustment(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "id")

	var req dto.RecordAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	adjustment, err := h.reconUC.RecordAdjustment(r.Context(), req.ToUseCaseInput(statementID, actorID(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record adjustment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AdjustmentFromDomain(adjustment))
}

// Run reconciles a statement against its matched lines and stores the report.
func (h *ReconciliationHandler) Run(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "id")

	report, err := h.reconUC.RunReconciliation(r.Context(), statementID, actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run reconciliation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromDomain(report))
}

// Unmatched lists unmatched statement lines and journal entries in a range.
func (h *ReconciliationHandler) Unmatched(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := parseTimeQuery(r, "from", now.AddDate(0, -1, 0))
	to := parseTimeQuery(r, "to", now)

	review, err := h.reconUC.GetUnmatchedTransactions(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list unmatched transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UnmatchedReviewFromUseCase(review))
}
