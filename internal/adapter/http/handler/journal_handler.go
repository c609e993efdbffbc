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

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	CreateJournalEntry(ctx context.Context, input usecase.CreateJournalEntryInput) (*usecase.CreateJournalEntryResult, error)
	GetJournalEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	VoidJournalEntry(ctx context.Context, entryID, reason, userID string) (*usecase.VoidResult, error)
	GetVoidedTransactions(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error)
	GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
	GetGeneralLedger(ctx context.Context, code string, from, to time.Time) (*domain.GeneralLedger, error)
	GetVoidAudit(ctx context.Context, entryID string) (*domain.VoidAudit, error)
	ListVoidAudits(ctx context.Context, limit, offset int) ([]*domain.VoidAudit, error)
	RecordVoidRecovery(ctx context.Context, entryID string, amount int64, notes, userID string) (*domain.VoidAudit, error)
}

// JournalHandler handles journal-entry and report HTTP requests.
type JournalHandler struct {
	journalUC     JournalService
	enforceBudget bool
}

// NewJournalHandler creates a new JournalHandler. enforceBudget turns
// advisory budget warnings into hard failures for all API-created entries.
func NewJournalHandler(journalUC JournalService, enforceBudget bool) *JournalHandler {
	return &JournalHandler{journalUC: journalUC, enforceBudget: enforceBudget}
}

// Create records a journal entry.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.journalUC.CreateJournalEntry(r.Context(), req.ToUseCaseInput(actorID(r), h.enforceBudget))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create journal entry", err.Error())
		return
	}

	status := http.StatusCreated
	if result.RequiresApproval {
		status = http.StatusAccepted
	}

	writeJSON(w, status, dto.CreateEntryResultFromUseCase(result))
}

// Get retrieves a journal entry by ID.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.journalUC.GetJournalEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get journal entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// Void voids a posted entry, or opens an approval request when a void rule
// matches.
func (h *JournalHandler) Void(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.VoidJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.journalUC.VoidJournalEntry(r.Context(), id, req.Reason, actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to void journal entry", err.Error())
		return
	}

	status := http.StatusOK
	if result.RequiresApproval {
		status = http.StatusAccepted
	}

	writeJSON(w, status, dto.VoidJournalEntryResponse{
		Voided:           result.Voided,
		RequiresApproval: result.RequiresApproval,
		RequestID:        result.RequestID,
		AuditID:          result.AuditID,
	})
}

// ListVoided lists voided entries, newest first.
func (h *JournalHandler) ListVoided(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.journalUC.GetVoidedTransactions(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list voided entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntriesFromDomain(entries))
}

// Audit retrieves the void audit record for an entry.
func (h *JournalHandler) Audit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	audit, err := h.journalUC.GetVoidAudit(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get void audit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoidAuditFromDomain(audit))
}

// ListAudits lists void audit records, most recent void first.
func (h *JournalHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	audits, err := h.journalUC.ListVoidAudits(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list void audits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoidAuditsFromDomain(audits))
}

// RecordRecovery attaches the recovery outcome to a voided entry's audit.
func (h *JournalHandler) RecordRecovery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RecordRecoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	audit, err := h.journalUC.RecordVoidRecovery(r.Context(), id, req.AmountMinor(), req.Notes, actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record recovery", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoidAuditFromDomain(audit))
}

// TrialBalance returns the trial balance, optionally as of a past date.
func (h *JournalHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf := parseTimeQuery(r, "as_of", time.Time{})

	tb, err := h.journalUC.GetTrialBalance(r.Context(), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb))
}

// BalanceSheet returns the balance sheet, optionally as of a past date.
func (h *JournalHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := parseTimeQuery(r, "as_of", time.Time{})

	bs, err := h.journalUC.GetBalanceSheet(r.Context(), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(bs))
}

// GeneralLedger returns one account's activity over a date range.
func (h *JournalHandler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	now := time.Now().UTC()
	from := parseTimeQuery(r, "from", now.AddDate(0, -1, 0))
	to := parseTimeQuery(r, "to", now)

	gl, err := h.journalUC.GetGeneralLedger(r.Context(), code, from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build general ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GeneralLedgerFromDomain(gl))
}
