package handler

import (
	"context"
	"net/http"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// BackfillService defines the behavior needed by BackfillHandler.
type BackfillService interface {
	Run(ctx context.Context, userID string) (*usecase.BackfillResult, error)
	CountRemaining(ctx context.Context) (int64, error)
}

// BackfillHandler handles legacy-backfill HTTP requests.
type BackfillHandler struct {
	backfillUC BackfillService
}

// NewBackfillHandler creates a new BackfillHandler.
func NewBackfillHandler(backfillUC BackfillService) *BackfillHandler {
	return &BackfillHandler{backfillUC: backfillUC}
}

// Run walks the legacy log and backfills journal entries. Safe to re-run;
// already-processed rows are skipped.
func (h *BackfillHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.backfillUC.Run(r.Context(), actorID(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run backfill", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BackfillResultFromUseCase(result))
}

// Status reports how many legacy rows remain unprocessed.
func (h *BackfillHandler) Status(w http.ResponseWriter, r *http.Request) {
	remaining, err := h.backfillUC.CountRemaining(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count remaining rows", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"remaining": remaining})
}
