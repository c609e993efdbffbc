package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/middleware"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrAllocationNotFound),
		errors.Is(err, domain.ErrStatementNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateRef),
		errors.Is(err, domain.ErrDuplicateAccountCode),
		errors.Is(err, domain.ErrDuplicateSource),
		errors.Is(err, domain.ErrEntryAlreadyVoided),
		errors.Is(err, domain.ErrLineAlreadyMatched),
		errors.Is(err, domain.ErrEntryAlreadyMatched),
		errors.Is(err, domain.ErrRecoveryAttached):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRequestNotPending),
		errors.Is(err, domain.ErrEntryNotPending),
		errors.Is(err, domain.ErrLineNotMatched),
		errors.Is(err, domain.ErrExceedsBudget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMissingActor):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotRequester),
		errors.Is(err, domain.ErrInsufficientRole),
		errors.Is(err, domain.ErrSelfReview):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrLineNotExclusive),
		errors.Is(err, domain.ErrInsufficientLines),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownEntryType),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrReviewNotesRequired),
		errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// actorID returns the authenticated actor's ID, empty when unauthenticated.
// Use cases reject the empty string with ErrMissingActor.
func actorID(r *http.Request) string {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		return ""
	}

	return actor.ID
}

// actorRole returns the authenticated actor's role, empty when
// unauthenticated. Review operations reject unknown roles as insufficient.
func actorRole(r *http.Request) domain.Role {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		return ""
	}

	return actor.Role
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseTimeQuery parses an RFC 3339 or date-only query parameter.
func parseTimeQuery(r *http.Request, key string, defaultValue time.Time) time.Time {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}

	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t
	}

	if t, err := time.Parse("2006-01-02", val); err == nil {
		return t
	}

	return defaultValue
}
