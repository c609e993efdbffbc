package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/tests/testutil"
)

func TestJournalEntryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router, redisClient := newTestRouter(t, ctx, testDB)
	defer redisClient.Close()

	token := testutil.BearerToken(t, "bursar-1", domain.RoleBursar)

	var entryID string

	t.Run("tuition payment posts immediately", func(t *testing.T) {
		req := dto.CreateJournalEntryRequest{
			Type:        "TUITION_PAYMENT",
			Description: "Term 1 fees",
			Lines: []dto.JournalLineRequest{
				{GLAccountCode: domain.AccountCashOnHand, DebitAmount: decimal.NewFromFloat(15000)},
				{GLAccountCode: domain.AccountTuitionRevenue, CreditAmount: decimal.NewFromFloat(15000)},
			},
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var resp dto.CreateJournalEntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !resp.Entry.IsPosted {
			t.Error("expected entry to be posted")
		}
		if resp.RequiresApproval {
			t.Error("tuition payments should not need approval")
		}

		entryID = resp.Entry.ID
	})

	t.Run("unbalanced entry rejected", func(t *testing.T) {
		req := dto.CreateJournalEntryRequest{
			Type:        "TUITION_PAYMENT",
			Description: "bad entry",
			Lines: []dto.JournalLineRequest{
				{GLAccountCode: domain.AccountCashOnHand, DebitAmount: decimal.NewFromFloat(100)},
				{GLAccountCode: domain.AccountTuitionRevenue, CreditAmount: decimal.NewFromFloat(99)},
			},
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})

	t.Run("trial balance is balanced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/reports/trial-balance", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.TrialBalanceResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !resp.IsBalanced {
			t.Errorf("expected balanced trial balance, debits %s credits %s", resp.TotalDebits, resp.TotalCredits)
		}
		if !resp.TotalDebits.Equal(decimal.NewFromFloat(15000)) {
			t.Errorf("expected total debits 15000, got %s", resp.TotalDebits)
		}
	})

	t.Run("void fresh entry succeeds without approval", func(t *testing.T) {
		body, _ := json.Marshal(dto.VoidJournalEntryRequest{Reason: "duplicate receipt"})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/void", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.VoidJournalEntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !resp.Voided {
			t.Error("expected entry to be voided")
		}
		if resp.AuditID == "" {
			t.Error("expected a void audit record")
		}
	})

	t.Run("voided entry excluded from trial balance", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/reports/trial-balance", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		var resp dto.TrialBalanceResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !resp.TotalDebits.IsZero() {
			t.Errorf("expected empty trial balance after void, got debits %s", resp.TotalDebits)
		}
	})

	t.Run("large expense needs approval", func(t *testing.T) {
		req := dto.CreateJournalEntryRequest{
			Type:        "EXPENSE",
			Description: "Roof repair",
			Lines: []dto.JournalLineRequest{
				{GLAccountCode: domain.AccountMaintenanceExpense, DebitAmount: decimal.NewFromFloat(60000)},
				{GLAccountCode: domain.AccountBank, CreditAmount: decimal.NewFromFloat(60000)},
			},
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusAccepted {
			t.Fatalf("expected status %d, got %d: %s", http.StatusAccepted, w.Code, w.Body.String())
		}

		var resp dto.CreateJournalEntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !resp.RequiresApproval {
			t.Error("expected approval to be required")
		}
		if resp.Entry.IsPosted {
			t.Error("gated entry must not be posted")
		}
		if resp.RequestID == "" {
			t.Fatal("expected a request ID")
		}

		// The requester cannot approve their own request.
		reviewBody, _ := json.Marshal(dto.ReviewRequest{Notes: "approved for term 1"})

		r = httptest.NewRequest(http.MethodPost, "/api/v1/approvals/"+resp.RequestID+"/approve", bytes.NewReader(reviewBody))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Fatalf("self-approval should be forbidden, got %d: %s", w.Code, w.Body.String())
		}

		// Approve as headteacher and verify the entry posts.
		reviewerToken := testutil.BearerToken(t, "head-1", domain.RoleHeadteacher)

		r = httptest.NewRequest(http.MethodPost, "/api/v1/approvals/"+resp.RequestID+"/approve", bytes.NewReader(reviewBody))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+reviewerToken)
		w = httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		r = httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries/"+resp.Entry.ID, nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()

		router.ServeHTTP(w, r)

		var entry dto.JournalEntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !entry.IsPosted {
			t.Error("expected approved entry to be posted")
		}
		if entry.ApprovalStatus != string(domain.ApprovalStatusApproved) {
			t.Errorf("expected approval status APPROVED, got %s", entry.ApprovalStatus)
		}
	})
}
