package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/adapter/http/dto"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/tests/testutil"
)

func TestBackfillIdempotency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router, redisClient := newTestRouter(t, ctx, testDB)
	defer redisClient.Close()

	token := testutil.BearerToken(t, "admin-1", domain.RoleDirector)

	testDB.InsertLegacyTransaction(ctx, 1, domain.LegacyTypePayment, "TUITION", 500000)
	testDB.InsertLegacyTransaction(ctx, 2, domain.LegacyTypeExpense, "UTILITIES", 120000)

	run := func() dto.BackfillResultResponse {
		t.Helper()

		r := httptest.NewRequest(http.MethodPost, "/api/v1/backfill/run", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.BackfillResultResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		return resp
	}

	first := run()
	if first.Processed != 2 {
		t.Errorf("expected 2 processed, got %d", first.Processed)
	}

	second := run()
	if second.Processed != 0 {
		t.Errorf("rerun should process nothing, got %d", second.Processed)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/backfill/status", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	var status map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if status["remaining"] != 0 {
		t.Errorf("expected 0 remaining, got %d", status["remaining"])
	}
}
