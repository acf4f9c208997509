package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/txledger/internal/store"
	"github.com/dvloznov/txledger/internal/store/inmemory"
)

func newTestHandler() *TransactionsHandler {
	return NewTransactionsHandler(inmemory.NewStore(), zerolog.Nop())
}

func createRecord(t *testing.T, h *TransactionsHandler, body string) store.Transaction {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created store.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	return created
}

func TestCreateThenRead(t *testing.T) {
	h := newTestHandler()

	created := createRecord(t, h, `{"time": 7, "v1": 1.25, "amount": 100.0}`)
	if created.ID == 0 {
		t.Fatal("created ID not assigned")
	}
	if created.Amount != 100.0 {
		t.Errorf("created amount = %v, want 100.0", created.Amount)
	}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/transactions/1", nil), created.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("Get status = %d", rec.Code)
	}

	var got store.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding get response: %v", err)
	}
	if got.Amount != 100.0 {
		t.Errorf("amount = %v, want 100.0", got.Amount)
	}
}

func TestUpdateAmountLeavesOtherFields(t *testing.T) {
	h := newTestHandler()
	created := createRecord(t, h, `{"time": 7, "v1": 1.25, "amount": 100.0}`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/transactions/1", bytes.NewReader([]byte(`{"amount": 200.0}`)))
	h.Update(rec, req, created.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d, body %s", rec.Code, rec.Body.String())
	}

	var updated store.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decoding update response: %v", err)
	}
	if updated.Amount != 200.0 {
		t.Errorf("amount = %v, want 200.0", updated.Amount)
	}
	if updated.Time != 7 || updated.V1 != 1.25 {
		t.Errorf("untouched fields changed: time=%d v1=%v", updated.Time, updated.V1)
	}
}

func TestDeleteThenRead(t *testing.T) {
	h := newTestHandler()
	created := createRecord(t, h, `{"amount": 100.0}`)

	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/transactions/1", nil), created.ID)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Delete status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/transactions/1", nil), created.ID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Get after delete status = %d, want 404", rec.Code)
	}
}

func TestUpdateEmptyBody(t *testing.T) {
	h := newTestHandler()
	created := createRecord(t, h, `{"amount": 100.0}`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/transactions/1", strings.NewReader(`{}`))
	h.Update(rec, req, created.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty update status = %d, want 400", rec.Code)
	}

	// Record must be unchanged.
	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/transactions/1", nil), created.ID)
	var got store.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding get response: %v", err)
	}
	if got.Amount != 100.0 {
		t.Errorf("amount = %v, want unchanged 100.0", got.Amount)
	}
}

func TestNotFoundResponses(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		call func(rec *httptest.ResponseRecorder)
	}{
		{"get", func(rec *httptest.ResponseRecorder) {
			h.Get(rec, httptest.NewRequest(http.MethodGet, "/transactions/99", nil), 99)
		}},
		{"update", func(rec *httptest.ResponseRecorder) {
			req := httptest.NewRequest(http.MethodPut, "/transactions/99", strings.NewReader(`{"amount": 1.0}`))
			h.Update(rec, req, 99)
		}},
		{"delete", func(rec *httptest.ResponseRecorder) {
			h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/transactions/99", nil), 99)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.call(rec)
			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("body = %s, want error detail", rec.Body.String())
			}
		})
	}
}

func TestCreateInvalidBody(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("not json"))
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListWithLimit(t *testing.T) {
	h := newTestHandler()
	for i := 0; i < 5; i++ {
		createRecord(t, h, `{"amount": 10.0}`)
	}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/transactions?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("List status = %d", rec.Code)
	}

	var rows []store.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(rows))
	}
}

func TestListEmptyIsArray(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("List status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestListInvalidLimit(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/transactions?limit=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
