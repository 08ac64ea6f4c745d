package datatable

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type handlerResponse struct {
	Data  []Record `json:"data"`
	Total int      `json:"total"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) handlerResponse {
	t.Helper()
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestNewHandler_EmptyQueryReturnsAllRecords(t *testing.T) {
	h := NewHandler(WithRecords(sampleRecords()))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	payload := decodeResponse(t, rec)
	if len(payload.Data) != 4 || payload.Total != 4 {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestNewHandler_EmptySearchNoneReturnsEmptyArray(t *testing.T) {
	h := NewHandler(WithRecords(sampleRecords()), WithEmptySearchMode(EmptySearchNone))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestNewHandler_SearchAndLimit(t *testing.T) {
	h := NewHandler(WithRecords(sampleRecords()), WithSearchParam("search"), WithLimitParam("l"))

	req := httptest.NewRequest(http.MethodGet, "/api/users?search=USER&l=2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	payload := decodeResponse(t, rec)
	if len(payload.Data) != 2 {
		t.Fatalf("expected 2 results, got %#v", payload.Data)
	}
	if payload.Data[0].Name != "Jane Smith" || payload.Data[1].Name != "Bob Johnson" {
		t.Fatalf("unexpected order: %#v", payload.Data)
	}
}

func TestNewHandler_Delete(t *testing.T) {
	store := NewStore(sampleRecords())
	h := NewHandler(WithStore(store))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/3", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, ok := store.Get(3); ok {
		t.Fatalf("record 3 should be gone")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/users/3", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/users/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestNewHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(WithRecords(sampleRecords()), WithDelete(false))

	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/api/users/1", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d", method, rec.Code)
		}
		if allow := rec.Header().Get("Allow"); strings.Contains(allow, http.MethodDelete) {
			t.Fatalf("%s: delete should not be advertised, got %q", method, allow)
		}
	}
}

func TestNewHandler_Guard(t *testing.T) {
	h := NewHandler(
		WithRecords(sampleRecords()),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no session")}
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestNewHandler_Head(t *testing.T) {
	h := NewHandler(WithRecords(sampleRecords()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/api/users", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("unexpected HEAD response %d %q", rec.Code, rec.Body.String())
	}
}
