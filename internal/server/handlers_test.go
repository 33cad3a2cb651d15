package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return body
}

// TestPutRoutineInvalidJSON verifies malformed bodies are rejected with
// the failure envelope before any storage access.
func TestPutRoutineInvalidJSON(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPut, "/api/v1/routines/r1", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.handlePutRoutine(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

// TestGetProgressMissingWeek verifies the week parameter is required.
func TestGetProgressMissingWeek(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	rec := httptest.NewRecorder()

	s.handleGetProgress(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

// TestGetTrendMissingExercise verifies trend lookups require the
// exercise parameter alongside the numeric ones.
func TestGetTrendMissingExercise(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/trend?week=3&day=0&set=1", nil)
	rec := httptest.NewRecorder()

	s.handleGetTrend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestGetTrendBadWeek verifies non-numeric week values are rejected.
func TestGetTrendBadWeek(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/trend?week=abc&day=0&set=1&exercise=ej-a", nil)
	rec := httptest.NewRecorder()

	s.handleGetTrend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestPostNotesMissingRoutineID verifies notes writes require a routine id.
func TestPostNotesMissingRoutineID(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader(`{"notes":{}}`))
	rec := httptest.NewRecorder()

	s.handlePostNotes(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestWriteOKEnvelope verifies success responses carry the envelope
// field plus the payload fields.
func TestWriteOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeOK(rec, map[string]any{"id": "r1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["id"] != "r1" {
		t.Errorf("id = %v, want r1", body["id"])
	}
}
