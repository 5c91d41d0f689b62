package apierr

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func render(t *testing.T, production bool, err error) (int, map[string]any) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	Write(rec, req, logger, production, err)

	var envelope struct {
		Error map[string]any `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, envelope.Error
}

func TestWriteEnvelope(t *testing.T) {
	status, body := render(t, false, New("voice not found", http.StatusNotFound))

	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if body["code"] != float64(http.StatusNotFound) {
		t.Errorf("code = %v, want 404", body["code"])
	}
	if body["message"] != "voice not found" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["details"]; ok {
		t.Errorf("details present without attachment: %v", body["details"])
	}
}

func TestWriteAttachedDetailsSurviveProduction(t *testing.T) {
	err := New("invalid request body", http.StatusBadRequest).WithDetails("missing field: text")

	for _, production := range []bool{false, true} {
		_, body := render(t, production, err)
		if body["details"] != "missing field: text" {
			t.Errorf("production=%v: details = %v, want attached detail", production, body["details"])
		}
	}
}

func TestWriteUnclassifiedError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")

	status, body := render(t, true, cause)
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if body["message"] != "internal server error" {
		t.Errorf("message = %v, want generic", body["message"])
	}
	// The raw error text is diagnostic, not API surface: development only.
	if _, ok := body["details"]; ok {
		t.Errorf("production leaked error text: %v", body["details"])
	}

	_, body = render(t, false, cause)
	if body["details"] != "dial tcp: connection refused" {
		t.Errorf("development details = %v, want error text", body["details"])
	}
}
