package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
)

func TestJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.JSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("body id: got %q, want %q", body["id"], "abc")
	}
}

func TestValidationFailed_NamesField(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.ValidationFailed(rec, "end_time", "end_time must be after start_time")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body.Field != "end_time" {
		t.Errorf("field: got %q, want %q", body.Field, "end_time")
	}
	if body.Error == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.Unauthorized(rec)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.NotFound(rec, "gathering not found")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
