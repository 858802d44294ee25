// Package httpapi holds the JSON response helpers shared by API handlers.
//
// Every failure category maps to one status code:
//   - missing/invalid credential  -> 401 {"error": "..."}
//   - invalid input               -> 400 {"error": "...", "field": "..."}
//   - unknown resource            -> 404 {"error": "..."}
//   - persistence failure         -> 500 {"error": "..."} (retryable)
package httpapi

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Unauthorized writes a 401 for missing or failed credentials.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}

// ValidationFailed writes a 400 naming the field that failed validation.
func ValidationFailed(w http.ResponseWriter, field, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg, Field: field})
}

// BadRequest writes a 400 for malformed input with no single offending field.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusNotFound, errorResponse{Error: msg})
}

// ServerError writes a 500. Callers may retry with backoff; the body never
// leaks internal error detail.
func ServerError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
