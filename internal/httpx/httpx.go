// Package httpx holds the JSON plumbing shared by handlers and middleware.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes surfaced to clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeSlotNotFound = "SLOT_NOT_FOUND"
	CodeSlotTaken    = "SLOT_TAKEN"
	CodeSlotExpired  = "SLOT_EXPIRED"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes the {"error":{"code","message"}} envelope.
func Error(w http.ResponseWriter, status int, code, msg string) {
	JSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}

// Decode parses the JSON body into v. On failure it has already written a
// VALIDATION_ERROR response.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		Error(w, http.StatusBadRequest, CodeValidation, "invalid JSON body")
		return err
	}
	return nil
}
