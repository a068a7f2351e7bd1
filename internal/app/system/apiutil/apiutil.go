// Package apiutil holds the small JSON request/response helpers shared by
// the API handlers.
package apiutil

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error payload shape.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError sends a machine-readable error code plus a human message.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorBody{Error: code, Message: message})
}

// WriteValidationFailed sends the bulk-import rejection payload: every
// field-level problem at once, so a payload can be fixed in one pass.
func WriteValidationFailed(w http.ResponseWriter, details any) {
	WriteJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error:   "validation_failed",
		Message: "one or more items failed validation",
		Details: details,
	})
}

// WriteServerError logs the underlying error for operators and sends a
// generic payload that does not leak internal detail.
func WriteServerError(w http.ResponseWriter, log *zap.Logger, context string, err error) {
	log.Error(context, zap.Error(err))
	WriteError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}

// DecodeBody decodes a size-capped JSON request body into v.
func DecodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "request body is not valid JSON")
		return false
	}
	return true
}
