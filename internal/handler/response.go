package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from our API has the same shape:
//   {"error": "not_found", "message": "entry not found with id abc123"}
//
// Validation errors add the offending field; storage errors add
// "retryable": true so the UI can offer to try again.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/diary/internal/apperror"
)

// maxJSONBody caps request bodies for the JSON endpoints (2MB).
const maxJSONBody = 2 << 20

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error     string `json:"error"`               // Machine-readable error type (e.g., "not_found")
	Message   string `json:"message"`             // Human-readable description
	Field     string `json:"field,omitempty"`     // Set for validation errors
	Retryable bool   `json:"retryable,omitempty"` // Set when the write may succeed if retried
}

// PartialResponse reports a tag delete whose follow-up entry writes did not
// all succeed. The tag itself is deleted.
type PartialResponse struct {
	Deleted        bool     `json:"deleted"`
	Error          string   `json:"error"`
	Message        string   `json:"message"`
	FailedEntryIDs []string `json:"failedEntryIds"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body is written; once Encode
// writes, later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
//
//	ErrValidation    → 400
//	ErrNotFound      → 404
//	ErrStorage       → 503, retryable
//	ErrPartialFanout → 200 with the entries that still reference the tag
//	anything else    → 500, details hidden
//
// errors.Is walks the whole chain, so wrapped errors map the same way.
func writeError(w http.ResponseWriter, err error) {
	var fanout *apperror.PartialFanoutError
	if errors.As(err, &fanout) {
		writeJSON(w, http.StatusOK, PartialResponse{
			Deleted:        true,
			Error:          "partial_fanout",
			Message:        fanout.Error(),
			FailedEntryIDs: fanout.FailedEntryIDs,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		resp := ErrorResponse{Error: "internal_error", Message: appErr.Message}

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			resp.Error = "validation_error"
			resp.Field = appErr.Field
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			resp.Error = "not_found"
		case errors.Is(err, apperror.ErrStorage):
			status = http.StatusServiceUnavailable
			resp.Error = "storage_error"
			resp.Retryable = true
		}

		writeJSON(w, status, resp)
		return
	}

	// NEVER expose internal error details to the client: the raw message
	// might contain SQL or file paths.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads a JSON request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: fmt.Sprintf("Invalid JSON body: %v", err),
		})
		return false
	}
	return true
}
