package api

import (
	"encoding/json"
	"net/http"

	"Ampere/internal/logging"
	"Ampere/internal/validate"
)

// FieldError is one entry of the error response details list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Error().Err(err).Msg("encode response")
	}
}

func WriteError(w http.ResponseWriter, status int, msg string, details ...FieldError) {
	WriteJSON(w, status, errorBody{Error: msg, Details: details})
}

// WriteFindings reports blocking validation findings as a 400.
func WriteFindings(w http.ResponseWriter, findings validate.Findings) {
	details := make([]FieldError, 0, len(findings))
	for _, f := range findings.Errors() {
		details = append(details, FieldError{Field: f.Field, Message: f.Message})
	}
	WriteError(w, http.StatusBadRequest, "validation failed", details...)
}

// Decode reads a JSON body into v and writes the 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// Recover turns handler panics into an opaque 500. Calculations are total
// over the validated domain, so this should never fire outside a bug.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				WriteError(w, http.StatusInternalServerError, "internal calculation error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
