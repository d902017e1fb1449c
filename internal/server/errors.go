package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrUnauthorized is the rejection reported by SessionAuth.
var ErrUnauthorized = errors.New("unauthorized")

// AuthExchangeError reports a failed authorization callback. A nil Err means
// the request itself was unusable (for example no code); otherwise Err is the
// exchange failure.
type AuthExchangeError struct {
	Reason string
	Err    error
}

func (e *AuthExchangeError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *AuthExchangeError) Unwrap() error {
	return e.Err
}

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorResponse{Error: code, ErrorDescription: description})
}
