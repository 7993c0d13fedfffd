// Package httpx holds JSON response helpers and middleware shared by the
// demo services.
package httpx

import (
	"encoding/json"
	"net/http"
)

type errorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error payload with the given status code.
func WriteError(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, errorPayload{Error: message, Details: details})
}

// Decode decodes a JSON request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
