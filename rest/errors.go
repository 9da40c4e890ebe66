package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the API. Message carries the
// server-supplied "message" field when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	// Best effort: a missing or malformed body just leaves Message empty.
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	return &Error{Status: resp.StatusCode, Message: payload.Message}
}
