package github

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrConflict is returned when a conditional write is rejected because
// the supplied revision SHA no longer matches the remote file. The
// document changed under us; the write must not be merged or retried
// blindly.
var ErrConflict = errors.New("github: conflict: file changed since read")

// APIError represents a non-success response from the GitHub API.
type APIError struct {
	Operation  string // Which call failed
	StatusCode int    // HTTP status code
	Message    string // Message from the response body, if any
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: %s failed: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("github: %s failed: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// apiError builds an APIError from a response body.
func apiError(operation string, status int, body []byte) error {
	return &APIError{
		Operation:  operation,
		StatusCode: status,
		Message:    apiMessage(body),
	}
}

// apiMessage extracts the "message" field from a GitHub error body.
func apiMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Message
}
