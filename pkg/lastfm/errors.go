package lastfm

import "fmt"

// Error represents a Last.fm API error.
//
// The Error type provides structured error information including the
// Last.fm error code and message. It implements error.
type Error struct {
	Code    int    `json:"error"`   // Last.fm error code
	Message string `json:"message"` // Error message from Last.fm
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: error %d: %s", e.Code, e.Message)
}

// Is checks if the target error is a Last.fm error with the same code.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Common Last.fm error codes.
const (
	ErrCodeInvalidService    = 2
	ErrCodeInvalidMethod     = 3
	ErrCodeInvalidParameters = 6
	ErrCodeOperationFailed   = 8
	ErrCodeInvalidAPIKey     = 10
	ErrCodeServiceOffline    = 11
	ErrCodeTempUnavailable   = 16
	ErrCodeRateLimitExceeded = 29
)
