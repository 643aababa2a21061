package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Known error codes returned by the server's error envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_ALREADY_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeMusicNotFound      = "MUSIC_NOT_FOUND"
	CodeDuplicateMusic     = "DUPLICATE_MUSIC"
	CodeForbidden          = "FORBIDDEN"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
)

// Error is a typed server error decoded from the {message, errorCode}
// envelope of non-2xx responses.
type Error struct {
	Status  int    // HTTP status code
	Code    string // server error code, "" when the envelope carried none
	Message string // server-provided message
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// errorEnvelope mirrors the server's non-2xx payload.
type errorEnvelope struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// decodeError builds an [*Error] from a non-2xx response body. Bodies that
// are not valid JSON still produce a usable error carrying the status.
func decodeError(status int, body []byte) *Error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Status: status, Message: http.StatusText(status)}
	}

	msg := env.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &Error{Status: status, Code: env.ErrorCode, Message: msg}
}

// AsError extracts the typed server error from err, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the server, e.g. accepting an
// invite whose playlist was deleted.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsForbidden reports whether err is a 403.
func IsForbidden(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusForbidden
}

// IsConflict reports whether err is a domain conflict: a duplicate entity or
// an action on an already-resolved invite.
func IsConflict(err error) bool {
	apiErr, ok := AsError(err)
	if !ok {
		return false
	}
	return apiErr.Status == http.StatusConflict || apiErr.Code == CodeDuplicateMusic || apiErr.Code == CodeEmailExists
}

// IsUnauthorized reports whether err is a 401. The client has already
// cleared its session by the time callers observe this.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsRateLimited reports whether err is a 429 or RATE_LIMIT_EXCEEDED.
func IsRateLimited(err error) bool {
	apiErr, ok := AsError(err)
	if !ok {
		return false
	}
	return apiErr.Status == http.StatusTooManyRequests || apiErr.Code == CodeRateLimited
}

// UserMessage maps err to a user-facing notification string. Known error
// codes get specific wording; unknown codes and non-API errors fall back to
// a generic message so unmapped failures never crash rendering.
func UserMessage(err error) string {
	apiErr, ok := AsError(err)
	if !ok {
		return "Something went wrong. Check your connection and try again."
	}

	switch apiErr.Code {
	case CodeValidation:
		return "Some fields are invalid. Check the form and try again."
	case CodeInvalidCredentials:
		return "Invalid email or password."
	case CodeEmailExists:
		return "An account with this email already exists."
	case CodeUserNotFound:
		return "User not found."
	case CodeMusicNotFound:
		return "Track not found."
	case CodeDuplicateMusic:
		return "This track already exists in the catalog."
	case CodeForbidden:
		return "You don't have permission for this action."
	case CodeRateLimited:
		return "Too many requests. Wait a moment and try again."
	}

	// Unknown code: prefer the server's message when it sent one.
	if apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.Status) {
		return apiErr.Message
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return "Session expired. Please log in again."
	case http.StatusNotFound:
		return "Resource not found."
	case http.StatusServiceUnavailable:
		return "Service temporarily unavailable."
	default:
		return "Unexpected error. Try again."
	}
}
