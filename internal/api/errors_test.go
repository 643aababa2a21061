package api

import (
	"errors"
	"net/http"
	"testing"
)

func TestDecodeError(t *testing.T) {
	t.Run("Full Envelope", func(t *testing.T) {
		err := decodeError(http.StatusBadRequest, []byte(`{"message": "dup", "errorCode": "DUPLICATE_MUSIC"}`))
		if err.Code != CodeDuplicateMusic || err.Message != "dup" || err.Status != http.StatusBadRequest {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("Invalid JSON Falls Back To Status Text", func(t *testing.T) {
		err := decodeError(http.StatusInternalServerError, []byte("<html>oops</html>"))
		if err.Message != http.StatusText(http.StatusInternalServerError) {
			t.Errorf("unexpected message: %q", err.Message)
		}
		if err.Code != "" {
			t.Errorf("expected empty code, got %q", err.Code)
		}
	})

	t.Run("Empty Message Falls Back To Status Text", func(t *testing.T) {
		err := decodeError(http.StatusForbidden, []byte(`{"errorCode": "FORBIDDEN"}`))
		if err.Message != http.StatusText(http.StatusForbidden) {
			t.Errorf("unexpected message: %q", err.Message)
		}
	})
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"not found", &Error{Status: 404}, IsNotFound, true},
		{"forbidden", &Error{Status: 403}, IsForbidden, true},
		{"conflict by status", &Error{Status: 409}, IsConflict, true},
		{"conflict by duplicate code", &Error{Status: 400, Code: CodeDuplicateMusic}, IsConflict, true},
		{"unauthorized", &Error{Status: 401}, IsUnauthorized, true},
		{"rate limited by status", &Error{Status: 429}, IsRateLimited, true},
		{"rate limited by code", &Error{Status: 400, Code: CodeRateLimited}, IsRateLimited, true},
		{"plain error is nothing", errors.New("boom"), IsNotFound, false},
		{"wrapped api error", wrap(&Error{Status: 404}), IsNotFound, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred(tc.err); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func wrap(err error) error {
	return &wrappedError{err}
}

type wrappedError struct{ inner error }

func (w *wrappedError) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrappedError) Unwrap() error { return w.inner }

func TestUserMessage(t *testing.T) {
	t.Run("Known Codes", func(t *testing.T) {
		cases := map[string]string{
			CodeValidation:         "Some fields are invalid. Check the form and try again.",
			CodeInvalidCredentials: "Invalid email or password.",
			CodeEmailExists:        "An account with this email already exists.",
			CodeUserNotFound:       "User not found.",
			CodeMusicNotFound:      "Track not found.",
			CodeDuplicateMusic:     "This track already exists in the catalog.",
			CodeForbidden:          "You don't have permission for this action.",
			CodeRateLimited:        "Too many requests. Wait a moment and try again.",
		}

		for code, want := range cases {
			if got := UserMessage(&Error{Status: 400, Code: code}); got != want {
				t.Errorf("code %s: got %q", code, got)
			}
		}
	})

	t.Run("Unknown Code Uses Server Message", func(t *testing.T) {
		got := UserMessage(&Error{Status: 400, Code: "SOMETHING_NEW", Message: "novel failure"})
		if got != "novel failure" {
			t.Errorf("expected server message passthrough, got %q", got)
		}
	})

	t.Run("Unknown Code Without Message Uses Status", func(t *testing.T) {
		got := UserMessage(&Error{Status: 404, Message: http.StatusText(404)})
		if got != "Resource not found." {
			t.Errorf("unexpected fallback: %q", got)
		}
	})

	t.Run("Non API Error Is Generic", func(t *testing.T) {
		got := UserMessage(errors.New("dial tcp: connection refused"))
		if got != "Something went wrong. Check your connection and try again." {
			t.Errorf("unexpected generic message: %q", got)
		}
	})
}
