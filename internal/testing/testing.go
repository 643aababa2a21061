// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// RoundTripFunc adapts a function to [http.RoundTripper] for per-request
// control in tests.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// JSONResponse builds an [*http.Response] with a JSON body for round-trip
// doubles.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// Envelope wraps a JSON payload fragment in the server's response envelope.
func Envelope(content string) string {
	return fmt.Sprintf(`{"content": %s, "message": "", "success": true}`, content)
}

// EnvelopeWithMessage wraps a payload fragment with a server message.
func EnvelopeWithMessage(content, message string) string {
	return fmt.Sprintf(`{"content": %s, "message": %q, "success": true}`, content, message)
}

// ErrorBody builds the server's non-2xx error envelope.
func ErrorBody(code, message string) string {
	return fmt.Sprintf(`{"message": %q, "errorCode": %q}`, message, code)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (n *RecordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, msg)
}

func (n *RecordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, msg)
}
