package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/shared"
	tu "github.com/desertthunder/melodex/internal/testing"
)

// newTestDeps starts an httptest server around handler and wires a full set
// of workflow dependencies against it.
func newTestDeps(t *testing.T, handler http.Handler) (Deps, *tu.RecordingNotifier) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := shared.NewLogger(nil)
	notifier := &tu.RecordingNotifier{}

	deps := Deps{
		Client:   api.NewClient(srv.URL, api.WithToken("test-token"), api.WithLogger(logger)),
		Cache:    cache.NewStore(logger),
		Notifier: notifier,
		Logger:   logger,
	}
	return deps, notifier
}

// writeContent writes a success envelope around content.
func writeContent(w http.ResponseWriter, content any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"content": content,
		"message": msg,
		"success": true,
	})
}

// writePage writes a single-page success envelope around items.
func writePage[T any](w http.ResponseWriter, items []T) {
	writeContent(w, api.Page[T]{
		Content:       items,
		TotalElements: len(items),
		TotalPages:    1,
		Size:          len(items),
		First:         true,
		Last:          true,
		Empty:         len(items) == 0,
	}, "")
}

// readJSON decodes a request body for fake handlers.
func readJSON(r *http.Request, v any) {
	_ = json.NewDecoder(r.Body).Decode(v)
}

// writeError writes a server error envelope.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(tu.ErrorBody(code, msg)))
}
