package tasks

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

type fakeProfile struct {
	mu          sync.Mutex
	user        models.User
	updates     int
	avatarCalls int
	failAvatar  bool
}

func (f *fakeProfile) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /users/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeContent(w, f.user, "")
	})

	mux.HandleFunc("PUT /users/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.updates++
		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		readJSON(r, &req)
		f.user.Name = req.Name
		f.user.Email = req.Email
		writeContent(w, f.user, "")
	})

	mux.HandleFunc("POST /users/profile/avatar", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.avatarCalls++
		if f.failAvatar {
			writeError(w, http.StatusServiceUnavailable, "", "storage unavailable")
			return
		}
		f.user.AvatarURL = "https://cdn.example.com/avatars/1"
		writeContent(w, f.user, "")
	})

	return mux
}

func TestProfileFlow(t *testing.T) {
	t.Run("Rejects Blank Fields Locally", func(t *testing.T) {
		fake := &fakeProfile{}
		deps, notifier := newTestDeps(t, fake.handler())
		flow := NewProfileFlow(deps)

		_, err := flow.Update(context.Background(), "  ", "ana@example.com", "")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if fake.updates != 0 {
			t.Error("invalid input must never reach the server")
		}
		if len(notifier.Errors) != 1 {
			t.Errorf("expected one error notification, got %v", notifier.Errors)
		}
	})

	t.Run("Updates Name And Email", func(t *testing.T) {
		fake := &fakeProfile{user: models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}}
		deps, notifier := newTestDeps(t, fake.handler())
		flow := NewProfileFlow(deps)

		user, err := flow.Update(context.Background(), "Ana Clara", "ana@example.com", "")
		if err != nil {
			t.Fatal(err)
		}
		if user.Name != "Ana Clara" {
			t.Errorf("expected the updated profile, got %+v", user)
		}
		if len(notifier.Successes) != 1 {
			t.Errorf("expected one confirmation, got %v", notifier.Successes)
		}
	})

	t.Run("Avatar Failure Keeps The Profile Update", func(t *testing.T) {
		fake := &fakeProfile{user: models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}}
		fake.failAvatar = true
		deps, notifier := newTestDeps(t, fake.handler())
		flow := NewProfileFlow(deps)

		user, err := flow.Update(context.Background(), "Ana Clara", "ana@example.com", coverFile(t))
		if err != nil {
			t.Fatalf("avatar failure must not fail the update, got %v", err)
		}
		if user.Name != "Ana Clara" || user.AvatarURL != "" {
			t.Errorf("expected the avatarless updated profile, got %+v", user)
		}
		if fake.updates != 1 || fake.avatarCalls != 1 {
			t.Errorf("expected one update and one avatar attempt, got %d/%d", fake.updates, fake.avatarCalls)
		}
		if len(notifier.Errors) != 1 {
			t.Errorf("expected exactly one error notification, got %v", notifier.Errors)
		}
		if len(notifier.Successes) != 1 {
			t.Errorf("expected the update confirmation, got %v", notifier.Successes)
		}
	})

	t.Run("Avatar Success Returns The Enriched Profile", func(t *testing.T) {
		fake := &fakeProfile{user: models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}}
		deps, _ := newTestDeps(t, fake.handler())
		flow := NewProfileFlow(deps)

		user, err := flow.Update(context.Background(), "Ana", "ana@example.com", coverFile(t))
		if err != nil {
			t.Fatal(err)
		}
		if user.AvatarURL == "" {
			t.Error("expected the avatar URL on the returned profile")
		}
	})

	t.Run("Empty Avatar Path Never Reaches The Server", func(t *testing.T) {
		fake := &fakeProfile{user: models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}}
		deps, _ := newTestDeps(t, fake.handler())
		flow := NewProfileFlow(deps)

		_, err := flow.uploadAvatar(context.Background(), "")
		if !errors.Is(err, shared.ErrNothingToUpload) {
			t.Fatalf("expected ErrNothingToUpload, got %v", err)
		}
		if fake.avatarCalls != 0 {
			t.Errorf("expected no avatar call, got %d", fake.avatarCalls)
		}
	})
}
