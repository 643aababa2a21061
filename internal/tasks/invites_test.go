package tasks

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// fakeInvites models the invite lifecycle server-side: pending invites,
// terminal accept/reject transitions, and the playlist listings that change
// when an invite is accepted.
type fakeInvites struct {
	mu          sync.Mutex
	invites     map[int64]*models.CollaboratorInvite
	myPlaylists []models.Playlist
	gone        map[int64]bool // playlists deleted out from under their invites
}

func newFakeInvites(invites ...models.CollaboratorInvite) *fakeInvites {
	f := &fakeInvites{
		invites: make(map[int64]*models.CollaboratorInvite),
		gone:    make(map[int64]bool),
	}
	for i := range invites {
		inv := invites[i]
		f.invites[inv.ID] = &inv
	}
	return f
}

func (f *fakeInvites) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /playlists/collaborator-invites", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		pending := []models.CollaboratorInvite{}
		for _, inv := range f.invites {
			if inv.Status == models.InvitePending {
				pending = append(pending, *inv)
			}
		}
		writeContent(w, pending, "")
	})

	mux.HandleFunc("GET /playlists/my-playlists", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeContent(w, f.myPlaylists, "")
	})

	mux.HandleFunc("POST /playlists/collaborator-invites/{id}/accept", func(w http.ResponseWriter, r *http.Request) {
		f.resolve(w, r, models.InviteAccepted)
	})

	mux.HandleFunc("POST /playlists/collaborator-invites/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
		f.resolve(w, r, models.InviteRejected)
	})

	return mux
}

func (f *fakeInvites) resolve(w http.ResponseWriter, r *http.Request, outcome models.InviteStatus) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()

	inv, ok := f.invites[id]
	if !ok {
		writeError(w, http.StatusNotFound, "", "Invite not found")
		return
	}
	if f.gone[inv.PlaylistID] {
		writeError(w, http.StatusNotFound, "", "Playlist not found")
		return
	}
	if inv.Status.Resolved() {
		writeError(w, http.StatusBadRequest, "", "Invite already resolved")
		return
	}

	inv.Status = outcome
	if outcome == models.InviteAccepted {
		f.myPlaylists = append(f.myPlaylists, models.Playlist{
			ID: inv.PlaylistID, Name: inv.PlaylistName, IsCollaborator: true,
		})
		writeContent(w, models.Collaborator{ID: 100 + id, Status: models.InviteAccepted}, "Invite accepted")
		return
	}
	writeContent(w, nil, "Invite rejected")
}

func pendingInvite(id, playlistID int64, playlist string) models.CollaboratorInvite {
	return models.CollaboratorInvite{
		ID:           id,
		PlaylistID:   playlistID,
		PlaylistName: playlist,
		Status:       models.InvitePending,
	}
}

func TestInviteFlow(t *testing.T) {
	t.Run("Accept Consumes Invite And Grants Access", func(t *testing.T) {
		fake := newFakeInvites(pendingInvite(1, 10, "Road Trip"))
		deps, notifier := newTestDeps(t, fake.handler())
		invites := NewInviteFlow(deps)
		playlists := NewPlaylistFlow(deps)
		ctx := context.Background()

		before, err := invites.ListMyInvites(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(before) != 1 {
			t.Fatalf("expected one pending invite, got %d", len(before))
		}
		if _, err := playlists.MyPlaylists(ctx); err != nil {
			t.Fatal(err)
		}

		collab, err := invites.Accept(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if collab.Status != models.InviteAccepted {
			t.Errorf("expected accepted collaborator, got %s", collab.Status)
		}
		if len(notifier.Successes) != 1 || notifier.Successes[0] != "Invite accepted" {
			t.Errorf("expected the server confirmation, got %v", notifier.Successes)
		}

		// The invite list and both playlist aggregates went stale.
		if _, fresh := deps.Cache.Peek(cache.CollaboratorInvites()); fresh {
			t.Error("invite list should be stale after accept")
		}
		if _, fresh := deps.Cache.Peek(cache.MyPlaylists()); fresh {
			t.Error("my-playlists should be stale after accept")
		}

		after, err := invites.ListMyInvites(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(after) != 0 {
			t.Errorf("accepted invite should leave the pending list, got %v", after)
		}

		mine, err := playlists.MyPlaylists(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(mine) != 1 || mine[0].ID != 10 || !mine[0].IsCollaborator {
			t.Errorf("playlist should appear as collaboration, got %v", mine)
		}
	})

	t.Run("Reject Leaves Playlists Untouched", func(t *testing.T) {
		fake := newFakeInvites(pendingInvite(2, 20, "Focus"))
		deps, notifier := newTestDeps(t, fake.handler())
		invites := NewInviteFlow(deps)
		playlists := NewPlaylistFlow(deps)
		ctx := context.Background()

		if _, err := playlists.MyPlaylists(ctx); err != nil {
			t.Fatal(err)
		}

		if err := invites.Reject(ctx, 2); err != nil {
			t.Fatal(err)
		}
		if len(notifier.Successes) != 1 || notifier.Successes[0] != "Invite rejected" {
			t.Errorf("expected the server confirmation, got %v", notifier.Successes)
		}

		// Rejecting grants nothing, so the playlist views stay fresh.
		if _, fresh := deps.Cache.Peek(cache.MyPlaylists()); !fresh {
			t.Error("my-playlists must not be invalidated by a reject")
		}

		mine, err := playlists.MyPlaylists(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(mine) != 0 {
			t.Errorf("rejected invite must not grant access, got %v", mine)
		}
	})

	t.Run("Second Accept Fails And Refreshes The List", func(t *testing.T) {
		fake := newFakeInvites(pendingInvite(3, 30, "Gym"))
		deps, notifier := newTestDeps(t, fake.handler())
		invites := NewInviteFlow(deps)
		ctx := context.Background()

		if _, err := invites.Accept(ctx, 3); err != nil {
			t.Fatal(err)
		}

		_, err := invites.Accept(ctx, 3)
		if err == nil {
			t.Fatal("second accept must fail")
		}
		if !errors.Is(err, shared.ErrInviteResolved) {
			t.Errorf("expected ErrInviteResolved, got %v", err)
		}
		if len(notifier.Errors) != 1 {
			t.Fatalf("expected exactly one error notification, got %v", notifier.Errors)
		}
		if notifier.Errors[0] != "Invite already resolved" {
			t.Errorf("expected the server's message verbatim, got %q", notifier.Errors[0])
		}

		// The failed resolve still marks the list stale so the next read
		// shows server truth.
		if _, fresh := deps.Cache.Peek(cache.CollaboratorInvites()); fresh {
			t.Error("invite list should be stale after a failed resolve")
		}
		pending, err := invites.ListMyInvites(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(pending) != 0 {
			t.Errorf("resolved invite must not resurface, got %v", pending)
		}
	})

	t.Run("Accept On Deleted Playlist Surfaces Not Found", func(t *testing.T) {
		fake := newFakeInvites(pendingInvite(4, 40, "Archived"))
		fake.gone[40] = true
		deps, notifier := newTestDeps(t, fake.handler())
		invites := NewInviteFlow(deps)

		_, err := invites.Accept(context.Background(), 4)
		if err == nil {
			t.Fatal("accept against a deleted playlist must fail")
		}
		if !api.IsNotFound(err) {
			t.Errorf("expected a not-found domain error, got %v", err)
		}
		if !errors.Is(err, shared.ErrInviteNotFound) {
			t.Errorf("expected ErrInviteNotFound, got %v", err)
		}
		if len(notifier.Errors) != 1 {
			t.Errorf("expected one error notification, got %v", notifier.Errors)
		}
	})
}
