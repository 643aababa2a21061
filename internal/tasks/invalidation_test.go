package tasks

import (
	"testing"

	"github.com/desertthunder/melodex/internal/cache"
)

// Every declared mutation must carry a non-empty invalidation set. This is
// the drift guard: adding a mutation without deciding what it invalidates
// fails here instead of silently serving stale views.
func TestEveryMutationHasInvalidationSet(t *testing.T) {
	scope := Scope{PlaylistID: 7}

	mutations := Mutations()
	if len(mutations) == 0 {
		t.Fatal("no mutations declared")
	}

	for _, m := range mutations {
		t.Run(string(m), func(t *testing.T) {
			keys, err := AffectedKeys(m, scope)
			if err != nil {
				t.Fatalf("expected declared set, got %v", err)
			}
			if len(keys) == 0 {
				t.Error("mutation has an empty invalidation set")
			}
		})
	}
}

func TestAffectedKeys(t *testing.T) {
	contains := func(keys []cache.Key, want cache.Key) bool {
		for _, k := range keys {
			if k == want {
				return true
			}
		}
		return false
	}

	t.Run("Accept Invite", func(t *testing.T) {
		keys, err := AffectedKeys(MutationAcceptInvite, Scope{})
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []cache.Key{cache.CollaboratorInvites(), cache.MyPlaylists(), cache.AccessiblePlaylists()} {
			if !contains(keys, want) {
				t.Errorf("accept invite must invalidate %s", want)
			}
		}
		if len(keys) != 3 {
			t.Errorf("expected exactly 3 keys, got %d", len(keys))
		}
	})

	t.Run("Reject Invite Touches Only Invites", func(t *testing.T) {
		keys, err := AffectedKeys(MutationRejectInvite, Scope{})
		if err != nil {
			t.Fatal(err)
		}
		if len(keys) != 1 || keys[0] != cache.CollaboratorInvites() {
			t.Errorf("reject must invalidate only the invite list, got %v", keys)
		}
	})

	t.Run("Track Mutations Scope To The Playlist", func(t *testing.T) {
		for _, m := range []Mutation{MutationAddTrack, MutationRemoveTrack} {
			keys, err := AffectedKeys(m, Scope{PlaylistID: 42})
			if err != nil {
				t.Fatal(err)
			}
			if !contains(keys, cache.Playlist(42)) {
				t.Errorf("%s must invalidate playlist(42)", m)
			}
			if !contains(keys, cache.MyPlaylists()) {
				t.Errorf("%s must invalidate myPlaylists", m)
			}
		}
	})

	t.Run("Toggle Like Touches Both Music Views", func(t *testing.T) {
		keys, err := AffectedKeys(MutationToggleLike, Scope{})
		if err != nil {
			t.Fatal(err)
		}
		if !contains(keys, cache.Musics()) || !contains(keys, cache.LikedMusics()) {
			t.Errorf("toggle must invalidate musics and likedMusics, got %v", keys)
		}
	})

	t.Run("Update Music Touches Both Music Views", func(t *testing.T) {
		keys, err := AffectedKeys(MutationUpdateMusic, Scope{})
		if err != nil {
			t.Fatal(err)
		}
		if !contains(keys, cache.Musics()) || !contains(keys, cache.LikedMusics()) {
			t.Errorf("update must invalidate musics and likedMusics, got %v", keys)
		}
	})

	t.Run("Delete Playlist Covers Dependent Views", func(t *testing.T) {
		keys, err := AffectedKeys(MutationDeletePlaylist, Scope{PlaylistID: 5})
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []cache.Key{
			cache.MyPlaylists(), cache.PublicPlaylists(), cache.AccessiblePlaylists(),
			cache.Playlist(5), cache.Collaborators(5),
		} {
			if !contains(keys, want) {
				t.Errorf("delete playlist must invalidate %s", want)
			}
		}
	})

	t.Run("Unknown Mutation Errors", func(t *testing.T) {
		if _, err := AffectedKeys(Mutation("renamePlaylist"), Scope{}); err == nil {
			t.Error("expected error for undeclared mutation")
		}
	})
}
