package tasks

import (
	"fmt"

	"github.com/desertthunder/melodex/internal/cache"
)

// Mutation enumerates every state-changing operation the client performs.
type Mutation string

const (
	MutationCreatePlaylist     Mutation = "createPlaylist"
	MutationUpdatePlaylist     Mutation = "updatePlaylist"
	MutationDeletePlaylist     Mutation = "deletePlaylist"
	MutationAddTrack           Mutation = "addTrackToPlaylist"
	MutationRemoveTrack        Mutation = "removeTrackFromPlaylist"
	MutationAcceptInvite       Mutation = "acceptInvite"
	MutationRejectInvite       Mutation = "rejectInvite"
	MutationInviteCollaborator Mutation = "inviteCollaborator"
	MutationRemoveCollaborator Mutation = "removeCollaborator"
	MutationToggleLike         Mutation = "toggleLike"
	MutationAddMusic           Mutation = "addMusic"
	MutationUpdateMusic        Mutation = "updateMusic"
	MutationDeleteMusic        Mutation = "deleteMusic"
)

// Scope carries the parameters scoped cache keys need. PlaylistID is zero
// for mutations that only touch unscoped listings.
type Scope struct {
	PlaylistID int64
}

// invalidationTable declares, per mutation, the cache keys whose derived
// views may have changed. Keeping this a single table (instead of key
// strings sprinkled over call sites) means a new mutation that forgets its
// invalidation set fails the drift test in invalidation_test.go.
//
// Deleting a playlist invalidates more than the owner's list: the playlist
// may appear in the public and accessible listings, and its detail and
// collaborator views now dangle.
var invalidationTable = map[Mutation]func(Scope) []cache.Key{
	MutationCreatePlaylist: func(Scope) []cache.Key {
		return []cache.Key{cache.MyPlaylists()}
	},
	MutationUpdatePlaylist: func(Scope) []cache.Key {
		return []cache.Key{cache.MyPlaylists()}
	},
	MutationDeletePlaylist: func(s Scope) []cache.Key {
		return []cache.Key{
			cache.MyPlaylists(),
			cache.PublicPlaylists(),
			cache.AccessiblePlaylists(),
			cache.Playlist(s.PlaylistID),
			cache.Collaborators(s.PlaylistID),
		}
	},
	MutationAddTrack: func(s Scope) []cache.Key {
		return []cache.Key{cache.Playlist(s.PlaylistID), cache.MyPlaylists()}
	},
	MutationRemoveTrack: func(s Scope) []cache.Key {
		return []cache.Key{cache.Playlist(s.PlaylistID), cache.MyPlaylists()}
	},
	MutationAcceptInvite: func(Scope) []cache.Key {
		return []cache.Key{cache.CollaboratorInvites(), cache.MyPlaylists(), cache.AccessiblePlaylists()}
	},
	MutationRejectInvite: func(Scope) []cache.Key {
		return []cache.Key{cache.CollaboratorInvites()}
	},
	MutationInviteCollaborator: func(s Scope) []cache.Key {
		return []cache.Key{cache.Collaborators(s.PlaylistID)}
	},
	MutationRemoveCollaborator: func(s Scope) []cache.Key {
		return []cache.Key{cache.Collaborators(s.PlaylistID)}
	},
	MutationToggleLike: func(Scope) []cache.Key {
		// Both listings can change: likedMusics is a filtered view over the
		// same Music collection as the catalog, and the catalog rows carry
		// isLiked and likesCount.
		return []cache.Key{cache.Musics(), cache.LikedMusics()}
	},
	MutationAddMusic: func(Scope) []cache.Key {
		return []cache.Key{cache.Musics()}
	},
	MutationUpdateMusic: func(Scope) []cache.Key {
		// Edited name/band/genre also show in the liked listing's rows.
		return []cache.Key{cache.Musics(), cache.LikedMusics()}
	},
	MutationDeleteMusic: func(Scope) []cache.Key {
		return []cache.Key{cache.Musics(), cache.LikedMusics()}
	},
}

// Mutations lists every declared mutation, for the drift test.
func Mutations() []Mutation {
	mutations := make([]Mutation, 0, len(invalidationTable))
	for m := range invalidationTable {
		mutations = append(mutations, m)
	}
	return mutations
}

// AffectedKeys resolves the invalidation set for a mutation. Unknown
// mutations are an error so a typo cannot silently skip invalidation.
func AffectedKeys(m Mutation, scope Scope) ([]cache.Key, error) {
	fn, ok := invalidationTable[m]
	if !ok {
		return nil, fmt.Errorf("no invalidation set declared for mutation %q", m)
	}
	return fn(scope), nil
}

// invalidate applies a mutation's declared invalidation set to the store.
func invalidate(store *cache.Store, m Mutation, scope Scope) error {
	keys, err := AffectedKeys(m, scope)
	if err != nil {
		return err
	}
	store.Invalidate(keys...)
	return nil
}
