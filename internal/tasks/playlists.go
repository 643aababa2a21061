package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// PlaylistFlow implements playlist reads and mutations, including the
// collaborator management surface exposed to playlist owners.
type PlaylistFlow struct {
	deps Deps
}

// NewPlaylistFlow creates the playlist workflow.
func NewPlaylistFlow(deps Deps) *PlaylistFlow {
	return &PlaylistFlow{deps: deps.fill()}
}

// MyPlaylists reads the current user's playlists through the cache.
func (f *PlaylistFlow) MyPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.MyPlaylists(), f.deps.Client.MyPlaylists)
}

// PublicPlaylists reads the public listing through the cache.
func (f *PlaylistFlow) PublicPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.PublicPlaylists(), f.deps.Client.PublicPlaylists)
}

// AccessiblePlaylists reads the aggregate listing through the cache.
func (f *PlaylistFlow) AccessiblePlaylists(ctx context.Context) ([]models.Playlist, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.AccessiblePlaylists(), f.deps.Client.AccessiblePlaylists)
}

// Detail reads one playlist's detail view through the cache.
func (f *PlaylistFlow) Detail(ctx context.Context, playlistID int64) (*models.PlaylistDetail, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.Playlist(playlistID), func(ctx context.Context) (*models.PlaylistDetail, error) {
		return f.deps.Client.Playlist(ctx, playlistID)
	})
}

// Create creates a playlist. When imagePath is non-empty the cover is
// uploaded as a second, chained call after the create succeeds.
//
// The two phases are deliberately non-atomic: if the image upload fails the
// playlist still exists without a cover, the create is not rolled back, and
// exactly one error notification is shown for the image. If the create
// itself fails, the image call is never attempted.
func (f *PlaylistFlow) Create(ctx context.Context, req api.CreatePlaylistRequest, imagePath string) (*models.Playlist, error) {
	playlist, err := f.deps.Client.CreatePlaylist(ctx, req)
	if err != nil {
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationCreatePlaylist, Scope{}); err != nil {
		return nil, err
	}
	f.deps.Notifier.Success(fmt.Sprintf("Playlist %q created", playlist.Name))

	if imagePath == "" {
		return playlist, nil
	}

	withImage, err := f.uploadImage(ctx, playlist.ID, imagePath)
	if err != nil {
		// The playlist exists; only the cover is missing.
		f.deps.Notifier.Error("Playlist created, but the cover upload failed. Try again from the playlist page.")
		return playlist, nil
	}

	return withImage, nil
}

// Update updates a playlist's name and/or visibility, with the same chained
// image semantics as [PlaylistFlow.Create].
func (f *PlaylistFlow) Update(ctx context.Context, playlistID int64, req api.UpdatePlaylistRequest, imagePath string) (*models.Playlist, error) {
	playlist, err := f.deps.Client.UpdatePlaylist(ctx, playlistID, req)
	if err != nil {
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationUpdatePlaylist, Scope{PlaylistID: playlistID}); err != nil {
		return nil, err
	}
	f.deps.Notifier.Success(fmt.Sprintf("Playlist %q updated", playlist.Name))

	if imagePath == "" {
		return playlist, nil
	}

	withImage, err := f.uploadImage(ctx, playlistID, imagePath)
	if err != nil {
		f.deps.Notifier.Error("Playlist updated, but the cover upload failed. Try again from the playlist page.")
		return playlist, nil
	}

	return withImage, nil
}

// Delete removes a playlist and invalidates every listing it could appear
// in, including its detail and collaborator views.
func (f *PlaylistFlow) Delete(ctx context.Context, playlistID int64) error {
	if err := f.deps.Client.DeletePlaylist(ctx, playlistID); err != nil {
		notifyFailure(f.deps.Notifier, err)
		return err
	}

	if err := invalidate(f.deps.Cache, MutationDeletePlaylist, Scope{PlaylistID: playlistID}); err != nil {
		return err
	}
	f.deps.Notifier.Success("Playlist deleted")

	return nil
}

// AddTrack appends a track to a playlist.
func (f *PlaylistFlow) AddTrack(ctx context.Context, playlistID int64, musicID string) error {
	if err := f.deps.Client.AddMusicToPlaylist(ctx, playlistID, musicID); err != nil {
		notifyFailure(f.deps.Notifier, err)
		return err
	}

	if err := invalidate(f.deps.Cache, MutationAddTrack, Scope{PlaylistID: playlistID}); err != nil {
		return err
	}
	f.deps.Notifier.Success("Track added to playlist")

	return nil
}

// RemoveTrack removes a track from a playlist.
func (f *PlaylistFlow) RemoveTrack(ctx context.Context, playlistID int64, musicID string) error {
	if err := f.deps.Client.RemoveMusicFromPlaylist(ctx, playlistID, musicID); err != nil {
		notifyFailure(f.deps.Notifier, err)
		return err
	}

	if err := invalidate(f.deps.Cache, MutationRemoveTrack, Scope{PlaylistID: playlistID}); err != nil {
		return err
	}
	f.deps.Notifier.Success("Track removed from playlist")

	return nil
}

// Collaborators reads a playlist's collaborator listing through the cache.
func (f *PlaylistFlow) Collaborators(ctx context.Context, playlistID int64) ([]models.Collaborator, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.Collaborators(playlistID), func(ctx context.Context) ([]models.Collaborator, error) {
		return f.deps.Client.PlaylistCollaborators(ctx, playlistID)
	})
}

// InviteCollaborator creates a pending invite addressed by email.
func (f *PlaylistFlow) InviteCollaborator(ctx context.Context, playlistID int64, email string) (*models.Collaborator, error) {
	collab, msg, err := f.deps.Client.InviteCollaborator(ctx, playlistID, email)
	if err != nil {
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationInviteCollaborator, Scope{PlaylistID: playlistID}); err != nil {
		return nil, err
	}

	if msg == "" {
		msg = fmt.Sprintf("Invite sent to %s", email)
	}
	f.deps.Notifier.Success(msg)

	return collab, nil
}

// RemoveCollaborator revokes a collaborator's access.
func (f *PlaylistFlow) RemoveCollaborator(ctx context.Context, playlistID, collaboratorID int64) error {
	if err := f.deps.Client.RemoveCollaborator(ctx, playlistID, collaboratorID); err != nil {
		notifyFailure(f.deps.Notifier, err)
		return err
	}

	if err := invalidate(f.deps.Cache, MutationRemoveCollaborator, Scope{PlaylistID: playlistID}); err != nil {
		return err
	}
	f.deps.Notifier.Success("Collaborator removed")

	return nil
}

// uploadImage opens the file at path and uploads it as the playlist cover.
// Invalidation re-uses the update entry: the listings that show covers are
// the same ones an update touches, plus the detail view.
func (f *PlaylistFlow) uploadImage(ctx context.Context, playlistID int64, path string) (*models.Playlist, error) {
	if path == "" {
		return nil, shared.ErrNothingToUpload
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	playlist, err := f.deps.Client.UploadPlaylistImage(ctx, playlistID, filepath.Base(path), file)
	if err != nil {
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationUpdatePlaylist, Scope{PlaylistID: playlistID}); err != nil {
		return nil, err
	}
	f.deps.Cache.Invalidate(cache.Playlist(playlistID))

	return playlist, nil
}
