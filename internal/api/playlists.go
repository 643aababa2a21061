package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/melodex/internal/models"
)

// CreatePlaylistRequest is the payload for POST /playlists.
type CreatePlaylistRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"isPublic"`
}

// UpdatePlaylistRequest is the payload for PUT /playlists/{id}. Nil fields
// are omitted so the server only touches what the caller set.
type UpdatePlaylistRequest struct {
	Name     *string `json:"name,omitempty"`
	IsPublic *bool   `json:"isPublic,omitempty"`
}

// addMusicRequest is the payload for POST /playlists/{id}/musics.
type addMusicRequest struct {
	MusicID string `json:"musicId"`
}

// CreatePlaylist creates a new playlist owned by the current user.
func (c *Client) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*models.Playlist, error) {
	var playlist models.Playlist
	if _, err := c.do(ctx, http.MethodPost, "/playlists", req, &playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return &playlist, nil
}

// UpdatePlaylist updates a playlist's name and/or visibility.
func (c *Client) UpdatePlaylist(ctx context.Context, playlistID int64, req UpdatePlaylistRequest) (*models.Playlist, error) {
	var playlist models.Playlist
	endpoint := fmt.Sprintf("/playlists/%d", playlistID)
	if _, err := c.do(ctx, http.MethodPut, endpoint, req, &playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist %d: %w", playlistID, err)
	}
	return &playlist, nil
}

// DeletePlaylist removes a playlist. Owner only.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID int64) error {
	endpoint := fmt.Sprintf("/playlists/%d", playlistID)
	if _, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete playlist %d: %w", playlistID, err)
	}
	return nil
}

// UploadPlaylistImage uploads a cover image for a playlist. This is the
// second phase of create-with-image; callers never invoke it when the
// primary mutation failed.
func (c *Client) UploadPlaylistImage(ctx context.Context, playlistID int64, filename string, file io.Reader) (*models.Playlist, error) {
	var playlist models.Playlist
	endpoint := fmt.Sprintf("/playlists/%d/image", playlistID)
	if _, err := c.doMultipart(ctx, http.MethodPost, endpoint, "image", filename, file, &playlist); err != nil {
		return nil, fmt.Errorf("failed to upload playlist image: %w", err)
	}
	return &playlist, nil
}

// MyPlaylists retrieves playlists the current user owns, plus those they
// collaborate on.
func (c *Client) MyPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if _, err := c.do(ctx, http.MethodGet, "/playlists/my-playlists", nil, &playlists); err != nil {
		return nil, fmt.Errorf("failed to fetch my playlists: %w", err)
	}
	return playlists, nil
}

// PublicPlaylists retrieves all public playlists.
func (c *Client) PublicPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if _, err := c.do(ctx, http.MethodGet, "/playlists/public", nil, &playlists); err != nil {
		return nil, fmt.Errorf("failed to fetch public playlists: %w", err)
	}
	return playlists, nil
}

// AccessiblePlaylists retrieves every playlist the current user can open:
// owned, collaborating, and public.
func (c *Client) AccessiblePlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if _, err := c.do(ctx, http.MethodGet, "/playlists", nil, &playlists); err != nil {
		return nil, fmt.Errorf("failed to fetch accessible playlists: %w", err)
	}
	return playlists, nil
}

// Playlist retrieves a playlist with its ordered track membership.
func (c *Client) Playlist(ctx context.Context, playlistID int64) (*models.PlaylistDetail, error) {
	var detail models.PlaylistDetail
	endpoint := fmt.Sprintf("/playlists/%d", playlistID)
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %d: %w", playlistID, err)
	}
	return &detail, nil
}

// AddMusicToPlaylist appends a track to a playlist's membership.
func (c *Client) AddMusicToPlaylist(ctx context.Context, playlistID int64, musicID string) error {
	endpoint := fmt.Sprintf("/playlists/%d/musics", playlistID)
	if _, err := c.do(ctx, http.MethodPost, endpoint, addMusicRequest{MusicID: musicID}, nil); err != nil {
		return fmt.Errorf("failed to add music %s to playlist %d: %w", musicID, playlistID, err)
	}
	return nil
}

// RemoveMusicFromPlaylist removes a track from a playlist's membership.
func (c *Client) RemoveMusicFromPlaylist(ctx context.Context, playlistID int64, musicID string) error {
	endpoint := fmt.Sprintf("/playlists/%d/musics/%s", playlistID, musicID)
	if _, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to remove music %s from playlist %d: %w", musicID, playlistID, err)
	}
	return nil
}
