package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/melodex/internal/models"
)

const musicPageSize = 50

// MusicRequest is the payload for submitting a new track to the catalog.
type MusicRequest struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
	Band  string `json:"band"`
}

// Musics retrieves the full catalog, walking the server's pages.
func (c *Client) Musics(ctx context.Context) ([]models.Music, error) {
	var all []models.Music

	for page := 0; ; page++ {
		endpoint := fmt.Sprintf("/musics?page=%d&size=%d", page, musicPageSize)

		var resp Page[models.Music]
		if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch musics: %w", err)
		}

		all = append(all, resp.Content...)
		if resp.Last || resp.Empty {
			break
		}
	}

	return all, nil
}

// Music retrieves a single track by ID.
func (c *Client) Music(ctx context.Context, musicID string) (*models.Music, error) {
	var music models.Music
	endpoint := fmt.Sprintf("/musics/%s", musicID)
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &music); err != nil {
		return nil, fmt.Errorf("failed to fetch music %s: %w", musicID, err)
	}
	return &music, nil
}

// AddMusic submits a new track to the catalog.
func (c *Client) AddMusic(ctx context.Context, req MusicRequest) (*models.Music, error) {
	var music models.Music
	if _, err := c.do(ctx, http.MethodPost, "/musics", req, &music); err != nil {
		return nil, fmt.Errorf("failed to add music: %w", err)
	}
	return &music, nil
}

// UpdateMusic edits a track's fields, optionally replacing its cover image
// in the same multipart request. A nil image leaves the current cover
// untouched. The server enforces the creator-only rule.
func (c *Client) UpdateMusic(ctx context.Context, musicID string, req MusicRequest, filename string, image io.Reader) (*models.Music, error) {
	fields := map[string]string{
		"name":  req.Name,
		"genre": req.Genre,
		"band":  req.Band,
	}

	var music models.Music
	endpoint := fmt.Sprintf("/musics/%s", musicID)
	if _, err := c.doForm(ctx, http.MethodPut, endpoint, fields, "image", filename, image, &music); err != nil {
		return nil, fmt.Errorf("failed to update music %s: %w", musicID, err)
	}
	return &music, nil
}

// DeleteMusic removes a track. The server enforces the ownership rule;
// orphaned tracks are rejected for everyone.
func (c *Client) DeleteMusic(ctx context.Context, musicID string) error {
	endpoint := fmt.Sprintf("/musics/%s", musicID)
	if _, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete music %s: %w", musicID, err)
	}
	return nil
}
