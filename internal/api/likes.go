package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/melodex/internal/models"
)

// ToggleLike flips the like relation between the current user and a track.
// The server exposes a single idempotent-intent toggle with no payload
// beyond success/failure; the returned message is the server's confirmation.
func (c *Client) ToggleLike(ctx context.Context, musicID string) (string, error) {
	endpoint := fmt.Sprintf("/likes/%s", musicID)
	msg, err := c.do(ctx, http.MethodPost, endpoint, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to toggle like for %s: %w", musicID, err)
	}
	return msg, nil
}

// IsLiked checks whether the current user likes the given track.
func (c *Client) IsLiked(ctx context.Context, musicID string) (bool, error) {
	var liked bool
	endpoint := fmt.Sprintf("/likes/%s/check", musicID)
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &liked); err != nil {
		return false, fmt.Errorf("failed to check like for %s: %w", musicID, err)
	}
	return liked, nil
}

// LikedMusics retrieves all tracks the current user likes, walking the
// server's pages.
func (c *Client) LikedMusics(ctx context.Context) ([]models.Music, error) {
	var all []models.Music

	for page := 0; ; page++ {
		endpoint := fmt.Sprintf("/likes?page=%d&size=%d", page, musicPageSize)

		var resp Page[models.Music]
		if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch liked musics: %w", err)
		}

		all = append(all, resp.Content...)
		if resp.Last || resp.Empty {
			break
		}
	}

	return all, nil
}
