package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/melodex/internal/models"
)

// inviteRequest is the payload for inviting a collaborator by email.
type inviteRequest struct {
	Email string `json:"email"`
}

// InviteCollaborator creates a pending invite for the user addressed by
// email to join the playlist as collaborator. Owner only.
func (c *Client) InviteCollaborator(ctx context.Context, playlistID int64, email string) (*models.Collaborator, string, error) {
	var collab models.Collaborator
	endpoint := fmt.Sprintf("/playlists/%d/collaborators", playlistID)
	msg, err := c.do(ctx, http.MethodPost, endpoint, inviteRequest{Email: email}, &collab)
	if err != nil {
		return nil, "", fmt.Errorf("failed to invite collaborator: %w", err)
	}
	return &collab, msg, nil
}

// PlaylistCollaborators lists a playlist's collaborators. Owner only.
func (c *Client) PlaylistCollaborators(ctx context.Context, playlistID int64) ([]models.Collaborator, error) {
	var collabs []models.Collaborator
	endpoint := fmt.Sprintf("/playlists/%d/collaborators", playlistID)
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &collabs); err != nil {
		return nil, fmt.Errorf("failed to fetch collaborators for playlist %d: %w", playlistID, err)
	}
	return collabs, nil
}

// RemoveCollaborator revokes a collaborator's access. Owner only.
func (c *Client) RemoveCollaborator(ctx context.Context, playlistID, collaboratorID int64) error {
	endpoint := fmt.Sprintf("/playlists/%d/collaborators/%d", playlistID, collaboratorID)
	if _, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to remove collaborator %d: %w", collaboratorID, err)
	}
	return nil
}

// MyInvites lists collaboration invites addressed to the current user.
// The server returns only actionable (pending) invites; the client renders
// whatever it receives without filtering.
func (c *Client) MyInvites(ctx context.Context) ([]models.CollaboratorInvite, error) {
	var invites []models.CollaboratorInvite
	if _, err := c.do(ctx, http.MethodGet, "/playlists/collaborator-invites", nil, &invites); err != nil {
		return nil, fmt.Errorf("failed to fetch invites: %w", err)
	}
	return invites, nil
}

// AcceptInvite accepts a pending invite. From the client's perspective this
// consumes the invite and materializes the collaborator in one operation.
// A second accept on the same invite fails with a domain error.
func (c *Client) AcceptInvite(ctx context.Context, inviteID int64) (*models.Collaborator, string, error) {
	var collab models.Collaborator
	endpoint := fmt.Sprintf("/playlists/collaborator-invites/%d/accept", inviteID)
	msg, err := c.do(ctx, http.MethodPost, endpoint, nil, &collab)
	if err != nil {
		return nil, "", fmt.Errorf("failed to accept invite %d: %w", inviteID, err)
	}
	return &collab, msg, nil
}

// RejectInvite rejects a pending invite. No collaborator is created and the
// outcome is terminal.
func (c *Client) RejectInvite(ctx context.Context, inviteID int64) (string, error) {
	endpoint := fmt.Sprintf("/playlists/collaborator-invites/%d/reject", inviteID)
	msg, err := c.do(ctx, http.MethodPost, endpoint, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to reject invite %d: %w", inviteID, err)
	}
	return msg, nil
}
