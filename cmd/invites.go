package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/melodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// InvitesList lists the collaboration invites addressed to the current user.
func (r *Runner) InvitesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	invites, err := r.invites.ListMyInvites(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(invites, true)
	}

	if len(invites) == 0 {
		r.writePlain("No pending invites.\n")
		return nil
	}

	r.writePlain("%d pending invites:\n\n", len(invites))
	for i, inv := range invites {
		r.writePlain("%d. %s\n", i+1, inv.PlaylistName)
		r.writePlain("   Invited by: %s\n", inv.InvitedByUser)
		r.writePlain("   ID: %d\n", inv.ID)
	}

	return nil
}

// InvitesAccept accepts a pending invite, granting collaborator access to
// the playlist.
func (r *Runner) InvitesAccept(ctx context.Context, cmd *cli.Command) error {
	inviteID, err := parseID(cmd.StringArg("id"), "invite id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if _, err := r.invites.Accept(ctx, inviteID); err != nil {
		return err
	}

	return nil
}

// InvitesReject rejects a pending invite.
func (r *Runner) InvitesReject(ctx context.Context, cmd *cli.Command) error {
	inviteID, err := parseID(cmd.StringArg("id"), "invite id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	return r.invites.Reject(ctx, inviteID)
}
