package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/melodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow shows the authenticated user's profile as the server resolves it.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	user, err := r.session.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(user, true)
	}

	r.writePlainHeader(user.Name)
	r.writePlain("Email: %s\n", user.Email)
	if user.AvatarURL != "" {
		r.writePlain("Avatar: %s\n", user.AvatarURL)
	}

	return nil
}

// ProfileUpdate changes the user's name, email, or avatar. Fields left
// unset keep their current values.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	name := cmd.String("name")
	email := cmd.String("email")
	avatarPath := cmd.String("avatar")

	// The server replaces the whole profile, so unset fields fall back to
	// the session's current values.
	current := r.session.User()
	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}

	if _, err := r.profile.Update(ctx, name, email, avatarPath); err != nil {
		return err
	}

	return nil
}

// ProfileRemoveAvatar deletes the user's avatar image.
func (r *Runner) ProfileRemoveAvatar(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	return r.profile.RemoveAvatar(ctx)
}
