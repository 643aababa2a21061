package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/melodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// LikesList lists the current user's liked tracks.
func (r *Runner) LikesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	musics, err := r.likes.LikedMusics(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(musics, true)
	}

	if len(musics) == 0 {
		r.writePlain("No liked tracks yet.\n")
		return nil
	}

	r.writePlain("You like %d tracks:\n\n", len(musics))
	r.printMusics(musics)
	return nil
}

// LikesToggle flips the like relation for a track. The confirmed outcome is
// printed by the workflow's notifier.
func (r *Runner) LikesToggle(ctx context.Context, cmd *cli.Command) error {
	musicID := cmd.StringArg("id")
	if musicID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	music, err := r.catalog.Music(ctx, musicID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if _, err := r.likes.Toggle(ctx, *music); err != nil {
		return err
	}

	return nil
}
