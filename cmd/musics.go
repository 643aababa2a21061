package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// MusicsList lists the full track catalog.
func (r *Runner) MusicsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	r.logger.Info("listing catalog")

	musics, err := r.catalog.Musics(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(musics, pretty)
	}

	r.writePlain("Found %d tracks:\n\n", len(musics))
	r.printMusics(musics)
	return nil
}

// MusicsGet shows one track.
func (r *Runner) MusicsGet(ctx context.Context, cmd *cli.Command) error {
	musicID := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if musicID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	music, err := r.fetchMusic(ctx, musicID)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(music, true)
	}

	r.writePlainHeader(music.Name)
	r.writePlain("Band: %s\n", music.Band)
	r.writePlain("Genre: %s\n", music.Genre)
	r.writePlain("Likes: %d\n", music.LikesCount)
	if music.IsLiked {
		r.writePlain("Liked: yes\n")
	}
	if music.Orphaned() {
		r.writePlain("Creator: (deleted account)\n")
	} else {
		r.writePlain("Creator: %s\n", music.CreatedByUserName)
	}
	if url := music.VideoURL(); url != "" {
		r.writePlain("Video: %s\n", url)
	}

	return nil
}

// MusicsSearch filters the catalog by a case-insensitive substring.
func (r *Runner) MusicsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")

	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	r.logger.Infof("searching catalog for %q", query)

	musics, err := r.catalog.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(musics, true)
	}

	r.writePlain("%d tracks match %q:\n\n", len(musics), query)
	r.printMusics(musics)
	return nil
}

// MusicsAdd submits a new track to the catalog.
func (r *Runner) MusicsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	req := api.MusicRequest{
		Name:  cmd.String("name"),
		Band:  cmd.String("band"),
		Genre: cmd.String("genre"),
	}

	music, err := r.catalog.AddMusic(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("  ID: %s\n", music.ID)
	return nil
}

// MusicsUpdate edits a track the current user created. Omitted fields keep
// their current value; --image replaces the cover in the same request.
func (r *Runner) MusicsUpdate(ctx context.Context, cmd *cli.Command) error {
	musicID := cmd.StringArg("id")
	if musicID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	music, err := r.fetchMusic(ctx, musicID)
	if err != nil {
		return err
	}

	req := api.MusicRequest{
		Name:  music.Name,
		Band:  music.Band,
		Genre: music.Genre,
	}
	if v := cmd.String("name"); v != "" {
		req.Name = v
	}
	if v := cmd.String("band"); v != "" {
		req.Band = v
	}
	if v := cmd.String("genre"); v != "" {
		req.Genre = v
	}

	updated, err := r.catalog.UpdateMusic(ctx, *music, req, cmd.String("image"))
	if err != nil {
		return err
	}

	r.writePlain("  ID: %s\n", updated.ID)
	return nil
}

// MusicsDelete deletes a track the current user created.
func (r *Runner) MusicsDelete(ctx context.Context, cmd *cli.Command) error {
	musicID := cmd.StringArg("id")
	if musicID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	music, err := r.fetchMusic(ctx, musicID)
	if err != nil {
		return err
	}

	return r.catalog.DeleteMusic(ctx, *music)
}

// MusicsOpen opens the track's video preview in the system browser.
func (r *Runner) MusicsOpen(ctx context.Context, cmd *cli.Command) error {
	musicID := cmd.StringArg("id")
	if musicID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	music, err := r.fetchMusic(ctx, musicID)
	if err != nil {
		return err
	}

	url := music.VideoURL()
	if url == "" {
		return fmt.Errorf("%w: track %q has no video", shared.ErrInvalidArgument, music.Name)
	}

	r.writePlain("→ Opening %s...\n", url)
	if err := shared.OpenBrowser(url); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlain("Please open this URL in your browser:\n%s\n", url)
	}

	return nil
}

// fetchMusic resolves one track, mapping the server's 404 to the domain
// sentinel so callers print "music not found" instead of a raw API error.
func (r *Runner) fetchMusic(ctx context.Context, musicID string) (*models.Music, error) {
	music, err := r.catalog.Music(ctx, musicID)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrMusicNotFound, musicID)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return music, nil
}

func (r *Runner) printMusics(musics []models.Music) {
	for i, m := range musics {
		marker := " "
		if m.IsLiked {
			marker = "♥"
		}
		r.writePlain("%d. %s %s\n", i+1, marker, m.Name)
		r.writePlain("   %s • %s • %d likes\n", m.Band, m.Genre, m.LikesCount)
		r.writePlain("   ID: %s\n", m.ID)
	}
}
