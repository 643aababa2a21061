package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/repositories"
	"github.com/desertthunder/melodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// openDatabase opens the snapshot database and ensures its schema is current.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// LibrarySync replaces the local snapshot with the server's current catalog
// and the playlists the user can open.
func (r *Runner) LibrarySync(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	fetchedAt := time.Now().UTC()

	r.logger.Info("fetching catalog")
	musics, err := r.client.Musics(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Info("fetching playlists")
	playlists, err := r.client.AccessiblePlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	musicRepo := repositories.NewMusicRepository(db)
	if err := musicRepo.ReplaceAll(musics, fetchedAt); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	playlistRepo := repositories.NewPlaylistRepository(db)
	if err := playlistRepo.ReplaceAll(playlists, fetchedAt); err != nil {
		return fmt.Errorf("failed to store playlists: %w", err)
	}

	trackTotal := 0
	for _, p := range playlists {
		detail, err := r.client.Playlist(ctx, p.ID)
		if err != nil {
			r.logger.Warnf("skipping tracks for playlist %v: %v", p.ID, err)
			continue
		}
		if err := playlistRepo.ReplaceTracks(p.ID, detail.Musics); err != nil {
			return fmt.Errorf("failed to store tracks for playlist %d: %w", p.ID, err)
		}
		trackTotal += len(detail.Musics)
	}

	r.writePlain("✓ Library synced\n")
	r.writePlain("  Tracks: %d\n", len(musics))
	r.writePlain("  Playlists: %d (%d playlist tracks)\n", len(playlists), trackTotal)

	return nil
}

// LibraryMusics lists snapshot tracks without touching the network.
func (r *Runner) LibraryMusics(ctx context.Context, cmd *cli.Command) error {
	likedOnly := cmd.Bool("liked")
	query := cmd.String("query")
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMusicRepository(db)

	var musics []models.Music
	if query != "" {
		musics, err = repo.Search(query)
	} else {
		musics, err = repo.List(likedOnly)
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if useJSON {
		return r.writeJSON(musics, true)
	}

	if fetched, err := repo.LastFetched(); err == nil && !fetched.IsZero() {
		r.writePlain("Snapshot from %s\n\n", fetched.Format(time.RFC1123))
	}

	if len(musics) == 0 {
		r.writePlain("No tracks in the snapshot. Run 'melodex library sync' first.\n")
		return nil
	}

	r.printMusics(musics)
	return nil
}

// LibraryPlaylists lists snapshot playlists.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	playlists, err := repositories.NewPlaylistRepository(db).List()
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if useJSON {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		r.writePlain("No playlists in the snapshot. Run 'melodex library sync' first.\n")
		return nil
	}

	for i, p := range playlists {
		r.writePlain("%d. %s (%d tracks, %s)\n", i+1, p.Name, p.MusicCount, shared.VisibilityString(p.IsPublic))
		r.writePlain("   ID: %d\n", p.ID)
	}

	return nil
}

// LibraryShow shows a snapshot playlist with its ordered tracks.
func (r *Runner) LibraryShow(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	playlistID, err := parseID(cmd.StringArg("id"), "playlist id")
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	detail, err := repositories.NewPlaylistRepository(db).Get(playlistID)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if useJSON {
		return r.writeJSON(detail, true)
	}

	r.writePlainHeader(detail.Name)
	r.writePlain("Owner: %s\n", detail.UserName)
	r.writePlain("Visibility: %s\n", shared.VisibilityString(detail.IsPublic))
	r.writePlain("Tracks: %d\n\n", len(detail.Musics))

	for _, track := range detail.Musics {
		r.writePlain("%d. %s - %s\n", track.Position, track.Band, track.Name)
	}

	return nil
}
