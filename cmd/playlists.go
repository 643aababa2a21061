package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/formatter"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
	"github.com/urfave/cli/v3"
)

// fetchPlaylist resolves a playlist detail, mapping the server's 404 to the
// domain sentinel so callers print "playlist not found" instead of a raw
// API error.
func (r *Runner) fetchPlaylist(ctx context.Context, playlistID int64) (*models.PlaylistDetail, error) {
	detail, err := r.playlists.Detail(ctx, playlistID)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, playlistID)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return detail, nil
}

// parseID parses a numeric command-line identifier.
func parseID(value, name string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric, got %q", shared.ErrInvalidArgument, name, value)
	}

	return id, nil
}

// PlaylistsList lists playlists in one of three scopes: the user's own,
// all public ones, or everything the user can open.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	scope := cmd.String("scope")
	useJSON := cmd.Bool("json")

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	var playlists []models.Playlist
	var err error

	switch scope {
	case "mine":
		playlists, err = r.playlists.MyPlaylists(ctx)
	case "public":
		playlists, err = r.playlists.PublicPlaylists(ctx)
	case "shared", "accessible":
		playlists, err = r.playlists.AccessiblePlaylists(ctx)
	default:
		return fmt.Errorf("%w: scope must be mine, public, or shared", shared.ErrInvalidFlag)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(playlists, true)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %d\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.MusicCount)
		r.writePlain("   Visibility: %s\n", shared.VisibilityString(p.IsPublic))
		if p.IsCollaborator {
			r.writePlain("   Collaborating with: %s\n", p.UserName)
		}
		r.writePlain("\n")
	}

	return nil
}

// PlaylistsShow shows a playlist with its ordered tracks.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	playlistID, err := parseID(cmd.StringArg("id"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	detail, err := r.fetchPlaylist(ctx, playlistID)
	if err != nil {
		return err
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
		if track.Genre != "" {
			r.writePlain("   Genre: %s\n", track.Genre)
		}
	}

	return nil
}

// PlaylistsCreate creates a playlist, optionally uploading a cover image in
// a second step.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	req := api.CreatePlaylistRequest{
		Name:     cmd.String("name"),
		IsPublic: cmd.Bool("public"),
	}

	playlist, err := r.playlists.Create(ctx, req, cmd.String("image"))
	if err != nil {
		return err
	}

	r.writePlain("  ID: %d\n", playlist.ID)
	r.writePlain("  Visibility: %s\n", shared.VisibilityString(playlist.IsPublic))
	return nil
}

// PlaylistsUpdate renames a playlist, changes its visibility, or replaces
// its cover image. Untouched fields keep their server values.
func (r *Runner) PlaylistsUpdate(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := parseID(cmd.StringArg("id"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	var req api.UpdatePlaylistRequest
	if name := cmd.String("name"); name != "" {
		req.Name = &name
	}
	if visibility := cmd.String("visibility"); visibility != "" {
		switch strings.ToLower(visibility) {
		case "public":
			public := true
			req.IsPublic = &public
		case "private":
			private := false
			req.IsPublic = &private
		default:
			return fmt.Errorf("%w: visibility must be public or private", shared.ErrInvalidFlag)
		}
	}

	imagePath := cmd.String("image")
	if req.Name == nil && req.IsPublic == nil && imagePath == "" {
		return fmt.Errorf("%w: nothing to update", shared.ErrMissingArgument)
	}

	if _, err := r.playlists.Update(ctx, playlistID, req, imagePath); err != nil {
		return err
	}

	return nil
}

// PlaylistsDelete deletes a playlist the current user owns.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := parseID(cmd.StringArg("id"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	return r.playlists.Delete(ctx, playlistID)
}

// PlaylistsAddTrack appends a catalog track to a playlist.
func (r *Runner) PlaylistsAddTrack(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := parseID(cmd.String("playlist"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	return r.playlists.AddTrack(ctx, playlistID, cmd.String("track"))
}

// PlaylistsRemoveTrack removes a track from a playlist.
func (r *Runner) PlaylistsRemoveTrack(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := parseID(cmd.String("playlist"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	return r.playlists.RemoveTrack(ctx, playlistID, cmd.String("track"))
}

// PlaylistsExport writes a playlist to disk in the requested format.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	playlistID, err := parseID(cmd.StringArg("id"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	detail, err := r.fetchPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	r.logger.Infof("exporting playlist %v as %v", detail.Name, format)

	switch format {
	case "csv":
		if output == "" {
			output = detail.Name
		}
		result, err := formatter.WriteCSVExport(detail, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Playlist exported\n")
		r.writePlain("  Tracks: %s\n", result.TracksFile)
		r.writePlain("  Metadata: %s\n", result.MetadataFile)
	case "markdown", "md":
		if output == "" {
			output = detail.Name
		}
		result, err := formatter.WriteMarkdownExport(detail, output, detail.ImageURL)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Playlist exported to %s\n", result.Directory)
		if result.CoverImage != "" {
			r.writePlain("  Cover: %s\n", result.CoverImage)
		}
	case "text", "txt":
		if output == "" {
			output = detail.Name + ".txt"
		}
		path, err := formatter.WriteTextExport(detail, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Playlist exported to %s\n", path)
	default:
		return fmt.Errorf("%w: format must be csv, markdown, or text", shared.ErrInvalidFlag)
	}

	return nil
}

// CollaboratorsList lists confirmed collaborators and pending invitations
// for a playlist.
func (r *Runner) CollaboratorsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	playlistID, err := parseID(cmd.StringArg("id"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	collabs, err := r.playlists.Collaborators(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(collabs, true)
	}

	if len(collabs) == 0 {
		r.writePlain("No collaborators.\n")
		return nil
	}

	r.writePlain("%d collaborators:\n\n", len(collabs))
	for i, c := range collabs {
		r.writePlain("%d. %s <%s>\n", i+1, c.UserName, c.UserEmail)
		r.writePlain("   Status: %s\n", c.Status)
		r.writePlain("   ID: %d\n", c.ID)
	}

	return nil
}

// CollaboratorsInvite invites a user by email to collaborate on a playlist.
func (r *Runner) CollaboratorsInvite(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := parseID(cmd.String("playlist"), "playlist id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if _, err := r.playlists.InviteCollaborator(ctx, playlistID, cmd.String("email")); err != nil {
		return err
	}

	return nil
}

// CollaboratorsRemove revokes a collaborator's access to a playlist.
func (r *Runner) CollaboratorsRemove(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := parseID(cmd.String("playlist"), "playlist id")
	if err != nil {
		return err
	}

	collaboratorID, err := parseID(cmd.String("id"), "collaborator id")
	if err != nil {
		return err
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	return r.playlists.RemoveCollaborator(ctx, playlistID, collaboratorID)
}
