package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// CatalogFlow implements the shared track catalog: browsing, search, and
// the add/delete surface for track creators.
type CatalogFlow struct {
	deps Deps
}

// NewCatalogFlow creates the catalog workflow.
func NewCatalogFlow(deps Deps) *CatalogFlow {
	return &CatalogFlow{deps: deps.fill()}
}

// Musics reads the full catalog through the cache.
func (f *CatalogFlow) Musics(ctx context.Context) ([]models.Music, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.Musics(), f.deps.Client.Musics)
}

// Music fetches one track directly; single-track reads are not cached.
func (f *CatalogFlow) Music(ctx context.Context, musicID string) (*models.Music, error) {
	return f.deps.Client.Music(ctx, musicID)
}

// Search filters the cached catalog by a case-insensitive substring match on
// name and band. Filtering is local; the catalog listing is the single
// server query.
func (f *CatalogFlow) Search(ctx context.Context, query string) ([]models.Music, error) {
	musics, err := f.Musics(ctx)
	if err != nil {
		return nil, err
	}

	return filterMusics(musics, query), nil
}

// AddMusic validates and submits a new track to the catalog.
func (f *CatalogFlow) AddMusic(ctx context.Context, req api.MusicRequest) (*models.Music, error) {
	draft := models.Music{Name: req.Name, Band: req.Band, Genre: req.Genre}
	if err := draft.Validate(); err != nil {
		// Validation failures never reach the network layer.
		f.deps.Notifier.Error(err.Error())
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	music, err := f.deps.Client.AddMusic(ctx, req)
	if err != nil {
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationAddMusic, Scope{}); err != nil {
		return nil, err
	}
	f.deps.Notifier.Success(fmt.Sprintf("Track %q added to the catalog", music.Name))

	return music, nil
}

// UpdateMusic edits a track the current user created, optionally replacing
// its cover image in the same request. The creator-only and orphaned-track
// rules are checked locally before any network call, mirroring DeleteMusic.
func (f *CatalogFlow) UpdateMusic(ctx context.Context, music models.Music, req api.MusicRequest, imagePath string) (*models.Music, error) {
	if f.deps.Session == nil {
		return nil, shared.ErrNotAuthenticated
	}
	user := f.deps.Session.User()
	if user == nil {
		return nil, shared.ErrNotAuthenticated
	}

	if music.Orphaned() {
		f.deps.Notifier.Error("This track has no owner and cannot be edited.")
		return nil, fmt.Errorf("%w: %s", shared.ErrOrphanedMusic, music.ID)
	}
	if !music.EditableBy(user.ID) {
		f.deps.Notifier.Error("Only the track's creator can edit it.")
		return nil, fmt.Errorf("%w: music %s", shared.ErrInvalidInput, music.ID)
	}

	draft := models.Music{Name: req.Name, Band: req.Band, Genre: req.Genre}
	if err := draft.Validate(); err != nil {
		f.deps.Notifier.Error(err.Error())
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var image io.Reader
	var filename string
	if imagePath != "" {
		file, err := os.Open(imagePath)
		if err != nil {
			f.deps.Notifier.Error("Could not read the image file.")
			return nil, fmt.Errorf("failed to open image file: %w", err)
		}
		defer file.Close()
		image = file
		filename = filepath.Base(imagePath)
	}

	updated, err := f.deps.Client.UpdateMusic(ctx, music.ID, req, filename, image)
	if err != nil {
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationUpdateMusic, Scope{}); err != nil {
		return nil, err
	}
	f.deps.Notifier.Success(fmt.Sprintf("Track %q updated", updated.Name))

	return updated, nil
}

// DeleteMusic removes a track the current user created. Orphaned tracks are
// rejected locally before any network call.
func (f *CatalogFlow) DeleteMusic(ctx context.Context, music models.Music) error {
	if f.deps.Session == nil {
		return shared.ErrNotAuthenticated
	}
	user := f.deps.Session.User()
	if user == nil {
		return shared.ErrNotAuthenticated
	}

	if music.Orphaned() {
		f.deps.Notifier.Error("This track has no owner and cannot be deleted.")
		return fmt.Errorf("%w: %s", shared.ErrOrphanedMusic, music.ID)
	}
	if !music.EditableBy(user.ID) {
		f.deps.Notifier.Error("Only the track's creator can delete it.")
		return fmt.Errorf("%w: music %s", shared.ErrInvalidInput, music.ID)
	}

	if err := f.deps.Client.DeleteMusic(ctx, music.ID); err != nil {
		notifyFailure(f.deps.Notifier, err)
		return err
	}

	if err := invalidate(f.deps.Cache, MutationDeleteMusic, Scope{}); err != nil {
		return err
	}
	f.deps.Notifier.Success(fmt.Sprintf("Track %q deleted", music.Name))

	return nil
}

func filterMusics(musics []models.Music, query string) []models.Music {
	if query == "" {
		return musics
	}

	var matched []models.Music
	for _, m := range musics {
		if containsFold(m.Name, query) || containsFold(m.Band, query) || containsFold(m.Genre, query) {
			matched = append(matched, m)
		}
	}
	return matched
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
