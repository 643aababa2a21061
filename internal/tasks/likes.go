package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/melodex/internal/cache"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// LikeFlow implements the like toggle and the liked-tracks view.
//
// The toggle is pessimistic: nothing flips in the UI until the server
// confirms, so a failure needs no rollback. A per-track in-flight guard
// rejects a second toggle while one is outstanding; toggles on other tracks
// are unaffected.
type LikeFlow struct {
	deps Deps

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewLikeFlow creates the like workflow.
func NewLikeFlow(deps Deps) *LikeFlow {
	return &LikeFlow{
		deps:     deps.fill(),
		inFlight: make(map[string]bool),
	}
}

// ToggleResult reports a confirmed toggle. Liked is the post-toggle state.
type ToggleResult struct {
	MusicID string
	Liked   bool
	Message string
}

// Toggle flips the like relation for one track and invalidates the catalog
// and liked listings on success. The caller passes the track as currently
// rendered; its IsLiked field is the pre-toggle state used to pick the
// success notification.
func (f *LikeFlow) Toggle(ctx context.Context, music models.Music) (*ToggleResult, error) {
	if !f.begin(music.ID) {
		return nil, fmt.Errorf("%w: %s", shared.ErrToggleInFlight, music.ID)
	}
	defer f.end(music.ID)

	wasLiked := music.IsLiked

	msg, err := f.deps.Client.ToggleLike(ctx, music.ID)
	if err != nil {
		// No optimistic mutation was committed, so the rendered state is
		// already the pre-toggle state. The toggle is safely retryable.
		notifyFailure(f.deps.Notifier, err)
		return nil, err
	}

	if err := invalidate(f.deps.Cache, MutationToggleLike, Scope{}); err != nil {
		return nil, err
	}

	result := &ToggleResult{MusicID: music.ID, Liked: !wasLiked, Message: msg}

	if wasLiked {
		f.deps.Notifier.Success(fmt.Sprintf("Removed %q from liked tracks", music.Name))
	} else {
		f.deps.Notifier.Success(fmt.Sprintf("Added %q to liked tracks", music.Name))
	}

	return result, nil
}

// Pending reports whether a toggle is outstanding for the given track.
// Views use it to disable the initiating control.
func (f *LikeFlow) Pending(musicID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight[musicID]
}

// LikedMusics reads the liked-tracks listing through the cache.
func (f *LikeFlow) LikedMusics(ctx context.Context) ([]models.Music, error) {
	return cache.ReadAs(ctx, f.deps.Cache, cache.LikedMusics(), f.deps.Client.LikedMusics)
}

func (f *LikeFlow) begin(musicID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight[musicID] {
		return false
	}
	f.inFlight[musicID] = true
	return true
}

func (f *LikeFlow) end(musicID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inFlight, musicID)
}
