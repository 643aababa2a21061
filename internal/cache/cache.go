// package cache implements the client-side cache of server query results.
//
// Entries are addressed by structured keys (entity kind + scope) and hold
// whatever the last successful fetch returned. Consistency is pull-based:
// mutations invalidate keys, and the next read for an invalidated key
// re-fetches from the server. Invalidation never pushes data to readers.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/melodex/internal/shared"
)

// Kind enumerates the cached query families.
type Kind string

const (
	KindMusics              Kind = "musics"
	KindLikedMusics         Kind = "likedMusics"
	KindMyPlaylists         Kind = "myPlaylists"
	KindPublicPlaylists     Kind = "publicPlaylists"
	KindAccessiblePlaylists Kind = "accessiblePlaylists"
	KindPlaylist            Kind = "playlist"
	KindCollaboratorInvites Kind = "collaboratorInvites"
	KindCollaborators       Kind = "collaborators"
)

// Key addresses one cache entry: an entity kind plus its scope parameter.
// Unscoped families (the catalog, the current user's lists) leave Scope
// empty.
type Key struct {
	Kind  Kind
	Scope string
}

func (k Key) String() string {
	if k.Scope == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s(%s)", k.Kind, k.Scope)
}

// Musics addresses the full catalog listing.
func Musics() Key { return Key{Kind: KindMusics} }

// LikedMusics addresses the current user's liked-tracks listing. This is a
// filtered view over the same Music collection as [Musics], so mutations
// that touch one usually invalidate both.
func LikedMusics() Key { return Key{Kind: KindLikedMusics} }

// MyPlaylists addresses the current user's playlist listing (owned plus
// collaborating).
func MyPlaylists() Key { return Key{Kind: KindMyPlaylists} }

// PublicPlaylists addresses the public playlist listing.
func PublicPlaylists() Key { return Key{Kind: KindPublicPlaylists} }

// AccessiblePlaylists addresses the aggregate listing of every playlist the
// current user can open.
func AccessiblePlaylists() Key { return Key{Kind: KindAccessiblePlaylists} }

// Playlist addresses one playlist's detail view (with track membership).
func Playlist(id int64) Key {
	return Key{Kind: KindPlaylist, Scope: fmt.Sprintf("%d", id)}
}

// CollaboratorInvites addresses the current user's pending invite listing.
func CollaboratorInvites() Key { return Key{Kind: KindCollaboratorInvites} }

// Collaborators addresses one playlist's collaborator listing.
func Collaborators(playlistID int64) Key {
	return Key{Kind: KindCollaborators, Scope: fmt.Sprintf("%d", playlistID)}
}

// entry is one cached query result. A stale entry keeps its value so a
// failed refresh can fall back to it.
type entry struct {
	value     any
	stale     bool
	fetchedAt time.Time
}

// Store is the remote data cache. It is the only shared mutable resource
// between workflows; all mutation goes through [Store.Invalidate], never
// through direct writes, so there is a single re-validation path.
//
// gens counts invalidations per key. Reads snapshot the count before
// fetching; if it moved while the fetch was outstanding, the fetched value
// predates the mutation and is stored stale instead of fresh.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	gens    map[Key]uint64
	logger  *log.Logger
}

// NewStore creates an empty cache store.
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		entries: make(map[Key]*entry),
		gens:    make(map[Key]uint64),
		logger:  logger,
	}
}

// Read returns the cached value for key, calling fetch when the entry is
// missing or has been invalidated. A fetch failure leaves the previous
// value in place (still stale) and returns it alongside the error, so
// callers can keep rendering the last known data.
func (s *Store) Read(ctx context.Context, key Key, fetch func(context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && !e.stale {
		value := e.value
		s.mu.Unlock()
		return value, nil
	}
	gen := s.gens[key]
	// Materialize the counter so a blanket invalidation sees this key even
	// before its first entry lands.
	s.gens[key] = gen
	s.mu.Unlock()

	// The lock is not held across the network call; concurrent readers of
	// the same stale key may fetch twice, which is harmless.
	value, err := fetch(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()

		if e, ok := s.entries[key]; ok {
			s.logger.Warn("refresh failed, serving stale entry", "key", key.String(), "err", err)
			return e.value, err
		}
		return nil, err
	}

	s.mu.Lock()
	// An invalidation that landed while the fetch was outstanding moved the
	// generation; the fetched value predates that mutation, so it is stored
	// stale and the next read re-fetches.
	stale := s.gens[key] != gen
	s.entries[key] = &entry{value: value, stale: stale, fetchedAt: time.Now()}
	s.mu.Unlock()

	return value, nil
}

// Invalidate marks entries stale so the next read re-fetches. Invalidation
// is whole-entry; there is no field-level granularity. Unknown keys are
// no-ops so mutation call sites can invalidate unconditionally.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		// The generation moves even when no entry exists yet, so a fetch
		// already in flight for this key cannot land as fresh.
		s.gens[key]++
		if e, ok := s.entries[key]; ok {
			e.stale = true
			s.logger.Debug("invalidated cache entry", "key", key.String())
		}
	}
}

// InvalidateAll marks every entry stale. Used on login/logout, where all
// per-user views change identity.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		s.gens[key]++
		e.stale = true
	}
	for key := range s.gens {
		if _, ok := s.entries[key]; !ok {
			s.gens[key]++
		}
	}
}

// Drop removes entries entirely; unlike Invalidate, a later fetch error has
// no stale value to fall back to. Used on logout so one user's data never
// leaks into the next session.
func (s *Store) Drop(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		s.gens[key]++
		delete(s.entries, key)
	}
}

// Reset clears the store completely.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]*entry)
	for key := range s.gens {
		s.gens[key]++
	}
}

// Peek returns the cached value without triggering a fetch, along with
// whether a fresh entry was present.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, !e.stale
}

// ReadAs is a typed wrapper around [Store.Read].
func ReadAs[T any](ctx context.Context, s *Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	value, err := s.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})

	if value == nil {
		var zero T
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not the requested type", key.String(), value)
	}

	return typed, err
}
