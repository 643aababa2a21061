// Package repositories implements SQLite persistence for the local library
// snapshot.
//
// The snapshot is a read-mostly mirror of the remote library used for
// offline listing: a sync replaces whole tables atomically with what the
// server returned, stamped with the fetch time. There are no partial
// updates; the server is always the source of truth.
//
// Key Implementations:
//   - [MusicRepository] : catalog tracks with liked-state filtering and local search
//   - [PlaylistRepository] : playlists with their ordered track membership
package repositories
