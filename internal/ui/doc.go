// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a tabbed library browser:
//  1. [CatalogView] : Browse the shared track catalog and toggle likes
//  2. [LikedView] : The current user's liked tracks
//  3. [PlaylistListView] : Playlists the user owns or collaborates on
//  4. [PlaylistDetailView] : One playlist's ordered tracks
//  5. [InviteListView] : Pending collaborator invites with accept/reject
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Mutations run through the workflow layer, so every action carries its cache
// invalidation with it; the lists re-fetch through the cache after each
// confirmed mutation. Workflow notifications arrive over a channel and render
// in a persistent status line.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
