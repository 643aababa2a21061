package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/melodex/internal/models"
)

var (
	_ list.Item = musicItem{}
	_ list.Item = playlistItem{}
	_ list.Item = playlistTrackItem{}
	_ list.Item = inviteItem{}
)

// musicItem wraps [models.Music] to implement [list.Item].
type musicItem struct {
	music models.Music
}

func (i musicItem) FilterValue() string { return i.music.Name }
func (i musicItem) Title() string {
	if i.music.IsLiked {
		return "♥ " + i.music.Name
	}
	return i.music.Name
}
func (i musicItem) Description() string {
	desc := i.music.Band
	if i.music.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.music.Genre)
	}
	if i.music.LikesCount > 0 {
		desc = fmt.Sprintf("%s • %d likes", desc, i.music.LikesCount)
	}
	return desc
}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.MusicCount)
	if i.playlist.IsCollaborator {
		desc = fmt.Sprintf("%s • collaborating with %s", desc, i.playlist.UserName)
	} else if i.playlist.IsPublic {
		desc += " • public"
	}
	return desc
}

// playlistTrackItem wraps [models.PlaylistTrack] to implement [list.Item].
type playlistTrackItem struct {
	track models.PlaylistTrack
}

func (i playlistTrackItem) FilterValue() string { return i.track.Name }
func (i playlistTrackItem) Title() string {
	return fmt.Sprintf("%d. %s", i.track.Position, i.track.Name)
}
func (i playlistTrackItem) Description() string {
	desc := i.track.Band
	if i.track.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Genre)
	}
	return desc
}

// inviteItem wraps [models.CollaboratorInvite] to implement [list.Item].
type inviteItem struct {
	invite models.CollaboratorInvite
}

func (i inviteItem) FilterValue() string { return i.invite.PlaylistName }
func (i inviteItem) Title() string       { return i.invite.PlaylistName }
func (i inviteItem) Description() string {
	return fmt.Sprintf("invited by %s", i.invite.InvitedByUser)
}
