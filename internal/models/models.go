package models

import (
	"fmt"
	"strings"
	"time"
)

// User represents an account on the music-library server.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Music represents a catalog track.
//
// CreatedByUserID is nil for orphaned tracks (creator account deleted);
// orphaned tracks are read-only for mutation purposes regardless of the
// current user. IsLiked reflects the like relation for the current user only.
type Music struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Genre               string    `json:"genre"`
	Band                string    `json:"band"`
	ImageURL            string    `json:"imageUrl,omitempty"`
	YouTubeVideoID      string    `json:"youtubeVideoId,omitempty"`
	YouTubeThumbnailURL string    `json:"youtubeThumbnailUrl,omitempty"`
	CreatedByUserID     *int64    `json:"createdByUserId"`
	CreatedByUserName   string    `json:"createdByUserName"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	IsLiked             bool      `json:"isLiked"`
	LikesCount          int       `json:"likesCount"`
}

// Orphaned reports whether the track's creator account no longer exists.
func (m Music) Orphaned() bool {
	return m.CreatedByUserID == nil
}

// EditableBy reports whether the given user may edit or delete this track.
// Orphaned tracks are editable by no one.
func (m Music) EditableBy(userID int64) bool {
	return m.CreatedByUserID != nil && *m.CreatedByUserID == userID
}

// VideoURL returns the YouTube watch URL for the track's preview, or "" when
// the track has no video reference.
func (m Music) VideoURL() string {
	if m.YouTubeVideoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + m.YouTubeVideoID
}

// Validate checks the fields required to submit a new track to the catalog.
func (m Music) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("music name is required")
	}
	if strings.TrimSpace(m.Band) == "" {
		return fmt.Errorf("music band is required")
	}
	if strings.TrimSpace(m.Genre) == "" {
		return fmt.Errorf("music genre is required")
	}
	return nil
}

// Playlist represents an owned, optionally public collection of tracks.
//
// IsCollaborator is set by the server when the current user has accepted
// collaborator rights rather than ownership.
type Playlist struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	ImageFileID    string    `json:"imageFileId,omitempty"`
	IsPublic       bool      `json:"isPublic"`
	UserID         int64     `json:"userId"`
	UserName       string    `json:"userName"`
	MusicCount     int       `json:"musicCount"`
	IsCollaborator bool      `json:"isCollaborator,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the given user owns the playlist.
func (p Playlist) OwnedBy(userID int64) bool {
	return p.UserID == userID
}

// PlaylistTrack is a track in playlist context, carrying its display position.
// A track appears at most once per playlist; position matters for display
// only, not for uniqueness.
type PlaylistTrack struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Genre               string    `json:"genre"`
	Band                string    `json:"band"`
	ImageURL            string    `json:"imageUrl,omitempty"`
	YouTubeVideoID      string    `json:"youtubeVideoId,omitempty"`
	YouTubeThumbnailURL string    `json:"youtubeThumbnailUrl,omitempty"`
	Position            int       `json:"position"`
	AddedAt             time.Time `json:"addedAt"`
}

// PlaylistDetail is a playlist with its ordered track membership resolved.
type PlaylistDetail struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	ImageFileID    string          `json:"imageFileId,omitempty"`
	IsPublic       bool            `json:"isPublic"`
	UserID         int64           `json:"userId"`
	UserName       string          `json:"userName"`
	Musics         []PlaylistTrack `json:"musics"`
	IsCollaborator bool            `json:"isCollaborator,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// InviteStatus enumerates the collaborator-invite lifecycle.
//
// The state machine is pending -> accepted or pending -> rejected; both
// outcomes are terminal and there is no re-opening.
type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteRejected InviteStatus = "REJECTED"
)

// Resolved reports whether the status is terminal.
func (s InviteStatus) Resolved() bool {
	return s == InviteAccepted || s == InviteRejected
}

// Collaborator represents an accepted (or still pending) relation between a
// user and a playlist other than its owner.
type Collaborator struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"userId"`
	UserName        string       `json:"userName"`
	UserEmail       string       `json:"userEmail"`
	UserAvatarURL   string       `json:"userAvatarUrl,omitempty"`
	Status          InviteStatus `json:"status"`
	InvitedByUserID int64        `json:"invitedByUserId"`
	InvitedByUser   string       `json:"invitedByUserName"`
	InvitedAt       time.Time    `json:"invitedAt"`
	RespondedAt     *time.Time   `json:"respondedAt,omitempty"`
}

// CollaboratorInvite is a pending proposal, addressed to the current user,
// to join a playlist as collaborator.
type CollaboratorInvite struct {
	ID               int64        `json:"id"`
	PlaylistID       int64        `json:"playlistId"`
	PlaylistName     string       `json:"playlistName"`
	PlaylistImageURL string       `json:"playlistImageUrl,omitempty"`
	InvitedByUserID  int64        `json:"invitedByUserId"`
	InvitedByUser    string       `json:"invitedByUserName"`
	Status           InviteStatus `json:"status"`
	InvitedAt        time.Time    `json:"invitedAt"`
}
