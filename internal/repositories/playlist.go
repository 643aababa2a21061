package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/melodex/internal/models"
)

// PlaylistRepository persists the playlist snapshot and its track membership.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// ReplaceAll swaps the playlist snapshot for the given playlists in one
// transaction. Track membership rows cascade away with their playlists and
// are re-saved per playlist via [PlaylistRepository.ReplaceTracks].
func (r *PlaylistRepository) ReplaceAll(playlists []models.Playlist, fetchedAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM playlists"); err != nil {
		return fmt.Errorf("failed to clear playlists snapshot: %w", err)
	}

	query := `
		INSERT INTO playlists (id, name, image_url, is_public, user_id, user_name, music_count, is_collaborator, created_at, updated_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range playlists {
		_, err := stmt.Exec(
			p.ID,
			p.Name,
			p.ImageURL,
			boolToInt(p.IsPublic),
			p.UserID,
			p.UserName,
			p.MusicCount,
			boolToInt(p.IsCollaborator),
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
			fetchedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert playlist %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// ReplaceTracks swaps a playlist's track membership for the given tracks.
// Tracks missing from the musics snapshot are skipped rather than failing
// the sync; the membership row would dangle without its catalog row.
func (r *PlaylistRepository) ReplaceTracks(playlistID int64, tracks []models.PlaylistTrack) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM playlist_musics WHERE playlist_id = ?", playlistID); err != nil {
		return fmt.Errorf("failed to clear playlist tracks: %w", err)
	}

	query := `
		INSERT INTO playlist_musics (playlist_id, music_id, position, added_at)
		SELECT ?, id, ?, ? FROM musics WHERE id = ?
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, track := range tracks {
		if _, err := stmt.Exec(playlistID, track.Position, track.AddedAt.Format(time.RFC3339), track.ID); err != nil {
			return fmt.Errorf("failed to insert playlist track %s: %w", track.ID, err)
		}
	}

	return tx.Commit()
}

// Get retrieves one playlist from the snapshot with its ordered tracks.
func (r *PlaylistRepository) Get(id int64) (*models.PlaylistDetail, error) {
	query := `
		SELECT id, name, image_url, is_public, user_id, user_name, is_collaborator, created_at, updated_at
		FROM playlists
		WHERE id = ?
	`

	var (
		detail    models.PlaylistDetail
		imageURL  sql.NullString
		userName  sql.NullString
		isPublic  int
		isCollab  int
		createdAt sql.NullString
		updatedAt sql.NullString
	)

	err := r.db.QueryRow(query, id).Scan(&detail.ID, &detail.Name, &imageURL, &isPublic, &detail.UserID, &userName, &isCollab, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("playlist not found in snapshot: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	detail.ImageURL = imageURL.String
	detail.UserName = userName.String
	detail.IsPublic = isPublic == 1
	detail.IsCollaborator = isCollab == 1
	if createdAt.Valid {
		detail.CreatedAt, _ = time.Parse(time.RFC3339, createdAt.String)
	}
	if updatedAt.Valid {
		detail.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}

	tracks, err := r.tracks(id)
	if err != nil {
		return nil, err
	}
	detail.Musics = tracks

	return &detail, nil
}

// List retrieves the playlist snapshot ordered by name.
func (r *PlaylistRepository) List() ([]models.Playlist, error) {
	query := `
		SELECT id, name, image_url, is_public, user_id, user_name, music_count, is_collaborator, created_at, updated_at
		FROM playlists
		ORDER BY name COLLATE NOCASE ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var (
			p         models.Playlist
			imageURL  sql.NullString
			userName  sql.NullString
			isPublic  int
			isCollab  int
			createdAt sql.NullString
			updatedAt sql.NullString
		)

		err := rows.Scan(&p.ID, &p.Name, &imageURL, &isPublic, &p.UserID, &userName, &p.MusicCount, &isCollab, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}

		p.ImageURL = imageURL.String
		p.UserName = userName.String
		p.IsPublic = isPublic == 1
		p.IsCollaborator = isCollab == 1
		if createdAt.Valid {
			p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt.String)
		}
		if updatedAt.Valid {
			p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
		}

		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// tracks retrieves a playlist's membership joined to the catalog snapshot,
// ordered by position.
func (r *PlaylistRepository) tracks(playlistID int64) ([]models.PlaylistTrack, error) {
	query := `
		SELECT m.id, m.name, m.genre, m.band, m.image_url, m.youtube_video_id, pm.position, pm.added_at
		FROM playlist_musics pm
		JOIN musics m ON m.id = pm.music_id
		WHERE pm.playlist_id = ?
		ORDER BY pm.position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.PlaylistTrack
	for rows.Next() {
		var (
			t        models.PlaylistTrack
			imageURL sql.NullString
			videoID  sql.NullString
			addedAt  sql.NullString
		)

		if err := rows.Scan(&t.ID, &t.Name, &t.Genre, &t.Band, &imageURL, &videoID, &t.Position, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist track: %w", err)
		}

		t.ImageURL = imageURL.String
		t.YouTubeVideoID = videoID.String
		if addedAt.Valid {
			t.AddedAt, _ = time.Parse(time.RFC3339, addedAt.String)
		}

		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}
