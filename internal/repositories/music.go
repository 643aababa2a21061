package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/melodex/internal/models"
)

// MusicRepository persists the catalog snapshot.
type MusicRepository struct {
	db *sql.DB
}

// NewMusicRepository creates a new MusicRepository with the given database connection
func NewMusicRepository(db *sql.DB) *MusicRepository {
	return &MusicRepository{db: db}
}

// ReplaceAll swaps the whole catalog snapshot for the given tracks in one
// transaction, stamping every row with fetchedAt.
func (r *MusicRepository) ReplaceAll(musics []models.Music, fetchedAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM musics"); err != nil {
		return fmt.Errorf("failed to clear musics snapshot: %w", err)
	}

	query := `
		INSERT INTO musics (id, name, genre, band, image_url, youtube_video_id, created_by_user_id, created_by_user_name, is_liked, likes_count, created_at, updated_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range musics {
		var createdBy any
		if m.CreatedByUserID != nil {
			createdBy = *m.CreatedByUserID
		}

		_, err := stmt.Exec(
			m.ID,
			m.Name,
			m.Genre,
			m.Band,
			m.ImageURL,
			m.YouTubeVideoID,
			createdBy,
			m.CreatedByUserName,
			boolToInt(m.IsLiked),
			m.LikesCount,
			m.CreatedAt.Format(time.RFC3339),
			m.UpdatedAt.Format(time.RFC3339),
			fetchedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert music %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// Get retrieves one track from the snapshot by ID.
func (r *MusicRepository) Get(id string) (*models.Music, error) {
	query := musicSelect + " WHERE id = ?"

	music, err := scanMusic(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("music not found in snapshot: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return music, nil
}

// List retrieves the snapshot catalog ordered by name. When likedOnly is set
// only liked tracks are returned.
func (r *MusicRepository) List(likedOnly bool) ([]models.Music, error) {
	query := musicSelect
	if likedOnly {
		query += " WHERE is_liked = 1"
	}
	query += " ORDER BY name COLLATE NOCASE ASC"

	return r.queryMusics(query)
}

// Search retrieves snapshot tracks whose name, band, or genre contains the
// query, case-insensitively.
func (r *MusicRepository) Search(q string) ([]models.Music, error) {
	pattern := "%" + q + "%"
	query := musicSelect + `
		WHERE name LIKE ? COLLATE NOCASE
		   OR band LIKE ? COLLATE NOCASE
		   OR genre LIKE ? COLLATE NOCASE
		ORDER BY name COLLATE NOCASE ASC
	`
	return r.queryMusics(query, pattern, pattern, pattern)
}

// LastFetched returns when the snapshot was last synchronized, or the zero
// time for an empty snapshot.
func (r *MusicRepository) LastFetched() (time.Time, error) {
	var raw sql.NullString
	if err := r.db.QueryRow("SELECT MAX(fetched_at) FROM musics").Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot age: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}

	fetched, err := time.Parse(time.RFC3339, raw.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse snapshot timestamp: %w", err)
	}
	return fetched, nil
}

func (r *MusicRepository) queryMusics(query string, args ...any) ([]models.Music, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query musics: %w", err)
	}
	defer rows.Close()

	var musics []models.Music
	for rows.Next() {
		music, err := scanMusic(rows)
		if err != nil {
			return nil, err
		}
		musics = append(musics, *music)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return musics, nil
}

const musicSelect = `
	SELECT id, name, genre, band, image_url, youtube_video_id, created_by_user_id, created_by_user_name, is_liked, likes_count, created_at, updated_at
	FROM musics
`

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMusic(row scanner) (*models.Music, error) {
	var (
		m         models.Music
		imageURL  sql.NullString
		videoID   sql.NullString
		createdBy sql.NullInt64
		creator   sql.NullString
		isLiked   int
		createdAt sql.NullString
		updatedAt sql.NullString
	)

	err := row.Scan(&m.ID, &m.Name, &m.Genre, &m.Band, &imageURL, &videoID, &createdBy, &creator, &isLiked, &m.LikesCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan music: %w", err)
	}

	m.ImageURL = imageURL.String
	m.YouTubeVideoID = videoID.String
	m.CreatedByUserName = creator.String
	m.IsLiked = isLiked == 1
	if createdBy.Valid {
		id := createdBy.Int64
		m.CreatedByUserID = &id
	}
	if createdAt.Valid {
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt.String)
	}
	if updatedAt.Valid {
		m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}

	return &m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
