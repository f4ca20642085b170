package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/shared"
)

const playlistColumns = `playlist_id, playlist_name, owner_id, owner_name, owner_url,
	playlist_url, description, public, collaborative, followers_total,
	snapshot_id, image_url, track_count`

// PlaylistRepository handles playlist rows. The playlist ID is the remote
// Spotify ID and never changes once stored; every other column is replaced
// wholesale on upsert.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Upsert inserts or replaces a playlist row keyed by its remote ID.
// Each upsert is a single atomic statement.
func (r *PlaylistRepository) Upsert(p models.Playlist) error {
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO playlists (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, playlistColumns)

	_, err := r.db.Exec(query,
		p.ID, p.Name, p.OwnerID, p.OwnerName, p.OwnerURL,
		p.URL, p.Description, p.Public, p.Collaborative,
		p.FollowersTotal, p.SnapshotID, p.ImageURL, p.TrackCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert playlist %s: %w", p.ID, err)
	}

	return nil
}

// Get retrieves a playlist by its remote ID.
func (r *PlaylistRepository) Get(id string) (*models.Playlist, error) {
	query := fmt.Sprintf("SELECT %s FROM playlists WHERE playlist_id = ?", playlistColumns)

	p, err := scanPlaylist(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: playlist %s", shared.ErrNotFoundLocally, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return &p, nil
}

// Exists reports whether a playlist row is present without fetching it.
func (r *PlaylistRepository) Exists(id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM playlists WHERE playlist_id = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check playlist existence: %w", err)
	}
	return exists, nil
}

// List retrieves all stored playlists ordered by name.
func (r *PlaylistRepository) List() ([]models.Playlist, error) {
	query := fmt.Sprintf("SELECT %s FROM playlists ORDER BY playlist_name ASC", playlistColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Delete removes a playlist and all of its tracks.
func (r *PlaylistRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tracks WHERE playlist_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete playlist tracks: %w", err)
	}

	result, err := tx.Exec("DELETE FROM playlists WHERE playlist_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %s", shared.ErrNotFoundLocally, id)
	}

	return tx.Commit()
}

// DeleteAll wipes every playlist and track from the store.
func (r *PlaylistRepository) DeleteAll() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to delete tracks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM playlists"); err != nil {
		return fmt.Errorf("failed to delete playlists: %w", err)
	}

	return tx.Commit()
}
