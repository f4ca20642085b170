package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/shared"
)

const trackColumns = `track_id, track_name, track_url, track_uri, preview_url, popularity,
	album_id, album_name, album_url, artist_id, artist_name, artist_url,
	is_explicit, is_local, disc_number, isrc_code, playlist_id, user_added, time_added`

// TrackRepository handles track rows, keyed by (track_id, playlist_id).
// The same track may legitimately appear once per playlist it belongs to.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Upsert inserts or replaces a track row keyed by (track_id, playlist_id).
// Each upsert is a single atomic statement.
func (r *TrackRepository) Upsert(t models.Track) error {
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO tracks (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trackColumns)

	_, err := r.db.Exec(query,
		t.ID, t.Name, t.URL, t.URI, t.PreviewURL, t.Popularity,
		t.AlbumID, t.AlbumName, t.AlbumURL,
		t.ArtistID, t.ArtistName, t.ArtistURL,
		t.Explicit, t.Local, t.DiscNumber, t.ISRC,
		t.PlaylistID, t.UserAdded, t.TimeAdded,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert track %s: %w", t.ID, err)
	}

	return nil
}

// Get retrieves a single track scoped to a playlist.
func (r *TrackRepository) Get(trackID, playlistID string) (*models.Track, error) {
	query := fmt.Sprintf("SELECT %s FROM tracks WHERE track_id = ? AND playlist_id = ?", trackColumns)

	t, err := scanTrack(r.db.QueryRow(query, trackID, playlistID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: track %s in playlist %s", shared.ErrNotFoundLocally, trackID, playlistID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	return &t, nil
}

// ListByPlaylist retrieves a playlist's tracks in storage order, which
// after a full ingestion matches the remote playlist order.
func (r *TrackRepository) ListByPlaylist(playlistID string) ([]models.Track, error) {
	query := fmt.Sprintf("SELECT %s FROM tracks WHERE playlist_id = ? ORDER BY rowid ASC", trackColumns)

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// IDsByPlaylist returns the set of track IDs stored for a playlist.
func (r *TrackRepository) IDsByPlaylist(playlistID string) (map[string]struct{}, error) {
	rows, err := r.db.Query("SELECT track_id FROM tracks WHERE playlist_id = ?", playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query track IDs: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan track ID: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// Delete removes a single track from a playlist.
func (r *TrackRepository) Delete(trackID, playlistID string) error {
	result, err := r.db.Exec("DELETE FROM tracks WHERE track_id = ? AND playlist_id = ?", trackID, playlistID)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: track %s in playlist %s", shared.ErrNotFoundLocally, trackID, playlistID)
	}

	return nil
}

// Count returns the number of tracks stored for a playlist.
func (r *TrackRepository) Count(playlistID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM tracks WHERE playlist_id = ?", playlistID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}
