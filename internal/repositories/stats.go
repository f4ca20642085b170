package repositories

import (
	"database/sql"
	"fmt"
)

// StatsRepository computes aggregate statistics over the stored library.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository with the given database connection
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Totals summarizes the overall contents of the store.
type Totals struct {
	Playlists    int `json:"total_playlists"`
	Tracks       int `json:"total_tracks"`
	UniqueTracks int `json:"unique_tracks"`
	Artists      int `json:"total_artists"`
	Users        int `json:"total_users"`
}

// TrackCount pairs a track with how many playlists it appears in.
type TrackCount struct {
	TrackID    string `json:"track_id"`
	Name       string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	Playlists  int    `json:"playlists"`
}

// ArtistCount pairs an artist with their stored track count.
type ArtistCount struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"artist_name"`
	Tracks   int    `json:"tracks"`
}

// UserCount pairs a contributing user with how many tracks they added.
type UserCount struct {
	UserID string `json:"user_id"`
	Tracks int    `json:"tracks"`
}

// RecentTrack is a track with its playlist context, ordered by time added.
type RecentTrack struct {
	TrackID    string `json:"track_id"`
	Name       string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	PlaylistID string `json:"playlist_id"`
	TimeAdded  string `json:"time_added"`
}

// Totals returns the overall store counts.
func (r *StatsRepository) Totals() (*Totals, error) {
	t := &Totals{}

	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM playlists", &t.Playlists},
		{"SELECT COUNT(*) FROM tracks", &t.Tracks},
		{"SELECT COUNT(DISTINCT track_id) FROM tracks", &t.UniqueTracks},
		{"SELECT COUNT(DISTINCT artist_id) FROM tracks", &t.Artists},
		{"SELECT COUNT(DISTINCT user_added) FROM tracks WHERE user_added != ''", &t.Users},
	}

	for _, q := range queries {
		if err := r.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to compute totals: %w", err)
		}
	}

	return t, nil
}

// TopTracks returns the tracks appearing in the most playlists.
func (r *StatsRepository) TopTracks(limit int) ([]TrackCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT track_id, track_name, artist_name, COUNT(*) AS playlists
		FROM tracks
		GROUP BY track_id
		ORDER BY playlists DESC, track_name ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top tracks: %w", err)
	}
	defer rows.Close()

	var results []TrackCount
	for rows.Next() {
		var tc TrackCount
		if err := rows.Scan(&tc.TrackID, &tc.Name, &tc.ArtistName, &tc.Playlists); err != nil {
			return nil, fmt.Errorf("failed to scan top track: %w", err)
		}
		results = append(results, tc)
	}

	return results, rows.Err()
}

// TopArtists returns the artists with the most stored tracks.
func (r *StatsRepository) TopArtists(limit int) ([]ArtistCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT artist_id, artist_name, COUNT(*) AS tracks
		FROM tracks
		GROUP BY artist_id
		ORDER BY tracks DESC, artist_name ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top artists: %w", err)
	}
	defer rows.Close()

	var results []ArtistCount
	for rows.Next() {
		var ac ArtistCount
		if err := rows.Scan(&ac.ArtistID, &ac.Name, &ac.Tracks); err != nil {
			return nil, fmt.Errorf("failed to scan top artist: %w", err)
		}
		results = append(results, ac)
	}

	return results, rows.Err()
}

// TopUsers returns the users who contributed the most tracks.
func (r *StatsRepository) TopUsers(limit int) ([]UserCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT user_added, COUNT(*) AS tracks
		FROM tracks
		WHERE user_added != ''
		GROUP BY user_added
		ORDER BY tracks DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	var results []UserCount
	for rows.Next() {
		var uc UserCount
		if err := rows.Scan(&uc.UserID, &uc.Tracks); err != nil {
			return nil, fmt.Errorf("failed to scan top user: %w", err)
		}
		results = append(results, uc)
	}

	return results, rows.Err()
}

// RecentTracks returns the most recently added tracks across all playlists.
func (r *StatsRepository) RecentTracks(limit int) ([]RecentTrack, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT track_id, track_name, artist_name, playlist_id, time_added
		FROM tracks
		ORDER BY time_added DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent tracks: %w", err)
	}
	defer rows.Close()

	var results []RecentTrack
	for rows.Next() {
		var rt RecentTrack
		if err := rows.Scan(&rt.TrackID, &rt.Name, &rt.ArtistName, &rt.PlaylistID, &rt.TimeAdded); err != nil {
			return nil, fmt.Errorf("failed to scan recent track: %w", err)
		}
		results = append(results, rt)
	}

	return results, rows.Err()
}
