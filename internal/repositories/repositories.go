// package repositories provides the persistence layer over SQLite.
//
// Each repository wraps a shared *sql.DB with hand-written SQL. Writes are
// idempotent upserts (INSERT OR REPLACE on the primary key), so re-applying
// an ingestion yields identical rows. The database is the system of record
// for the last known local state of every mirrored playlist.
package repositories

import (
	"database/sql"

	"github.com/desertthunder/jamjar/internal/models"
)

// scanPlaylist reads one playlist row into the canonical model. The scanner
// argument covers both *sql.Row and *sql.Rows.
func scanPlaylist(row interface{ Scan(dest ...any) error }) (models.Playlist, error) {
	var (
		p           models.Playlist
		description sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.OwnerID, &p.OwnerName, &p.OwnerURL,
		&p.URL, &description, &p.Public, &p.Collaborative,
		&p.FollowersTotal, &p.SnapshotID, &p.ImageURL, &p.TrackCount,
	)
	if err != nil {
		return models.Playlist{}, err
	}

	p.Description = description.String
	return p, nil
}

// scanTrack reads one track row into the canonical model.
func scanTrack(row interface{ Scan(dest ...any) error }) (models.Track, error) {
	var (
		t          models.Track
		previewURL sql.NullString
		isrc       sql.NullString
	)

	err := row.Scan(
		&t.ID, &t.Name, &t.URL, &t.URI, &previewURL, &t.Popularity,
		&t.AlbumID, &t.AlbumName, &t.AlbumURL,
		&t.ArtistID, &t.ArtistName, &t.ArtistURL,
		&t.Explicit, &t.Local, &t.DiscNumber, &isrc,
		&t.PlaylistID, &t.UserAdded, &t.TimeAdded,
	)
	if err != nil {
		return models.Track{}, err
	}

	t.PreviewURL = previewURL.String
	t.ISRC = isrc.String
	return t, nil
}
