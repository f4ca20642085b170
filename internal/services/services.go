// package services wraps the Spotify Web API consumed by the sync engine
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/shared"
)

// Remote defines the Spotify surface the sync engine depends on.
// [SpotifyClient] is the production implementation; tests substitute doubles.
type Remote interface {
	// Playlist retrieves a playlist's metadata by ID.
	Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error)

	// PlaylistTracks retrieves every track of a playlist, following the
	// pagination cursor until exhausted. Callers never see partial pages.
	PlaylistTracks(ctx context.Context, playlistID string) ([]PlaylistTrackItem, error)

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*SpotifyUser, error)

	// CreatePlaylist creates a new playlist owned by the given user.
	CreatePlaylist(ctx context.Context, userID string, spec PlaylistSpec) (*SpotifyPlaylist, error)

	// AddTracks appends tracks to a playlist by URI, preserving order.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// SetCoverImage uploads a base64-encoded JPEG as the playlist cover.
	SetCoverImage(ctx context.Context, playlistID string, encodedJPEG string) error
}

var _ Remote = (*SpotifyClient)(nil)

// RemoteError is returned for any non-2xx Spotify response. It carries the
// HTTP status and response body for the caller to inspect.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("spotify returned status %d: %s", e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return shared.ErrRemoteRejected
}

// IsNotFound reports whether err is a Spotify 404.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == 404
}

// PlaylistSpec describes a playlist to be created remotely.
type PlaylistSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// Model converts a raw playlist payload into the canonical [models.Playlist].
func (p *SpotifyPlaylist) Model() models.Playlist {
	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0].URL
	}

	return models.Playlist{
		ID:             p.ID,
		Name:           p.Name,
		OwnerID:        p.Owner.ID,
		OwnerName:      p.Owner.DisplayName,
		OwnerURL:       p.Owner.ExternalURLs.Spotify,
		URL:            p.ExternalURLs.Spotify,
		Description:    p.Description,
		Public:         p.Public,
		Collaborative:  p.Collaborative,
		FollowersTotal: p.Followers.Total,
		SnapshotID:     p.SnapshotID,
		ImageURL:       imageURL,
		TrackCount:     p.Tracks.Total,
	}
}

// Model converts a playlist track item into the canonical [models.Track]
// scoped to the given playlist. The second return value is false for items
// with no remote identity (missing track or empty ID); those are skipped
// during ingestion, never persisted or compared.
func (i PlaylistTrackItem) Model(playlistID string) (models.Track, bool) {
	if i.Track == nil || i.Track.ID == "" {
		return models.Track{}, false
	}

	t := i.Track
	track := models.Track{
		ID:         t.ID,
		Name:       t.Name,
		URL:        t.ExternalURLs.Spotify,
		URI:        t.URI,
		PreviewURL: t.PreviewURL,
		Popularity: t.Popularity,
		AlbumID:    t.Album.ID,
		AlbumName:  t.Album.Name,
		AlbumURL:   t.Album.ExternalURLs.Spotify,
		Explicit:   t.Explicit,
		Local:      t.IsLocal,
		DiscNumber: t.DiscNumber,
		ISRC:       t.ExternalIDs.ISRC,
		PlaylistID: playlistID,
		UserAdded:  i.AddedBy.ID,
		TimeAdded:  i.AddedAt,
	}

	if len(t.Artists) > 0 {
		track.ArtistID = t.Artists[0].ID
		track.ArtistName = t.Artists[0].Name
		track.ArtistURL = t.Artists[0].ExternalURLs.Spotify
	}

	return track, true
}
