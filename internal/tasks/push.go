package tasks

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/desertthunder/jamjar/internal/services"
	"github.com/desertthunder/jamjar/internal/shared"
)

// PushOpts describes the remote playlist to create from local state.
type PushOpts struct {
	Name        string
	Description string
	Public      bool
	ImagePath   string
}

// PushResult summarizes a completed push.
type PushResult struct {
	PlaylistID    string `json:"playlist_id"`
	PlaylistURL   string `json:"playlist_url"`
	TrackCount    int    `json:"track_count"`
	Public        bool   `json:"public"`
	ImageUploaded bool   `json:"image_uploaded"`
}

// Push creates a new remote playlist from a stored playlist's tracks: one
// playlist creation, one batch track addition in local storage order, and
// an optional cover upload. The newly created remote ID is intentionally
// never written back onto the local row; the two playlists remain distinct
// identities.
func (e *Engine) Push(ctx context.Context, identifier string, opts PushOpts) (*PushResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	playlist, err := e.playlists.Get(playlistID)
	if err != nil {
		return nil, err
	}

	tracks, err := e.tracks.ListByPlaylist(playlistID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: playlist %s", shared.ErrEmptyPlaylist, playlistID)
	}

	if opts.Name == "" {
		opts.Name = playlist.Name
	}

	user, err := e.remote.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	created, err := e.remote.CreatePlaylist(ctx, user.ID, services.PlaylistSpec{
		Name:        opts.Name,
		Description: opts.Description,
		Public:      opts.Public,
	})
	if err != nil {
		return nil, err
	}

	uris := make([]string, len(tracks))
	for i, track := range tracks {
		uris[i] = track.URI
	}

	if err := e.remote.AddTracks(ctx, created.ID, uris); err != nil {
		return nil, err
	}

	result := &PushResult{
		PlaylistID:  created.ID,
		PlaylistURL: created.Model().URL,
		TrackCount:  len(uris),
		Public:      opts.Public,
	}

	if opts.ImagePath != "" {
		data, err := os.ReadFile(opts.ImagePath)
		if err != nil {
			return result, fmt.Errorf("playlist created but cover image unreadable: %w", err)
		}

		encoded := base64.StdEncoding.EncodeToString(data)
		if err := e.remote.SetCoverImage(ctx, created.ID, encoded); err != nil {
			return result, fmt.Errorf("playlist created but cover upload failed: %w", err)
		}
		result.ImageUploaded = true
	}

	e.logger.Info("pushed playlist", "source", playlistID, "created", created.ID, "tracks", len(uris))
	return result, nil
}
