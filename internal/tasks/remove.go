package tasks

import (
	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/shared"
)

// RemoveResult names what a removal deleted.
type RemoveResult struct {
	Status          string `json:"status"`
	RemovedPlaylist string `json:"removed_playlist,omitempty"`
	RemovedTrack    string `json:"removed_track,omitempty"`
}

// RemovePlaylist deletes a stored playlist and all of its tracks.
func (e *Engine) RemovePlaylist(identifier string) (*RemoveResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	playlist, err := e.playlists.Get(playlistID)
	if err != nil {
		return nil, err
	}

	if err := e.playlists.Delete(playlistID); err != nil {
		return nil, err
	}

	return &RemoveResult{Status: "removed", RemovedPlaylist: playlist.Name}, nil
}

// RemoveTrack deletes a single track from a stored playlist.
func (e *Engine) RemoveTrack(identifier, trackID string) (*RemoveResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	track, err := e.tracks.Get(trackID, playlistID)
	if err != nil {
		return nil, err
	}

	if err := e.tracks.Delete(trackID, playlistID); err != nil {
		return nil, err
	}

	return &RemoveResult{Status: "removed", RemovedTrack: track.Name}, nil
}

// RemoveAll wipes the entire store.
func (e *Engine) RemoveAll() (*RemoveResult, error) {
	if err := e.playlists.DeleteAll(); err != nil {
		return nil, err
	}
	return &RemoveResult{Status: "removed"}, nil
}

// ListPlaylists returns every stored playlist.
func (e *Engine) ListPlaylists() ([]models.Playlist, error) {
	return e.playlists.List()
}

// ListTracks returns the stored tracks of one playlist.
func (e *Engine) ListTracks(identifier string) ([]models.Track, error) {
	return e.tracks.ListByPlaylist(shared.ExtractPlaylistID(identifier))
}
