package tasks

import (
	"context"
	"fmt"
	"reflect"

	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/services"
	"github.com/desertthunder/jamjar/internal/shared"
)

// FieldDiff holds the two sides of one differing metadata field.
type FieldDiff struct {
	Local  any `json:"local"`
	Remote any `json:"remote"`
}

// DiffResult is the read-only comparison between the stored playlist and
// its current remote state.
//
// MetadataChanged is nil when the detailed comparison was not requested,
// and an empty (non-nil) map when it was requested and every field
// matched, so callers can tell "no differences" from "not checked".
type DiffResult struct {
	PlaylistID      string               `json:"playlist_id"`
	Added           []models.Track       `json:"added"`
	Removed         []models.Track       `json:"removed"`
	MetadataChanged map[string]FieldDiff `json:"metadata_changed"`
}

// Diff compares the stored playlist against its remote state without
// mutating either side. Added holds remote tracks not yet stored, Removed
// holds stored tracks no longer present remotely. Tracks without a remote
// ID appear in neither set.
func (e *Engine) Diff(ctx context.Context, identifier string, detailed bool) (*DiffResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	localPlaylist, err := e.playlists.Get(playlistID)
	if err != nil {
		return nil, err
	}

	localTracks, err := e.tracks.ListByPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	payload, err := e.remote.Playlist(ctx, playlistID)
	if err != nil {
		if services.IsNotFound(err) {
			return nil, fmt.Errorf("%w: playlist %s", shared.ErrNotFoundRemotely, playlistID)
		}
		return nil, err
	}

	items, err := e.remote.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	localIDs := make(map[string]struct{}, len(localTracks))
	for _, track := range localTracks {
		localIDs[track.ID] = struct{}{}
	}

	result := &DiffResult{PlaylistID: playlistID}

	remoteIDs := make(map[string]struct{}, len(items))
	for _, item := range items {
		track, ok := item.Model(playlistID)
		if !ok {
			continue
		}

		remoteIDs[track.ID] = struct{}{}
		if _, stored := localIDs[track.ID]; !stored {
			result.Added = append(result.Added, track)
		}
	}

	for _, track := range localTracks {
		if _, present := remoteIDs[track.ID]; !present {
			result.Removed = append(result.Removed, track)
		}
	}

	if detailed {
		result.MetadataChanged = metadataDiff(*localPlaylist, payload.Model())
	}

	return result, nil
}

// metadataDiff compares the two playlists field by field, emitting only
// the fields that differ. The returned map is never nil.
func metadataDiff(local, remote models.Playlist) map[string]FieldDiff {
	diff := make(map[string]FieldDiff)

	localFields := local.FieldMap()
	remoteFields := remote.FieldMap()

	for key, localValue := range localFields {
		remoteValue := remoteFields[key]
		if !reflect.DeepEqual(localValue, remoteValue) {
			diff[key] = FieldDiff{Local: localValue, Remote: remoteValue}
		}
	}

	return diff
}
