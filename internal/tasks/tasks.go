// package tasks implements the reconciliation engine between Spotify and
// the local store.
//
// The engine owns no persistent state: it orchestrates the remote client
// and the repositories for the duration of one operation. Ingestion is
// idempotent (every write is an upsert keyed by remote identity), and
// deletion reconciliation always runs strictly after a complete ingestion,
// so a transient pagination failure can never cause deletions based on a
// partial remote listing.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/repositories"
	"github.com/desertthunder/jamjar/internal/services"
	"github.com/desertthunder/jamjar/internal/shared"
)

// Engine performs the sync operations against one remote client and one
// local store.
type Engine struct {
	remote    services.Remote
	playlists *repositories.PlaylistRepository
	tracks    *repositories.TrackRepository
	logger    *log.Logger
}

// NewEngine creates an Engine with the provided collaborators.
func NewEngine(remote services.Remote, playlists *repositories.PlaylistRepository, tracks *repositories.TrackRepository, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		remote:    remote,
		playlists: playlists,
		tracks:    tracks,
		logger:    logger,
	}
}

// IngestResult summarizes one ingestion of a remote playlist.
type IngestResult struct {
	PlaylistID    string `json:"playlist_id"`
	Name          string `json:"playlist_name"`
	TracksStored  int    `json:"tracks_stored"`
	TracksSkipped int    `json:"tracks_skipped"`
}

// SyncResult is an ingestion plus the tracks deleted locally because they
// were absent from the remote playlist.
type SyncResult struct {
	IngestResult
	Removed []models.Track `json:"removed_tracks"`
}

// PullResult distinguishes the created case (playlist previously unknown
// locally) from the updated case.
type PullResult struct {
	Status string `json:"status"` // "created" or "updated"
	IngestResult
	Removed []models.Track `json:"removed_tracks,omitempty"`
}

// ingestion carries the intermediate state of a completed ingestion.
type ingestion struct {
	playlist  models.Playlist
	remoteIDs map[string]struct{}
	result    IngestResult
}

// ingest fetches a remote playlist and all of its tracks, then upserts
// them into the store. Tracks with no remote identity are skipped, never
// stored. A store failure after the playlist row has been written wraps
// [shared.ErrPartialApplication]: some rows were mutated, and a retry of
// the whole operation is safe because every upsert is idempotent.
func (e *Engine) ingest(ctx context.Context, playlistID string) (*ingestion, error) {
	logger := shared.WithLogger(e.logger, "playlist", playlistID)

	logger.Debug("fetching remote state", "phase", FetchPlaylist)
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

	playlist := payload.Model()
	if err := e.playlists.Upsert(playlist); err != nil {
		return nil, err
	}

	remoteIDs := make(map[string]struct{}, len(items))
	stored, skipped := 0, 0

	for _, item := range items {
		track, ok := item.Model(playlistID)
		if !ok {
			skipped++
			continue
		}

		remoteIDs[track.ID] = struct{}{}

		if err := e.tracks.Upsert(track); err != nil {
			return nil, fmt.Errorf("%w: playlist row and %d track rows written: %v",
				shared.ErrPartialApplication, stored, err)
		}
		stored++
	}

	logger.Debug("stored tracks", "phase", StoreTracks, "tracks", stored, "skipped", skipped)

	return &ingestion{
		playlist:  playlist,
		remoteIDs: remoteIDs,
		result: IngestResult{
			PlaylistID:    playlistID,
			Name:          playlist.Name,
			TracksStored:  stored,
			TracksSkipped: skipped,
		},
	}, nil
}

// reconcileDeletions deletes every local track of the playlist whose ID is
// absent from the remote set, returning the deleted rows. It must only be
// called after a complete ingestion.
func (e *Engine) reconcileDeletions(playlistID string, remoteIDs map[string]struct{}) ([]models.Track, error) {
	local, err := e.tracks.ListByPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("reconciling deletions", "phase", Reconcile, "playlist", playlistID, "local", len(local), "remote", len(remoteIDs))

	var removed []models.Track
	for _, track := range local {
		if _, ok := remoteIDs[track.ID]; ok {
			continue
		}

		if err := e.tracks.Delete(track.ID, playlistID); err != nil {
			if len(removed) > 0 {
				return removed, fmt.Errorf("%w: %d tracks deleted before failure: %v",
					shared.ErrPartialApplication, len(removed), err)
			}
			return nil, err
		}
		removed = append(removed, track)
	}

	return removed, nil
}

// Add mirrors a remote playlist into the store: playlist metadata plus
// every track carrying a remote ID. The identifier may be a raw playlist
// ID or a playlist URL.
func (e *Engine) Add(ctx context.Context, identifier string) (*IngestResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	ing, err := e.ingest(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	return &ing.result, nil
}

// Update overwrites the stored playlist and tracks with the current remote
// state. Rows absent remotely are left in place; use Sync to delete them.
func (e *Engine) Update(ctx context.Context, identifier string) (*IngestResult, error) {
	return e.Add(ctx, identifier)
}

// Sync performs an Update followed by deletion reconciliation: every local
// track missing from the remote playlist is deleted. The set difference is
// evaluated only after ingestion completes.
func (e *Engine) Sync(ctx context.Context, identifier string) (*SyncResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	ing, err := e.ingest(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	removed, err := e.reconcileDeletions(playlistID, ing.remoteIDs)
	if err != nil {
		return nil, err
	}

	return &SyncResult{IngestResult: ing.result, Removed: removed}, nil
}

// Pull brings a playlist up to date with its remote state. An unknown
// playlist is added (status "created"); a known one is updated (status
// "updated"), with deletion reconciliation when remove is set.
func (e *Engine) Pull(ctx context.Context, identifier string, remove bool) (*PullResult, error) {
	playlistID := shared.ExtractPlaylistID(identifier)

	known, err := e.playlists.Exists(playlistID)
	if err != nil {
		return nil, err
	}

	ing, err := e.ingest(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	result := &PullResult{Status: "updated", IngestResult: ing.result}
	if !known {
		result.Status = "created"
		return result, nil
	}

	if remove {
		removed, err := e.reconcileDeletions(playlistID, ing.remoteIDs)
		if err != nil {
			return nil, err
		}
		result.Removed = removed
	}

	return result, nil
}

// Export reads a stored playlist and its tracks for file export. It never
// touches the remote service.
func (e *Engine) Export(identifier string) (*models.PlaylistExport, error) {
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

	return &models.PlaylistExport{
		ExportID: shared.GenerateID(),
		Playlist: *playlist,
		Tracks:   tracks,
	}, nil
}
