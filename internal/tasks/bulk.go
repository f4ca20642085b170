package tasks

import (
	"context"

	"github.com/desertthunder/jamjar/internal/shared"
	"golang.org/x/time/rate"
)

// PullAllOpts contains configuration for refreshing every stored playlist.
type PullAllOpts struct {
	Remove    bool    // Remove stored tracks no longer present remotely
	RateLimit float64 // Requests per second (default: 5)
}

// PlaylistPullResult records the outcome for a single playlist during PullAll.
type PlaylistPullResult struct {
	PlaylistID   string `json:"playlist_id"`
	PlaylistName string `json:"playlist_name"`
	Success      bool   `json:"success"`
	Stored       int    `json:"stored"`
	Removed      int    `json:"removed"`
	Error        error  `json:"-"`
}

// PullAllResult summarizes a PullAll run. RunID identifies the run in logs
// and JSON output.
type PullAllResult struct {
	RunID          string               `json:"run_id"`
	TotalPlaylists int                  `json:"total_playlists"`
	Successful     int                  `json:"successful"`
	Failed         int                  `json:"failed"`
	Results        []PlaylistPullResult `json:"results"`
}

// PullAll refreshes every stored playlist from the remote service.
//
// Playlists are processed sequentially because each pull writes to the
// store inside a transaction. The limiter keeps the remote fetches under
// the requested request rate. Failures are collected per playlist rather
// than aborting the run.
func (e *Engine) PullAll(ctx context.Context, prog chan<- ProgressUpdate, opts PullAllOpts) (*PullAllResult, error) {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	playlists, err := e.playlists.List()
	if err != nil {
		return nil, err
	}

	result := &PullAllResult{
		RunID:          shared.GenerateID(),
		TotalPlaylists: len(playlists),
		Results:        make([]PlaylistPullResult, 0, len(playlists)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	for i, playlist := range playlists {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		e.sendProgress(prog, pullingPlaylistUpdate(i+1, len(playlists), playlist.Name))

		res := PlaylistPullResult{
			PlaylistID:   playlist.ID,
			PlaylistName: playlist.Name,
		}

		pulled, err := e.Pull(ctx, playlist.ID, opts.Remove)
		if err != nil {
			res.Error = err
			result.Failed++
			result.Results = append(result.Results, res)
			e.sendProgress(prog, pullFailedUpdate(i+1, len(playlists), playlist.Name, err))
			continue
		}

		res.Success = true
		res.Stored = pulled.TracksStored
		res.Removed = len(pulled.Removed)
		result.Successful++
		result.Results = append(result.Results, res)
		e.sendProgress(prog, pullCompletedUpdate(i+1, len(playlists), playlist.Name, pulled.TracksStored))
	}

	return result, nil
}
