package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jamjar/internal/formatter"
	"github.com/desertthunder/jamjar/internal/repositories"
	"github.com/desertthunder/jamjar/internal/shared"
	"github.com/desertthunder/jamjar/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Add fetches a playlist from Spotify and stores it locally.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.engine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Add(ctx, identifier)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return r.writePlain("✓ Stored '%s' (%d tracks, %d skipped)\n", result.Name, result.TracksStored, result.TracksSkipped)
}

// Update refreshes a stored playlist without touching deletions.
func (r *Runner) Update(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.engine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Update(ctx, identifier)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return r.writePlain("✓ Updated '%s' (%d tracks, %d skipped)\n", result.Name, result.TracksStored, result.TracksSkipped)
}

// Sync refreshes a stored playlist and reconciles local deletions.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.engine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Sync(ctx, identifier)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("✓ Synced '%s' (%d tracks, %d skipped)\n", result.Name, result.TracksStored, result.TracksSkipped)
	for _, track := range result.Removed {
		r.writePlain("  - removed %s - %s\n", track.ArtistName, track.Name)
	}
	return nil
}

// Pull fetches one playlist, or every stored playlist with --all.
func (r *Runner) Pull(ctx context.Context, cmd *cli.Command) error {
	engine, cleanup, err := r.engine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if cmd.Bool("all") {
		return r.pullAll(ctx, cmd, engine)
	}

	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required (or pass --all)", shared.ErrMissingArgument)
	}

	result, err := engine.Pull(ctx, identifier, cmd.Bool("rm"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("✓ Pulled '%s' [%s] (%d tracks, %d skipped)\n", result.Name, result.Status, result.TracksStored, result.TracksSkipped)
	for _, track := range result.Removed {
		r.writePlain("  - removed %s - %s\n", track.ArtistName, track.Name)
	}
	return nil
}

func (r *Runner) pullAll(ctx context.Context, cmd *cli.Command, engine *tasks.Engine) error {
	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
		close(done)
	}()

	result, err := engine.PullAll(ctx, prog, tasks.PullAllOpts{
		Remove:    cmd.Bool("rm"),
		RateLimit: cmd.Float("rate"),
	})
	close(prog)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return r.writePlain("✓ Pulled %d playlists (%d failed)\n", result.Successful, result.Failed)
}

// Push exports a stored playlist to a brand new Spotify playlist.
func (r *Runner) Push(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.engine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Push(ctx, identifier, tasks.PushOpts{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Public:      cmd.Bool("public"),
		ImagePath:   cmd.String("image"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("✓ Created playlist %s (%d tracks)\n", result.PlaylistID, result.TrackCount)
	if result.PlaylistURL != "" {
		r.writePlain("  %s\n", result.PlaylistURL)
	}
	if result.ImageUploaded {
		r.writePlain("  ✓ Cover image uploaded\n")
	}
	return nil
}

// Diff compares a stored playlist with its remote counterpart.
func (r *Runner) Diff(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.engine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Diff(ctx, identifier, cmd.Bool("detailed"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	if len(result.Added) == 0 && len(result.Removed) == 0 && len(result.MetadataChanged) == 0 {
		return r.writePlain("✓ Local copy is up to date\n")
	}

	for _, track := range result.Added {
		r.writePlain("+ %s - %s\n", track.ArtistName, track.Name)
	}
	for _, track := range result.Removed {
		r.writePlain("- %s - %s\n", track.ArtistName, track.Name)
	}
	for field, change := range result.MetadataChanged {
		r.writePlain("~ %s: %v → %v\n", field, change.Local, change.Remote)
	}
	return nil
}

// Remove deletes a stored playlist, a single track, or the whole store.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	engine, cleanup, err := r.localEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if cmd.Bool("all") {
		if _, err := engine.RemoveAll(); err != nil {
			return err
		}
		return r.writePlain("✓ Store emptied\n")
	}

	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required (or pass --all)", shared.ErrMissingArgument)
	}

	if trackID := cmd.String("track"); trackID != "" {
		result, err := engine.RemoveTrack(identifier, trackID)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Removed track '%s'\n", result.RemovedTrack)
	}

	result, err := engine.RemovePlaylist(identifier)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Removed playlist '%s'\n", result.RemovedPlaylist)
}

// List prints stored playlists, or the tracks of one playlist.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	engine, cleanup, err := r.localEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		playlists, err := engine.ListPlaylists()
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(playlists, true)
		}

		if len(playlists) == 0 {
			return r.writePlain("No playlists stored. Run 'jamjar add <playlist>' first.\n")
		}
		for _, pl := range playlists {
			r.writePlain("%s  %s (%d tracks)\n", pl.ID, pl.Name, pl.TrackCount)
		}
		return nil
	}

	tracks, err := engine.ListTracks(identifier)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.ArtistName, track.Name)
	}
	return nil
}

// Export writes a stored playlist to disk in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	identifier := cmd.StringArg("playlist")
	if identifier == "" {
		return fmt.Errorf("%w: playlist ID or URL required", shared.ErrMissingArgument)
	}

	engine, cleanup, err := r.localEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	export, err := engine.Export(identifier)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	switch format := cmd.String("format"); format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %s and %s\n", result.TracksFile, result.MetadataFile)
	case "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %s\n", path)
	case "json":
		path, err := formatter.WriteJSONExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %s\n", path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// Stats prints aggregates over the local library.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stats := repositories.NewStatsRepository(db)
	limit := int(cmd.Int("top"))

	totals, err := stats.Totals()
	if err != nil {
		return err
	}

	topTracks, err := stats.TopTracks(limit)
	if err != nil {
		return err
	}
	topArtists, err := stats.TopArtists(limit)
	if err != nil {
		return err
	}
	topUsers, err := stats.TopUsers(limit)
	if err != nil {
		return err
	}
	recent, err := stats.RecentTracks(limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"totals":      totals,
			"top_tracks":  topTracks,
			"top_artists": topArtists,
			"top_users":   topUsers,
			"recent":      recent,
		}, true)
	}

	r.writePlain("Playlists: %d\n", totals.Playlists)
	r.writePlain("Tracks: %d (%d unique)\n", totals.Tracks, totals.UniqueTracks)
	r.writePlain("Artists: %d\n", totals.Artists)
	r.writePlain("Contributors: %d\n", totals.Users)

	if len(topTracks) > 0 {
		r.writePlainln("Most added tracks:")
		for i, tc := range topTracks {
			r.writePlain("%d. %s - %s (%d playlists)\n", i+1, tc.ArtistName, tc.Name, tc.Playlists)
		}
	}
	if len(topArtists) > 0 {
		r.writePlainln("Most added artists:")
		for i, ac := range topArtists {
			r.writePlain("%d. %s (%d tracks)\n", i+1, ac.Name, ac.Tracks)
		}
	}
	if len(topUsers) > 0 {
		r.writePlainln("Top contributors:")
		for i, uc := range topUsers {
			r.writePlain("%d. %s (%d tracks)\n", i+1, uc.UserID, uc.Tracks)
		}
	}
	if len(recent) > 0 {
		r.writePlainln("Recently added:")
		for i, rt := range recent {
			r.writePlain("%d. %s - %s (%s)\n", i+1, rt.ArtistName, rt.Name, rt.TimeAdded)
		}
	}
	return nil
}
