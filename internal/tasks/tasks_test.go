package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/repositories"
	"github.com/desertthunder/jamjar/internal/services"
	"github.com/desertthunder/jamjar/internal/shared"
	jamtest "github.com/desertthunder/jamjar/internal/testing"
)

// setupEngine wires an Engine over an in-memory store and the given remote.
func setupEngine(t *testing.T, remote services.Remote) (*Engine, *sql.DB) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	engine := NewEngine(remote, repositories.NewPlaylistRepository(db), repositories.NewTrackRepository(db), nil)
	return engine, db
}

func remotePlaylist(id, name string) *services.SpotifyPlaylist {
	pl := &services.SpotifyPlaylist{
		ID:          id,
		Name:        name,
		Description: "a test playlist",
		SnapshotID:  "snap1",
	}
	pl.Owner.ID = "owner1"
	pl.Owner.DisplayName = "Owner One"
	return pl
}

func remoteItem(trackID, name string) services.PlaylistTrackItem {
	item := services.PlaylistTrackItem{
		AddedAt: "2024-01-01T00:00:00Z",
		Track: &services.SpotifyTrack{
			ID:   trackID,
			Name: name,
			URI:  "spotify:track:" + trackID,
		},
	}
	item.AddedBy.ID = "user1"
	item.Track.Artists = []services.SpotifyArtist{{ID: "artist1", Name: "Artist One"}}
	return item
}

func fixedRemote(playlist *services.SpotifyPlaylist, items []services.PlaylistTrackItem) *jamtest.MockRemote {
	return &jamtest.MockRemote{
		PlaylistFunc: func(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error) {
			return playlist, nil
		},
		PlaylistTracksFunc: func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return items, nil
		},
	}
}

func TestEngine_Add(t *testing.T) {
	t.Run("stores playlist and tracks", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("t1", "One"),
			remoteItem("t2", "Two"),
		})
		engine, db := setupEngine(t, remote)
		defer db.Close()

		result, err := engine.Add(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}

		if result.TracksStored != 2 {
			t.Errorf("expected 2 stored tracks, got %d", result.TracksStored)
		}
		if result.Name != "Mix" {
			t.Errorf("expected playlist name Mix, got %s", result.Name)
		}

		tracks, err := engine.ListTracks("pl1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks in store, got %d", len(tracks))
		}
	})

	t.Run("accepts playlist URLs", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), nil)
		engine, db := setupEngine(t, remote)
		defer db.Close()

		result, err := engine.Add(context.Background(), "https://open.spotify.com/playlist/pl1?si=abc123")
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if result.PlaylistID != "pl1" {
			t.Errorf("expected extracted ID pl1, got %s", result.PlaylistID)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("t1", "One"),
		})
		engine, db := setupEngine(t, remote)
		defer db.Close()

		for i := 0; i < 2; i++ {
			if _, err := engine.Add(context.Background(), "pl1"); err != nil {
				t.Fatalf("add %d failed: %v", i, err)
			}
		}

		tracks, err := engine.ListTracks("pl1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tracks) != 1 {
			t.Errorf("expected 1 track after repeated adds, got %d", len(tracks))
		}

		playlists, err := engine.ListPlaylists()
		if err != nil {
			t.Fatalf("list playlists failed: %v", err)
		}
		if len(playlists) != 1 {
			t.Errorf("expected 1 playlist after repeated adds, got %d", len(playlists))
		}
	})

	t.Run("skips tracks without a remote ID", func(t *testing.T) {
		items := []services.PlaylistTrackItem{
			remoteItem("t1", "One"),
			{AddedAt: "2024-01-01T00:00:00Z"}, // nil track
			remoteItem("", "Local File"),      // empty ID
		}
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), items)
		engine, db := setupEngine(t, remote)
		defer db.Close()

		result, err := engine.Add(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if result.TracksStored != 1 {
			t.Errorf("expected 1 stored, got %d", result.TracksStored)
		}
		if result.TracksSkipped != 2 {
			t.Errorf("expected 2 skipped, got %d", result.TracksSkipped)
		}
	})

	t.Run("missing remote playlist", func(t *testing.T) {
		remote := &jamtest.MockRemote{
			PlaylistFunc: func(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error) {
				return nil, &services.RemoteError{StatusCode: 404, Body: "not found"}
			},
		}
		engine, db := setupEngine(t, remote)
		defer db.Close()

		_, err := engine.Add(context.Background(), "missing")
		if !errors.Is(err, shared.ErrNotFoundRemotely) {
			t.Errorf("expected ErrNotFoundRemotely, got %v", err)
		}
	})
}

func TestEngine_Sync(t *testing.T) {
	t.Run("deletes exactly the tracks gone remotely", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
			remoteItem("b", "B"),
			remoteItem("c", "C"),
		})
		engine, db := setupEngine(t, remote)
		defer db.Close()

		if _, err := engine.Add(context.Background(), "pl1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		// b disappears remotely
		remote.PlaylistTracksFunc = func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return []services.PlaylistTrackItem{
				remoteItem("a", "A"),
				remoteItem("c", "C"),
			}, nil
		}

		result, err := engine.Sync(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if len(result.Removed) != 1 || result.Removed[0].ID != "b" {
			t.Fatalf("expected exactly b removed, got %+v", result.Removed)
		}

		tracks, err := engine.ListTracks("pl1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks remaining, got %d", len(tracks))
		}
	})

	t.Run("skipped remote tracks never trigger deletions", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
		})
		engine, db := setupEngine(t, remote)
		defer db.Close()

		if _, err := engine.Add(context.Background(), "pl1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		remote.PlaylistTracksFunc = func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return []services.PlaylistTrackItem{
				remoteItem("a", "A"),
				remoteItem("", "Local File"),
			}, nil
		}

		result, err := engine.Sync(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if len(result.Removed) != 0 {
			t.Errorf("expected no removals, got %+v", result.Removed)
		}
	})
}

func TestEngine_Pull(t *testing.T) {
	remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
		remoteItem("a", "A"),
	})
	engine, db := setupEngine(t, remote)
	defer db.Close()

	t.Run("unknown playlist is created", func(t *testing.T) {
		result, err := engine.Pull(context.Background(), "pl1", true)
		if err != nil {
			t.Fatalf("pull failed: %v", err)
		}
		if result.Status != "created" {
			t.Errorf("expected status created, got %s", result.Status)
		}
		if len(result.Removed) != 0 {
			t.Errorf("expected no removals on first pull, got %+v", result.Removed)
		}
	})

	t.Run("known playlist is updated", func(t *testing.T) {
		result, err := engine.Pull(context.Background(), "pl1", false)
		if err != nil {
			t.Fatalf("pull failed: %v", err)
		}
		if result.Status != "updated" {
			t.Errorf("expected status updated, got %s", result.Status)
		}
	})

	t.Run("remove reconciles deletions", func(t *testing.T) {
		remote.PlaylistTracksFunc = func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return nil, nil
		}

		result, err := engine.Pull(context.Background(), "pl1", true)
		if err != nil {
			t.Fatalf("pull failed: %v", err)
		}
		if len(result.Removed) != 1 || result.Removed[0].ID != "a" {
			t.Errorf("expected a removed, got %+v", result.Removed)
		}
	})
}

func TestEngine_PullAll(t *testing.T) {
	remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
		remoteItem("a", "A"),
	})
	engine, db := setupEngine(t, remote)
	defer db.Close()

	if _, err := engine.Add(context.Background(), "pl1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	prog := make(chan ProgressUpdate, 50)
	result, err := engine.PullAll(context.Background(), prog, PullAllOpts{RateLimit: 100})
	close(prog)
	if err != nil {
		t.Fatalf("pull all failed: %v", err)
	}

	if result.TotalPlaylists != 1 || result.Successful != 1 || result.Failed != 0 {
		t.Errorf("unexpected result %+v", result)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}

	var messages int
	for range prog {
		messages++
	}
	if messages == 0 {
		t.Error("expected progress updates")
	}
}

func TestEngine_Diff(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Engine, *jamtest.MockRemote, func()) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
			remoteItem("b", "B"),
		})
		engine, db := setupEngine(t, remote)

		if _, err := engine.Add(ctx, "pl1"); err != nil {
			db.Close()
			t.Fatalf("add failed: %v", err)
		}
		return engine, remote, func() { db.Close() }
	}

	t.Run("no drift", func(t *testing.T) {
		engine, _, cleanup := setup(t)
		defer cleanup()

		result, err := engine.Diff(ctx, "pl1", false)
		if err != nil {
			t.Fatalf("diff failed: %v", err)
		}

		if len(result.Added) != 0 || len(result.Removed) != 0 {
			t.Errorf("expected empty diff, got %+v", result)
		}
		if result.MetadataChanged != nil {
			t.Error("expected nil metadata map without detailed")
		}
	})

	t.Run("set difference", func(t *testing.T) {
		engine, remote, cleanup := setup(t)
		defer cleanup()

		// b removed remotely, c added remotely
		remote.PlaylistTracksFunc = func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return []services.PlaylistTrackItem{
				remoteItem("a", "A"),
				remoteItem("c", "C"),
			}, nil
		}

		result, err := engine.Diff(ctx, "pl1", false)
		if err != nil {
			t.Fatalf("diff failed: %v", err)
		}

		if len(result.Added) != 1 || result.Added[0].ID != "c" {
			t.Errorf("expected c added, got %+v", result.Added)
		}
		if len(result.Removed) != 1 || result.Removed[0].ID != "b" {
			t.Errorf("expected b removed, got %+v", result.Removed)
		}
	})

	t.Run("diff never mutates the store", func(t *testing.T) {
		engine, remote, cleanup := setup(t)
		defer cleanup()

		remote.PlaylistTracksFunc = func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return nil, nil
		}

		if _, err := engine.Diff(ctx, "pl1", false); err != nil {
			t.Fatalf("diff failed: %v", err)
		}

		tracks, err := engine.ListTracks("pl1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected store untouched, got %d tracks", len(tracks))
		}
	})

	t.Run("detailed with no changes returns empty map", func(t *testing.T) {
		engine, _, cleanup := setup(t)
		defer cleanup()

		result, err := engine.Diff(ctx, "pl1", true)
		if err != nil {
			t.Fatalf("diff failed: %v", err)
		}

		if result.MetadataChanged == nil {
			t.Fatal("expected non-nil metadata map with detailed")
		}
		if len(result.MetadataChanged) != 0 {
			t.Errorf("expected no metadata differences, got %+v", result.MetadataChanged)
		}
	})

	t.Run("detailed reports field level changes", func(t *testing.T) {
		engine, remote, cleanup := setup(t)
		defer cleanup()

		renamed := remotePlaylist("pl1", "Renamed Mix")
		remote.PlaylistFunc = func(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error) {
			return renamed, nil
		}

		result, err := engine.Diff(ctx, "pl1", true)
		if err != nil {
			t.Fatalf("diff failed: %v", err)
		}

		change, ok := result.MetadataChanged["playlist_name"]
		if !ok {
			t.Fatalf("expected playlist_name change, got %+v", result.MetadataChanged)
		}
		if change.Local != "Mix" || change.Remote != "Renamed Mix" {
			t.Errorf("unexpected change %+v", change)
		}
	})

	t.Run("unknown local playlist", func(t *testing.T) {
		engine, _, cleanup := setup(t)
		defer cleanup()

		_, err := engine.Diff(ctx, "unknown", false)
		if !errors.Is(err, shared.ErrNotFoundLocally) {
			t.Errorf("expected ErrNotFoundLocally, got %v", err)
		}
	})
}

func TestEngine_Push(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, remote services.Remote) (*Engine, func()) {
		fetcher := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
			remoteItem("b", "B"),
		})
		engine, db := setupEngine(t, fetcher)
		if _, err := engine.Add(ctx, "pl1"); err != nil {
			db.Close()
			t.Fatalf("add failed: %v", err)
		}

		pushed := NewEngine(remote, engine.playlists, engine.tracks, nil)
		return pushed, func() { db.Close() }
	}

	t.Run("creates playlist with tracks in order", func(t *testing.T) {
		var gotSpec services.PlaylistSpec
		var gotURIs []string

		remote := &jamtest.MockRemote{
			CurrentUserFunc: func(ctx context.Context) (*services.SpotifyUser, error) {
				return &services.SpotifyUser{ID: "me"}, nil
			},
			CreatePlaylistFunc: func(ctx context.Context, userID string, spec services.PlaylistSpec) (*services.SpotifyPlaylist, error) {
				gotSpec = spec
				return remotePlaylist("new-id", spec.Name), nil
			},
			AddTracksFunc: func(ctx context.Context, playlistID string, uris []string) error {
				gotURIs = uris
				return nil
			},
		}

		engine, cleanup := seed(t, remote)
		defer cleanup()

		result, err := engine.Push(ctx, "pl1", PushOpts{})
		if err != nil {
			t.Fatalf("push failed: %v", err)
		}

		if gotSpec.Name != "Mix" {
			t.Errorf("expected default name Mix, got %s", gotSpec.Name)
		}
		if len(gotURIs) != 2 || gotURIs[0] != "spotify:track:a" || gotURIs[1] != "spotify:track:b" {
			t.Errorf("expected ordered URIs, got %v", gotURIs)
		}
		if result.PlaylistID != "new-id" {
			t.Errorf("expected new-id, got %s", result.PlaylistID)
		}

		// local identity must remain untouched
		playlist, err := engine.playlists.Get("pl1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if playlist.ID != "pl1" {
			t.Errorf("local identity changed to %s", playlist.ID)
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		remote := &jamtest.MockRemote{}
		engine, db := setupEngine(t, remote)
		defer db.Close()

		if err := engine.playlists.Upsert(models.Playlist{ID: "empty", Name: "Empty"}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		_, err := engine.Push(ctx, "empty", PushOpts{})
		if !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("expected ErrEmptyPlaylist, got %v", err)
		}
	})

	t.Run("rejected creation surfaces remote error", func(t *testing.T) {
		remote := &jamtest.MockRemote{
			CreatePlaylistFunc: func(ctx context.Context, userID string, spec services.PlaylistSpec) (*services.SpotifyPlaylist, error) {
				return nil, &services.RemoteError{StatusCode: 403, Body: "forbidden"}
			},
		}
		engine, cleanup := seed(t, remote)
		defer cleanup()

		_, err := engine.Push(ctx, "pl1", PushOpts{})
		if !errors.Is(err, shared.ErrRemoteRejected) {
			t.Errorf("expected ErrRemoteRejected, got %v", err)
		}
	})

	t.Run("missing cover image returns partial result", func(t *testing.T) {
		remote := &jamtest.MockRemote{
			CreatePlaylistFunc: func(ctx context.Context, userID string, spec services.PlaylistSpec) (*services.SpotifyPlaylist, error) {
				return remotePlaylist("new-id", spec.Name), nil
			},
		}
		engine, cleanup := seed(t, remote)
		defer cleanup()

		result, err := engine.Push(ctx, "pl1", PushOpts{ImagePath: "/nonexistent/cover.jpg"})
		if err == nil {
			t.Fatal("expected an error for the unreadable image")
		}
		if result == nil || result.PlaylistID != "new-id" {
			t.Errorf("expected partial result with created playlist, got %+v", result)
		}
		if result.ImageUploaded {
			t.Error("image must not be marked uploaded")
		}
	})
}

func TestEngine_Remove(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Engine, func()) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
			remoteItem("b", "B"),
		})
		engine, db := setupEngine(t, remote)
		if _, err := engine.Add(ctx, "pl1"); err != nil {
			db.Close()
			t.Fatalf("add failed: %v", err)
		}
		return engine, func() { db.Close() }
	}

	t.Run("remove playlist", func(t *testing.T) {
		engine, cleanup := seed(t)
		defer cleanup()

		result, err := engine.RemovePlaylist("pl1")
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if result.RemovedPlaylist != "Mix" {
			t.Errorf("expected playlist name, got %s", result.RemovedPlaylist)
		}

		_, err = engine.playlists.Get("pl1")
		if !errors.Is(err, shared.ErrNotFoundLocally) {
			t.Errorf("expected playlist gone, got %v", err)
		}
	})

	t.Run("remove single track", func(t *testing.T) {
		engine, cleanup := seed(t)
		defer cleanup()

		result, err := engine.RemoveTrack("pl1", "a")
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if result.RemovedTrack != "A" {
			t.Errorf("expected track name, got %s", result.RemovedTrack)
		}

		tracks, err := engine.ListTracks("pl1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tracks) != 1 {
			t.Errorf("expected 1 track remaining, got %d", len(tracks))
		}
	})

	t.Run("remove unknown playlist", func(t *testing.T) {
		engine, cleanup := seed(t)
		defer cleanup()

		_, err := engine.RemovePlaylist("nope")
		if !errors.Is(err, shared.ErrNotFoundLocally) {
			t.Errorf("expected ErrNotFoundLocally, got %v", err)
		}
	})
}

func TestEngine_Export(t *testing.T) {
	ctx := context.Background()

	remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
		remoteItem("a", "A"),
	})
	engine, db := setupEngine(t, remote)
	defer db.Close()

	if _, err := engine.Add(ctx, "pl1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	t.Run("bundles playlist and tracks", func(t *testing.T) {
		export, err := engine.Export("pl1")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if export.Playlist.Name != "Mix" || len(export.Tracks) != 1 {
			t.Errorf("unexpected export %+v", export)
		}
		if export.ExportID == "" {
			t.Error("expected an export ID")
		}
	})

	t.Run("each export gets its own ID", func(t *testing.T) {
		first, err := engine.Export("pl1")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		second, err := engine.Export("pl1")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if first.ExportID == second.ExportID {
			t.Errorf("expected distinct export IDs, got %s twice", first.ExportID)
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		if err := engine.playlists.Upsert(models.Playlist{ID: "empty", Name: "Empty"}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		_, err := engine.Export("empty")
		if !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("expected ErrEmptyPlaylist, got %v", err)
		}
	})
}

func TestEngine_PartialApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("store failure mid-ingestion", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
			remoteItem("b", "B"),
		})
		engine, db := setupEngine(t, remote)
		defer db.Close()

		if _, err := db.Exec("DROP TABLE tracks"); err != nil {
			t.Fatalf("drop failed: %v", err)
		}

		_, err := engine.Add(ctx, "pl1")
		if !errors.Is(err, shared.ErrPartialApplication) {
			t.Errorf("expected ErrPartialApplication, got %v", err)
		}
	})

	t.Run("delete failure mid-reconciliation", func(t *testing.T) {
		remote := fixedRemote(remotePlaylist("pl1", "Mix"), []services.PlaylistTrackItem{
			remoteItem("a", "A"),
			remoteItem("b", "B"),
			remoteItem("c", "C"),
		})
		engine, db := setupEngine(t, remote)
		defer db.Close()

		if _, err := engine.Add(ctx, "pl1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		trigger := `CREATE TRIGGER undeletable BEFORE DELETE ON tracks
			WHEN OLD.track_id = 'c'
			BEGIN SELECT RAISE(ABORT, 'locked row'); END`
		if _, err := db.Exec(trigger); err != nil {
			t.Fatalf("trigger failed: %v", err)
		}

		remote.PlaylistTracksFunc = func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
			return []services.PlaylistTrackItem{remoteItem("a", "A")}, nil
		}

		_, err := engine.Sync(ctx, "pl1")
		if !errors.Is(err, shared.ErrPartialApplication) {
			t.Errorf("expected ErrPartialApplication, got %v", err)
		}

		tracks, err := engine.ListTracks("pl1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected one deletion before the failure, got %d tracks", len(tracks))
		}
	})
}
