package formatter

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/jamjar/internal/models"
	tu "github.com/desertthunder/jamjar/internal/testing"
)

func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          "pl1",
			Name:        "Road Trip Mix",
			Description: "songs for long drives",
			OwnerID:     "user1",
			TrackCount:  2,
		},
		Tracks: []models.Track{
			{
				ID:         "t1",
				Name:       "First Song",
				ArtistName: "Artist One",
				AlbumName:  "Album One",
				UserAdded:  "user1",
				TimeAdded:  "2024-01-01T00:00:00Z",
				Popularity: 80,
				ISRC:       "USRC12345678",
				PlaylistID: "pl1",
			},
			{
				ID:         "t2",
				Name:       "Second, Song",
				ArtistName: "Artist Two",
				AlbumName:  "Album Two",
				UserAdded:  "user2",
				TimeAdded:  "2024-01-02T00:00:00Z",
				Popularity: 55,
				PlaylistID: "pl1",
			},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(testExport())
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 records, got %d rows", len(records))
	}
	if records[0][0] != "ID" || records[0][7] != "ISRC" {
		t.Errorf("unexpected headers: %v", records[0])
	}
	if records[1][1] != "First Song" || records[1][2] != "Artist One" {
		t.Errorf("unexpected first record: %v", records[1])
	}
	if records[1][6] != "80" {
		t.Errorf("expected popularity 80, got %s", records[1][6])
	}
	if records[2][1] != "Second, Song" {
		t.Errorf("expected comma in title to survive quoting, got %s", records[2][1])
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testExport())
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	text := string(data)
	for _, want := range []string{
		"Playlist: Road Trip Mix",
		"Description: songs for long drives",
		"Tracks: 2",
		"1. Artist One - First Song",
		"2. Artist Two - Second, Song",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q:\n%s", want, text)
		}
	}

	t.Run("omits empty description", func(t *testing.T) {
		export := testExport()
		export.Playlist.Description = ""

		data, err := ExportToText(export)
		if err != nil {
			t.Fatalf("failed to export: %v", err)
		}
		if strings.Contains(string(data), "Description:") {
			t.Error("expected description line omitted")
		}
	})
}

func TestWriteJSONExport(t *testing.T) {
	dir := t.TempDir()

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(dir, "out.json")
		written, err := WriteJSONExport(testExport(), path)
		if err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}

		data := tu.MustReadFile(t, path)

		var export models.PlaylistExport
		if err := json.Unmarshal([]byte(data), &export); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if export.Playlist.Name != "Road Trip Mix" || len(export.Tracks) != 2 {
			t.Errorf("round trip mismatch: %+v", export.Playlist)
		}
	})

	t.Run("default filename from playlist name", func(t *testing.T) {
		cwd := tu.MustGetwd(t)
		tu.MustChdir(t, dir)
		defer tu.MustChdir(t, cwd)

		written, err := WriteJSONExport(testExport(), "")
		if err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if written != "Road_Trip_Mix.json" {
			t.Errorf("expected sanitized default filename, got %s", written)
		}
		tu.AssertFileExists(t, written)
	})
}

func TestWriteCSVExport(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "mix")

	result, err := WriteCSVExport(testExport(), base)
	if err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	if result.TracksFile != base+"_tracks.csv" {
		t.Errorf("unexpected tracks file: %s", result.TracksFile)
	}
	if result.MetadataFile != base+"_metadata.json" {
		t.Errorf("unexpected metadata file: %s", result.MetadataFile)
	}

	metadata := tu.MustReadFile(t, result.MetadataFile)

	var playlist models.Playlist
	if err := json.Unmarshal([]byte(metadata), &playlist); err != nil {
		t.Fatalf("invalid metadata JSON: %v", err)
	}
	if playlist.ID != "pl1" {
		t.Errorf("expected playlist pl1, got %s", playlist.ID)
	}
	if strings.Contains(metadata, "\"tracks\"") {
		t.Error("metadata file should not contain tracks")
	}
}

func TestWriteTextExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mix.txt")

	written, err := WriteTextExport(testExport(), path)
	if err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if written != path {
		t.Errorf("expected path %s, got %s", path, written)
	}

	content := tu.MustReadFile(t, path)
	if !strings.Contains(content, "Playlist: Road Trip Mix") {
		t.Errorf("unexpected content:\n%s", content)
	}
}
