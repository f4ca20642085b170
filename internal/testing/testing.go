// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/jamjar/internal/services"
)

// MockRemote is a configurable test double for [services.Remote].
// Unset function fields return zero values.
type MockRemote struct {
	PlaylistFunc       func(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error)
	PlaylistTracksFunc func(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error)
	CurrentUserFunc    func(ctx context.Context) (*services.SpotifyUser, error)
	CreatePlaylistFunc func(ctx context.Context, userID string, spec services.PlaylistSpec) (*services.SpotifyPlaylist, error)
	AddTracksFunc      func(ctx context.Context, playlistID string, uris []string) error
	SetCoverImageFunc  func(ctx context.Context, playlistID string, encodedJPEG string) error
}

var _ services.Remote = (*MockRemote)(nil)

func (m *MockRemote) Playlist(ctx context.Context, playlistID string) (*services.SpotifyPlaylist, error) {
	if m.PlaylistFunc != nil {
		return m.PlaylistFunc(ctx, playlistID)
	}
	return &services.SpotifyPlaylist{}, nil
}

func (m *MockRemote) PlaylistTracks(ctx context.Context, playlistID string) ([]services.PlaylistTrackItem, error) {
	if m.PlaylistTracksFunc != nil {
		return m.PlaylistTracksFunc(ctx, playlistID)
	}
	return nil, nil
}

func (m *MockRemote) CurrentUser(ctx context.Context) (*services.SpotifyUser, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &services.SpotifyUser{}, nil
}

func (m *MockRemote) CreatePlaylist(ctx context.Context, userID string, spec services.PlaylistSpec) (*services.SpotifyPlaylist, error) {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, userID, spec)
	}
	return &services.SpotifyPlaylist{}, nil
}

func (m *MockRemote) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.AddTracksFunc != nil {
		return m.AddTracksFunc(ctx, playlistID, uris)
	}
	return nil
}

func (m *MockRemote) SetCoverImage(ctx context.Context, playlistID string, encodedJPEG string) error {
	if m.SetCoverImageFunc != nil {
		return m.SetCoverImageFunc(ctx, playlistID, encodedJPEG)
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
