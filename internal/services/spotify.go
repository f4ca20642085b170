// Spotify Web API client
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/jamjar/internal/shared"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// pageRate caps paginated track fetches to stay under Spotify's limits.
const pageRate = rate.Limit(10)

type followers struct {
	Total int `json:"total"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// Owner identifies the account that owns a playlist.
type Owner struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	URI          string       `json:"uri"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	URI          string       `json:"uri"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	URI          string          `json:"uri"`
	PreviewURL   string          `json:"preview_url"`
	Popularity   int             `json:"popularity"`
	Album        SpotifyAlbum    `json:"album"`
	Artists      []SpotifyArtist `json:"artists"`
	Explicit     bool            `json:"explicit"`
	IsLocal      bool            `json:"is_local"`
	DiscNumber   int             `json:"disc_number"`
	ExternalIDs  externalIDs     `json:"external_ids"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

type addedBy struct {
	ID string `json:"id"`
}

// PlaylistTrackItem represents a track within a playlist context.
type PlaylistTrackItem struct {
	AddedAt string        `json:"added_at"`
	AddedBy addedBy       `json:"added_by"`
	Track   *SpotifyTrack `json:"track"`
}

type playlistTracks struct {
	Total int                 `json:"total"`
	Items []PlaylistTrackItem `json:"items"`
	Next  *string             `json:"next"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Owner         Owner          `json:"owner"`
	Public        bool           `json:"public"`
	Collaborative bool           `json:"collaborative"`
	Followers     followers      `json:"followers"`
	SnapshotID    string         `json:"snapshot_id"`
	Images        []SpotifyImage `json:"images"`
	ExternalURLs  externalURLs   `json:"external_urls"`
	Tracks        playlistTracks `json:"tracks"`
}

// SpotifyClient issues authenticated requests against the Spotify Web API.
//
// Every call carries the bearer token it was constructed with; paginated
// fetches are throttled with a [rate.Limiter].
type SpotifyClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewSpotifyClient creates a client bound to the given access token.
// An empty baseURL defaults to the public Spotify API; a nil client
// defaults to [http.DefaultClient].
func NewSpotifyClient(baseURL, accessToken string, client *http.Client) *SpotifyClient {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SpotifyClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  client,
		limiter:     rate.NewLimiter(pageRate, 1),
	}
}

// doRequest performs an authenticated HTTP request against a fully
// qualified URL. Deadline expiry wraps [shared.ErrTimeout], other transport
// failures wrap [shared.ErrNetwork], and non-2xx responses surface as a
// [*RemoteError] carrying status and body.
func (c *SpotifyClient) doRequest(ctx context.Context, method, fullURL string, body io.Reader, contentType string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return &RemoteError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *SpotifyClient) get(ctx context.Context, fullURL string, result any) error {
	return c.doRequest(ctx, http.MethodGet, fullURL, nil, "", result)
}

func (c *SpotifyClient) postJSON(ctx context.Context, endpoint string, payload any, result any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data), "application/json", result)
}

// Playlist retrieves a playlist by ID.
func (c *SpotifyClient) Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error) {
	var playlist SpotifyPlaylist
	if err := c.get(ctx, fmt.Sprintf("%s/playlists/%s", c.baseURL, playlistID), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// PlaylistTracks retrieves all tracks for a playlist, following the "next"
// cursor until the server returns none. The concatenation is fully
// materialized before returning, so a failure mid-traversal discards every
// page fetched for this call.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, playlistID string) ([]PlaylistTrackItem, error) {
	var items []PlaylistTrackItem

	next := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	for next != "" {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var page playlistTracks
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}

		items = append(items, page.Items...)

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}

	return items, nil
}

// CurrentUser retrieves the authenticated user's profile.
func (c *SpotifyClient) CurrentUser(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := c.get(ctx, c.baseURL+"/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePlaylist creates a new playlist under the given user.
func (c *SpotifyClient) CreatePlaylist(ctx context.Context, userID string, spec PlaylistSpec) (*SpotifyPlaylist, error) {
	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", userID)
	if err := c.postJSON(ctx, endpoint, spec, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddTracks appends the given track URIs to a playlist in a single batch,
// preserving the order of uris.
func (c *SpotifyClient) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	payload := map[string][]string{"uris": uris}
	return c.postJSON(ctx, endpoint, payload, nil)
}

// SetCoverImage uploads a base64-encoded JPEG as the playlist's cover.
func (c *SpotifyClient) SetCoverImage(ctx context.Context, playlistID, encodedJPEG string) error {
	fullURL := fmt.Sprintf("%s/playlists/%s/images", c.baseURL, playlistID)
	return c.doRequest(ctx, http.MethodPut, fullURL, strings.NewReader(encodedJPEG), "image/jpeg", nil)
}
