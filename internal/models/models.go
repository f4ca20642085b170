package models

// Playlist is the canonical playlist record. Identity is the remote
// playlist ID and is immutable once stored; every other field is replaced
// wholesale on update.
type Playlist struct {
	ID             string `json:"playlist_id"`
	Name           string `json:"playlist_name"`
	OwnerID        string `json:"owner_id"`
	OwnerName      string `json:"owner_name"`
	OwnerURL       string `json:"owner_url"`
	URL            string `json:"playlist_url"`
	Description    string `json:"description"`
	Public         bool   `json:"public"`
	Collaborative  bool   `json:"collaborative"`
	FollowersTotal int    `json:"followers_total"`
	SnapshotID     string `json:"snapshot_id"`
	ImageURL       string `json:"image_url"`
	TrackCount     int    `json:"track_count"`
}

// Track is the canonical track record. Uniqueness in local storage is
// scoped to (ID, PlaylistID): the same track may appear once per playlist.
type Track struct {
	ID         string `json:"track_id"`
	Name       string `json:"track_name"`
	URL        string `json:"track_url"`
	URI        string `json:"track_uri"`
	PreviewURL string `json:"preview_url,omitempty"`
	Popularity int    `json:"popularity"`
	AlbumID    string `json:"album_id"`
	AlbumName  string `json:"album_name"`
	AlbumURL   string `json:"album_url"`
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	ArtistURL  string `json:"artist_url"`
	Explicit   bool   `json:"is_explicit"`
	Local      bool   `json:"is_local"`
	DiscNumber int    `json:"disc_number"`
	ISRC       string `json:"isrc_code,omitempty"`
	PlaylistID string `json:"playlist_id"`
	UserAdded  string `json:"user_added"`
	TimeAdded  string `json:"time_added"`
}

// PlaylistExport bundles a playlist with its tracks for file export.
// ExportID uniquely identifies one export run so files produced by
// different runs can be told apart.
type PlaylistExport struct {
	ExportID string   `json:"export_id"`
	Playlist Playlist `json:"metadata"`
	Tracks   []Track  `json:"tracks"`
}

// Credential is the stored OAuth token. ExpiresAt is an absolute Unix
// timestamp computed locally from the provider's relative expires_in.
// The raw provider fields are kept alongside so nothing is dropped on
// the round trip through the token file.
type Credential struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresAt    float64 `json:"expires_at"`
	TokenType    string  `json:"token_type,omitempty"`
	Scope        string  `json:"scope,omitempty"`
	ExpiresIn    int     `json:"expires_in,omitempty"`
}

// Expired reports whether the access token is past its expiry instant.
func (c *Credential) Expired(now float64) bool {
	return now > c.ExpiresAt
}

// FieldMap returns the playlist's comparable metadata fields keyed by
// their storage column names, for field-level diffing.
func (p Playlist) FieldMap() map[string]any {
	return map[string]any{
		"playlist_id":     p.ID,
		"playlist_name":   p.Name,
		"owner_id":        p.OwnerID,
		"owner_name":      p.OwnerName,
		"owner_url":       p.OwnerURL,
		"playlist_url":    p.URL,
		"description":     p.Description,
		"public":          p.Public,
		"collaborative":   p.Collaborative,
		"followers_total": p.FollowersTotal,
		"snapshot_id":     p.SnapshotID,
		"image_url":       p.ImageURL,
		"track_count":     p.TrackCount,
	}
}
