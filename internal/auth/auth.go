// Package auth owns the credential lifecycle: the OAuth2 authorization-code
// flow with a one-shot loopback callback, token-file persistence, and
// expiry-aware refresh.
//
// A credential is in one of four states: no credential stored, valid,
// expired (wall clock past expires_at), or refresh-failed. [Manager.AccessToken]
// is the single entry point other components use; it loads the stored
// credential, refreshes at most once when expired, and returns the bearer
// token.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jamjar/internal/models"
	"github.com/desertthunder/jamjar/internal/server"
	"github.com/desertthunder/jamjar/internal/services"
	"github.com/desertthunder/jamjar/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// scopes covers reading private playlists and the write access Push needs.
var scopes = []string{
	"user-read-private",
	"user-read-email",
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-private",
	"playlist-modify-public",
	"ugc-image-upload",
}

var (
	now         = time.Now
	openBrowser = shared.OpenBrowser
)

// Manager owns the token file and the OAuth2 flow against Spotify's
// account service. It is the only component that reads or writes the
// stored credential.
type Manager struct {
	config     *shared.Config
	tokenFile  string
	endpoint   oauth2.Endpoint
	apiBaseURL string
	httpClient *http.Client
	logger     *log.Logger
}

// NewManager creates a Manager bound to the config's Spotify credentials
// and token-file location.
func NewManager(config *shared.Config, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Manager{
		config:     config,
		tokenFile:  config.TokenFilePath(),
		endpoint:   oauth2.Endpoint{AuthURL: spotifyAuthURL, TokenURL: spotifyTokenURL},
		apiBaseURL: "",
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// oauthConfig builds the oauth2 client configuration for the flow.
func (m *Manager) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.config.Credentials.Spotify.ClientID,
		ClientSecret: m.config.Credentials.Spotify.ClientSecret,
		RedirectURL:  m.config.Credentials.Spotify.RedirectURI,
		Scopes:       scopes,
		Endpoint:     m.endpoint,
	}
}

// AuthURL returns the authorization URL the user's browser is sent to.
// show_dialog forces the consent screen even for previously approved apps.
func (m *Manager) AuthURL(state string) string {
	return m.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("show_dialog", "true"),
	)
}

// Login runs the full authorization-code flow: it binds a loopback listener
// for the duration of the call, opens the browser, blocks until the single
// callback request has been served, exchanges the code, and persists the
// resulting credential.
//
// The wait for the callback is unbounded; cancelling ctx is the only way to
// abort it. The listener is closed unconditionally on return, success or
// failure.
func (m *Manager) Login(ctx context.Context) (*models.Credential, error) {
	if m.config.Credentials.Spotify.ClientID == "" || m.config.Credentials.Spotify.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret must be configured", shared.ErrMissingConfig)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	conf := m.oauthConfig()
	handler := server.NewOAuthHandler(conf, state, m.callbackPath())
	router := server.NewBasicRouter()
	router.Handler(handler)

	addr := fmt.Sprintf("%s:%d", m.config.Server.Host, m.config.Server.Port)
	httpServer := &http.Server{Addr: addr, Handler: router}

	serverErrors := make(chan error, 1)
	go func() {
		m.logger.Info("starting callback listener", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			m.logger.Warn("error shutting down callback listener", "error", err)
		}
	}()

	authURL := m.AuthURL(state)
	if err := openBrowser(authURL); err != nil {
		m.logger.Warn("could not open browser automatically", "error", err)
		fmt.Fprintf(os.Stderr, "Open this URL in your browser:\n%s\n", authURL)
	}

	var result server.OAuthResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("callback listener error: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	cred := credentialFromToken(result.Token)
	if err := m.Save(cred); err != nil {
		return nil, err
	}

	m.logger.Info("credential stored", "file", m.tokenFile)
	return cred, nil
}

// Refresh exchanges the stored refresh token for a new access token,
// verifies it against the profile endpoint, and persists the result.
//
// A refresh response may omit the refresh token; the prior value is always
// retained in that case. Refresh is attempted at most once per call; any
// failure surfaces as [shared.ErrRefreshFailed] and requires a re-login.
func (m *Manager) Refresh(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	if cred == nil || cred.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token available, log in again", shared.ErrRefreshFailed)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	source := m.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})

	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	refreshed := credentialFromToken(token)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}

	if _, err := m.whoami(ctx, refreshed.AccessToken); err != nil {
		return nil, fmt.Errorf("%w: token verification failed: %v", shared.ErrRefreshFailed, err)
	}

	if err := m.Save(refreshed); err != nil {
		return nil, err
	}

	return refreshed, nil
}

// AccessToken returns a valid bearer token for API calls. It loads the
// stored credential, refreshes once if expired, and fails when no usable
// credential exists.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	cred, err := m.Load()
	if err != nil {
		m.logger.Warn("token file unreadable, re-login required", "error", err)
		return "", fmt.Errorf("%w: run `jamjar auth login`", shared.ErrNoCredential)
	}
	if cred == nil {
		return "", fmt.Errorf("%w: run `jamjar auth login`", shared.ErrNoCredential)
	}

	if cred.Expired(unixNow()) {
		refreshed, err := m.Refresh(ctx, cred)
		if err != nil {
			return "", err
		}
		return refreshed.AccessToken, nil
	}

	return cred.AccessToken, nil
}

// WhoAmI verifies the current credential against the profile endpoint and
// returns the authenticated user.
func (m *Manager) WhoAmI(ctx context.Context) (*services.SpotifyUser, error) {
	token, err := m.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return m.whoami(ctx, token)
}

// Load reads the stored credential. A missing token file is not an error:
// it returns (nil, nil) so the no-credential state needs no sentinel value.
// An unreadable file wraps [shared.ErrCorruptCredential].
func (m *Manager) Load() (*models.Credential, error) {
	data, err := os.ReadFile(m.tokenFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCorruptCredential, err)
	}

	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCorruptCredential, err)
	}

	return &cred, nil
}

// Save overwrites the token file with the given credential.
func (m *Manager) Save(cred *models.Credential) error {
	if err := os.MkdirAll(filepath.Dir(m.tokenFile), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := os.WriteFile(m.tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// Clean deletes the token file. A missing file is not an error.
func (m *Manager) Clean() error {
	if err := os.Remove(m.tokenFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// callbackPath extracts the path component of the configured redirect URI.
func (m *Manager) callbackPath() string {
	u, err := url.Parse(m.config.Credentials.Spotify.RedirectURI)
	if err != nil || u.Path == "" {
		return "/callback"
	}
	return u.Path
}

func (m *Manager) whoami(ctx context.Context, accessToken string) (*services.SpotifyUser, error) {
	client := services.NewSpotifyClient(m.apiBaseURL, accessToken, m.httpClient)
	return client.CurrentUser(ctx)
}

// credentialFromToken converts an oauth2 token into the persisted form,
// computing the absolute expiry instant.
func credentialFromToken(t *oauth2.Token) *models.Credential {
	cred := &models.Credential{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresAt:    float64(t.Expiry.Unix()),
	}
	if t.Expiry.IsZero() {
		cred.ExpiresAt = unixNow() + 3600
	}
	return cred
}

func unixNow() float64 {
	return float64(now().Unix())
}
