package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jamjar/internal/auth"
	"github.com/desertthunder/jamjar/internal/repositories"
	"github.com/desertthunder/jamjar/internal/services"
	"github.com/desertthunder/jamjar/internal/shared"
	"github.com/desertthunder/jamjar/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	apiBaseURL string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	APIBaseURL string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		apiBaseURL: opts.APIBaseURL,
	}
}

// SetLogger swaps the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openStore opens the configured database and wires the repositories.
// The returned cleanup closes the connection.
func (r *Runner) openStore() (*repositories.PlaylistRepository, *repositories.TrackRepository, func(), error) {
	db, err := r.openDB()
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() { db.Close() }
	return repositories.NewPlaylistRepository(db), repositories.NewTrackRepository(db), cleanup, nil
}

func (r *Runner) openDB() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// remote builds an authenticated Spotify client, refreshing the stored
// credential when it has expired.
func (r *Runner) remote(ctx context.Context) (services.Remote, error) {
	manager := auth.NewManager(r.config, r.logger)
	token, err := manager.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewSpotifyClient(r.apiBaseURL, token, r.httpClient), nil
}

// engine wires a fully authenticated sync engine backed by the local store.
func (r *Runner) engine(ctx context.Context) (*tasks.Engine, func(), error) {
	remote, err := r.remote(ctx)
	if err != nil {
		return nil, nil, err
	}

	playlists, tracks, cleanup, err := r.openStore()
	if err != nil {
		return nil, nil, err
	}

	return tasks.NewEngine(remote, playlists, tracks, r.logger), cleanup, nil
}

// localEngine wires an engine over the store alone, for commands that never
// touch the network.
func (r *Runner) localEngine() (*tasks.Engine, func(), error) {
	playlists, tracks, cleanup, err := r.openStore()
	if err != nil {
		return nil, nil, err
	}
	return tasks.NewEngine(nil, playlists, tracks, r.logger), cleanup, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
