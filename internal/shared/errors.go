package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Credential lifecycle errors
	ErrNoCredential      = fmt.Errorf("no stored credential")
	ErrCorruptCredential = fmt.Errorf("stored credential is unreadable")
	ErrRefreshFailed     = fmt.Errorf("token refresh failed")
	ErrAuthFailed        = fmt.Errorf("authentication failed")
	ErrTimeout           = fmt.Errorf("operation timed out")

	// Remote API errors
	ErrNetwork          = fmt.Errorf("network request failed")
	ErrRemoteRejected   = fmt.Errorf("remote service rejected request")
	ErrNotFoundRemotely = fmt.Errorf("not found on Spotify")

	// Local store errors
	ErrNotFoundLocally = fmt.Errorf("not found in local database")
	ErrEmptyPlaylist   = fmt.Errorf("playlist has no stored tracks")

	// ErrPartialApplication marks an operation that mutated some but not
	// all intended rows before failing. Every upsert is idempotent on its
	// primary key, so retrying the whole operation is safe.
	ErrPartialApplication = fmt.Errorf("operation partially applied")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
