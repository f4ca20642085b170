package main

import (
	"context"
	"errors"
	"time"

	"github.com/desertthunder/jamjar/internal/auth"
	"github.com/desertthunder/jamjar/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the OAuth2 authorization code flow and stores the credential.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	manager := auth.NewManager(r.config, r.logger)

	cred, err := manager.Login(ctx)
	if err != nil {
		return err
	}

	expires := time.Unix(int64(cred.ExpiresAt), 0)
	r.writePlain("✓ Authentication successful\n")
	return r.writePlain("Access token expires at %s\n", expires.Format(time.RFC1123))
}

// AuthStatus reports on the stored credential and who it belongs to.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	manager := auth.NewManager(r.config, r.logger)

	cred, err := manager.Load()
	if err != nil {
		if errors.Is(err, shared.ErrCorruptCredential) {
			return r.writePlain("✗ Stored credential is unreadable, run 'jamjar auth login'\n")
		}
		return err
	}
	if cred == nil {
		return r.writePlain("✗ Not logged in, run 'jamjar auth login'\n")
	}

	expires := time.Unix(int64(cred.ExpiresAt), 0)
	if cred.Expired(float64(time.Now().Unix())) {
		r.writePlain("Access token expired at %s\n", expires.Format(time.RFC1123))
	} else {
		r.writePlain("Access token valid until %s\n", expires.Format(time.RFC1123))
	}

	user, err := manager.WhoAmI(ctx)
	if err != nil {
		r.logger.Warn("could not fetch profile", "error", err)
		return nil
	}

	name := user.DisplayName
	if name == "" {
		name = user.ID
	}
	return r.writePlain("✓ Logged in as %s\n", name)
}

// AuthClean deletes the stored credential.
func (r *Runner) AuthClean(ctx context.Context, cmd *cli.Command) error {
	manager := auth.NewManager(r.config, r.logger)

	if err := manager.Clean(); err != nil {
		return err
	}
	return r.writePlain("✓ Credential removed\n")
}
