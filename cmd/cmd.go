// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, addCommand, updateCommand, syncCommand,
		pullCommand, pushCommand, diffCommand, rmCommand, listCommand,
		exportCommand, statsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// setupCommand initializes the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the credential lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the stored credential and who it belongs to",
				Action: r.AuthStatus,
			},
			{
				Name:   "clean",
				Usage:  "Delete the stored credential",
				Action: r.AuthClean,
			},
		},
	}
}

// addCommand ingests a playlist into the local store.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Fetch a Spotify playlist and store it locally",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Add,
	}
}

// updateCommand refreshes a stored playlist without deletions.
func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Refresh a stored playlist from Spotify",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Update,
	}
}

// syncCommand refreshes a stored playlist and reconciles deletions.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Refresh a stored playlist and remove tracks gone from Spotify",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Sync,
	}
}

// pullCommand fetches playlists whether or not they are already stored.
func pullCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "Pull a playlist from Spotify, creating or updating the local copy",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rm",
				Usage: "Remove stored tracks no longer present remotely",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Pull every stored playlist",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second when pulling all playlists",
				Value: 5.0,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Pull,
	}
}

// pushCommand exports a stored playlist to a new Spotify playlist.
func pushCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Create a new Spotify playlist from a stored one",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Name for the new playlist (defaults to the stored name)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Description for the new playlist",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make the new playlist public",
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "Path to a JPEG to upload as the cover image",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Push,
	}
}

// diffCommand compares a stored playlist against its remote counterpart.
func diffCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Show tracks added or removed remotely since the last pull",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "detailed",
				Usage: "Include field-level playlist metadata differences",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Diff,
	}
}

// rmCommand removes stored playlists or single tracks.
func rmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a stored playlist, a single track, or everything",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "track",
				Usage: "Remove only this track ID from the playlist",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Remove every stored playlist and track",
			},
		},
		Action: r.Remove,
	}
}

// listCommand lists stored playlists, or the tracks of one playlist.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List stored playlists, or a playlist's tracks",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.List,
	}
}

// exportCommand writes a stored playlist to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"dump"},
		Usage:     "Export a stored playlist to a file",
		Arguments: []cli.Argument{&cli.StringArg{Name: "playlist"}},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Export,
	}
}

// statsCommand reports aggregates over the local store.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show statistics about the local library",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of entries in each leaderboard",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
	}
}

// tuiCommand returns the top-level TUI command for browsing the local library.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing stored playlists",
		Action:  r.TUI,
	}
}
