// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the config file and history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.Setup,
	}
}

// authCommand manages the Spotify session.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored Spotify session",
				Action: r.AuthLogout,
			},
		},
	}
}

// searchCommand matches songs against the Spotify catalog without touching playlists.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Match songs against the Spotify catalog",
		Commands: []*cli.Command{
			{
				Name:  "song",
				Usage: "Search for a single song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "artist"},
					&cli.StringArg{Name: "title"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "alternatives",
						Usage: "Show alternative candidates",
					},
				},
				Action: r.SearchSong,
			},
			{
				Name:  "file",
				Usage: "Match every song in a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:    "report",
						Aliases: []string{"o"},
						Usage:   "Write a match report to this path (.json or .csv)",
					},
				},
				Action: r.SearchFile,
			},
		},
	}
}

// playlistCommand handles direct playlist operations.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Spotify playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Make the playlist public",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "list",
				Usage: "List your playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Case-insensitive name filter",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to show",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:      "add",
				Usage:     "Add tracks to a playlist by track id",
				ArgsUsage: "track-id [track-id...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist-id",
						Usage:    "Target playlist id",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "skip-duplicates",
						Usage: "Skip tracks already in the playlist",
					},
				},
				Action: r.PlaylistAdd,
			},
		},
	}
}

// syncCommand runs the full file-to-playlist pipeline.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Sync a song list file into a Spotify playlist",
		ArgsUsage: "file [file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "playlist-id",
				Usage: "Target playlist id",
			},
			&cli.StringFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Target playlist name (created when missing)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Description for a newly created playlist",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make a newly created playlist public",
			},
			&cli.BoolFlag{
				Name:  "skip-duplicates",
				Usage: "Skip tracks already in the playlist",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"o"},
				Usage:   "Write a match report to this path (.json or .csv)",
			},
		},
		Action: r.SyncRun,
	}
}

// historyCommand shows past sync runs.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent sync runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of runs to show",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}
