// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the snapshot database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Authenticate and persist the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session token",
				Action: r.AuthLogout,
			},
			{
				Name:  "reset-request",
				Usage: "Email a password reset token to an account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
				},
				Action: r.AuthResetRequest,
			},
			{
				Name:  "reset-confirm",
				Usage: "Set a new password using an emailed token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Usage:    "Reset token from the email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "New password",
						Required: true,
					},
				},
				Action: r.AuthResetConfirm,
			},
			{
				Name:    "whoami",
				Aliases: []string{"status"},
				Usage:   "Show the authenticated user",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// musicsCommand handles catalog operations
func musicsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "musics",
		Aliases: []string{"catalog"},
		Usage:   "Browse and manage the shared track catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the full catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.MusicsList,
			},
			{
				Name:  "get",
				Usage: "Show one track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MusicsGet,
			},
			{
				Name:  "search",
				Usage: "Filter the catalog by name, band, or genre",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MusicsSearch,
			},
			{
				Name:  "add",
				Usage: "Add a track to the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Track name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "band",
						Usage:    "Band or artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "genre",
						Usage:    "Genre label",
						Required: true,
					},
				},
				Action: r.MusicsAdd,
			},
			{
				Name:  "update",
				Usage: "Edit a track you created",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New track name",
					},
					&cli.StringFlag{
						Name:  "band",
						Usage: "New band or artist name",
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "New genre label",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Path to a replacement cover image",
					},
				},
				Action: r.MusicsUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a track you created",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MusicsDelete,
			},
			{
				Name:  "open",
				Usage: "Open a track's video in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MusicsOpen,
			},
		},
	}
}

// likesCommand handles the like relation
func likesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "likes",
		Usage: "Liked tracks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your liked tracks",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LikesList,
			},
			{
				Name:  "toggle",
				Usage: "Like or unlike a track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LikesToggle,
			},
		},
	}
}

// playlistsCommand handles playlist CRUD, membership, export, and collaborators
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Which listing to show: mine, public, or shared",
						Value: "mine",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist with its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistsShow,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Playlist name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Make the playlist public",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Path to a cover image to upload",
					},
				},
				Action: r.PlaylistsCreate,
			},
			{
				Name:  "update",
				Usage: "Rename a playlist or change its visibility",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New playlist name",
					},
					&cli.StringFlag{
						Name:  "visibility",
						Usage: "New visibility: public or private",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Path to a new cover image",
					},
				},
				Action: r.PlaylistsUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist you own",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistsDelete,
			},
			{
				Name:  "add",
				Usage: "Add a track to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Track ID",
						Required: true,
					},
				},
				Action: r.PlaylistsAddTrack,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Track ID",
						Required: true,
					},
				},
				Action: r.PlaylistsRemoveTrack,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to CSV, Markdown, or plain text",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, or text",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory path",
					},
				},
				Action: r.PlaylistsExport,
			},
			{
				Name:  "collab",
				Usage: "Manage playlist collaborators",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List collaborators on a playlist",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "json",
								Usage: "Output raw JSON",
							},
						},
						Action: r.CollaboratorsList,
					},
					{
						Name:  "invite",
						Usage: "Invite a user to collaborate by email",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "playlist",
								Usage:    "Playlist ID",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "email",
								Usage:    "Email of the user to invite",
								Required: true,
							},
						},
						Action: r.CollaboratorsInvite,
					},
					{
						Name:  "remove",
						Usage: "Remove a collaborator from a playlist",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "playlist",
								Usage:    "Playlist ID",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "id",
								Usage:    "Collaborator record ID",
								Required: true,
							},
						},
						Action: r.CollaboratorsRemove,
					},
				},
			},
		},
	}
}

// invitesCommand handles the invitee side of collaboration
func invitesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "invites",
		Usage: "Collaboration invites addressed to you",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List pending invites",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.InvitesList,
			},
			{
				Name:  "accept",
				Usage: "Accept an invite",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.InvitesAccept,
			},
			{
				Name:  "reject",
				Usage: "Reject an invite",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.InvitesReject,
			},
		},
	}
}

// profileCommand handles the authenticated user's profile
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update name, email, or avatar",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New display name",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "New email",
					},
					&cli.StringFlag{
						Name:  "avatar",
						Usage: "Path to a new avatar image",
					},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:   "remove-avatar",
				Usage:  "Remove your avatar image",
				Action: r.ProfileRemoveAvatar,
			},
		},
	}
}

// libraryCommand handles the offline snapshot
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "library",
		Usage: "Offline snapshot of the catalog and your playlists",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Fetch the catalog and playlists into the local database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.LibrarySync,
			},
			{
				Name:  "musics",
				Usage: "List snapshot tracks without touching the network",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "liked",
						Usage: "Only liked tracks",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Filter by name, band, or genre",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryMusics,
			},
			{
				Name:  "playlists",
				Usage: "List snapshot playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryPlaylists,
			},
			{
				Name:  "show",
				Usage: "Show a snapshot playlist with its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive library browser",
		Action:  r.TUI,
	}
}
