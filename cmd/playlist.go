package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a new playlist for the current user.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("usage: groove playlist create <name>")
	}

	public := cmd.Bool("public") || r.config.Defaults.PlaylistPublic
	playlist, err := r.client.CreatePlaylist(ctx, name, cmd.String("description"), public)
	if err != nil {
		return err
	}

	r.logger.Info("playlist created", "id", playlist.ID, "name", playlist.Name)
	r.writePlain("%s %s (%s)\n", successStyle.Render("✓ Created playlist:"), playlist.Name, playlist.ID)
	if playlist.ExternalURL != "" {
		r.writePlain("  %s\n", dimStyle.Render(playlist.ExternalURL))
	}
	return nil
}

// PlaylistList lists the user's playlists, optionally filtered by name.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	playlists, err := r.client.ListPlaylists(ctx, cmd.String("filter"), int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found\n")
	}

	r.writeHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
	for _, pl := range playlists {
		visibility := "private"
		if pl.Public {
			visibility = "public"
		}
		r.writePlain("%s  %s\n", pl.Name, dimStyle.Render(fmt.Sprintf("%d tracks, %s, %s", pl.TrackCount, visibility, pl.ID)))
	}
	return nil
}

// PlaylistAdd adds tracks by id to an existing playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	trackIDs := cmd.Args().Slice()
	if len(trackIDs) == 0 {
		return fmt.Errorf("usage: groove playlist add --playlist-id <id> <track-id> [track-id...]")
	}

	result := r.client.AddTracks(ctx, cmd.String("playlist-id"), trackIDs, cmd.Bool("skip-duplicates"))

	for _, warning := range result.Warnings {
		r.writePlain("%s\n", warnStyle.Render(warning))
	}
	for _, msg := range result.Errors {
		r.logger.Error(msg)
	}

	r.writePlain("Added %d, skipped %d\n", result.Added, result.Skipped)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d tracks failed to add", len(trackIDs)-result.Added-result.Skipped, len(trackIDs))
	}
	return nil
}
