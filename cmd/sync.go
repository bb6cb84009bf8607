package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/groove-cli/groove/internal/parser"
	"github.com/groove-cli/groove/internal/repositories"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/groove-cli/groove/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SyncRun parses the given files, matches every song, and reconciles the
// matches into the target playlist.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("usage: groove sync --playlist <name> <file> [file...]")
	}

	playlistID := cmd.String("playlist-id")
	playlistName := cmd.String("playlist")
	if playlistID == "" && playlistName == "" {
		return fmt.Errorf("%w: sync needs --playlist-id or --playlist", shared.ErrInvalidArgument)
	}

	parsed, err := parser.ParseFiles(files)
	if err != nil {
		return err
	}
	for _, warning := range parsed.Warnings {
		r.logger.Warn(warning)
	}
	if len(parsed.Songs) == 0 {
		return fmt.Errorf("no songs found in %s", strings.Join(files, ", "))
	}

	r.logger.Info("starting sync", "songs", len(parsed.Songs), "files", len(files))
	r.writePlain("Syncing %d songs...\n\n", len(parsed.Songs))

	progress := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progress {
			switch update.Phase {
			case tasks.PhaseSearch:
				r.writePlain("%s\n", dimStyle.Render(update.String()))
			case tasks.PhaseResolve, tasks.PhaseAdd:
				r.writePlain("\n%s\n", update.Message)
			}
		}
	}()

	outcome, err := r.engine.Sync(ctx, progress, parsed.Songs, tasks.SyncOpts{
		PlaylistID:     playlistID,
		PlaylistName:   playlistName,
		Description:    cmd.String("description"),
		Public:         cmd.Bool("public") || r.config.Defaults.PlaylistPublic,
		SkipDuplicates: cmd.Bool("skip-duplicates") || r.config.Defaults.SkipDuplicates,
	})
	close(progress)

	if err != nil {
		return err
	}

	for _, warning := range outcome.Warnings {
		r.writePlain("%s\n", warnStyle.Render(warning))
	}
	for _, msg := range outcome.Errors {
		r.logger.Error(msg)
	}

	r.writePlain("\n")
	r.writeHeader("Sync Complete")
	if outcome.Created {
		r.writePlain("Playlist: %s (created)\n", outcome.Playlist.Name)
	} else {
		r.writePlain("Playlist: %s\n", outcome.Playlist.Name)
	}
	r.writePlain("Added: %d  Skipped: %d  Unmatched: %d\n", outcome.Added, outcome.Skipped, len(outcome.Unmatched))

	if len(outcome.Unmatched) > 0 {
		r.writePlain("\nUnmatched songs:\n")
		for _, song := range outcome.Unmatched {
			r.writePlain("  %s %s\n", errorStyle.Render("✗"), song)
		}
	}

	if err := r.recordSync(files, outcome); err != nil {
		r.logger.Warnf("failed to record sync history: %v", err)
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		return r.writeReport(reportPath, outcome.Results)
	}
	return nil
}

// recordSync appends the run to the local history database. History is best
// effort; failures are logged, never fatal to the sync itself.
func (r *Runner) recordSync(files []string, outcome *tasks.SyncOutcome) error {
	db, err := shared.NewDatabase(r.config.DatabasePath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewHistoryRepository(db)
	if err := repo.Init(); err != nil {
		return err
	}

	return repo.Record(&repositories.SyncRun{
		PlaylistID:   outcome.Playlist.ID,
		PlaylistName: outcome.Playlist.Name,
		Source:       strings.Join(files, ", "),
		Total:        len(outcome.Results),
		Added:        outcome.Added,
		Skipped:      outcome.Skipped,
		Unmatched:    len(outcome.Unmatched),
		Errors:       len(outcome.Errors),
	})
}
