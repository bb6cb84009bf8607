package main

import (
	"context"

	"github.com/groove-cli/groove/internal/repositories"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/urfave/cli/v3"
)

// History lists recent sync runs from the local database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.DatabasePath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewHistoryRepository(db)
	if err := repo.Init(); err != nil {
		return err
	}

	runs, err := repo.Recent(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		return r.writePlain("No sync runs recorded yet\n")
	}

	r.writeHeader("Sync History")
	for _, run := range runs {
		r.writePlain("%s  %s ← %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04"), run.PlaylistName, run.Source)
		r.writePlain("  added %d, skipped %d, unmatched %d, errors %d\n", run.Added, run.Skipped, run.Unmatched, run.Errors)
	}
	return nil
}
