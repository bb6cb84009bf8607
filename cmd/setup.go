package main

import (
	"context"

	"github.com/groove-cli/groove/internal/repositories"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the example config file and initializes the history database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = shared.DefaultConfigPath()
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warnf("config file: %v", err)
	} else {
		r.writePlain("%s %s\n", successStyle.Render("✓ Created config file:"), configPath)
		r.writePlain("  Fill in your Spotify client id and secret, then run `groove auth login`.\n")
	}

	dbPath := r.config.DatabasePath()
	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewHistoryRepository(db).Init(); err != nil {
		return err
	}

	r.writePlain("%s %s\n", successStyle.Render("✓ History database ready:"), dbPath)
	return nil
}
