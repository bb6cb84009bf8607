package main

import (
	"context"
	"os"

	"github.com/groove-cli/groove/internal/auth"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/groove-cli/groove/internal/spotify"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := shared.DefaultConfigPath()
	if _, err := os.Stat("config.toml"); err == nil {
		configPath = "config.toml"
	}
	if loaded, err := shared.LoadConfig(configPath); err == nil {
		config = loaded
	}

	var authenticator *auth.Authenticator
	if config.Spotify.ClientID != "" && config.Spotify.ClientSecret != "" {
		store, err := auth.NewTokenStore("", config.Spotify.ClientSecret)
		if err != nil {
			logger.Fatalf("failed to initialize token store: %v", err)
		}
		authenticator, err = auth.NewAuthenticator(
			config.Spotify.ClientID,
			config.Spotify.ClientSecret,
			config.Spotify.RedirectURI,
			store,
		)
		if err != nil {
			logger.Fatalf("failed to initialize authentication: %v", err)
		}
	}

	var client *spotify.Client
	if authenticator != nil {
		client = spotify.NewClient("", authenticator, nil)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Auth:   authenticator,
		Client: client,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "groove",
		Usage:    "Sync song lists into Spotify playlists",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
