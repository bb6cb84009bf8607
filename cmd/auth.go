package main

import (
	"context"
	"fmt"
	"time"

	"github.com/groove-cli/groove/internal/server"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/urfave/cli/v3"
)

// loginTimeout bounds how long the CLI waits for the user to finish the
// browser authorization.
const loginTimeout = 2 * time.Minute

// AuthLogin runs the full OAuth2 authorization-code flow: start the local
// callback server, open the browser, wait for the callback, persist the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: add spotify credentials to %s (run `groove setup`)",
			shared.ErrMissingConfig, shared.DefaultConfigPath())
	}

	state := shared.GenerateState()
	handler := server.NewOAuthHandler(r.auth.OAuthConfig(), state)
	callback := server.NewCallbackServer(r.config.Server.Host, r.config.Server.Port, handler)

	serverErr := make(chan error, 1)
	go func() { serverErr <- callback.Start() }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		callback.Shutdown(shutdownCtx)
	}()

	authURL := r.auth.AuthURL(state)
	if cmd.Bool("no-browser") {
		r.writePlain("Visit this URL to authorize groove:\n\n  %s\n\n", authURL)
	} else {
		r.writePlain("Opening your browser to authorize groove...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser: %v", err)
			r.writePlain("Visit this URL to authorize groove:\n\n  %s\n\n", authURL)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	select {
	case result := <-callback.Result():
		if result.Err != nil {
			return fmt.Errorf("authorization failed: %w", result.Err)
		}
		if err := r.auth.SaveToken(result.Token); err != nil {
			return err
		}
		r.logger.Info("authentication successful")
		return r.writePlain("%s\n", successStyle.Render("✓ Connected to Spotify"))
	case err := <-serverErr:
		return fmt.Errorf("callback server stopped: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, loginTimeout)
	}
}

// AuthStatus reports whether a stored session exists and when it expires.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return r.writePlain("%s\n", errorStyle.Render("✗ Not configured: missing Spotify credentials"))
	}

	ok, expiry := r.auth.Authenticated()
	if !ok {
		return r.writePlain("%s\n", errorStyle.Render("✗ Not authenticated (run `groove auth login`)"))
	}

	r.writePlain("%s\n", successStyle.Render("✓ Authenticated with Spotify"))
	if !expiry.IsZero() {
		r.writePlain("  Access token expires: %s\n", expiry.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// AuthLogout discards the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return r.writePlain("No active session found\n")
	}

	if err := r.auth.Logout(); err != nil {
		return err
	}
	return r.writePlain("%s\n", successStyle.Render("✓ Logged out"))
}
