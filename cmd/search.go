package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/groove-cli/groove/internal/formatter"
	"github.com/groove-cli/groove/internal/models"
	"github.com/groove-cli/groove/internal/parser"
	"github.com/groove-cli/groove/internal/spotify"
	"github.com/groove-cli/groove/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SearchSong matches a single song and prints the best candidate.
func (r *Runner) SearchSong(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	artist := cmd.StringArg("artist")
	title := cmd.StringArg("title")

	// A single "Artist - Title" argument is accepted too.
	if title == "" && strings.Contains(artist, " - ") {
		artist, title, _ = strings.Cut(artist, " - ")
	}

	song, err := models.NewSong(artist, title)
	if err != nil {
		return err
	}

	r.logger.Info("searching", "song", song.String())

	candidates, err := r.client.Search(ctx, song)
	if err != nil {
		return err
	}
	result := spotify.BestMatch(song, candidates)

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.printMatch(result)
	if cmd.Bool("alternatives") && len(result.Alternatives) > 0 {
		r.writePlain("\nAlternatives:\n")
		for i, alt := range result.Alternatives {
			r.writePlain("  %d. %s - %s (%s)\n", i+1, strings.Join(alt.Artists, ", "), alt.Name, alt.ID)
		}
	}

	return nil
}

// SearchFile matches every song in a file and prints a summary.
func (r *Runner) SearchFile(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("usage: groove search file <path>")
	}

	parsed, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	for _, warning := range parsed.Warnings {
		r.logger.Warn(warning)
	}
	if len(parsed.Songs) == 0 {
		return fmt.Errorf("no songs found in %s", path)
	}

	r.writePlain("Matching %d songs from %s...\n\n", len(parsed.Songs), path)

	progress := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progress {
			r.writePlain("%s\n", dimStyle.Render(update.String()))
		}
	}()

	session := tasks.NewSearchSession(r.client)
	results := session.Run(ctx, progress, parsed.Songs)
	close(progress)

	for _, msg := range session.Errors() {
		r.logger.Error(msg)
	}
	for _, msg := range session.Warnings() {
		r.writePlain("%s\n", warnStyle.Render(msg))
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, true)
	}

	r.writePlain("\n")
	for _, result := range results {
		r.printMatch(result)
	}

	summary := session.Summary()
	r.writePlain("\n")
	r.writeHeader("Search Complete")
	r.writePlain("Matched: %d/%d\n", summary.Found, summary.Total)

	if reportPath := cmd.String("report"); reportPath != "" {
		return r.writeReport(reportPath, results)
	}
	return nil
}

func (r *Runner) printMatch(result spotify.MatchResult) {
	if !result.Found {
		r.writePlain("%s %s\n", errorStyle.Render("✗"), result.Song)
		return
	}

	confidence := formatter.DisplayConfidence(result.Confidence)
	r.writePlain("%s %s → %s - %s %s\n",
		successStyle.Render("✓"),
		result.Song,
		strings.Join(result.Track.Artists, ", "),
		result.Track.Name,
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", confidence*100)),
	)
}

// writeReport renders match results to disk; the extension picks the format.
func (r *Runner) writeReport(path string, results []spotify.MatchResult) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err = formatter.ReportToCSV(results)
	case ".json":
		data, err = formatter.ReportToJSON(results)
	default:
		return fmt.Errorf("unsupported report format %q (use .json or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return r.writePlain("Report written to %s\n", path)
}
