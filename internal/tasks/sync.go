package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/groove-cli/groove/internal/models"
	"github.com/groove-cli/groove/internal/spotify"
)

// CatalogService is the slice of the Spotify client the sync engine depends
// on. *spotify.Client satisfies it.
type CatalogService interface {
	Searcher
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*spotify.Playlist, error)
	Playlist(ctx context.Context, playlistID string) (*spotify.Playlist, error)
	ListPlaylists(ctx context.Context, filter string, limit int) ([]spotify.Playlist, error)
	AddTracks(ctx context.Context, playlistID string, trackIDs []string, skipDuplicates bool) spotify.AddResult
}

// SyncOpts configures a sync run. Exactly one of PlaylistID or PlaylistName
// should be set; when PlaylistName names no existing playlist a new one is
// created with the given visibility and description.
type SyncOpts struct {
	PlaylistID     string
	PlaylistName   string
	Description    string
	Public         bool
	SkipDuplicates bool
}

// SyncOutcome is the final report of a sync run. Unmatched lists the songs no
// search candidate was accepted for; Results carries every per-song match in
// input order for detailed reporting.
type SyncOutcome struct {
	Playlist  spotify.Playlist
	Created   bool
	Added     int
	Skipped   int
	Unmatched []models.Song
	Errors    []string
	Warnings  []string
	Results   []spotify.MatchResult
}

// SyncEngine orchestrates the search-then-reconcile pipeline against a
// catalog service.
type SyncEngine struct {
	catalog CatalogService
}

// NewSyncEngine creates an engine backed by the given catalog service.
func NewSyncEngine(catalog CatalogService) *SyncEngine {
	return &SyncEngine{catalog: catalog}
}

// Sync matches every song against the catalog, resolves or creates the target
// playlist, and adds the matched tracks. Per-song failures degrade to
// unmatched entries; playlist resolution or creation failures abort the run.
func (e *SyncEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate, songs []models.Song, opts SyncOpts) (*SyncOutcome, error) {
	session := NewSearchSession(e.catalog)
	results := session.Run(ctx, progress, songs)

	outcome := &SyncOutcome{
		Results:  results,
		Errors:   session.Errors(),
		Warnings: session.Warnings(),
	}

	trackIDs := make([]string, 0, len(results))
	for _, r := range results {
		if r.Found && r.Track != nil {
			trackIDs = append(trackIDs, r.Track.ID)
		} else {
			outcome.Unmatched = append(outcome.Unmatched, r.Song)
		}
	}

	sendProgress(progress, ProgressUpdate{Phase: PhaseResolve, Message: "resolving target playlist"})

	playlist, created, err := e.resolvePlaylist(ctx, opts)
	if err != nil {
		return nil, err
	}
	outcome.Playlist = *playlist
	outcome.Created = created

	sendProgress(progress, ProgressUpdate{
		Phase:   PhaseAdd,
		Total:   len(trackIDs),
		Message: fmt.Sprintf("adding %d tracks to %q", len(trackIDs), playlist.Name),
	})

	added := e.catalog.AddTracks(ctx, playlist.ID, trackIDs, opts.SkipDuplicates)
	outcome.Added = added.Added
	outcome.Skipped = added.Skipped
	outcome.Errors = append(outcome.Errors, added.Errors...)
	outcome.Warnings = append(outcome.Warnings, added.Warnings...)

	sendProgress(progress, ProgressUpdate{
		Phase:   PhaseComplete,
		Message: fmt.Sprintf("added %d, skipped %d, unmatched %d", outcome.Added, outcome.Skipped, len(outcome.Unmatched)),
	})

	return outcome, nil
}

// resolvePlaylist finds the target playlist by id, by exact name, or creates
// it. Name comparison against existing playlists is case-insensitive via the
// catalog's own filter.
func (e *SyncEngine) resolvePlaylist(ctx context.Context, opts SyncOpts) (*spotify.Playlist, bool, error) {
	if opts.PlaylistID != "" {
		playlist, err := e.catalog.Playlist(ctx, opts.PlaylistID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve playlist %s: %w", opts.PlaylistID, err)
		}
		return playlist, false, nil
	}

	if opts.PlaylistName == "" {
		return nil, false, fmt.Errorf("sync requires a playlist id or name")
	}

	existing, err := e.catalog.ListPlaylists(ctx, opts.PlaylistName, 0)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list playlists: %w", err)
	}
	for i := range existing {
		if strings.EqualFold(existing[i].Name, opts.PlaylistName) {
			return &existing[i], false, nil
		}
	}

	playlist, err := e.catalog.CreatePlaylist(ctx, opts.PlaylistName, opts.Description, opts.Public)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create playlist %q: %w", opts.PlaylistName, err)
	}
	return playlist, true, nil
}
