package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/groove-cli/groove/internal/models"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/groove-cli/groove/internal/spotify"
)

// Searcher is the slice of the Spotify client the session depends on.
type Searcher interface {
	Search(ctx context.Context, song models.Song) ([]spotify.Track, error)
}

// SessionSummary aggregates counters derived by scanning session results.
// Found + NotFound always equals Total.
type SessionSummary struct {
	Total    int
	Found    int
	NotFound int
}

// SearchSession sequences per-song search and scoring calls over a batch,
// strictly in input order. A single song's failure is downgraded to a
// not-found result plus an error log entry; the session never aborts early.
type SearchSession struct {
	catalog  Searcher
	results  []spotify.MatchResult
	errors   []string
	warnings []string
}

// NewSearchSession creates a session backed by the given catalog searcher.
func NewSearchSession(catalog Searcher) *SearchSession {
	return &SearchSession{catalog: catalog}
}

// Run processes songs in order, one search and one scoring pass per song.
// Spacing between songs comes from the catalog client's own rate limiter;
// the session adds no additional delay.
func (s *SearchSession) Run(ctx context.Context, progress chan<- ProgressUpdate, songs []models.Song) []spotify.MatchResult {
	s.results = make([]spotify.MatchResult, 0, len(songs))

	for i, song := range songs {
		sendProgress(progress, searchSongUpdate(i+1, len(songs), song))

		candidates, err := s.catalog.Search(ctx, song)
		if err != nil {
			s.errors = append(s.errors, fmt.Sprintf("search %q: %v", song.String(), err))
			if errors.Is(err, shared.ErrRateLimited) {
				s.warnings = append(s.warnings, shared.BackoffWarning)
			}
			s.results = append(s.results, spotify.MatchResult{
				Song:  song,
				Query: spotify.BuildSearchQuery(song.Artist, song.Title),
			})
			continue
		}

		s.results = append(s.results, spotify.BestMatch(song, candidates))
	}

	return s.results
}

// Results returns the accumulated match results in input order.
func (s *SearchSession) Results() []spotify.MatchResult { return s.results }

// Errors returns the per-song error log.
func (s *SearchSession) Errors() []string { return s.errors }

// Warnings returns advisory warnings, such as rate-limit backoff notices.
func (s *SearchSession) Warnings() []string { return s.warnings }

// Summary scans the results and derives the found/not-found counters.
func (s *SearchSession) Summary() SessionSummary {
	summary := SessionSummary{Total: len(s.results)}
	for _, r := range s.results {
		if r.Found {
			summary.Found++
		} else {
			summary.NotFound++
		}
	}
	return summary
}
