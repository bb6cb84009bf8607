package tasks

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/groove-cli/groove/internal/models"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/groove-cli/groove/internal/spotify"
)

func mustSong(t *testing.T, artist, title string) models.Song {
	t.Helper()
	song, err := models.NewSong(artist, title)
	if err != nil {
		t.Fatalf("failed to create song: %v", err)
	}
	return song
}

// fakeCatalog is an in-memory CatalogService. Search results are keyed by the
// song's identity key; keys in failSearch return ErrServer instead.
type fakeCatalog struct {
	tracks     map[string][]spotify.Track
	failSearch map[string]error

	playlists   []spotify.Playlist
	listErr     error
	created     []spotify.Playlist
	createErr   error
	lookupErr   error
	addedIDs    []string
	addedSkip   bool
	addCalls    int
	searchOrder []string
}

func (f *fakeCatalog) Search(ctx context.Context, song models.Song) ([]spotify.Track, error) {
	key := song.Key()
	f.searchOrder = append(f.searchOrder, key)
	if err, ok := f.failSearch[key]; ok {
		return nil, err
	}
	return f.tracks[key], nil
}

func (f *fakeCatalog) CreatePlaylist(ctx context.Context, name, description string, public bool) (*spotify.Playlist, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	playlist := spotify.Playlist{ID: fmt.Sprintf("created-%d", len(f.created)+1), Name: name, Public: public}
	f.created = append(f.created, playlist)
	return &playlist, nil
}

func (f *fakeCatalog) Playlist(ctx context.Context, playlistID string) (*spotify.Playlist, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for i := range f.playlists {
		if f.playlists[i].ID == playlistID {
			return &f.playlists[i], nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

func (f *fakeCatalog) ListPlaylists(ctx context.Context, filter string, limit int) ([]spotify.Playlist, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []spotify.Playlist
	for _, pl := range f.playlists {
		if filter == "" || strings.Contains(strings.ToLower(pl.Name), strings.ToLower(filter)) {
			out = append(out, pl)
		}
	}
	return out, nil
}

func (f *fakeCatalog) AddTracks(ctx context.Context, playlistID string, trackIDs []string, skipDuplicates bool) spotify.AddResult {
	f.addCalls++
	f.addedIDs = append(f.addedIDs, trackIDs...)
	f.addedSkip = skipDuplicates
	return spotify.AddResult{Added: len(trackIDs)}
}

func exactTrack(song models.Song, id string) spotify.Track {
	return spotify.Track{ID: id, Name: song.Title, Artists: []string{song.Artist}, Popularity: 50}
}

func TestSearchSession(t *testing.T) {
	t.Run("Results In Input Order", func(t *testing.T) {
		songs := []models.Song{
			mustSong(t, "Daft Punk", "One More Time"),
			mustSong(t, "Queen", "Bohemian Rhapsody"),
			mustSong(t, "Radiohead", "Karma Police"),
		}

		catalog := &fakeCatalog{tracks: map[string][]spotify.Track{
			songs[0].Key(): {exactTrack(songs[0], "t1")},
			songs[1].Key(): {exactTrack(songs[1], "t2")},
			songs[2].Key(): {exactTrack(songs[2], "t3")},
		}}

		session := NewSearchSession(catalog)
		results := session.Run(context.Background(), nil, songs)

		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		for i, r := range results {
			if !r.Song.Equal(songs[i]) {
				t.Errorf("result %d out of order: got %s", i, r.Song)
			}
		}
		if len(catalog.searchOrder) != 3 || catalog.searchOrder[0] != songs[0].Key() {
			t.Errorf("searches issued out of order: %v", catalog.searchOrder)
		}
	})

	t.Run("Per Song Failure Does Not Abort", func(t *testing.T) {
		songs := []models.Song{
			mustSong(t, "Daft Punk", "One More Time"),
			mustSong(t, "Queen", "Bohemian Rhapsody"),
			mustSong(t, "Radiohead", "Karma Police"),
		}

		catalog := &fakeCatalog{
			tracks: map[string][]spotify.Track{
				songs[0].Key(): {exactTrack(songs[0], "t1")},
				songs[2].Key(): {exactTrack(songs[2], "t3")},
			},
			failSearch: map[string]error{
				songs[1].Key(): fmt.Errorf("%w: status 500", shared.ErrServer),
			},
		}

		session := NewSearchSession(catalog)
		results := session.Run(context.Background(), nil, songs)

		if len(results) != 3 {
			t.Fatalf("expected all songs processed, got %d results", len(results))
		}
		if results[1].Found {
			t.Error("failed search should yield a not-found result")
		}
		if results[1].Query == "" {
			t.Error("not-found result should still record the query")
		}
		if !results[0].Found || !results[2].Found {
			t.Error("surrounding songs should still match")
		}
		if len(session.Errors()) != 1 {
			t.Errorf("expected 1 logged error, got %v", session.Errors())
		}
	})

	t.Run("Rate Limit Failure Adds Warning", func(t *testing.T) {
		song := mustSong(t, "Daft Punk", "One More Time")
		catalog := &fakeCatalog{
			failSearch: map[string]error{
				song.Key(): fmt.Errorf("%w: too many requests", shared.ErrRateLimited),
			},
		}

		session := NewSearchSession(catalog)
		session.Run(context.Background(), nil, []models.Song{song})

		warnings := session.Warnings()
		if len(warnings) != 1 || warnings[0] != shared.BackoffWarning {
			t.Errorf("expected backoff warning, got %v", warnings)
		}
	})

	t.Run("Summary Counters", func(t *testing.T) {
		songs := []models.Song{
			mustSong(t, "Daft Punk", "One More Time"),
			mustSong(t, "Nobody", "Nothing"),
		}

		catalog := &fakeCatalog{tracks: map[string][]spotify.Track{
			songs[0].Key(): {exactTrack(songs[0], "t1")},
			// songs[1] returns zero candidates.
		}}

		session := NewSearchSession(catalog)
		session.Run(context.Background(), nil, songs)

		summary := session.Summary()
		if summary.Total != 2 || summary.Found != 1 || summary.NotFound != 1 {
			t.Errorf("unexpected summary %+v", summary)
		}
		if summary.Found+summary.NotFound != summary.Total {
			t.Error("found and not-found must partition the total")
		}
	})

	t.Run("Progress Updates Never Block", func(t *testing.T) {
		songs := []models.Song{
			mustSong(t, "Daft Punk", "One More Time"),
			mustSong(t, "Queen", "Bohemian Rhapsody"),
		}

		catalog := &fakeCatalog{tracks: map[string][]spotify.Track{}}
		session := NewSearchSession(catalog)

		// Unbuffered channel with no reader: sends must be dropped, not block.
		progress := make(chan ProgressUpdate)
		done := make(chan struct{})
		go func() {
			session.Run(context.Background(), progress, songs)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("session blocked on progress channel")
		}
	})
}

func TestSyncEngine(t *testing.T) {
	t.Run("Sync To Existing Playlist By ID", func(t *testing.T) {
		songs := []models.Song{
			mustSong(t, "Daft Punk", "One More Time"),
			mustSong(t, "Nobody", "Nothing"),
		}
		catalog := &fakeCatalog{
			tracks: map[string][]spotify.Track{
				songs[0].Key(): {exactTrack(songs[0], "t1")},
			},
			playlists: []spotify.Playlist{{ID: "pl1", Name: "Road Trip"}},
		}

		engine := NewSyncEngine(catalog)
		outcome, err := engine.Sync(context.Background(), nil, songs, SyncOpts{PlaylistID: "pl1", SkipDuplicates: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if outcome.Playlist.ID != "pl1" {
			t.Errorf("expected playlist pl1, got %s", outcome.Playlist.ID)
		}
		if outcome.Created {
			t.Error("existing playlist should not be reported as created")
		}
		if outcome.Added != 1 {
			t.Errorf("expected 1 added, got %d", outcome.Added)
		}
		if len(outcome.Unmatched) != 1 || !outcome.Unmatched[0].Equal(songs[1]) {
			t.Errorf("expected songs[1] unmatched, got %v", outcome.Unmatched)
		}
		if !catalog.addedSkip {
			t.Error("skip-duplicates option should be forwarded")
		}
	})

	t.Run("Resolves Playlist By Name", func(t *testing.T) {
		song := mustSong(t, "Daft Punk", "One More Time")
		catalog := &fakeCatalog{
			tracks:    map[string][]spotify.Track{song.Key(): {exactTrack(song, "t1")}},
			playlists: []spotify.Playlist{{ID: "pl7", Name: "Road Trip"}},
		}

		engine := NewSyncEngine(catalog)
		outcome, err := engine.Sync(context.Background(), nil, []models.Song{song}, SyncOpts{PlaylistName: "road trip"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if outcome.Playlist.ID != "pl7" {
			t.Errorf("expected existing playlist matched by name, got %s", outcome.Playlist.ID)
		}
		if len(catalog.created) != 0 {
			t.Error("no playlist should be created when the name already exists")
		}
	})

	t.Run("Creates Playlist When Name Missing", func(t *testing.T) {
		song := mustSong(t, "Daft Punk", "One More Time")
		catalog := &fakeCatalog{
			tracks: map[string][]spotify.Track{song.Key(): {exactTrack(song, "t1")}},
		}

		engine := NewSyncEngine(catalog)
		outcome, err := engine.Sync(context.Background(), nil, []models.Song{song}, SyncOpts{
			PlaylistName: "Fresh Mix",
			Public:       true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !outcome.Created {
			t.Error("expected playlist creation to be reported")
		}
		if len(catalog.created) != 1 || catalog.created[0].Name != "Fresh Mix" || !catalog.created[0].Public {
			t.Errorf("unexpected created playlist %+v", catalog.created)
		}
	})

	t.Run("Aborts When Playlist Lookup Fails", func(t *testing.T) {
		song := mustSong(t, "Daft Punk", "One More Time")
		catalog := &fakeCatalog{
			tracks:    map[string][]spotify.Track{song.Key(): {exactTrack(song, "t1")}},
			lookupErr: shared.ErrPlaylistNotFound,
		}

		engine := NewSyncEngine(catalog)
		_, err := engine.Sync(context.Background(), nil, []models.Song{song}, SyncOpts{PlaylistID: "missing"})
		if err == nil {
			t.Fatal("expected error when playlist lookup fails")
		}
		if catalog.addCalls != 0 {
			t.Error("no tracks should be added after a failed lookup")
		}
	})

	t.Run("Requires ID Or Name", func(t *testing.T) {
		engine := NewSyncEngine(&fakeCatalog{})
		_, err := engine.Sync(context.Background(), nil, nil, SyncOpts{})
		if err == nil {
			t.Fatal("expected error when neither playlist id nor name is set")
		}
	})

	t.Run("Progress Phases Emitted", func(t *testing.T) {
		song := mustSong(t, "Daft Punk", "One More Time")
		catalog := &fakeCatalog{
			tracks:    map[string][]spotify.Track{song.Key(): {exactTrack(song, "t1")}},
			playlists: []spotify.Playlist{{ID: "pl1", Name: "Road Trip"}},
		}

		progress := make(chan ProgressUpdate, 32)
		engine := NewSyncEngine(catalog)
		if _, err := engine.Sync(context.Background(), progress, []models.Song{song}, SyncOpts{PlaylistID: "pl1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		seen := map[Phase]bool{}
		for update := range progress {
			seen[update.Phase] = true
		}
		for _, phase := range []Phase{PhaseSearch, PhaseResolve, PhaseAdd, PhaseComplete} {
			if !seen[phase] {
				t.Errorf("expected a %s update", phase)
			}
		}
	})
}
