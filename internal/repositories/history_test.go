package repositories

import (
	"testing"
	"time"

	"github.com/groove-cli/groove/internal/shared"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewHistoryRepository(db)
	if err := repo.Init(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return repo
}

func TestHistoryRepository(t *testing.T) {
	t.Run("Record Fills ID And Timestamp", func(t *testing.T) {
		repo := newTestRepo(t)
		run := &SyncRun{
			PlaylistID:   "pl1",
			PlaylistName: "Road Trip",
			Source:       "songs.txt",
			Total:        10,
			Added:        8,
			Skipped:      1,
			Unmatched:    1,
		}

		if err := repo.Record(run); err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if run.ID == "" {
			t.Error("expected generated id")
		}
		if run.CreatedAt.IsZero() {
			t.Error("expected timestamp to be set")
		}
	})

	t.Run("Recent Returns Newest First", func(t *testing.T) {
		repo := newTestRepo(t)
		for _, name := range []string{"first", "second", "third"} {
			if err := repo.Record(&SyncRun{PlaylistID: "pl", PlaylistName: name, Source: "f.txt"}); err != nil {
				t.Fatalf("record failed: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		runs, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("recent failed: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].PlaylistName != "third" || runs[2].PlaylistName != "first" {
			t.Errorf("unexpected order: %s .. %s", runs[0].PlaylistName, runs[2].PlaylistName)
		}
	})

	t.Run("Recent Honors Limit", func(t *testing.T) {
		repo := newTestRepo(t)
		for i := 0; i < 5; i++ {
			if err := repo.Record(&SyncRun{PlaylistID: "pl", PlaylistName: "run", Source: "f.txt"}); err != nil {
				t.Fatalf("record failed: %v", err)
			}
		}

		runs, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("recent failed: %v", err)
		}
		if len(runs) != 2 {
			t.Errorf("expected 2 runs, got %d", len(runs))
		}
	})

	t.Run("Counters Round Trip", func(t *testing.T) {
		repo := newTestRepo(t)
		run := &SyncRun{
			PlaylistID:   "pl1",
			PlaylistName: "Mix",
			Source:       "mix.csv",
			Total:        100,
			Added:        90,
			Skipped:      5,
			Unmatched:    5,
			Errors:       2,
		}
		if err := repo.Record(run); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		runs, err := repo.Recent(1)
		if err != nil {
			t.Fatalf("recent failed: %v", err)
		}
		got := runs[0]
		if got.Total != 100 || got.Added != 90 || got.Skipped != 5 || got.Unmatched != 5 || got.Errors != 2 {
			t.Errorf("counters lost in round trip: %+v", got)
		}
	})
}
