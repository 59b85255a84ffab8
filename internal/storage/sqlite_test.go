package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tilejump/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(levelID string, score int, outcome core.Outcome) core.RunSummary {
	return core.RunSummary{LevelID: levelID, Score: score, Kills: score / 100, Ticks: 300, Outcome: outcome}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []core.RunSummary{
		run("01-meadow", 100, core.OutcomeDied),
		run("01-meadow", 50, core.OutcomeFell),
		run("01-meadow", 800, core.OutcomeCleared),
		run("02-tower", 500, core.OutcomeQuit),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("01-meadow", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 800 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
	if runs[0].Outcome != core.OutcomeCleared || runs[0].Kills != 8 || runs[0].Ticks != 300 {
		t.Errorf("Run fields not round-tripped: %+v", runs[0])
	}
	if runs[0].LevelID != "01-meadow" {
		t.Errorf("Expected level 01-meadow, got %q", runs[0].LevelID)
	}

	towerRuns, err := store.TopRuns("02-tower", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(towerRuns) != 1 {
		t.Errorf("Expected 1 tower run, got %d", len(towerRuns))
	}
}

func TestStoreRejectsIncompleteRuns(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(core.RunSummary{Score: 10, Outcome: core.OutcomeDied}); err == nil {
		t.Error("Expected error for run without level")
	}
	if _, err := store.SaveRun(core.RunSummary{LevelID: "x", Score: 10}); err == nil {
		t.Error("Expected error for run without outcome")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(run("test", (i+1)*100, core.OutcomeDied))
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}

	// Non-positive limits fall back to 10
	all, err := store.TopRuns("test", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 runs with default limit, got %d", len(all))
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("01-meadow")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for unplayed level, got %d", best)
	}

	store.SaveRun(run("01-meadow", 100, core.OutcomeDied))
	store.SaveRun(run("01-meadow", 300, core.OutcomeCleared))
	store.SaveRun(run("01-meadow", 200, core.OutcomeFell))

	best, err = store.BestScore("01-meadow")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("01-meadow", 100, core.OutcomeDied))
	store.SaveRun(run("01-meadow", 200, core.OutcomeDied))
	store.SaveRun(run("02-tower", 300, core.OutcomeDied))

	if err := store.ClearRuns("01-meadow"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	meadow, _ := store.TopRuns("01-meadow", 10)
	if len(meadow) != 0 {
		t.Errorf("Expected 0 meadow runs after clear, got %d", len(meadow))
	}

	tower, _ := store.TopRuns("02-tower", 10)
	if len(tower) != 1 {
		t.Errorf("Tower runs should not be affected by clearing meadow")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats("01-meadow")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats for unplayed level, got %+v", empty)
	}

	store.SaveRun(run("01-meadow", 100, core.OutcomeDied))
	store.SaveRun(run("01-meadow", 700, core.OutcomeCleared))
	store.SaveRun(run("02-tower", 400, core.OutcomeCleared))

	stats, err := store.LevelStats("01-meadow")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Clears != 1 || stats.BestScore != 700 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 400 {
		t.Errorf("Expected average 400, got %v", stats.AvgScore)
	}
	if stats.TotalKills != 8 {
		t.Errorf("Expected 8 kills, got %d", stats.TotalKills)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}
	if tower := all["02-tower"]; tower == nil || tower.Runs != 1 || tower.Clears != 1 {
		t.Errorf("Unexpected tower stats: %+v", tower)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
