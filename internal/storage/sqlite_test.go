package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("glorp", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("glorp_zen", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("glorp", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "glorp" {
			t.Errorf("scores[%d].GameID = %q, expected glorp", i, scores[i].GameID)
		}
	}

	zen, err := store.TopScores("glorp_zen", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(zen) != 1 || zen[0].Score != 500 {
		t.Errorf("zen scores = %+v, expected single 500", zen)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("glorp", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("glorp", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	all, err := store.AllScores("glorp")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("glorp")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	store.SaveScore("glorp", 100)
	store.SaveScore("glorp", 300)
	store.SaveScore("glorp", 200)

	high, err = store.HighScore("glorp")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreLevelRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []LevelRun{
		{GameID: "glorp", LevelID: "first_steps", Completed: true, Duration: 12 * time.Second, PowerLeft: 80, Glorps: 1, Score: 138},
		{GameID: "glorp", LevelID: "first_steps", Completed: false, Duration: 3 * time.Second, PowerLeft: 95},
		{GameID: "glorp", LevelID: "first_steps", Completed: true, Duration: 8 * time.Second, PowerLeft: 85, Score: 210},
		{GameID: "glorp", LevelID: "boom", Completed: true, Duration: 20 * time.Second, Score: 99},
	}
	for _, r := range runs {
		if _, err := store.SaveLevelRun(r); err != nil {
			t.Fatalf("SaveLevelRun() failed: %v", err)
		}
	}

	best, err := store.BestLevelRun("first_steps")
	if err != nil {
		t.Fatalf("BestLevelRun() failed: %v", err)
	}
	if best == nil || best.Score != 210 || best.Duration != 8*time.Second {
		t.Fatalf("BestLevelRun() = %+v, expected score 210 in 8s", best)
	}

	recent, err := store.LevelRuns("first_steps", 10)
	if err != nil {
		t.Fatalf("LevelRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("LevelRuns() returned %d runs, expected 3", len(recent))
	}
	if recent[0].Score != 210 || recent[2].Score != 138 {
		t.Errorf("LevelRuns() not newest first: %+v", recent)
	}

	none, err := store.BestLevelRun("lift")
	if err != nil {
		t.Fatalf("BestLevelRun() failed: %v", err)
	}
	if none != nil {
		t.Errorf("BestLevelRun() for unplayed level = %+v, expected nil", none)
	}

	stats, err := store.GetLevelStats("first_steps")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Attempts != 3 {
		t.Errorf("Attempts = %d, expected 3", stats.Attempts)
	}
	if stats.Completed != 2 {
		t.Errorf("Completed = %d, expected 2", stats.Completed)
	}
	if stats.BestScore != 210 {
		t.Errorf("BestScore = %d, expected 210", stats.BestScore)
	}
	if stats.Fastest != 8*time.Second {
		t.Errorf("Fastest = %v, expected 8s", stats.Fastest)
	}
	if stats.Glorps != 1 {
		t.Errorf("Glorps = %d, expected 1", stats.Glorps)
	}

	if _, err := store.SaveLevelRun(LevelRun{GameID: "glorp"}); err == nil {
		t.Error("SaveLevelRun() without level id should fail")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("glorp", 100)
	store.SaveScore("glorp_zen", 300)
	store.SaveLevelRun(LevelRun{GameID: "glorp", LevelID: "boom", Completed: true, Score: 10})

	if err := store.ClearScores("glorp"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("glorp", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	zen, _ := store.TopScores("glorp_zen", 10)
	if len(zen) != 1 {
		t.Errorf("Expected zen scores to be untouched, got %d", len(zen))
	}
	runs, _ := store.LevelRuns("boom", 10)
	if len(runs) != 0 {
		t.Errorf("Expected level runs cleared, got %d", len(runs))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("glorp", 100)
	store.SaveScore("glorp", 300)

	stats, err := store.GetGameStats("glorp")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if _, ok := all["glorp"]; !ok || len(all) != 1 {
		t.Errorf("GetAllGamesStats() = %v, expected only glorp", all)
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
