package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/pico-snake/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "results.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveResult(engine.Result{Points: 30, FoodEaten: 3, Cause: "wall"}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed on reopen: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("HighScore() = %d, expected 30", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ended := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	results := []engine.Result{
		{Points: 100, FoodEaten: 10, Length: 13, Cause: "self", Duration: 42 * time.Second, Seed: 7, EndedAt: ended},
		{Points: 50, FoodEaten: 5, Length: 8, Cause: "wall", Duration: 20 * time.Second, Seed: 8, EndedAt: ended},
		{Points: 200, FoodEaten: 20, Length: 23, Won: true, Duration: 90 * time.Second, Seed: 9, EndedAt: ended},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopResults(10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopResults() returned %d entries, expected 3", len(top))
	}

	wantScores := []int{200, 100, 50}
	for i, want := range wantScores {
		if top[i].Points != want {
			t.Errorf("TopResults()[%d].Points = %d, expected %d", i, top[i].Points, want)
		}
	}

	best := top[0]
	if !best.Won || best.Outcome != "won" {
		t.Errorf("best entry = won %v outcome %q, expected won outcome", best.Won, best.Outcome)
	}
	if best.Duration != 90*time.Second {
		t.Errorf("best.Duration = %v, expected 90s", best.Duration)
	}
	if best.Seed != 9 {
		t.Errorf("best.Seed = %d, expected 9", best.Seed)
	}
	if !best.CreatedAt.Equal(ended) {
		t.Errorf("best.CreatedAt = %v, expected %v", best.CreatedAt, ended)
	}
	if top[1].Outcome != "crashed:self" || top[1].Cause != "self" {
		t.Errorf("second entry outcome = %q cause %q, expected crashed:self", top[1].Outcome, top[1].Cause)
	}
}

func TestStoreTopResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if err := store.RecordResult(engine.Result{Points: i * 10, Cause: "wall"}); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 5, 5},
		{"default", 0, 10},
		{"above count", 50, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, err := store.TopResults(tt.limit)
			if err != nil {
				t.Fatalf("TopResults() failed: %v", err)
			}
			if len(top) != tt.want {
				t.Errorf("TopResults(%d) returned %d entries, expected %d", tt.limit, len(top), tt.want)
			}
			if top[0].Points != 150 {
				t.Errorf("TopResults(%d)[0].Points = %d, expected 150", tt.limit, top[0].Points)
			}
		})
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for _, p := range []int{10, 30, 20} {
		if err := store.RecordResult(engine.Result{Points: p, Cause: "wall"}); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentResults() returned %d entries, expected 2", len(recent))
	}
	if recent[0].Points != 20 || recent[1].Points != 30 {
		t.Errorf("RecentResults() points = %d,%d, expected 20,30", recent[0].Points, recent[1].Points)
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Games != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty ledger = %+v, expected zero", empty)
	}

	for _, r := range []engine.Result{
		{Points: 40, FoodEaten: 4, Cause: "wall", Duration: 10 * time.Second},
		{Points: 80, FoodEaten: 8, Won: true, Duration: 30 * time.Second},
	} {
		if err := store.RecordResult(r); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	sum, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if sum.Games != 2 {
		t.Errorf("Stats().Games = %d, expected 2", sum.Games)
	}
	if sum.Wins != 1 {
		t.Errorf("Stats().Wins = %d, expected 1", sum.Wins)
	}
	if sum.HighScore != 80 {
		t.Errorf("Stats().HighScore = %d, expected 80", sum.HighScore)
	}
	if sum.AvgScore != 60 {
		t.Errorf("Stats().AvgScore = %v, expected 60", sum.AvgScore)
	}
	if sum.TotalFood != 12 {
		t.Errorf("Stats().TotalFood = %d, expected 12", sum.TotalFood)
	}
	if sum.LongestRun != 30*time.Second {
		t.Errorf("Stats().LongestRun = %v, expected 30s", sum.LongestRun)
	}
	if sum.LastPlayed.IsZero() {
		t.Error("Stats().LastPlayed is zero, expected a timestamp")
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.RecordResult(engine.Result{Points: 10, Cause: "self"}); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	top, err := store.TopResults(10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("TopResults() after Clear returned %d entries, expected 0", len(top))
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite text", "2026-01-02 03:04:05", want},
		{"rfc3339", "2026-01-02T03:04:05Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"null", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTime(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}
