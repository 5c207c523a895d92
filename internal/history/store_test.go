package history

import (
	"path/filepath"
	"testing"

	"codescope/internal/analyzer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func resultWith(score float64, cycles, entities int) *analyzer.Result {
	return &analyzer.Result{
		Summary: analyzer.Summary{
			Units:          4,
			Entities:       entities,
			Imports:        6,
			Cycles:         cycles,
			OverallScore:   score,
			Grade:          "B",
			PrimaryPattern: "Basic Layered Architecture",
		},
	}
}

func TestRecordAndDelta(t *testing.T) {
	store := openTestStore(t)

	first, delta, err := store.Record("demo", resultWith(70, 2, 10))
	if err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if delta != nil {
		t.Errorf("first run should have no delta, got %+v", delta)
	}
	if first.RunID == "" || first.ProjectKey != "demo" {
		t.Errorf("run = %+v", first)
	}

	_, delta, err = store.Record("demo", resultWith(75.5, 1, 12))
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}
	if delta == nil {
		t.Fatal("second run should have a delta")
	}
	if delta.ScoreChange != 5.5 {
		t.Errorf("score change = %v, want 5.5", delta.ScoreChange)
	}
	if delta.CycleChange != -1 {
		t.Errorf("cycle change = %d, want -1", delta.CycleChange)
	}
	if delta.EntityChange != 2 {
		t.Errorf("entity change = %d, want 2", delta.EntityChange)
	}
	if delta.Previous == nil || delta.Previous.RunID != first.RunID {
		t.Errorf("previous = %+v, want first run", delta.Previous)
	}
}

func TestRecordSeparateProjects(t *testing.T) {
	store := openTestStore(t)

	if _, _, err := store.Record("one", resultWith(60, 0, 5)); err != nil {
		t.Fatal(err)
	}
	_, delta, err := store.Record("two", resultWith(80, 0, 5))
	if err != nil {
		t.Fatal(err)
	}
	if delta != nil {
		t.Errorf("runs for different projects must not produce a delta, got %+v", delta)
	}
}

func TestRecent(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, _, err := store.Record("demo", resultWith(float64(60+i), 0, 5)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.Recent("demo", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].OverallScore < runs[1].OverallScore {
		t.Errorf("runs not newest first: %v then %v", runs[0].OverallScore, runs[1].OverallScore)
	}
	if runs[0].PrimaryPattern != "Basic Layered Architecture" {
		t.Errorf("primary pattern = %q", runs[0].PrimaryPattern)
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Open accepted a directory path")
	}
	if _, err := Open("   "); err == nil {
		t.Error("Open accepted an empty path")
	}
}
