package localdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestCatalogRoundTrip verifies synced exercises come back intact and in
// id order.
func TestCatalogRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sfr := 4
	in := []models.Exercise{
		{ID: "b-row", Name: "Barbell Row", PrimaryMuscles: []models.Muscle{models.MuscleLats}, SFRScore: &sfr},
		{ID: "a-press", Name: "Arnold Press", PrimaryMuscles: []models.Muscle{models.MuscleFrontDelts}},
	}
	if err := s.SyncCatalog(ctx, in); err != nil {
		t.Fatalf("SyncCatalog: %v", err)
	}

	got, err := s.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d exercises, want 2", len(got))
	}
	if got[0].ID != "a-press" || got[1].ID != "b-row" {
		t.Errorf("order = [%s %s], want id ascending", got[0].ID, got[1].ID)
	}
	if got[1].SFRScore == nil || *got[1].SFRScore != 4 {
		t.Error("sfr score lost in round trip")
	}

	// Re-syncing the same ids replaces rather than duplicates.
	if err := s.SyncCatalog(ctx, in); err != nil {
		t.Fatalf("SyncCatalog again: %v", err)
	}
	got, err = s.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("re-sync produced %d rows, want 2", len(got))
	}
}

// TestHistoryQueryWindow verifies the since filter and most-recent-first
// ordering the generator depends on.
func TestHistoryQueryWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for _, daysAgo := range []int{1, 5, 30} {
		entry := models.WorkoutHistoryEntry{
			ID:     uuid.New(),
			Date:   now.AddDate(0, 0, -daysAgo),
			Status: models.StatusCompleted,
			Performed: []models.PerformedExercise{
				{ExerciseID: "b-row", Sets: []models.PerformedSet{{Reps: 8, WeightKg: 60}}},
			},
		}
		if err := s.SaveHistory(ctx, entry); err != nil {
			t.Fatalf("SaveHistory: %v", err)
		}
	}

	got, err := s.QueryHistory(ctx, now.AddDate(0, 0, -14))
	if err != nil {
		t.Fatalf("QueryHistory: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries in window, want 2", len(got))
	}
	if !got[0].Date.After(got[1].Date) {
		t.Error("entries not ordered most recent first")
	}
	if got[0].Performed[0].ExerciseID != "b-row" {
		t.Error("performed exercises lost in round trip")
	}
}
