package engine

import (
	"testing"

	"github.com/meltforce/liftplan/internal/models"
)

// TestRecoveryWarnings_InsideWindow verifies a muscle trained again 24h
// after a 48h-recovery stimulus is flagged at 50 percent recovered.
func TestRecoveryWarnings_InsideWindow(t *testing.T) {
	rules := DefaultRuleset()
	history := []models.WorkoutHistoryEntry{
		historyEntry(1, models.StatusCompleted, "db-bench-press"),
	}
	meso := &models.MesocyclePosition{Week: 1, Length: 4}
	ctx := BuildContext(history, testCatalog(), nil, meso, rules, testNow)

	bench := plannedExercise(t, "db-bench-press", models.RoleMain, 4, 8, 150)
	warnings := recoveryWarnings([]models.WorkoutExercise{bench}, nil, ctx)

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	w := warnings[0]
	if w.Muscle != models.MuscleChest {
		t.Errorf("warned muscle = %s, want chest", w.Muscle)
	}
	if w.RecoveryPercent != 50 {
		t.Errorf("recovery percent = %v, want 50", w.RecoveryPercent)
	}
	if w.Message == "" {
		t.Error("warning should carry a message")
	}
}

// TestRecoveryWarnings_OutsideWindow verifies a fully elapsed recovery
// window produces no warning.
func TestRecoveryWarnings_OutsideWindow(t *testing.T) {
	rules := DefaultRuleset()
	history := []models.WorkoutHistoryEntry{
		historyEntry(3, models.StatusCompleted, "db-bench-press"),
	}
	meso := &models.MesocyclePosition{Week: 1, Length: 4}
	ctx := BuildContext(history, testCatalog(), nil, meso, rules, testNow)

	bench := plannedExercise(t, "db-bench-press", models.RoleMain, 4, 8, 150)
	if warnings := recoveryWarnings([]models.WorkoutExercise{bench}, nil, ctx); len(warnings) != 0 {
		t.Errorf("got %d warnings after 72h, want none", len(warnings))
	}
}

// TestRecoveryWarnings_RequiresEnhancedContext verifies the advisory is
// silent without landmark states.
func TestRecoveryWarnings_RequiresEnhancedContext(t *testing.T) {
	rules := DefaultRuleset()
	history := []models.WorkoutHistoryEntry{
		historyEntry(1, models.StatusCompleted, "db-bench-press"),
	}
	ctx := BuildContext(history, testCatalog(), nil, nil, rules, testNow)

	bench := plannedExercise(t, "db-bench-press", models.RoleMain, 4, 8, 150)
	if warnings := recoveryWarnings([]models.WorkoutExercise{bench}, nil, ctx); warnings != nil {
		t.Errorf("got warnings %v without a recovery model", warnings)
	}
}
