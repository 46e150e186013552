package engine

import (
	"testing"

	"github.com/meltforce/liftplan/internal/models"
)

// TestBaseSetCount covers the age table, the low-readiness shave, and the
// beginner cap.
func TestBaseSetCount(t *testing.T) {
	rules := DefaultRuleset()

	cases := []struct {
		name      string
		role      models.Role
		age       models.TrainingAge
		readiness int
		want      int
	}{
		{"intermediate main", models.RoleMain, models.AgeIntermediate, 3, 4},
		{"intermediate accessory", models.RoleAccessory, models.AgeIntermediate, 3, 3},
		{"advanced main", models.RoleMain, models.AgeAdvanced, 4, 5},
		{"beginner main capped", models.RoleMain, models.AgeBeginner, 3, 3},
		{"low readiness sheds a set", models.RoleMain, models.AgeIntermediate, 2, 3},
		{"low readiness beginner accessory", models.RoleAccessory, models.AgeBeginner, 1, 2},
	}
	for _, tc := range cases {
		if got := baseSetCount(tc.role, tc.age, tc.readiness, rules); got != tc.want {
			t.Errorf("%s: baseSetCount = %d, want %d", tc.name, got, tc.want)
		}
	}
}

// TestPrescribe_MainHypertrophy verifies the goal band is clamped to the
// exercise range, target reps sit at the band midpoint, and rest follows the
// main-lift rest table.
func TestPrescribe_MainHypertrophy(t *testing.T) {
	rules := DefaultRuleset()
	req := baseRequest(models.IntentPush)
	bench := findExercise(t, "db-bench-press")

	sets, role := prescribe(bench, models.RoleMain, 4, req, rules)

	if role != models.RoleMain {
		t.Fatalf("role = %s, want main", role)
	}
	if len(sets) != 4 {
		t.Fatalf("got %d sets, want 4", len(sets))
	}
	// Hypertrophy main band is 6-10; the bench's 5-15 range keeps it intact.
	if sets[0].TargetReps != 8 {
		t.Errorf("target reps = %d, want 8", sets[0].TargetReps)
	}
	if sets[0].RestSec != 150 {
		t.Errorf("rest = %d, want 150", sets[0].RestSec)
	}
	if !sets[0].IsTopSet {
		t.Error("first set should be the top set")
	}
	if sets[1].IsTopSet {
		t.Error("only the first set should be the top set")
	}
	if sets[0].TargetRPE != 8 {
		t.Errorf("target RPE = %v, want 8", sets[0].TargetRPE)
	}
}

// TestPrescribe_MainDemotion verifies a main lift whose native rep range
// cannot reach the goal band is re-prescribed as an accessory with three
// sets.
func TestPrescribe_MainDemotion(t *testing.T) {
	rules := DefaultRuleset()
	req := baseRequest(models.IntentLegs)
	req.Goals.Primary = models.GoalStrength

	highRep := models.Exercise{
		ID: "leg-extension", Name: "Leg Extension",
		PrimaryMuscles:     []models.Muscle{models.MuscleQuads},
		Equipment:          []models.Equipment{models.EquipmentMachine},
		IsMainLiftEligible: true,
		FatigueCost:        1,
		RepRange:           &models.RepRange{Min: 15, Max: 20},
	}

	sets, role := prescribe(highRep, models.RoleMain, 5, req, rules)

	if role != models.RoleAccessory {
		t.Fatalf("role = %s, want accessory after demotion", role)
	}
	if len(sets) != 3 {
		t.Errorf("demoted exercise got %d sets, want 3", len(sets))
	}
}

// TestPrescribe_Deload verifies a deload halves set counts (rounding up) and
// pulls effort down to RPE 6.
func TestPrescribe_Deload(t *testing.T) {
	rules := DefaultRuleset()
	req := baseRequest(models.IntentPush)
	req.Periodization = &models.PeriodizationModifiers{IsDeload: true}
	bench := findExercise(t, "db-bench-press")

	sets, _ := prescribe(bench, models.RoleMain, 4, req, rules)

	if len(sets) != 2 {
		t.Errorf("deload set count = %d, want 2", len(sets))
	}
	if sets[0].TargetRPE != 6 {
		t.Errorf("deload RPE = %v, want 6", sets[0].TargetRPE)
	}
}

// TestPrescribe_LifecycleRIRBand verifies main compounds work the low-RIR
// end of the band while isolation accessories sit at the high-RIR end, plus
// the hypertrophy isolation bump.
func TestPrescribe_LifecycleRIRBand(t *testing.T) {
	rules := DefaultRuleset()
	req := baseRequest(models.IntentPush)
	req.Periodization = &models.PeriodizationModifiers{
		LifecycleRIRTarget: &models.RIRBand{Min: 1, Max: 3},
	}

	bench := findExercise(t, "db-bench-press")
	mainSets, _ := prescribe(bench, models.RoleMain, 4, req, rules)
	if mainSets[0].TargetRPE != 9 {
		t.Errorf("main compound RPE = %v, want 9 (RIR 1)", mainSets[0].TargetRPE)
	}

	curl := findExercise(t, "db-curl")
	accSets, _ := prescribe(curl, models.RoleAccessory, 3, req, rules)
	// RIR 3 gives RPE 7, then the hypertrophy isolation bump adds 0.5.
	if accSets[0].TargetRPE != 7.5 {
		t.Errorf("isolation accessory RPE = %v, want 7.5", accSets[0].TargetRPE)
	}
}

// TestPrescribe_BackOffSets verifies non-top sets drop RPE per the back-off
// multiplier, capped at two points.
func TestPrescribe_BackOffSets(t *testing.T) {
	rules := DefaultRuleset()
	bench := findExercise(t, "db-bench-press")

	req := baseRequest(models.IntentPush)
	req.Periodization = &models.PeriodizationModifiers{BackOffMultiplier: 0.9}
	sets, _ := prescribe(bench, models.RoleMain, 3, req, rules)
	if sets[0].TargetRPE != 8 {
		t.Errorf("top set RPE = %v, want 8", sets[0].TargetRPE)
	}
	if sets[1].TargetRPE != 7 {
		t.Errorf("back-off RPE = %v, want 7", sets[1].TargetRPE)
	}

	req.Periodization = &models.PeriodizationModifiers{BackOffMultiplier: 0.5}
	sets, _ = prescribe(bench, models.RoleMain, 3, req, rules)
	if sets[1].TargetRPE != 6 {
		t.Errorf("capped back-off RPE = %v, want 6 (2-point cap)", sets[1].TargetRPE)
	}
}

// TestRestFor covers both rest tables across rep buckets.
func TestRestFor(t *testing.T) {
	rules := DefaultRuleset()

	cases := []struct {
		role models.Role
		reps int
		want int
	}{
		{models.RoleMain, 4, 180},
		{models.RoleMain, 8, 150},
		{models.RoleMain, 12, 120},
		{models.RoleAccessory, 8, 90},
		{models.RoleAccessory, 10, 75},
		{models.RoleAccessory, 15, 60},
	}
	for _, tc := range cases {
		if got := rules.restFor(tc.role, tc.reps); got != tc.want {
			t.Errorf("restFor(%s, %d) = %d, want %d", tc.role, tc.reps, got, tc.want)
		}
	}
}

// TestWarmupSets verifies the ramp-in prescription for the first main lift.
func TestWarmupSets(t *testing.T) {
	rules := DefaultRuleset()
	sets := warmupSets(rules)

	if len(sets) != 2 {
		t.Fatalf("got %d warmup sets, want 2", len(sets))
	}
	for i, set := range sets {
		if !set.IsWarmup {
			t.Errorf("set %d not flagged as warmup", i)
		}
		if set.RestSec != rules.WarmupRestSec {
			t.Errorf("set %d rest = %d, want %d", i, set.RestSec, rules.WarmupRestSec)
		}
	}
	if sets[0].TargetReps <= sets[1].TargetReps {
		t.Error("warmup reps should ramp down toward working weight")
	}
}
