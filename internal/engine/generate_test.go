package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/meltforce/liftplan/internal/models"
)

// TestGenerate_FullPipeline runs a routine push session end to end and
// checks the plan's structural invariants.
func TestGenerate_FullPipeline(t *testing.T) {
	eng := New(DefaultRuleset())
	req := baseRequest(models.IntentPush)
	req.History = []models.WorkoutHistoryEntry{
		historyEntry(2, models.StatusCompleted, "db-bench-press", "cable-triceps-pushdown"),
		historyEntry(4, models.StatusCompleted, "db-overhead-press"),
		historyEntry(6, models.StatusCompleted, "pushup"),
	}

	res, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(res.Plan.MainLifts) == 0 {
		t.Fatal("plan has no main lifts")
	}
	if res.Plan.EstimatedMinutes <= 0 {
		t.Error("plan has no time estimate")
	}

	// Ramp-in sets lead the first main lift only.
	first := res.Plan.MainLifts[0]
	if len(first.Sets) < 3 || !first.Sets[0].IsWarmup || !first.Sets[1].IsWarmup {
		t.Error("first main lift should open with two warmup sets")
	}
	for _, we := range res.Plan.MainLifts[1:] {
		for _, set := range we.Sets {
			if set.IsWarmup {
				t.Errorf("%s carries warmup sets; only the first main lift should", we.Exercise.ID)
			}
		}
	}

	// The selection record mirrors the plan after demotions and trims.
	var wantMains []string
	for _, we := range res.Plan.MainLifts {
		wantMains = append(wantMains, we.Exercise.ID)
	}
	if !reflect.DeepEqual(res.Selection.MainLiftIDs, wantMains) {
		t.Errorf("selection mains %v do not match plan %v", res.Selection.MainLiftIDs, wantMains)
	}

	// Order indices run mains first, then accessories, without gaps.
	next := 0
	for _, we := range append(res.Plan.MainLifts, res.Plan.Accessories...) {
		if we.Order != next {
			t.Errorf("%s order = %d, want %d", we.Exercise.ID, we.Order, next)
		}
		next++
	}
}

// TestGenerate_Deterministic verifies the same request reproduces the same
// result byte for byte.
func TestGenerate_Deterministic(t *testing.T) {
	eng := New(DefaultRuleset())
	req := baseRequest(models.IntentFullBody)
	req.History = []models.WorkoutHistoryEntry{
		historyEntry(2, models.StatusCompleted, "goblet-squat", "db-bench-press"),
		historyEntry(4, models.StatusCompleted, "seated-cable-row"),
		historyEntry(6, models.StatusCompleted, "romanian-deadlift"),
	}

	a, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical requests produced different results")
	}
}

// TestGenerate_EmptyTemplate verifies a non-nil empty template yields a
// valid empty plan rather than an error.
func TestGenerate_EmptyTemplate(t *testing.T) {
	eng := New(DefaultRuleset())
	req := baseRequest(models.IntentPush)
	req.Catalog = nil // strict mode skips catalog validation
	req.Template = []string{}

	res, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Plan.MainLifts) != 0 || len(res.Plan.Accessories) != 0 {
		t.Error("empty template should produce an empty plan")
	}
	if res.Plan.EstimatedMinutes != 0 {
		t.Errorf("empty plan estimate = %d, want 0", res.Plan.EstimatedMinutes)
	}
	if res.Substitutions != nil {
		t.Error("strict mode must not suggest substitutions")
	}
}

// TestGenerate_TemplateVerbatim verifies template sessions take the listed
// exercises as pinned, in order, with no auto-fill.
func TestGenerate_TemplateVerbatim(t *testing.T) {
	eng := New(DefaultRuleset())
	req := baseRequest(models.IntentPush)
	req.Template = []string{"db-bench-press", "db-curl"}

	res, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got := append(res.Selection.MainLiftIDs, res.Selection.AccessoryIDs...)
	want := []string{"db-bench-press", "db-curl"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("template selection = %v, want %v", got, want)
	}
	for _, id := range want {
		if res.Selection.Rationale[id].Step != models.StepPin {
			t.Errorf("%s step = %s, want pin", id, res.Selection.Rationale[id].Step)
		}
	}
}

// TestGenerate_ValidationErrors covers the request-shape failures.
func TestGenerate_ValidationErrors(t *testing.T) {
	eng := New(DefaultRuleset())

	cases := []struct {
		name    string
		mutate  func(*Request)
		wantSub string
	}{
		{
			"empty catalog",
			func(r *Request) { r.Catalog = nil },
			"catalog is empty",
		},
		{
			"unknown intent",
			func(r *Request) { r.Intent = "cardio" },
			"unknown session intent",
		},
		{
			"body_part without muscles",
			func(r *Request) { r.Intent = models.IntentBodyPart },
			"requires target muscles",
		},
		{
			"unknown goal",
			func(r *Request) { r.Goals.Primary = "bulking" },
			"unknown goal",
		},
		{
			"unknown target muscle",
			func(r *Request) {
				r.Intent = models.IntentBodyPart
				r.TargetMuscles = []models.Muscle{"bicep"}
			},
			"unknown target muscle",
		},
		{
			"unknown training age",
			func(r *Request) { r.Profile.TrainingAge = "veteran" },
			"unknown training age",
		},
	}
	for _, tc := range cases {
		req := baseRequest(models.IntentPush)
		tc.mutate(&req)
		_, err := eng.Generate(req)
		if err == nil || !strings.Contains(err.Error(), tc.wantSub) {
			t.Errorf("%s: err = %v, want substring %q", tc.name, err, tc.wantSub)
		}
	}
}

// TestGenerate_TimeBudgetHonored verifies a tight budget either fits the
// estimate or leaves an infeasibility note.
func TestGenerate_TimeBudgetHonored(t *testing.T) {
	eng := New(DefaultRuleset())
	req := baseRequest(models.IntentFullBody)
	req.Constraints.SessionMinutes = 30
	req.History = []models.WorkoutHistoryEntry{
		historyEntry(2, models.StatusCompleted, "goblet-squat"),
		historyEntry(4, models.StatusCompleted, "db-bench-press"),
		historyEntry(6, models.StatusCompleted, "seated-cable-row"),
	}

	res, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Plan.EstimatedMinutes > 30 {
		infeasible := false
		for _, n := range res.Plan.Notes {
			if strings.Contains(n, "budget") {
				infeasible = true
			}
		}
		if !infeasible {
			t.Errorf("estimate %d exceeds the 30-minute budget with no note",
				res.Plan.EstimatedMinutes)
		}
	}
}

// TestGenerate_PinnedContraindicatedGetsSuggestions verifies a pinned
// exercise that clashes with a pain flag stays in the plan but draws
// substitution advice.
func TestGenerate_PinnedContraindicatedGetsSuggestions(t *testing.T) {
	eng := New(DefaultRuleset())
	req := baseRequest(models.IntentLegs)
	req.History = []models.WorkoutHistoryEntry{
		historyEntry(2, models.StatusCompleted, "goblet-squat"),
		historyEntry(4, models.StatusCompleted, "leg-curl"),
		historyEntry(6, models.StatusCompleted, "romanian-deadlift"),
	}
	req.CheckIn = &models.SessionCheckIn{
		PainFlags: map[models.BodyPart]int{models.BodyPartKnee: 1},
	}
	req.PinnedExerciseIDs = []string{"barbell-back-squat"}

	res, err := eng.Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	found := false
	for _, we := range res.Plan.Exercises() {
		if we.Exercise.ID == "barbell-back-squat" {
			found = true
		}
	}
	if !found {
		t.Fatal("pinned exercise missing from the plan")
	}
	advised := false
	for _, s := range res.Substitutions {
		if s.ExerciseID == "barbell-back-squat" {
			advised = true
		}
	}
	if !advised {
		t.Error("contraindicated pin drew no substitution suggestions")
	}
}
