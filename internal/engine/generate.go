package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/meltforce/liftplan/internal/models"
)

// Request carries everything one generation call needs. Collections are
// read-only snapshots; the engine never mutates caller-owned data.
type Request struct {
	Profile     models.UserProfile
	Goals       models.Goals
	Constraints models.Constraints

	Intent        models.Intent
	TargetMuscles []models.Muscle // body_part intent only

	Catalog []models.Exercise
	History []models.WorkoutHistoryEntry // most recent first

	CheckIn       *models.SessionCheckIn
	Periodization *models.PeriodizationModifiers
	Mesocycle     *models.MesocyclePosition

	PinnedExerciseIDs []string
	SetOverrides      map[string]int

	// Template switches to strict mode: the listed exercises are taken
	// verbatim, no scoring, no automatic substitutions. A non-nil empty
	// template yields a valid empty plan.
	Template []string

	// SlotCount overrides the default exercise slot budget.
	SlotCount int

	// Seed drives tie-breaking. Identical inputs and seed reproduce an
	// identical plan. Rand, when set, overrides the seeded source.
	Seed uint64
	Rand RandSource

	// Now anchors the history windows; zero means time.Now().
	Now time.Time
}

// Result is one generation call's full output.
type Result struct {
	Plan          models.WorkoutPlan
	Selection     models.SelectionOutput
	Warnings      []models.SraWarning
	Substitutions []models.SubstitutionSuggestion
}

// Engine generates workout plans against an injected ruleset. It holds no
// per-call state: one Engine value is safe to share across calls.
type Engine struct {
	rules Ruleset
}

// New creates an Engine with the given rules.
func New(rules Ruleset) *Engine {
	return &Engine{rules: rules}
}

// Generate runs the full pipeline: context, selection, prescription, volume
// caps, time budget, then warnings and substitutions from the final set.
func (e *Engine) Generate(req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	rnd := req.Rand
	if rnd == nil {
		rnd = NewSeededSource(req.Seed)
	}

	ctx := BuildContext(req.History, req.Catalog, req.CheckIn, req.Mesocycle, e.rules, req.Now)
	sel := selectExercises(req, ctx, e.rules, rnd)

	mains, accessories := e.prescribeSelection(req, sel)

	// Demotions during prescription must keep the selection record
	// consistent with the plan.
	syncRoles(&sel, mains, accessories)

	pairSupersets(accessories)

	var notes []string

	accessories, capRemoved := enforceVolumeCaps(mains, accessories, ctx, e.rules)
	for _, id := range capRemoved {
		notes = append(notes, fmt.Sprintf("dropped %s: weekly volume cap reached", id))
	}

	accessories, timeRemoved, budgetNote := enforceTimeBudget(
		mains, accessories, req.Constraints.SessionMinutes, e.rules)
	for _, id := range timeRemoved {
		notes = append(notes, fmt.Sprintf("dropped %s: session time budget", id))
	}
	if budgetNote != "" {
		notes = append(notes, budgetNote)
	}

	reorder(mains, accessories)

	plan := models.WorkoutPlan{
		MainLifts:        mains,
		Accessories:      accessories,
		EstimatedMinutes: estimateMinutes(mains, accessories, e.rules),
		Notes:            notes,
	}

	return &Result{
		Plan:          plan,
		Selection:     sel,
		Warnings:      recoveryWarnings(mains, accessories, ctx),
		Substitutions: substitutions(append(mains, accessories...), req.Catalog, ctx, req.Constraints, req.Template == nil),
	}, nil
}

func validateRequest(req Request) error {
	if req.Template == nil {
		if len(req.Catalog) == 0 {
			return errors.New("exercise catalog is empty")
		}
		if _, ok := models.ParseIntent(string(req.Intent)); !ok {
			return fmt.Errorf("unknown session intent %q", req.Intent)
		}
		if req.Intent == models.IntentBodyPart && len(req.TargetMuscles) == 0 {
			return errors.New("body_part intent requires target muscles")
		}
		for _, m := range req.TargetMuscles {
			if _, ok := models.ParseMuscle(string(m)); !ok {
				return fmt.Errorf("unknown target muscle %q", m)
			}
		}
	}
	if _, ok := models.ParseGoal(string(req.Goals.Primary)); !ok {
		return fmt.Errorf("unknown goal %q", req.Goals.Primary)
	}
	if age := req.Profile.TrainingAge; age != "" {
		if _, ok := models.ParseTrainingAge(string(age)); !ok {
			return fmt.Errorf("unknown training age %q", age)
		}
	}
	return nil
}

// prescribeSelection turns selected IDs into prescribed exercises, applying
// the selection's set plan and handling main-to-accessory demotion.
func (e *Engine) prescribeSelection(req Request, sel models.SelectionOutput) (mains, accessories []models.WorkoutExercise) {
	byID := make(map[string]models.Exercise, len(req.Catalog))
	for _, ex := range req.Catalog {
		byID[ex.ID] = ex
	}

	for _, id := range sel.MainLiftIDs {
		ex, ok := byID[id]
		if !ok {
			continue
		}
		sets, role := prescribe(ex, models.RoleMain, sel.SetPlan[id], req, e.rules)
		we := models.WorkoutExercise{Exercise: ex, Role: role, Sets: sets}
		if role == models.RoleMain {
			mains = append(mains, we)
		} else {
			accessories = append(accessories, we)
		}
	}
	for _, id := range sel.AccessoryIDs {
		ex, ok := byID[id]
		if !ok {
			continue
		}
		sets, role := prescribe(ex, models.RoleAccessory, sel.SetPlan[id], req, e.rules)
		accessories = append(accessories, models.WorkoutExercise{Exercise: ex, Role: role, Sets: sets})
	}

	if len(mains) > 0 {
		mains[0].Sets = append(warmupSets(e.rules), mains[0].Sets...)
	}
	return mains, accessories
}

// syncRoles rewrites the selection's main/accessory id lists to match the
// post-prescription roles, preserving the disjointness invariant.
func syncRoles(sel *models.SelectionOutput, mains, accessories []models.WorkoutExercise) {
	sel.MainLiftIDs = sel.MainLiftIDs[:0:0]
	sel.AccessoryIDs = sel.AccessoryIDs[:0:0]
	for _, we := range mains {
		sel.MainLiftIDs = append(sel.MainLiftIDs, we.Exercise.ID)
	}
	for _, we := range accessories {
		sel.AccessoryIDs = append(sel.AccessoryIDs, we.Exercise.ID)
	}
}

// pairSupersets groups adjacent accessories with disjoint primary muscles
// for shared-rest execution. Main lifts are never grouped.
func pairSupersets(accessories []models.WorkoutExercise) {
	group := 0
	for i := 0; i+1 < len(accessories); i++ {
		if accessories[i].SupersetGroup != "" {
			continue
		}
		for j := i + 1; j < len(accessories); j++ {
			if accessories[j].SupersetGroup != "" {
				continue
			}
			if sharesPrimaryMuscle(accessories[i].Exercise, accessories[j].Exercise) {
				continue
			}
			group++
			id := fmt.Sprintf("ss%d", group)
			accessories[i].SupersetGroup = id
			accessories[j].SupersetGroup = id
			break
		}
	}
}

func sharesPrimaryMuscle(a, b models.Exercise) bool {
	for _, m := range a.PrimaryMuscles {
		if b.HasPrimaryMuscle(m) {
			return true
		}
	}
	return false
}

func reorder(mains, accessories []models.WorkoutExercise) {
	order := 0
	for i := range mains {
		mains[i].Order = order
		order++
	}
	for i := range accessories {
		accessories[i].Order = order
		order++
	}
}
