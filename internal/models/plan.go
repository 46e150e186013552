package models

// Role distinguishes main lifts from accessories in a plan.
type Role string

const (
	RoleMain      Role = "main"
	RoleAccessory Role = "accessory"
	RoleWarmup    Role = "warmup"
)

// SelectionStep records which selector stage chose an exercise.
type SelectionStep string

const (
	StepPin           SelectionStep = "pin"
	StepAnchor        SelectionStep = "anchor"
	StepMainPick      SelectionStep = "main_pick"
	StepAccessoryPick SelectionStep = "accessory_pick"
)

// WorkoutSet is one prescribed set: target reps (optionally a range), a
// perceived-effort target, and rest after the set.
type WorkoutSet struct {
	TargetReps int       `json:"target_reps"`
	RepRange   *RepRange `json:"rep_range,omitempty"`
	TargetRPE  float64   `json:"target_rpe"`
	RestSec    int       `json:"rest_sec"`
	IsWarmup   bool      `json:"is_warmup,omitempty"`
	IsTopSet   bool      `json:"is_top_set,omitempty"`
}

// WorkoutExercise is a selected exercise with its prescribed sets.
type WorkoutExercise struct {
	Exercise Exercise     `json:"exercise"`
	Order    int          `json:"order"`
	Role     Role         `json:"role"`
	Sets     []WorkoutSet `json:"sets"`

	// SupersetGroup pairs two accessories for shared-rest execution. Empty
	// means the exercise runs standalone.
	SupersetGroup string `json:"superset_group,omitempty"`
}

// WorkoutPlan is the final artifact of one generation call. It has no
// lifecycle of its own; persistence happens outside the engine.
type WorkoutPlan struct {
	Warmup           []WorkoutExercise `json:"warmup,omitempty"`
	MainLifts        []WorkoutExercise `json:"main_lifts"`
	Accessories      []WorkoutExercise `json:"accessories"`
	EstimatedMinutes int               `json:"estimated_minutes"`
	Notes            []string          `json:"notes,omitempty"`
}

// Exercises returns main lifts then accessories in plan order.
func (p WorkoutPlan) Exercises() []WorkoutExercise {
	out := make([]WorkoutExercise, 0, len(p.MainLifts)+len(p.Accessories))
	out = append(out, p.MainLifts...)
	out = append(out, p.Accessories...)
	return out
}

// SelectionRationale explains one candidate's scoring outcome.
type SelectionRationale struct {
	Score      float64            `json:"score"`
	Components map[string]float64 `json:"components,omitempty"`
	// FailedFilter names the hard filter that rejected the candidate; empty
	// means it passed all hard filters.
	FailedFilter string `json:"failed_filter,omitempty"`
	// Step is set only for selected exercises.
	Step SelectionStep `json:"step,omitempty"`
}

// SelectionOutput is the selector's result: which exercises fill which slots
// and why. MainLiftIDs and AccessoryIDs are disjoint and together cover
// SelectedExerciseIDs exactly.
type SelectionOutput struct {
	SelectedExerciseIDs []string                      `json:"selected_exercise_ids"`
	MainLiftIDs         []string                      `json:"main_lift_ids"`
	AccessoryIDs        []string                      `json:"accessory_ids"`
	SetPlan             map[string]int                `json:"set_plan"`
	VolumePlan          map[Muscle]float64            `json:"volume_plan"`
	Rationale           map[string]SelectionRationale `json:"rationale"`
}

// SraWarning flags a muscle the plan would hit before its recovery window
// has elapsed.
type SraWarning struct {
	Muscle             Muscle  `json:"muscle"`
	HoursSinceStimulus float64 `json:"hours_since_stimulus"`
	RecoveryHours      float64 `json:"recovery_hours"`
	RecoveryPercent    float64 `json:"recovery_percent"`
	Message            string  `json:"message"`
}

// RankedAlternative is one pain-safe replacement candidate.
type RankedAlternative struct {
	ExerciseID string  `json:"exercise_id"`
	Score      float64 `json:"score"`
}

// SubstitutionSuggestion lists safe alternatives for a selected exercise that
// collides with the user's current pain flags.
type SubstitutionSuggestion struct {
	ExerciseID   string              `json:"exercise_id"`
	BodyPart     BodyPart            `json:"body_part"`
	Alternatives []RankedAlternative `json:"alternatives"`
}
