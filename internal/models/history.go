package models

import (
	"time"

	"github.com/google/uuid"
)

// PerformedSet is one logged set of a past session.
type PerformedSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
	IsWarmup bool    `json:"is_warmup,omitempty"`
}

// PerformedExercise is one exercise of a past session with its logged sets.
type PerformedExercise struct {
	ExerciseID string         `json:"exercise_id"`
	Sets       []PerformedSet `json:"sets"`
}

// WorkoutHistoryEntry is a past session as loaded from storage. Entries are
// read-only input to the engine, ordered most recent first.
type WorkoutHistoryEntry struct {
	ID        uuid.UUID           `json:"id"`
	Date      time.Time           `json:"date"`
	Status    CompletionStatus    `json:"status"`
	Readiness *int                `json:"readiness,omitempty"`
	PainFlags map[BodyPart]int    `json:"pain_flags,omitempty"`
	Performed []PerformedExercise `json:"performed"`
}

// SessionCheckIn is an optional pre-session self-report. Pain flag severity
// runs 0 (none) to 3 (sharp).
type SessionCheckIn struct {
	Readiness *int             `json:"readiness,omitempty"`
	Soreness  []string         `json:"soreness,omitempty"`
	PainFlags map[BodyPart]int `json:"pain_flags,omitempty"`
}

// UserProfile carries the slow-changing facts about a lifter.
type UserProfile struct {
	TrainingAge TrainingAge `json:"training_age"`
	Injuries    []BodyPart  `json:"injuries,omitempty"`
}

// Goals is the user's goal stack. Secondary may be empty.
type Goals struct {
	Primary   Goal `json:"primary"`
	Secondary Goal `json:"secondary,omitempty"`
}

// Constraints bound what a session may use and how long it may run.
type Constraints struct {
	DaysPerWeek    int         `json:"days_per_week"`
	SessionMinutes int         `json:"session_minutes"`
	Equipment      []Equipment `json:"equipment"`
	Split          SplitTag    `json:"split,omitempty"`
}

// HasEquipment reports whether every piece of required equipment is available.
// An empty requirement (bodyweight-only catalog rows) always passes.
func (c Constraints) HasEquipment(required []Equipment) bool {
	for _, req := range required {
		if req == EquipmentBodyweight {
			continue
		}
		found := false
		for _, have := range c.Equipment {
			if have == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MesocyclePosition locates a session inside a training block.
type MesocyclePosition struct {
	Week   int `json:"week"`   // 1-based
	Length int `json:"length"` // weeks in the block
}

// RIRBand is a reps-in-reserve target band.
type RIRBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PeriodizationModifiers adjust prescription inside a mesocycle. Zero values
// mean "no adjustment"; callers that want a literal zero multiplier should not
// exist.
type PeriodizationModifiers struct {
	SetMultiplier      float64  `json:"set_multiplier,omitempty"`
	RPEOffset          float64  `json:"rpe_offset,omitempty"`
	BackOffMultiplier  float64  `json:"back_off_multiplier,omitempty"`
	IsDeload           bool     `json:"is_deload,omitempty"`
	LifecycleRIRTarget *RIRBand `json:"lifecycle_rir_target,omitempty"`
}

// VolumeLandmarks are the per-muscle weekly set thresholds: maintenance,
// minimum effective, maximum adaptive, and maximum recoverable volume, plus
// the stimulus-recovery window in hours.
type VolumeLandmarks struct {
	MV            float64 `json:"mv" yaml:"mv"`
	MEV           float64 `json:"mev" yaml:"mev"`
	MAV           float64 `json:"mav" yaml:"mav"`
	MRV           float64 `json:"mrv" yaml:"mrv"`
	RecoveryHours float64 `json:"recovery_hours" yaml:"recovery_hours"`
}
