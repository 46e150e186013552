package engine

import (
	"time"

	"github.com/meltforce/liftplan/internal/models"
)

// MuscleVolumeState is one muscle's derived weekly volume position against
// its landmarks. Recomputed fresh on every generation call.
type MuscleVolumeState struct {
	DirectSets   float64
	IndirectSets float64
	Landmarks    models.VolumeLandmarks
	// TargetSets is the mesocycle-interpolated weekly target.
	TargetSets float64
	// LastStimulus is the most recent session that loaded this muscle
	// directly. Zero when the muscle has no logged stimulus.
	LastStimulus time.Time
}

// FatigueState is the readiness snapshot derived once per call.
type FatigueState struct {
	Readiness         int
	Soreness          []string
	MissedLastSession bool
	PainFlags         map[models.BodyPart]int
}

// VolumeContext aggregates training history into per-muscle weekly set counts
// plus the current fatigue snapshot. Recent covers the last 7 days, Previous
// the 7 days before that. Recent counts include secondary-muscle credit at
// the ruleset's indirect weight; Previous counts are direct only.
type VolumeContext struct {
	Recent   map[models.Muscle]float64
	Previous map[models.Muscle]float64

	// States carries landmark-aware per-muscle records. Nil unless a
	// mesocycle position was supplied (graceful degradation for callers
	// without periodization context).
	States map[models.Muscle]*MuscleVolumeState

	Fatigue FatigueState
	Now     time.Time

	// SessionsAgo maps exercise ID to how many sessions back it last
	// appeared (1 = most recent session). Absent means not in the window.
	SessionsAgo map[string]int
}

// Enhanced reports whether landmark states are available.
func (c *VolumeContext) Enhanced() bool {
	return c.States != nil
}

const (
	recentWindow     = 7 * 24 * time.Hour
	previousWindow   = 14 * 24 * time.Hour
	neutralReadiness = 3
)

// BuildContext scans history and derives the volume and fatigue context for
// one generation call. Exercises are resolved through the catalog; sets
// logged against unknown exercise IDs are skipped. meso may be nil.
func BuildContext(
	history []models.WorkoutHistoryEntry,
	catalog []models.Exercise,
	checkIn *models.SessionCheckIn,
	meso *models.MesocyclePosition,
	rules Ruleset,
	now time.Time,
) *VolumeContext {
	byID := make(map[string]models.Exercise, len(catalog))
	for _, ex := range catalog {
		byID[ex.ID] = ex
	}

	ctx := &VolumeContext{
		Recent:      make(map[models.Muscle]float64),
		Previous:    make(map[models.Muscle]float64),
		Now:         now,
		SessionsAgo: make(map[string]int),
	}

	lastStimulus := make(map[models.Muscle]time.Time)
	direct := make(map[models.Muscle]float64)

	sessionIdx := 0
	for _, entry := range history {
		age := now.Sub(entry.Date)
		if age < 0 || age >= previousWindow {
			continue
		}
		recent := age < recentWindow

		if recent {
			sessionIdx++
		}

		for _, pe := range entry.Performed {
			ex, ok := byID[pe.ExerciseID]
			if !ok {
				continue
			}
			if recent {
				if _, seen := ctx.SessionsAgo[pe.ExerciseID]; !seen {
					ctx.SessionsAgo[pe.ExerciseID] = sessionIdx
				}
			}
			working := 0
			for _, set := range pe.Sets {
				if !set.IsWarmup {
					working++
				}
			}
			if working == 0 {
				continue
			}
			for _, m := range ex.PrimaryMuscles {
				if recent {
					ctx.Recent[m] += float64(working)
					direct[m] += float64(working)
				} else {
					ctx.Previous[m] += float64(working)
				}
				if entry.Date.After(lastStimulus[m]) {
					lastStimulus[m] = entry.Date
				}
			}
			if recent {
				for _, m := range ex.SecondaryMuscles {
					ctx.Recent[m] += rules.IndirectWeight * float64(working)
				}
			}
		}
	}

	if meso != nil {
		ctx.States = make(map[models.Muscle]*MuscleVolumeState, len(rules.Landmarks))
		for _, m := range models.Muscles() {
			lm, ok := rules.Landmarks[m]
			if !ok {
				continue
			}
			ctx.States[m] = &MuscleVolumeState{
				DirectSets:   direct[m],
				IndirectSets: ctx.Recent[m] - direct[m],
				Landmarks:    lm,
				TargetSets:   interpolateTarget(lm, *meso),
				LastStimulus: lastStimulus[m],
			}
		}
	}

	ctx.Fatigue = deriveFatigue(history, checkIn)
	return ctx
}

// interpolateTarget ramps the weekly target linearly from MEV in week 1 to
// MAV in the final week. A 1-week block returns MAV outright rather than
// dividing by zero.
func interpolateTarget(lm models.VolumeLandmarks, meso models.MesocyclePosition) float64 {
	if meso.Length <= 1 {
		return lm.MAV
	}
	frac := float64(meso.Week-1) / float64(meso.Length-1)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return lm.MEV + (lm.MAV-lm.MEV)*frac
}

// deriveFatigue resolves readiness and pain flags: the check-in wins, then
// the most recent history entry, then neutral defaults. missedLastSession is
// true only for an explicit skip, not a merely incomplete session.
func deriveFatigue(history []models.WorkoutHistoryEntry, checkIn *models.SessionCheckIn) FatigueState {
	f := FatigueState{Readiness: neutralReadiness}

	var last *models.WorkoutHistoryEntry
	if len(history) > 0 {
		last = &history[0]
		for i := 1; i < len(history); i++ {
			if history[i].Date.After(last.Date) {
				last = &history[i]
			}
		}
	}

	if checkIn != nil && checkIn.Readiness != nil {
		f.Readiness = *checkIn.Readiness
	} else if last != nil && last.Readiness != nil {
		f.Readiness = *last.Readiness
	}

	if checkIn != nil {
		f.Soreness = checkIn.Soreness
	}

	if last != nil {
		f.MissedLastSession = last.Status == models.StatusSkipped
	}

	switch {
	case checkIn != nil && len(checkIn.PainFlags) > 0:
		f.PainFlags = checkIn.PainFlags
	case last != nil && len(last.PainFlags) > 0:
		f.PainFlags = last.PainFlags
	default:
		f.PainFlags = map[models.BodyPart]int{}
	}

	return f
}
