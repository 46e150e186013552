package engine

import (
	"math"

	"github.com/meltforce/liftplan/internal/models"
)

const (
	baseRPE       = 8.0
	deloadRPE     = 6.0
	minRPE        = 5.0
	maxRPE        = 10.0
	backoffRPECap = 2.0
)

// baseSetCount resolves working sets for a slot from training age, role, and
// current readiness. Low readiness sheds a set but never drops below one
// working set; beginners are hard-capped.
func baseSetCount(role models.Role, age models.TrainingAge, readiness int, rules Ruleset) int {
	byRole, ok := rules.BaseSetCounts[age]
	if !ok {
		byRole = rules.BaseSetCounts[models.AgeIntermediate]
	}
	count := byRole[role]
	if count == 0 {
		count = 3
	}

	if readiness <= 2 {
		count--
	}
	if age == models.AgeBeginner && count > rules.BeginnerSetCap {
		count = rules.BeginnerSetCap
	}
	if count < 1 {
		count = 1
	}
	return count
}

// prescribe turns a selected exercise into its ordered working sets. setCount
// comes from the selection's set plan (already readiness- and
// override-adjusted); periodization modifiers are applied on top.
func prescribe(
	ex models.Exercise,
	role models.Role,
	setCount int,
	req Request,
	rules Ruleset,
) ([]models.WorkoutSet, models.Role) {
	goal := req.Goals.Primary
	mods := req.Periodization

	band := rules.accessoryBand(goal)
	if role == models.RoleMain {
		mainBand := rules.mainBand(goal)
		if ex.RepRange != nil && !ex.RepRange.Overlaps(mainBand) {
			// A nominal main lift whose native range cannot reach the
			// goal band gets accessory prescription instead of an
			// ill-fitting main slot.
			role = models.RoleAccessory
			setCount = 3
		} else {
			band = mainBand
		}
	}

	if ex.RepRange != nil {
		band = models.RepRange{
			Min: ex.RepRange.Clamp(band.Min),
			Max: ex.RepRange.Clamp(band.Max),
		}
	}
	targetReps := (band.Min + band.Max) / 2
	if targetReps < band.Min {
		targetReps = band.Min
	}

	if mods != nil {
		if mods.SetMultiplier > 0 {
			setCount = int(math.Round(float64(setCount) * mods.SetMultiplier))
		}
		if mods.IsDeload {
			setCount = (setCount + 1) / 2
		}
	}
	if setCount < 1 {
		setCount = 1
	}

	rpe := targetRPE(ex, role, goal, mods, rules)
	rest := rules.restFor(role, targetReps)

	sets := make([]models.WorkoutSet, 0, setCount)
	bandCopy := band
	for i := 0; i < setCount; i++ {
		set := models.WorkoutSet{
			TargetReps: targetReps,
			RepRange:   &bandCopy,
			TargetRPE:  rpe,
			RestSec:    rest,
			IsTopSet:   i == 0,
		}
		if i > 0 && mods != nil && mods.BackOffMultiplier > 0 && mods.BackOffMultiplier < 1 {
			drop := (1 - mods.BackOffMultiplier) * 10
			if drop > backoffRPECap {
				drop = backoffRPECap
			}
			set.TargetRPE = clampRPE(rpe - drop)
		}
		sets = append(sets, set)
	}
	return sets, role
}

// targetRPE resolves a set's effort target: base RPE plus periodization
// offsets. Within a lifecycle RIR band, compounds get the low-RIR high-effort
// end while accessories sit at the high-RIR end and absorb the fatigue
// variance.
func targetRPE(
	ex models.Exercise,
	role models.Role,
	goal models.Goal,
	mods *models.PeriodizationModifiers,
	rules Ruleset,
) float64 {
	rpe := baseRPE

	if mods != nil {
		if mods.IsDeload {
			rpe = deloadRPE
		}
		if mods.LifecycleRIRTarget != nil {
			rir := mods.LifecycleRIRTarget.Max
			if role == models.RoleMain && ex.IsCompound {
				rir = mods.LifecycleRIRTarget.Min
			}
			rpe = 10 - rir
		}
		rpe += mods.RPEOffset
	}

	// Low-skill isolation work tolerates being pushed closer to failure.
	if goal == models.GoalHypertrophy && !ex.IsCompound && role == models.RoleAccessory {
		rpe += rules.HypertrophyIsolationRPEBump
	}

	return clampRPE(rpe)
}

func clampRPE(rpe float64) float64 {
	if rpe < minRPE {
		return minRPE
	}
	if rpe > maxRPE {
		return maxRPE
	}
	return rpe
}

// warmupSets projects ramp-in sets for the session's first main lift.
func warmupSets(rules Ruleset) []models.WorkoutSet {
	return []models.WorkoutSet{
		{TargetReps: 8, TargetRPE: minRPE, RestSec: rules.WarmupRestSec, IsWarmup: true},
		{TargetReps: 5, TargetRPE: minRPE + 1, RestSec: rules.WarmupRestSec, IsWarmup: true},
	}
}
