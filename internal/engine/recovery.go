package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/meltforce/liftplan/internal/models"
)

// recoveryWarnings flags muscles the plan trains before their
// stimulus-recovery window has elapsed. Requires enhanced landmark states;
// without them there is no recovery model to compare against.
func recoveryWarnings(mains, accessories []models.WorkoutExercise, ctx *VolumeContext) []models.SraWarning {
	if !ctx.Enhanced() {
		return nil
	}

	trained := make(map[models.Muscle]bool)
	for _, list := range [][]models.WorkoutExercise{mains, accessories} {
		for _, we := range list {
			for _, m := range we.Exercise.PrimaryMuscles {
				trained[m] = true
			}
		}
	}

	var warnings []models.SraWarning
	for m := range trained {
		state, ok := ctx.States[m]
		if !ok || state.LastStimulus.IsZero() || state.Landmarks.RecoveryHours <= 0 {
			continue
		}
		hoursSince := ctx.Now.Sub(state.LastStimulus).Hours()
		if hoursSince >= state.Landmarks.RecoveryHours {
			continue
		}
		pct := math.Round(hoursSince / state.Landmarks.RecoveryHours * 100)
		warnings = append(warnings, models.SraWarning{
			Muscle:             m,
			HoursSinceStimulus: math.Round(hoursSince*10) / 10,
			RecoveryHours:      state.Landmarks.RecoveryHours,
			RecoveryPercent:    pct,
			Message: fmt.Sprintf("%s is about %.0f%% recovered (last trained %.0fh ago, needs %.0fh)",
				m, pct, hoursSince, state.Landmarks.RecoveryHours),
		})
	}

	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Muscle < warnings[j].Muscle })
	return warnings
}
