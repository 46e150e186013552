package engine

import (
	"github.com/meltforce/liftplan/internal/models"
)

// enforceVolumeCaps removes accessories, lowest retention first, until no
// muscle's projected weekly sets exceed its cap. With enhanced landmarks the
// cap is the muscle's MRV; otherwise it falls back to a ratio over the
// previous week's baseline. Greedy and iterative: one accessory per pass,
// then re-project.
func enforceVolumeCaps(
	mains, accessories []models.WorkoutExercise,
	ctx *VolumeContext,
	rules Ruleset,
) (kept []models.WorkoutExercise, removed []string) {
	kept = accessories

	for len(kept) > 0 {
		if !anyCapExceeded(mains, kept, ctx, rules) {
			break
		}
		id, ok := popLowestRetention(mains, kept)
		if !ok {
			break
		}
		kept = removeByID(kept, id)
		removed = append(removed, id)
	}
	return kept, removed
}

// anyCapExceeded projects total weekly sets per muscle (recent history plus
// this session) against the per-muscle cap.
func anyCapExceeded(mains, accessories []models.WorkoutExercise, ctx *VolumeContext, rules Ruleset) bool {
	projected := make(map[models.Muscle]float64, len(ctx.Recent))
	for m, sets := range ctx.Recent {
		projected[m] = sets
	}
	for _, list := range [][]models.WorkoutExercise{mains, accessories} {
		for _, we := range list {
			working := workingSetCount(we)
			for _, m := range we.Exercise.PrimaryMuscles {
				projected[m] += float64(working)
			}
			for _, m := range we.Exercise.SecondaryMuscles {
				projected[m] += rules.IndirectWeight * float64(working)
			}
		}
	}

	for m, total := range projected {
		ceiling, ok := capFor(m, ctx, rules)
		if ok && total > ceiling {
			return true
		}
	}
	return false
}

// capFor resolves the weekly ceiling for a muscle. Without enhanced
// landmarks, a muscle with no previous-week baseline has no cap: there is
// nothing to anchor the ratio to.
func capFor(m models.Muscle, ctx *VolumeContext, rules Ruleset) (float64, bool) {
	if ctx.Enhanced() {
		if state, ok := ctx.States[m]; ok {
			return state.Landmarks.MRV, true
		}
	}
	baseline := ctx.Previous[m]
	if baseline <= 0 {
		return 0, false
	}
	return rules.PrevBaselineCapRatio * baseline, true
}

func workingSetCount(we models.WorkoutExercise) int {
	n := 0
	for _, s := range we.Sets {
		if !s.IsWarmup {
			n++
		}
	}
	return n
}

func removeByID(list []models.WorkoutExercise, id string) []models.WorkoutExercise {
	out := list[:0:0]
	for _, we := range list {
		if we.Exercise.ID != id {
			out = append(out, we)
		}
	}
	return out
}
