package engine

import (
	"sort"

	"github.com/meltforce/liftplan/internal/models"
)

const maxAlternatives = 3

// blockedSubstituteTags are split tags that never serve as strength-work
// replacements.
var blockedSubstituteTags = []models.SplitTag{
	models.SplitMobility, models.SplitPrehab, models.SplitCore, models.SplitConditioning,
}

// substitutions ranks pain-safe alternatives for every selected exercise
// whose contraindications intersect the user's current pain flags. Flexible
// mode only: strict/template sessions never swap the user's choices.
func substitutions(
	selected []models.WorkoutExercise,
	catalog []models.Exercise,
	ctx *VolumeContext,
	constraints models.Constraints,
	flexible bool,
) []models.SubstitutionSuggestion {
	if !flexible || len(ctx.Fatigue.PainFlags) == 0 {
		return nil
	}

	selectedIDs := make(map[string]bool, len(selected))
	for _, we := range selected {
		selectedIDs[we.Exercise.ID] = true
	}

	var suggestions []models.SubstitutionSuggestion
	for _, we := range selected {
		ex := we.Exercise
		if !ex.ContraindicatedBy(ctx.Fatigue.PainFlags) {
			continue
		}
		part := flaggedPart(ex, ctx.Fatigue.PainFlags)

		var ranked []models.RankedAlternative
		for _, cand := range catalog {
			if cand.ID == ex.ID || selectedIDs[cand.ID] {
				continue
			}
			if !substituteEligible(cand, ex, ctx.Fatigue.PainFlags, constraints) {
				continue
			}
			ranked = append(ranked, models.RankedAlternative{
				ExerciseID: cand.ID,
				Score:      substituteScore(cand, ex),
			})
		}

		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Score != ranked[j].Score {
				return ranked[i].Score > ranked[j].Score
			}
			return ranked[i].ExerciseID < ranked[j].ExerciseID
		})
		if len(ranked) > maxAlternatives {
			ranked = ranked[:maxAlternatives]
		}

		suggestions = append(suggestions, models.SubstitutionSuggestion{
			ExerciseID:   ex.ID,
			BodyPart:     part,
			Alternatives: ranked,
		})
	}
	return suggestions
}

// SuggestSubstitutions ranks pain-safe alternatives for the given exercises
// outside a full generation call. Exercises that do not collide with the pain
// flags produce no suggestion.
func (e *Engine) SuggestSubstitutions(
	exercises []models.Exercise,
	catalog []models.Exercise,
	painFlags map[models.BodyPart]int,
	constraints models.Constraints,
) []models.SubstitutionSuggestion {
	ctx := &VolumeContext{Fatigue: FatigueState{PainFlags: painFlags}}
	selected := make([]models.WorkoutExercise, 0, len(exercises))
	for _, ex := range exercises {
		selected = append(selected, models.WorkoutExercise{Exercise: ex})
	}
	return substitutions(selected, catalog, ctx, constraints, true)
}

func flaggedPart(ex models.Exercise, painFlags map[models.BodyPart]int) models.BodyPart {
	for _, bp := range ex.Contraindications {
		if painFlags[bp] >= 1 {
			return bp
		}
	}
	return models.BodyPartUnknown
}

// substituteEligible keeps candidates that share a split tag with the
// original, are not mobility/prehab/core/conditioning work, are safe under
// the current pain flags, and fit the available equipment.
func substituteEligible(
	cand, original models.Exercise,
	painFlags map[models.BodyPart]int,
	constraints models.Constraints,
) bool {
	for _, tag := range blockedSubstituteTags {
		if cand.HasSplitTag(tag) {
			return false
		}
	}
	if cand.ContraindicatedBy(painFlags) {
		return false
	}
	if !constraints.HasEquipment(cand.Equipment) {
		return false
	}
	shareTag := len(original.SplitTags) == 0
	for _, tag := range original.SplitTags {
		if cand.HasSplitTag(tag) {
			shareTag = true
			break
		}
	}
	return shareTag
}

// substituteScore ranks how well cand replaces original: pattern overlap
// weighted 4, primary-muscle overlap 3, stimulus overlap 2, plus a bonus when
// the replacement is cheaper to recover from.
func substituteScore(cand, original models.Exercise) float64 {
	patterns := 0.0
	for _, p := range original.Patterns {
		if cand.HasPattern(p) {
			patterns++
		}
	}
	muscles := 0.0
	for _, m := range original.PrimaryMuscles {
		if cand.HasPrimaryMuscle(m) {
			muscles++
		}
	}
	stimulus := 0.0
	for _, b := range original.StimulusBias {
		for _, cb := range cand.StimulusBias {
			if b == cb {
				stimulus++
				break
			}
		}
	}
	fatigueDelta := float64(original.FatigueCost - cand.FatigueCost)
	if fatigueDelta < 0 {
		fatigueDelta = 0
	}
	return 4*patterns + 3*muscles + 2*stimulus + fatigueDelta
}
