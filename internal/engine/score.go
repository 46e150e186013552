package engine

import (
	"github.com/meltforce/liftplan/internal/models"
)

// sessionTarget is what the selector scores candidates against: the buckets,
// muscles, and stimulus biases the requested session should hit.
type sessionTarget struct {
	Buckets []models.PatternBucket
	Muscles []models.Muscle
	Biases  []models.StimulusBias
}

// targetFor expands an intent into its target profile. For body_part intent
// the caller's explicit muscle list rules.
func targetFor(intent models.Intent, goal models.Goal, targetMuscles []models.Muscle) sessionTarget {
	t := sessionTarget{Biases: biasesFor(goal)}
	switch intent {
	case models.IntentPush:
		t.Buckets = []models.PatternBucket{models.BucketPush}
		t.Muscles = []models.Muscle{
			models.MuscleChest, models.MuscleFrontDelts, models.MuscleSideDelts, models.MuscleTriceps,
		}
	case models.IntentPull:
		t.Buckets = []models.PatternBucket{models.BucketPull}
		t.Muscles = []models.Muscle{
			models.MuscleLats, models.MuscleTraps, models.MuscleRhomboids,
			models.MuscleRearDelts, models.MuscleBiceps, models.MuscleForearms,
		}
	case models.IntentLegs, models.IntentLower:
		t.Buckets = []models.PatternBucket{models.BucketLower}
		t.Muscles = []models.Muscle{
			models.MuscleQuads, models.MuscleHamstrings, models.MuscleGlutes,
			models.MuscleAdductors, models.MuscleCalves,
		}
	case models.IntentUpper:
		t.Buckets = []models.PatternBucket{models.BucketPush, models.BucketPull}
		t.Muscles = []models.Muscle{
			models.MuscleChest, models.MuscleFrontDelts, models.MuscleSideDelts, models.MuscleTriceps,
			models.MuscleLats, models.MuscleTraps, models.MuscleRhomboids,
			models.MuscleRearDelts, models.MuscleBiceps,
		}
	case models.IntentFullBody:
		t.Buckets = []models.PatternBucket{models.BucketPush, models.BucketPull, models.BucketLower}
		t.Muscles = models.Muscles()
	case models.IntentBodyPart:
		t.Muscles = targetMuscles
	}
	return t
}

// biasesFor maps a goal to the stimulus biases it rewards.
func biasesFor(goal models.Goal) []models.StimulusBias {
	switch goal {
	case models.GoalStrength:
		return []models.StimulusBias{models.BiasLoad}
	case models.GoalHypertrophy:
		return []models.StimulusBias{models.BiasStretch, models.BiasPump}
	case models.GoalFatLoss, models.GoalEndurance:
		return []models.StimulusBias{models.BiasPump}
	default:
		return []models.StimulusBias{models.BiasLoad, models.BiasStability}
	}
}

// scoreCandidate computes the weighted soft score for one candidate and
// returns the component breakdown for the rationale map.
func scoreCandidate(
	ex models.Exercise,
	target sessionTarget,
	ctx *VolumeContext,
	rules Ruleset,
) (float64, map[string]float64) {
	patternOverlap := 0.0
	for _, b := range target.Buckets {
		if ex.HasBucket(b) {
			patternOverlap++
		}
	}

	muscleOverlap := 0.0
	for _, m := range target.Muscles {
		if ex.HasPrimaryMuscle(m) {
			muscleOverlap++
		}
	}

	biasOverlap := 0.0
	for _, b := range target.Biases {
		for _, eb := range ex.StimulusBias {
			if b == eb {
				biasOverlap++
				break
			}
		}
	}

	recency := 1.0
	if ago, ok := ctx.SessionsAgo[ex.ID]; ok && ago >= 1 && ago <= len(rules.RecencyMultipliers) {
		recency = rules.RecencyMultipliers[ago-1]
	}

	novelty := 1.0
	if _, seen := ctx.SessionsAgo[ex.ID]; !seen {
		novelty = rules.NoveltyMultiplier
	}

	base := rules.PatternWeight*patternOverlap +
		rules.MuscleWeight*muscleOverlap +
		rules.StimulusWeight*biasOverlap

	fatiguePenalty := rules.FatiguePenaltyWeight * float64(ex.FatigueCost)
	sfrBonus := rules.SFRBonusWeight * float64(ex.SFROrNeutral())

	score := base*recency*novelty - fatiguePenalty + sfrBonus

	return score, map[string]float64{
		"pattern":  patternOverlap,
		"muscle":   muscleOverlap,
		"stimulus": biasOverlap,
		"recency":  recency,
		"novelty":  novelty,
		"fatigue":  -fatiguePenalty,
		"sfr":      sfrBonus,
	}
}

// hardFilter returns the name of the first hard filter the candidate fails,
// or "" when it passes all of them. Contraindication handling is severity
// >= 1 on any flagged body part.
func hardFilter(
	ex models.Exercise,
	constraints models.Constraints,
	intent models.Intent,
	goal models.Goal,
	target sessionTarget,
	painFlags map[models.BodyPart]int,
) string {
	if !constraints.HasEquipment(ex.Equipment) {
		return "equipment"
	}
	if ex.ContraindicatedBy(painFlags) {
		return "contraindication"
	}
	if intent == models.IntentBodyPart {
		overlap := false
		for _, m := range target.Muscles {
			if ex.HasPrimaryMuscle(m) {
				overlap = true
				break
			}
		}
		if !overlap {
			return "target_muscles"
		}
	}
	// Isolation work with a known-poor stimulus-to-fatigue ratio is wasted
	// time for hypertrophy and fat-loss sessions. Missing SFR data is not
	// evidence of inefficiency, so unscored movements pass.
	if (goal == models.GoalHypertrophy || goal == models.GoalFatLoss) &&
		!ex.IsCompound && ex.SFRScore != nil && *ex.SFRScore <= 1 {
		return "low_sfr"
	}
	return ""
}

// redundantAccessory reports whether cand duplicates an already-selected
// accessory: sharing both a primary muscle and a movement-pattern bucket.
func redundantAccessory(cand models.Exercise, selected []models.Exercise) bool {
	for _, s := range selected {
		shareMuscle := false
		for _, m := range cand.PrimaryMuscles {
			if s.HasPrimaryMuscle(m) {
				shareMuscle = true
				break
			}
		}
		if !shareMuscle {
			continue
		}
		for _, p := range cand.Patterns {
			if s.HasBucket(p.Bucket()) {
				return true
			}
		}
	}
	return false
}
