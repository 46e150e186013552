package models

import "strings"

// MovementPattern classifies how an exercise moves load through space.
// Push and pull split into vertical/horizontal sub-variants because the
// selector targets them separately (an overhead press does not satisfy a
// horizontal-push slot).
type MovementPattern string

const (
	PatternHorizontalPush MovementPattern = "horizontal_push"
	PatternVerticalPush   MovementPattern = "vertical_push"
	PatternHorizontalPull MovementPattern = "horizontal_pull"
	PatternVerticalPull   MovementPattern = "vertical_pull"
	PatternSquat          MovementPattern = "squat"
	PatternHinge          MovementPattern = "hinge"
	PatternLunge          MovementPattern = "lunge"
	PatternCarry          MovementPattern = "carry"
	PatternRotation       MovementPattern = "rotation"
	PatternUnknown        MovementPattern = "unknown"
)

// PatternBucket is the coarse grouping used for full-body balancing and
// redundancy checks: every pattern maps to push, pull, lower, or other.
type PatternBucket string

const (
	BucketPush  PatternBucket = "push"
	BucketPull  PatternBucket = "pull"
	BucketLower PatternBucket = "lower"
	BucketOther PatternBucket = "other"
)

// Bucket maps a movement pattern to its coarse bucket.
func (p MovementPattern) Bucket() PatternBucket {
	switch p {
	case PatternHorizontalPush, PatternVerticalPush:
		return BucketPush
	case PatternHorizontalPull, PatternVerticalPull:
		return BucketPull
	case PatternSquat, PatternHinge, PatternLunge:
		return BucketLower
	default:
		return BucketOther
	}
}

// Muscle identifies one of the canonical muscles the volume tracker knows
// landmarks for.
type Muscle string

const (
	MuscleChest      Muscle = "chest"
	MuscleFrontDelts Muscle = "front_delts"
	MuscleSideDelts  Muscle = "side_delts"
	MuscleRearDelts  Muscle = "rear_delts"
	MuscleLats       Muscle = "lats"
	MuscleTraps      Muscle = "traps"
	MuscleRhomboids  Muscle = "rhomboids"
	MuscleBiceps     Muscle = "biceps"
	MuscleTriceps    Muscle = "triceps"
	MuscleForearms   Muscle = "forearms"
	MuscleAbs        Muscle = "abs"
	MuscleObliques   Muscle = "obliques"
	MuscleLowerBack  Muscle = "lower_back"
	MuscleQuads      Muscle = "quads"
	MuscleHamstrings Muscle = "hamstrings"
	MuscleGlutes     Muscle = "glutes"
	MuscleAdductors  Muscle = "adductors"
	MuscleCalves     Muscle = "calves"
	MuscleUnknown    Muscle = "unknown"
)

// Equipment identifies what an exercise needs to be performed.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentBand       Equipment = "band"
	EquipmentBench      Equipment = "bench"
	EquipmentPullupBar  Equipment = "pullup_bar"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentUnknown    Equipment = "unknown"
)

// SplitTag marks which session templates an exercise belongs to.
type SplitTag string

const (
	SplitPush         SplitTag = "push"
	SplitPull         SplitTag = "pull"
	SplitLegs         SplitTag = "legs"
	SplitCore         SplitTag = "core"
	SplitMobility     SplitTag = "mobility"
	SplitPrehab       SplitTag = "prehab"
	SplitConditioning SplitTag = "conditioning"
	SplitUnknown      SplitTag = "unknown"
)

// StimulusBias describes the kind of stimulus an exercise is best at.
type StimulusBias string

const (
	BiasStretch   StimulusBias = "stretch"
	BiasPump      StimulusBias = "pump"
	BiasLoad      StimulusBias = "load"
	BiasStability StimulusBias = "stability"
	BiasUnknown   StimulusBias = "unknown"
)

// BodyPart identifies a joint or region for pain flags and contraindications.
type BodyPart string

const (
	BodyPartShoulder  BodyPart = "shoulder"
	BodyPartElbow     BodyPart = "elbow"
	BodyPartWrist     BodyPart = "wrist"
	BodyPartNeck      BodyPart = "neck"
	BodyPartLowerBack BodyPart = "lower_back"
	BodyPartHip       BodyPart = "hip"
	BodyPartKnee      BodyPart = "knee"
	BodyPartAnkle     BodyPart = "ankle"
	BodyPartUnknown   BodyPart = "unknown"
)

// Goal is a training goal.
type Goal string

const (
	GoalStrength       Goal = "strength"
	GoalHypertrophy    Goal = "hypertrophy"
	GoalFatLoss        Goal = "fat_loss"
	GoalEndurance      Goal = "endurance"
	GoalGeneralFitness Goal = "general_fitness"
	GoalUnknown        Goal = "unknown"
)

// TrainingAge buckets a lifter's experience.
type TrainingAge string

const (
	AgeBeginner     TrainingAge = "beginner"
	AgeIntermediate TrainingAge = "intermediate"
	AgeAdvanced     TrainingAge = "advanced"
)

// Intent describes what kind of session the caller wants.
type Intent string

const (
	IntentPush     Intent = "push"
	IntentPull     Intent = "pull"
	IntentLegs     Intent = "legs"
	IntentUpper    Intent = "upper"
	IntentLower    Intent = "lower"
	IntentFullBody Intent = "full_body"
	IntentBodyPart Intent = "body_part"
)

// CompletionStatus records how a logged session ended.
type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusPartial   CompletionStatus = "partial"
	StatusSkipped   CompletionStatus = "skipped"
)

var knownPatterns = map[string]MovementPattern{
	"horizontal_push": PatternHorizontalPush,
	"vertical_push":   PatternVerticalPush,
	"horizontal_pull": PatternHorizontalPull,
	"vertical_pull":   PatternVerticalPull,
	"squat":           PatternSquat,
	"hinge":           PatternHinge,
	"lunge":           PatternLunge,
	"carry":           PatternCarry,
	"rotation":        PatternRotation,
}

var knownMuscles = map[string]Muscle{
	"chest": MuscleChest, "front_delts": MuscleFrontDelts, "side_delts": MuscleSideDelts,
	"rear_delts": MuscleRearDelts, "lats": MuscleLats, "traps": MuscleTraps,
	"rhomboids": MuscleRhomboids, "biceps": MuscleBiceps, "triceps": MuscleTriceps,
	"forearms": MuscleForearms, "abs": MuscleAbs, "obliques": MuscleObliques,
	"lower_back": MuscleLowerBack, "quads": MuscleQuads, "hamstrings": MuscleHamstrings,
	"glutes": MuscleGlutes, "adductors": MuscleAdductors, "calves": MuscleCalves,
}

var knownEquipment = map[string]Equipment{
	"barbell": EquipmentBarbell, "dumbbell": EquipmentDumbbell, "kettlebell": EquipmentKettlebell,
	"cable": EquipmentCable, "machine": EquipmentMachine, "band": EquipmentBand,
	"bench": EquipmentBench, "pullup_bar": EquipmentPullupBar, "bodyweight": EquipmentBodyweight,
}

var knownSplitTags = map[string]SplitTag{
	"push": SplitPush, "pull": SplitPull, "legs": SplitLegs, "core": SplitCore,
	"mobility": SplitMobility, "prehab": SplitPrehab, "conditioning": SplitConditioning,
}

var knownBiases = map[string]StimulusBias{
	"stretch": BiasStretch, "pump": BiasPump, "load": BiasLoad, "stability": BiasStability,
}

var knownBodyParts = map[string]BodyPart{
	"shoulder": BodyPartShoulder, "elbow": BodyPartElbow, "wrist": BodyPartWrist,
	"neck": BodyPartNeck, "lower_back": BodyPartLowerBack, "hip": BodyPartHip,
	"knee": BodyPartKnee, "ankle": BodyPartAnkle,
}

var knownGoals = map[string]Goal{
	"strength": GoalStrength, "hypertrophy": GoalHypertrophy, "fat_loss": GoalFatLoss,
	"endurance": GoalEndurance, "general_fitness": GoalGeneralFitness,
}

var knownAges = map[string]TrainingAge{
	"beginner": AgeBeginner, "intermediate": AgeIntermediate, "advanced": AgeAdvanced,
}

var knownIntents = map[string]Intent{
	"push": IntentPush, "pull": IntentPull, "legs": IntentLegs, "upper": IntentUpper,
	"lower": IntentLower, "full_body": IntentFullBody, "body_part": IntentBodyPart,
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseMovementPattern resolves a raw string to a pattern. Unknown values
// return PatternUnknown with known=false so loaders can reject them.
func ParseMovementPattern(s string) (MovementPattern, bool) {
	p, ok := knownPatterns[normalizeKey(s)]
	if !ok {
		return PatternUnknown, false
	}
	return p, true
}

// ParseMuscle resolves a raw string to a canonical muscle.
func ParseMuscle(s string) (Muscle, bool) {
	m, ok := knownMuscles[normalizeKey(s)]
	if !ok {
		return MuscleUnknown, false
	}
	return m, true
}

// ParseEquipment resolves a raw string to an equipment tag.
func ParseEquipment(s string) (Equipment, bool) {
	e, ok := knownEquipment[normalizeKey(s)]
	if !ok {
		return EquipmentUnknown, false
	}
	return e, true
}

// ParseSplitTag resolves a raw string to a split tag.
func ParseSplitTag(s string) (SplitTag, bool) {
	t, ok := knownSplitTags[normalizeKey(s)]
	if !ok {
		return SplitUnknown, false
	}
	return t, true
}

// ParseStimulusBias resolves a raw string to a stimulus bias.
func ParseStimulusBias(s string) (StimulusBias, bool) {
	b, ok := knownBiases[normalizeKey(s)]
	if !ok {
		return BiasUnknown, false
	}
	return b, true
}

// ParseBodyPart resolves a raw string to a body part.
func ParseBodyPart(s string) (BodyPart, bool) {
	b, ok := knownBodyParts[normalizeKey(s)]
	if !ok {
		return BodyPartUnknown, false
	}
	return b, true
}

// ParseGoal resolves a raw string to a goal.
func ParseGoal(s string) (Goal, bool) {
	g, ok := knownGoals[normalizeKey(s)]
	if !ok {
		return GoalUnknown, false
	}
	return g, true
}

// ParseTrainingAge resolves a raw string to a training age.
func ParseTrainingAge(s string) (TrainingAge, bool) {
	a, ok := knownAges[normalizeKey(s)]
	if !ok {
		return "", false
	}
	return a, true
}

// ParseIntent resolves a raw string to a session intent.
func ParseIntent(s string) (Intent, bool) {
	i, ok := knownIntents[normalizeKey(s)]
	if !ok {
		return "", false
	}
	return i, true
}

// Muscles returns all canonical muscles in a stable order.
func Muscles() []Muscle {
	return []Muscle{
		MuscleChest, MuscleFrontDelts, MuscleSideDelts, MuscleRearDelts,
		MuscleLats, MuscleTraps, MuscleRhomboids, MuscleBiceps, MuscleTriceps,
		MuscleForearms, MuscleAbs, MuscleObliques, MuscleLowerBack,
		MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleAdductors, MuscleCalves,
	}
}
