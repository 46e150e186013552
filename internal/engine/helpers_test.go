package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/models"
)

func intPtr(v int) *int { return &v }

// testNow is a fixed clock so history-window math is stable in tests.
var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func allEquipment() []models.Equipment {
	return []models.Equipment{
		models.EquipmentBarbell, models.EquipmentDumbbell, models.EquipmentCable,
		models.EquipmentMachine, models.EquipmentBench, models.EquipmentPullupBar,
		models.EquipmentBodyweight,
	}
}

func testConstraints() models.Constraints {
	return models.Constraints{
		DaysPerWeek:    4,
		SessionMinutes: 75,
		Equipment:      allEquipment(),
	}
}

// testCatalog is a small but realistic exercise pool. IDs line up with the
// default starter packs so cold-start paths are exercised.
func testCatalog() []models.Exercise {
	return []models.Exercise{
		{
			ID: "pushup", Name: "Push-Up",
			Patterns:       []models.MovementPattern{models.PatternHorizontalPush},
			PrimaryMuscles: []models.Muscle{models.MuscleChest},
			SecondaryMuscles: []models.Muscle{
				models.MuscleTriceps, models.MuscleFrontDelts,
			},
			Equipment:   []models.Equipment{models.EquipmentBodyweight},
			SplitTags:   []models.SplitTag{models.SplitPush},
			IsCompound:  true,
			FatigueCost: 2,
		},
		{
			ID: "db-bench-press", Name: "Dumbbell Bench Press",
			Patterns:       []models.MovementPattern{models.PatternHorizontalPush},
			PrimaryMuscles: []models.Muscle{models.MuscleChest},
			SecondaryMuscles: []models.Muscle{
				models.MuscleTriceps, models.MuscleFrontDelts,
			},
			Equipment:          []models.Equipment{models.EquipmentDumbbell, models.EquipmentBench},
			SplitTags:          []models.SplitTag{models.SplitPush},
			StimulusBias:       []models.StimulusBias{models.BiasLoad, models.BiasStretch},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        3,
			SFRScore:           intPtr(4),
			RepRange:           &models.RepRange{Min: 5, Max: 15},
		},
		{
			ID: "db-overhead-press", Name: "Dumbbell Overhead Press",
			Patterns:       []models.MovementPattern{models.PatternVerticalPush},
			PrimaryMuscles: []models.Muscle{models.MuscleFrontDelts},
			SecondaryMuscles: []models.Muscle{
				models.MuscleSideDelts, models.MuscleTriceps,
			},
			Equipment:          []models.Equipment{models.EquipmentDumbbell},
			SplitTags:          []models.SplitTag{models.SplitPush},
			StimulusBias:       []models.StimulusBias{models.BiasLoad},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        3,
			SFRScore:           intPtr(3),
			RepRange:           &models.RepRange{Min: 5, Max: 12},
		},
		{
			ID: "cable-triceps-pushdown", Name: "Cable Triceps Pushdown",
			PrimaryMuscles: []models.Muscle{models.MuscleTriceps},
			Equipment:      []models.Equipment{models.EquipmentCable},
			SplitTags:      []models.SplitTag{models.SplitPush},
			StimulusBias:   []models.StimulusBias{models.BiasPump},
			FatigueCost:    1,
			SFRScore:       intPtr(5),
		},
		{
			ID: "db-lateral-raise", Name: "Dumbbell Lateral Raise",
			PrimaryMuscles: []models.Muscle{models.MuscleSideDelts},
			Equipment:      []models.Equipment{models.EquipmentDumbbell},
			SplitTags:      []models.SplitTag{models.SplitPush},
			StimulusBias:   []models.StimulusBias{models.BiasPump},
			FatigueCost:    1,
			SFRScore:       intPtr(4),
		},
		{
			ID: "seated-cable-row", Name: "Seated Cable Row",
			Patterns:       []models.MovementPattern{models.PatternHorizontalPull},
			PrimaryMuscles: []models.Muscle{models.MuscleLats, models.MuscleRhomboids},
			SecondaryMuscles: []models.Muscle{
				models.MuscleBiceps, models.MuscleRearDelts,
			},
			Equipment:          []models.Equipment{models.EquipmentCable},
			SplitTags:          []models.SplitTag{models.SplitPull},
			StimulusBias:       []models.StimulusBias{models.BiasLoad},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        3,
			SFRScore:           intPtr(4),
			RepRange:           &models.RepRange{Min: 6, Max: 15},
		},
		{
			ID: "lat-pulldown", Name: "Lat Pulldown",
			Patterns:           []models.MovementPattern{models.PatternVerticalPull},
			PrimaryMuscles:     []models.Muscle{models.MuscleLats},
			SecondaryMuscles:   []models.Muscle{models.MuscleBiceps},
			Equipment:          []models.Equipment{models.EquipmentCable},
			SplitTags:          []models.SplitTag{models.SplitPull},
			StimulusBias:       []models.StimulusBias{models.BiasStretch},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        2,
			SFRScore:           intPtr(4),
			RepRange:           &models.RepRange{Min: 6, Max: 15},
		},
		{
			ID: "db-curl", Name: "Dumbbell Curl",
			PrimaryMuscles: []models.Muscle{models.MuscleBiceps},
			Equipment:      []models.Equipment{models.EquipmentDumbbell},
			SplitTags:      []models.SplitTag{models.SplitPull},
			StimulusBias:   []models.StimulusBias{models.BiasPump},
			FatigueCost:    1,
			SFRScore:       intPtr(4),
		},
		{
			ID: "face-pull", Name: "Face Pull",
			PrimaryMuscles: []models.Muscle{models.MuscleRearDelts},
			Equipment:      []models.Equipment{models.EquipmentCable},
			SplitTags:      []models.SplitTag{models.SplitPull},
			StimulusBias:   []models.StimulusBias{models.BiasPump},
			FatigueCost:    1,
			SFRScore:       intPtr(4),
		},
		{
			ID: "goblet-squat", Name: "Goblet Squat",
			Patterns:           []models.MovementPattern{models.PatternSquat},
			PrimaryMuscles:     []models.Muscle{models.MuscleQuads},
			SecondaryMuscles:   []models.Muscle{models.MuscleGlutes},
			Equipment:          []models.Equipment{models.EquipmentDumbbell},
			SplitTags:          []models.SplitTag{models.SplitLegs},
			StimulusBias:       []models.StimulusBias{models.BiasLoad},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        3,
			SFRScore:           intPtr(4),
			RepRange:           &models.RepRange{Min: 6, Max: 15},
		},
		{
			ID: "barbell-back-squat", Name: "Barbell Back Squat",
			Patterns:           []models.MovementPattern{models.PatternSquat},
			PrimaryMuscles:     []models.Muscle{models.MuscleQuads, models.MuscleGlutes},
			SecondaryMuscles:   []models.Muscle{models.MuscleLowerBack},
			Equipment:          []models.Equipment{models.EquipmentBarbell},
			SplitTags:          []models.SplitTag{models.SplitLegs},
			StimulusBias:       []models.StimulusBias{models.BiasLoad},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        5,
			SFRScore:           intPtr(4),
			RepRange:           &models.RepRange{Min: 3, Max: 10},
			Contraindications:  []models.BodyPart{models.BodyPartKnee, models.BodyPartLowerBack},
		},
		{
			ID: "romanian-deadlift", Name: "Romanian Deadlift",
			Patterns:           []models.MovementPattern{models.PatternHinge},
			PrimaryMuscles:     []models.Muscle{models.MuscleHamstrings, models.MuscleGlutes},
			SecondaryMuscles:   []models.Muscle{models.MuscleLowerBack},
			Equipment:          []models.Equipment{models.EquipmentBarbell},
			SplitTags:          []models.SplitTag{models.SplitLegs},
			StimulusBias:       []models.StimulusBias{models.BiasStretch, models.BiasLoad},
			IsCompound:         true,
			IsMainLiftEligible: true,
			FatigueCost:        4,
			SFRScore:           intPtr(4),
			RepRange:           &models.RepRange{Min: 5, Max: 12},
			Contraindications:  []models.BodyPart{models.BodyPartLowerBack},
		},
		{
			ID: "walking-lunge", Name: "Walking Lunge",
			Patterns:          []models.MovementPattern{models.PatternLunge},
			PrimaryMuscles:    []models.Muscle{models.MuscleQuads, models.MuscleGlutes},
			Equipment:         []models.Equipment{models.EquipmentDumbbell},
			SplitTags:         []models.SplitTag{models.SplitLegs},
			IsCompound:        true,
			FatigueCost:       3,
			SFRScore:          intPtr(3),
			Contraindications: []models.BodyPart{models.BodyPartKnee},
		},
		{
			ID: "leg-curl", Name: "Leg Curl",
			PrimaryMuscles: []models.Muscle{models.MuscleHamstrings},
			Equipment:      []models.Equipment{models.EquipmentMachine},
			SplitTags:      []models.SplitTag{models.SplitLegs},
			StimulusBias:   []models.StimulusBias{models.BiasPump},
			FatigueCost:    1,
			SFRScore:       intPtr(4),
		},
		{
			ID: "standing-calf-raise", Name: "Standing Calf Raise",
			PrimaryMuscles: []models.Muscle{models.MuscleCalves},
			Equipment:      []models.Equipment{models.EquipmentMachine},
			SplitTags:      []models.SplitTag{models.SplitLegs},
			FatigueCost:    1,
			SFRScore:       intPtr(3),
		},
		{
			ID: "cable-kickback", Name: "Cable Kickback",
			PrimaryMuscles: []models.Muscle{models.MuscleGlutes},
			Equipment:      []models.Equipment{models.EquipmentCable},
			SplitTags:      []models.SplitTag{models.SplitLegs},
			FatigueCost:    1,
			SFRScore:       intPtr(1),
		},
	}
}

func findExercise(t interface{ Fatalf(string, ...any) }, id string) models.Exercise {
	for _, ex := range testCatalog() {
		if ex.ID == id {
			return ex
		}
	}
	t.Fatalf("test catalog has no exercise %q", id)
	return models.Exercise{}
}

// historyEntry builds one logged session n days before testNow, with the
// given exercises each logged for three working sets of eight.
func historyEntry(daysAgo int, status models.CompletionStatus, exerciseIDs ...string) models.WorkoutHistoryEntry {
	entry := models.WorkoutHistoryEntry{
		ID:     uuid.New(),
		Date:   testNow.AddDate(0, 0, -daysAgo),
		Status: status,
	}
	for _, id := range exerciseIDs {
		entry.Performed = append(entry.Performed, models.PerformedExercise{
			ExerciseID: id,
			Sets: []models.PerformedSet{
				{Reps: 8, WeightKg: 40}, {Reps: 8, WeightKg: 40}, {Reps: 8, WeightKg: 40},
			},
		})
	}
	return entry
}

func baseRequest(intent models.Intent) Request {
	return Request{
		Profile:     models.UserProfile{TrainingAge: models.AgeIntermediate},
		Goals:       models.Goals{Primary: models.GoalHypertrophy},
		Constraints: testConstraints(),
		Intent:      intent,
		Catalog:     testCatalog(),
		Now:         testNow,
		Seed:        42,
	}
}
