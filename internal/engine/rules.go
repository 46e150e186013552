package engine

import (
	"fmt"
	"os"

	"github.com/meltforce/liftplan/internal/models"
	"gopkg.in/yaml.v3"
)

// RestRule maps a resolved top-set rep count to rest seconds. Rules are
// matched first-to-last against MaxReps, so keep them sorted ascending.
type RestRule struct {
	MaxReps int `yaml:"max_reps"`
	RestSec int `yaml:"rest_sec"`
}

// Ruleset is the immutable rule configuration the engine runs on: volume
// landmarks, rep bands, rest lookups, set-count tables, and the tunable
// selection thresholds. A Ruleset is built once and shared across calls;
// nothing in the engine mutates it.
type Ruleset struct {
	Landmarks map[models.Muscle]models.VolumeLandmarks `yaml:"landmarks"`

	MainRepBands      map[models.Goal]models.RepRange `yaml:"main_rep_bands"`
	AccessoryRepBands map[models.Goal]models.RepRange `yaml:"accessory_rep_bands"`

	MainRest      []RestRule `yaml:"main_rest"`
	AccessoryRest []RestRule `yaml:"accessory_rest"`
	WarmupRestSec int        `yaml:"warmup_rest_sec"`

	// BaseSetCounts is working sets per exercise by training age and role.
	BaseSetCounts  map[models.TrainingAge]map[models.Role]int `yaml:"base_set_counts"`
	BeginnerSetCap int                                        `yaml:"beginner_set_cap"`

	// Soft-score weights.
	PatternWeight        float64 `yaml:"pattern_weight"`
	MuscleWeight         float64 `yaml:"muscle_weight"`
	StimulusWeight       float64 `yaml:"stimulus_weight"`
	FatiguePenaltyWeight float64 `yaml:"fatigue_penalty_weight"`
	SFRBonusWeight       float64 `yaml:"sfr_bonus_weight"`

	// RecencyMultipliers dampen exercises trained 1, 2, and 3 sessions ago.
	RecencyMultipliers [3]float64 `yaml:"recency_multipliers"`
	NoveltyMultiplier  float64    `yaml:"novelty_multiplier"`

	// Selection slot caps.
	PinCap       int `yaml:"pin_cap"`
	MainLiftCap  int `yaml:"main_lift_cap"`
	DefaultSlots int `yaml:"default_slots"`

	// Tunable heuristic thresholds. The 3x bucket ratio and the
	// same-muscle-same-pattern redundancy guard are deliberate carryovers,
	// not derived values.
	BucketImbalanceRatio float64 `yaml:"bucket_imbalance_ratio"`
	PrevBaselineCapRatio float64 `yaml:"prev_baseline_cap_ratio"`
	IndirectWeight       float64 `yaml:"indirect_weight"`

	SupersetRestRatio  float64 `yaml:"superset_rest_ratio"`
	SupersetMinRestSec int     `yaml:"superset_min_rest_sec"`

	HypertrophyIsolationRPEBump float64 `yaml:"hypertrophy_isolation_rpe_bump"`

	// StarterPacks name catalog exercise IDs used for cold-start fallbacks.
	StarterPacks map[models.Intent][]string `yaml:"starter_packs"`

	// ColdStartHistoryMin is how many logged sessions a user needs before
	// main-lift auto-fill is enabled.
	ColdStartHistoryMin int `yaml:"cold_start_history_min"`
}

// DefaultRuleset returns the built-in rule tables.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Landmarks: map[models.Muscle]models.VolumeLandmarks{
			models.MuscleChest:      {MV: 4, MEV: 6, MAV: 12, MRV: 22, RecoveryHours: 48},
			models.MuscleFrontDelts: {MV: 0, MEV: 2, MAV: 8, MRV: 16, RecoveryHours: 48},
			models.MuscleSideDelts:  {MV: 4, MEV: 6, MAV: 16, MRV: 26, RecoveryHours: 24},
			models.MuscleRearDelts:  {MV: 3, MEV: 6, MAV: 16, MRV: 26, RecoveryHours: 24},
			models.MuscleLats:       {MV: 4, MEV: 8, MAV: 14, MRV: 22, RecoveryHours: 48},
			models.MuscleTraps:      {MV: 2, MEV: 4, MAV: 12, MRV: 26, RecoveryHours: 24},
			models.MuscleRhomboids:  {MV: 2, MEV: 4, MAV: 10, MRV: 20, RecoveryHours: 48},
			models.MuscleBiceps:     {MV: 4, MEV: 6, MAV: 14, MRV: 26, RecoveryHours: 48},
			models.MuscleTriceps:    {MV: 4, MEV: 6, MAV: 12, MRV: 18, RecoveryHours: 48},
			models.MuscleForearms:   {MV: 2, MEV: 4, MAV: 10, MRV: 20, RecoveryHours: 24},
			models.MuscleAbs:        {MV: 0, MEV: 4, MAV: 16, MRV: 25, RecoveryHours: 24},
			models.MuscleObliques:   {MV: 0, MEV: 3, MAV: 10, MRV: 20, RecoveryHours: 24},
			models.MuscleLowerBack:  {MV: 2, MEV: 4, MAV: 8, MRV: 14, RecoveryHours: 72},
			models.MuscleQuads:      {MV: 6, MEV: 8, MAV: 14, MRV: 20, RecoveryHours: 48},
			models.MuscleHamstrings: {MV: 3, MEV: 4, MAV: 10, MRV: 16, RecoveryHours: 48},
			models.MuscleGlutes:     {MV: 2, MEV: 4, MAV: 12, MRV: 16, RecoveryHours: 48},
			models.MuscleAdductors:  {MV: 2, MEV: 4, MAV: 8, MRV: 16, RecoveryHours: 48},
			models.MuscleCalves:     {MV: 4, MEV: 6, MAV: 12, MRV: 20, RecoveryHours: 24},
		},
		MainRepBands: map[models.Goal]models.RepRange{
			models.GoalStrength:       {Min: 3, Max: 6},
			models.GoalHypertrophy:    {Min: 6, Max: 10},
			models.GoalFatLoss:        {Min: 8, Max: 12},
			models.GoalEndurance:      {Min: 10, Max: 15},
			models.GoalGeneralFitness: {Min: 5, Max: 10},
		},
		AccessoryRepBands: map[models.Goal]models.RepRange{
			models.GoalStrength:       {Min: 6, Max: 10},
			models.GoalHypertrophy:    {Min: 8, Max: 15},
			models.GoalFatLoss:        {Min: 10, Max: 15},
			models.GoalEndurance:      {Min: 12, Max: 20},
			models.GoalGeneralFitness: {Min: 8, Max: 12},
		},
		MainRest: []RestRule{
			{MaxReps: 5, RestSec: 180},
			{MaxReps: 8, RestSec: 150},
			{MaxReps: 99, RestSec: 120},
		},
		AccessoryRest: []RestRule{
			{MaxReps: 8, RestSec: 90},
			{MaxReps: 12, RestSec: 75},
			{MaxReps: 99, RestSec: 60},
		},
		WarmupRestSec: 60,
		BaseSetCounts: map[models.TrainingAge]map[models.Role]int{
			models.AgeBeginner:     {models.RoleMain: 3, models.RoleAccessory: 3},
			models.AgeIntermediate: {models.RoleMain: 4, models.RoleAccessory: 3},
			models.AgeAdvanced:     {models.RoleMain: 5, models.RoleAccessory: 4},
		},
		BeginnerSetCap: 4,

		PatternWeight:        4,
		MuscleWeight:         3,
		StimulusWeight:       2,
		FatiguePenaltyWeight: 0.5,
		SFRBonusWeight:       0.5,

		RecencyMultipliers: [3]float64{0.3, 0.5, 0.7},
		NoveltyMultiplier:  1.5,

		PinCap:       3,
		MainLiftCap:  2,
		DefaultSlots: 6,

		BucketImbalanceRatio: 3,
		PrevBaselineCapRatio: 1.2,
		IndirectWeight:       0.5,

		SupersetRestRatio:  0.6,
		SupersetMinRestSec: 60,

		HypertrophyIsolationRPEBump: 0.5,

		StarterPacks: map[models.Intent][]string{
			models.IntentPush: {"pushup", "db-bench-press", "db-overhead-press", "cable-triceps-pushdown"},
			models.IntentPull: {"lat-pulldown", "seated-cable-row", "db-curl", "face-pull"},
			models.IntentLegs: {"goblet-squat", "romanian-deadlift", "walking-lunge", "leg-curl"},
			models.IntentFullBody: {
				"goblet-squat", "pushup", "seated-cable-row", "romanian-deadlift",
			},
			models.IntentUpper: {"db-bench-press", "seated-cable-row", "db-overhead-press", "db-curl"},
			models.IntentLower: {"goblet-squat", "romanian-deadlift", "leg-curl", "standing-calf-raise"},
		},
		ColdStartHistoryMin: 3,
	}
}

// LoadRuleset reads YAML overrides on top of the defaults, so a deployment
// can swap individual tables without restating all of them.
func LoadRuleset(path string) (Ruleset, error) {
	rs := DefaultRuleset()
	data, err := os.ReadFile(path)
	if err != nil {
		return rs, fmt.Errorf("reading ruleset file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return rs, fmt.Errorf("parsing ruleset file: %w", err)
	}
	if err := rs.validate(); err != nil {
		return rs, fmt.Errorf("ruleset validation: %w", err)
	}
	return rs, nil
}

func (r Ruleset) validate() error {
	if r.MainLiftCap < 1 {
		return fmt.Errorf("main_lift_cap must be at least 1")
	}
	if r.DefaultSlots < r.MainLiftCap {
		return fmt.Errorf("default_slots must be at least main_lift_cap")
	}
	if r.BucketImbalanceRatio < 1 {
		return fmt.Errorf("bucket_imbalance_ratio must be at least 1")
	}
	if r.IndirectWeight < 0 || r.IndirectWeight > 1 {
		return fmt.Errorf("indirect_weight must be in [0,1]")
	}
	for m, lm := range r.Landmarks {
		if !(lm.MV <= lm.MEV && lm.MEV <= lm.MAV && lm.MAV <= lm.MRV) {
			return fmt.Errorf("landmarks for %s are not ordered MV<=MEV<=MAV<=MRV", m)
		}
	}
	return nil
}

// restFor resolves rest seconds from the role's table for a top-set rep count.
func (r Ruleset) restFor(role models.Role, topSetReps int) int {
	table := r.AccessoryRest
	if role == models.RoleMain {
		table = r.MainRest
	}
	for _, rule := range table {
		if topSetReps <= rule.MaxReps {
			return rule.RestSec
		}
	}
	if len(table) > 0 {
		return table[len(table)-1].RestSec
	}
	return r.WarmupRestSec
}

// mainBand returns the goal's main-lift rep band.
func (r Ruleset) mainBand(g models.Goal) models.RepRange {
	if band, ok := r.MainRepBands[g]; ok {
		return band
	}
	return r.MainRepBands[models.GoalGeneralFitness]
}

// accessoryBand returns the goal's accessory rep band.
func (r Ruleset) accessoryBand(g models.Goal) models.RepRange {
	if band, ok := r.AccessoryRepBands[g]; ok {
		return band
	}
	return r.AccessoryRepBands[models.GoalGeneralFitness]
}
