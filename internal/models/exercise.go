package models

// RepRange bounds the reps an exercise is meant to be performed in.
type RepRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Overlaps reports whether two rep ranges share at least one rep count.
func (r RepRange) Overlaps(other RepRange) bool {
	return r.Min <= other.Max && other.Min <= r.Max
}

// Clamp narrows a target rep count into this range.
func (r RepRange) Clamp(reps int) int {
	if reps < r.Min {
		return r.Min
	}
	if reps > r.Max {
		return r.Max
	}
	return reps
}

// Exercise is a catalog entry. Catalog data is immutable reference data: the
// engine reads it and never writes it back.
type Exercise struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	Patterns         []MovementPattern `json:"patterns" yaml:"patterns"`
	PrimaryMuscles   []Muscle          `json:"primary_muscles" yaml:"primary_muscles"`
	SecondaryMuscles []Muscle          `json:"secondary_muscles,omitempty" yaml:"secondary_muscles,omitempty"`
	Equipment        []Equipment       `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	SplitTags        []SplitTag        `json:"split_tags,omitempty" yaml:"split_tags,omitempty"`
	StimulusBias     []StimulusBias    `json:"stimulus_bias,omitempty" yaml:"stimulus_bias,omitempty"`

	IsCompound         bool `json:"is_compound" yaml:"is_compound"`
	IsMainLiftEligible bool `json:"is_main_lift_eligible" yaml:"is_main_lift_eligible"`

	// FatigueCost is 1 (trivial) to 5 (very draining).
	FatigueCost int `json:"fatigue_cost" yaml:"fatigue_cost"`

	// SFRScore and LengthPositionScore are 1-5 efficiency proxies. Nil means
	// unscored, which the selector treats as a neutral 3, never as a defect.
	SFRScore            *int `json:"sfr_score,omitempty" yaml:"sfr_score,omitempty"`
	LengthPositionScore *int `json:"length_position_score,omitempty" yaml:"length_position_score,omitempty"`

	// RepRange bounds the reps this movement is sensibly performed in.
	RepRange *RepRange `json:"rep_range,omitempty" yaml:"rep_range,omitempty"`

	// Contraindications lists body parts that, when pain-flagged, make this
	// exercise unsafe to program.
	Contraindications []BodyPart `json:"contraindications,omitempty" yaml:"contraindications,omitempty"`

	// TimePerSetSec overrides the default per-set work time estimate.
	TimePerSetSec *int `json:"time_per_set_sec,omitempty" yaml:"time_per_set_sec,omitempty"`
}

// SFROrNeutral returns the SFR score, defaulting to the neutral midpoint when
// the catalog has no value.
func (e Exercise) SFROrNeutral() int {
	if e.SFRScore == nil {
		return 3
	}
	return *e.SFRScore
}

// HasPattern reports whether the exercise carries the given pattern.
func (e Exercise) HasPattern(p MovementPattern) bool {
	for _, ep := range e.Patterns {
		if ep == p {
			return true
		}
	}
	return false
}

// HasBucket reports whether any of the exercise's patterns fall in the bucket.
func (e Exercise) HasBucket(b PatternBucket) bool {
	for _, p := range e.Patterns {
		if p.Bucket() == b {
			return true
		}
	}
	return false
}

// HasPrimaryMuscle reports whether m is a primary mover.
func (e Exercise) HasPrimaryMuscle(m Muscle) bool {
	for _, pm := range e.PrimaryMuscles {
		if pm == m {
			return true
		}
	}
	return false
}

// HasSplitTag reports whether the exercise carries the given split tag.
func (e Exercise) HasSplitTag(t SplitTag) bool {
	for _, st := range e.SplitTags {
		if st == t {
			return true
		}
	}
	return false
}

// ContraindicatedBy reports whether any flagged body part (severity >= 1)
// intersects this exercise's contraindications.
func (e Exercise) ContraindicatedBy(painFlags map[BodyPart]int) bool {
	for _, bp := range e.Contraindications {
		if painFlags[bp] >= 1 {
			return true
		}
	}
	return false
}
