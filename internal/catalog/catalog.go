package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/meltforce/liftplan/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed starter.yaml
var starterYAML []byte

// file is the YAML catalog document shape.
type file struct {
	Exercises []models.Exercise `yaml:"exercises"`
}

// Load reads an exercise catalog from a YAML file. Catalog data is reference
// data maintained by hand, so unknown taxonomy values are load errors rather
// than rows to skip: a typo that silently dropped an exercise would be much
// harder to notice than a failed startup.
func Load(path string) ([]models.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	exercises, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return exercises, nil
}

// Starter returns the built-in exercise catalog. It backs the cold-start
// fallback pools and the offline CLI when no catalog file is given.
func Starter() ([]models.Exercise, error) {
	exercises, err := parse(starterYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return exercises, nil
}

func parse(data []byte) ([]models.Exercise, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if len(f.Exercises) == 0 {
		return nil, fmt.Errorf("no exercises defined")
	}

	seen := make(map[string]bool, len(f.Exercises))
	for i, ex := range f.Exercises {
		if err := validateExercise(ex); err != nil {
			return nil, fmt.Errorf("exercise %d (%s): %w", i, ex.ID, err)
		}
		if seen[ex.ID] {
			return nil, fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		seen[ex.ID] = true
	}
	return f.Exercises, nil
}

func validateExercise(ex models.Exercise) error {
	if ex.ID == "" {
		return fmt.Errorf("id is required")
	}
	if ex.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(ex.PrimaryMuscles) == 0 {
		return fmt.Errorf("at least one primary muscle is required")
	}
	for _, p := range ex.Patterns {
		if _, ok := models.ParseMovementPattern(string(p)); !ok {
			return fmt.Errorf("unknown movement pattern %q", p)
		}
	}
	for _, m := range ex.PrimaryMuscles {
		if _, ok := models.ParseMuscle(string(m)); !ok {
			return fmt.Errorf("unknown primary muscle %q", m)
		}
	}
	for _, m := range ex.SecondaryMuscles {
		if _, ok := models.ParseMuscle(string(m)); !ok {
			return fmt.Errorf("unknown secondary muscle %q", m)
		}
	}
	for _, e := range ex.Equipment {
		if _, ok := models.ParseEquipment(string(e)); !ok {
			return fmt.Errorf("unknown equipment %q", e)
		}
	}
	for _, tag := range ex.SplitTags {
		if _, ok := models.ParseSplitTag(string(tag)); !ok {
			return fmt.Errorf("unknown split tag %q", tag)
		}
	}
	for _, b := range ex.StimulusBias {
		if _, ok := models.ParseStimulusBias(string(b)); !ok {
			return fmt.Errorf("unknown stimulus bias %q", b)
		}
	}
	for _, bp := range ex.Contraindications {
		if _, ok := models.ParseBodyPart(string(bp)); !ok {
			return fmt.Errorf("unknown body part %q", bp)
		}
	}
	if ex.FatigueCost < 0 || ex.FatigueCost > 5 {
		return fmt.Errorf("fatigue_cost %d out of range 0-5", ex.FatigueCost)
	}
	if ex.SFRScore != nil && (*ex.SFRScore < 1 || *ex.SFRScore > 5) {
		return fmt.Errorf("sfr_score %d out of range 1-5", *ex.SFRScore)
	}
	if ex.RepRange != nil && (ex.RepRange.Min < 1 || ex.RepRange.Max < ex.RepRange.Min) {
		return fmt.Errorf("rep_range %d-%d is not a valid range", ex.RepRange.Min, ex.RepRange.Max)
	}
	return nil
}
