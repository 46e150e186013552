package engine

import (
	"fmt"
	"math"

	"github.com/meltforce/liftplan/internal/models"
)

const (
	workSecPerRep    = 2
	workSecBase      = 10
	workSecMin       = 20
	workSecMax       = 90
	fallbackWorkMain = 60
	fallbackWorkAcc  = 40
)

// setWorkSeconds estimates the time under load for one set: 2s per rep plus
// setup, clamped. Sets without a rep target fall back to the exercise's
// declared per-set time, then to a role default.
func setWorkSeconds(set models.WorkoutSet, ex models.Exercise, role models.Role) int {
	if set.TargetReps > 0 {
		sec := workSecPerRep*set.TargetReps + workSecBase
		if sec < workSecMin {
			return workSecMin
		}
		if sec > workSecMax {
			return workSecMax
		}
		return sec
	}
	if ex.TimePerSetSec != nil {
		return *ex.TimePerSetSec
	}
	if role == models.RoleMain {
		return fallbackWorkMain
	}
	return fallbackWorkAcc
}

func setRestSeconds(set models.WorkoutSet, role models.Role, rules Ruleset) int {
	if set.RestSec > 0 {
		return set.RestSec
	}
	if set.IsWarmup {
		return rules.WarmupRestSec
	}
	return rules.restFor(role, set.TargetReps)
}

// exerciseSeconds is the standalone duration of one exercise: every set's
// work plus its rest.
func exerciseSeconds(we models.WorkoutExercise, rules Ruleset) int {
	total := 0
	for _, set := range we.Sets {
		total += setWorkSeconds(set, we.Exercise, we.Role)
		total += setRestSeconds(set, we.Role, rules)
	}
	return total
}

// supersetSeconds estimates a paired-accessory superset: per round, both
// movements' work plus one shared rest in place of the two independent
// rests. The shared rest is a fraction of the longer partner's rest with a
// floor, which is why a superset always beats the two standalone estimates.
func supersetSeconds(a, b models.WorkoutExercise, rules Ruleset) int {
	rounds := len(a.Sets)
	if len(b.Sets) > rounds {
		rounds = len(b.Sets)
	}

	total := 0
	for i := 0; i < rounds; i++ {
		restA, restB := 0, 0
		if i < len(a.Sets) {
			total += setWorkSeconds(a.Sets[i], a.Exercise, a.Role)
			restA = setRestSeconds(a.Sets[i], a.Role, rules)
		}
		if i < len(b.Sets) {
			total += setWorkSeconds(b.Sets[i], b.Exercise, b.Role)
			restB = setRestSeconds(b.Sets[i], b.Role, rules)
		}
		longer := restA
		if restB > longer {
			longer = restB
		}
		shared := int(math.Round(rules.SupersetRestRatio * float64(longer)))
		if shared < rules.SupersetMinRestSec {
			shared = rules.SupersetMinRestSec
		}
		total += shared
	}
	return total
}

// estimateMinutes totals the session. Accessory pairs sharing a superset
// group use the shared-rest estimate; main lifts never do, even if grouped,
// because heavy compounds are not paired for shared rest.
func estimateMinutes(mains, accessories []models.WorkoutExercise, rules Ruleset) int {
	totalSec := 0
	for _, we := range mains {
		totalSec += exerciseSeconds(we, rules)
	}

	counted := make(map[string]bool, len(accessories))
	groups := supersetPairs(accessories)
	for _, pair := range groups {
		totalSec += supersetSeconds(pair[0], pair[1], rules)
		counted[pair[0].Exercise.ID] = true
		counted[pair[1].Exercise.ID] = true
	}
	for _, we := range accessories {
		if !counted[we.Exercise.ID] {
			totalSec += exerciseSeconds(we, rules)
		}
	}

	return int(math.Ceil(float64(totalSec) / 60))
}

// supersetPairs returns groups of exactly two accessories sharing a superset
// group ID. Groups of any other size run standalone.
func supersetPairs(accessories []models.WorkoutExercise) [][2]models.WorkoutExercise {
	byGroup := make(map[string][]models.WorkoutExercise)
	var order []string
	for _, we := range accessories {
		if we.SupersetGroup == "" {
			continue
		}
		if _, ok := byGroup[we.SupersetGroup]; !ok {
			order = append(order, we.SupersetGroup)
		}
		byGroup[we.SupersetGroup] = append(byGroup[we.SupersetGroup], we)
	}

	var pairs [][2]models.WorkoutExercise
	for _, g := range order {
		members := byGroup[g]
		if len(members) == 2 {
			pairs = append(pairs, [2]models.WorkoutExercise{members[0], members[1]})
		}
	}
	return pairs
}

// enforceTimeBudget trims accessories, lowest retention first, until the
// session fits the minutes budget. A trimmed member of a superset pair takes
// its partner with it. Main lifts are never removed: if they alone exceed
// the budget the plan is returned unchanged with an actionable note.
func enforceTimeBudget(
	mains, accessories []models.WorkoutExercise,
	budgetMinutes int,
	rules Ruleset,
) (kept []models.WorkoutExercise, removed []string, note string) {
	kept = accessories
	if budgetMinutes <= 0 {
		return kept, nil, ""
	}

	mainsOnly := estimateMinutes(mains, nil, rules)
	if mainsOnly > budgetMinutes {
		return kept, nil, fmt.Sprintf(
			"main lifts alone need about %d minutes; this session requires more time than the %d-minute budget",
			mainsOnly, budgetMinutes)
	}

	for estimateMinutes(mains, kept, rules) > budgetMinutes && len(kept) > 0 {
		id, ok := popLowestRetention(mains, kept)
		if !ok {
			break
		}
		group := supersetGroupOf(kept, id)
		kept = removeByID(kept, id)
		removed = append(removed, id)
		if group != "" {
			for _, we := range kept {
				if we.SupersetGroup == group {
					kept = removeByID(kept, we.Exercise.ID)
					removed = append(removed, we.Exercise.ID)
					break
				}
			}
		}
	}
	return kept, removed, ""
}

func supersetGroupOf(list []models.WorkoutExercise, id string) string {
	for _, we := range list {
		if we.Exercise.ID == id {
			return we.SupersetGroup
		}
	}
	return ""
}
