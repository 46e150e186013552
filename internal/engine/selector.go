package engine

import (
	"sort"

	"github.com/meltforce/liftplan/internal/models"
)

// candidate is one catalog exercise with its evaluated score and a seeded
// tie-break draw. Draws are assigned in ID order so the same seed always
// produces the same ordering regardless of catalog order.
type candidate struct {
	ex         models.Exercise
	score      float64
	components map[string]float64
	failed     string
	tie        float64
}

type selection struct {
	mains       []models.Exercise
	accessories []models.Exercise
	steps       map[string]models.SelectionStep
	rationale   map[string]models.SelectionRationale
}

func (s *selection) total() int { return len(s.mains) + len(s.accessories) }

func (s *selection) has(id string) bool {
	for _, ex := range s.mains {
		if ex.ID == id {
			return true
		}
	}
	for _, ex := range s.accessories {
		if ex.ID == id {
			return true
		}
	}
	return false
}

func (s *selection) coversBucketWithMain(b models.PatternBucket) bool {
	for _, ex := range s.mains {
		if ex.HasBucket(b) {
			return true
		}
	}
	return false
}

// selectExercises runs the staged selection: pin, anchor, main_pick,
// accessory_pick. Returns the selection output with a rationale entry for
// every evaluated candidate.
func selectExercises(req Request, ctx *VolumeContext, rules Ruleset, rnd RandSource) models.SelectionOutput {
	if req.Template != nil {
		return selectFromTemplate(req, rules, ctx)
	}

	target := targetFor(req.Intent, req.Goals.Primary, req.TargetMuscles)
	sel := &selection{
		steps:     make(map[string]models.SelectionStep),
		rationale: make(map[string]models.SelectionRationale),
	}

	stage := coldStartStage(req.History, rules)

	pool := req.Catalog
	if stage == 0 {
		pool = starterPool(req.Catalog, req.Intent, rules)
	}

	cands := evaluatePool(pool, req, target, ctx, rules, rnd)
	for _, c := range cands {
		sel.rationale[c.ex.ID] = models.SelectionRationale{
			Score:        c.score,
			Components:   c.components,
			FailedFilter: c.failed,
		}
	}

	slots := req.SlotCount
	if slots <= 0 {
		slots = rules.DefaultSlots
	}

	pickPins(sel, req, rules, slots)

	// Stage 1 users auto-fill accessories only: with a thin history the
	// main-lift choice stays with the user. Stage 0 users get the guided
	// starter pool end to end.
	if stage != 1 {
		if req.Intent == models.IntentFullBody {
			pickAnchors(sel, cands, rules, slots)
		}
		pickMains(sel, cands, req.Goals.Primary, rules, slots)
	}

	pickAccessories(sel, cands, slots)

	return assembleOutput(sel, req, ctx, rules)
}

// coldStartStage classifies how much auto-fill trust the user's history has
// earned: 0 = starter fallbacks only, 1 = accessory auto-fill only (main
// lifts stay the user's call), 2 = full selection.
func coldStartStage(history []models.WorkoutHistoryEntry, rules Ruleset) int {
	switch {
	case len(history) == 0:
		return 0
	case len(history) < rules.ColdStartHistoryMin:
		return 1
	default:
		return 2
	}
}

// starterPool restricts the catalog to the intent's starter pack. When the
// pack names no catalog rows the full catalog is used rather than returning
// nothing for a brand-new user.
func starterPool(catalog []models.Exercise, intent models.Intent, rules Ruleset) []models.Exercise {
	ids := rules.StarterPacks[intent]
	if len(ids) == 0 {
		return catalog
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var pool []models.Exercise
	for _, ex := range catalog {
		if wanted[ex.ID] {
			pool = append(pool, ex)
		}
	}
	if len(pool) == 0 {
		return catalog
	}
	return pool
}

// evaluatePool scores every candidate and sorts by score descending with the
// seeded draw breaking ties.
func evaluatePool(
	pool []models.Exercise,
	req Request,
	target sessionTarget,
	ctx *VolumeContext,
	rules Ruleset,
	rnd RandSource,
) []candidate {
	sorted := make([]models.Exercise, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	cands := make([]candidate, 0, len(sorted))
	for _, ex := range sorted {
		score, components := scoreCandidate(ex, target, ctx, rules)
		cands = append(cands, candidate{
			ex:         ex,
			score:      score,
			components: components,
			failed:     hardFilter(ex, req.Constraints, req.Intent, req.Goals.Primary, target, ctx.Fatigue.PainFlags),
			tie:        rnd.Next(),
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].tie != cands[j].tie {
			return cands[i].tie > cands[j].tie
		}
		return cands[i].ex.ID < cands[j].ex.ID
	})
	return cands
}

// pickPins honors user-pinned exercises first, capped regardless of how many
// were supplied. Pins bypass hard filters: the user's explicit choice wins,
// and contraindicated pins surface through the substitution advisor instead.
func pickPins(sel *selection, req Request, rules Ruleset, slots int) {
	byID := make(map[string]models.Exercise, len(req.Catalog))
	for _, ex := range req.Catalog {
		byID[ex.ID] = ex
	}

	pinned := 0
	for _, id := range req.PinnedExerciseIDs {
		if pinned >= rules.PinCap || sel.total() >= slots {
			break
		}
		ex, ok := byID[id]
		if !ok || sel.has(id) {
			continue
		}
		if ex.IsMainLiftEligible && len(sel.mains) < rules.MainLiftCap {
			sel.mains = append(sel.mains, ex)
		} else {
			sel.accessories = append(sel.accessories, ex)
		}
		sel.steps[id] = models.StepPin
		if _, has := sel.rationale[id]; !has {
			sel.rationale[id] = models.SelectionRationale{}
		}
		pinned++
	}
}

// pickAnchors guarantees each push/pull/lower bucket at least one compound
// main lift in a full-body session, so a single bucket cannot dominate.
func pickAnchors(sel *selection, cands []candidate, rules Ruleset, slots int) {
	for _, bucket := range []models.PatternBucket{models.BucketPush, models.BucketPull, models.BucketLower} {
		if sel.total() >= slots || sel.coversBucketWithMain(bucket) {
			continue
		}
		for _, c := range cands {
			if c.failed != "" || sel.has(c.ex.ID) {
				continue
			}
			if !c.ex.IsCompound || !c.ex.IsMainLiftEligible || !c.ex.HasBucket(bucket) {
				continue
			}
			sel.mains = append(sel.mains, c.ex)
			sel.steps[c.ex.ID] = models.StepAnchor
			break
		}
	}
}

// pickMains fills remaining main-lift slots by score. Eligible exercises
// whose native rep range cannot reach the goal's main band are left for
// accessory treatment rather than excluded.
func pickMains(sel *selection, cands []candidate, goal models.Goal, rules Ruleset, slots int) {
	band := rules.mainBand(goal)
	for _, c := range cands {
		if len(sel.mains) >= rules.MainLiftCap || sel.total() >= slots {
			return
		}
		if c.failed != "" || sel.has(c.ex.ID) || !c.ex.IsMainLiftEligible {
			continue
		}
		if c.ex.RepRange != nil && !c.ex.RepRange.Overlaps(band) {
			continue
		}
		sel.mains = append(sel.mains, c.ex)
		sel.steps[c.ex.ID] = models.StepMainPick
	}
}

// pickAccessories fills the remaining slots by score, skipping candidates
// that duplicate an already-selected accessory's muscle and pattern bucket.
func pickAccessories(sel *selection, cands []candidate, slots int) {
	for _, c := range cands {
		if sel.total() >= slots {
			return
		}
		if c.failed != "" || sel.has(c.ex.ID) {
			continue
		}
		if redundantAccessory(c.ex, sel.accessories) {
			r := sel.rationale[c.ex.ID]
			r.FailedFilter = "redundant_accessory"
			sel.rationale[c.ex.ID] = r
			continue
		}
		sel.accessories = append(sel.accessories, c.ex)
		sel.steps[c.ex.ID] = models.StepAccessoryPick
	}
}

// selectFromTemplate builds the selection verbatim from a fixed template.
// An empty template is a valid empty selection, not an error.
func selectFromTemplate(req Request, rules Ruleset, ctx *VolumeContext) models.SelectionOutput {
	byID := make(map[string]models.Exercise, len(req.Catalog))
	for _, ex := range req.Catalog {
		byID[ex.ID] = ex
	}

	sel := &selection{
		steps:     make(map[string]models.SelectionStep),
		rationale: make(map[string]models.SelectionRationale),
	}
	for _, id := range req.Template {
		ex, ok := byID[id]
		if !ok || sel.has(id) {
			continue
		}
		if ex.IsMainLiftEligible && len(sel.mains) < rules.MainLiftCap {
			sel.mains = append(sel.mains, ex)
		} else {
			sel.accessories = append(sel.accessories, ex)
		}
		sel.steps[id] = models.StepPin
		sel.rationale[id] = models.SelectionRationale{}
	}
	return assembleOutput(sel, req, ctx, rules)
}

// assembleOutput freezes the selection into the output record: ids, the
// preliminary set plan, the per-muscle volume plan, and the rationale map.
func assembleOutput(sel *selection, req Request, ctx *VolumeContext, rules Ruleset) models.SelectionOutput {
	out := models.SelectionOutput{
		SetPlan:    make(map[string]int),
		VolumePlan: make(map[models.Muscle]float64),
		Rationale:  sel.rationale,
	}

	for _, ex := range sel.mains {
		out.MainLiftIDs = append(out.MainLiftIDs, ex.ID)
		out.SelectedExerciseIDs = append(out.SelectedExerciseIDs, ex.ID)
	}
	for _, ex := range sel.accessories {
		out.AccessoryIDs = append(out.AccessoryIDs, ex.ID)
		out.SelectedExerciseIDs = append(out.SelectedExerciseIDs, ex.ID)
	}

	age := req.Profile.TrainingAge
	for _, ex := range sel.mains {
		out.SetPlan[ex.ID] = baseSetCount(models.RoleMain, age, ctx.Fatigue.Readiness, rules)
	}
	for _, ex := range sel.accessories {
		out.SetPlan[ex.ID] = baseSetCount(models.RoleAccessory, age, ctx.Fatigue.Readiness, rules)
	}
	for id, n := range req.SetOverrides {
		if _, ok := out.SetPlan[id]; ok && n >= 1 {
			out.SetPlan[id] = n
		}
	}

	if req.Intent == models.IntentFullBody {
		rebalanceBuckets(out.SetPlan, sel, rules)
	}

	for _, ex := range append(append([]models.Exercise{}, sel.mains...), sel.accessories...) {
		sets := float64(out.SetPlan[ex.ID])
		for _, m := range ex.PrimaryMuscles {
			out.VolumePlan[m] += sets
		}
		for _, m := range ex.SecondaryMuscles {
			out.VolumePlan[m] += rules.IndirectWeight * sets
		}
	}

	for id, step := range sel.steps {
		r := out.Rationale[id]
		r.Step = step
		out.Rationale[id] = r
	}

	return out
}

// rebalanceBuckets nudges per-bucket set totals so no bucket exceeds the
// imbalance ratio times the smallest non-zero bucket. Accessories in the
// heaviest bucket give up sets one at a time, never below one working set.
func rebalanceBuckets(setPlan map[string]int, sel *selection, rules Ruleset) {
	exercises := append(append([]models.Exercise{}, sel.mains...), sel.accessories...)

	for i := 0; i < 50; i++ {
		totals := map[models.PatternBucket]int{}
		for _, ex := range exercises {
			for _, b := range []models.PatternBucket{models.BucketPush, models.BucketPull, models.BucketLower} {
				if ex.HasBucket(b) {
					totals[b] += setPlan[ex.ID]
					break
				}
			}
		}

		maxBucket, maxSets := models.BucketOther, 0
		minSets := -1
		for _, b := range []models.PatternBucket{models.BucketPush, models.BucketPull, models.BucketLower} {
			if totals[b] > maxSets {
				maxBucket, maxSets = b, totals[b]
			}
			if totals[b] > 0 && (minSets == -1 || totals[b] < minSets) {
				minSets = totals[b]
			}
		}
		if minSets <= 0 || float64(maxSets) <= rules.BucketImbalanceRatio*float64(minSets) {
			return
		}

		// Shave one set from the heaviest-bucket exercise with the most
		// sets, preferring accessories over mains.
		reduced := false
		for _, pool := range [][]models.Exercise{sel.accessories, sel.mains} {
			bestID, bestSets := "", 1
			for _, ex := range pool {
				if ex.HasBucket(maxBucket) && setPlan[ex.ID] > bestSets {
					bestID, bestSets = ex.ID, setPlan[ex.ID]
				}
			}
			if bestID != "" {
				setPlan[bestID]--
				reduced = true
				break
			}
		}
		if !reduced {
			return
		}
	}
}
