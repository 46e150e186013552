package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftplan/internal/engine"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// historyWindow bounds how far back tools look when loading sessions.
const historyWindow = 28 * 24 * time.Hour

// parseList splits a comma-separated parameter into trimmed non-empty items.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseEquipmentList(s string) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, item := range parseList(s) {
		eq, ok := models.ParseEquipment(item)
		if !ok {
			return nil, fmt.Errorf("unknown equipment %q", item)
		}
		out = append(out, eq)
	}
	return out, nil
}

func parseMuscleList(s string) ([]models.Muscle, error) {
	var out []models.Muscle
	for _, item := range parseList(s) {
		m, ok := models.ParseMuscle(item)
		if !ok {
			return nil, fmt.Errorf("unknown muscle %q", item)
		}
		out = append(out, m)
	}
	return out, nil
}

// --- Tool definitions ---

var toolGeneratePlan = mcp.NewTool("generate_plan",
	mcp.WithDescription("Generate a single-session workout plan. Selects exercises from the catalog against logged training history, prescribes sets/reps/RPE/rest, and enforces weekly volume caps and the session time budget."),
	mcp.WithString("intent", mcp.Required(), mcp.Description("Session type"), mcp.Enum("push", "pull", "legs", "upper", "lower", "full_body", "body_part")),
	mcp.WithString("goal", mcp.Required(), mcp.Description("Primary training goal"), mcp.Enum("strength", "hypertrophy", "fat_loss", "endurance", "general_fitness")),
	mcp.WithString("training_age", mcp.Description("Experience level. Defaults to intermediate."), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithString("minutes", mcp.Description("Session time budget in minutes. 0 or absent means unlimited.")),
	mcp.WithString("equipment", mcp.Description("Comma-separated available equipment (e.g. 'barbell,dumbbell,cable,bench'). Defaults to a full commercial gym.")),
	mcp.WithString("target_muscles", mcp.Description("Comma-separated muscles, required for body_part intent (e.g. 'biceps,triceps')")),
	mcp.WithString("pinned", mcp.Description("Comma-separated exercise IDs the plan must include")),
	mcp.WithString("readiness", mcp.Description("Pre-session readiness 1 (wrecked) to 5 (fresh)")),
	mcp.WithString("seed", mcp.Description("Tie-break seed. The same seed and inputs reproduce the same plan.")),
)

var toolGetVolumeStatus = mcp.NewTool("get_volume_status",
	mcp.WithDescription("Weekly training volume per muscle from logged history, labeled against MV/MEV/MAV/MRV landmarks. Optionally interpolates mesocycle targets."),
	mcp.WithString("week", mcp.Description("Current mesocycle week (1-based). Enables interpolated weekly targets.")),
	mcp.WithString("weeks", mcp.Description("Mesocycle length in weeks. Required with week.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog with movement patterns, muscles, equipment, and fatigue metadata."),
	mcp.WithString("split", mcp.Description("Filter by split tag"), mcp.Enum("push", "pull", "legs", "core", "mobility", "prehab", "conditioning")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Log a completed, partial, or skipped session. Logged sets feed volume accounting and future exercise selection."),
	mcp.WithString("status", mcp.Description("How the session ended. Defaults to completed."), mcp.Enum("completed", "partial", "skipped")),
	mcp.WithString("date", mcp.Description("Session date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("readiness", mcp.Description("Self-reported readiness 1-5")),
	mcp.WithString("performed", mcp.Description("JSON array of performed exercises: [{\"exercise_id\":\"...\",\"sets\":[{\"reps\":8,\"weight_kg\":60}]}]")),
)

var toolSuggestSubstitutions = mcp.NewTool("suggest_substitutions",
	mcp.WithDescription("Rank pain-safe alternatives for an exercise that collides with a pain flag. Alternatives share the original's split, avoid the flagged joint, and fit the available equipment."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise ID to replace")),
	mcp.WithString("body_part", mcp.Required(), mcp.Description("Painful joint or region"), mcp.Enum("shoulder", "elbow", "wrist", "neck", "lower_back", "hip", "knee", "ankle")),
	mcp.WithString("severity", mcp.Description("Pain severity 1 (mild) to 3 (sharp). Defaults to 2.")),
	mcp.WithString("equipment", mcp.Description("Comma-separated available equipment. Defaults to a full commercial gym.")),
)

// fullGym is the equipment assumption when the caller does not narrow it.
var fullGym = []models.Equipment{
	models.EquipmentBarbell, models.EquipmentDumbbell, models.EquipmentKettlebell,
	models.EquipmentCable, models.EquipmentMachine, models.EquipmentBand,
	models.EquipmentBench, models.EquipmentPullupBar, models.EquipmentBodyweight,
}

// --- Tool handlers ---

func (h *handlers) generatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intentStr, err := req.RequireString("intent")
	if err != nil {
		return mcp.NewToolResultError("intent parameter is required"), nil
	}
	intent, ok := models.ParseIntent(intentStr)
	if !ok {
		return mcp.NewToolResultError("unknown intent: " + intentStr), nil
	}
	goalStr, err := req.RequireString("goal")
	if err != nil {
		return mcp.NewToolResultError("goal parameter is required"), nil
	}
	goal, ok := models.ParseGoal(goalStr)
	if !ok {
		return mcp.NewToolResultError("unknown goal: " + goalStr), nil
	}

	age := models.TrainingAge(req.GetString("training_age", string(models.AgeIntermediate)))

	minutes := 0
	if s := req.GetString("minutes", ""); s != "" {
		if minutes, err = strconv.Atoi(s); err != nil {
			return mcp.NewToolResultError("invalid minutes: " + s), nil
		}
	}

	equipment := fullGym
	if s := req.GetString("equipment", ""); s != "" {
		if equipment, err = parseEquipmentList(s); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var targets []models.Muscle
	if s := req.GetString("target_muscles", ""); s != "" {
		if targets, err = parseMuscleList(s); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var checkIn *models.SessionCheckIn
	if s := req.GetString("readiness", ""); s != "" {
		r, err := strconv.Atoi(s)
		if err != nil || r < 1 || r > 5 {
			return mcp.NewToolResultError("readiness must be 1-5"), nil
		}
		checkIn = &models.SessionCheckIn{Readiness: &r}
	}

	var seed uint64
	if s := req.GetString("seed", ""); s != "" {
		if seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return mcp.NewToolResultError("invalid seed: " + s), nil
		}
	}

	uid := UserIDFromContext(ctx)
	catalog, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp generate_plan", "error", err)
		return mcp.NewToolResultError("loading catalog: " + err.Error()), nil
	}
	history, err := h.ds.QueryHistory(ctx, uid, time.Now().Add(-historyWindow))
	if err != nil {
		h.log.Error("mcp generate_plan", "error", err)
		return mcp.NewToolResultError("loading history: " + err.Error()), nil
	}

	result, err := h.eng.Generate(engine.Request{
		Profile:           models.UserProfile{TrainingAge: age},
		Goals:             models.Goals{Primary: goal},
		Constraints:       models.Constraints{SessionMinutes: minutes, Equipment: equipment},
		Intent:            intent,
		TargetMuscles:     targets,
		Catalog:           catalog,
		History:           history,
		CheckIn:           checkIn,
		PinnedExerciseIDs: parseList(req.GetString("pinned", "")),
		Seed:              seed,
	})
	if err != nil {
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	planID := uuid.New()
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	reqJSON, _ := json.Marshal(req.GetArguments())
	if err := h.ds.InsertPlan(ctx, storage.PlanRecord{
		ID:        planID,
		UserID:    uid,
		CreatedAt: time.Now(),
		Request:   reqJSON,
		Result:    resultJSON,
	}); err != nil {
		h.log.Error("mcp generate_plan persist", "error", err)
	}

	out, err := mcp.NewToolResultJSON(map[string]any{
		"id":            planID,
		"plan":          result.Plan,
		"selection":     result.Selection,
		"warnings":      result.Warnings,
		"substitutions": result.Substitutions,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) getVolumeStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var meso *models.MesocyclePosition
	if s := req.GetString("week", ""); s != "" {
		week, err := strconv.Atoi(s)
		if err != nil {
			return mcp.NewToolResultError("invalid week: " + s), nil
		}
		length, err := strconv.Atoi(req.GetString("weeks", ""))
		if err != nil || length < 1 {
			return mcp.NewToolResultError("weeks parameter required with week"), nil
		}
		meso = &models.MesocyclePosition{Week: week, Length: length}
	}

	uid := UserIDFromContext(ctx)
	catalog, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp get_volume_status", "error", err)
		return mcp.NewToolResultError("loading catalog: " + err.Error()), nil
	}
	history, err := h.ds.QueryHistory(ctx, uid, time.Now().Add(-historyWindow))
	if err != nil {
		h.log.Error("mcp get_volume_status", "error", err)
		return mcp.NewToolResultError("loading history: " + err.Error()), nil
	}

	vc := engine.BuildContext(history, catalog, nil, meso, h.rules, time.Now())

	type muscleVolume struct {
		Muscle       models.Muscle          `json:"muscle"`
		RecentSets   float64                `json:"recent_sets"`
		PreviousSets float64                `json:"previous_sets"`
		Landmarks    models.VolumeLandmarks `json:"landmarks"`
		TargetSets   float64                `json:"target_sets,omitempty"`
		Status       string                 `json:"status"`
	}

	var report []muscleVolume
	for _, m := range models.Muscles() {
		lm, ok := h.rules.Landmarks[m]
		if !ok {
			continue
		}
		row := muscleVolume{
			Muscle:       m,
			RecentSets:   vc.Recent[m],
			PreviousSets: vc.Previous[m],
			Landmarks:    lm,
			Status:       volumeLabel(vc.Recent[m], lm),
		}
		if state, ok := vc.States[m]; ok {
			row.TargetSets = state.TargetSets
		}
		report = append(report, row)
	}

	out, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func volumeLabel(sets float64, lm models.VolumeLandmarks) string {
	switch {
	case sets < lm.MV:
		return "below_maintenance"
	case sets < lm.MEV:
		return "maintenance"
	case sets <= lm.MAV:
		return "adaptive"
	case sets <= lm.MRV:
		return "approaching_mrv"
	default:
		return "over_mrv"
	}
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if s := req.GetString("split", ""); s != "" {
		tag, ok := models.ParseSplitTag(s)
		if !ok {
			return mcp.NewToolResultError("unknown split: " + s), nil
		}
		var filtered []models.Exercise
		for _, ex := range exercises {
			if ex.HasSplitTag(tag) {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	out, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry := models.WorkoutHistoryEntry{
		ID:     uuid.New(),
		Date:   time.Now(),
		Status: models.StatusCompleted,
	}

	if s := req.GetString("status", ""); s != "" {
		switch models.CompletionStatus(s) {
		case models.StatusCompleted, models.StatusPartial, models.StatusSkipped:
			entry.Status = models.CompletionStatus(s)
		default:
			return mcp.NewToolResultError("unknown status: " + s), nil
		}
	}
	if s := req.GetString("date", ""); s != "" {
		t, err := parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid date: " + s), nil
		}
		entry.Date = t
	}
	if s := req.GetString("readiness", ""); s != "" {
		r, err := strconv.Atoi(s)
		if err != nil || r < 1 || r > 5 {
			return mcp.NewToolResultError("readiness must be 1-5"), nil
		}
		entry.Readiness = &r
	}
	if s := req.GetString("performed", ""); s != "" {
		if err := unmarshalPerformed(s, &entry.Performed); err != nil {
			return mcp.NewToolResultError("invalid performed payload: " + err.Error()), nil
		}
	}

	uid := UserIDFromContext(ctx)
	inserted, err := h.ds.InsertHistory(ctx, uid, entry)
	if err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("saving session: " + err.Error()), nil
	}

	out, err := mcp.NewToolResultJSON(map[string]any{
		"id":       entry.ID,
		"inserted": inserted,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) suggestSubstitutions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exID, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	partStr, err := req.RequireString("body_part")
	if err != nil {
		return mcp.NewToolResultError("body_part parameter is required"), nil
	}
	part, ok := models.ParseBodyPart(partStr)
	if !ok {
		return mcp.NewToolResultError("unknown body part: " + partStr), nil
	}

	severity := 2
	if s := req.GetString("severity", ""); s != "" {
		if severity, err = strconv.Atoi(s); err != nil || severity < 1 || severity > 3 {
			return mcp.NewToolResultError("severity must be 1-3"), nil
		}
	}

	equipment := fullGym
	if s := req.GetString("equipment", ""); s != "" {
		if equipment, err = parseEquipmentList(s); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	catalog, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp suggest_substitutions", "error", err)
		return mcp.NewToolResultError("loading catalog: " + err.Error()), nil
	}

	var target *models.Exercise
	for i := range catalog {
		if catalog[i].ID == exID {
			target = &catalog[i]
			break
		}
	}
	if target == nil {
		return mcp.NewToolResultError("unknown exercise: " + exID), nil
	}

	suggestions := h.eng.SuggestSubstitutions(
		[]models.Exercise{*target},
		catalog,
		map[models.BodyPart]int{part: severity},
		models.Constraints{Equipment: equipment},
	)
	if suggestions == nil {
		suggestions = []models.SubstitutionSuggestion{}
	}

	out, err := mcp.NewToolResultJSON(suggestions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

func unmarshalPerformed(s string, dst *[]models.PerformedExercise) error {
	return json.Unmarshal([]byte(s), dst)
}
