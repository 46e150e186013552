package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/engine"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// Single-user deployment. All rows hang off user 1.
const defaultUserID = 1

// historyWindow bounds how far back the generator looks. Wider than the
// engine's own volume windows so cold-start detection sees enough sessions.
const historyWindow = 28 * 24 * time.Hour

// planRequest is the POST /api/v1/plans body. Catalog and history come from
// storage, everything else from the caller.
type planRequest struct {
	Profile       models.UserProfile             `json:"profile"`
	Goals         models.Goals                   `json:"goals"`
	Constraints   models.Constraints             `json:"constraints"`
	Intent        models.Intent                  `json:"intent"`
	TargetMuscles []models.Muscle                `json:"target_muscles,omitempty"`
	CheckIn       *models.SessionCheckIn         `json:"check_in,omitempty"`
	Periodization *models.PeriodizationModifiers `json:"periodization,omitempty"`
	Mesocycle     *models.MesocyclePosition      `json:"mesocycle,omitempty"`

	PinnedExerciseIDs []string       `json:"pinned_exercise_ids,omitempty"`
	SetOverrides      map[string]int `json:"set_overrides,omitempty"`
	Template          []string       `json:"template,omitempty"`
	SlotCount         int            `json:"slot_count,omitempty"`
	Seed              uint64         `json:"seed,omitempty"`
}

// validate rejects unmapped taxonomy values at the boundary instead of letting
// them flow into selection math as never-matching strings. Intent and goal are
// covered by the engine's own request validation.
func (pr planRequest) validate() error {
	if age := pr.Profile.TrainingAge; age != "" {
		if _, ok := models.ParseTrainingAge(string(age)); !ok {
			return fmt.Errorf("unknown training age %q", age)
		}
	}
	for _, eq := range pr.Constraints.Equipment {
		if _, ok := models.ParseEquipment(string(eq)); !ok {
			return fmt.Errorf("unknown equipment %q", eq)
		}
	}
	if split := pr.Constraints.Split; split != "" {
		if _, ok := models.ParseSplitTag(string(split)); !ok {
			return fmt.Errorf("unknown split %q", split)
		}
	}
	for _, m := range pr.TargetMuscles {
		if _, ok := models.ParseMuscle(string(m)); !ok {
			return fmt.Errorf("unknown target muscle %q", m)
		}
	}
	if pr.CheckIn != nil {
		for bp := range pr.CheckIn.PainFlags {
			if _, ok := models.ParseBodyPart(string(bp)); !ok {
				return fmt.Errorf("unknown body part %q in pain flags", bp)
			}
		}
	}
	return nil
}

type planResponse struct {
	ID            uuid.UUID                       `json:"id"`
	Plan          models.WorkoutPlan              `json:"plan"`
	Selection     models.SelectionOutput          `json:"selection"`
	Warnings      []models.SraWarning             `json:"warnings,omitempty"`
	Substitutions []models.SubstitutionSuggestion `json:"substitutions,omitempty"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}

	var pr planRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&pr); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := pr.validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	catalog, err := s.store.ListExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	history, err := s.store.QueryHistory(r.Context(), defaultUserID, time.Now().Add(-historyWindow))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Identical request against identical history reproduces the same plan,
	// so the cached response (including its id) is still the right answer.
	key := cacheKey(body, history)
	if cached, ok := s.planCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.eng.Generate(engine.Request{
		Profile:           pr.Profile,
		Goals:             pr.Goals,
		Constraints:       pr.Constraints,
		Intent:            pr.Intent,
		TargetMuscles:     pr.TargetMuscles,
		Catalog:           catalog,
		History:           history,
		CheckIn:           pr.CheckIn,
		Periodization:     pr.Periodization,
		Mesocycle:         pr.Mesocycle,
		PinnedExerciseIDs: pr.PinnedExerciseIDs,
		SetOverrides:      pr.SetOverrides,
		Template:          pr.Template,
		SlotCount:         pr.SlotCount,
		Seed:              pr.Seed,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp := planResponse{
		ID:            uuid.New(),
		Plan:          result.Plan,
		Selection:     result.Selection,
		Warnings:      result.Warnings,
		Substitutions: result.Substitutions,
	}

	resultJSON, err := json.Marshal(resp)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	rec := storage.PlanRecord{
		ID:        resp.ID,
		UserID:    defaultUserID,
		CreatedAt: time.Now(),
		Request:   body,
		Result:    resultJSON,
	}
	if err := s.store.InsertPlan(r.Context(), rec); err != nil {
		s.log.Error("persist plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.planCache.Add(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return
	}

	rec, err := s.store.GetPlan(r.Context(), id, defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         rec.ID,
		"created_at": rec.CreatedAt,
		"request":    rec.Request,
		"result":     rec.Result,
	})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.store.ListExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleInsertHistory(w http.ResponseWriter, r *http.Request) {
	var entry models.WorkoutHistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	switch entry.Status {
	case models.StatusCompleted, models.StatusPartial, models.StatusSkipped:
	case "":
		entry.Status = models.StatusCompleted
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status " + string(entry.Status)})
		return
	}

	inserted, err := s.store.InsertHistory(r.Context(), defaultUserID, entry)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !inserted {
		writeJSON(w, http.StatusOK, map[string]any{"id": entry.ID, "status": "duplicate"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": entry.ID, "status": "created"})
}

// muscleVolume is one row of the volume status report.
type muscleVolume struct {
	Muscle       models.Muscle          `json:"muscle"`
	RecentSets   float64                `json:"recent_sets"`
	PreviousSets float64                `json:"previous_sets"`
	Landmarks    models.VolumeLandmarks `json:"landmarks"`
	TargetSets   float64                `json:"target_sets,omitempty"`
	Status       string                 `json:"status"`
}

func (s *Server) handleVolumeStatus(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.store.ListExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	history, err := s.store.QueryHistory(r.Context(), defaultUserID, time.Now().Add(-historyWindow))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// ?week=N&weeks=M enables mesocycle-interpolated targets.
	var meso *models.MesocyclePosition
	if wk := r.URL.Query().Get("week"); wk != "" {
		week, err := strconv.Atoi(wk)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week parameter"})
			return
		}
		length, err := strconv.Atoi(r.URL.Query().Get("weeks"))
		if err != nil || length < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weeks parameter required with week"})
			return
		}
		meso = &models.MesocyclePosition{Week: week, Length: length}
	}

	ctx := engine.BuildContext(history, catalog, nil, meso, s.rules, time.Now())

	var report []muscleVolume
	for _, m := range models.Muscles() {
		lm, ok := s.rules.Landmarks[m]
		if !ok {
			continue
		}
		row := muscleVolume{
			Muscle:       m,
			RecentSets:   ctx.Recent[m],
			PreviousSets: ctx.Previous[m],
			Landmarks:    lm,
			Status:       volumeStatus(ctx.Recent[m], lm),
		}
		if state, ok := ctx.States[m]; ok {
			row.TargetSets = state.TargetSets
		}
		report = append(report, row)
	}
	writeJSON(w, http.StatusOK, report)
}

// volumeStatus labels a weekly set count against the muscle's landmarks.
func volumeStatus(sets float64, lm models.VolumeLandmarks) string {
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

func cacheKey(body []byte, history []models.WorkoutHistoryEntry) string {
	h := sha256.New()
	h.Write(body)
	if hist, err := json.Marshal(history); err == nil {
		h.Write(hist)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
