package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/catalog"
	"github.com/meltforce/liftplan/internal/engine"
	"github.com/meltforce/liftplan/internal/localdb"
	"github.com/meltforce/liftplan/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// historyWindow bounds how far back the generator reads logged sessions.
const historyWindow = 28 * 24 * time.Hour

func main() {
	storeDir := flag.String("store", "", "path to local store directory (default ~/.liftplan)")
	catalogPath := flag.String("catalog", "", "path to a catalog YAML (default: built-in starter catalog)")
	rulesPath := flag.String("rules", "", "path to a ruleset YAML overlay")
	intent := flag.String("intent", "full_body", "session intent: push, pull, legs, upper, lower, full_body, body_part")
	goal := flag.String("goal", "hypertrophy", "primary goal: strength, hypertrophy, fat_loss, endurance, general_fitness")
	age := flag.String("age", "intermediate", "training age: beginner, intermediate, advanced")
	minutes := flag.Int("minutes", 0, "session time budget in minutes (0 = unlimited)")
	equipment := flag.String("equipment", "barbell,dumbbell,cable,machine,bench,pullup_bar", "comma-separated available equipment")
	targets := flag.String("targets", "", "comma-separated target muscles (body_part intent)")
	pinned := flag.String("pin", "", "comma-separated exercise IDs to pin")
	readiness := flag.Int("readiness", 0, "pre-session readiness 1-5 (0 = not reported)")
	seed := flag.Uint64("seed", 0, "tie-break seed; same seed and inputs reproduce the plan")
	logFile := flag.String("log", "", "log a session from a JSON file instead of generating")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftplan-gen", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	dir := *storeDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(home, ".liftplan")
	}

	store, err := localdb.Open(dir)
	if err != nil {
		log.Error("failed to open local store", "dir", dir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var exercises []models.Exercise
	if *catalogPath != "" {
		exercises, err = catalog.Load(*catalogPath)
	} else {
		exercises, err = catalog.Starter()
	}
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	if err := store.SyncCatalog(ctx, exercises); err != nil {
		log.Error("catalog sync failed", "error", err)
		os.Exit(1)
	}

	if *logFile != "" {
		if err := logSession(ctx, store, *logFile); err != nil {
			log.Error("failed to log session", "error", err)
			os.Exit(1)
		}
		return
	}

	rules := engine.DefaultRuleset()
	if *rulesPath != "" {
		rules, err = engine.LoadRuleset(*rulesPath)
		if err != nil {
			log.Error("failed to load ruleset", "error", err)
			os.Exit(1)
		}
	}

	req, err := buildRequest(*intent, *goal, *age, *minutes, *equipment, *targets, *pinned, *readiness, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	req.Catalog = exercises
	req.History, err = store.QueryHistory(ctx, time.Now().Add(-historyWindow))
	if err != nil {
		log.Error("failed to read history", "error", err)
		os.Exit(1)
	}

	result, err := engine.New(rules).Generate(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
}

func buildRequest(
	intentStr, goalStr, ageStr string,
	minutes int,
	equipmentStr, targetsStr, pinnedStr string,
	readiness int,
	seed uint64,
) (engine.Request, error) {
	intent, ok := models.ParseIntent(intentStr)
	if !ok {
		return engine.Request{}, fmt.Errorf("unknown intent %q", intentStr)
	}
	goal, ok := models.ParseGoal(goalStr)
	if !ok {
		return engine.Request{}, fmt.Errorf("unknown goal %q", goalStr)
	}

	var equipment []models.Equipment
	for _, item := range splitList(equipmentStr) {
		eq, ok := models.ParseEquipment(item)
		if !ok {
			return engine.Request{}, fmt.Errorf("unknown equipment %q", item)
		}
		equipment = append(equipment, eq)
	}

	var targetMuscles []models.Muscle
	for _, item := range splitList(targetsStr) {
		m, ok := models.ParseMuscle(item)
		if !ok {
			return engine.Request{}, fmt.Errorf("unknown muscle %q", item)
		}
		targetMuscles = append(targetMuscles, m)
	}

	var checkIn *models.SessionCheckIn
	if readiness != 0 {
		if readiness < 1 || readiness > 5 {
			return engine.Request{}, fmt.Errorf("readiness must be 1-5, got %d", readiness)
		}
		r := readiness
		checkIn = &models.SessionCheckIn{Readiness: &r}
	}

	return engine.Request{
		Profile:           models.UserProfile{TrainingAge: models.TrainingAge(ageStr)},
		Goals:             models.Goals{Primary: goal},
		Constraints:       models.Constraints{SessionMinutes: minutes, Equipment: equipment},
		Intent:            intent,
		TargetMuscles:     targetMuscles,
		CheckIn:           checkIn,
		PinnedExerciseIDs: splitList(pinnedStr),
		Seed:              seed,
	}, nil
}

// logSession reads a session JSON file and saves it to the local store.
func logSession(ctx context.Context, store *localdb.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading session file: %w", err)
	}
	var entry models.WorkoutHistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("parsing session file: %w", err)
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if entry.Status == "" {
		entry.Status = models.StatusCompleted
	}
	if err := store.SaveHistory(ctx, entry); err != nil {
		return err
	}
	fmt.Printf("logged session %s (%s)\n", entry.ID, entry.Date.Format("2006-01-02"))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
