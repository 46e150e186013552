package localdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meltforce/liftplan/internal/models"
	_ "modernc.org/sqlite"
)

// Store is the single-file SQLite store the offline CLI runs against. It
// mirrors the server repositories' read surface so the generator does not
// care which backend fed it.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at dir/liftplan.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "liftplan.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS exercises (
			id   TEXT PRIMARY KEY,
			doc  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS workout_history (
			id        TEXT PRIMARY KEY,
			date      TIMESTAMP NOT NULL,
			doc       TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// SyncCatalog replaces or inserts catalog rows.
func (s *Store) SyncCatalog(ctx context.Context, exercises []models.Exercise) error {
	for _, ex := range exercises {
		doc, err := json.Marshal(ex)
		if err != nil {
			return fmt.Errorf("encoding exercise %s: %w", ex.ID, err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO exercises (id, doc) VALUES (?, ?)`,
			ex.ID, string(doc)); err != nil {
			return fmt.Errorf("upserting exercise %s: %w", ex.ID, err)
		}
	}
	return nil
}

// ListExercises returns the stored catalog ordered by id.
func (s *Store) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		var ex models.Exercise
		if err := json.Unmarshal([]byte(doc), &ex); err != nil {
			return nil, fmt.Errorf("decoding exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}

// SaveHistory inserts or replaces one logged session.
func (s *Store) SaveHistory(ctx context.Context, entry models.WorkoutHistoryEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO workout_history (id, date, doc) VALUES (?, ?, ?)`,
		entry.ID.String(), entry.Date.UTC(), string(doc)); err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// QueryHistory returns sessions since the given time, most recent first.
func (s *Store) QueryHistory(ctx context.Context, since time.Time) ([]models.WorkoutHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM workout_history WHERE date >= ? ORDER BY date DESC`,
		since.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutHistoryEntry
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		var entry models.WorkoutHistoryEntry
		if err := json.Unmarshal([]byte(doc), &entry); err != nil {
			return nil, fmt.Errorf("decoding history entry: %w", err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
