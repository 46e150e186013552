package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meltforce/liftplan/internal/models"
)

// InsertHistory inserts a logged session. Returns true if inserted, false if
// the entry id already exists.
func (db *DB) InsertHistory(ctx context.Context, userID int, entry models.WorkoutHistoryEntry) (bool, error) {
	performed, err := json.Marshal(entry.Performed)
	if err != nil {
		return false, fmt.Errorf("encoding performed exercises: %w", err)
	}
	painFlags, err := json.Marshal(entry.PainFlags)
	if err != nil {
		return false, fmt.Errorf("encoding pain flags: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_history (id, user_id, date, status, readiness, pain_flags, performed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT DO NOTHING`,
		entry.ID, userID, entry.Date, entry.Status, entry.Readiness, painFlags, performed)
	if err != nil {
		return false, fmt.Errorf("inserting history entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryHistory returns sessions since the given time, most recent first, which
// is the order the generation engine expects.
func (db *DB) QueryHistory(ctx context.Context, userID int, since time.Time) ([]models.WorkoutHistoryEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date, status, readiness, pain_flags, performed
		 FROM workout_history
		 WHERE user_id = $1 AND date >= $2
		 ORDER BY date DESC`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutHistoryEntry
	for rows.Next() {
		var entry models.WorkoutHistoryEntry
		var painFlags, performed []byte
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Status, &entry.Readiness, &painFlags, &performed); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if len(painFlags) > 0 {
			if err := json.Unmarshal(painFlags, &entry.PainFlags); err != nil {
				return nil, fmt.Errorf("decoding pain flags: %w", err)
			}
		}
		if len(performed) > 0 {
			if err := json.Unmarshal(performed, &entry.Performed); err != nil {
				return nil, fmt.Errorf("decoding performed exercises: %w", err)
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
