package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meltforce/liftplan/internal/models"
)

// UpsertExercise inserts or replaces one catalog row. The full exercise
// document is stored as JSONB so the catalog schema can grow without
// migrations; id and name are lifted into columns for listing and lookups.
func (db *DB) UpsertExercise(ctx context.Context, ex models.Exercise) error {
	doc, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("encoding exercise %s: %w", ex.ID, err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, doc)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, doc = EXCLUDED.doc`,
		ex.ID, ex.Name, doc)
	if err != nil {
		return fmt.Errorf("upserting exercise %s: %w", ex.ID, err)
	}
	return nil
}

// SyncCatalog upserts every exercise of a catalog. Rows absent from the
// given catalog are left in place: history may still reference them.
func (db *DB) SyncCatalog(ctx context.Context, exercises []models.Exercise) error {
	for _, ex := range exercises {
		if err := db.UpsertExercise(ctx, ex); err != nil {
			return err
		}
	}
	return nil
}

// ListExercises returns the full catalog ordered by id.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx, `SELECT doc FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		var ex models.Exercise
		if err := json.Unmarshal(doc, &ex); err != nil {
			return nil, fmt.Errorf("decoding exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
