package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrPlanNotFound is returned when a plan id has no row.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRecord is one persisted generation: the request that produced it and
// the full result, both as JSON documents.
type PlanRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
}

// InsertPlan persists a generated plan.
func (db *DB) InsertPlan(ctx context.Context, rec PlanRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO plans (id, user_id, created_at, request, result)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.UserID, rec.CreatedAt, rec.Request, rec.Result)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a persisted plan by id.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID, userID int) (*PlanRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, created_at, request, result
		 FROM plans
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	var rec PlanRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.CreatedAt, &rec.Request, &rec.Result)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	return &rec, nil
}
