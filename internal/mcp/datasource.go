package mcp

import (
	"context"
	"time"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// DataSource abstracts the data layer for MCP tools so the server can run
// against Postgres or any store with the same read/write surface.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	QueryHistory(ctx context.Context, userID int, since time.Time) ([]models.WorkoutHistoryEntry, error)
	InsertHistory(ctx context.Context, userID int, entry models.WorkoutHistoryEntry) (bool, error)
	InsertPlan(ctx context.Context, rec storage.PlanRecord) error
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
