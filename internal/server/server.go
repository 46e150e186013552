package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/meltforce/liftplan/internal/engine"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// planCacheSize bounds the in-memory cache of generated plans. Generation is
// deterministic per seed, so identical requests can be answered from cache.
const planCacheSize = 128

// Store abstracts the persistence layer the handlers run on. *storage.DB
// satisfies it; tests use an in-memory fake.
type Store interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	QueryHistory(ctx context.Context, userID int, since time.Time) ([]models.WorkoutHistoryEntry, error)
	InsertHistory(ctx context.Context, userID int, entry models.WorkoutHistoryEntry) (bool, error)
	InsertPlan(ctx context.Context, rec storage.PlanRecord) error
	GetPlan(ctx context.Context, id uuid.UUID, userID int) (*storage.PlanRecord, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	eng    *engine.Engine
	rules  engine.Ruleset
	log    *slog.Logger
	apiKey string
	router chi.Router

	planCache *lru.Cache[string, planResponse]
}

// New creates a new Server with all routes configured.
func New(store Store, rules engine.Ruleset, apiKey string, log *slog.Logger) *Server {
	cache, _ := lru.New[string, planResponse](planCacheSize)
	s := &Server{
		store:     store,
		eng:       engine.New(rules),
		rules:     rules,
		log:       log,
		apiKey:    apiKey,
		router:    chi.NewRouter(),
		planCache: cache,
	}
	s.routes()
	return s
}

// MountMCP attaches the MCP transport under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/plans", s.handleGeneratePlan)
		r.Post("/api/v1/history", s.handleInsertHistory)
	})

	// Read endpoints (no auth; the tailnet gates network access)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/volume", s.handleVolumeStatus)
}
