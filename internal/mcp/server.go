package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/liftplan/internal/catalog"
	"github.com/meltforce/liftplan/internal/engine"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, rules engine.Ruleset, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftPlan workout planning server. Generate single-session strength workouts, inspect weekly training volume against per-muscle landmarks, browse the exercise catalog, and rank pain-safe exercise substitutions. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, eng: engine.New(rules), rules: rules, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGeneratePlan, Handler: h.generatePlan},
		server.ServerTool{Tool: toolGetVolumeStatus, Handler: h.getVolumeStatus},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolSuggestSubstitutions, Handler: h.suggestSubstitutions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resStarterCatalog, Handler: h.starterCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds    DataSource
	eng   *engine.Engine
	rules engine.Ruleset
	log   *slog.Logger
}

// --- Resource definitions ---

var resStarterCatalog = mcp.NewResource(
	"liftplan://starter_catalog",
	"Starter Catalog",
	mcp.WithResourceDescription("The built-in exercise catalog with movement patterns, muscles, equipment, and fatigue metadata"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) starterCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := catalog.Starter()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
