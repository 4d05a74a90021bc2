package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ajmoran/hexfray/internal/hexmap"
	"github.com/ajmoran/hexfray/internal/pathfind"
	"github.com/ajmoran/hexfray/internal/telemetry"
)

// DefaultCombatBudget caps how many steps the authority approves per
// combat-mode plan. Exploration plans are uncapped.
const DefaultCombatBudget = 6

// Server is the path validation authority. It recomputes every plan
// over the snapshot grid the client sent, so clients cannot smuggle
// illegal moves past it.
type Server struct {
	logger       *slog.Logger
	combatBudget int
}

// NewServer creates the authority. A non-positive combatBudget falls
// back to DefaultCombatBudget.
func NewServer(logger *slog.Logger, combatBudget int) *Server {
	if combatBudget <= 0 {
		combatBudget = DefaultCombatBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, combatBudget: combatBudget}
}

// Handler returns the authority's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/move_path", s.handleMovePath)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleMovePath(w http.ResponseWriter, r *http.Request) {
	tracer := telemetry.Tracer("pathserver")
	_, span := tracer.Start(r.Context(), "pathserver.validate")
	defer span.End()

	start := time.Now()

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("rejecting malformed request", "err", err)
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	budget := -1
	if req.GameMode == "combat" {
		budget = s.combatBudget
	}

	grid := hexmap.FromSnapshot(req.GridSize, req.Cells)
	path := pathfind.FindPath(grid, req.Start, req.Goal, budget)
	if path == nil {
		// An empty approved path tells the client the plan is refused.
		path = []hexmap.Axial{}
	}

	span.SetAttributes(
		attribute.String("plan.id", req.PlanID),
		attribute.String("game.mode", req.GameMode),
		attribute.Int("plan.steps", len(path)),
	)
	s.logger.Info("validated plan",
		"plan", req.PlanID,
		"mode", req.GameMode,
		"approved", len(path) > 0,
		"steps", len(path),
		"took", time.Since(start),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(moveResponse{
		PlanID:       req.PlanID,
		ApprovedPath: path,
	}); err != nil {
		s.logger.Error("failed to write response", "err", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ListenAndServe runs the authority at addr until ctx is canceled,
// then shuts it down gracefully.
func ListenAndServe(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("path authority listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
