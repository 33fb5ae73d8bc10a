// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/ascent/internal/domain/arbitrage"
	"github.com/okian/ascent/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Game session operations.
	StartGame(ctx context.Context, playerID, mode string) (types.GameStart, error)
	Attempt(ctx context.Context, sessionID, input string) (types.AttemptResult, error)
	SessionLeaderboard(ctx context.Context, sessionID string) (map[string][]float64, error)
	Visualize(ctx context.Context, sessionID, sequence string) (arbitrage.Visualization, error)

	// Cross-session hall of fame.
	HallOfFame(ctx context.Context, mode string, limit int) ([]Entry, error)

	// Resume synergy analysis, sync and async.
	AnalyzeResume(ctx context.Context, resumeText string, teamCount int) (types.AnalysisReport, error)
	SubmitAnalysis(ctx context.Context, requestID, resumeText string) (string, bool, error)
	Analysis(ctx context.Context, analysisID string) (types.AnalysisReport, error)
}

// Read shapes shared with the service layer.
type (
	Entry          = types.Entry
	GameStart      = types.GameStart
	AttemptResult  = types.AttemptResult
	AnalysisReport = types.AnalysisReport
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	gamesHandler      *GamesHandler
	hallOfFameHandler *HallOfFameHandler
	synergyHandler    *SynergyHandler
}

// NewServer creates a new API server with all handlers. maxFameLimit caps
// GET /halloffame?limit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxFameLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		gamesHandler:      NewGamesHandler(deps),
		hallOfFameHandler: NewHallOfFameHandler(deps, maxFameLimit),
		synergyHandler:    NewSynergyHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandleCreateGame, "games"))
	mux.HandleFunc("/games/", MetricsMiddleware(s.gamesHandler.HandleGameSubresource, "games"))
	mux.HandleFunc("/halloffame", MetricsMiddleware(s.hallOfFameHandler.HandleGetHallOfFame, "halloffame"))
	mux.HandleFunc("/synergy/analysis", MetricsMiddleware(s.synergyHandler.HandleAnalyze, "synergy_analysis"))
	mux.HandleFunc("/synergy/analyses", MetricsMiddleware(s.synergyHandler.HandleSubmitAnalysis, "synergy_analyses"))
	mux.HandleFunc("/synergy/analyses/", MetricsMiddleware(s.synergyHandler.HandleGetAnalysis, "synergy_analyses"))
	mux.HandleFunc("/synergy/resume", MetricsMiddleware(s.synergyHandler.HandleResumeUpload, "synergy_resume"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
