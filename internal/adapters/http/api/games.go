// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/ascent/internal/app"
	"github.com/okian/ascent/internal/domain/arbitrage"
)

// GameDependencies defines the interface for game session operations.
type GameDependencies interface {
	StartGame(ctx context.Context, playerID, mode string) (GameStart, error)
	Attempt(ctx context.Context, sessionID, input string) (AttemptResult, error)
	SessionLeaderboard(ctx context.Context, sessionID string) (map[string][]float64, error)
	Visualize(ctx context.Context, sessionID, sequence string) (arbitrage.Visualization, error)
}

// GamesHandler handles game session requests.
type GamesHandler struct {
	deps GameDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

type createGameRequest struct {
	PlayerID string `json:"player_id"`
	Mode     string `json:"mode"`
}

type attemptRequest struct {
	Input string `json:"input"`
}

type visualizationRequest struct {
	Sequence string `json:"sequence"`
}

// HandleCreateGame handles POST /games requests.
func (h *GamesHandler) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_game"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	start, err := h.deps.StartGame(r.Context(), req.PlayerID, req.Mode)
	if err != nil {
		if errors.Is(err, arbitrage.ErrInvalidMode) {
			writeError(w, http.StatusBadRequest, "invalid_mode", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, start)
}

// HandleGameSubresource routes /games/{id}/attempts, /games/{id}/leaderboard,
// and /games/{id}/visualization.
func (h *GamesHandler) HandleGameSubresource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/games/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	sessionID := parts[0]

	switch parts[1] {
	case "attempts":
		h.handleAttempt(w, r, sessionID)
	case "leaderboard":
		h.handleLeaderboard(w, r, sessionID)
	case "visualization":
		h.handleVisualization(w, r, sessionID)
	default:
		http.NotFound(w, r)
	}
}

// handleAttempt handles POST /games/{id}/attempts requests.
func (h *GamesHandler) handleAttempt(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.attempt"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	result, err := h.deps.Attempt(r.Context(), sessionID, req.Input)
	if err != nil {
		switch {
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, service.ErrSessionCompleted):
			writeError(w, http.StatusConflict, "session_completed", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleLeaderboard handles GET /games/{id}/leaderboard requests.
func (h *GamesHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.session_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.SessionLeaderboard(r.Context(), sessionID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// handleVisualization handles POST /games/{id}/visualization requests.
func (h *GamesHandler) handleVisualization(w http.ResponseWriter, r *http.Request, sessionID string) {
	const op = "api.visualization"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req visualizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	viz, err := h.deps.Visualize(r.Context(), sessionID, req.Sequence)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, viz)
}
