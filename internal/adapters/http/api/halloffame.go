// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/ascent/internal/domain/arbitrage"
)

// HallOfFameDependencies defines the interface for hall-of-fame queries.
type HallOfFameDependencies interface {
	HallOfFame(ctx context.Context, mode string, limit int) ([]Entry, error)
}

// HallOfFameHandler handles hall-of-fame requests.
type HallOfFameHandler struct {
	deps     HallOfFameDependencies
	maxLimit int
}

// NewHallOfFameHandler creates a new hall-of-fame handler.
func NewHallOfFameHandler(deps HallOfFameDependencies, maxLimit int) *HallOfFameHandler {
	return &HallOfFameHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetHallOfFame handles GET /halloffame?mode=M&limit=N requests.
func (h *HallOfFameHandler) HandleGetHallOfFame(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_halloffame"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	mode := r.URL.Query().Get("mode")
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.HallOfFame(r.Context(), mode, n)
	if err != nil {
		if errors.Is(err, arbitrage.ErrInvalidMode) {
			writeError(w, http.StatusBadRequest, "invalid_mode", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
