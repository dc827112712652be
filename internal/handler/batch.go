package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

// GET /recommendations/batch?page=&limit=
func (h *Handler) GetBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page", 1, 1, 10000)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", 20, 1, 100)
	if !ok {
		return
	}

	result, err := h.service.GetBatchRecommendations(r.Context(), page, limit)
	if err != nil {
		// Batch is the slowest endpoint, so the middleware timeout is a
		// realistic outcome; report it as such rather than a server fault.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// queryInt parses an optional integer query parameter, enforcing bounds.
func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < min || parsed > max {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name+" parameter")
		return 0, false
	}
	return parsed, true
}
