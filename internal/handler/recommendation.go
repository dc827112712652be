package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/platefull/recommendation-service/internal/domain"
)

// GET /users/{userID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}

	result, err := h.service.GetPersonalizedRecommendations(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, userID)
		return
	}

	resp := RecommendationResponse{
		UserID: userID,
		Bundle: result.Bundle,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /users/{userID}/restaurants/{restaurantID}/recommendations
func (h *Handler) GetRestaurantRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}
	restaurantID, ok := parseIDParam(w, r, "restaurantID")
	if !ok {
		return
	}

	menu, err := h.service.GetRestaurantRecommendations(r.Context(), userID, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			writeError(w, http.StatusNotFound, "restaurant_not_found",
				fmt.Sprintf("Restaurant with ID %d does not exist", restaurantID))
			return
		}
		h.respondServiceError(w, err, userID)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// GET /users/{userID}/suggestions?dietary=&max_price=&cuisine=
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}

	filters := domain.SuggestionFilters{
		Dietary: r.URL.Query().Get("dietary"),
		Cuisine: r.URL.Query().Get("cuisine"),
	}
	if maxPriceStr := r.URL.Query().Get("max_price"); maxPriceStr != "" {
		parsed, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid max_price parameter")
			return
		}
		filters.MaxPrice = parsed
	}

	suggestions, err := h.service.GetContextualSuggestions(r.Context(), userID, filters)
	if err != nil {
		h.respondServiceError(w, err, userID)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter",
			fmt.Sprintf("Invalid %s parameter", name))
		return 0, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, userID int64) {
	// User not found
	if errors.Is(err, domain.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user_not_found",
			fmt.Sprintf("User with ID %d does not exist", userID))
		return
	}
	// Request timeout
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
		return
	}
	h.logger.Error("request failed", zap.Int64("user_id", userID), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}
