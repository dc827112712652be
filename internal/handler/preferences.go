package handler

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/platefull/recommendation-service/internal/domain"
)

// PUT /users/{userID}/preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userID")
	if !ok {
		return
	}

	var prefs domain.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return
	}
	prefs.UserID = userID

	if prefs.SpiceLevelPreference < 0 || prefs.SpiceLevelPreference > 5 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "spice_level_preference must be between 0 and 5")
		return
	}
	if prefs.AvgOrderValue < 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "avg_order_value must be non-negative")
		return
	}

	if err := h.service.UpdateUserPreferences(r.Context(), prefs); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found",
				fmt.Sprintf("User with ID %d does not exist", userID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, PreferencesUpdatedResponse{UserID: userID, Status: "updated"})
}
