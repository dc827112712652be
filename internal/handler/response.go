package handler

import "github.com/platefull/recommendation-service/internal/domain"

type RecommendationResponse struct {
	UserID   int64                        `json:"user_id"`
	Bundle   *domain.RecommendationBundle `json:"bundle"`
	Metadata domain.RecommendationMeta    `json:"metadata"`
}

type PreferencesUpdatedResponse struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
