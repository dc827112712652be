package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/platefull/recommendation-service/internal/service"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
