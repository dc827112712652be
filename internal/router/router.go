package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platefull/recommendation-service/internal/handler"
	"github.com/platefull/recommendation-service/internal/metrics"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestMetrics)

	// Routes
	r.Get("/users/{userID}/recommendations", h.GetRecommendations)
	r.Get("/users/{userID}/restaurants/{restaurantID}/recommendations", h.GetRestaurantRecommendations)
	r.Get("/users/{userID}/suggestions", h.GetSuggestions)
	r.Put("/users/{userID}/preferences", h.UpdatePreferences)
	r.Get("/recommendations/batch", h.GetBatchRecommendations)
	r.Get("/health", healthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}
