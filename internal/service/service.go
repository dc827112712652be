package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/platefull/recommendation-service/internal/domain"
	"github.com/platefull/recommendation-service/internal/engine"
	"github.com/platefull/recommendation-service/internal/metrics"
)

const (
	defaultBatchConcurrency = 10
	suggestionLimit         = 10
)

// CatalogStore is the read/write surface the orchestrator needs from the
// catalog and preference store. *repository.Repository satisfies it.
type CatalogStore interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurantByID(ctx context.Context, restaurantID int64) (*domain.Restaurant, error)
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	ListDishesByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Dish, error)
	GetUserPreferences(ctx context.Context, userID int64) (*domain.UserPreferences, error)
	UpdateUserPreferences(ctx context.Context, prefs domain.UserPreferences) error
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

// BundleCache is the cache surface. *cache.Cache satisfies it.
type BundleCache interface {
	GetBundle(ctx context.Context, userID int64) (*domain.RecommendationBundle, bool, error)
	SetBundle(ctx context.Context, userID int64, bundle *domain.RecommendationBundle) error
	ClearUserCache(ctx context.Context, userID int64) error
}

type Service struct {
	store   CatalogStore
	cache   BundleCache
	engine  *engine.Engine
	weather engine.WeatherSource
	clock   engine.Clock
	logger  *zap.Logger

	batchConcurrency int
}

func NewService(store CatalogStore, cache BundleCache, eng *engine.Engine, weather engine.WeatherSource, clock engine.Clock, logger *zap.Logger, batchConcurrency int) *Service {
	if batchConcurrency < 1 {
		batchConcurrency = defaultBatchConcurrency
	}
	return &Service{
		store:            store,
		cache:            cache,
		engine:           eng,
		weather:          weather,
		clock:            clock,
		logger:           logger,
		batchConcurrency: batchConcurrency,
	}
}

// buildContext derives the environmental context exactly once per request;
// restaurant and dish scoring within one response share it.
func (s *Service) buildContext() domain.RecommendationContext {
	return domain.RecommendationContext{
		TimeOfDay: engine.TimeOfDayAt(s.clock().Hour()),
		Weather:   s.weather.Current(),
	}
}

// GetPersonalizedRecommendations produces the full bucketed bundle for a
// user, serving from cache when a fresh bundle exists.
func (s *Service) GetPersonalizedRecommendations(ctx context.Context, userID int64) (*domain.BundleResult, error) {
	cached, found, err := s.cache.GetBundle(ctx, userID)
	if err != nil {
		s.logger.Warn("cache get failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	if found {
		metrics.BundleCacheHits.Inc()
		return &domain.BundleResult{Bundle: cached, CacheHit: true}, nil
	}
	metrics.BundleCacheMisses.Inc()

	bundle, err := s.generateBundle(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.SetBundle(ctx, userID, bundle); cacheErr != nil {
		s.logger.Warn("cache set failed", zap.Int64("user_id", userID), zap.Error(cacheErr))
	}

	return &domain.BundleResult{Bundle: bundle, CacheHit: false}, nil
}

func (s *Service) generateBundle(ctx context.Context, userID int64) (*domain.RecommendationBundle, error) {
	prefs, err := s.store.GetUserPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}

	restaurants, err := s.store.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch restaurants: %w", err)
	}

	dishes, err := s.store.ListDishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dishes: %w", err)
	}

	timer := prometheus.NewTimer(metrics.ScoringDuration)
	defer timer.ObserveDuration()

	rctx := s.buildContext()
	scoredRestaurants := s.scoreRestaurants(restaurants, *prefs, rctx)
	scoredDishes := s.scoreDishes(dishes, *prefs, rctx)

	return &domain.RecommendationBundle{
		Context: domain.BundleContext{
			TimeOfDay:       rctx.TimeOfDay,
			Weather:         rctx.Weather,
			UserPreferences: prefs.DietaryPreferences,
		},
		Restaurants: applyBuckets(scoredRestaurants, restaurantBuckets()),
		Dishes:      applyBuckets(scoredDishes, s.dishBuckets(rctx, *prefs)),
	}, nil
}

// GetRestaurantRecommendations scores one restaurant's menu. An unknown
// restaurant id surfaces as domain.ErrRestaurantNotFound.
func (s *Service) GetRestaurantRecommendations(ctx context.Context, userID, restaurantID int64) (*domain.MenuRecommendations, error) {
	restaurant, err := s.store.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch restaurant: %w", err)
	}

	prefs, err := s.store.GetUserPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}

	menu, err := s.store.ListDishesByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("fetch menu for restaurant %d: %w", restaurantID, err)
	}

	rctx := s.buildContext()
	scored := s.scoreDishes(menu, *prefs, rctx)

	return &domain.MenuRecommendations{
		Restaurant:      *restaurant,
		Recommendations: applyBuckets(scored, s.menuBuckets(rctx)),
	}, nil
}

// GetContextualSuggestions filters the dish catalog, scores what remains
// and returns the top suggestions with the context that produced them.
func (s *Service) GetContextualSuggestions(ctx context.Context, userID int64, filters domain.SuggestionFilters) (*domain.ContextualSuggestions, error) {
	prefs, err := s.store.GetUserPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}

	dishes, err := s.store.ListDishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dishes: %w", err)
	}

	if filters.Dietary != "" {
		dishes = filterDishes(dishes, func(d domain.Dish) bool {
			return hasTag(d.Dietary, filters.Dietary)
		})
	}
	if filters.MaxPrice > 0 {
		dishes = filterDishes(dishes, func(d domain.Dish) bool {
			return d.Price <= filters.MaxPrice
		})
	}
	if filters.Cuisine != "" {
		restaurantIDs, err := s.restaurantIDsByCuisine(ctx, filters.Cuisine)
		if err != nil {
			return nil, err
		}
		dishes = filterDishes(dishes, func(d domain.Dish) bool {
			return restaurantIDs[d.RestaurantID]
		})
	}

	rctx := s.buildContext()
	scored := s.scoreDishes(dishes, *prefs, rctx)
	if len(scored) > suggestionLimit {
		scored = scored[:suggestionLimit]
	}

	return &domain.ContextualSuggestions{Context: rctx, Suggestions: scored}, nil
}

func (s *Service) restaurantIDsByCuisine(ctx context.Context, cuisine string) (map[int64]bool, error) {
	restaurants, err := s.store.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch restaurants: %w", err)
	}
	ids := make(map[int64]bool)
	for _, r := range restaurants {
		if hasTag(r.Cuisine, cuisine) {
			ids[r.ID] = true
		}
	}
	return ids, nil
}

// UpdateUserPreferences persists a new preference profile and drops the
// user's cached bundles so the next request rescores against it.
func (s *Service) UpdateUserPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	if err := s.store.UpdateUserPreferences(ctx, prefs); err != nil {
		return err
	}
	if err := s.cache.ClearUserCache(ctx, prefs.UserID); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Int64("user_id", prefs.UserID), zap.Error(err))
	}
	return nil
}

// GetBatchRecommendations generates bundles for one page of users with a
// bounded worker pool.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.store.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}

	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}
	metrics.BatchUsersProcessed.WithLabelValues(domain.StatusSuccess).Add(float64(successCount))
	metrics.BatchUsersProcessed.WithLabelValues(domain.StatusFailed).Add(float64(failedCount))

	elapsed := time.Since(start).Milliseconds()

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: elapsed,
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Generates a bundle for a single user, capturing errors.
func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	result, err := s.GetPersonalizedRecommendations(ctx, userID)
	if err != nil {
		s.logger.Warn("batch generation failed", zap.Int64("user_id", userID), zap.Error(err))
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchUserResult{
		UserID: userID,
		Bundle: result.Bundle,
		Status: domain.StatusSuccess,
	}
}

func (s *Service) scoreRestaurants(restaurants []domain.Restaurant, prefs domain.UserPreferences, rctx domain.RecommendationContext) []domain.ScoredRestaurant {
	scored := make([]domain.ScoredRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		score := s.engine.RestaurantAffinity(r, prefs)
		scored = append(scored, domain.ScoredRestaurant{
			Restaurant:    r,
			AffinityScore: score,
			Reason:        s.engine.RestaurantReason(rctx, score),
		})
	}

	// Stable sort: equal scores keep catalog order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AffinityScore > scored[j].AffinityScore
	})
	return scored
}

func (s *Service) scoreDishes(dishes []domain.Dish, prefs domain.UserPreferences, rctx domain.RecommendationContext) []domain.ScoredDish {
	scored := make([]domain.ScoredDish, 0, len(dishes))
	for _, d := range dishes {
		score := s.engine.DishAffinity(d, prefs, rctx.TimeOfDay, rctx.Weather)
		scored = append(scored, domain.ScoredDish{
			Dish:          d,
			AffinityScore: score,
			Reason:        s.engine.DishReason(d, rctx, score),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AffinityScore > scored[j].AffinityScore
	})
	return scored
}

func categorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		return "user_not_found", "user not found"
	}
	if errors.Is(err, domain.ErrRestaurantNotFound) {
		return "restaurant_not_found", "restaurant not found"
	}
	return "internal_error", "an unexpected error occurred"
}

func filterDishes(dishes []domain.Dish, keep func(domain.Dish) bool) []domain.Dish {
	out := make([]domain.Dish, 0, len(dishes))
	for _, d := range dishes {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
