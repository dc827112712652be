package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platefull/recommendation-service/internal/domain"
	"github.com/platefull/recommendation-service/internal/engine"
)

type fakeStore struct {
	restaurants []domain.Restaurant
	dishes      []domain.Dish
	prefs       map[int64]domain.UserPreferences
	userIDs     []int64
}

func (f *fakeStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return f.restaurants, nil
}

func (f *fakeStore) GetRestaurantByID(ctx context.Context, restaurantID int64) (*domain.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.ID == restaurantID {
			out := r
			return &out, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (f *fakeStore) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	return f.dishes, nil
}

func (f *fakeStore) ListDishesByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Dish, error) {
	var menu []domain.Dish
	for _, d := range f.dishes {
		if d.RestaurantID == restaurantID {
			menu = append(menu, d)
		}
	}
	return menu, nil
}

func (f *fakeStore) GetUserPreferences(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &p, nil
}

func (f *fakeStore) UpdateUserPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	if _, ok := f.prefs[prefs.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	f.prefs[prefs.UserID] = prefs
	return nil
}

func (f *fakeStore) GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	return f.userIDs, nil
}

func (f *fakeStore) CountUsers(ctx context.Context) (int, error) {
	return len(f.userIDs), nil
}

type fakeCache struct {
	mu      sync.Mutex
	bundles map[int64]*domain.RecommendationBundle
	cleared int
}

func newFakeCache() *fakeCache {
	return &fakeCache{bundles: make(map[int64]*domain.RecommendationBundle)}
}

func (f *fakeCache) GetBundle(ctx context.Context, userID int64) (*domain.RecommendationBundle, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bundles[userID]
	return b, ok, nil
}

func (f *fakeCache) SetBundle(ctx context.Context, userID int64, bundle *domain.RecommendationBundle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bundles[userID] = bundle
	return nil
}

func (f *fakeCache) ClearUserCache(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bundles, userID)
	f.cleared++
	return nil
}

func basePrefs() domain.UserPreferences {
	return domain.UserPreferences{
		UserID:               1,
		DietaryPreferences:   []string{"veg"},
		SpiceLevelPreference: 2,
		Allergens:            []string{"nuts"},
		AvgOrderValue:        450,
	}
}

// dinnerAt8 pins the meal window to dinner for every test.
func dinnerAt8() time.Time {
	return time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
}

func newTestService(store *fakeStore, cache *fakeCache, weather domain.Weather) *Service {
	return NewService(store, cache, engine.New(), engine.FixedWeather(weather), dinnerAt8, zap.NewNop(), 2)
}

func TestPersonalizedBundleBuckets(t *testing.T) {
	store := &fakeStore{
		dishes: []domain.Dish{
			{ID: 1, RestaurantID: 1, Name: "Deluxe Thali", Category: "Thali", Price: 300, Discount: 30},
			{ID: 2, RestaurantID: 1, Name: "Garden Pizza", Category: "Pizza", Price: 300, Discount: 10},
			{ID: 3, RestaurantID: 1, Name: "Masala Chai", Category: "Beverages", Price: 50},
		},
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherSunny)

	result, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, result.Bundle)
	assert.False(t, result.CacheHit)

	dishes := result.Bundle.Dishes

	// discount 30 qualifies for both offer buckets, discount 10 for one
	offerIDs := dishIDs(dishes["specialOffers"])
	assert.Contains(t, offerIDs, int64(1))
	assert.Contains(t, offerIDs, int64(2))

	flashIDs := dishIDs(dishes["flashSales"])
	assert.Contains(t, flashIDs, int64(1))
	assert.NotContains(t, flashIDs, int64(2))

	budgetIDs := dishIDs(dishes["budgetFriendly"])
	assert.Equal(t, []int64{3}, budgetIDs)

	assert.Equal(t, domain.TimeDinner, result.Bundle.Context.TimeOfDay)
	assert.Equal(t, domain.WeatherSunny, result.Bundle.Context.Weather)
}

func TestHealthyChoicesRequiresKnownCalories(t *testing.T) {
	store := &fakeStore{
		dishes: []domain.Dish{
			{ID: 1, RestaurantID: 1, Name: "Garden Bowl", Category: "Bowls", Dietary: []string{"veg"}, Price: 220, Calories: 300},
			{ID: 2, RestaurantID: 1, Name: "Mystery Salad", Category: "Salads", Dietary: []string{"veg"}, Price: 200}, // calories unknown
			{ID: 3, RestaurantID: 1, Name: "Festive Platter", Category: "Thali", Dietary: []string{"veg"}, Price: 340, Calories: 850},
		},
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherSunny)

	result, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)

	healthy := dishIDs(result.Bundle.Dishes["healthyChoices"])
	assert.Equal(t, []int64{1}, healthy)
}

func TestTopPicksSortedAndStable(t *testing.T) {
	// Restaurants 2 and 3 score identically; catalog order must break the tie.
	store := &fakeStore{
		restaurants: []domain.Restaurant{
			{ID: 1, Name: "Trattoria", Rating: 4.5, DeliveryTime: 40, DeliveryFee: 10},
			{ID: 2, Name: "Spice Route", Rating: 4.0, DeliveryTime: 40, DeliveryFee: 10},
			{ID: 3, Name: "Green Bowl", Rating: 4.0, DeliveryTime: 40, DeliveryFee: 10},
		},
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherSunny)

	result, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)

	topPicks := result.Bundle.Restaurants["topPicks"]
	require.Len(t, topPicks, 3)

	for i := 1; i < len(topPicks); i++ {
		assert.GreaterOrEqual(t, topPicks[i-1].AffinityScore, topPicks[i].AffinityScore)
	}
	assert.Equal(t, int64(1), topPicks[0].ID)
	assert.Equal(t, int64(2), topPicks[1].ID)
	assert.Equal(t, int64(3), topPicks[2].ID)
}

func TestEmptyCatalog(t *testing.T) {
	store := &fakeStore{
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherCold)

	result, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)

	for name, items := range result.Bundle.Restaurants {
		assert.Empty(t, items, "restaurant bucket %q", name)
	}
	for name, items := range result.Bundle.Dishes {
		assert.Empty(t, items, "dish bucket %q", name)
	}

	// Every bucket is still present, just empty.
	assert.Len(t, result.Bundle.Restaurants, 5)
	assert.Len(t, result.Bundle.Dishes, 12)
}

func TestCacheHit(t *testing.T) {
	store := &fakeStore{
		dishes: []domain.Dish{{ID: 1, RestaurantID: 1, Category: "Pizza", Price: 150}},
		prefs:  map[int64]domain.UserPreferences{1: basePrefs()},
	}
	cache := newFakeCache()
	svc := newTestService(store, cache, domain.WeatherSunny)

	first, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Bundle, second.Bundle)
}

func TestUnknownUser(t *testing.T) {
	svc := newTestService(&fakeStore{prefs: map[int64]domain.UserPreferences{}}, newFakeCache(), domain.WeatherSunny)

	_, err := svc.GetPersonalizedRecommendations(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRestaurantRecommendations(t *testing.T) {
	store := &fakeStore{
		restaurants: []domain.Restaurant{
			{ID: 1, Name: "Trattoria", Rating: 4.5, Cuisine: []string{"Italian"}},
		},
		dishes: []domain.Dish{
			{ID: 1, RestaurantID: 1, Name: "Margherita", Category: "Pizza", Price: 250, IsPopular: true},
			{ID: 2, RestaurantID: 1, Name: "Tiramisu", Category: "Desserts", Price: 180},
			{ID: 3, RestaurantID: 2, Name: "Elsewhere Dish", Category: "Pizza", Price: 100},
		},
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherSunny)

	menu, err := svc.GetRestaurantRecommendations(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), menu.Restaurant.ID)

	// only this restaurant's menu is scored
	assert.NotContains(t, dishIDs(menu.Recommendations["topPicks"]), int64(3))

	history := dishIDs(menu.Recommendations["basedOnHistory"])
	assert.Equal(t, []int64{1}, history)

	// Pizza fits the pinned dinner window
	assert.Contains(t, dishIDs(menu.Recommendations["perfectForNow"]), int64(1))
}

func TestRestaurantRecommendationsNotFound(t *testing.T) {
	svc := newTestService(&fakeStore{prefs: map[int64]domain.UserPreferences{1: basePrefs()}}, newFakeCache(), domain.WeatherSunny)

	_, err := svc.GetRestaurantRecommendations(context.Background(), 1, 404)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestContextualSuggestionsFilters(t *testing.T) {
	store := &fakeStore{
		restaurants: []domain.Restaurant{
			{ID: 1, Name: "Trattoria", Cuisine: []string{"Italian"}},
			{ID: 2, Name: "Spice Route", Cuisine: []string{"Indian"}},
		},
		dishes: []domain.Dish{
			{ID: 1, RestaurantID: 1, Category: "Pizza", Dietary: []string{"veg"}, Price: 250},
			{ID: 2, RestaurantID: 2, Category: "Main Course", Dietary: []string{"veg"}, Price: 180},
			{ID: 3, RestaurantID: 2, Category: "Main Course", Price: 320},
		},
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherSunny)
	ctx := context.Background()

	byDiet, err := svc.GetContextualSuggestions(ctx, 1, domain.SuggestionFilters{Dietary: "veg"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, dishIDs(byDiet.Suggestions))

	byPrice, err := svc.GetContextualSuggestions(ctx, 1, domain.SuggestionFilters{MaxPrice: 200})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2}, dishIDs(byPrice.Suggestions))

	byCuisine, err := svc.GetContextualSuggestions(ctx, 1, domain.SuggestionFilters{Cuisine: "Italian"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1}, dishIDs(byCuisine.Suggestions))
}

func TestUpdatePreferencesClearsCache(t *testing.T) {
	store := &fakeStore{
		prefs: map[int64]domain.UserPreferences{1: basePrefs()},
	}
	cache := newFakeCache()
	svc := newTestService(store, cache, domain.WeatherSunny)

	_, err := svc.GetPersonalizedRecommendations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, cache.bundles, 1)

	updated := basePrefs()
	updated.SpiceLevelPreference = 4
	require.NoError(t, svc.UpdateUserPreferences(context.Background(), updated))

	assert.Empty(t, cache.bundles)
	assert.Equal(t, 1, cache.cleared)
	assert.Equal(t, 4, store.prefs[1].SpiceLevelPreference)
}

func TestBatchRecommendations(t *testing.T) {
	store := &fakeStore{
		dishes:  []domain.Dish{{ID: 1, RestaurantID: 1, Category: "Pizza", Price: 150}},
		prefs:   map[int64]domain.UserPreferences{1: basePrefs(), 2: {UserID: 2, AvgOrderValue: 300}},
		userIDs: []int64{1, 2, 99}, // 99 has no profile
	}

	svc := newTestService(store, newFakeCache(), domain.WeatherSunny)

	resp, err := svc.GetBatchRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, 2, resp.Summary.SuccessCount)
	assert.Equal(t, 1, resp.Summary.FailedCount)

	byUser := make(map[int64]domain.BatchUserResult)
	for _, r := range resp.Results {
		byUser[r.UserID] = r
	}
	assert.Equal(t, domain.StatusSuccess, byUser[1].Status)
	assert.NotNil(t, byUser[1].Bundle)
	assert.Equal(t, domain.StatusFailed, byUser[99].Status)
	assert.Equal(t, "user_not_found", byUser[99].Error)
}

func dishIDs(dishes []domain.ScoredDish) []int64 {
	ids := make([]int64, 0, len(dishes))
	for _, d := range dishes {
		ids = append(ids, d.ID)
	}
	return ids
}
