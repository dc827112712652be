package domain

type TimeOfDay string

const (
	TimeBreakfast TimeOfDay = "breakfast"
	TimeLunch     TimeOfDay = "lunch"
	TimeSnack     TimeOfDay = "snack"
	TimeDinner    TimeOfDay = "dinner"
)

type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
	WeatherCold  Weather = "cold"
	WeatherHot   Weather = "hot"
)

// RecommendationContext is derived once per request and shared by every
// scoring call in that request.
type RecommendationContext struct {
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Weather   Weather   `json:"weather"`
}

type ScoredRestaurant struct {
	Restaurant
	AffinityScore float64 `json:"affinity_score"`
	Reason        string  `json:"reason"`
}

type ScoredDish struct {
	Dish
	AffinityScore float64 `json:"affinity_score"`
	Reason        string  `json:"reason"`
}

type BundleContext struct {
	TimeOfDay       TimeOfDay `json:"time_of_day"`
	Weather         Weather   `json:"weather"`
	UserPreferences []string  `json:"user_preferences"`
}

// RecommendationBundle is the full personalized payload: the request context
// plus named buckets of scored restaurants and dishes, each bucket sorted by
// affinity score descending.
type RecommendationBundle struct {
	Context     BundleContext                 `json:"context"`
	Restaurants map[string][]ScoredRestaurant `json:"restaurants"`
	Dishes      map[string][]ScoredDish       `json:"dishes"`
}

type BundleResult struct {
	Bundle   *RecommendationBundle
	CacheHit bool
}

// MenuRecommendations scopes recommendations to a single restaurant's menu.
type MenuRecommendations struct {
	Restaurant      Restaurant              `json:"restaurant"`
	Recommendations map[string][]ScoredDish `json:"recommendations"`
}

type SuggestionFilters struct {
	Dietary  string
	MaxPrice float64
	Cuisine  string
}

type ContextualSuggestions struct {
	Context     RecommendationContext `json:"context"`
	Suggestions []ScoredDish          `json:"suggestions"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
}

type BatchUserResult struct {
	UserID int64                 `json:"user_id"`
	Bundle *RecommendationBundle `json:"bundle,omitempty"`
	Status string                `json:"status"`

	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
