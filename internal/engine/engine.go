package engine

import (
	"math"

	"github.com/platefull/recommendation-service/internal/domain"
)

// Engine computes 0-100 affinity scores for restaurants and dishes. It is
// stateless: every method is a pure function of its arguments, so identical
// inputs always produce identical scores and reasons.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Scoring weights and thresholds. These are contract values, not tunables:
// stored expectations and clients depend on the exact numbers.
const (
	ratingWeight            = 10.0
	cuisineMatchBonus       = 25.0
	favoriteBonus           = 30.0
	vegetarianMatchBonus    = 20.0
	freeDeliveryBonus       = 10.0
	fastDeliveryBonus       = 10.0
	fastDeliveryMaxMinutes  = 25
	promotedBonus           = 8.0
	restaurantDiscountRate  = 0.8
	restaurantDiscountStep  = 20.0
	restaurantDiscountExtra = 5.0

	popularBonus         = 15.0
	bestSellerBonus      = 20.0
	dietaryMatchBonus    = 25.0
	spiceBaseBonus       = 10.0
	spicePenaltyPerStep  = 3.0
	allergenPenalty      = 30.0
	timeCategoryBonus    = 15.0
	weatherCategoryBonus = 10.0
	weatherSpiceBonus    = 8.0
	priceBaseBonus       = 10.0
	idealPriceShare      = 0.3
	dishDiscountRate     = 0.7
	dishDiscountStep     = 15.0
	dishDiscountExtra    = 4.0
	limitedTimeBonus     = 6.0
	comboOfferBonus      = 5.0

	maxScore = 100.0
)

// RestaurantAffinity scores a restaurant against a user's preferences.
// Every term is non-negative, so only the upper bound needs clamping.
func (e *Engine) RestaurantAffinity(r domain.Restaurant, prefs domain.UserPreferences) float64 {
	score := r.Rating * ratingWeight

	if containsAny(r.Cuisine, prefs.CuisinePreferences) {
		score += cuisineMatchBonus
	}
	if prefs.IsFavorite(r.ID) {
		score += favoriteBonus
	}
	if r.IsVegetarian && prefs.HasDietaryPreference("veg") {
		score += vegetarianMatchBonus
	}
	if r.DeliveryFee == 0 {
		score += freeDeliveryBonus
	}
	if r.DeliveryTime <= fastDeliveryMaxMinutes {
		score += fastDeliveryBonus
	}
	if r.IsPromoted {
		score += promotedBonus
	}
	if r.Discount > 0 {
		score += r.Discount * restaurantDiscountRate
		if r.Discount >= restaurantDiscountStep {
			score += restaurantDiscountExtra
		}
	}

	return math.Min(score, maxScore)
}

// DishAffinity scores a dish against a user's preferences under the given
// context. The allergen penalty can drive the raw sum negative, so the
// result is clamped on both ends.
func (e *Engine) DishAffinity(d domain.Dish, prefs domain.UserPreferences, timeOfDay domain.TimeOfDay, weather domain.Weather) float64 {
	score := 0.0

	if d.IsPopular {
		score += popularBonus
	}
	if d.IsBestSeller {
		score += bestSellerBonus
	}
	if containsAny(d.Dietary, prefs.DietaryPreferences) {
		score += dietaryMatchBonus
	}

	spiceDiff := math.Abs(float64(d.SpiceLevel - prefs.SpiceLevelPreference))
	score += math.Max(0, spiceBaseBonus-spiceDiff*spicePenaltyPerStep)

	if containsAny(d.Allergens, prefs.Allergens) {
		score -= allergenPenalty
	}

	score += e.TimeOfDayBonus(d, timeOfDay)
	score += e.weatherBonus(d, weather)
	score += e.priceAffinity(d.Price, prefs.AvgOrderValue)

	if d.Discount > 0 {
		score += d.Discount * dishDiscountRate
		if d.Discount >= dishDiscountStep {
			score += dishDiscountExtra
		}
	}
	if d.IsLimitedTime {
		score += limitedTimeBonus
	}
	if d.IsComboOffer {
		score += comboOfferBonus
	}

	return math.Max(0, math.Min(score, maxScore))
}

var timePreferredCategories = map[domain.TimeOfDay][]string{
	domain.TimeBreakfast: {"Beverages", "Sides"},
	domain.TimeLunch:     {"Main Course", "Bowls", "Rice"},
	domain.TimeSnack:     {"Sides", "Desserts", "Beverages"},
	domain.TimeDinner:    {"Main Course", "Pizza", "Burgers", "Thali"},
}

// TimeOfDayBonus returns the contextual bonus for a dish whose category
// fits the current meal window, or 0. Exported because bucket predicates
// reuse it to decide "contextual" membership.
func (e *Engine) TimeOfDayBonus(d domain.Dish, timeOfDay domain.TimeOfDay) float64 {
	for _, category := range timePreferredCategories[timeOfDay] {
		if d.Category == category {
			return timeCategoryBonus
		}
	}
	return 0
}

type weatherPreference struct {
	categories  []string
	spiceLevels []int
}

var weatherPreferences = map[domain.Weather]weatherPreference{
	domain.WeatherCold:  {categories: []string{"Main Course", "Thali"}, spiceLevels: []int{3, 4, 5}},
	domain.WeatherHot:   {categories: []string{"Beverages", "Desserts", "Salads"}, spiceLevels: []int{0, 1}},
	domain.WeatherRainy: {categories: []string{"Pizza", "Burgers", "Main Course"}, spiceLevels: []int{2, 3, 4}},
	domain.WeatherSunny: {categories: []string{"Bowls", "Salads", "Beverages"}, spiceLevels: []int{0, 1, 2}},
}

func (e *Engine) weatherBonus(d domain.Dish, weather domain.Weather) float64 {
	pref, ok := weatherPreferences[weather]
	if !ok {
		return 0
	}

	bonus := 0.0
	for _, category := range pref.categories {
		if d.Category == category {
			bonus += weatherCategoryBonus
			break
		}
	}
	for _, level := range pref.spiceLevels {
		if d.SpiceLevel == level {
			bonus += weatherSpiceBonus
			break
		}
	}
	return bonus
}

// priceAffinity favors dishes priced around 30% of the user's average order
// value, tapering linearly to zero at twice the ideal price.
func (e *Engine) priceAffinity(price, avgOrderValue float64) float64 {
	idealPrice := avgOrderValue * idealPriceShare
	if idealPrice <= 0 {
		return 0
	}
	priceDiff := math.Abs(price - idealPrice)
	return math.Max(0, priceBaseBonus-(priceDiff/idealPrice)*priceBaseBonus)
}

func containsAny(values, wanted []string) bool {
	for _, v := range values {
		for _, w := range wanted {
			if v == w {
				return true
			}
		}
	}
	return false
}
