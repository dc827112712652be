package engine

import "github.com/platefull/recommendation-service/internal/domain"

// Reason strings are selected first-match-wins in a fixed order: score tiers
// first, then contextual rules, then popularity flags. The order is part of
// the contract; reordering changes observable output.
const (
	reasonPerfectMatch = "Perfect match for your taste!"
	reasonGreatChoice  = "Great choice based on your preferences"
	reasonMightLike    = "You might like this"
	reasonDinnerTime   = "Perfect for dinner time"
	reasonColdWeather  = "Spicy and warming for cold weather"
	reasonPopular      = "Very popular with other users"
	reasonBestSeller   = "Bestseller item"
	reasonFallback     = "Recommended for you"
)

type reasonTraits struct {
	category     string
	spiceLevel   int
	isPopular    bool
	isBestSeller bool
}

// RestaurantReason picks the rationale string for a scored restaurant.
// Restaurants carry none of the dish traits, so only the score tiers and
// the fallback can fire.
func (e *Engine) RestaurantReason(ctx domain.RecommendationContext, score float64) string {
	return pickReason(ctx, score, reasonTraits{})
}

// DishReason picks the rationale string for a scored dish.
func (e *Engine) DishReason(d domain.Dish, ctx domain.RecommendationContext, score float64) string {
	return pickReason(ctx, score, reasonTraits{
		category:     d.Category,
		spiceLevel:   d.SpiceLevel,
		isPopular:    d.IsPopular,
		isBestSeller: d.IsBestSeller,
	})
}

func pickReason(ctx domain.RecommendationContext, score float64, traits reasonTraits) string {
	switch {
	case score >= 80:
		return reasonPerfectMatch
	case score >= 60:
		return reasonGreatChoice
	case score >= 40:
		return reasonMightLike
	}
	if ctx.TimeOfDay == domain.TimeDinner && traits.category == "Main Course" {
		return reasonDinnerTime
	}
	if ctx.Weather == domain.WeatherCold && traits.spiceLevel >= 3 {
		return reasonColdWeather
	}
	if traits.isPopular {
		return reasonPopular
	}
	if traits.isBestSeller {
		return reasonBestSeller
	}
	return reasonFallback
}
