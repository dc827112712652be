package service

import "github.com/platefull/recommendation-service/internal/domain"

// A bucket is a named, predicate-filtered, size-limited slice of the scored
// list. Definitions are declarative so restaurants and dishes share one
// application path and each predicate can be tested on its own.
type bucket[T any] struct {
	name  string
	limit int
	match func(T) bool
}

func applyBuckets[T any](scored []T, defs []bucket[T]) map[string][]T {
	out := make(map[string][]T, len(defs))
	for _, def := range defs {
		selected := make([]T, 0, def.limit)
		for _, item := range scored {
			if !def.match(item) {
				continue
			}
			selected = append(selected, item)
			if len(selected) == def.limit {
				break
			}
		}
		out[def.name] = selected
	}
	return out
}

func restaurantBuckets() []bucket[domain.ScoredRestaurant] {
	return []bucket[domain.ScoredRestaurant]{
		{"topPicks", 6, func(domain.ScoredRestaurant) bool { return true }},
		{"trending", 4, func(r domain.ScoredRestaurant) bool { return r.IsPromoted }},
		{"quickDelivery", 4, func(r domain.ScoredRestaurant) bool { return r.DeliveryTime <= 25 }},
		{"vegetarian", 4, func(r domain.ScoredRestaurant) bool { return r.IsVegetarian }},
		{"specialOffers", 6, func(r domain.ScoredRestaurant) bool { return r.Discount > 0 }},
	}
}

func (s *Service) dishBuckets(rctx domain.RecommendationContext, prefs domain.UserPreferences) []bucket[domain.ScoredDish] {
	return []bucket[domain.ScoredDish]{
		{"forYou", 8, func(domain.ScoredDish) bool { return true }},
		{"trending", 6, func(d domain.ScoredDish) bool { return d.IsPopular }},
		{"contextual", 6, func(d domain.ScoredDish) bool {
			return s.engine.TimeOfDayBonus(d.Dish, rctx.TimeOfDay) > 0
		}},
		{"dietary", 6, func(d domain.ScoredDish) bool {
			return hasAnyTag(d.Dietary, prefs.DietaryPreferences)
		}},
		// A zero prep time means unknown, not instant.
		{"quickBites", 6, func(d domain.ScoredDish) bool {
			return d.Category == "Snacks" || d.Category == "Appetizers" ||
				(d.PrepTime > 0 && d.PrepTime <= 15)
		}},
		{"comfortFood", 6, func(d domain.ScoredDish) bool {
			return rctx.Weather == domain.WeatherCold &&
				(d.Category == "Main Course" || d.SpiceLevel >= 2)
		}},
		// Zero calories means unknown, not calorie-free.
		{"healthyChoices", 6, func(d domain.ScoredDish) bool {
			return hasTag(d.Dietary, "veg") && d.Calories > 0 && d.Calories < 400 &&
				len(d.Allergens) == 0
		}},
		{"budgetFriendly", 6, func(d domain.ScoredDish) bool { return d.Price <= 200 }},
		{"specialOffers", 8, func(d domain.ScoredDish) bool { return d.Discount > 0 }},
		{"flashSales", 4, func(d domain.ScoredDish) bool { return d.Discount >= 25 }},
		{"limitedTime", 4, func(d domain.ScoredDish) bool { return d.IsLimitedTime }},
		{"comboDeal", 4, func(d domain.ScoredDish) bool { return d.IsComboOffer }},
	}
}

// menuBuckets are the single-restaurant variant served alongside a menu.
func (s *Service) menuBuckets(rctx domain.RecommendationContext) []bucket[domain.ScoredDish] {
	return []bucket[domain.ScoredDish]{
		{"topPicks", 4, func(domain.ScoredDish) bool { return true }},
		{"basedOnHistory", 3, func(d domain.ScoredDish) bool { return d.IsPopular }},
		{"perfectForNow", 3, func(d domain.ScoredDish) bool {
			return s.engine.TimeOfDayBonus(d.Dish, rctx.TimeOfDay) > 0
		}},
	}
}

func hasAnyTag(tags, wanted []string) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}
