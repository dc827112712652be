package domain

type UserPreferences struct {
	UserID                int64    `json:"user_id"`
	DietaryPreferences    []string `json:"dietary_preferences"`
	CuisinePreferences    []string `json:"cuisine_preferences"`
	SpiceLevelPreference  int      `json:"spice_level_preference"`
	Allergens             []string `json:"allergens"`
	FavoriteRestaurantIDs []int64  `json:"favorite_restaurant_ids"`
	AvgOrderValue         float64  `json:"avg_order_value"`
}

// HasDietaryPreference reports whether tag is one of the user's dietary preferences.
func (p UserPreferences) HasDietaryPreference(tag string) bool {
	for _, d := range p.DietaryPreferences {
		if d == tag {
			return true
		}
	}
	return false
}

// IsFavorite reports whether the restaurant is in the user's favorites.
func (p UserPreferences) IsFavorite(restaurantID int64) bool {
	for _, id := range p.FavoriteRestaurantIDs {
		if id == restaurantID {
			return true
		}
	}
	return false
}
