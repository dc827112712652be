package domain

type Dish struct {
	ID            int64    `json:"id"`
	RestaurantID  int64    `json:"restaurant_id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Dietary       []string `json:"dietary"`
	Allergens     []string `json:"allergens"`
	SpiceLevel    int      `json:"spice_level"`
	Price         float64  `json:"price"`
	Calories      int      `json:"calories"`
	IsPopular     bool     `json:"is_popular"`
	IsBestSeller  bool     `json:"is_best_seller"`
	IsLimitedTime bool     `json:"is_limited_time"`
	IsComboOffer  bool     `json:"is_combo_offer"`
	Discount      float64  `json:"discount"`
	PrepTime      int      `json:"prep_time"`
}
