package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/platefull/recommendation-service/internal/domain"
)

// Setup loads the demo catalog and preference profiles. Rows are inserted in
// declaration order after an identity reset, so catalog ids are stable:
// restaurants 1..n, dishes 1..m, users 1..k.
func Setup(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE dishes, user_preferences, restaurants RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	logger.Info("inserting restaurants", zap.Int("count", len(restaurants)))
	if err := seedRestaurants(ctx, pool); err != nil {
		return fmt.Errorf("seed restaurants: %w", err)
	}

	logger.Info("inserting dishes", zap.Int("count", len(dishes)))
	if err := seedDishes(ctx, pool); err != nil {
		return fmt.Errorf("seed dishes: %w", err)
	}

	logger.Info("inserting user preferences", zap.Int("count", len(profiles)))
	if err := seedUserPreferences(ctx, pool); err != nil {
		return fmt.Errorf("seed user preferences: %w", err)
	}

	logger.Info("seeding complete")
	return nil
}

var restaurants = []domain.Restaurant{
	{Name: "Spice Garden", Rating: 4.5, Cuisine: []string{"Indian"}, DeliveryFee: 0, DeliveryTime: 25, IsPromoted: true, Discount: 20},
	{Name: "Bella Napoli", Rating: 4.3, Cuisine: []string{"Italian", "Pizza"}, DeliveryFee: 30, DeliveryTime: 35, Discount: 0},
	{Name: "Green Bowl Co", Rating: 4.6, Cuisine: []string{"Healthy", "Salads"}, IsVegetarian: true, DeliveryFee: 0, DeliveryTime: 20, Discount: 10},
	{Name: "Burger Junction", Rating: 4.0, Cuisine: []string{"American", "Burgers"}, DeliveryFee: 25, DeliveryTime: 30, IsPromoted: true, Discount: 30},
	{Name: "Thali House", Rating: 4.4, Cuisine: []string{"Indian", "Thali"}, IsVegetarian: true, DeliveryFee: 0, DeliveryTime: 40, Discount: 0},
	{Name: "Dragon Wok", Rating: 4.1, Cuisine: []string{"Chinese"}, DeliveryFee: 40, DeliveryTime: 45, Discount: 15},
	{Name: "Cafe Verde", Rating: 4.7, Cuisine: []string{"Healthy", "Continental"}, IsVegetarian: true, DeliveryFee: 20, DeliveryTime: 22, Discount: 0},
	{Name: "Midnight Grill", Rating: 3.8, Cuisine: []string{"BBQ", "American"}, DeliveryFee: 35, DeliveryTime: 50, IsPromoted: true, Discount: 25},
}

var dishes = []domain.Dish{
	{RestaurantID: 1, Name: "Paneer Butter Masala", Category: "Main Course", Dietary: []string{"veg"}, SpiceLevel: 2, Price: 280, Calories: 520, IsPopular: true, IsBestSeller: true, PrepTime: 25},
	{RestaurantID: 1, Name: "Chicken Biryani", Category: "Rice", Allergens: []string{"dairy"}, SpiceLevel: 3, Price: 320, Calories: 650, IsPopular: true, Discount: 15, PrepTime: 35},
	{RestaurantID: 1, Name: "Masala Chai", Category: "Beverages", Dietary: []string{"veg"}, SpiceLevel: 1, Price: 60, Calories: 120, PrepTime: 8},
	{RestaurantID: 1, Name: "Samosa Platter", Category: "Snacks", Dietary: []string{"veg"}, SpiceLevel: 2, Price: 120, Calories: 380, IsComboOffer: true, PrepTime: 12},
	{RestaurantID: 2, Name: "Margherita Pizza", Category: "Pizza", Dietary: []string{"veg"}, Allergens: []string{"gluten", "dairy"}, SpiceLevel: 0, Price: 350, Calories: 780, IsPopular: true, IsBestSeller: true, PrepTime: 20},
	{RestaurantID: 2, Name: "Pesto Pasta", Category: "Main Course", Dietary: []string{"veg"}, Allergens: []string{"gluten", "nuts"}, SpiceLevel: 0, Price: 310, Calories: 560, PrepTime: 22},
	{RestaurantID: 2, Name: "Tiramisu", Category: "Desserts", Dietary: []string{"veg"}, Allergens: []string{"dairy", "eggs"}, Price: 220, Calories: 450, IsLimitedTime: true, PrepTime: 10},
	{RestaurantID: 3, Name: "Quinoa Power Bowl", Category: "Bowls", Dietary: []string{"veg", "healthy"}, SpiceLevel: 1, Price: 260, Calories: 380, IsPopular: true, PrepTime: 15},
	{RestaurantID: 3, Name: "Kale Caesar Salad", Category: "Salads", Dietary: []string{"veg", "healthy"}, SpiceLevel: 0, Price: 240, Calories: 290, PrepTime: 10},
	{RestaurantID: 3, Name: "Cold-Pressed Juice", Category: "Beverages", Dietary: []string{"veg", "healthy"}, Price: 140, Calories: 110, Discount: 10, PrepTime: 5},
	{RestaurantID: 3, Name: "Avocado Toast", Category: "Sides", Dietary: []string{"veg", "healthy"}, Allergens: []string{"gluten"}, Price: 180, Calories: 340, PrepTime: 12},
	{RestaurantID: 4, Name: "Classic Cheeseburger", Category: "Burgers", Allergens: []string{"gluten", "dairy"}, SpiceLevel: 1, Price: 250, Calories: 720, IsPopular: true, IsBestSeller: true, Discount: 30, PrepTime: 18},
	{RestaurantID: 4, Name: "Loaded Fries", Category: "Sides", Dietary: []string{"veg"}, SpiceLevel: 1, Price: 160, Calories: 540, IsComboOffer: true, PrepTime: 12},
	{RestaurantID: 4, Name: "Double Patty Combo", Category: "Burgers", Allergens: []string{"gluten", "dairy"}, SpiceLevel: 2, Price: 420, Calories: 980, IsComboOffer: true, Discount: 25, PrepTime: 22},
	{RestaurantID: 5, Name: "Royal Veg Thali", Category: "Thali", Dietary: []string{"veg"}, SpiceLevel: 2, Price: 300, Calories: 850, IsPopular: true, IsBestSeller: true, PrepTime: 30},
	{RestaurantID: 5, Name: "Dal Tadka", Category: "Main Course", Dietary: []string{"veg"}, SpiceLevel: 3, Price: 180, Calories: 320, PrepTime: 20},
	{RestaurantID: 5, Name: "Gulab Jamun", Category: "Desserts", Dietary: []string{"veg"}, Allergens: []string{"dairy"}, Price: 110, Calories: 390, IsLimitedTime: true, Discount: 20, PrepTime: 5},
	{RestaurantID: 6, Name: "Schezwan Noodles", Category: "Main Course", Dietary: []string{"veg"}, SpiceLevel: 4, Price: 230, Calories: 580, IsPopular: true, PrepTime: 18},
	{RestaurantID: 6, Name: "Spring Rolls", Category: "Appetizers", Dietary: []string{"veg"}, SpiceLevel: 1, Price: 150, Calories: 310, Discount: 15, PrepTime: 14},
	{RestaurantID: 6, Name: "Kung Pao Chicken", Category: "Main Course", Allergens: []string{"nuts", "soy"}, SpiceLevel: 4, Price: 340, Calories: 610, IsBestSeller: true, PrepTime: 24},
	{RestaurantID: 7, Name: "Buddha Bowl", Category: "Bowls", Dietary: []string{"veg", "healthy"}, SpiceLevel: 0, Price: 290, Calories: 360, IsPopular: true, PrepTime: 15},
	{RestaurantID: 7, Name: "Iced Matcha Latte", Category: "Beverages", Dietary: []string{"veg"}, Allergens: []string{"dairy"}, Price: 170, Calories: 180, IsLimitedTime: true, PrepTime: 6},
	{RestaurantID: 8, Name: "Smoked BBQ Ribs", Category: "Main Course", SpiceLevel: 3, Price: 480, Calories: 890, IsBestSeller: true, Discount: 25, PrepTime: 40},
	{RestaurantID: 8, Name: "Grilled Corn", Category: "Sides", Dietary: []string{"veg"}, SpiceLevel: 2, Price: 90, Calories: 210, PrepTime: 10},
}

var profiles = []domain.UserPreferences{
	{DietaryPreferences: []string{"veg", "healthy"}, CuisinePreferences: []string{"Italian", "Indian", "Healthy"}, SpiceLevelPreference: 2, Allergens: []string{"nuts"}, FavoriteRestaurantIDs: []int64{1, 3, 5}, AvgOrderValue: 450},
	{DietaryPreferences: []string{}, CuisinePreferences: []string{"American", "BBQ"}, SpiceLevelPreference: 3, Allergens: []string{}, FavoriteRestaurantIDs: []int64{4, 8}, AvgOrderValue: 600},
	{DietaryPreferences: []string{"veg"}, CuisinePreferences: []string{"Indian", "Thali"}, SpiceLevelPreference: 4, Allergens: []string{"dairy"}, FavoriteRestaurantIDs: []int64{5}, AvgOrderValue: 350},
	{DietaryPreferences: []string{"healthy"}, CuisinePreferences: []string{"Healthy", "Continental"}, SpiceLevelPreference: 0, Allergens: []string{"gluten"}, FavoriteRestaurantIDs: []int64{3, 7}, AvgOrderValue: 500},
	{DietaryPreferences: []string{}, CuisinePreferences: []string{"Chinese", "Pizza"}, SpiceLevelPreference: 5, Allergens: []string{}, FavoriteRestaurantIDs: []int64{2, 6}, AvgOrderValue: 400},
}

func seedRestaurants(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for _, r := range restaurants {
		base := len(args)
		rows = append(rows, placeholders(base, 8))
		args = append(args, r.Name, r.Rating, r.Cuisine, r.IsVegetarian,
			r.DeliveryFee, r.DeliveryTime, r.IsPromoted, r.Discount)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO restaurants
		(name, rating, cuisine, is_vegetarian, delivery_fee, delivery_time, is_promoted, discount)
		VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedDishes(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for _, d := range dishes {
		base := len(args)
		rows = append(rows, placeholders(base, 14))
		args = append(args, d.RestaurantID, d.Name, d.Category, nonNil(d.Dietary), nonNil(d.Allergens),
			d.SpiceLevel, d.Price, d.Calories, d.IsPopular, d.IsBestSeller,
			d.IsLimitedTime, d.IsComboOffer, d.Discount, d.PrepTime)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO dishes
		(restaurant_id, name, category, dietary, allergens, spice_level, price, calories,
		 is_popular, is_best_seller, is_limited_time, is_combo_offer, discount, prep_time)
		VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedUserPreferences(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for _, p := range profiles {
		base := len(args)
		rows = append(rows, placeholders(base, 6))
		args = append(args, p.DietaryPreferences, p.CuisinePreferences, p.SpiceLevelPreference,
			p.Allergens, p.FavoriteRestaurantIDs, p.AvgOrderValue)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO user_preferences
		(dietary_preferences, cuisine_preferences, spice_level_preference, allergens,
		 favorite_restaurant_ids, avg_order_value)
		VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func placeholders(base, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", base+i+1)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
