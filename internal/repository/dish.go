package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/platefull/recommendation-service/internal/domain"
)

const dishColumns = `id, restaurant_id, name, category, dietary, allergens, spice_level,
	price, calories, is_popular, is_best_seller, is_limited_time, is_combo_offer, discount, prep_time`

// ListDishes returns the full dish catalog in id order.
func (r *Repository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+dishColumns+` FROM dishes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	defer rows.Close()

	return collectDishes(rows)
}

// ListDishesByRestaurant returns one restaurant's menu in id order.
func (r *Repository) ListDishesByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Dish, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+dishColumns+` FROM dishes WHERE restaurant_id = $1 ORDER BY id`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query dishes for restaurant %d: %w", restaurantID, err)
	}
	defer rows.Close()

	return collectDishes(rows)
}

func collectDishes(rows pgx.Rows) ([]domain.Dish, error) {
	var items []domain.Dish
	for rows.Next() {
		var d domain.Dish
		err := rows.Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Category, &d.Dietary, &d.Allergens,
			&d.SpiceLevel, &d.Price, &d.Calories, &d.IsPopular, &d.IsBestSeller,
			&d.IsLimitedTime, &d.IsComboOffer, &d.Discount, &d.PrepTime)
		if err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		sanitizeDish(&d)
		items = append(items, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over dishes: %w", err)
	}
	return items, nil
}
