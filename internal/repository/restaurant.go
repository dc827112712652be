package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/platefull/recommendation-service/internal/domain"
)

const restaurantColumns = `id, name, rating, cuisine, is_vegetarian, delivery_fee, delivery_time, is_promoted, discount`

// ListRestaurants returns the full restaurant catalog in id order. Catalog
// order is the tie-breaker for equal affinity scores, so it must be stable.
func (r *Repository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var items []domain.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over restaurants: %w", err)
	}
	return items, nil
}

// GetRestaurantByID fetches a single restaurant.
func (r *Repository) GetRestaurantByID(ctx context.Context, restaurantID int64) (*domain.Restaurant, error) {
	rest := domain.Restaurant{}

	err := r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`,
		restaurantID,
	).Scan(&rest.ID, &rest.Name, &rest.Rating, &rest.Cuisine, &rest.IsVegetarian,
		&rest.DeliveryFee, &rest.DeliveryTime, &rest.IsPromoted, &rest.Discount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("query restaurant id=%d: %w", restaurantID, err)
	}

	sanitizeRestaurant(&rest)
	return &rest, nil
}

func scanRestaurant(rows pgx.Rows) (domain.Restaurant, error) {
	var rest domain.Restaurant
	err := rows.Scan(&rest.ID, &rest.Name, &rest.Rating, &rest.Cuisine, &rest.IsVegetarian,
		&rest.DeliveryFee, &rest.DeliveryTime, &rest.IsPromoted, &rest.Discount)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("scan restaurant: %w", err)
	}
	sanitizeRestaurant(&rest)
	return rest, nil
}
