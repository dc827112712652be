package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/platefull/recommendation-service/internal/domain"
)

// GetUserPreferences fetches a single user's preference profile.
func (r *Repository) GetUserPreferences(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	prefs := &domain.UserPreferences{}

	err := r.pool.QueryRow(ctx,
		`SELECT user_id, dietary_preferences, cuisine_preferences, spice_level_preference,
		        allergens, favorite_restaurant_ids, avg_order_value
		 FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&prefs.UserID, &prefs.DietaryPreferences, &prefs.CuisinePreferences,
		&prefs.SpiceLevelPreference, &prefs.Allergens, &prefs.FavoriteRestaurantIDs,
		&prefs.AvgOrderValue)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query preferences for user %d: %w", userID, err)
	}

	sanitizePreferences(prefs)
	return prefs, nil
}

// UpdateUserPreferences replaces a user's preference profile.
func (r *Repository) UpdateUserPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	sanitizePreferences(&prefs)

	tag, err := r.pool.Exec(ctx,
		`UPDATE user_preferences
		 SET dietary_preferences = $2, cuisine_preferences = $3, spice_level_preference = $4,
		     allergens = $5, favorite_restaurant_ids = $6, avg_order_value = $7
		 WHERE user_id = $1`,
		prefs.UserID, prefs.DietaryPreferences, prefs.CuisinePreferences,
		prefs.SpiceLevelPreference, prefs.Allergens, prefs.FavoriteRestaurantIDs,
		prefs.AvgOrderValue,
	)
	if err != nil {
		return fmt.Errorf("update preferences for user %d: %w", prefs.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetUserIDsPaginated returns user ids for one page, ordered by id.
func (r *Repository) GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM user_preferences ORDER BY user_id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query user ids for page %d: %w", page, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

// CountUsers returns the total number of preference profiles.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_preferences`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
