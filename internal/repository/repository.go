package repository

import (
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/platefull/recommendation-service/internal/domain"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Catalog rows are normalized at the scan boundary so that a malformed
// record (NaN or out-of-range numeric) degrades to a conservative default
// instead of silently corrupting score arithmetic and sort order downstream.

func sanitizeRestaurant(r *domain.Restaurant) {
	r.Rating = clampFloat(r.Rating, 0, 5)
	r.DeliveryFee = clampFloat(r.DeliveryFee, 0, math.MaxFloat64)
	r.Discount = clampFloat(r.Discount, 0, 100)
	if r.DeliveryTime < 0 {
		r.DeliveryTime = 0
	}
}

func sanitizeDish(d *domain.Dish) {
	d.Price = clampFloat(d.Price, 0, math.MaxFloat64)
	d.Discount = clampFloat(d.Discount, 0, 100)
	if d.SpiceLevel < 0 {
		d.SpiceLevel = 0
	} else if d.SpiceLevel > 5 {
		d.SpiceLevel = 5
	}
	if d.PrepTime < 0 {
		d.PrepTime = 0
	}
	if d.Calories < 0 {
		d.Calories = 0
	}
}

func sanitizePreferences(p *domain.UserPreferences) {
	if p.SpiceLevelPreference < 0 {
		p.SpiceLevelPreference = 0
	} else if p.SpiceLevelPreference > 5 {
		p.SpiceLevelPreference = 5
	}
	p.AvgOrderValue = clampFloat(p.AvgOrderValue, 0, math.MaxFloat64)

	// A nil slice would encode as SQL NULL and violate the NOT NULL array
	// columns; an omitted JSON field means "empty", not "unset".
	p.DietaryPreferences = nonNilStrings(p.DietaryPreferences)
	p.CuisinePreferences = nonNilStrings(p.CuisinePreferences)
	p.Allergens = nonNilStrings(p.Allergens)
	p.FavoriteRestaurantIDs = nonNilIDs(p.FavoriteRestaurantIDs)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
