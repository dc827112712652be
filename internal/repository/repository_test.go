package repository

import (
	"math"
	"testing"

	"github.com/platefull/recommendation-service/internal/domain"
)

func TestSanitizeRestaurant(t *testing.T) {
	r := domain.Restaurant{
		Rating:       math.NaN(),
		DeliveryFee:  -5,
		DeliveryTime: -10,
		Discount:     150,
	}
	sanitizeRestaurant(&r)

	if r.Rating != 0 {
		t.Errorf("NaN rating should default to 0, got %f", r.Rating)
	}
	if r.DeliveryFee != 0 {
		t.Errorf("negative delivery fee should clamp to 0, got %f", r.DeliveryFee)
	}
	if r.DeliveryTime != 0 {
		t.Errorf("negative delivery time should clamp to 0, got %d", r.DeliveryTime)
	}
	if r.Discount != 100 {
		t.Errorf("discount should clamp to 100, got %f", r.Discount)
	}
}

func TestSanitizeDish(t *testing.T) {
	d := domain.Dish{
		Price:      math.NaN(),
		Discount:   -20,
		SpiceLevel: 9,
		PrepTime:   -1,
		Calories:   -300,
	}
	sanitizeDish(&d)

	if d.Price != 0 {
		t.Errorf("NaN price should default to 0, got %f", d.Price)
	}
	if d.Discount != 0 {
		t.Errorf("negative discount should clamp to 0, got %f", d.Discount)
	}
	if d.SpiceLevel != 5 {
		t.Errorf("spice level should clamp to 5, got %d", d.SpiceLevel)
	}
	if d.PrepTime != 0 || d.Calories != 0 {
		t.Errorf("negative prep time/calories should clamp to 0, got %d/%d", d.PrepTime, d.Calories)
	}
}

func TestSanitizePreferences(t *testing.T) {
	p := domain.UserPreferences{SpiceLevelPreference: -2, AvgOrderValue: math.NaN()}
	sanitizePreferences(&p)

	if p.SpiceLevelPreference != 0 {
		t.Errorf("spice preference should clamp to 0, got %d", p.SpiceLevelPreference)
	}
	if p.AvgOrderValue != 0 {
		t.Errorf("NaN avg order value should default to 0, got %f", p.AvgOrderValue)
	}
}

func TestSanitizePreferencesNilSlices(t *testing.T) {
	// A PUT body that omits the array fields decodes them as nil; they must
	// reach the NOT NULL array columns as empty arrays, not SQL NULL.
	p := domain.UserPreferences{
		UserID:               1,
		DietaryPreferences:   []string{"veg"},
		SpiceLevelPreference: 4,
		AvgOrderValue:        500,
	}
	sanitizePreferences(&p)

	if p.CuisinePreferences == nil {
		t.Error("nil cuisine preferences should become an empty slice")
	}
	if p.Allergens == nil {
		t.Error("nil allergens should become an empty slice")
	}
	if p.FavoriteRestaurantIDs == nil {
		t.Error("nil favorite restaurant ids should become an empty slice")
	}
	if len(p.DietaryPreferences) != 1 || p.DietaryPreferences[0] != "veg" {
		t.Errorf("populated slice should pass through unchanged, got %v", p.DietaryPreferences)
	}
}
