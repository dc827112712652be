package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/platefull/recommendation-service/internal/domain"
)

// Clock supplies the current time; injected so tests can pin the meal window.
type Clock func() time.Time

// TimeOfDayAt buckets an hour of day (0-23) into a meal window.
func TimeOfDayAt(hour int) domain.TimeOfDay {
	switch {
	case hour < 10:
		return domain.TimeBreakfast
	case hour < 15:
		return domain.TimeLunch
	case hour < 18:
		return domain.TimeSnack
	default:
		return domain.TimeDinner
	}
}

// WeatherSource supplies the current weather condition. The production
// default is a random stub standing in for a real weather feed; tests
// substitute FixedWeather for reproducible bundles.
type WeatherSource interface {
	Current() domain.Weather
}

var weatherConditions = []domain.Weather{
	domain.WeatherSunny,
	domain.WeatherRainy,
	domain.WeatherCold,
	domain.WeatherHot,
}

type randomWeather struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomWeather returns a WeatherSource drawing uniformly from the four
// supported conditions.
func NewRandomWeather(seed int64) WeatherSource {
	return &randomWeather{rng: rand.New(rand.NewSource(seed))}
}

func (w *randomWeather) Current() domain.Weather {
	w.mu.Lock()
	defer w.mu.Unlock()
	return weatherConditions[w.rng.Intn(len(weatherConditions))]
}

// FixedWeather always reports the same condition.
type FixedWeather domain.Weather

func (w FixedWeather) Current() domain.Weather {
	return domain.Weather(w)
}
