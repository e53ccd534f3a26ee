// Package service implements the weather-log session operations and its derived views
package service

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"weatherlog.app/config"
	"weatherlog.app/errors"
	"weatherlog.app/models"
	"weatherlog.app/pkg/validation"
	"weatherlog.app/providers"
	"weatherlog.app/repository"
)

// WeatherLogService orchestrates fetches, the observation log and its derived views
type WeatherLogService struct {
	provider providers.WeatherProvider
	log      *repository.ObservationLog
	config   *config.Config
	now      func() time.Time
}

// NewWeatherLogService creates a new weather log service
func NewWeatherLogService(provider providers.WeatherProvider, log *repository.ObservationLog, cfg *config.Config) *WeatherLogService {
	return &WeatherLogService{
		provider: provider,
		log:      log,
		config:   cfg,
		now:      time.Now,
	}
}

// FetchAndLog retrieves current weather for a city and appends it to the log.
// A failed fetch leaves the log untouched.
func (s *WeatherLogService) FetchAndLog(ctx context.Context, city string) (*models.WeatherObservation, error) {
	trimmed, ok := validation.TrimAndValidate(city)
	if !ok {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	slog.Debug("Fetching weather", "city", trimmed)

	obs, err := s.provider.FetchCurrent(ctx, trimmed)
	if err != nil {
		slog.Error("Weather provider error", "error", err, "city", trimmed)
		return nil, err
	}

	obs.ID = uuid.NewString()
	s.log.Append(*obs)

	slog.Debug("Weather observation logged", "city", obs.City, "temperature", obs.Temperature)
	return obs, nil
}

// Forecast retrieves the forward-window forecast series for a city
func (s *WeatherLogService) Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	trimmed, ok := validation.TrimAndValidate(city)
	if !ok {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	points, err := s.provider.FetchForecast(ctx, trimmed)
	if err != nil {
		slog.Error("Forecast provider error", "error", err, "city", trimmed)
		return nil, err
	}

	return points, nil
}

var syntheticDescriptions = []string{"clear sky", "few clouds", "light rain", "overcast"}

var syntheticConditions = map[string]string{
	"clear sky":  "Clear",
	"few clouds": "Clouds",
	"light rain": "Rain",
	"overcast":   "Clouds",
}

// AddSynthetic appends a locally generated placeholder observation for a city.
// Generation cannot fail beyond the empty-city check.
func (s *WeatherLogService) AddSynthetic(city string) (*models.WeatherObservation, error) {
	trimmed, ok := validation.TrimAndValidate(city)
	if !ok {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	description := syntheticDescriptions[rand.Intn(len(syntheticDescriptions))]

	obs := models.WeatherObservation{
		ID:          uuid.NewString(),
		Timestamp:   s.now(),
		City:        trimmed,
		Country:     "XX",
		Temperature: roundTo(10+rand.Float64()*25, 1),
		FeelsLike:   roundTo(10+rand.Float64()*25, 1),
		Humidity:    30 + rand.Intn(61),
		Pressure:    990 + rand.Intn(51),
		Description: description,
		Condition:   syntheticConditions[description],
		WindSpeed:   roundTo(2+rand.Float64()*10, 1),
		Source:      models.SourceSynthetic,
	}

	s.log.Append(obs)

	slog.Debug("Synthetic observation logged", "city", obs.City)
	return &obs, nil
}

// LoadDemo appends one synthetic observation per configured demo city
func (s *WeatherLogService) LoadDemo() []models.WeatherObservation {
	added := make([]models.WeatherObservation, 0, len(s.config.Log.DemoCities))
	for _, city := range s.config.Log.DemoCities {
		obs, err := s.AddSynthetic(city)
		if err != nil {
			continue
		}
		added = append(added, *obs)
	}
	return added
}

// Logs returns the full log snapshot in insertion order
func (s *WeatherLogService) Logs() []models.WeatherObservation {
	return s.log.All()
}

// Latest returns the last-appended observation
func (s *WeatherLogService) Latest() (models.WeatherObservation, bool) {
	return s.log.Latest()
}

// Clear resets the observation log to empty
func (s *WeatherLogService) Clear() {
	s.log.Clear()
	slog.Info("Observation log cleared")
}

// Stats computes per-city aggregate statistics over the current log
func (s *WeatherLogService) Stats() []models.CityStats {
	return ComputeCityStats(s.log.Snapshot())
}

// RecentSeries returns the last entries of the log for charting. A non-positive
// limit falls back to the configured window size.
func (s *WeatherLogService) RecentSeries(limit int) []models.SeriesPoint {
	if limit <= 0 {
		limit = s.config.Log.RecentWindowSize
	}
	return RecentSeries(s.log.Snapshot(), limit)
}

// Alerts scans the current log against the threshold rules
func (s *WeatherLogService) Alerts() models.AlertReport {
	return DetectAlerts(s.log.Snapshot(), s.config.Log.AlertLimit)
}

// Conditions returns the per-condition entry counts of the current log
func (s *WeatherLogService) Conditions() []models.ConditionCount {
	return ConditionDistribution(s.log.Snapshot())
}

// ExportCSV serializes the current log and returns the convention filename
func (s *WeatherLogService) ExportCSV() (string, []byte) {
	return ExportFilename(s.now()), ToCSV(s.log.Snapshot())
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
