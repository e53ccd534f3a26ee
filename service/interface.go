package service

import (
	"context"

	"weatherlog.app/models"
)

// WeatherLogServiceInterface defines the operations the presentation layer drives
type WeatherLogServiceInterface interface {
	FetchAndLog(ctx context.Context, city string) (*models.WeatherObservation, error)
	Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error)
	AddSynthetic(city string) (*models.WeatherObservation, error)
	LoadDemo() []models.WeatherObservation

	Logs() []models.WeatherObservation
	Latest() (models.WeatherObservation, bool)
	Clear()

	Stats() []models.CityStats
	RecentSeries(limit int) []models.SeriesPoint
	Alerts() models.AlertReport
	Conditions() []models.ConditionCount

	ExportCSV() (filename string, data []byte)
}
