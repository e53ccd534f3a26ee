package providers

import (
	"context"
	"time"

	"weatherlog.app/models"
	"weatherlog.app/providers/cache"
)

// WeatherProvider defines the interface for weather data providers
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, city string) (*models.WeatherObservation, error)
	FetchForecast(ctx context.Context, city string) ([]models.ForecastPoint, error)
}

// Cache is an alias to avoid circular imports
type Cache = cache.Cache

// FileLogger defines the interface for provider request/response logging
type FileLogger interface {
	LogRequest(providerName, operation, city string)
	LogResponse(providerName, operation, city string, duration time.Duration)
	LogError(providerName, operation, city string, err error, duration time.Duration)
}
