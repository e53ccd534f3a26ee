package providers

import (
	"context"
	"time"

	"weatherlog.app/metrics"
	"weatherlog.app/models"
)

// WeatherLoggerDecorator logs every provider call and records call metrics
type WeatherLoggerDecorator struct {
	wrappedProvider WeatherProvider
	logger          FileLogger
	metrics         *metrics.ProviderMetrics
	providerName    string
}

func NewWeatherLoggerDecorator(provider WeatherProvider, logger FileLogger, providerName string) WeatherProvider {
	return &WeatherLoggerDecorator{
		wrappedProvider: provider,
		logger:          logger,
		metrics:         metrics.NewProviderMetrics(providerName),
		providerName:    providerName,
	}
}

func (d *WeatherLoggerDecorator) FetchCurrent(ctx context.Context, city string) (*models.WeatherObservation, error) {
	d.logger.LogRequest(d.providerName, "current", city)
	d.metrics.RecordRequest("current")
	startTime := time.Now()

	obs, err := d.wrappedProvider.FetchCurrent(ctx, city)
	duration := time.Since(startTime)
	d.metrics.RecordDuration("current", duration.Seconds())

	if err != nil {
		d.logger.LogError(d.providerName, "current", city, err, duration)
		d.metrics.RecordError("current", errorLabel(err))
		return nil, err
	}

	d.logger.LogResponse(d.providerName, "current", city, duration)
	return obs, nil
}

func (d *WeatherLoggerDecorator) FetchForecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	d.logger.LogRequest(d.providerName, "forecast", city)
	d.metrics.RecordRequest("forecast")
	startTime := time.Now()

	points, err := d.wrappedProvider.FetchForecast(ctx, city)
	duration := time.Since(startTime)
	d.metrics.RecordDuration("forecast", duration.Seconds())

	if err != nil {
		d.logger.LogError(d.providerName, "forecast", city, err, duration)
		d.metrics.RecordError("forecast", errorLabel(err))
		return nil, err
	}

	d.logger.LogResponse(d.providerName, "forecast", city, duration)
	return points, nil
}
