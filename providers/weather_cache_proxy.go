package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weatherlog.app/models"
)

// WeatherCacheProxy spaces out calls toward the provider: repeated fetches for
// the same city within the TTL are answered from the cache instead of hitting
// the network. The cache is session-scoped and short-lived, not an offline store.
type WeatherCacheProxy struct {
	realProvider WeatherProvider
	cache        Cache
	cacheTTL     time.Duration
}

func NewWeatherCacheProxy(realProvider WeatherProvider, cache Cache, cacheTTL time.Duration) WeatherProvider {
	return &WeatherCacheProxy{
		realProvider: realProvider,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func (p *WeatherCacheProxy) FetchCurrent(ctx context.Context, city string) (*models.WeatherObservation, error) {
	cacheKey := p.currentKey(city)

	if data, found := p.cache.Get(ctx, cacheKey); found {
		var obs models.WeatherObservation
		if err := json.Unmarshal(data, &obs); err == nil {
			slog.Info("cache hit", "city", city)
			return &obs, nil
		}
	}

	slog.Info("cache miss", "city", city)

	obs, err := p.realProvider.FetchCurrent(ctx, city)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(obs); err == nil {
		p.cache.Set(ctx, cacheKey, data, p.cacheTTL)
	}

	return obs, nil
}

func (p *WeatherCacheProxy) FetchForecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	cacheKey := p.forecastKey(city)

	if data, found := p.cache.Get(ctx, cacheKey); found {
		var points []models.ForecastPoint
		if err := json.Unmarshal(data, &points); err == nil {
			slog.Info("forecast cache hit", "city", city)
			return points, nil
		}
	}

	slog.Info("forecast cache miss", "city", city)

	points, err := p.realProvider.FetchForecast(ctx, city)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(points); err == nil {
		p.cache.Set(ctx, cacheKey, data, p.cacheTTL)
	}

	return points, nil
}

func (p *WeatherCacheProxy) currentKey(city string) string {
	return fmt.Sprintf("weather:current:%s", strings.ToLower(city))
}

func (p *WeatherCacheProxy) forecastKey(city string) string {
	return fmt.Sprintf("weather:forecast:%s", strings.ToLower(city))
}
