package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherlog.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Log       LogConfig       `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the OpenWeatherMap client
type WeatherConfig struct {
	APIKey          string `envconfig:"OWM_API_KEY" required:"true"`
	CurrentBaseURL  string `envconfig:"OWM_CURRENT_BASE_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	ForecastBaseURL string `envconfig:"OWM_FORECAST_BASE_URL" default:"https://api.openweathermap.org/data/2.5/forecast"`
	TimeoutSeconds  int    `envconfig:"OWM_TIMEOUT_SECONDS" default:"10"`
	ForecastHours   int    `envconfig:"FORECAST_WINDOW_HOURS" default:"12"`
	ForecastMaxPts  int    `envconfig:"FORECAST_MAX_POINTS" default:"12"`
	LogFilePath     string `envconfig:"PROVIDER_LOG_FILE" default:""`
}

// Timeout returns the provider request timeout as a duration
func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// ForecastWindow returns the forward-looking forecast span as a duration
func (w WeatherConfig) ForecastWindow() time.Duration {
	return time.Duration(w.ForecastHours) * time.Hour
}

// CacheConfig contains settings for the call-spacing cache in front of the provider
type CacheConfig struct {
	Type       string `envconfig:"CACHE_TYPE" default:"memory"` // "memory" or "redis"
	TTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"60"`

	RedisAddr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB           int    `envconfig:"REDIS_DB" default:"0"`
	RedisDialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	RedisReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	RedisWriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// TTL returns the cache entry lifetime as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LogConfig contains settings for the observation log and its derived views
type LogConfig struct {
	RecentWindowSize int      `envconfig:"RECENT_WINDOW_SIZE" default:"10"`
	AlertLimit       int      `envconfig:"ALERT_LIMIT" default:"5"`
	DemoCities       []string `envconfig:"DEMO_CITIES" default:"London,Paris,New York,Tokyo,Mumbai"`
}

// SchedulerConfig contains settings for the optional background refresher
type SchedulerConfig struct {
	TrackedCities   []string `envconfig:"TRACKED_CITIES"`
	IntervalMinutes int      `envconfig:"REFRESH_INTERVAL_MINUTES" default:"60"`
}

// Interval returns the refresh interval as a duration
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// Enabled reports whether background refreshing is configured
func (s SchedulerConfig) Enabled() bool {
	return len(s.TrackedCities) > 0
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OWM_API_KEY is required", nil)
	}
	for name, url := range map[string]string{
		"OWM_CURRENT_BASE_URL":  w.CurrentBaseURL,
		"OWM_FORECAST_BASE_URL": w.ForecastBaseURL,
	} {
		if url == "" {
			return errors.NewConfigurationError(fmt.Sprintf("%s cannot be empty", name), nil)
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return errors.NewConfigurationError(fmt.Sprintf("%s must start with http:// or https://", name), nil)
		}
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("OWM_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if w.ForecastHours < 1 {
		return errors.NewConfigurationError("FORECAST_WINDOW_HOURS must be at least 1", nil)
	}
	if w.ForecastMaxPts < 1 {
		return errors.NewConfigurationError("FORECAST_MAX_POINTS must be at least 1", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be either 'memory' or 'redis'", nil)
	}
	if c.TTLSeconds < 0 {
		return errors.NewConfigurationError("CACHE_TTL_SECONDS cannot be negative", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when CACHE_TYPE is 'redis'", nil)
	}
	return nil
}

// Validate checks observation log configuration
func (l *LogConfig) Validate() error {
	if l.RecentWindowSize < 1 {
		return errors.NewConfigurationError("RECENT_WINDOW_SIZE must be at least 1", nil)
	}
	if l.AlertLimit < 1 {
		return errors.NewConfigurationError("ALERT_LIMIT must be at least 1", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.IntervalMinutes < 1 {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES must be at least 1", nil)
	}
	if s.IntervalMinutes > 1440 {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}
