// Package app wires configuration, provider stack, log and HTTP server together
package app

import (
	"fmt"
	"log/slog"

	"weatherlog.app/api"
	"weatherlog.app/config"
	"weatherlog.app/providers"
	"weatherlog.app/providers/cache"
	"weatherlog.app/repository"
	"weatherlog.app/scheduler"
	"weatherlog.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	log       *repository.ObservationLog
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	provider, err := app.createProvider()
	if err != nil {
		return fmt.Errorf("create weather provider: %w", err)
	}

	app.log = repository.NewObservationLog()
	weatherService := service.NewWeatherLogService(provider, app.log, app.config)

	app.server = api.NewServer(app.config, weatherService)
	app.scheduler = scheduler.NewScheduler(app.config, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}

// createProvider builds the provider stack: the OpenWeatherMap client wrapped
// in a call-spacing cache and a logging/metrics decorator.
func (app *Application) createProvider() (providers.WeatherProvider, error) {
	slog.Debug("Creating weather provider...")

	baseCache, err := cache.NewFromConfig(&app.config.Cache)
	if err != nil {
		return nil, err
	}
	instrumented := providers.NewInstrumentedCache(baseCache, app.config.Cache.Type)

	requestLogger, err := app.createProviderLogger()
	if err != nil {
		return nil, err
	}

	owm := providers.NewOpenWeatherMapProvider(&app.config.Weather)
	cached := providers.NewWeatherCacheProxy(owm, instrumented, app.config.Cache.TTL())
	logged := providers.NewWeatherLoggerDecorator(cached, requestLogger, "openweathermap")

	slog.Debug("Provider stack created", "cache", app.config.Cache.Type)
	return logged, nil
}

// createProviderLogger routes provider call logs to a file when a path is
// configured, otherwise to slog.
func (app *Application) createProviderLogger() (providers.FileLogger, error) {
	if app.config.Weather.LogFilePath != "" {
		return providers.NewFileLogger(app.config.Weather.LogFilePath)
	}
	return providers.NewSlogProviderLogger(), nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the loaded application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
