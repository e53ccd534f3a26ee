// Package scheduler implements background refreshes of tracked cities
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"weatherlog.app/config"
	"weatherlog.app/service"
)

// Scheduler periodically fetches weather for the configured tracked cities
// and appends the results to the observation log.
type Scheduler struct {
	config         *config.Config
	weatherService service.WeatherLogServiceInterface
	stop           chan struct{}
}

// NewScheduler creates a new background refresher
func NewScheduler(config *config.Config, weatherService service.WeatherLogServiceInterface) *Scheduler {
	return &Scheduler{
		config:         config,
		weatherService: weatherService,
		stop:           make(chan struct{}),
	}
}

// Start begins the refresh loop. It does nothing when no cities are tracked.
func (s *Scheduler) Start() {
	if !s.config.Scheduler.Enabled() {
		slog.Info("Background refresh disabled, no tracked cities configured")
		return
	}

	go s.scheduleInterval(s.config.Scheduler.Interval(), s.refreshTrackedCities)
}

// Stop terminates the refresh loop
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) refreshTrackedCities() {
	for _, city := range s.config.Scheduler.TrackedCities {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.Weather.Timeout())
		if _, err := s.weatherService.FetchAndLog(ctx, city); err != nil {
			slog.Error("Background refresh failed", "error", err, "city", city)
		}
		cancel()
	}
}
