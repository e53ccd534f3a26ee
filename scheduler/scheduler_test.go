package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"weatherlog.app/config"
	"weatherlog.app/models"
)

type recordingService struct {
	mu     sync.Mutex
	cities []string
}

func (r *recordingService) FetchAndLog(_ context.Context, city string) (*models.WeatherObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cities = append(r.cities, city)
	return &models.WeatherObservation{City: city}, nil
}

func (r *recordingService) Forecast(context.Context, string) ([]models.ForecastPoint, error) {
	return nil, nil
}
func (r *recordingService) AddSynthetic(string) (*models.WeatherObservation, error) {
	return nil, nil
}

func (r *recordingService) LoadDemo() []models.WeatherObservation { return nil }
func (r *recordingService) Logs() []models.WeatherObservation     { return nil }

func (r *recordingService) Latest() (models.WeatherObservation, bool) {
	return models.WeatherObservation{}, false
}

func (r *recordingService) Clear()                                {}
func (r *recordingService) Stats() []models.CityStats             { return nil }
func (r *recordingService) RecentSeries(int) []models.SeriesPoint { return nil }
func (r *recordingService) Alerts() models.AlertReport            { return models.AlertReport{} }
func (r *recordingService) Conditions() []models.ConditionCount   { return nil }
func (r *recordingService) ExportCSV() (string, []byte)           { return "", nil }

func (r *recordingService) fetched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.cities))
	copy(out, r.cities)
	return out
}

func schedulerConfig(cities []string) *config.Config {
	return &config.Config{
		Weather: config.WeatherConfig{TimeoutSeconds: 1},
		Scheduler: config.SchedulerConfig{
			TrackedCities:   cities,
			IntervalMinutes: 60,
		},
	}
}

func TestSchedulerRefreshesTrackedCitiesOnStart(t *testing.T) {
	svc := &recordingService{}
	sched := NewScheduler(schedulerConfig([]string{"London", "Paris"}), svc)

	sched.Start()
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		return len(svc.fetched()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"London", "Paris"}, svc.fetched())
}

func TestSchedulerDisabledWithoutTrackedCities(t *testing.T) {
	svc := &recordingService{}
	sched := NewScheduler(schedulerConfig(nil), svc)

	sched.Start()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, svc.fetched())
}
