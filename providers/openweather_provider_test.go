package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherlog.app/config"
	apperrors "weatherlog.app/errors"
	"weatherlog.app/models"
)

func newTestProvider(currentURL, forecastURL string) *OpenWeatherMapProvider {
	return NewOpenWeatherMapProvider(&config.WeatherConfig{
		APIKey:          "test-api-key",
		CurrentBaseURL:  currentURL,
		ForecastBaseURL: forecastURL,
		TimeoutSeconds:  2,
		ForecastHours:   12,
		ForecastMaxPts:  12,
	})
}

const currentWeatherBody = `{
	"name": "London",
	"coord": {"lat": 51.51, "lon": -0.13},
	"main": {"temp": 15.5, "feels_like": 14.2, "humidity": 78, "pressure": 1012},
	"weather": [{"main": "Rain", "description": "light rain"}],
	"wind": {"speed": 4.6, "deg": 250},
	"sys": {"country": "GB", "sunrise": 1727762400, "sunset": 1727805600},
	"clouds": {"all": 90},
	"visibility": 8000
}`

func TestOpenWeatherMapProvider_FetchCurrent_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "q=London")
		assert.Contains(t, r.URL.String(), "appid=test-api-key")
		assert.Contains(t, r.URL.String(), "units=metric")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(currentWeatherBody))
		assert.NoError(t, err)
	}))
	defer mockServer.Close()

	provider := newTestProvider(mockServer.URL, mockServer.URL)

	obs, err := provider.FetchCurrent(context.Background(), "London")

	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, "London", obs.City)
	assert.Equal(t, "GB", obs.Country)
	assert.Equal(t, 15.5, obs.Temperature)
	assert.Equal(t, 14.2, obs.FeelsLike)
	assert.Equal(t, 78, obs.Humidity)
	assert.Equal(t, 1012, obs.Pressure)
	assert.Equal(t, "light rain", obs.Description)
	assert.Equal(t, "Rain", obs.Condition)
	assert.Equal(t, 4.6, obs.WindSpeed)
	assert.Equal(t, 250, obs.WindDirection)
	assert.Equal(t, 8.0, obs.VisibilityKM) // 8000 m converted at the boundary
	assert.Equal(t, 90, obs.CloudCoverPct)
	assert.Equal(t, 51.51, obs.Latitude)
	assert.Equal(t, models.SourceLive, obs.Source)
	assert.False(t, obs.Timestamp.IsZero())
	assert.False(t, obs.Sunrise.IsZero())
}

func TestOpenWeatherMapProvider_FetchCurrent_EmptyCity(t *testing.T) {
	provider := newTestProvider("https://api.openweathermap.org/data/2.5/weather", "https://api.openweathermap.org/data/2.5/forecast")

	obs, err := provider.FetchCurrent(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, obs)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestOpenWeatherMapProvider_FetchCurrent_MissingAPIKey(t *testing.T) {
	provider := newTestProvider("https://api.openweathermap.org/data/2.5/weather", "https://api.openweathermap.org/data/2.5/forecast")
	provider.apiKey = ""

	obs, err := provider.FetchCurrent(context.Background(), "London")

	assert.Nil(t, obs)
	assert.True(t, apperrors.IsConfigurationError(err))
}

func TestOpenWeatherMapProvider_FetchCurrent_ProviderRejected(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantInMsg  string
	}{
		{
			name:       "CityNotFound",
			statusCode: http.StatusNotFound,
			body:       `{"cod":"404","message":"city not found"}`,
			wantInMsg:  "city not found",
		},
		{
			name:       "InvalidAPIKey",
			statusCode: http.StatusUnauthorized,
			body:       `{"cod":401,"message":"Invalid API key"}`,
			wantInMsg:  "Invalid API key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer mockServer.Close()

			provider := newTestProvider(mockServer.URL, mockServer.URL)

			obs, err := provider.FetchCurrent(context.Background(), "Nowhere")

			assert.Nil(t, obs)
			require.Error(t, err)
			assert.True(t, apperrors.IsProviderRejectedError(err))
			assert.Contains(t, err.Error(), tt.wantInMsg)
		})
	}
}

func TestOpenWeatherMapProvider_FetchCurrent_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	provider := newTestProvider(mockServer.URL, mockServer.URL)

	obs, err := provider.FetchCurrent(context.Background(), "London")

	assert.Nil(t, obs)
	assert.True(t, apperrors.IsExternalAPIError(err))
}

func TestOpenWeatherMapProvider_FetchCurrent_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "MissingMain", body: `{"name":"London","weather":[{"main":"Clear","description":"clear sky"}]}`},
		{name: "MissingWeather", body: `{"name":"London","main":{"temp":15.5,"humidity":70}}`},
		{name: "MissingName", body: `{"main":{"temp":15.5},"weather":[{"main":"Clear","description":"clear sky"}]}`},
		{name: "NotJSON", body: `<html>gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer mockServer.Close()

			provider := newTestProvider(mockServer.URL, mockServer.URL)

			obs, err := provider.FetchCurrent(context.Background(), "London")

			assert.Nil(t, obs)
			assert.True(t, apperrors.IsMalformedResponseError(err))
		})
	}
}

func TestOpenWeatherMapProvider_FetchCurrent_Timeout(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(currentWeatherBody))
	}))
	defer mockServer.Close()

	provider := newTestProvider(mockServer.URL, mockServer.URL)
	provider.httpClient.Timeout = 50 * time.Millisecond

	obs, err := provider.FetchCurrent(context.Background(), "London")

	assert.Nil(t, obs)
	assert.True(t, apperrors.IsTimeoutError(err))
}

func TestOpenWeatherMapProvider_FetchCurrent_NetworkFailure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	mockServer.Close() // refuse connections

	provider := newTestProvider(mockServer.URL, mockServer.URL)

	obs, err := provider.FetchCurrent(context.Background(), "London")

	assert.Nil(t, obs)
	assert.True(t, apperrors.IsNetworkError(err))
}

func TestOpenWeatherMapProvider_FetchForecast_Window(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	var listItems string
	for i, offset := range []time.Duration{3 * time.Hour, 6 * time.Hour, 9 * time.Hour, 12 * time.Hour, 15 * time.Hour} {
		if i > 0 {
			listItems += ","
		}
		listItems += fmt.Sprintf(`{"dt": %d, "main": {"temp": %d}}`, now.Add(offset).Unix(), 10+i)
	}

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(fmt.Sprintf(`{"list": [%s]}`, listItems)))
	}))
	defer mockServer.Close()

	provider := newTestProvider(mockServer.URL, mockServer.URL)
	provider.now = func() time.Time { return now }

	points, err := provider.FetchForecast(context.Background(), "London")

	require.NoError(t, err)
	require.Len(t, points, 4) // +3h..+12h kept, +15h excluded
	assert.Equal(t, now.Add(3*time.Hour).Unix(), points[0].Time.Unix())
	assert.Equal(t, now.Add(12*time.Hour).Unix(), points[3].Time.Unix())
	assert.Equal(t, 10.0, points[0].Temperature)
}

func TestOpenWeatherMapProvider_FetchForecast_EmptyList(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"list": []}`))
	}))
	defer mockServer.Close()

	provider := newTestProvider(mockServer.URL, mockServer.URL)

	points, err := provider.FetchForecast(context.Background(), "London")

	assert.Nil(t, points)
	assert.True(t, apperrors.IsMalformedResponseError(err))
}

func TestFilterForecastWindow(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	makePoints := func(offsets ...time.Duration) []models.ForecastPoint {
		points := make([]models.ForecastPoint, 0, len(offsets))
		for _, off := range offsets {
			points = append(points, models.ForecastPoint{Time: now.Add(off), Temperature: 20})
		}
		return points
	}

	t.Run("ExcludesPastAndBeyondWindow", func(t *testing.T) {
		points := makePoints(-3*time.Hour, 3*time.Hour, 6*time.Hour, 12*time.Hour, 15*time.Hour)
		got := FilterForecastWindow(points, now, 12*time.Hour, 12)

		require.Len(t, got, 3)
		assert.Equal(t, now.Add(3*time.Hour), got[0].Time)
		assert.Equal(t, now.Add(12*time.Hour), got[2].Time)
	})

	t.Run("CapsAtMaxPoints", func(t *testing.T) {
		offsets := make([]time.Duration, 0, 20)
		for i := 0; i < 20; i++ {
			offsets = append(offsets, time.Duration(i)*30*time.Minute)
		}
		got := FilterForecastWindow(makePoints(offsets...), now, 12*time.Hour, 12)

		assert.Len(t, got, 12)
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		points := makePoints(time.Hour, 2*time.Hour, 3*time.Hour)
		got := FilterForecastWindow(points, now, 12*time.Hour, 12)

		require.Len(t, got, 3)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].Time.After(got[i-1].Time))
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		got := FilterForecastWindow(nil, now, 12*time.Hour, 12)
		assert.Empty(t, got)
	})
}
