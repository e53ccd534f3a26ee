package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weatherlog.app/config"
	"weatherlog.app/errors"
	"weatherlog.app/models"
)

// OpenWeatherMapProvider fetches current conditions and forecasts from
// the OpenWeatherMap API and normalizes responses into flat records.
type OpenWeatherMapProvider struct {
	apiKey          string
	currentBaseURL  string
	forecastBaseURL string
	forecastWindow  time.Duration
	forecastMaxPts  int
	httpClient      *http.Client
	now             func() time.Time
}

type owmCurrentResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int    `json:"visibility"` // meters
	Message    string `json:"message,omitempty"`
}

type owmForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
	Message json.RawMessage `json:"message,omitempty"`
}

type owmErrorResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

// NewOpenWeatherMapProvider creates a provider from weather configuration
func NewOpenWeatherMapProvider(cfg *config.WeatherConfig) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:          cfg.APIKey,
		currentBaseURL:  cfg.CurrentBaseURL,
		forecastBaseURL: cfg.ForecastBaseURL,
		forecastWindow:  cfg.ForecastWindow(),
		forecastMaxPts:  cfg.ForecastMaxPts,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		now: time.Now,
	}
}

// FetchCurrent retrieves and normalizes current conditions for a city
func (p *OpenWeatherMapProvider) FetchCurrent(ctx context.Context, city string) (*models.WeatherObservation, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("OpenWeatherMap API key is not configured", nil)
	}

	body, err := p.get(ctx, p.currentBaseURL, city)
	if err != nil {
		return nil, err
	}

	var apiResponse owmCurrentResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("decode openweathermap response: %v", err))
	}

	return p.convertToObservation(&apiResponse)
}

// FetchForecast retrieves the 5-day/3-hour forecast and reduces it to the
// forward window of at most forecastMaxPts points
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("OpenWeatherMap API key is not configured", nil)
	}

	body, err := p.get(ctx, p.forecastBaseURL, city)
	if err != nil {
		return nil, err
	}

	var apiResponse owmForecastResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("decode openweathermap forecast: %v", err))
	}

	if len(apiResponse.List) == 0 {
		return nil, errors.NewMalformedResponseError("forecast response contains no list entries")
	}

	points := make([]models.ForecastPoint, 0, len(apiResponse.List))
	for _, item := range apiResponse.List {
		if item.Main == nil {
			return nil, errors.NewMalformedResponseError("forecast entry missing main section")
		}
		points = append(points, models.ForecastPoint{
			Time:        time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
		})
	}

	return FilterForecastWindow(points, p.now(), p.forecastWindow, p.forecastMaxPts), nil
}

func (p *OpenWeatherMapProvider) get(ctx context.Context, baseURL, city string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s?q=%s&appid=%s&units=metric", baseURL, url.QueryEscape(city), p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewNetworkError("build openweathermap request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return nil, errors.NewTimeoutError("openweathermap request timed out", err)
		}
		return nil, errors.NewNetworkError("openweathermap request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("read openweathermap response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode, body)
	}

	return body, nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int, body []byte) error {
	var errResp owmErrorResponse
	_ = json.Unmarshal(body, &errResp)

	message := errResp.Message
	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusBadRequest:
		return errors.NewProviderRejectedError(fmt.Sprintf("openweathermap: %s", message))
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("openweathermap: HTTP %d error", statusCode), nil)
	}
}

func (p *OpenWeatherMapProvider) convertToObservation(apiResp *owmCurrentResponse) (*models.WeatherObservation, error) {
	if apiResp.Main == nil {
		return nil, errors.NewMalformedResponseError("response missing main section")
	}
	if len(apiResp.Weather) == 0 {
		return nil, errors.NewMalformedResponseError("response missing weather conditions")
	}
	if apiResp.Name == "" {
		return nil, errors.NewMalformedResponseError("response missing city name")
	}

	obs := &models.WeatherObservation{
		Timestamp:   p.now(),
		City:        apiResp.Name,
		Country:     apiResp.Sys.Country,
		Temperature: apiResp.Main.Temp,
		FeelsLike:   apiResp.Main.FeelsLike,
		Humidity:    apiResp.Main.Humidity,
		Pressure:    apiResp.Main.Pressure,
		Description: apiResp.Weather[0].Description,
		Condition:   apiResp.Weather[0].Main,
		WindSpeed:   apiResp.Wind.Speed,

		WindDirection: apiResp.Wind.Deg,
		VisibilityKM:  float64(apiResp.Visibility) / 1000.0, // meters to kilometers
		CloudCoverPct: apiResp.Clouds.All,
		Latitude:      apiResp.Coord.Lat,
		Longitude:     apiResp.Coord.Lon,

		Source: models.SourceLive,
	}

	if apiResp.Sys.Sunrise > 0 {
		obs.Sunrise = time.Unix(apiResp.Sys.Sunrise, 0)
	}
	if apiResp.Sys.Sunset > 0 {
		obs.Sunset = time.Unix(apiResp.Sys.Sunset, 0)
	}

	return obs, nil
}

func isTimeout(err error) bool {
	type timeout interface {
		Timeout() bool
	}
	for e := err; e != nil; {
		if t, ok := e.(timeout); ok && t.Timeout() {
			return true
		}
		unwrapper, ok := e.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		e = unwrapper.Unwrap()
	}
	return false
}

// FilterForecastWindow retains points whose time falls within [now, now+window],
// preserving provider order, capped at maxPoints entries.
func FilterForecastWindow(points []models.ForecastPoint, now time.Time, window time.Duration, maxPoints int) []models.ForecastPoint {
	cutoff := now.Add(window)

	filtered := make([]models.ForecastPoint, 0, maxPoints)
	for _, pt := range points {
		if pt.Time.Before(now) || pt.Time.After(cutoff) {
			continue
		}
		filtered = append(filtered, pt)
		if len(filtered) == maxPoints {
			break
		}
	}
	return filtered
}
