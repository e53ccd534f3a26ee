// Package models defines data structures used throughout the application
package models

import "time"

// ObservationSource tags where a logged observation came from
type ObservationSource string

const (
	// SourceLive marks observations backed by a real provider call
	SourceLive ObservationSource = "live"
	// SourceSynthetic marks locally generated demo observations
	SourceSynthetic ObservationSource = "synthetic"
)

// WeatherObservation represents one logged weather reading
type WeatherObservation struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"` // client-side capture time
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Temperature float64   `json:"temperature"` // degrees Celsius
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"` // percent
	Pressure    int       `json:"pressure"` // hPa
	Description string    `json:"description"`
	Condition   string    `json:"condition_main"`
	WindSpeed   float64   `json:"wind_speed"` // m/s

	// Enrichment fields, populated for live observations only
	WindDirection int       `json:"wind_direction,omitempty"` // degrees
	VisibilityKM  float64   `json:"visibility_km,omitempty"`
	CloudCoverPct int       `json:"cloud_cover_pct,omitempty"`
	Sunrise       time.Time `json:"sunrise"`
	Sunset        time.Time `json:"sunset"`
	Latitude      float64   `json:"latitude,omitempty"`
	Longitude     float64   `json:"longitude,omitempty"`

	Source ObservationSource `json:"source"`
}

// ForecastPoint represents one forecast sample within the forward window
type ForecastPoint struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
}

// CityStats holds per-city aggregate statistics over the observation log
type CityStats struct {
	City            string  `json:"city"`
	Entries         int     `json:"entries"`
	MeanTemperature float64 `json:"mean_temperature"`
	MinTemperature  float64 `json:"min_temperature"`
	MaxTemperature  float64 `json:"max_temperature"`
	MeanHumidity    float64 `json:"mean_humidity"`
	MeanWindSpeed   float64 `json:"mean_wind_speed"`
	MeanPressure    float64 `json:"mean_pressure"`
}

// AlertKind identifies which threshold rule an alert was triggered by
type AlertKind string

const (
	AlertExtremeHeat  AlertKind = "extreme_heat"
	AlertExtremeCold  AlertKind = "extreme_cold"
	AlertStrongWind   AlertKind = "strong_wind"
	AlertHighHumidity AlertKind = "high_humidity"
)

// Alert represents one triggered threshold rule for one observation
type Alert struct {
	Kind      AlertKind `json:"kind"`
	City      string    `json:"city"`
	Value     float64   `json:"value"` // the reading that crossed the threshold
	Timestamp time.Time `json:"timestamp"`
}

// AlertReport is the result of an alert scan over a log snapshot.
// A report with Total == 0 means the scan ran and found nothing,
// which is distinct from no report at all.
type AlertReport struct {
	Total  int     `json:"total"`
	Alerts []Alert `json:"alerts"`
}

// SeriesPoint is one entry of the recent-window series used for charting
type SeriesPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
}

// ConditionCount holds the number of log entries per coarse weather condition
type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
}

// SyntheticRequest represents data required to add a synthetic observation
type SyntheticRequest struct {
	City string `json:"city" form:"city" binding:"required"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
