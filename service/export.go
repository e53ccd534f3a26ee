package service

import (
	"strconv"
	"strings"
	"time"

	"weatherlog.app/models"
)

const (
	csvHeader          = "timestamp,city,country,temperature,feels_like,humidity,pressure,description,wind_speed,status"
	csvTimestampLayout = "2006-01-02 15:04:05"
	exportNameLayout   = "20060102_150405"
)

// ToCSV renders a log snapshot as CSV. Fields are joined with commas
// without quoting, matching the download format consumed by spreadsheet
// tooling on the presentation side.
func ToCSV(snapshot []models.WeatherObservation) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, obs := range snapshot {
		fields := []string{
			obs.Timestamp.Format(csvTimestampLayout),
			obs.City,
			obs.Country,
			formatFloat(obs.Temperature),
			formatFloat(obs.FeelsLike),
			strconv.Itoa(obs.Humidity),
			strconv.Itoa(obs.Pressure),
			obs.Description,
			formatFloat(obs.WindSpeed),
			string(obs.Source),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// ExportFilename builds a timestamped download name for a CSV export.
func ExportFilename(now time.Time) string {
	return "weather_data_" + now.Format(exportNameLayout) + ".csv"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
