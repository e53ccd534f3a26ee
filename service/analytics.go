package service

import (
	"sort"

	"weatherlog.app/models"
)

// Alert thresholds. An observation can trigger several rules at once.
const (
	extremeHeatThreshold  = 35.0 // degrees Celsius, exclusive
	extremeColdThreshold  = -10.0
	strongWindThreshold   = 15.0 // m/s, exclusive
	highHumidityThreshold = 90   // percent, exclusive
)

// ComputeCityStats aggregates per-city statistics over a log snapshot.
// Results are sorted by city name and rounded to two decimal places.
func ComputeCityStats(snapshot []models.WeatherObservation) []models.CityStats {
	type accumulator struct {
		count    int
		tempSum  float64
		tempMin  float64
		tempMax  float64
		humSum   float64
		windSum  float64
		pressSum float64
	}

	byCity := make(map[string]*accumulator)
	for _, obs := range snapshot {
		acc, ok := byCity[obs.City]
		if !ok {
			acc = &accumulator{tempMin: obs.Temperature, tempMax: obs.Temperature}
			byCity[obs.City] = acc
		}
		acc.count++
		acc.tempSum += obs.Temperature
		if obs.Temperature < acc.tempMin {
			acc.tempMin = obs.Temperature
		}
		if obs.Temperature > acc.tempMax {
			acc.tempMax = obs.Temperature
		}
		acc.humSum += float64(obs.Humidity)
		acc.windSum += obs.WindSpeed
		acc.pressSum += float64(obs.Pressure)
	}

	stats := make([]models.CityStats, 0, len(byCity))
	for city, acc := range byCity {
		n := float64(acc.count)
		stats = append(stats, models.CityStats{
			City:            city,
			Entries:         acc.count,
			MeanTemperature: roundTo(acc.tempSum/n, 2),
			MinTemperature:  roundTo(acc.tempMin, 2),
			MaxTemperature:  roundTo(acc.tempMax, 2),
			MeanHumidity:    roundTo(acc.humSum/n, 2),
			MeanWindSpeed:   roundTo(acc.windSum/n, 2),
			MeanPressure:    roundTo(acc.pressSum/n, 2),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].City < stats[j].City })
	return stats
}

// RecentSeries returns the last n observations of the snapshot, oldest first,
// reduced to the fields needed for charting. A non-positive n yields an empty
// series; an n larger than the snapshot yields the whole snapshot.
func RecentSeries(snapshot []models.WeatherObservation, n int) []models.SeriesPoint {
	if n <= 0 {
		return []models.SeriesPoint{}
	}
	start := len(snapshot) - n
	if start < 0 {
		start = 0
	}

	series := make([]models.SeriesPoint, 0, len(snapshot)-start)
	for _, obs := range snapshot[start:] {
		series = append(series, models.SeriesPoint{
			Timestamp:   obs.Timestamp,
			City:        obs.City,
			Temperature: obs.Temperature,
			FeelsLike:   obs.FeelsLike,
		})
	}
	return series
}

// DetectAlerts scans the snapshot in log order and applies every threshold
// rule to every observation. Total counts all triggered alerts; Alerts holds
// at most limit of the most recently triggered ones.
func DetectAlerts(snapshot []models.WeatherObservation, limit int) models.AlertReport {
	triggered := make([]models.Alert, 0)
	for _, obs := range snapshot {
		if obs.Temperature > extremeHeatThreshold {
			triggered = append(triggered, newAlert(models.AlertExtremeHeat, obs, obs.Temperature))
		}
		if obs.Temperature < extremeColdThreshold {
			triggered = append(triggered, newAlert(models.AlertExtremeCold, obs, obs.Temperature))
		}
		if obs.WindSpeed > strongWindThreshold {
			triggered = append(triggered, newAlert(models.AlertStrongWind, obs, obs.WindSpeed))
		}
		if obs.Humidity > highHumidityThreshold {
			triggered = append(triggered, newAlert(models.AlertHighHumidity, obs, float64(obs.Humidity)))
		}
	}

	recent := triggered
	if limit > 0 && len(triggered) > limit {
		recent = triggered[len(triggered)-limit:]
	}
	return models.AlertReport{Total: len(triggered), Alerts: recent}
}

func newAlert(kind models.AlertKind, obs models.WeatherObservation, value float64) models.Alert {
	return models.Alert{
		Kind:      kind,
		City:      obs.City,
		Value:     value,
		Timestamp: obs.Timestamp,
	}
}

// ConditionDistribution counts log entries per coarse weather condition,
// sorted by condition name for stable output.
func ConditionDistribution(snapshot []models.WeatherObservation) []models.ConditionCount {
	counts := make(map[string]int)
	for _, obs := range snapshot {
		counts[obs.Condition]++
	}

	distribution := make([]models.ConditionCount, 0, len(counts))
	for condition, count := range counts {
		distribution = append(distribution, models.ConditionCount{Condition: condition, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Condition < distribution[j].Condition
	})
	return distribution
}
