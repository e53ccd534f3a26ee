// Package repository implements the session-scoped observation log
package repository

import (
	"sync"

	"weatherlog.app/models"
)

// ObservationLog is an append-only, insertion-ordered sequence of weather
// observations. It is the single source of truth for all derived views and
// lives only for the lifetime of the process. Safe for concurrent use.
type ObservationLog struct {
	mu      sync.RWMutex
	entries []models.WeatherObservation
}

// NewObservationLog creates an empty observation log
func NewObservationLog() *ObservationLog {
	return &ObservationLog{}
}

// Append adds an observation to the end of the log. It never fails and never
// reorders existing entries.
func (l *ObservationLog) Append(obs models.WeatherObservation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, obs)
}

// Clear removes every entry from the log
func (l *ObservationLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}

// All returns a copy of the log in insertion order
func (l *ObservationLog) All() []models.WeatherObservation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.WeatherObservation, len(l.entries))
	copy(out, l.entries)
	return out
}

// Snapshot returns a stable copy of the log taken at call time. Derived views
// compute over a snapshot so concurrent appends are never observed mid-computation.
func (l *ObservationLog) Snapshot() []models.WeatherObservation {
	return l.All()
}

// Latest returns the last-appended observation, or false if the log is empty
func (l *ObservationLog) Latest() (models.WeatherObservation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return models.WeatherObservation{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of logged observations
func (l *ObservationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}
