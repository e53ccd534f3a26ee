package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ProviderMetricsCollector struct {
	Requests *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var providerCollector *ProviderMetricsCollector

func getProviderCollector() *ProviderMetricsCollector {
	if providerCollector == nil {
		providerCollector = &ProviderMetricsCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherlog_provider_requests_total",
					Help: "The total number of weather provider requests",
				},
				[]string{"provider", "operation"},
			),
			Errors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherlog_provider_errors_total",
					Help: "The total number of failed weather provider requests",
				},
				[]string{"provider", "operation", "error_type"},
			),
			Duration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weatherlog_provider_duration_seconds",
					Help:    "Weather provider request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider", "operation"},
			),
		}
	}
	return providerCollector
}

// ProviderMetrics records request counts, failures and latency per provider operation
type ProviderMetrics struct {
	provider  string
	collector *ProviderMetricsCollector
}

func NewProviderMetrics(provider string) *ProviderMetrics {
	return &ProviderMetrics{
		provider:  provider,
		collector: getProviderCollector(),
	}
}

func (m *ProviderMetrics) RecordRequest(operation string) {
	m.collector.Requests.WithLabelValues(m.provider, operation).Inc()
}

func (m *ProviderMetrics) RecordError(operation, errorType string) {
	m.collector.Errors.WithLabelValues(m.provider, operation, errorType).Inc()
}

func (m *ProviderMetrics) RecordDuration(operation string, seconds float64) {
	m.collector.Duration.WithLabelValues(m.provider, operation).Observe(seconds)
}
