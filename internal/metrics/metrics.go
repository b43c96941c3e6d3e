package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropsight_provider_api_calls_total",
			Help: "Total weather provider API calls",
		},
		[]string{"status"},
	)

	ProviderLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cropsight_provider_api_latency_seconds",
			Help:    "Weather provider API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ForecastsAggregated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropsight_forecasts_aggregated_total",
			Help: "Total forecast fetches successfully aggregated into daily summaries",
		},
		[]string{"location"},
	)

	IndicatorSeriesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cropsight_indicator_series_generated_total",
			Help: "Total indicator series generated",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropsight_http_requests_total",
			Help: "Total HTTP requests by path and status",
		},
		[]string{"path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropsight_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)
