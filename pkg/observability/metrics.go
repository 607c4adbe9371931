// Package observability registers the application's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route, method, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripscheduler_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"route", "method", "status"})

	// HTTPRequestDuration observes per-request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripscheduler_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ItinerariesGenerated counts successful itinerary generations by
	// city.
	ItinerariesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripscheduler_itineraries_generated_total",
		Help: "Itineraries generated, by city.",
	}, []string{"city"})
)
