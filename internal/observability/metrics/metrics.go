package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	AuthAttemptsTotal      metric.Int64Counter
	SearchesTotal          metric.Int64Counter
	ReviewSubmissionsTotal metric.Int64Counter
	RatingLookupsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Init creates the metric instruments from the globally configured
// MeterProvider. Safe to call more than once.
func Init() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("bookery")
		var err error
		m := &AppMetrics{}

		m.AuthAttemptsTotal, err = meter.Int64Counter(
			"auth_attempts_total",
			metric.WithDescription("Total login and registration attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: failed to create auth_attempts_total: %v", err)
		}

		m.SearchesTotal, err = meter.Int64Counter(
			"catalog_searches_total",
			metric.WithDescription("Total catalog search requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: failed to create catalog_searches_total: %v", err)
		}

		m.ReviewSubmissionsTotal, err = meter.Int64Counter(
			"review_submissions_total",
			metric.WithDescription("Total review submission attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: failed to create review_submissions_total: %v", err)
		}

		m.RatingLookupsTotal, err = meter.Int64Counter(
			"external_rating_lookups_total",
			metric.WithDescription("Total external rating lookups by outcome"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: failed to create external_rating_lookups_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the process-wide instruments, initializing them on first use so
// tests that never set up a provider still get working no-op counters.
func Get() *AppMetrics {
	Init()
	return appMetrics
}
