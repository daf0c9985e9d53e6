// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route", "status"},
	)

	queryFeaturesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_features_returned",
			Help:    "Features returned per spatial query after decimation.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
		},
	)

	queryPartitionsScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_partitions_scanned",
			Help:    "Loaded partitions scanned per spatial query.",
			Buckets: prometheus.LinearBuckets(0, 1, 9),
		},
	)

	storePartitionFeatures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_partition_features",
			Help: "Features loaded per partition.",
		},
		[]string{"partition"},
	)

	storePartitionsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_partitions_loaded",
			Help: "Partitions that loaded successfully at startup.",
		},
	)

	storePartitionsFailed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_partitions_failed",
			Help: "Partitions that failed to load at startup.",
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)
)

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func ObserveQuery(partitionsScanned, featuresReturned int) {
	queryPartitionsScanned.Observe(float64(partitionsScanned))
	queryFeaturesReturned.Observe(float64(featuresReturned))
}

func SetPartitionFeatures(partition, features int) {
	storePartitionFeatures.WithLabelValues(strconv.Itoa(partition)).Set(float64(features))
}

func SetPartitionsLoaded(loaded, failed int) {
	storePartitionsLoaded.Set(float64(loaded))
	storePartitionsFailed.Set(float64(failed))
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}
