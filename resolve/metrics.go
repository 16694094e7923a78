package resolve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sourceCache    = "cache"
	sourceRemote   = "remote"
	sourceFallback = "fallback"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bincheck_lookups_total",
		Help: "Successful resolutions by where the answer came from",
	}, []string{"source"})
	lookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bincheck_lookup_failures_total",
		Help: "Resolutions that surfaced an error, by kind",
	}, []string{"kind"})
	enrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bincheck_enrichment_failures_total",
		Help: "Geocoding attempts that produced nothing usable",
	})
	persistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bincheck_persist_failures_total",
		Help: "Fresh records that could not be written to the local store",
	})
	remoteDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bincheck_remote_lookup_duration_ms",
		Help:    "Duration of binlist lookups in milliseconds",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})
)
