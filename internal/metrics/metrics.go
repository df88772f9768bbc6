package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tarjumo",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Number of requests sent to upstream content APIs.",
		}, []string{"source", "result"})
	UpstreamRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tarjumo",
			Subsystem: "upstream",
			Name:      "request_seconds",
			Help:      "Latency of upstream content API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"source"})

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tarjumo",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Number of response cache lookups by layer and result.",
		}, []string{"layer", "result"})

	TranslationCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tarjumo",
			Subsystem: "translate",
			Name:      "provider_calls_total",
			Help:      "Number of machine translation calls by provider and result.",
		}, []string{"provider", "result"})
	TranslationScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tarjumo",
			Subsystem: "translate",
			Name:      "candidate_score",
			Help:      "Quality score of machine translation candidates.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}, []string{"provider"})

	HadithResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tarjumo",
			Subsystem: "hadith",
			Name:      "resolutions_total",
			Help:      "Number of hadith translation resolutions by source.",
		}, []string{"source"})
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNotFound = "not_found"
	ResultHit      = "hit"
	ResultMiss     = "miss"
)

func init() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestSeconds,
		CacheLookupsTotal,
		TranslationCallsTotal,
		TranslationScore,
		HadithResolutionsTotal,
	)
}
