package reco

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecoServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_recommendations_served_total",
			Help: "Count of served recommendation lists by slot and confidence.",
		},
		[]string{"slot", "low_confidence"},
	)

	RecoExcludedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_hard_constraint_exclusions_total",
			Help: "Count of candidates excluded by the skill-ceiling hard constraint.",
		},
	)

	RecoFeatureCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_feature_cache_lookups_total",
			Help: "Feature-vector cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RecoServedTotal, RecoExcludedTotal, RecoFeatureCacheHits)
}
