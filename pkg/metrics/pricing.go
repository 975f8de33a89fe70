package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the price prediction handler
	PredictLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_predict_latency_seconds",
		Help:    "Latency of the price prediction handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of price predictions served
	PredictTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_predict_requests_total",
		Help: "Total number of price predictions served",
	})

	// Which business rule last mutated the served price
	RuleAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_rule_applied_total",
		Help: "Count of served predictions by last applied business rule",
	}, []string{"rule"})

	// Episode rollouts executed via the simulation endpoint
	RolloutTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_rollouts_total",
		Help: "Total number of episode rollouts executed",
	})
)

func Init() {
	prometheus.MustRegister(
		PredictLatency,
		PredictTotal,
		RuleAppliedTotal,
		RolloutTotal,
	)
}
