package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	BalancesComputed prometheus.Counter
	SurplusBanked    prometheus.Counter
	SurplusApplied   prometheus.Counter
	PoolsCreated     prometheus.Counter
	PoolsRejected    prometheus.Counter

	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BalancesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fueleu_compliance_balances_computed_total",
			Help: "Total number of compliance balance computations",
		}),
		SurplusBanked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fueleu_banking_surplus_banked_total",
			Help: "Total number of successful bank operations",
		}),
		SurplusApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fueleu_banking_surplus_applied_total",
			Help: "Total number of successful apply operations",
		}),
		PoolsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fueleu_pools_created_total",
			Help: "Total number of pools created",
		}),
		PoolsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fueleu_pools_rejected_total",
			Help: "Total number of pool requests rejected as infeasible",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fueleu_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route, and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
