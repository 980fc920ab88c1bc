package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
	StateActive      = "active"
	StateSuspended   = "suspended"
	metricsNamespace = "customer_service"
)

type BusinessMetrics struct {
	OperationsTotal  *prometheus.CounterVec
	CustomersByState *prometheus.GaugeVec
}

var Business = BusinessMetrics{
	OperationsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Total number of customer operations by outcome.",
		},
		[]string{"operation", "outcome"},
	),
	CustomersByState: promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "customers",
			Help:      "Number of stored customers by state, refreshed by the stats job.",
		},
		[]string{"state"},
	),
}

func RecordOperation(operation, outcome string) {
	Business.OperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func SetCustomerCounts(active, suspended int) {
	Business.CustomersByState.WithLabelValues(StateActive).Set(float64(active))
	Business.CustomersByState.WithLabelValues(StateSuspended).Set(float64(suspended))
}
