package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	aggregations     *prometheus.CounterVec
	notifierOutcomes *prometheus.CounterVec
}

// New creates the domain counters and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		aggregations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_aggregations_total",
				Help: "Dashboard aggregation requests by operation and result.",
			},
			[]string{"operation", "result"},
		),
		notifierOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verification_notifier_outcomes_total",
				Help: "Document change events handled by the verification notifier, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.aggregations, m.notifierOutcomes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveAggregation counts one dashboard aggregation.
func (m *Metrics) ObserveAggregation(operation, result string) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(operation, result).Inc()
}

// ObserveNotifierOutcome counts one handled document change.
func (m *Metrics) ObserveNotifierOutcome(outcome string) {
	if m == nil {
		return
	}
	m.notifierOutcomes.WithLabelValues(outcome).Inc()
}
