package transcache

import "github.com/prometheus/client_golang/prometheus"

// Lookup results recorded by Metrics.
const (
	resultHit      = "hit"
	resultNegative = "negative"
	resultMiss     = "miss"
)

// Metrics counts cache activity of the adapters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	lookupsTotal       *prometheus.CounterVec
	storesTotal        *prometheus.CounterVec
	parseFailuresTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Total number of cache lookups by operation and result",
			},
			[]string{"operation", "result"},
		),
		storesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stores_total",
				Help:      "Total number of cache add attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		parseFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_failures_total",
				Help:      "Total number of translation files that could not be read or parsed",
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.lookupsTotal, m.storesTotal, m.parseFailuresTotal)
	return m
}

func (m *Metrics) lookup(operation, result string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) store(operation string, stored bool) {
	if m == nil {
		return
	}
	outcome := "stored"
	if !stored {
		outcome = "skipped"
	}
	m.storesTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) parseFailure(operation string) {
	if m == nil {
		return
	}
	m.parseFailuresTotal.WithLabelValues(operation).Inc()
}
