package login

import "github.com/prometheus/client_golang/prometheus"

// OutcomeSuccess is the outcome label of a successful callback.
const OutcomeSuccess = "success"

// Metrics counts callback outcomes per provider.
type Metrics struct {
	callbacks *prometheus.CounterVec
}

// NewMetrics registers the login collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cvforge",
			Subsystem: "login",
			Name:      "callback_total",
			Help:      "Authorization callbacks by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
	reg.MustRegister(m.callbacks)
	return m
}

func (m *Metrics) observe(provider, outcome string) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "unknown"
	}
	m.callbacks.WithLabelValues(provider, outcome).Inc()
}

// Counter returns the counter for one provider and outcome.
func (m *Metrics) Counter(provider, outcome string) prometheus.Counter {
	return m.callbacks.WithLabelValues(provider, outcome)
}
