package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the simulator. Methods are no-ops
// on a nil receiver so components can run without metrics in tests.
type Metrics struct {
	FieldChecks        *prometheus.CounterVec
	KBVAnswers         *prometheus.CounterVec
	SessionTransitions *prometheus.CounterVec
	RequestLatency     *prometheus.HistogramVec
	Throttled          prometheus.Counter
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FieldChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tidv_field_checks_total",
			Help: "Identity field checks by policy and aggregate status",
		}, []string{"policy", "status"}),

		KBVAnswers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tidv_kbv_answers_total",
			Help: "KBV answers graded by benefit type and status",
		}, []string{"benefit_type", "status"}),

		SessionTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tidv_session_transitions_total",
			Help: "Authentication dialogue transitions by source and target state",
		}, []string{"from", "to"}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tidv_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),

		Throttled: f.NewCounter(prometheus.CounterOpts{
			Name: "tidv_http_throttled_total",
			Help: "Requests rejected by the global throttle",
		}),
	}
}

// IncrementFieldCheck records one field check outcome.
func (m *Metrics) IncrementFieldCheck(policy, status string) {
	if m != nil {
		m.FieldChecks.WithLabelValues(policy, status).Inc()
	}
}

// IncrementKBVAnswer records one graded KBV answer.
func (m *Metrics) IncrementKBVAnswer(benefitType, status string) {
	if m != nil {
		m.KBVAnswers.WithLabelValues(benefitType, status).Inc()
	}
}

// IncrementTransition records a dialogue transition.
func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.SessionTransitions.WithLabelValues(from, to).Inc()
	}
}

// ObserveRequestLatency records how long a route took to serve.
func (m *Metrics) ObserveRequestLatency(route string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementThrottled records a throttled request.
func (m *Metrics) IncrementThrottled() {
	if m != nil {
		m.Throttled.Inc()
	}
}
