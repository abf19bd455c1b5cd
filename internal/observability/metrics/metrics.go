package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics счётчики запросов к API клиники и исходов сценариев бота
type BotMetrics struct {
	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	flowEvents  *prometheus.CounterVec
}

// NewBotMetrics регистрирует метрики в reg (nil -> DefaultRegisterer)
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_bot",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total clinic API requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic_bot",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Latency of clinic API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		flowEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_bot",
			Subsystem: "flow",
			Name:      "events_total",
			Help:      "Booking and registration outcomes",
		}, []string{"flow", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.apiRequests, m.apiLatency, m.flowEvents)
	return m
}

// ObserveAPIRequest реализует clinicapi.Observer
func (m *BotMetrics) ObserveAPIRequest(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, status).Inc()
	m.apiLatency.WithLabelValues(endpoint).Observe(seconds)
}

// ObserveFlow считает исход сценария: flow = booking|registration|login|cancel|profile_update|password_change
func (m *BotMetrics) ObserveFlow(flow, outcome string) {
	if m == nil {
		return
	}
	m.flowEvents.WithLabelValues(flow, outcome).Inc()
}
