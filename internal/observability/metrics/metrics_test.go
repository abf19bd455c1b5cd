package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestBotMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBotMetrics(reg)

	m.ObserveAPIRequest("book_appointment", "201", 0.2)
	m.ObserveAPIRequest("book_appointment", "201", 0.1)
	m.ObserveAPIRequest("book_appointment", "409", 0.1)
	m.ObserveFlow("booking", "success")

	assert.Equal(t, float64(2), counterValue(t, reg, "clinic_bot_api_requests_total",
		map[string]string{"endpoint": "book_appointment", "status": "201"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "clinic_bot_flow_events_total",
		map[string]string{"flow": "booking", "outcome": "success"}))
}

func TestBotMetricsNilSafe(t *testing.T) {
	var m *BotMetrics
	m.ObserveAPIRequest("available_slots", "200", 0.1)
	m.ObserveFlow("registration", "failed")
}
