package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.SessionStarted("s1")
	m.StepMerged("service")
	m.StepMerged("service")
	m.Finalized("success")
	m.ChatMessage("client")
	m.ReminderSent()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsStarted.WithLabelValues("s1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stepsMerged.WithLabelValues("service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finalizations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chatMessages.WithLabelValues("client")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remindersSent))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *BookingMetrics
	var h *HTTPMetrics

	assert.NotPanics(t, func() {
		m.SessionStarted("s1")
		m.StepMerged("client")
		m.Finalized("missing_fields")
		m.ChatMessage("shop")
		m.ReminderSent()
		h.Observe("GET", "/health", "200", 0.01)
	})
}
