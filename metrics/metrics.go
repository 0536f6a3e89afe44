package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking wizard and support chat.
// A nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	sessionsStarted *prometheus.CounterVec
	stepsMerged     *prometheus.CounterVec
	finalizations   *prometheus.CounterVec
	chatMessages    *prometheus.CounterVec
	remindersSent   prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "booking",
			Name:      "sessions_started_total",
			Help:      "Booking sessions started",
		}, []string{"shop"}),
		stepsMerged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "booking",
			Name:      "steps_merged_total",
			Help:      "Wizard steps merged into drafts",
		}, []string{"step"}),
		finalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "booking",
			Name:      "finalizations_total",
			Help:      "Draft finalization attempts by outcome",
		}, []string{"outcome"}),
		chatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "support",
			Name:      "chat_messages_total",
			Help:      "Chat messages appended",
		}, []string{"sender"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "notifications",
			Name:      "reminders_total",
			Help:      "Appointment reminders appended to shop feeds",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.stepsMerged, m.finalizations, m.chatMessages, m.remindersSent)
	return m
}

func (m *BookingMetrics) SessionStarted(shopID string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(shopID).Inc()
}

func (m *BookingMetrics) StepMerged(step string) {
	if m == nil {
		return
	}
	m.stepsMerged.WithLabelValues(step).Inc()
}

func (m *BookingMetrics) Finalized(outcome string) {
	if m == nil {
		return
	}
	m.finalizations.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ChatMessage(sender string) {
	if m == nil {
		return
	}
	m.chatMessages.WithLabelValues(sender).Inc()
}

func (m *BookingMetrics) ReminderSent() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}

// HTTPMetrics records request latency per route.
type HTTPMetrics struct {
	latency *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barbershop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.latency)
	return m
}

func (m *HTTPMetrics) Observe(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(method, route, status).Observe(seconds)
}
