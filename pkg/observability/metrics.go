// Package observability provides Prometheus metrics for the protocol
// pipeline: decode failures, validated requests, stream events, and
// finished responses.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the pipeline's Prometheus collectors. Create one per
// process with New and share it across the wire and engine layers.
type Metrics struct {
	decodeFailures    *prometheus.CounterVec
	requestsValidated prometheus.Counter
	streamEvents      *prometheus.CounterVec
	responsesFinished *prometheus.CounterVec
	tokensTotal       *prometheus.CounterVec
}

// New creates and registers the pipeline collectors. A nil registerer
// registers on the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		decodeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "antiphon_decode_failures_total",
				Help: "Request decode and validation failures by error kind",
			},
			[]string{"kind"},
		),
		requestsValidated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "antiphon_requests_validated_total",
				Help: "Requests that passed full validation",
			},
		),
		streamEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "antiphon_stream_events_total",
				Help: "Stream events emitted by the assembler, by event type",
			},
			[]string{"type"},
		),
		responsesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "antiphon_responses_finished_total",
				Help: "Responses reaching a terminal status",
			},
			[]string{"status"},
		),
		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "antiphon_tokens_total",
				Help: "Token usage by direction (input/output)",
			},
			[]string{"direction"},
		),
	}

	reg.MustRegister(
		m.decodeFailures,
		m.requestsValidated,
		m.streamEvents,
		m.responsesFinished,
		m.tokensTotal,
	)
	return m
}

// DecodeFailure records a decode or validation failure by error kind.
func (m *Metrics) DecodeFailure(kind string) {
	m.decodeFailures.WithLabelValues(kind).Inc()
}

// RequestValidated records a request that passed full validation.
func (m *Metrics) RequestValidated() {
	m.requestsValidated.Inc()
}

// StreamEventEmitted records one assembler stream event.
func (m *Metrics) StreamEventEmitted(eventType string) {
	m.streamEvents.WithLabelValues(eventType).Inc()
}

// ResponseFinished records a response reaching a terminal status.
func (m *Metrics) ResponseFinished(status string) {
	m.responsesFinished.WithLabelValues(status).Inc()
}

// TokensUsed records terminal token usage split by direction.
func (m *Metrics) TokensUsed(input, output int) {
	m.tokensTotal.WithLabelValues("input").Add(float64(input))
	m.tokensTotal.WithLabelValues("output").Add(float64(output))
}
