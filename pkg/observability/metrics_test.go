package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.DecodeFailure("unknown_variant")
	m.DecodeFailure("unknown_variant")
	m.RequestValidated()
	m.StreamEventEmitted("response.created")
	m.ResponseFinished("completed")
	m.TokensUsed(10, 25)

	if got := testutil.ToFloat64(m.decodeFailures.WithLabelValues("unknown_variant")); got != 2 {
		t.Errorf("decode failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsValidated); got != 1 {
		t.Errorf("requests validated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.streamEvents.WithLabelValues("response.created")); got != 1 {
		t.Errorf("stream events = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.responsesFinished.WithLabelValues("completed")); got != 1 {
		t.Errorf("responses finished = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.tokensTotal.WithLabelValues("output")); got != 25 {
		t.Errorf("output tokens = %v, want 25", got)
	}
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.RequestValidated()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "antiphon_requests_validated_total" {
			found = true
		}
	}
	if !found {
		t.Error("antiphon_requests_validated_total not registered")
	}
}
