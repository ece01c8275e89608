package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()

	s.Increment("accepted")
	s.Increment("accepted")
	s.Increment("schema_invalid")

	if got := s.Count("accepted"); got != 2 {
		t.Errorf("accepted = %d, want 2", got)
	}
	if got := s.Count("schema_invalid"); got != 1 {
		t.Errorf("schema_invalid = %d, want 1", got)
	}
	if got := s.Count("never_seen"); got != 0 {
		t.Errorf("unseen category = %d, want 0", got)
	}
}

func TestPrometheusSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewPrometheusSink(reg)

	s.Increment("unsafe_content")
	s.Increment("unsafe_content")

	got := testutil.ToFloat64(s.outcomes.WithLabelValues("unsafe_content"))
	if got != 2 {
		t.Errorf("counter = %f, want 2", got)
	}
}
