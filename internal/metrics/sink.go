// Package metrics provides the counter sink the guardrail reports
// outcomes through. The sink is injected rather than process-global so
// tests can observe counts in isolation.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Sink receives monotonic, category-labelled counter increments.
// Implementations must be safe for concurrent use.
type Sink interface {
	Increment(category string)
}

// PrometheusSink backs the sink with a prometheus CounterVec.
type PrometheusSink struct {
	outcomes *prometheus.CounterVec
}

// NewPrometheusSink registers the guardrail outcome counter with reg
// and returns the sink.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mathdrill",
		Subsystem: "guardrail",
		Name:      "outcomes_total",
		Help:      "Guardrail verdicts by outcome or rejection reason.",
	}, []string{"category"})
	reg.MustRegister(outcomes)
	return &PrometheusSink{outcomes: outcomes}
}

func (s *PrometheusSink) Increment(category string) {
	s.outcomes.WithLabelValues(category).Inc()
}

// MemorySink is an in-process sink for tests and for callers that do
// not scrape metrics.
type MemorySink struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{counts: make(map[string]int64)}
}

func (s *MemorySink) Increment(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[category]++
}

// Count returns the current value for a category.
func (s *MemorySink) Count(category string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[category]
}
