package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

// Outcomes recorded for each send.
const (
	OutcomeSuccess      = "success"
	OutcomeError        = "error"
	OutcomePrecondition = "precondition"
)

// Metrics records provider calls. A nil *Metrics is a no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	tokens   *prometheus.CounterVec
}

func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aihelp",
			Name:      "llm_requests_total",
			Help:      "Total number of prompts sent to LLM providers.",
		},
		[]string{"provider", "model", "outcome"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aihelp",
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of upstream model requests.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider", "model"},
	)
	tokens := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aihelp",
			Name:      "llm_tokens_total",
			Help:      "Total prompt/completion tokens reported by providers.",
		},
		[]string{"provider", "model", "kind"},
	)
	for _, c := range []prometheus.Collector{requests, latency, tokens} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return &Metrics{registry: registry, requests: requests, latency: latency, tokens: tokens}, nil
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest counts one send. Latency is only observed for calls that
// reached the provider.
func (m *Metrics) RecordRequest(provider, model, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, model, outcome).Inc()
	if outcome != OutcomePrecondition {
		m.latency.WithLabelValues(provider, model).Observe(duration.Seconds())
	}
}

func (m *Metrics) RecordTokens(provider, model string, usage models.Usage) {
	if m == nil {
		return
	}
	if usage.PromptTokens > 0 {
		m.tokens.WithLabelValues(provider, model, "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		m.tokens.WithLabelValues(provider, model, "completion").Add(float64(usage.CompletionTokens))
	}
}

// WriteTextfile exports the current values in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
