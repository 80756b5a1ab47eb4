// Package metrics defines prometheus metrics to expose
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OtherModelLabel is the model label shared by every model outside the configured set
const OtherModelLabel = "override"

// Metrics groups the collectors recorded by the handler and the generation service
type Metrics struct {
	RequestCount      *prometheus.CounterVec
	InferenceDuration *prometheus.HistogramVec
	PromptTokens      *prometheus.CounterVec
	CompletionTokens  *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_api_request_count_total",
				Help: "Total number of invocations handled",
			},
			[]string{"status", "error_kind"},
		),
		InferenceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prompt_api_inference_duration_seconds",
				Help:    "Time spent waiting on the inference endpoint in seconds",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120},
			},
			[]string{"model", "outcome"},
		),
		PromptTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_api_prompt_tokens_total",
				Help: "Total number of prompt tokens reported by the endpoint",
			},
			[]string{"model"},
		),
		CompletionTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prompt_api_completion_tokens_total",
				Help: "Total number of completion tokens reported by the endpoint",
			},
			[]string{"model"},
		),
	}
}

// ObserveRequest counts one handled invocation
func (m *Metrics) ObserveRequest(status int, errorKind string) {
	if m == nil {
		return
	}
	m.RequestCount.WithLabelValues(strconv.Itoa(status), errorKind).Inc()
}

// ObserveInference records the endpoint latency for one call
func (m *Metrics) ObserveInference(model string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.InferenceDuration.WithLabelValues(model, outcome).Observe(elapsed.Seconds())
}

// ObserveTokens adds the reported token usage
func (m *Metrics) ObserveTokens(model string, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	if inputTokens > 0 {
		m.PromptTokens.WithLabelValues(model).Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		m.CompletionTokens.WithLabelValues(model).Add(float64(outputTokens))
	}
}
