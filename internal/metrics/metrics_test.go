package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Creation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	assert.NotNil(t, m.RequestCount)
	assert.NotNil(t, m.InferenceDuration)
	assert.NotNil(t, m.PromptTokens)
	assert.NotNil(t, m.CompletionTokens)

	// A second registration on the same registry is a programming error
	assert.Panics(t, func() { New(reg) })
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest(200, "")
	m.ObserveRequest(400, "validation")
	m.ObserveRequest(400, "validation")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCount.WithLabelValues("200", "")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestCount.WithLabelValues("400", "validation")))
}

func TestMetrics_ObserveInference(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveInference("model-a", 150*time.Millisecond, nil)
	m.ObserveInference("model-a", 2*time.Second, errors.New("boom"))

	count, err := testutil.GatherAndCount(reg, "prompt_api_inference_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_ObserveTokens(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTokens("model-a", 10, 4)
	m.ObserveTokens("model-a", 5, 1)

	assert.Equal(t, float64(15), testutil.ToFloat64(m.PromptTokens.WithLabelValues("model-a")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.CompletionTokens.WithLabelValues("model-a")))
}

func TestMetrics_ObserveTokensIgnoresNegative(t *testing.T) {
	m := New(prometheus.NewRegistry())

	assert.NotPanics(t, func() {
		m.ObserveTokens("model-a", -1, 2)
		m.ObserveTokens("model-a", 3, -4)
	})

	assert.Equal(t, float64(3), testutil.ToFloat64(m.PromptTokens.WithLabelValues("model-a")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CompletionTokens.WithLabelValues("model-a")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest(500, "unknown")
		m.ObserveInference("model-a", time.Second, nil)
		m.ObserveTokens("model-a", 1, 1)
	})
}
