package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace: "test",
		Subsystem: "unit",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	t.Parallel()

	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestRegisterCounter_Scrape(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	counter := c.RegisterCounter("answers_total", "Answers.", "status")
	counter.WithLabelValues("ok").Inc()
	counter.WithLabelValues("ok").Add(2)
	counter.WithLabelValues("refused").Inc()

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_answers_total{status="ok"} 3`)
	assert.Contains(t, out, `test_unit_answers_total{status="refused"} 1`)
}

func TestRegisterGauge_SetIncDec(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	gauge := c.RegisterGauge("active_sessions", "Sessions.", "backend")
	g := gauge.WithLabelValues("local")
	g.Set(4)
	g.Inc()
	g.Dec()
	g.Dec()

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_active_sessions{backend="local"} 3`)
}

func TestRegisterHistogram_Observations(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	hist := c.RegisterHistogram("latency_seconds", "Latency.", []float64{0.1, 1, 10})
	h := hist.WithLabelValues()
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(5)

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_latency_seconds_count 3`)
	assert.Contains(t, out, `test_unit_latency_seconds_bucket{le="0.1"} 1`)
	assert.Contains(t, out, `test_unit_latency_seconds_bucket{le="10"} 3`)
}

func TestRegister_DuplicateNameReturnsSameCollector(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	first := c.RegisterCounter("dups_total", "Dups.", "kind")
	second := c.RegisterCounter("dups_total", "Dups.", "kind")

	first.WithLabelValues("a").Inc()
	second.WithLabelValues("a").Inc()

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_dups_total{kind="a"} 2`)
}

func TestRegister_ConflictingSchemaFallsBackToNoop(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	c.RegisterCounter("shape_total", "Shape.", "a")

	// Same name as a counter; the registry rejects it and callers get a
	// no-op gauge instead of a panic.
	gauge := c.RegisterGauge("shape_total", "Shape.", "a")
	require.NotNil(t, gauge)
	gauge.WithLabelValues("x").Set(1)

	out := scrape(t, c)
	assert.NotContains(t, out, `shape_total{a="x"} 1`)
}

func TestTimer_ObservesElapsedSeconds(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	hist := c.RegisterHistogram("timed_seconds", "Timed.", []float64{0.001, 1})
	timer := NewTimer(hist.WithLabelValues())
	time.Sleep(2 * time.Millisecond)
	timer.ObserveDuration()

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_timed_seconds_count 1`)
	assert.Contains(t, out, `test_unit_timed_seconds_bucket{le="0.001"} 0`)
}

func TestTimer_NilHistogram(t *testing.T) {
	t.Parallel()

	timer := NewTimer(nil)
	assert.NotPanics(t, timer.ObserveDuration)
}
