package observability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFit(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.ObserveFit("KDE", 5*time.Millisecond, nil)
	m.ObserveFit("KDE", 7*time.Millisecond, nil)
	m.ObserveFit("MCP", 3*time.Millisecond, errors.New("did not converge"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.FitTotal.WithLabelValues("KDE")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FitTotal.WithLabelValues("MCP")), 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(m.FitErrors.WithLabelValues("KDE")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FitErrors.WithLabelValues("MCP")), 0.001)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	m.SetRunID("none")
	m.ObserveRows("KDE", 100)
	m.ObserveFit("KDE", time.Millisecond, nil)
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.SetRunID("test-run")
	m.ObserveRows("KDE", 2118)
	m.ObserveFit("KDE", 2*time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "metrics", "run.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, "rsf_fits_total"), "expected fits counter in textfile:\n%s", text)
	assert.True(t, strings.Contains(text, `run_id="test-run"`), "expected run id label in textfile:\n%s", text)
	assert.True(t, strings.Contains(text, "rsf_observation_rows"), "expected rows gauge in textfile:\n%s", text)
}
