package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("workspace", "build_index", 150*time.Millisecond)
	pr.IncStageResult("workspace", "build_index", ResultSuccess)
	pr.ObserveRunDuration("workspace", 500*time.Millisecond)
	pr.IncRunOutcome("workspace", OutcomeSuccess)
	pr.IncArtifact("module", "written")
	pr.IncArtifact("module", "written")
	pr.SetModules("workspace", 42)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 6)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.InDelta(t, 2, values["workspacegen_artifacts_total"], 0)
	assert.InDelta(t, 42, values["workspacegen_modules"], 0)
	assert.InDelta(t, 1, values["workspacegen_stage_results_total"], 0)
}

func TestPrometheusRecorderNil(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncArtifact("pom", "written")
		pr.ObserveRunDuration("pom", time.Second)
	})
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration("pom", "render", time.Second)
		r.IncRunOutcome("pom", OutcomeFailed)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncRunOutcome("pom", OutcomeSuccess)

	path := filepath.Join(t.TempDir(), "workspacegen.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `workspacegen_run_outcomes_total{outcome="success",pipeline="pom"} 1`)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetModules("workspace", 3)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `workspacegen_modules{pipeline="workspace"} 3`)
}
