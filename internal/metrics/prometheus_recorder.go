package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "workspacegen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runDuration   *prom.HistogramVec
	runOutcome    *prom.CounterVec
	artifacts     *prom.CounterVec
	modules       *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"pipeline", "stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"pipeline", "stage", "result"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		}, []string{"pipeline"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Pipeline runs by final status",
		}, []string{"pipeline", "outcome"}),
		artifacts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_total",
			Help:      "Rendered artifacts by kind and write result",
		}, []string{"kind", "result"}),
		modules: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "modules",
			Help:      "Modules processed by the last pipeline run",
		}, []string{"pipeline"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.runOutcome, pr.artifacts, pr.modules)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(pipeline, stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(pipeline, stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(pipeline, stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(pipeline, stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(pipeline string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(pipeline).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(pipeline string, outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(pipeline, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncArtifact(kind, result string) {
	if p == nil {
		return
	}
	p.artifacts.WithLabelValues(kind, result).Inc()
}

func (p *PrometheusRecorder) SetModules(pipeline string, n int) {
	if p == nil {
		return
	}
	p.modules.WithLabelValues(pipeline).Set(float64(n))
}
