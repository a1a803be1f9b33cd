package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// OutcomeLabel enumerates final run outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for pipeline and stage metrics.
type Recorder interface {
	ObserveStageDuration(pipeline, stage string, d time.Duration)
	IncStageResult(pipeline, stage string, result ResultLabel)
	ObserveRunDuration(pipeline string, d time.Duration)
	IncRunOutcome(pipeline string, outcome OutcomeLabel)
	IncArtifact(kind, result string)
	SetModules(pipeline string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, string, ResultLabel)        {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)          {}
func (NoopRecorder) IncRunOutcome(string, OutcomeLabel)                {}
func (NoopRecorder) IncArtifact(string, string)                        {}
func (NoopRecorder) SetModules(string, int)                            {}
