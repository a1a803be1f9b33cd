package pipeline

import (
	"context"
	"errors"
	"time"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/metrics"
	"git.home.luguber.info/inful/workspacegen/internal/workspace"
)

// Report summarizes one pipeline run.
type Report struct {
	Pipeline       string
	Start          time.Time
	End            time.Time
	StageDurations map[string]time.Duration
	Modules        int
	Artifacts      map[string]int // rendered artifacts by kind
	Written        int
	Unchanged      int
	Skipped        int // dry run
	Outcome        metrics.OutcomeLabel
	Err            error
}

func newReport(pipeline string) *Report {
	return &Report{
		Pipeline:       pipeline,
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
		Artifacts:      make(map[string]int),
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Total is the number of artifacts rendered.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Artifacts {
		n += c
	}
	return n
}

func (r *Report) recordSave(kind string, result workspace.Result) {
	r.Artifacts[kind]++
	switch result {
	case workspace.ResultWritten:
		r.Written++
	case workspace.ResultUnchanged:
		r.Unchanged++
	case workspace.ResultSkipped:
		r.Skipped++
	}
}

func (r *Report) finish(err error) {
	r.End = time.Now()
	r.Err = err
	switch {
	case err == nil:
		r.Outcome = metrics.OutcomeSuccess
	case apperrors.IsCategory(err, apperrors.CategoryRuntime),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		r.Outcome = metrics.OutcomeCanceled
	default:
		r.Outcome = metrics.OutcomeFailed
	}
}
