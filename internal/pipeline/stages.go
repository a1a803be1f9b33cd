package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/workspacegen/internal/cache"
	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/metrics"
	"git.home.luguber.info/inful/workspacegen/internal/model"
	"git.home.luguber.info/inful/workspacegen/internal/records"
	"git.home.luguber.info/inful/workspacegen/internal/render"
)

// Pipeline names.
const (
	PipelineWorkspace = "workspace"
	PipelinePOM       = "pom"
)

// Stage names.
const (
	StageSortPlugins      = "sort_plugins"
	StageBuildIndex       = "build_index"
	StageFixLibraries     = "fix_library_dependencies"
	StageFixProjects      = "fix_project_dependencies"
	StageCheckExports     = "check_exports"
	StageSortAttributes   = "sort_attributes"
	StageRegisterCaches   = "register_caches"
	StageRenderModules    = "render_modules"
	StageRenderWorkspace  = "render_workspace"
	StageRenderLibraries  = "render_libraries"
	StageRenderPOMs       = "render_poms"
	StageRenderAggregator = "render_aggregator"
)

type stageFunc func(ctx context.Context, rs *runState) error

type stageDef struct {
	name string
	fn   stageFunc
}

// runState is the per-run working data shared by stages.
type runState struct {
	pipeline string
	set      *records.Set
	index    model.VersionIndex
	locator  *cache.Locator
	renderer *render.Renderer
	report   *Report
}

// runStages executes stages in order, recording timing and stopping on the
// first error.
func (g *Generator) runStages(ctx context.Context, rs *runState, stages []stageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			g.recorder.IncStageResult(rs.pipeline, st.name, metrics.ResultCanceled)
			return apperrors.Canceled(st.name, err)
		}

		t0 := time.Now()
		err := st.fn(ctx, rs)
		dur := time.Since(t0)
		rs.report.StageDurations[st.name] = dur
		g.recorder.ObserveStageDuration(rs.pipeline, st.name, dur)

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				g.recorder.IncStageResult(rs.pipeline, st.name, metrics.ResultCanceled)
				return apperrors.Canceled(st.name, err)
			}
			g.recorder.IncStageResult(rs.pipeline, st.name, metrics.ResultFatal)
			slog.Debug("Stage failed",
				logfields.Pipeline(rs.pipeline),
				logfields.Stage(st.name),
				logfields.Error(err))
			return apperrors.StageFailed(st.name, err)
		}

		g.recorder.IncStageResult(rs.pipeline, st.name, metrics.ResultSuccess)
		slog.Debug("Stage complete",
			logfields.Pipeline(rs.pipeline),
			logfields.Stage(st.name),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
