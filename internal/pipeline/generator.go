package pipeline

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/workspacegen/internal/cache"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/metrics"
	"git.home.luguber.info/inful/workspacegen/internal/model"
	"git.home.luguber.info/inful/workspacegen/internal/records"
	"git.home.luguber.info/inful/workspacegen/internal/render"
	"git.home.luguber.info/inful/workspacegen/internal/workspace"
)

// Sink receives rendered artifacts.
type Sink interface {
	Save(artifact model.Artifact) (workspace.Result, error)
}

// RepositorySource lists the Maven repositories written into POMs.
type RepositorySource interface {
	Repositories() []model.Repository
}

// Options configures a Generator.
type Options struct {
	// ProjectDir is the project checkout. Module paths are relative to it.
	ProjectDir string
	// Project overrides the filesystem descriptors are read from. Defaults
	// to os.DirFS(ProjectDir).
	Project fs.FS
	// HomeDir is probed for Gradle and Maven caches. Empty skips it.
	HomeDir string
	// GradleCacheDirs and MavenCacheDirs are extra cache locations; relative
	// entries are resolved against ProjectDir.
	GradleCacheDirs []string
	MavenCacheDirs  []string
}

// Generator runs the workspace and POM pipelines.
type Generator struct {
	opts     Options
	project  fs.FS
	repos    RepositorySource
	sink     Sink
	recorder metrics.Recorder
}

// NewGenerator creates a generator writing to sink.
func NewGenerator(opts Options, repos RepositorySource, sink Sink) *Generator {
	if opts.ProjectDir == "" {
		opts.ProjectDir = "."
	}
	project := opts.Project
	if project == nil {
		project = os.DirFS(opts.ProjectDir)
	}
	return &Generator{
		opts:     opts,
		project:  project,
		repos:    repos,
		sink:     sink,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder (fluent helper).
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// Workspace runs the IDE workspace pipeline over a copy of set.
func (g *Generator) Workspace(ctx context.Context, set *records.Set) (*Report, error) {
	return g.run(ctx, PipelineWorkspace, set, g.workspaceStages())
}

// ProjectObjectModels runs the Maven POM pipeline over a copy of set.
func (g *Generator) ProjectObjectModels(ctx context.Context, set *records.Set) (*Report, error) {
	return g.run(ctx, PipelinePOM, set, g.pomStages())
}

// Generate runs both pipelines, workspace first, over independent copies of
// set. It stops at the first failing pipeline.
func (g *Generator) Generate(ctx context.Context, set *records.Set) ([]*Report, error) {
	var reports []*Report
	for _, run := range []func(context.Context, *records.Set) (*Report, error){g.Workspace, g.ProjectObjectModels} {
		report, err := run(ctx, set)
		reports = append(reports, report)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (g *Generator) run(ctx context.Context, name string, set *records.Set, stages []stageDef) (*Report, error) {
	if set == nil {
		set = &records.Set{}
	}
	report := newReport(name)
	locator := cache.NewLocator()
	rs := &runState{
		pipeline: name,
		set:      set.Clone(),
		locator:  locator,
		renderer: render.NewRenderer(g.project, locator),
		report:   report,
	}
	report.Modules = rs.set.Len()

	slog.Info("Pipeline started", logfields.Pipeline(name), logfields.Count(report.Modules))
	err := g.runStages(ctx, rs, stages)
	report.finish(err)

	g.recorder.ObserveRunDuration(name, report.Duration())
	g.recorder.IncRunOutcome(name, report.Outcome)
	g.recorder.SetModules(name, report.Modules)

	if err != nil {
		return report, err
	}
	slog.Info("Pipeline complete",
		logfields.Pipeline(name),
		logfields.Count(report.Total()),
		slog.Int("written", report.Written),
		slog.Int("unchanged", report.Unchanged),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
	return report, nil
}

// save hands one artifact to the sink and accounts for it.
func (g *Generator) save(rs *runState, kind string, artifact model.Artifact) error {
	result, err := g.sink.Save(artifact)
	if err != nil {
		return err
	}
	rs.report.recordSave(kind, result)
	g.recorder.IncArtifact(kind, string(result))
	slog.Debug("Artifact saved", logfields.Artifact(artifact.Path), slog.String("result", string(result)))
	return nil
}

// projectPath resolves a slash separated path against the project directory.
func (g *Generator) projectPath(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.opts.ProjectDir, p)
}
