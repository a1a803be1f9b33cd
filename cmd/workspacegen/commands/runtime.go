package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/workspacegen/internal/config"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/metrics"
	"git.home.luguber.info/inful/workspacegen/internal/pipeline"
	"git.home.luguber.info/inful/workspacegen/internal/records"
	"git.home.luguber.info/inful/workspacegen/internal/repository"
	"git.home.luguber.info/inful/workspacegen/internal/workspace"
)

// runtime wires the generator for one command invocation.
type runtime struct {
	cfg      *config.Config
	gen      *pipeline.Generator
	sink     *workspace.Manager
	resolver *repository.Resolver
	registry *prom.Registry
	recorder metrics.Recorder
}

func newRuntime(cfg *config.Config, sink *workspace.Manager) (*runtime, error) {
	rt := &runtime{recorder: metrics.NoopRecorder{}}
	if cfg.Monitoring.Metrics.Enabled || cfg.Monitoring.Metrics.Textfile != "" {
		rt.registry = prom.NewRegistry()
		rt.recorder = metrics.NewPrometheusRecorder(rt.registry)
	}
	if err := rt.configure(cfg, sink); err != nil {
		return nil, err
	}
	return rt, nil
}

// configure (re)builds the generator for cfg. The metrics recorder is kept
// so counters survive configuration reloads.
func (rt *runtime) configure(cfg *config.Config, sink *workspace.Manager) error {
	if sink == nil {
		sink = workspace.NewManager(cfg.Project.Dir)
	}
	sink.WithDryRun(cfg.Output.DryRun)
	if err := sink.Create(); err != nil {
		return err
	}

	opts := pipeline.Options{
		ProjectDir:      cfg.Project.Dir,
		GradleCacheDirs: cfg.Caches.GradleDirs,
		MavenCacheDirs:  cfg.Caches.MavenDirs,
	}
	if !cfg.Caches.SkipHome {
		if home, err := os.UserHomeDir(); err == nil {
			opts.HomeDir = home
		}
	}

	rt.cfg = cfg
	rt.sink = sink
	rt.resolver = newResolver(cfg)
	rt.gen = pipeline.NewGenerator(opts, rt.resolver, sink).WithRecorder(rt.recorder)
	return nil
}

func newResolver(cfg *config.Config) *repository.Resolver {
	if cfg.Repositories.DisablePrivate {
		return repository.NewResolver(nil)
	}
	return repository.NewResolver(repository.NewGitSource(cfg.Project.Dir, cfg.Repositories.PrivateBranch))
}

// loadRecords reads the records file and applies the module filter.
func (rt *runtime) loadRecords() (*records.Set, error) {
	set, err := records.Load(rt.cfg.RecordsPath())
	if err != nil {
		return nil, err
	}
	filter, err := records.NewFilter(rt.cfg.Modules.Include, rt.cfg.Modules.Exclude)
	if err != nil {
		return nil, err
	}
	if dropped := filter.Apply(set); dropped > 0 {
		slog.Info("Modules filtered", logfields.Count(dropped))
	}
	return set, nil
}

// run loads the records and executes fn, then exports metrics.
func (rt *runtime) run(ctx context.Context, out io.Writer, fn func(context.Context, *records.Set) ([]*pipeline.Report, error)) error {
	set, err := rt.loadRecords()
	if err != nil {
		return err
	}
	reports, err := fn(ctx, set)
	for _, r := range reports {
		printReport(out, r, rt.cfg.Output.DryRun)
	}
	if werr := rt.writeMetrics(); werr != nil {
		slog.Warn("Failed to write metrics", logfields.Error(werr))
	}
	return err
}

func (rt *runtime) writeMetrics() error {
	path := rt.cfg.Monitoring.Metrics.Textfile
	if rt.registry == nil || path == "" {
		return nil
	}
	return metrics.WriteTextfile(rt.registry, path)
}

func single(fn func(context.Context, *records.Set) (*pipeline.Report, error)) func(context.Context, *records.Set) ([]*pipeline.Report, error) {
	return func(ctx context.Context, set *records.Set) ([]*pipeline.Report, error) {
		r, err := fn(ctx, set)
		if r == nil {
			return nil, err
		}
		return []*pipeline.Report{r}, err
	}
}

func printReport(out io.Writer, r *pipeline.Report, dryRun bool) {
	if r == nil || r.Err != nil {
		return
	}
	if dryRun {
		_, _ = fmt.Fprintf(out, "%s: %d artifacts rendered (dry run, nothing written)\n", r.Pipeline, r.Total())
		return
	}
	_, _ = fmt.Fprintf(out, "%s: %d artifacts, %d written, %d unchanged in %s\n",
		r.Pipeline, r.Total(), r.Written, r.Unchanged, r.Duration().Round(1e6))
}
