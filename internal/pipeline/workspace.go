package pipeline

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/workspacegen/internal/deps"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/model"
	"git.home.luguber.info/inful/workspacegen/internal/versions"
)

// Artifact kinds used in reports and metrics.
const (
	KindModule     = "module"
	KindWorkspace  = "workspace"
	KindJarLibrary = "jar_library"
	KindLibrary    = "library"
	KindPOM        = "pom"
	KindAggregator = "aggregator"
)

func (g *Generator) workspaceStages() []stageDef {
	return []stageDef{
		{StageSortPlugins, stageSortPlugins},
		{StageBuildIndex, g.stageBuildIndex},
		{StageFixLibraries, stageFixLibraries},
		{StageFixProjects, func(ctx context.Context, rs *runState) error { return stageFixProjects(rs, true) }},
		{StageCheckExports, stageCheckExports},
		{StageSortAttributes, stageSortAttributes},
		{StageRegisterCaches, g.stageRegisterCaches},
		{StageRenderModules, g.stageRenderModules},
		{StageRenderWorkspace, g.stageRenderWorkspace},
		{StageRenderLibraries, g.stageRenderLibraries},
	}
}

func stageSortPlugins(_ context.Context, rs *runState) error {
	for _, m := range rs.set.Plugins {
		deps.SortModuleAttributes(m)
	}
	return nil
}

func (g *Generator) stageBuildIndex(_ context.Context, rs *runState) error {
	index, err := versions.Build(g.project, rs.set.Core, rs.set.Modules)
	if err != nil {
		return err
	}
	rs.index = index
	slog.Debug("Version index built", logfields.Pipeline(rs.pipeline), logfields.Count(len(index)))
	return nil
}

func stageFixLibraries(_ context.Context, rs *runState) error {
	for i, m := range rs.set.Modules {
		rs.set.Modules[i] = deps.FixLibraryDependencies(rs.index, m)
	}
	return nil
}

func stageFixProjects(rs *runState, addAsLibrary bool) error {
	for i, m := range rs.set.Modules {
		rs.set.Modules[i] = deps.FixProjectDependencies(rs.index, addAsLibrary, m)
	}
	return nil
}

func stageCheckExports(_ context.Context, rs *runState) error {
	for i, m := range rs.set.Modules {
		rs.set.Modules[i] = deps.CheckExportDependencies(m)
	}
	return nil
}

func stageSortAttributes(_ context.Context, rs *runState) error {
	for _, m := range rs.set.Core {
		deps.SortModuleAttributes(m)
	}
	for _, m := range rs.set.Modules {
		deps.SortModuleAttributes(m)
	}
	return nil
}

// stageRegisterCaches probes module directories, the home directory and the
// configured extra locations. Gradle caches are registered before Maven
// ones so they win lookups.
func (g *Generator) stageRegisterCaches(_ context.Context, rs *runState) error {
	for _, m := range rs.set.Modules {
		rs.locator.CheckGradleCache(g.projectPath(m.ModulePath))
	}
	rs.locator.CheckGradleCache(g.opts.HomeDir)
	for _, dir := range g.opts.GradleCacheDirs {
		rs.locator.CheckGradleCache(g.projectPath(dir))
	}

	for _, m := range rs.set.Modules {
		rs.locator.CheckMavenCache(g.projectPath(m.ModulePath))
	}
	rs.locator.CheckMavenCache(g.opts.HomeDir)
	for _, dir := range g.opts.MavenCacheDirs {
		rs.locator.CheckMavenCache(g.projectPath(dir))
	}

	slog.Debug("Artifact caches registered", logfields.Count(len(rs.locator.Roots())))
	return nil
}

// allModules lists modules, then core, then plugins.
func allModules(rs *runState) []*model.Module {
	all := make([]*model.Module, 0, rs.set.Len())
	all = append(all, rs.set.Modules...)
	all = append(all, rs.set.Core...)
	return append(all, rs.set.Plugins...)
}

func (g *Generator) stageRenderModules(ctx context.Context, rs *runState) error {
	for _, m := range allModules(rs) {
		if err := ctx.Err(); err != nil {
			return err
		}
		artifact, err := rs.renderer.ModuleXML(m)
		if err != nil {
			return err
		}
		if err := g.save(rs, KindModule, artifact); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) stageRenderWorkspace(_ context.Context, rs *runState) error {
	artifact, err := rs.renderer.WorkspaceXML(allModules(rs))
	if err != nil {
		return err
	}
	return g.save(rs, KindWorkspace, artifact)
}

func (g *Generator) stageRenderLibraries(ctx context.Context, rs *runState) error {
	libraries := deps.UniqueLibraries(rs.set.Modules, rs.set.Core, rs.set.Plugins)

	for _, lib := range libraries {
		if err := ctx.Err(); err != nil {
			return err
		}
		var (
			artifact model.Artifact
			kind     string
			err      error
		)
		if lib.HasGroup() {
			artifact, err = rs.renderer.LibraryXML(lib)
			kind = KindLibrary
		} else {
			artifact, err = rs.renderer.JarLibraryXML(lib)
			kind = KindJarLibrary
		}
		if err != nil {
			return err
		}
		if err := g.save(rs, kind, artifact); err != nil {
			return err
		}
	}
	return nil
}
