package pipeline

import (
	"context"

	"git.home.luguber.info/inful/workspacegen/internal/model"
	"git.home.luguber.info/inful/workspacegen/internal/render"
)

func (g *Generator) pomStages() []stageDef {
	return []stageDef{
		{StageBuildIndex, g.stageBuildIndex},
		{StageFixLibraries, stageFixLibraries},
		{StageFixProjects, func(ctx context.Context, rs *runState) error { return stageFixProjects(rs, false) }},
		{StageRenderPOMs, g.stageRenderPOMs},
		{StageRenderAggregator, g.stageRenderAggregator},
	}
}

func (g *Generator) stageRenderPOMs(ctx context.Context, rs *runState) error {
	repos := g.repositories()
	for _, m := range rs.set.Modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		artifact, err := render.MavenProject(m, repos)
		if err != nil {
			return err
		}
		if err := g.save(rs, KindPOM, artifact); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) stageRenderAggregator(_ context.Context, rs *runState) error {
	paths := make([]string, 0, len(rs.set.Modules))
	for _, m := range rs.set.Modules {
		paths = append(paths, m.ModulePath)
	}
	artifact, err := render.MavenAggregator(paths)
	if err != nil {
		return err
	}
	return g.save(rs, KindAggregator, artifact)
}

func (g *Generator) repositories() []model.Repository {
	if g.repos == nil {
		return nil
	}
	return g.repos.Repositories()
}
