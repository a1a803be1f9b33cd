package commands

// WorkspaceCmd implements the 'workspace' command.
type WorkspaceCmd struct{}

func (w *WorkspaceCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg, nil)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return rt.run(ctx, g.stdout(), single(rt.gen.Workspace))
}

// PomCmd implements the 'pom' command.
type PomCmd struct{}

func (p *PomCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg, nil)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return rt.run(ctx, g.stdout(), single(rt.gen.ProjectObjectModels))
}
