package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/workspace"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Stage    bool   `help:"Write into a timestamped staging directory instead of the project"`
	StageDir string `name:"stage-dir" help:"Parent directory for --stage (default: system temp dir)" type:"path"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	var sink *workspace.Manager
	if c.Stage {
		sink = workspace.NewStagingManager(c.StageDir)
	}
	rt, err := newRuntime(cfg, sink)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := rt.run(ctx, g.stdout(), rt.gen.Generate); err != nil {
		if c.Stage {
			if cerr := rt.sink.Cleanup(); cerr != nil {
				slog.Warn("Failed to remove staging directory", logfields.Error(cerr))
			}
		}
		return err
	}
	if c.Stage && !cfg.Output.DryRun {
		_, _ = fmt.Fprintf(g.stdout(), "staged in %s\n", rt.sink.GetPath())
	}
	return nil
}
