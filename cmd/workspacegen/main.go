package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/workspacegen/cmd/workspacegen/commands"
	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("workspacegen"),
		kong.Description("Generate IntelliJ project files and Maven POMs from parsed module records."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Logger: slog.Default(), Stdout: os.Stdout}, cli)
	apperrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
