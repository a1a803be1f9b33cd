package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/workspacegen/internal/config"
	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
	"git.home.luguber.info/inful/workspacegen/internal/logfields"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"workspacegen.yaml" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	ProjectDir  string           `short:"C" name:"project-dir" help:"Project checkout (overrides project.dir)" type:"path"`
	Records     string           `short:"r" name:"records" help:"Records file (overrides project.records)" type:"path"`
	DryRun      bool             `short:"n" name:"dry-run" help:"Render artifacts without writing them"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run" type:"path"`

	Workspace    WorkspaceCmd    `cmd:"" help:"Generate IntelliJ module, workspace and library files"`
	Pom          PomCmd          `cmd:"" help:"Generate Maven POM files and the aggregator POM"`
	Generate     GenerateCmd     `cmd:"" default:"withargs" help:"Run the workspace and POM pipelines"`
	Repositories RepositoriesCmd `cmd:"" help:"List the Maven repositories written into POMs"`
	Watch        WatchCmd        `cmd:"" help:"Regenerate whenever the records or configuration change"`
	Init         InitCmd         `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	configureLogging(parseLogLevel(c.Verbose, ""), config.LogFormatText)
	return nil
}

// parseLogLevel resolves the level from --verbose, WORKSPACEGEN_LOG_LEVEL
// and finally the configured level.
func parseLogLevel(verbose bool, configured config.LogLevel) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if env := strings.TrimSpace(os.Getenv(config.EnvLogLevel)); env != "" {
		return config.NormalizeLogLevel(env).SlogLevel()
	}
	if configured != "" {
		return configured.SlogLevel()
	}
	return slog.LevelInfo
}

func configureLogging(level slog.Level, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads the configuration file, falling back to defaults when the
// default file is absent, and applies CLI overrides.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		if !apperrors.IsCategory(err, apperrors.CategoryConfig) || fileExists(root.Config) {
			return nil, err
		}
		slog.Debug("No configuration file, using defaults", logfields.Path(root.Config))
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}

	if root.ProjectDir != "" {
		cfg.Project.Dir = root.ProjectDir
	}
	if root.Records != "" {
		cfg.Project.Records = root.Records
	}
	if root.DryRun {
		cfg.Output.DryRun = true
	}
	if root.MetricsFile != "" {
		cfg.Monitoring.Metrics.Textfile = root.MetricsFile
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	configureLogging(parseLogLevel(root.Verbose, cfg.Monitoring.Logging.Level), cfg.Monitoring.Logging.Format)
	return cfg, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return !errors.Is(err, os.ErrNotExist)
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
