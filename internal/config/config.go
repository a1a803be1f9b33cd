package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
)

// CurrentVersion is the only configuration format version accepted by Load.
const CurrentVersion = "1.0"

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "workspacegen.yaml"

// Config is the workspacegen configuration.
type Config struct {
	Version      string             `yaml:"version"`
	Project      ProjectConfig      `yaml:"project"`
	Modules      ModulesConfig      `yaml:"modules,omitempty"`
	Caches       CachesConfig       `yaml:"caches,omitempty"`
	Repositories RepositoriesConfig `yaml:"repositories,omitempty"`
	Output       OutputConfig       `yaml:"output,omitempty"`
	Watch        WatchConfig        `yaml:"watch,omitempty"`
	Monitoring   MonitoringConfig   `yaml:"monitoring,omitempty"`
}

// ProjectConfig locates the project checkout and the parsed module records.
type ProjectConfig struct {
	Dir     string `yaml:"dir"`     // Project root; artifacts are written below it
	Records string `yaml:"records"` // Records file, relative to Dir unless absolute
}

// ModulesConfig selects modules by name. Exclusion wins over inclusion.
type ModulesConfig struct {
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// CachesConfig lists extra directories probed for Gradle/Maven caches.
type CachesConfig struct {
	GradleDirs []string `yaml:"gradle_dirs,omitempty"`
	MavenDirs  []string `yaml:"maven_dirs,omitempty"`
	SkipHome   bool     `yaml:"skip_home,omitempty"` // Do not probe the user home directory
}

// RepositoriesConfig controls private repository discovery.
type RepositoriesConfig struct {
	PrivateBranch  string `yaml:"private_branch,omitempty"`
	DisablePrivate bool   `yaml:"disable_private,omitempty"`
}

// OutputConfig controls the artifact writer.
type OutputConfig struct {
	DryRun bool `yaml:"dry_run,omitempty"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"` // Go duration string
}

// MonitoringConfig represents metrics and logging configuration.
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics"`
	Logging MonitoringLogging `yaml:"logging"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile,omitempty"` // Prometheus textfile written after each run
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load loads a configuration file. The .env file next to the working
// directory is loaded first so ${VAR} references and overrides can use it.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, apperrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperrors.ConfigInvalid(configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, apperrors.ConfigInvalid(configPath, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates configuration bytes. Environment
// variables are expanded before decoding and overrides applied after it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)
	}

	applyEnvOverrides(&cfg)
	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	loadEnvFile()
	cfg := &Config{Version: CurrentVersion}
	applyEnvOverrides(cfg)
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) error {
	return NewDefaultApplier().ApplyDefaults(cfg)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return apperrors.ValidationFailed("config", "configuration file already exists: "+configPath+" (use --force to overwrite)")
	}

	example := Config{
		Version: CurrentVersion,
		Project: ProjectConfig{
			Dir:     ".",
			Records: "workspace-records.yaml",
		},
		Modules: ModulesConfig{
			Exclude: []string{"*-test-util"},
		},
		Caches: CachesConfig{
			GradleDirs: []string{"../liferay-binaries-cache-2017"},
		},
		Repositories: RepositoriesConfig{
			PrivateBranch: "7.0.x-private",
		},
		Watch: WatchConfig{Debounce: "500ms"},
		Monitoring: MonitoringConfig{
			Metrics: MonitoringMetrics{Enabled: true},
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatText},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return apperrors.WriteFailed(configPath, err)
	}
	return nil
}
