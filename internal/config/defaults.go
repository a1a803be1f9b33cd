package config

import (
	"path/filepath"
)

// Default values.
const (
	DefaultProjectDir    = "."
	DefaultRecordsFile   = "workspace-records.yaml"
	DefaultPrivateBranch = "7.0.x-private"
	DefaultDebounce      = "500ms"
	DefaultBinariesCache = "../liferay-binaries-cache-2017"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ProjectDefaultApplier handles project location defaults.
type ProjectDefaultApplier struct{}

func (p *ProjectDefaultApplier) Domain() string { return "project" }

func (p *ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.Dir == "" {
		cfg.Project.Dir = DefaultProjectDir
	}
	if cfg.Project.Records == "" {
		cfg.Project.Records = DefaultRecordsFile
	}
	return nil
}

// CacheDefaultApplier adds the sibling binaries cache when no Gradle
// directories are configured.
type CacheDefaultApplier struct{}

func (c *CacheDefaultApplier) Domain() string { return "caches" }

func (c *CacheDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Caches.GradleDirs == nil {
		cfg.Caches.GradleDirs = []string{DefaultBinariesCache}
	}
	return nil
}

// RepositoryDefaultApplier handles private repository defaults.
type RepositoryDefaultApplier struct{}

func (r *RepositoryDefaultApplier) Domain() string { return "repositories" }

func (r *RepositoryDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Repositories.PrivateBranch == "" {
		cfg.Repositories.PrivateBranch = DefaultPrivateBranch
	}
	return nil
}

// WatchDefaultApplier handles watch defaults.
type WatchDefaultApplier struct{}

func (w *WatchDefaultApplier) Domain() string { return "watch" }

func (w *WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce
	}
	return nil
}

// MonitoringDefaultApplier normalizes logging settings.
type MonitoringDefaultApplier struct{}

func (m *MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (m *MonitoringDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Monitoring.Logging.Level = NormalizeLogLevel(string(cfg.Monitoring.Logging.Level))
	cfg.Monitoring.Logging.Format = NormalizeLogFormat(string(cfg.Monitoring.Logging.Format))
	return nil
}

// CompositeDefaultApplier runs every domain applier in order.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier returns the applier used by Load.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{appliers: []DefaultApplier{
		&ProjectDefaultApplier{},
		&CacheDefaultApplier{},
		&RepositoryDefaultApplier{},
		&WatchDefaultApplier{},
		&MonitoringDefaultApplier{},
	}}
}

func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, a := range c.appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// RecordsPath resolves the records file against the project directory.
func (c *Config) RecordsPath() string {
	if filepath.IsAbs(c.Project.Records) {
		return c.Project.Records
	}
	return filepath.Join(c.Project.Dir, c.Project.Records)
}
