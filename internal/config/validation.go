package config

import (
	"path"
	"time"

	apperrors "git.home.luguber.info/inful/workspacegen/internal/errors"
)

// ValidateConfig validates a defaulted configuration.
func ValidateConfig(cfg *Config) error {
	validator := &configurationValidator{config: cfg}
	return validator.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateProject(); err != nil {
		return err
	}
	if err := cv.validateModules(); err != nil {
		return err
	}
	return cv.validateWatch()
}

func (cv *configurationValidator) validateProject() error {
	if cv.config.Project.Dir == "" {
		return apperrors.ValidationFailed("project.dir", "must not be empty")
	}
	if cv.config.Project.Records == "" {
		return apperrors.ValidationFailed("project.records", "must not be empty")
	}
	return nil
}

func (cv *configurationValidator) validateModules() error {
	patterns := append(append([]string{}, cv.config.Modules.Include...), cv.config.Modules.Exclude...)
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return apperrors.ValidationFailed("modules", "invalid pattern "+p+": "+err.Error())
		}
	}
	return nil
}

func (cv *configurationValidator) validateWatch() error {
	d, err := time.ParseDuration(cv.config.Watch.Debounce)
	if err != nil {
		return apperrors.ValidationFailed("watch.debounce", err.Error())
	}
	if d <= 0 {
		return apperrors.ValidationFailed("watch.debounce", "must be positive")
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce interval.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultDebounce)
	}
	return d
}
