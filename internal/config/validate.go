package config

import (
	"fmt"
	"strings"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Directories) == 0 {
		errs = append(errs, "input.directories must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	if len(cfg.Markdown.Tags) == 0 {
		errs = append(errs, "markdown.tags must not be empty")
	}
	for _, tag := range cfg.Markdown.Tags {
		if strings.TrimSpace(tag) == "" || strings.ContainsAny(tag, " \t") {
			errs = append(errs, fmt.Sprintf("markdown.tags entries must be single words (got %q)", tag))
		}
	}

	if cfg.Loader.Parallelism < 1 {
		errs = append(errs, fmt.Sprintf("loader.parallelism must be at least 1 (got %d)", cfg.Loader.Parallelism))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
