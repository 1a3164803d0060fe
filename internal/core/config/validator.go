package config

import (
	"doctypes/internal/core/errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

func invalid(field, format string, args ...any) error {
	return errors.AddContext(
		errors.New(errors.CodeValidationError, fmt.Sprintf(format, args...)),
		errors.CtxField, field,
	)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return invalid("version", "unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateScan(cfg *Config) error {
	if len(cfg.Scan.Extensions) == 0 {
		return invalid("scan.extensions", "scan.extensions must list at least one extension")
	}
	for _, p := range cfg.Scan.ExcludeDirs {
		if _, err := glob.Compile(p); err != nil {
			return invalid("scan.exclude_dirs", "invalid exclude dir pattern %q: %v", p, err)
		}
	}
	for _, p := range cfg.Scan.ExcludeFiles {
		if _, err := glob.Compile(p); err != nil {
			return invalid("scan.exclude_files", "invalid exclude file pattern %q: %v", p, err)
		}
	}
	for i, p := range cfg.Paths {
		if strings.TrimSpace(p) == "" {
			return invalid("paths", "paths[%d] must not be empty", i)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if !slices.Contains(Formats, cfg.Output.Format) {
		return invalid("output.format", "output.format must be one of: %s, got %q", strings.Join(Formats, ", "), cfg.Output.Format)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && cfg.History.Path == "" {
		return invalid("history.path", "history.path must not be empty when history is enabled")
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return invalid("watch.debounce", "watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	if cfg.Watch.MaxRescansPerSecond < 0 {
		return invalid("watch.max_rescans_per_second", "watch.max_rescans_per_second must not be negative")
	}
	return nil
}
