package config

import (
	"fmt"
	"strings"
)

// validateConfig collects every invalid value so the user can fix them in
// one pass.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateFire(config)...)
	validationErrors = append(validationErrors, validateCache(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a known level", config.Logging.Level))
	}
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		validationErrors = append(validationErrors, "logging.log_dir is required when logging.enable_file_log is set")
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	return validationErrors
}

func validateFire(config *Config) []string {
	var validationErrors []string
	if config.Fire.AnimationTimeoutMs < 100 {
		validationErrors = append(validationErrors, "fire.animation_timeout_ms must be at least 100")
	}
	if config.Fire.TabCleanupLimit < 1 {
		validationErrors = append(validationErrors, "fire.tab_cleanup_limit must be at least 1")
	}
	return validationErrors
}

func validateCache(config *Config) []string {
	var validationErrors []string
	if config.Cache.VisitedLinks < 1 {
		validationErrors = append(validationErrors, "cache.visited_links must be at least 1")
	}
	if config.Cache.Autoconsent < 1 {
		validationErrors = append(validationErrors, "cache.autoconsent must be at least 1")
	}
	if config.Cache.WarmLimit < 1 {
		validationErrors = append(validationErrors, "cache.warm_limit must be at least 1")
	}
	return validationErrors
}
