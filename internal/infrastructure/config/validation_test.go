package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "file log without dir", mutate: func(c *Config) {
			c.Logging.EnableFileLog = true
			c.Logging.LogDir = ""
		}, wantErr: "logging.log_dir"},
		{name: "short animation timeout", mutate: func(c *Config) { c.Fire.AnimationTimeoutMs = 10 }, wantErr: "fire.animation_timeout_ms"},
		{name: "no tab cleanup", mutate: func(c *Config) { c.Fire.TabCleanupLimit = 0 }, wantErr: "fire.tab_cleanup_limit"},
		{name: "empty visited links", mutate: func(c *Config) { c.Cache.VisitedLinks = 0 }, wantErr: "cache.visited_links"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fire.TabCleanupLimit = 0
	cfg.Cache.Autoconsent = 0

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fire.tab_cleanup_limit")
	assert.Contains(t, err.Error(), "cache.autoconsent")
}

func TestNormalizeConfig_Logging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = " DEBUG "
	cfg.Logging.Format = "xml"

	normalizeConfig(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}
