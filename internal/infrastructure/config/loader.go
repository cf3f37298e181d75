// Package config loads ember's TOML configuration with viper, watches it
// for changes and adapts it to the ports the burn pipeline consumes.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Manager owns the viper instance and the last valid Config.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dirs      Dirs
	fs        afero.Fs
	mu        sync.RWMutex
	callbacks []func(*Config)
	watchOnce sync.Once
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	dirs, err := ResolveDirs()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(dirs.Config)

	// EMBER_DATABASE_PATH, EMBER_FIRE_SHOW_ANIMATION, ...
	v.SetEnvPrefix("EMBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with logging.NewFromEnv
	if err := v.BindEnv("logging.level", "EMBER_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind EMBER_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "EMBER_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind EMBER_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper: v,
		dirs:  dirs,
		fs:    afero.NewOsFs(),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.dirs.Ensure(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.reload()
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = m.dirs.ConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	configFile := m.dirs.ConfigFile()
	if err := WriteConfig(m.fs, DefaultConfig(), configFile); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w", configFile, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// reload re-reads the file viper already located. Must be called with the
// lock held for write.
func (m *Manager) reload() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	m.resolvePaths(config)
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

// resolvePaths fills the locations left empty with their XDG defaults.
func (m *Manager) resolvePaths(config *Config) {
	if config.Database.Path == "" {
		config.Database.Path = m.dirs.DatabaseFile()
	}
	if config.Paths.WebsiteDataDir == "" {
		config.Paths.WebsiteDataDir = m.dirs.WebsiteDataDir()
	}
	if config.Paths.FaviconDir == "" {
		config.Paths.FaviconDir = m.dirs.FaviconDir()
	}
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = m.dirs.LogDir()
	}
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// AnimationTimeout converts fire.animation_timeout_ms to a duration.
func (c *Config) AnimationTimeout() time.Duration {
	return time.Duration(c.Fire.AnimationTimeoutMs) * time.Millisecond
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)

	m.viper.SetDefault("fire.show_animation", defaults.Fire.ShowAnimation)
	m.viper.SetDefault("fire.open_fire_window_by_default", defaults.Fire.OpenFireWindowByDefault)
	m.viper.SetDefault("fire.animation_timeout_ms", defaults.Fire.AnimationTimeoutMs)
	m.viper.SetDefault("fire.tab_cleanup_limit", defaults.Fire.TabCleanupLimit)
	m.viper.SetDefault("fire.clear_site_data", defaults.Fire.ClearSiteData)

	m.viper.SetDefault("features.fire_window", defaults.Features.FireWindow)

	m.viper.SetDefault("paths.website_data_dir", defaults.Paths.WebsiteDataDir)
	m.viper.SetDefault("paths.favicon_dir", defaults.Paths.FaviconDir)

	m.viper.SetDefault("cache.visited_links", defaults.Cache.VisitedLinks)
	m.viper.SetDefault("cache.autoconsent", defaults.Cache.Autoconsent)
	m.viper.SetDefault("cache.warm_limit", defaults.Cache.WarmLimit)
}
