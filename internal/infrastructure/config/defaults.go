package config

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultMaxLogSizeMB  = 10
	defaultMaxLogBackups = 3
	defaultMaxLogAgeDays = 7 // days

	// Fire defaults
	defaultAnimationTimeoutMs = 10000
	defaultTabCleanupLimit    = 8

	// Cache defaults
	defaultVisitedLinksCapacity = 10000
	defaultAutoconsentCapacity  = 2048
	defaultWarmLimit            = 5000
)

func defaultLogDir() string {
	dirs, err := ResolveDirs()
	if err != nil {
		return ""
	}
	return dirs.LogDir()
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			LogDir:     defaultLogDir(),
			MaxSizeMB:  defaultMaxLogSizeMB,
			MaxBackups: defaultMaxLogBackups,
			MaxAge:     defaultMaxLogAgeDays,
		},
		Fire: FireConfig{
			ShowAnimation:      true,
			AnimationTimeoutMs: defaultAnimationTimeoutMs,
			TabCleanupLimit:    defaultTabCleanupLimit,
			ClearSiteData:      true,
		},
		Cache: CacheConfig{
			VisitedLinks: defaultVisitedLinksCapacity,
			Autoconsent:  defaultAutoconsentCapacity,
			WarmLimit:    defaultWarmLimit,
		},
	}
}
