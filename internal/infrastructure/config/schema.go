package config

// Config is the complete ember configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	// Fire controls the burn pipeline and its animation.
	Fire FireConfig `mapstructure:"fire" toml:"fire" json:"fire"`
	// Features are rollout flags.
	Features FeaturesConfig `mapstructure:"features" toml:"features" json:"features"`
	// Paths locates the filesystem-backed stores.
	Paths PathsConfig `mapstructure:"paths" toml:"paths" json:"paths"`
	// Cache sizes the in-memory stores.
	Cache CacheConfig `mapstructure:"cache" toml:"cache" json:"cache"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/ember/ember.sqlite when empty.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAge        int    `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"`
}

// FireConfig holds burn preferences.
type FireConfig struct {
	// ShowAnimation plays the fire animation while a burn runs.
	ShowAnimation bool `mapstructure:"show_animation" toml:"show_animation" json:"show_animation"`
	// OpenFireWindowByDefault opens Fire windows instead of regular ones
	// after a burn. Only honored when features.fire_window is on.
	OpenFireWindowByDefault bool `mapstructure:"open_fire_window_by_default" toml:"open_fire_window_by_default" json:"open_fire_window_by_default"`
	// AnimationTimeoutMs bounds how long an animation can hold a burn open.
	AnimationTimeoutMs int `mapstructure:"animation_timeout_ms" toml:"animation_timeout_ms" json:"animation_timeout_ms" jsonschema:"minimum=100"`
	// TabCleanupLimit caps concurrent tab preparation.
	TabCleanupLimit int `mapstructure:"tab_cleanup_limit" toml:"tab_cleanup_limit" json:"tab_cleanup_limit" jsonschema:"minimum=1"`
	// ClearSiteData is the default of the CLI --site-data flag.
	ClearSiteData bool `mapstructure:"clear_site_data" toml:"clear_site_data" json:"clear_site_data"`
}

// FeaturesConfig holds feature flags.
type FeaturesConfig struct {
	FireWindow bool `mapstructure:"fire_window" toml:"fire_window" json:"fire_window"`
}

// PathsConfig locates on-disk stores. Empty values resolve under the XDG
// state directory.
type PathsConfig struct {
	WebsiteDataDir string `mapstructure:"website_data_dir" toml:"website_data_dir" json:"website_data_dir"`
	FaviconDir     string `mapstructure:"favicon_dir" toml:"favicon_dir" json:"favicon_dir"`
}

// CacheConfig sizes the in-memory stores.
type CacheConfig struct {
	VisitedLinks int `mapstructure:"visited_links" toml:"visited_links" json:"visited_links" jsonschema:"minimum=1"`
	Autoconsent  int `mapstructure:"autoconsent" toml:"autoconsent" json:"autoconsent" jsonschema:"minimum=1"`
	// WarmLimit is how many recent visits seed the visited-link set.
	WarmLimit int `mapstructure:"warm_limit" toml:"warm_limit" json:"warm_limit" jsonschema:"minimum=1"`
}
