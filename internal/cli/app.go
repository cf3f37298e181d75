// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/bootstrap"
	"github.com/bnema/ember/internal/cli/styles"
	"github.com/bnema/ember/internal/domain/build"
	"github.com/bnema/ember/internal/infrastructure/config"
	"github.com/bnema/ember/internal/logging"
)

const logFileName = "ember.log"

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	Theme      *styles.Theme
	BuildInfo  build.Info
	Runtime    *bootstrap.Runtime

	ctx context.Context
}

// Options overrides the production wiring of New.
type Options struct {
	Config     *config.Config
	ConfigFile string
	Settings   port.FireSettingsProvider
	Fs         afero.Fs
	Registry   *prometheus.Registry
}

// NewApp loads the configuration from the standard locations and wires
// the runtime.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	ctx := logging.WithContext(context.Background(), newLogger(cfg))

	settings := config.NewFireSettings(cfg)
	settings.Bind(mgr)
	mgr.Watch()

	return New(ctx, Options{
		Config:     cfg,
		ConfigFile: mgr.GetConfigFile(),
		Settings:   settings,
	})
}

// New wires an App from explicit options. ctx carries the logger.
func New(ctx context.Context, opts Options) (*App, error) {
	rt, err := bootstrap.NewRuntime(ctx, bootstrap.RuntimeInput{
		Config:   opts.Config,
		Settings: opts.Settings,
		Fs:       opts.Fs,
		Registry: opts.Registry,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize runtime: %w", err)
	}
	logging.FromContext(ctx).Debug().Str("db_path", opts.Config.Database.Path).Msg("database connected")

	return &App{
		Config:     opts.Config,
		ConfigFile: opts.ConfigFile,
		Theme:      styles.NewTheme(),
		Runtime:    rt,
		ctx:        ctx,
	}, nil
}

// Close saves the session and releases all resources.
func (a *App) Close() error {
	if a.Runtime == nil {
		return nil
	}
	if err := a.Runtime.SaveSession(a.ctx); err != nil {
		logging.FromContext(a.ctx).Warn().Err(err).Msg("session not saved")
	}
	return a.Runtime.Close()
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

func newLogger(cfg *config.Config) zerolog.Logger {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Logging.Level)
	lc.TimeFormat = "15:04:05"
	switch cfg.Logging.Format {
	case "json", "console":
		lc.Format = cfg.Logging.Format
	}
	if cfg.Logging.EnableFileLog && cfg.Logging.LogDir != "" {
		lc.File = filepath.Join(cfg.Logging.LogDir, logFileName)
		lc.MaxSizeMB = cfg.Logging.MaxSizeMB
		lc.MaxBackups = cfg.Logging.MaxBackups
		lc.MaxAgeDays = cfg.Logging.MaxAge
		lc.Compress = true
	}
	return logging.New(lc)
}
