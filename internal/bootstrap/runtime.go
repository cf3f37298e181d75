// Package bootstrap assembles the burn pipeline from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/ember/internal/app/browser"
	"github.com/bnema/ember/internal/app/mainloop"
	"github.com/bnema/ember/internal/application/fire"
	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/repository"
	"github.com/bnema/ember/internal/infrastructure/cache"
	"github.com/bnema/ember/internal/infrastructure/config"
	"github.com/bnema/ember/internal/infrastructure/favicon"
	"github.com/bnema/ember/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/ember/internal/infrastructure/telemetry"
	"github.com/bnema/ember/internal/infrastructure/webcache"
	"github.com/bnema/ember/internal/logging"
)

const mainLoopQueueSize = 128

// RuntimeInput holds what NewRuntime needs. Zero values fall back to the
// production choices.
type RuntimeInput struct {
	Config *config.Config

	// Settings defaults to a FireSettings seeded from Config.
	Settings port.FireSettingsProvider
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Registry defaults to a fresh registry.
	Registry *prometheus.Registry
	// SyncActive reports whether bookmark sync is on. Nil means off.
	SyncActive func() bool
}

// Runtime owns every long-lived component of a burn-capable process.
type Runtime struct {
	Config   *config.Config
	DB       *sql.DB
	Loop     *mainloop.Loop
	Windows  *browser.WindowManager
	Registry *prometheus.Registry
	Reporter *telemetry.Reporter

	History        repository.HistoryRepository
	Fireproof      repository.FireproofRepository
	Permissions    repository.PermissionRepository
	ZoomLevels     repository.ZoomRepository
	Downloads      repository.DownloadRepository
	RecentlyClosed repository.RecentlyClosedRepository
	Sessions       repository.SessionStateRepository
	ChatHistory    repository.ChatHistoryRepository
	Bookmarks      repository.BookmarkRepository
	SavedLogins    repository.SavedLoginRepository
	PrivacyStats   repository.PrivacyStatsRepository

	VisitedLinks *cache.VisitedLinks
	Autoconsent  *cache.Autoconsent
	Favicons     *favicon.Cache
	WebCache     *webcache.Store

	Fire      *fire.Fire
	Callbacks *fire.Callbacks
}

// NewRuntime opens the database, warms the caches and builds the Fire.
// Close must be called on success.
func NewRuntime(ctx context.Context, in RuntimeInput) (*Runtime, error) {
	if in.Config == nil {
		return nil, errors.New("bootstrap: config is required")
	}
	cfg := in.Config
	log := logging.FromContext(ctx)
	start := time.Now()

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	fs := in.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	reg := in.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	syncActive := in.SyncActive
	if syncActive == nil {
		syncActive = func() bool { return false }
	}

	rt := &Runtime{
		Config:   cfg,
		DB:       db,
		Registry: reg,
		Reporter: telemetry.NewReporter(reg),

		History:        sqlite.NewHistoryRepository(db),
		Fireproof:      sqlite.NewFireproofRepository(db),
		Permissions:    sqlite.NewPermissionRepository(db),
		ZoomLevels:     sqlite.NewZoomRepository(db),
		Downloads:      sqlite.NewDownloadRepository(db),
		RecentlyClosed: sqlite.NewRecentlyClosedRepository(db),
		Sessions:       sqlite.NewSessionStateRepository(db),
		ChatHistory:    sqlite.NewChatHistoryRepository(db),
		Bookmarks:      sqlite.NewBookmarkRepository(db, syncActive),
		SavedLogins:    sqlite.NewSavedLoginRepository(db),
		PrivacyStats:   sqlite.NewPrivacyStatsRepository(db),

		VisitedLinks: cache.NewVisitedLinks(cfg.Cache.VisitedLinks),
		Autoconsent:  cache.NewAutoconsent(cfg.Cache.Autoconsent),
		Favicons:     favicon.NewCache(fs, cfg.Paths.FaviconDir),
		WebCache:     webcache.NewStore(fs, cfg.Paths.WebsiteDataDir),
	}

	// Independent warm-up work runs in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := rt.VisitedLinks.Warm(gctx, rt.History, cfg.Cache.WarmLimit); err != nil {
			// A cold cache only affects link colors.
			log.Warn().Err(err).Msg("visited links warm-up failed")
		}
		return nil
	})
	g.Go(func() error {
		for _, dir := range []string{cfg.Paths.FaviconDir, cfg.Paths.WebsiteDataDir} {
			if err := fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		_ = db.Close()
		return nil, err
	}

	settings := in.Settings
	if settings == nil {
		settings = config.NewFireSettings(cfg)
	}

	rt.Loop = mainloop.New(ctx, mainLoopQueueSize)
	rt.Windows = browser.NewWindowManager(ctx)

	preparer := fire.NewTabCleanupPreparer()
	preparer.Limit = cfg.Fire.TabCleanupLimit

	f, err := fire.New(fire.Dependencies{
		MainThread: rt.Loop,
		AppState:   rt.Windows,
		Windows:    rt.Windows,
		Visualize:  fire.NewVisualizeFireSettingsDecider(settings),

		Fireproof:          rt.Fireproof,
		History:            rt.History,
		WebCache:           rt.WebCache,
		Favicons:           rt.Favicons,
		Permissions:        rt.Permissions,
		Downloads:          rt.Downloads,
		ZoomLevels:         rt.ZoomLevels,
		VisitedLinks:       rt.VisitedLinks,
		Autoconsent:        rt.Autoconsent,
		RecentlyClosed:     rt.RecentlyClosed,
		SessionRestoration: rt.Sessions,

		ChatHistory:  rt.ChatHistory,
		SyncMetadata: rt.Bookmarks,
		PrivacyStats: rt.PrivacyStats,
		Bookmarks:    rt.Bookmarks,
		SavedLogins:  rt.SavedLogins,
		Reporter:     rt.Reporter,
		TabPreparer:  preparer,

		AnimationTimeout: cfg.AnimationTimeout(),
	})
	if err != nil {
		rt.Loop.Stop()
		_ = db.Close()
		return nil, fmt.Errorf("build fire: %w", err)
	}
	rt.Fire = f
	rt.Callbacks = fire.NewCallbacks(f)

	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("visited_links", rt.VisitedLinks.Len()).
		Msg("runtime ready")
	return rt, nil
}

// SaveSession drops view-models of detached tabs and stores the restorable
// session. Nothing is written when no regular window has tabs.
func (r *Runtime) SaveSession(ctx context.Context) error {
	var state *entity.SessionState
	var pruned int
	if err := r.Loop.Run(ctx, func() {
		pruned = r.Windows.PruneViewModels()
		state = r.Windows.Snapshot()
	}); err != nil {
		return fmt.Errorf("snapshot session: %w", err)
	}

	log := logging.FromContext(ctx)
	if state.TabCount() == 0 {
		log.Debug().Int("pruned_view_models", pruned).Msg("no session to save")
		return nil
	}
	if err := r.Sessions.SaveSnapshot(ctx, state); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	log.Debug().
		Int("pruned_view_models", pruned).
		Int("windows", len(state.Windows)).
		Msg("session saved")
	return nil
}

// Close stops the main loop and closes the database.
func (r *Runtime) Close() error {
	r.Loop.Stop()
	return r.DB.Close()
}
