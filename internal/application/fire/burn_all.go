package fire

import (
	"context"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

// BurnAllOptions configures BurnAll.
type BurnAllOptions struct {
	// IsBurnOnExit is set when the app burns while quitting. No window is
	// kept open or reopened.
	IsBurnOnExit bool
	// OpeningURL is loaded in the window reopened after the burn.
	OpeningURL                string
	IncludeCookiesAndSiteData bool
	IncludeChatHistory        bool
}

// BurnAll clears every store except fireproof domains and closes every
// window. It returns once every store reported completion.
func (f *Fire) BurnAll(ctx context.Context, opts BurnAllOptions) {
	run := f.beginRun(ctx, "all")
	ctx = run.ctx
	log := logging.FromContext(ctx)

	var e entity.AllWindowsEntity
	var hadRegularWindow bool
	f.onMain(ctx, func() {
		hadRegularWindow = f.hasRegularWindow()
		e = entity.AllWindowsEntity{
			Windows:         windowIDs(f.deps.Windows.Windows()),
			CustomURLToOpen: opts.OpeningURL,
			Close:           true,
		}
	})

	fireproof, fireproofOK := f.fireproofDomains(ctx)
	log.Debug().
		Int("windows", len(e.Windows)).
		Int("fireproof", fireproof.Len()).
		Bool("burn_on_exit", opts.IsBurnOnExit).
		Bool("site_data", opts.IncludeCookiesAndSiteData).
		Bool("chat_history", opts.IncludeChatHistory).
		Msg("burning everything")

	// Without the animation there is nothing to synchronize the window
	// close with, so windows go away before the data does.
	closeFirst := !f.deps.Visualize.ShouldShowFireAnimation() || opts.IsBurnOnExit
	if !closeFirst {
		f.publish(ctx, entity.NewAllBurningData(!closeFirst))
	}

	f.burnSessionState(ctx)
	f.prepareTabs(ctx, e)
	f.onMain(ctx, func() {
		f.runStep(ctx, step{port.StepTabs, func(context.Context) error {
			f.burnTabs(ctx, e, f.tabPolicy(opts.OpeningURL, opts.IsBurnOnExit))
			return nil
		}})
	})

	if closeFirst {
		f.publish(ctx, entity.NewAllBurningData(!closeFirst))
	}

	if fireproofOK {
		f.fanOutGlobal(ctx, run.barrier, fireproof, opts)
	} else {
		log.Error().Msg("fireproof domains unavailable, skipping stores that must honor them")
	}
	if f.deps.PrivacyStats != nil {
		f.spawn(ctx, run.barrier, step{port.StepPrivacyStats, f.deps.PrivacyStats.ClearPrivacyStats})
	}
	f.burnChatHistory(ctx, run.barrier, opts.IncludeChatHistory)

	f.settle(run)
	if fireproofOK {
		f.checkResidue(ctx, fireproof)
	}
	f.reopenWindowIfNeeded(ctx, hadRegularWindow, opts.OpeningURL, opts.IsBurnOnExit)
	f.endRun(run)
}

func (f *Fire) fanOutGlobal(ctx context.Context, b *Barrier, fireproof scope.Set, opts BurnAllOptions) {
	d := f.deps

	f.spawn(ctx, b,
		step{port.StepHistory, func(ctx context.Context) error {
			return d.History.BurnAll(ctx, fireproof)
		}},
		step{port.StepVisitedLinks, d.VisitedLinks.RemoveAll},
		step{port.StepFavicons, func(ctx context.Context) error {
			return d.Favicons.Burn(ctx, f.faviconExceptions(ctx, fireproof))
		}},
	)

	if opts.IncludeCookiesAndSiteData {
		f.spawn(ctx, b, step{port.StepWebCache, func(ctx context.Context) error {
			return d.WebCache.ClearAll(ctx, fireproof)
		}})
		f.spawn(ctx, b,
			step{port.StepPermissions, func(ctx context.Context) error {
				return d.Permissions.BurnPermissionsExcept(ctx, fireproof)
			}},
			step{port.StepDownloads, func(ctx context.Context) error {
				return d.Downloads.CleanupInactive(ctx, nil, fireproof)
			}},
		)
		f.spawn(ctx, b, step{port.StepZoomLevels, func(ctx context.Context) error {
			return d.ZoomLevels.BurnExcept(ctx, fireproof)
		}})
		f.spawn(ctx, b,
			step{port.StepAutoconsent, func(ctx context.Context) error {
				if err := d.Autoconsent.ClearCache(ctx, nil); err != nil {
					return err
				}
				return d.Autoconsent.ClearStats(ctx)
			}},
		)
	}

	f.spawn(ctx, b, step{port.StepRecentlyClosed, func(ctx context.Context) error {
		return d.RecentlyClosed.BurnCache(ctx, nil, fireproof)
	}})
}

// checkResidue asks stores able to count leftovers how much survived a
// global burn outside the fireproof list. Favicons are skipped: they keep
// more than the fireproof sites.
func (f *Fire) checkResidue(ctx context.Context, fireproof scope.Set) {
	log := logging.FromContext(ctx)
	stores := map[port.BurnStep]any{
		port.StepHistory:        f.deps.History,
		port.StepWebCache:       f.deps.WebCache,
		port.StepPermissions:    f.deps.Permissions,
		port.StepZoomLevels:     f.deps.ZoomLevels,
		port.StepRecentlyClosed: f.deps.RecentlyClosed,
	}
	for _, name := range sortedKeys(stores) {
		checker, ok := stores[name].(port.ResidueChecker)
		if !ok {
			continue
		}
		n, err := checker.Residue(ctx, fireproof)
		if err != nil {
			log.Warn().Err(err).Str("step", string(name)).Msg("residue check failed")
			continue
		}
		if n > 0 {
			log.Warn().Str("step", string(name)).Int64("count", n).Msg("data left behind after burn")
			f.reporter.ResidueFound(name, n)
		}
	}
}

func windowIDs(windows []*entity.Window) []entity.WindowID {
	ids := make([]entity.WindowID, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, w.ID)
	}
	return ids
}
