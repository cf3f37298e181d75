package fire

import (
	"context"
	"errors"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
	"github.com/bnema/ember/internal/logging"
)

// BurnOptions selects the data categories of a BurnEntity call.
type BurnOptions struct {
	IncludingHistory          bool
	IncludeCookiesAndSiteData bool
	IncludeChatHistory        bool
}

// BurnEntity clears data of the domains selected by e and applies its UI
// close decision. It returns once every store reported completion.
func (f *Fire) BurnEntity(ctx context.Context, e entity.BurningEntity, opts BurnOptions) {
	run := f.beginRun(ctx, entity.EntityKind(e))
	ctx = run.ctx
	log := logging.FromContext(ctx)

	fireproof, fireproofOK := f.fireproofDomains(ctx)
	domains := f.domainsToBurn(ctx, e, fireproof)
	log.Debug().
		Strs("domains", domains.Sorted()).
		Bool("history", opts.IncludingHistory).
		Bool("site_data", opts.IncludeCookiesAndSiteData).
		Bool("chat_history", opts.IncludeChatHistory).
		Msg("burning entity")

	f.publish(ctx, entity.NewSpecificDomainsBurningData(domains, entity.ShouldPlayFireAnimation(e, f.deps.Visualize)))

	f.burnSessionState(ctx)

	if entity.ShouldClose(e) {
		f.prepareTabs(ctx, e)
	}

	var hadRegularWindow bool
	f.onMain(ctx, func() {
		hadRegularWindow = f.hasRegularWindow()
		f.runStep(ctx, step{port.StepTabs, func(context.Context) error {
			f.burnTabs(ctx, e, f.tabPolicy(entity.CustomURLToOpen(e), false))
			return nil
		}})
	})

	if fireproofOK {
		f.fanOutScoped(ctx, run.barrier, domains, fireproof, opts)
	} else {
		log.Error().Msg("fireproof domains unavailable, skipping stores that must honor them")
		f.burnChatHistory(ctx, run.barrier, opts.IncludeChatHistory)
	}

	f.settle(run)
	f.reopenWindowIfNeeded(ctx, hadRegularWindow, entity.CustomURLToOpen(e), false)
	f.endRun(run)
}

// burnSessionState clears the restorable session and orphaned sync rows.
// It runs before any tab mutation so a crash mid-burn cannot resurrect the
// burned tabs on next launch.
func (f *Fire) burnSessionState(ctx context.Context) {
	f.runStep(ctx, step{port.StepSessionState, f.deps.SessionRestoration.ClearLastSessionState})

	if f.deps.SyncMetadata == nil {
		return
	}
	if f.deps.SyncMetadata.IsSyncActive(ctx) {
		logging.FromContext(ctx).Debug().Msg("sync active, keeping deleted bookmark metadata")
		return
	}
	f.runStep(ctx, step{port.StepSyncMetadata, f.deps.SyncMetadata.PurgeDeletedBookmarks})
}

// prepareTabs lets every tab implicated by e flush pending work, and waits
// for all of them.
func (f *Fire) prepareTabs(ctx context.Context, e entity.BurningEntity) {
	var tabs []port.TabViewModel
	f.onMain(ctx, func() {
		tabs = f.tabViewModels(e)
	})
	if len(tabs) == 0 {
		return
	}
	f.runStep(ctx, step{port.StepTabCleanup, func(ctx context.Context) error {
		f.preparer.Prepare(ctx, tabs)
		return nil
	}})
}

// tabViewModels must run on the main thread.
func (f *Fire) tabViewModels(e entity.BurningEntity) []port.TabViewModel {
	var ids []entity.TabID
	collect := func(w *entity.Window) {
		if w == nil {
			return
		}
		for _, tab := range w.Tabs.Tabs {
			ids = append(ids, tab.ID)
		}
	}

	switch v := e.(type) {
	case entity.NoneEntity:
	case entity.TabEntity:
		ids = append(ids, v.Tab)
	case entity.WindowEntity:
		collect(f.deps.Windows.Window(v.Window))
	case entity.AllWindowsEntity:
		for _, id := range v.Windows {
			collect(f.deps.Windows.Window(id))
		}
	}

	vms := make([]port.TabViewModel, 0, len(ids))
	for _, id := range ids {
		if vm := f.deps.Windows.TabViewModel(id); !isNil(vm) {
			vms = append(vms, vm)
		}
	}
	return vms
}

// fanOutScoped starts every domain-scoped leaf burn on b.
func (f *Fire) fanOutScoped(ctx context.Context, b *Barrier, domains, fireproof scope.Set, opts BurnOptions) {
	d := f.deps

	f.burnChatHistory(ctx, b, opts.IncludeChatHistory)

	if domains.IsEmpty() {
		logging.FromContext(ctx).Debug().Msg("no domains left to burn")
		return
	}

	if opts.IncludeCookiesAndSiteData {
		f.spawn(ctx, b, step{port.StepWebCache, func(ctx context.Context) error {
			return d.WebCache.Clear(ctx, domains)
		}})
	}

	if opts.IncludingHistory {
		var removed []string
		f.spawn(ctx, b,
			step{port.StepHistory, func(ctx context.Context) error {
				var err error
				removed, err = d.History.BurnDomains(ctx, domains)
				return err
			}},
			step{port.StepVisitedLinks, func(ctx context.Context) error {
				return f.removeVisitedLinks(ctx, removed)
			}},
			step{port.StepFavicons, func(ctx context.Context) error {
				return d.Favicons.BurnDomains(ctx, domains, f.faviconExceptions(ctx, fireproof))
			}},
		)
	}

	if opts.IncludeCookiesAndSiteData {
		f.spawn(ctx, b,
			step{port.StepPermissions, func(ctx context.Context) error {
				return d.Permissions.BurnPermissionsOf(ctx, domains)
			}},
			step{port.StepDownloads, func(ctx context.Context) error {
				return d.Downloads.CleanupInactive(ctx, domains, fireproof)
			}},
		)
		f.spawn(ctx, b, step{port.StepAutoconsent, func(ctx context.Context) error {
			return d.Autoconsent.ClearCache(ctx, domains)
		}})
		f.spawn(ctx, b, step{port.StepZoomLevels, func(ctx context.Context) error {
			return d.ZoomLevels.BurnOf(ctx, domains)
		}})
	}

	f.spawn(ctx, b, step{port.StepRecentlyClosed, func(ctx context.Context) error {
		return d.RecentlyClosed.BurnCache(ctx, domains, fireproof)
	}})
}

// burnChatHistory does not depend on the fireproof list.
func (f *Fire) burnChatHistory(ctx context.Context, b *Barrier, requested bool) {
	if requested && f.deps.ChatHistory != nil {
		f.spawn(ctx, b, step{port.StepChatHistory, f.deps.ChatHistory.CleanAIChatHistory})
	}
}

func (f *Fire) removeVisitedLinks(ctx context.Context, urls []string) error {
	var errs []error
	for _, u := range urls {
		if err := f.deps.VisitedLinks.RemoveVisitedLink(ctx, u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// faviconExceptions must be computed after history was burned: favicons of
// domains still present in history are kept.
func (f *Fire) faviconExceptions(ctx context.Context, fireproof scope.Set) port.FaviconExceptions {
	log := logging.FromContext(ctx)
	ex := port.FaviconExceptions{Fireproof: fireproof}

	load := func(name string, src port.DomainSource) scope.Set {
		if isNil(src) {
			return nil
		}
		domains, err := src.Domains(ctx)
		if err != nil {
			log.Warn().Err(err).Str("source", name).Msg("failed to load favicon exceptions")
			return nil
		}
		return domains
	}

	ex.Bookmarked = load("bookmarks", f.deps.Bookmarks)
	ex.SavedLogins = load("saved_logins", f.deps.SavedLogins)
	ex.ExistingHistory = load("history", f.deps.History)
	return ex
}

// hasRegularWindow must run on the main thread.
func (f *Fire) hasRegularWindow() bool {
	for _, w := range f.deps.Windows.Windows() {
		if !w.IsFireWindow {
			return true
		}
	}
	return false
}

// reopenWindowIfNeeded opens a window when the burn closed every window
// while the app is in the foreground and the user had a regular window.
func (f *Fire) reopenWindowIfNeeded(ctx context.Context, hadRegularWindow bool, customURL string, burnOnExit bool) {
	if burnOnExit || !hadRegularWindow {
		return
	}
	f.onMain(ctx, func() {
		if len(f.deps.Windows.Windows()) > 0 || !f.deps.AppState.IsActive() {
			return
		}
		w := f.deps.Windows.OpenWindow(port.OpenWindowOptions{
			FireWindow: f.deps.Visualize.IsOpenFireWindowByDefaultEnabled(),
			URL:        customURL,
		})
		if w != nil {
			logging.FromContext(ctx).Info().
				Str("window_id", string(w.ID)).
				Bool("fire_window", w.IsFireWindow).
				Msg("reopened window after burn")
		}
	})
}
