package fire

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/url"
	"github.com/bnema/ember/internal/logging"
)

// tabPolicy captures the UI facts that decide whether a burn may leave a
// window empty. It is computed on the main thread.
type tabPolicy struct {
	appActive           bool
	fireWindowByDefault bool
	customURL           string
	burnOnExit          bool
}

func (f *Fire) tabPolicy(customURL string, burnOnExit bool) tabPolicy {
	return tabPolicy{
		appActive:           f.deps.AppState.IsActive(),
		fireWindowByDefault: f.deps.Visualize.IsOpenFireWindowByDefaultEnabled(),
		customURL:           customURL,
		burnOnExit:          burnOnExit,
	}
}

// allowsPlaceholder reports whether a blank tab must be inserted into w to
// keep it open. When false the window is allowed to close completely.
func (f *Fire) allowsPlaceholder(w *entity.Window, p tabPolicy) bool {
	if p.fireWindowByDefault || p.burnOnExit || !p.appActive || p.customURL != "" {
		return false
	}
	if w.IsFireWindow || w.HasPinnedTabs() {
		return false
	}
	last := f.deps.Windows.LastActiveRegularWindow()
	return last != nil && last.ID == w.ID
}

// burnTabs applies the close decision of e to windows and tabs. Must run on
// the main thread.
func (f *Fire) burnTabs(ctx context.Context, e entity.BurningEntity, p tabPolicy) {
	if !entity.ShouldClose(e) {
		return
	}

	switch v := e.(type) {
	case entity.TabEntity:
		f.burnTab(ctx, v, p)
	case entity.WindowEntity:
		f.burnWindowTabs(ctx, f.deps.Windows.Window(v.Window), p)
	case entity.AllWindowsEntity:
		for _, id := range v.Windows {
			f.burnWindowTabs(ctx, f.deps.Windows.Window(id), p)
		}
	}
}

func (f *Fire) burnTab(ctx context.Context, e entity.TabEntity, p tabPolicy) {
	log := logging.FromContext(ctx).With().Str("tab_id", string(e.Tab)).Logger()

	w := f.deps.Windows.Window(e.Parent)
	if w == nil {
		log.Warn().Str("window_id", string(e.Parent)).Msg("tab parent window not found")
		return
	}
	tab := w.Tabs.Find(e.Tab)
	if tab == nil {
		log.Warn().Msg("tab to burn not found")
		return
	}

	if tab.IsPinned {
		f.replacePinned(w, tab)
		log.Debug().Msg("pinned tab reloaded from cache")
		return
	}

	if w.Tabs.Count() == 1 && f.isOnlyRegularWindow(w) && f.allowsPlaceholder(w, p) {
		f.insertPlaceholder(w)
	}
	w.Tabs.Remove(tab.ID)
	f.closeIfEmpty(ctx, w)
}

func (f *Fire) burnWindowTabs(ctx context.Context, w *entity.Window, p tabPolicy) {
	if w == nil {
		return
	}

	var placeholder *entity.Tab
	if f.allowsPlaceholder(w, p) {
		placeholder = f.insertPlaceholder(w)
	}

	for _, tab := range w.Tabs.Regular() {
		if placeholder != nil && tab.ID == placeholder.ID {
			continue
		}
		w.Tabs.Remove(tab.ID)
	}
	pinned := w.Tabs.Pinned()
	for _, tab := range pinned {
		f.replacePinned(w, tab)
	}

	switch {
	case len(pinned) > 0:
		w.Tabs.Select(w.Tabs.Pinned()[0].ID)
	case placeholder != nil:
		w.Tabs.Select(placeholder.ID)
	}

	logging.FromContext(ctx).Debug().
		Str("window_id", string(w.ID)).
		Int("pinned", len(pinned)).
		Bool("placeholder", placeholder != nil).
		Msg("window tabs burned")

	f.closeIfEmpty(ctx, w)
}

// replacePinned swaps a pinned tab for a fresh one showing the same page
// from cache. The pin slot is preserved.
func (f *Fire) replacePinned(w *entity.Window, tab *entity.Tab) {
	fresh := f.deps.Windows.NewTab(tab.URL)
	if fresh == nil {
		return
	}
	fresh.Title = tab.Title
	fresh.LoadedFromCache = true
	w.Tabs.Replace(tab.ID, fresh)
}

func (f *Fire) insertPlaceholder(w *entity.Window) *entity.Tab {
	tab := f.deps.Windows.NewTab(url.BlankPage)
	if tab == nil {
		return nil
	}
	w.Tabs.Add(tab)
	return tab
}

func (f *Fire) isOnlyRegularWindow(w *entity.Window) bool {
	for _, other := range f.deps.Windows.Windows() {
		if other.ID != w.ID && !other.IsFireWindow {
			return false
		}
	}
	return !w.IsFireWindow
}

func (f *Fire) closeIfEmpty(ctx context.Context, w *entity.Window) {
	if !w.IsEmpty() {
		return
	}
	if f.deps.Windows.CloseWindow(w.ID) {
		logging.FromContext(ctx).Debug().Str("window_id", string(w.ID)).Msg("window closed")
	}
}
