// Package browser holds the live window and tab tree of the browser. It is
// the UI-side state the Fire orchestrator mutates through the main thread.
package browser

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/ember/internal/application/port"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/url"
	"github.com/bnema/ember/internal/logging"
)

// WindowManager owns every open window. Tab lists handed out by it must
// only be mutated on the main thread.
type WindowManager struct {
	ctx context.Context

	windows    []*entity.Window
	viewModels map[entity.TabID]*TabViewModel
	activation map[entity.WindowID]uint64
	seq        uint64

	active atomic.Bool

	// PrepareHook, when set, runs inside every tab's PrepareForBurning.
	PrepareHook func(ctx context.Context, id entity.TabID) error

	// Synchronization
	mu sync.RWMutex
}

// NewWindowManager creates a manager with no windows. The app starts in the
// foreground.
func NewWindowManager(ctx context.Context) *WindowManager {
	wm := &WindowManager{
		ctx:        ctx,
		windows:    make([]*entity.Window, 0),
		viewModels: make(map[entity.TabID]*TabViewModel),
		activation: make(map[entity.WindowID]uint64),
	}
	wm.active.Store(true)
	return wm
}

// IsActive reports whether the app is in the foreground.
func (wm *WindowManager) IsActive() bool {
	return wm.active.Load()
}

// SetActive records foreground state changes.
func (wm *WindowManager) SetActive(active bool) {
	wm.active.Store(active)
}

// Windows returns the open windows in creation order.
func (wm *WindowManager) Windows() []*entity.Window {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	out := make([]*entity.Window, len(wm.windows))
	copy(out, wm.windows)
	return out
}

// Window looks up an open window.
func (wm *WindowManager) Window(id entity.WindowID) *entity.Window {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	for _, w := range wm.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// LastActiveRegularWindow returns the most recently activated non-Fire
// window.
func (wm *WindowManager) LastActiveRegularWindow() *entity.Window {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	var last *entity.Window
	var lastSeq uint64
	for _, w := range wm.windows {
		if w.IsFireWindow {
			continue
		}
		if s := wm.activation[w.ID]; last == nil || s > lastSeq {
			last, lastSeq = w, s
		}
	}
	return last
}

// Activate marks the window as focused.
func (wm *WindowManager) Activate(id entity.WindowID) bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	for _, w := range wm.windows {
		if w.ID == id {
			wm.seq++
			wm.activation[id] = wm.seq
			w.LastActivatedAt = time.Now()
			return true
		}
	}
	return false
}

// NewTab creates a detached tab and its view-model.
func (wm *WindowManager) NewTab(rawURL string) *entity.Tab {
	tab := entity.NewTab(entity.TabID(uuid.NewString()), rawURL)

	wm.mu.Lock()
	wm.viewModels[tab.ID] = &TabViewModel{id: tab.ID, manager: wm}
	wm.mu.Unlock()
	return tab
}

// AddTab opens rawURL in a new tab of the window.
func (wm *WindowManager) AddTab(windowID entity.WindowID, rawURL string, pinned bool) *entity.Tab {
	w := wm.Window(windowID)
	if w == nil {
		return nil
	}
	tab := wm.NewTab(rawURL)
	tab.IsPinned = pinned
	w.Tabs.Add(tab)
	return tab
}

// TabViewModel returns the live object of a tab, or nil.
func (wm *WindowManager) TabViewModel(id entity.TabID) port.TabViewModel {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	vm, ok := wm.viewModels[id]
	if !ok {
		return nil
	}
	return vm
}

// OpenWindow opens and activates a window holding a single tab. An empty
// URL opens a blank page.
func (wm *WindowManager) OpenWindow(opts port.OpenWindowOptions) *entity.Window {
	w := entity.NewWindow(entity.WindowID(uuid.NewString()), opts.FireWindow)
	target := opts.URL
	if target == "" {
		target = url.BlankPage
	}
	w.Tabs.Add(wm.NewTab(target))

	wm.mu.Lock()
	wm.windows = append(wm.windows, w)
	wm.seq++
	wm.activation[w.ID] = wm.seq
	wm.mu.Unlock()

	logging.FromContext(wm.ctx).Debug().
		Str("window_id", string(w.ID)).
		Bool("fire_window", w.IsFireWindow).
		Msg("window opened")
	return w
}

// CloseWindow closes the window and drops its tabs' view-models.
func (wm *WindowManager) CloseWindow(id entity.WindowID) bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	for i, w := range wm.windows {
		if w.ID != id {
			continue
		}
		for _, tab := range w.Tabs.Tabs {
			delete(wm.viewModels, tab.ID)
		}
		wm.windows = append(wm.windows[:i], wm.windows[i+1:]...)
		delete(wm.activation, id)

		logging.FromContext(wm.ctx).Debug().Str("window_id", string(id)).Msg("window closed")
		return true
	}
	return false
}

// PruneViewModels drops view-models of tabs no longer attached to a
// window. It returns how many were dropped.
func (wm *WindowManager) PruneViewModels() int {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	live := make(map[entity.TabID]struct{})
	for _, w := range wm.windows {
		for _, tab := range w.Tabs.Tabs {
			live[tab.ID] = struct{}{}
		}
	}
	n := 0
	for id := range wm.viewModels {
		if _, ok := live[id]; !ok {
			delete(wm.viewModels, id)
			n++
		}
	}
	return n
}

// Snapshot captures the restorable session. Fire windows are excluded.
func (wm *WindowManager) Snapshot() *entity.SessionState {
	return entity.SnapshotFromWindows(wm.Windows())
}

// PreparedTabs lists tabs whose PrepareForBurning ran, sorted.
func (wm *WindowManager) PreparedTabs() []entity.TabID {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	var out []entity.TabID
	for id, vm := range wm.viewModels {
		if vm.prepared.Load() {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
