package port

import (
	"context"

	"github.com/bnema/ember/internal/domain/entity"
)

// MainThread runs closures on the single UI-bound execution context.
// Window and tab state is only ever mutated from there.
type MainThread interface {
	// Run executes fn on the UI context and blocks until it returned.
	Run(ctx context.Context, fn func()) error
}

// AppState reports application foreground state.
type AppState interface {
	IsActive() bool
}

// TabViewModel is the live object behind a tab.
type TabViewModel interface {
	TabID() entity.TabID
	// PrepareForBurning flushes pending work (in-flight navigations, form
	// state) so closing the tab does not race with it.
	PrepareForBurning(ctx context.Context) error
}

// OpenWindowOptions configures a window opened by the registry.
type OpenWindowOptions struct {
	FireWindow bool
	URL        string
}

// WindowControllerRegistry enumerates and opens/closes windows. All methods
// must be called on the MainThread.
type WindowControllerRegistry interface {
	// Windows returns the open windows in creation order.
	Windows() []*entity.Window
	Window(id entity.WindowID) *entity.Window
	// LastActiveRegularWindow returns the most recently activated non-Fire
	// window, or nil.
	LastActiveRegularWindow() *entity.Window
	TabViewModel(id entity.TabID) TabViewModel
	// NewTab creates a tab with a fresh identifier; it is not attached to
	// any window.
	NewTab(url string) *entity.Tab
	OpenWindow(opts OpenWindowOptions) *entity.Window
	CloseWindow(id entity.WindowID) bool
}
