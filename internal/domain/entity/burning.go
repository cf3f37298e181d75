package entity

import "github.com/bnema/ember/internal/domain/scope"

// BurningEntity describes what a burn targets: a UI scope (nothing, one tab,
// one window, every window) plus the domains whose data is cleared.
//
// It is a closed set of variants; the only implementations are NoneEntity,
// TabEntity, WindowEntity and AllWindowsEntity.
type BurningEntity interface {
	isBurningEntity()
}

// NoneEntity clears data for the selected domains without touching the UI.
type NoneEntity struct {
	SelectedDomains scope.Set
}

// TabEntity burns a single tab living in Parent.
type TabEntity struct {
	Tab             TabID
	Parent          WindowID
	SelectedDomains scope.Set
	Close           bool
}

// WindowEntity burns a single window and all of its tabs.
type WindowEntity struct {
	Window          WindowID
	SelectedDomains scope.Set
	Close           bool
}

// AllWindowsEntity burns every listed window.
// CustomURLToOpen is loaded in the window reopened after the burn, if any.
type AllWindowsEntity struct {
	Windows         []WindowID
	SelectedDomains scope.Set
	CustomURLToOpen string
	Close           bool
}

func (NoneEntity) isBurningEntity()       {}
func (TabEntity) isBurningEntity()        {}
func (WindowEntity) isBurningEntity()     {}
func (AllWindowsEntity) isBurningEntity() {}

// FireAnimationPolicy decides whether the fire animation plays.
type FireAnimationPolicy interface {
	ShouldShowFireAnimation() bool
}

// SelectedDomains returns the domain selection carried by e.
func SelectedDomains(e BurningEntity) scope.Set {
	switch v := e.(type) {
	case NoneEntity:
		return v.SelectedDomains
	case TabEntity:
		return v.SelectedDomains
	case WindowEntity:
		return v.SelectedDomains
	case AllWindowsEntity:
		return v.SelectedDomains
	default:
		return nil
	}
}

// ShouldClose reports whether the burn closes UI. NoneEntity reports true
// but has nothing to close.
func ShouldClose(e BurningEntity) bool {
	switch v := e.(type) {
	case NoneEntity:
		return true
	case TabEntity:
		return v.Close
	case WindowEntity:
		return v.Close
	case AllWindowsEntity:
		return v.Close
	default:
		return false
	}
}

// CustomURLToOpen returns the URL to load once windows are reopened.
// Only AllWindowsEntity carries one.
func CustomURLToOpen(e BurningEntity) string {
	if v, ok := e.(AllWindowsEntity); ok {
		return v.CustomURLToOpen
	}
	return ""
}

// ShouldPlayFireAnimation is always false for NoneEntity and defers to the
// policy otherwise.
func ShouldPlayFireAnimation(e BurningEntity, policy FireAnimationPolicy) bool {
	switch e.(type) {
	case NoneEntity:
		return false
	case TabEntity, WindowEntity, AllWindowsEntity:
		return policy != nil && policy.ShouldShowFireAnimation()
	default:
		return false
	}
}

// EntityKind is a short label for logs and metrics.
func EntityKind(e BurningEntity) string {
	switch e.(type) {
	case NoneEntity:
		return "none"
	case TabEntity:
		return "tab"
	case WindowEntity:
		return "window"
	case AllWindowsEntity:
		return "all_windows"
	default:
		return "unknown"
	}
}

// BurningKind distinguishes a domain-scoped burn from a full burn.
type BurningKind int

const (
	BurningSpecificDomains BurningKind = iota
	BurningAll
)

func (k BurningKind) String() string {
	if k == BurningAll {
		return "all"
	}
	return "specific_domains"
}

// BurningData is published while a burn is in flight. A nil *BurningData
// means no burn is running.
type BurningData struct {
	Kind                    BurningKind
	Domains                 scope.Set
	ShouldPlayFireAnimation bool
}

// NewSpecificDomainsBurningData builds the state of a domain-scoped burn.
func NewSpecificDomainsBurningData(domains scope.Set, playAnimation bool) *BurningData {
	return &BurningData{
		Kind:                    BurningSpecificDomains,
		Domains:                 domains.Clone(),
		ShouldPlayFireAnimation: playAnimation,
	}
}

// NewAllBurningData builds the state of a full burn.
func NewAllBurningData(playAnimation bool) *BurningData {
	return &BurningData{Kind: BurningAll, ShouldPlayFireAnimation: playAnimation}
}
