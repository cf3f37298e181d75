package fire

import (
	"sync"

	"github.com/bnema/ember/internal/application/port"
)

// VisualizeFireSettingsDecider derives the two cosmetic decisions of a burn
// from user settings: whether the fire animation plays, and whether a
// reopened window is a Fire window.
type VisualizeFireSettingsDecider struct {
	mu          sync.RWMutex
	settings    port.FireVisualSettings
	subscribers map[int]func(showAnimation, fireWindowByDefault bool)
	nextID      int
}

// NewVisualizeFireSettingsDecider tracks provider and follows its changes.
func NewVisualizeFireSettingsDecider(provider port.FireSettingsProvider) *VisualizeFireSettingsDecider {
	d := &VisualizeFireSettingsDecider{
		settings:    provider.FireVisualSettings(),
		subscribers: make(map[int]func(bool, bool)),
	}
	provider.OnFireVisualSettingsChange(d.update)
	return d
}

// ShouldShowFireAnimation reports whether burns play the fire animation.
func (d *VisualizeFireSettingsDecider) ShouldShowFireAnimation() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings.ShowFireAnimation
}

// IsOpenFireWindowByDefaultEnabled requires both the preference and the
// Fire window feature.
func (d *VisualizeFireSettingsDecider) IsOpenFireWindowByDefaultEnabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return openFireWindowByDefault(d.settings)
}

func openFireWindowByDefault(s port.FireVisualSettings) bool {
	return s.OpenFireWindowByDefault && s.FireWindowFeatureEnabled
}

// Subscribe registers fn to be called when either decision changes.
func (d *VisualizeFireSettingsDecider) Subscribe(fn func(showAnimation, fireWindowByDefault bool)) (cancel func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subscribers[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.subscribers, id)
		d.mu.Unlock()
	}
}

func (d *VisualizeFireSettingsDecider) update(s port.FireVisualSettings) {
	d.mu.Lock()
	prev := d.settings
	d.settings = s
	changed := prev.ShowFireAnimation != s.ShowFireAnimation ||
		openFireWindowByDefault(prev) != openFireWindowByDefault(s)
	var subs []func(bool, bool)
	if changed {
		for _, id := range sortedKeys(d.subscribers) {
			subs = append(subs, d.subscribers[id])
		}
	}
	d.mu.Unlock()

	for _, fn := range subs {
		fn(s.ShowFireAnimation, openFireWindowByDefault(s))
	}
}
