package config

import (
	"sync"

	"github.com/bnema/ember/internal/application/port"
)

// FireSettings exposes the [fire] and [features] sections as a
// port.FireSettingsProvider and forwards config reloads.
type FireSettings struct {
	mu        sync.RWMutex
	current   port.FireVisualSettings
	listeners []func(port.FireVisualSettings)
}

// NewFireSettings seeds the provider from cfg.
func NewFireSettings(cfg *Config) *FireSettings {
	return &FireSettings{current: visualSettings(cfg)}
}

// Bind keeps the provider in sync with m.
func (s *FireSettings) Bind(m *Manager) {
	m.OnConfigChange(s.Apply)
}

// Apply publishes cfg to the listeners.
func (s *FireSettings) Apply(cfg *Config) {
	next := visualSettings(cfg)

	s.mu.Lock()
	s.current = next
	listeners := make([]func(port.FireVisualSettings), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

func (s *FireSettings) FireVisualSettings() port.FireVisualSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *FireSettings) OnFireVisualSettingsChange(fn func(port.FireVisualSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func visualSettings(cfg *Config) port.FireVisualSettings {
	return port.FireVisualSettings{
		ShowFireAnimation:        cfg.Fire.ShowAnimation,
		OpenFireWindowByDefault:  cfg.Fire.OpenFireWindowByDefault,
		FireWindowFeatureEnabled: cfg.Features.FireWindow,
	}
}
