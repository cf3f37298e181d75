package config

import (
	"slices"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/ember/internal/logging"
)

// Watch starts reloading the file on every fsnotify event. Subsequent calls
// do nothing.
func (m *Manager) Watch() {
	m.watchOnce.Do(func() {
		m.viper.OnConfigChange(m.handleChange)
		m.viper.WatchConfig()
	})
}

// OnConfigChange registers fn to receive a copy of every successfully
// reloaded config.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *Manager) handleChange(e fsnotify.Event) {
	log := logging.NewFromEnv().With().Str("file", e.Name).Logger()

	m.mu.Lock()
	if err := m.reload(); err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config reload rejected")
		return
	}
	snapshot := *m.config
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	log.Debug().Str("op", e.Op.String()).Int("subscribers", len(callbacks)).Msg("config reloaded")
	for _, fn := range callbacks {
		c := snapshot
		fn(&c)
	}
}
