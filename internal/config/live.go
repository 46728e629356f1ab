package config

import (
	"sync"
)

// Live holds the running configuration. Updates are saved to Path (when set)
// and announced to listeners.
type Live struct {
	Path string

	mu        sync.RWMutex
	cfg       *Config
	listeners []func(*Config)
}

func NewLive(cfg *Config, path string) *Live {
	if cfg == nil {
		cfg = Default()
	}
	return &Live{Path: path, cfg: cfg}
}

// Get returns a copy of the current configuration.
func (l *Live) Get() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return *l.cfg
}

// OnChange registers fn to run after every Update or Set.
func (l *Live) OnChange(fn func(*Config)) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

// Update applies fn to a copy of the configuration, saves it and swaps it in.
// Nothing changes when saving fails.
func (l *Live) Update(fn func(*Config)) error {
	l.mu.Lock()
	next := *l.cfg
	fn(&next)
	if l.Path != "" {
		if err := next.Save(l.Path); err != nil {
			l.mu.Unlock()
			return err
		}
	}
	l.cfg = &next
	listeners := append([]func(*Config){}, l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(&next)
	}
	return nil
}

// Set replaces the configuration without saving, as after a file reload.
func (l *Live) Set(cfg *Config) {
	l.mu.Lock()
	l.cfg = cfg
	listeners := append([]func(*Config){}, l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(cfg)
	}
}
