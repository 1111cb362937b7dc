// Package theme holds the appearance state: the user's mode preference,
// its resolution against the host color scheme, and the two palettes.
package theme

import (
	"errors"
	"sync"

	"bakehouse/zipporder/internal/kvstore"
	"bakehouse/zipporder/internal/log"

	"github.com/sirupsen/logrus"
)

// modeKey is the kvstore key the chosen mode is persisted under.
const modeKey = "theme.mode"

// Store is the process-wide theme state. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	mode     Mode
	hostDark bool

	host    Host
	persist kvstore.Store
	cancel  func()

	listeners map[int]func(isDark bool)
	nextID    int
}

// Option configures a Store.
type Option func(*Store)

// WithPersistence saves every mode change to kv and lets Restore read it.
func WithPersistence(kv kvstore.Store) Option {
	return func(s *Store) { s.persist = kv }
}

// WithMode sets the initial mode (default ModeSystem).
func WithMode(m Mode) Option {
	return func(s *Store) { s.mode = m }
}

// NewStore returns a Store following host. Call Close to stop listening.
func NewStore(host Host, opts ...Option) *Store {
	s := &Store{mode: ModeSystem, host: host}
	for _, opt := range opts {
		opt(s)
	}
	if host != nil {
		s.hostDark = host.IsDark()
		s.cancel = host.Subscribe(s.onHostChange)
	}
	return s
}

// Close detaches the store from its host.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Subscribe registers fn to run whenever a host change flips the resolved
// appearance. Mode changes made through the store are not reported.
func (s *Store) Subscribe(fn func(isDark bool)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(bool))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) onHostChange(dark bool) {
	s.mu.Lock()
	before := Resolve(s.mode, s.hostDark)
	s.hostDark = dark
	after := Resolve(s.mode, s.hostDark)
	var notify []func(bool)
	if before != after {
		for _, fn := range s.listeners {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	log.WithComponent("theme").WithField("host_dark", dark).Debug("host scheme changed")
	for _, fn := range notify {
		fn(after)
	}
}

// Mode returns the current preference.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// IsDark returns the resolved appearance.
func (s *Store) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Resolve(s.mode, s.hostDark)
}

// Palette returns the palette for the resolved appearance.
func (s *Store) Palette() Palette {
	return For(s.IsDark())
}

// SetMode replaces the preference.
func (s *Store) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.save(m)
}

// Toggle switches to the opposite explicit mode of what is currently
// rendered: resolved dark goes to ModeLight, anything else to ModeDark.
// It never returns to ModeSystem.
func (s *Store) Toggle() Mode {
	s.mu.Lock()
	next := ModeDark
	if Resolve(s.mode, s.hostDark) {
		next = ModeLight
	}
	s.mode = next
	s.mu.Unlock()
	s.save(next)
	return next
}

// Restore loads a previously persisted mode. A missing entry keeps the
// current mode.
func (s *Store) Restore() error {
	if s.persist == nil {
		return nil
	}
	raw, err := s.persist.Get(modeKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	m, err := ParseMode(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	return nil
}

func (s *Store) save(m Mode) {
	entry := log.WithComponent("theme").WithFields(logrus.Fields{"mode": m.String()})
	if s.persist == nil {
		entry.Debug("theme mode changed")
		return
	}
	// Persistence is best-effort; the in-memory mode is authoritative.
	if err := s.persist.Set(modeKey, m.String()); err != nil {
		entry.WithError(err).Warn("failed to persist theme mode")
		return
	}
	entry.Debug("theme mode changed")
}
