package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Host reports the host's color scheme and notifies on change.
type Host interface {
	IsDark() bool
	// Subscribe registers fn for scheme changes and returns a function
	// that removes it.
	Subscribe(fn func(isDark bool)) (cancel func())
}

// ManualHost is a Host whose scheme is set explicitly. It backs both the
// terminal detection and tests.
type ManualHost struct {
	mu        sync.Mutex
	dark      bool
	nextID    int
	listeners map[int]func(bool)
}

// NewManualHost returns a host reporting the given scheme.
func NewManualHost(dark bool) *ManualHost {
	return &ManualHost{dark: dark, listeners: make(map[int]func(bool))}
}

// DetectHost returns a host seeded from the terminal's background color.
func DetectHost() *ManualHost {
	return NewManualHost(lipgloss.HasDarkBackground())
}

func (h *ManualHost) IsDark() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dark
}

// Set changes the scheme and notifies subscribers when it differs.
func (h *ManualHost) Set(dark bool) {
	h.mu.Lock()
	if h.dark == dark {
		h.mu.Unlock()
		return
	}
	h.dark = dark
	fns := make([]func(bool), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

func (h *ManualHost) Subscribe(fn func(bool)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}
