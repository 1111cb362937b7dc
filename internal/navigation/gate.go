// Package navigation decides which part of the app is reachable and keeps
// the small pieces of navigator state the views share: the auth stack, the
// main tabs and the drawer.
package navigation

import "bakehouse/zipporder/internal/domain"

// Subtree is one of the two mutually exclusive halves of the app.
type Subtree int

const (
	// SubtreeAuth holds Login, Register and ForgotPassword.
	SubtreeAuth Subtree = iota
	// SubtreeMain holds the drawer and the Home/Orders/Profile tabs.
	SubtreeMain
)

func (s Subtree) String() string {
	if s == SubtreeMain {
		return "main"
	}
	return "auth"
}

// Select returns the subtree reachable for state. It is a pure function of
// IsAuthenticated.
func Select(state domain.SessionState) Subtree {
	if state.IsAuthenticated {
		return SubtreeMain
	}
	return SubtreeAuth
}

// Gate remembers the subtree last shown so callers can tell when the
// session flipped and the other subtree has to be mounted.
//
// The zero value starts in SubtreeAuth.
type Gate struct {
	current Subtree
}

// NewGate returns a gate showing the auth subtree.
func NewGate() *Gate { return &Gate{current: SubtreeAuth} }

// Current returns the subtree last observed.
func (g *Gate) Current() Subtree { return g.current }

// Observe selects the subtree for state and reports whether it differs from
// the one shown before. The switch is immediate; there is no intermediate
// subtree between Auth and Main.
func (g *Gate) Observe(state domain.SessionState) (Subtree, bool) {
	next := Select(state)
	changed := next != g.current
	g.current = next
	return next, changed
}
