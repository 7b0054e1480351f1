// Package view models the screen router as an explicit state machine with
// access gating.  The gate consults the session for every transition and
// rewrites forbidden destinations: video detail requires an authenticated
// session (the original destination is remembered and resumed after login)
// and the admin screen requires the admin role.  There is no terminal
// state; the machine runs for the life of the process.
package view

import "sync"

// Screen names the four reachable screens.
type Screen string

const (
	Home        Screen = "home"
	Login       Screen = "login"
	Admin       Screen = "admin"
	VideoDetail Screen = "video" // carries the requested video ID
)

// State is one position of the router: a screen plus, for VideoDetail,
// the video being viewed.
type State struct {
	Screen  Screen
	VideoID string
}

// Session is the subset of session queries the gate needs.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Gate tracks the current state and the destination to resume after a
// login that was forced by an access check.
type Gate struct {
	mu      sync.Mutex
	session Session
	current State
	resume  *State
}

// NewGate starts the router on the home screen.
func NewGate(session Session) *Gate {
	return &Gate{session: session, current: State{Screen: Home}}
}

// Current returns the state the router is presently in.
func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Navigate requests a transition to dest and returns the state actually
// reached after gating:
//   - Admin resolves to Home unless the session is an admin.
//   - VideoDetail resolves to Login unless the session is authenticated;
//     the requested destination is recorded for resume.
//   - Home and Login are always reachable.
func (g *Gate) Navigate(dest State) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.navigate(dest)
}

// navigate applies the gating rules; g.mu must be held.
func (g *Gate) navigate(dest State) State {
	switch dest.Screen {
	case Admin:
		if !g.session.IsAdmin() {
			dest = State{Screen: Home}
		}
	case VideoDetail:
		if !g.session.IsAuthenticated() {
			requested := dest
			g.resume = &requested
			dest = State{Screen: Login}
		}
	}
	g.current = dest
	return g.current
}

// LoginSucceeded moves the router past the login screen: to the remembered
// destination when an access check forced the login, otherwise to Home.
// The resume slot is consumed either way.
func (g *Gate) LoginSucceeded() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := State{Screen: Home}
	if g.resume != nil {
		next = *g.resume
		g.resume = nil
	}
	// Re-run gating in case the restored destination is still off-limits
	// for the session that actually logged in.
	return g.navigate(next)
}

// Resume reports the destination that will be restored after login, if any.
func (g *Gate) Resume() (State, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resume == nil {
		return State{}, false
	}
	return *g.resume, true
}
