// Package guard gates views on the session state.
//
// Protect renders its child only for a signed-in user and sends everyone
// else to the login page. GuestOnly is the mirror image used by the login
// page itself: signed-in users are sent home. Both render nothing while the
// session is still being resolved, so nothing protected flashes on screen
// and no one is redirected before the answer is known.
package guard

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/jafa/internal/client/router"
	"github.com/dmitrijs2005/jafa/internal/client/session"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

type Outcome int

const (
	Pending Outcome = iota
	Denied
	Allowed
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Denied:
		return "denied"
	case Allowed:
		return "allowed"
	}
	return "unknown"
}

// Evaluate decides access to a protected view.
func Evaluate(st session.State) Outcome {
	switch {
	case !st.Loaded():
		return Pending
	case st.Authenticated():
		return Allowed
	default:
		return Denied
	}
}

// evaluateGuest decides access to a guest-only view.
func evaluateGuest(st session.State) Outcome {
	switch {
	case !st.Loaded():
		return Pending
	case st.Authenticated():
		return Denied
	default:
		return Allowed
	}
}

// StateSource is the part of session.Store the guard reads.
type StateSource interface {
	Snapshot() session.State
	Subscribe(fn func(session.State)) (unsubscribe func())
}

type gate struct {
	store    StateSource
	nav      router.Navigator
	child    router.View
	evaluate func(session.State) Outcome
	redirect string

	mu           sync.Mutex
	ctx          context.Context
	unsubscribe  func()
	childMounted bool
	redirected   bool
}

// Protect wraps child so it is only shown to a signed-in user. Anonymous
// users are redirected to the login page, replacing the history entry.
func Protect(store StateSource, nav router.Navigator, child router.View) router.View {
	return &gate{store: store, nav: nav, child: child, evaluate: Evaluate, redirect: LoginPath}
}

// GuestOnly wraps child so signed-in users are sent to the home page,
// replacing the history entry.
func GuestOnly(store StateSource, nav router.Navigator, child router.View) router.View {
	return &gate{store: store, nav: nav, child: child, evaluate: evaluateGuest, redirect: HomePath}
}

func (g *gate) Render(w io.Writer) {
	if g.evaluate(g.store.Snapshot()) == Allowed {
		g.child.Render(w)
	}
}

// Mount subscribes to the store and applies the current state right away.
func (g *gate) Mount(ctx context.Context) {
	g.mu.Lock()
	g.ctx = ctx
	g.unsubscribe = g.store.Subscribe(g.sync)
	g.mu.Unlock()

	g.sync(session.State{})
}

// sync applies the store's current state. Notifications of interleaved
// writes may arrive out of order, so the value they carry is not used.
func (g *gate) sync(session.State) {
	g.apply(g.store.Snapshot())
}

func (g *gate) Unmount() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	mounted := g.childMounted
	g.unsubscribe = nil
	g.childMounted = false
	g.ctx = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if m, ok := g.child.(router.Mounter); ok && mounted {
		m.Unmount()
	}
}

func (g *gate) apply(st session.State) {
	g.mu.Lock()
	if g.ctx == nil || g.ctx.Err() != nil {
		g.mu.Unlock()
		return
	}
	ctx := g.ctx

	switch g.evaluate(st) {
	case Allowed:
		m, ok := g.child.(router.Mounter)
		if !ok || g.childMounted {
			g.mu.Unlock()
			return
		}
		g.childMounted = true
		g.mu.Unlock()
		m.Mount(ctx)
	case Denied:
		if g.redirected {
			g.mu.Unlock()
			return
		}
		g.redirected = true
		g.mu.Unlock()
		g.nav.Replace(g.redirect)
	default:
		g.mu.Unlock()
	}
}
