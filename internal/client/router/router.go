package router

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/jafa/internal/logging"
	"github.com/gorilla/mux"
)

// View renders itself to the terminal.
type View interface {
	Render(w io.Writer)
}

// Mounter is implemented by views that need to know when they become, and
// stop being, the current view.
type Mounter interface {
	Mount(ctx context.Context)
	Unmount()
}

// Navigator is the part of the router handed to views and handlers.
type Navigator interface {
	// Navigate pushes path onto the history.
	Navigate(path string)
	// Replace swaps the current history entry for path.
	Replace(path string)
}

// Params holds the {name} segments captured from a path.
type Params map[string]string

// Factory builds the view for a matched path.
type Factory func(p Params) View

type navKind int

const (
	navPush navKind = iota
	navReplace
	navBack
	navRefresh
)

type navRequest struct {
	path string
	kind navKind
}

type mounted struct {
	path   string
	view   View
	cancel context.CancelFunc
}

// Router is safe for concurrent use.
type Router struct {
	mu        sync.Mutex
	matcher   *mux.Router
	factories map[string]Factory
	notFound  Factory

	history []string
	current *mounted
	queue   []navRequest
	busy    bool

	base     context.Context
	onChange func(path string)
	logger   logging.Logger
}

var _ Navigator = (*Router)(nil)

// New returns a router with no routes. base is the parent of every view
// context. notFound renders unknown paths; its Params carry "path".
func New(base context.Context, notFound Factory, logger logging.Logger) *Router {
	return &Router{
		matcher:   mux.NewRouter(),
		factories: make(map[string]Factory),
		notFound:  notFound,
		base:      base,
		logger:    logger.With("module", "router"),
	}
}

// Handle registers pattern, written in gorilla/mux syntax ("/subforum/{title}").
func (r *Router) Handle(pattern string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matcher.NewRoute().Path(pattern).Name(pattern)
	r.factories[pattern] = f
}

// OnChange sets a callback run after a batch of navigations settles.
func (r *Router) OnChange(fn func(path string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Current returns the current path and view. The view is nil before the
// first navigation.
func (r *Router) Current() (string, View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return "", nil
	}
	return r.current.path, r.current.view
}

// History returns a copy of the history stack, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

func (r *Router) Navigate(path string) {
	r.enqueue(navRequest{path: path, kind: navPush})
}

func (r *Router) Replace(path string) {
	r.enqueue(navRequest{path: path, kind: navReplace})
}

// Back returns to the previous history entry. It reports false when there
// is nothing to go back to.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return false
	}
	r.mu.Unlock()
	r.enqueue(navRequest{kind: navBack})
	return true
}

// Refresh remounts the current view.
func (r *Router) Refresh() {
	r.enqueue(navRequest{kind: navRefresh})
}

// Close unmounts the current view.
func (r *Router) Close() {
	r.mu.Lock()
	prev := r.current
	r.current = nil
	r.mu.Unlock()
	unmount(prev)
}

func (r *Router) enqueue(req navRequest) {
	r.mu.Lock()
	r.queue = append(r.queue, req)
	if r.busy {
		r.mu.Unlock()
		return
	}
	r.busy = true

	for len(r.queue) > 0 {
		req := r.queue[0]
		r.queue = r.queue[1:]

		path, ok := r.applyHistoryLocked(req)
		if !ok {
			continue
		}
		view := r.resolveLocked(path)
		ctx, cancel := context.WithCancel(r.base)
		prev := r.current
		r.current = &mounted{path: path, view: view, cancel: cancel}
		r.mu.Unlock()

		r.logger.Debug(ctx, "navigate", "path", path)
		unmount(prev)
		if m, ok := view.(Mounter); ok {
			m.Mount(ctx)
		}

		r.mu.Lock()
	}

	r.busy = false
	onChange := r.onChange
	var current string
	if r.current != nil {
		current = r.current.path
	}
	r.mu.Unlock()

	if onChange != nil {
		onChange(current)
	}
}

func (r *Router) applyHistoryLocked(req navRequest) (string, bool) {
	switch req.kind {
	case navPush:
		if n := len(r.history); n > 0 && r.history[n-1] == req.path {
			return req.path, true
		}
		r.history = append(r.history, req.path)
		return req.path, true
	case navReplace:
		n := len(r.history)
		switch {
		case n == 0:
			r.history = append(r.history, req.path)
		case n >= 2 && r.history[n-2] == req.path:
			// replacing with the entry below collapses the two
			r.history = r.history[:n-1]
		default:
			r.history[n-1] = req.path
		}
		return req.path, true
	case navBack:
		if len(r.history) < 2 {
			return "", false
		}
		r.history = r.history[:len(r.history)-1]
		return r.history[len(r.history)-1], true
	case navRefresh:
		if len(r.history) == 0 {
			return "", false
		}
		return r.history[len(r.history)-1], true
	}
	return "", false
}

func (r *Router) resolveLocked(path string) View {
	u, err := url.Parse(path)
	if err == nil {
		var m mux.RouteMatch
		req := &http.Request{Method: http.MethodGet, URL: u}
		if r.matcher.Match(req, &m) && m.Route != nil {
			if f, ok := r.factories[m.Route.GetName()]; ok {
				return f(Params(m.Vars))
			}
		}
	}
	return r.notFound(Params{"path": path})
}

func unmount(m *mounted) {
	if m == nil {
		return
	}
	m.cancel()
	if v, ok := m.view.(Mounter); ok {
		v.Unmount()
	}
}
