package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jafa/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Identity is the backend's answer to "who am I".
type Identity struct {
	user *User
}

// AnonymousIdentity means the backend has no session for the caller.
func AnonymousIdentity() Identity {
	return Identity{}
}

// AuthenticatedIdentity means the backend recognised the caller as u.
func AuthenticatedIdentity(u User) Identity {
	return Identity{user: &u}
}

// User returns the recognised user, if any.
func (i Identity) User() (User, bool) {
	if i.user == nil {
		return User{}, false
	}
	return *i.user, true
}

// State converts the identity into a resolved State.
func (i Identity) State() State {
	if i.user == nil {
		return Anonymous()
	}
	return Authenticated(*i.user)
}

// IdentitySource asks the backend for the current identity.
type IdentitySource interface {
	CurrentUser(ctx context.Context) (Identity, error)
}

// ErrorReporter receives failures that should reach the user.
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

// Resolver fills the Store from an IdentitySource.
type Resolver struct {
	source   IdentitySource
	store    *Store
	reporter ErrorReporter
	logger   logging.Logger

	group singleflight.Group
	// serializes the loaded check and the write of shared answers
	settleMu sync.Mutex
}

// NewResolver wires a resolver. reporter may be nil.
func NewResolver(source IdentitySource, store *Store, reporter ErrorReporter, logger logging.Logger) *Resolver {
	return &Resolver{
		source:   source,
		store:    store,
		reporter: reporter,
		logger:   logger.With("module", "session"),
	}
}

// Resolve asks the backend for the current user and replaces the store's
// state with the answer.
//
// Without force, an already loaded store is left alone and no request is
// made; concurrent non-forced calls share a single request. With force a
// fresh request is always issued.
//
// A transport failure resolves to Anonymous and is passed to the reporter,
// so the store never stays pending. When ctx is done by the time the answer
// arrives the store is not written. For a shared request each caller checks
// its own ctx, so one caller going away does not starve the others.
func (r *Resolver) Resolve(ctx context.Context, force bool) {
	if force {
		id, err := r.source.CurrentUser(ctx)
		r.settle(ctx, id, err, force)
		return
	}

	if r.store.Snapshot().Loaded() {
		return
	}
	v, err, _ := r.group.Do("resolve", func() (any, error) {
		return r.source.CurrentUser(context.WithoutCancel(ctx))
	})
	r.settleMu.Lock()
	defer r.settleMu.Unlock()
	// a concurrent caller or a forced resolve already wrote an answer
	if r.store.Snapshot().Loaded() {
		return
	}
	id, _ := v.(Identity)
	r.settle(ctx, id, err, force)
}

func (r *Resolver) settle(ctx context.Context, id Identity, err error, force bool) {
	if ctx.Err() != nil {
		r.logger.Debug(ctx, "resolution discarded, consumer gone", "forced", force)
		return
	}

	if err != nil {
		r.logger.Warn(ctx, "session resolution failed", "error", err, "forced", force)
		r.store.Replace(Anonymous())
		if r.reporter != nil {
			r.reporter.Report(ctx, err)
		}
		return
	}

	st := id.State()
	r.logger.Debug(ctx, "session resolved", "state", st.String(), "forced", force)
	r.store.Replace(st)
}
