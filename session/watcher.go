package session

import (
	"context"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/rs/zerolog/log"
)

// RoleResolver maps a user id to its stored role.
type RoleResolver interface {
	Resolve(ctx context.Context, uid string) (roles.RoleTag, error)
}

// Watcher is the store's single writer. It subscribes to the platform's
// session-change events and, for each sign-in, resolves the principal's role
// before publishing the settled snapshot.
type Watcher struct {
	store       *Store
	resolver    RoleResolver
	schedule    func(func())
	ctx         context.Context
	unsubscribe func()
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithScheduler replaces the goroutine spawn used for role resolution.
// Tests pass a synchronous scheduler to make settlement deterministic.
func WithScheduler(schedule func(func())) WatcherOption {
	return func(w *Watcher) {
		w.schedule = schedule
	}
}

func NewWatcher(store *Store, resolver RoleResolver, options ...WatcherOption) *Watcher {
	w := &Watcher{
		store:    store,
		resolver: resolver,
		schedule: func(fn func()) { go fn() },
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Start subscribes to the auth platform. ctx bounds all role resolutions.
func (w *Watcher) Start(ctx context.Context, auth platform.Auth) {
	w.ctx = ctx
	w.unsubscribe = auth.Subscribe(w.handle)
}

// Stop unsubscribes from the auth platform. No other cleanup is required.
func (w *Watcher) Stop() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

func (w *Watcher) handle(event platform.SessionEvent) {
	if event.Principal == nil {
		w.store.Clear(event.SessionID, event.Seq)
		return
	}

	principal := *event.Principal
	w.store.BeginLoading(event.SessionID, event.Seq, principal.UID, principal.Email)

	w.schedule(func() {
		role, err := w.resolver.Resolve(w.ctx, principal.UID)
		if err != nil {
			log.Err(err).Str("uid", principal.UID).Msg("role resolution failed, failing closed")
			w.store.FailClosed(event.SessionID, event.Seq)
			return
		}
		w.store.Resolve(event.SessionID, event.Seq, principal.UID, principal.Email, role)
	})
}
