package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-travel-booking/platform"
	"github.com/jrsteele09/go-travel-booking/platform/memplatform"
	"github.com/jrsteele09/go-travel-booking/profiles"
	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/jrsteele09/go-travel-booking/session"
	"github.com/stretchr/testify/require"
)

const (
	testSessionID = "sess-1"
	testEmail     = "rider@example.com"
	testPassword  = "Secret123"
)

type watcherFixture struct {
	auth     *memplatform.Auth
	docs     *memplatform.Documents
	repo     *profiles.Repo
	store    *session.Store
	watcher  *session.Watcher
	deferred []func() // resolutions captured by the test scheduler
}

func setupWatcherFixture(t *testing.T, sync bool) *watcherFixture {
	t.Helper()

	f := &watcherFixture{
		auth:  memplatform.NewAuth(),
		docs:  memplatform.NewDocuments(),
		store: session.NewStore(),
	}
	f.repo = profiles.NewRepo(f.docs)
	resolver := profiles.NewResolver(f.repo)

	schedule := func(fn func()) { fn() }
	if !sync {
		schedule = func(fn func()) { f.deferred = append(f.deferred, fn) }
	}

	f.watcher = session.NewWatcher(f.store, resolver, session.WithScheduler(schedule))
	f.watcher.Start(context.Background(), f.auth)
	t.Cleanup(f.watcher.Stop)
	return f
}

func (f *watcherFixture) register(t *testing.T, email, password string, role roles.RoleTag) string {
	t.Helper()

	uid, err := f.auth.CreateAccount(context.Background(), email, password)
	require.NoError(t, err)
	require.NoError(t, f.repo.Put(context.Background(), &profiles.Profile{
		UID: uid, Email: email, Role: role,
		Status: profiles.StatusPending, RegisteredAt: time.Now(),
	}))
	return uid
}

func TestWatcher_SignInResolvesRole(t *testing.T) {
	f := setupWatcherFixture(t, true)
	uid := f.register(t, testEmail, testPassword, roles.RoleGuideProvider)

	_, err := f.auth.Authenticate(context.Background(), testSessionID, testEmail, testPassword)
	require.NoError(t, err)

	snap := f.store.Get(testSessionID)
	require.False(t, snap.Loading)
	require.Equal(t, uid, snap.UserID)
	require.Equal(t, roles.RoleGuideProvider, snap.Role)
	require.True(t, snap.Authenticated())
}

func TestWatcher_SignOutClears(t *testing.T) {
	f := setupWatcherFixture(t, true)
	f.register(t, testEmail, testPassword, roles.RoleCustomer)

	_, err := f.auth.Authenticate(context.Background(), testSessionID, testEmail, testPassword)
	require.NoError(t, err)
	require.NoError(t, f.auth.EndSession(context.Background(), testSessionID))

	snap := f.store.Get(testSessionID)
	require.False(t, snap.Authenticated())
	require.False(t, snap.Loading)
	require.Empty(t, snap.Role)
}

func TestWatcher_LoadingUntilResolved(t *testing.T) {
	f := setupWatcherFixture(t, false)
	f.register(t, testEmail, testPassword, roles.RoleCustomer)

	_, err := f.auth.Authenticate(context.Background(), testSessionID, testEmail, testPassword)
	require.NoError(t, err)

	snap := f.store.Get(testSessionID)
	require.True(t, snap.Loading)

	for _, fn := range f.deferred {
		fn()
	}
	snap = f.store.Get(testSessionID)
	require.False(t, snap.Loading)
	require.Equal(t, roles.RoleCustomer, snap.Role)
}

func TestWatcher_ResolverErrorFailsClosed(t *testing.T) {
	f := setupWatcherFixture(t, true)
	uid := f.register(t, testEmail, testPassword, roles.RoleAdmin)
	f.docs.FailReads(profiles.PathFor(uid), platform.ErrPermissionDenied)

	_, err := f.auth.Authenticate(context.Background(), testSessionID, testEmail, testPassword)
	require.NoError(t, err)

	snap := f.store.Get(testSessionID)
	require.False(t, snap.Authenticated())
	require.Empty(t, snap.Role)
	require.False(t, snap.Loading)
}

func TestWatcher_StaleResolutionDiscarded(t *testing.T) {
	f := setupWatcherFixture(t, false)
	f.register(t, testEmail, testPassword, roles.RoleCustomer)
	adminUID := f.register(t, "admin@example.com", testPassword, roles.RoleAdmin)

	ctx := context.Background()

	// First sign-in; its resolution is still in flight when the user signs
	// out and back in as someone else.
	_, err := f.auth.Authenticate(ctx, testSessionID, testEmail, testPassword)
	require.NoError(t, err)
	require.NoError(t, f.auth.EndSession(ctx, testSessionID))
	_, err = f.auth.Authenticate(ctx, testSessionID, "admin@example.com", testPassword)
	require.NoError(t, err)

	// Run the stale resolution after the newer one.
	require.Len(t, f.deferred, 2)
	f.deferred[1]()
	f.deferred[0]()

	snap := f.store.Get(testSessionID)
	require.Equal(t, adminUID, snap.UserID)
	require.Equal(t, roles.RoleAdmin, snap.Role)
}

func TestWatcher_StopUnsubscribes(t *testing.T) {
	f := setupWatcherFixture(t, true)
	f.register(t, testEmail, testPassword, roles.RoleCustomer)
	f.watcher.Stop()

	_, err := f.auth.Authenticate(context.Background(), testSessionID, testEmail, testPassword)
	require.NoError(t, err)

	snap := f.store.Get(testSessionID)
	require.False(t, snap.Authenticated())
}
