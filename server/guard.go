package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-travel-booking/roles"
	"github.com/jrsteele09/go-travel-booking/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the settled session snapshot for the request
const ContextKeySession ContextKey = "session"

// DecisionKind is the terminal outcome of one route evaluation.
type DecisionKind int

const (
	// DecisionRender shows the requested view.
	DecisionRender DecisionKind = iota
	// DecisionLoader shows the loading placeholder; the route is re-evaluated
	// on the next request once role resolution has settled.
	DecisionLoader
	// DecisionRedirect sends the user elsewhere.
	DecisionRedirect
)

// Decision is what the guard decided for a request. PreserveLocation marks a
// login redirect that should remember the attempted location so the user is
// bounced back after signing in.
type Decision struct {
	Kind             DecisionKind
	Target           string
	PreserveLocation bool
}

// DecideProtected is the protected-route gate: a pure function of the session
// snapshot and the route's allowed buckets. Calling it twice with the same
// inputs yields the same decision.
func DecideProtected(snap session.Snapshot, allowed []roles.Bucket) Decision {
	if snap.Loading {
		return Decision{Kind: DecisionLoader}
	}
	if !snap.Authenticated() {
		return Decision{Kind: DecisionRedirect, Target: RouteLogin, PreserveLocation: true}
	}
	if !bucketAllowed(snap.Role, allowed) {
		return Decision{Kind: DecisionRedirect, Target: roles.DefaultDashboard(snap.Role)}
	}
	return Decision{Kind: DecisionRender}
}

// DecideAuthPage is the auth-page gate: an authenticated user with a known
// role is sent to their dashboard instead of seeing login or registration
// again.
func DecideAuthPage(snap session.Snapshot) Decision {
	if !snap.Loading && snap.Authenticated() && roles.Valid(snap.Role) {
		return Decision{Kind: DecisionRedirect, Target: roles.DefaultDashboard(snap.Role)}
	}
	return Decision{Kind: DecisionRender}
}

func bucketAllowed(role roles.RoleTag, allowed []roles.Bucket) bool {
	bucket := roles.Coarsen(role)
	for _, b := range allowed {
		if bucket == b {
			return true
		}
	}
	return false
}

// RequireRoles is middleware gating a route to the given buckets. It reads
// the snapshot for the request's session, applies DecideProtected, and either
// renders, redirects, or shows the loader.
func (s *Server) RequireRoles(allowed ...roles.Bucket) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			snap := s.snapshotFor(r)

			switch decision := DecideProtected(snap, allowed); decision.Kind {
			case DecisionLoader:
				s.renderLoader(w)
			case DecisionRedirect:
				target := decision.Target
				if decision.PreserveLocation {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				redirectSuccess(w, r, target)
			default:
				ctx := context.WithValue(r.Context(), ContextKeySession, snap)
				next(w, r.WithContext(ctx))
			}
		}
	}
}

// AuthPageGuard is middleware applying the auth-page gate to login and
// registration views.
func (s *Server) AuthPageGuard() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			snap := s.snapshotFor(r)

			if decision := DecideAuthPage(snap); decision.Kind == DecisionRedirect {
				redirectSuccess(w, r, decision.Target)
				return
			}
			next(w, r)
		}
	}
}

// snapshotFor returns the settled session snapshot for the request, or the
// signed-out snapshot when no valid session cookie is present.
func (s *Server) snapshotFor(r *http.Request) session.Snapshot {
	sessionID, ok := s.sessionIDFromCookie(r)
	if !ok {
		return session.Snapshot{}
	}
	return s.sessions.Get(sessionID)
}

// sessionFromContext returns the snapshot injected by RequireRoles.
func sessionFromContext(ctx context.Context) session.Snapshot {
	if snap, ok := ctx.Value(ContextKeySession).(session.Snapshot); ok {
		return snap
	}
	return session.Snapshot{}
}
