// Package session tracks the authentication state of each browser session:
// who is signed in, what role they resolved to, and whether resolution is
// still in flight. The store has exactly one writer, the Watcher, which
// subscribes to the platform's session-change events; route guards and
// dashboards only read.
package session

import (
	"sync"

	"github.com/jrsteele09/go-travel-booking/roles"
)

// Snapshot is the observable state for one session.
//
// Loading is true only between a sign-in event and the first role resolution
// for it. Once false, UserID and Role are consistent with the backing store as
// of the last observed event.
type Snapshot struct {
	UserID  string
	Email   string
	Role    roles.RoleTag
	Loading bool
}

// Authenticated reports whether a principal is bound to the session.
func (s Snapshot) Authenticated() bool {
	return s.UserID != ""
}

var signedOut = Snapshot{}

// Store holds the snapshot per session id. Writes carry the sequence number
// of the session event that caused them; a write for a stale sequence is
// discarded, so a role resolution that loses a race with a newer sign-out or
// sign-in never clobbers the fresher state.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	lastSeq   map[string]uint64
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]Snapshot),
		lastSeq:   make(map[string]uint64),
	}
}

// Get returns the snapshot for a session. Unknown sessions read as signed out.
func (s *Store) Get(sessionID string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snap, ok := s.snapshots[sessionID]; ok {
		return snap
	}
	return signedOut
}

// BeginLoading records that seq is the latest event for the session and marks
// it loading while the role resolves.
func (s *Store) BeginLoading(sessionID string, seq uint64, userID, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.lastSeq[sessionID] {
		return
	}
	s.lastSeq[sessionID] = seq
	s.snapshots[sessionID] = Snapshot{UserID: userID, Email: email, Loading: true}
}

// Resolve applies a completed role resolution, unless a newer event has been
// observed since the resolution started.
func (s *Store) Resolve(sessionID string, seq uint64, userID, email string, role roles.RoleTag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.lastSeq[sessionID] {
		return
	}
	s.snapshots[sessionID] = Snapshot{UserID: userID, Email: email, Role: role}
}

// FailClosed settles the session to signed-out after a resolution failure. An
// unresolvable role is treated as logged out, never as "trust any route".
func (s *Store) FailClosed(sessionID string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.lastSeq[sessionID] {
		return
	}
	s.snapshots[sessionID] = signedOut
}

// Clear records a sign-out event.
func (s *Store) Clear(sessionID string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.lastSeq[sessionID] {
		return
	}
	s.lastSeq[sessionID] = seq
	delete(s.snapshots, sessionID)
}
