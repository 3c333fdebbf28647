// Package platform defines the narrow surface this application consumes from
// the backend-as-a-service provider: credential management, document storage,
// and file storage. Everything behind these interfaces is opaque; the
// in-process implementation in memplatform backs development and tests.
package platform

import (
	"context"
	"errors"
)

// Principal is the authenticated identity returned by the auth platform.
type Principal struct {
	UID         string
	Email       string
	DisplayName string // only populated by federated sign-in
}

// SessionEvent is delivered to subscribers whenever a browser session's
// authentication state changes. Principal is nil on sign-out. Seq is a
// monotonically increasing number per session; consumers discard results of
// work started for a stale Seq.
type SessionEvent struct {
	SessionID string
	Principal *Principal
	Seq       uint64
}

// SessionHandler receives session-change events. Handlers must not block; any
// slow work (role resolution) is done asynchronously by the consumer.
type SessionHandler func(event SessionEvent)

// Auth is the credential side of the platform.
type Auth interface {
	// CreateAccount registers a new credential and returns its uid.
	CreateAccount(ctx context.Context, email, password string) (string, error)
	// Authenticate checks a credential and binds it to the given session.
	Authenticate(ctx context.Context, sessionID, email, password string) (*Principal, error)
	// FederatedSignIn binds an externally-verified identity to the session,
	// creating the credential on first use.
	FederatedSignIn(ctx context.Context, sessionID string, principal Principal) (*Principal, error)
	// DeleteAccount removes a credential. Used as the compensating action when
	// a profile write fails after account creation.
	DeleteAccount(ctx context.Context, uid string) error
	// EndSession signs the session out.
	EndSession(ctx context.Context, sessionID string) error
	// SendPasswordReset emails a reset link to the address, if it exists.
	SendPasswordReset(ctx context.Context, email string) error
	// Subscribe registers a session-change handler and returns an unsubscribe
	// function.
	Subscribe(handler SessionHandler) (unsubscribe func())
}

// Documents is the document-store side of the platform. Paths follow the
// "collection/id" convention, e.g. "users/{uid}".
type Documents interface {
	// Read returns the document at path, or ErrMissing if it does not exist.
	Read(ctx context.Context, path string) (map[string]any, error)
	// Write stores data at path. With merge set, existing fields not present
	// in data are preserved.
	Write(ctx context.Context, path string, data map[string]any, merge bool) error
	// Delete removes the document at path. Deleting a missing document is not
	// an error.
	Delete(ctx context.Context, path string) error
	// List returns id -> document for every document under the collection.
	List(ctx context.Context, collection string) (map[string]map[string]any, error)
}

// Files is the file-storage side of the platform.
type Files interface {
	// Upload stores bytes at path and returns a serving URL.
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// Client bundles the three platform services.
type Client struct {
	Auth      Auth
	Documents Documents
	Files     Files
}

// Platform error codes, mirrored from the provider's SDK. Handlers map these
// to user-facing sentences; anything unrecognised gets a generic message.
var (
	ErrMissing          = errors.New("document missing")
	ErrEmailInUse       = errors.New("email already in use")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrWeakPassword     = errors.New("weak password")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrUserNotFound     = errors.New("user not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnavailable      = errors.New("service unavailable")
	ErrRateLimited      = errors.New("too many requests")
	ErrNetwork          = errors.New("network failure")
)
