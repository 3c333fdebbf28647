// Package memplatform is an in-process implementation of the platform
// interfaces. It backs local development and every test; production swaps in
// the hosted provider's SDK behind the same interfaces.
package memplatform

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-travel-booking/platform"
	"golang.org/x/crypto/bcrypt"
)

// New returns a platform client backed entirely by process memory.
func New() platform.Client {
	return platform.Client{
		Auth:      NewAuth(),
		Documents: NewDocuments(),
		Files:     NewFiles(),
	}
}

type account struct {
	uid          string
	email        string
	passwordHash string
	federated    bool
}

// Auth implements platform.Auth with bcrypt-hashed credentials and
// synchronous session-event dispatch.
type Auth struct {
	mu          sync.RWMutex
	accounts    map[string]*account // uid -> account
	emailIndex  map[string]string   // email -> uid
	sessions    map[string]string   // sessionID -> uid
	seq         map[string]uint64   // sessionID -> last event seq
	subscribers map[int]platform.SessionHandler
	nextSub     int
	resets      []string // emails a reset was sent to, inspectable in tests
}

var _ platform.Auth = (*Auth)(nil)

func NewAuth() *Auth {
	return &Auth{
		accounts:    make(map[string]*account),
		emailIndex:  make(map[string]string),
		sessions:    make(map[string]string),
		seq:         make(map[string]uint64),
		subscribers: make(map[int]platform.SessionHandler),
	}
}

func (a *Auth) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if !strings.Contains(email, "@") {
		return "", platform.ErrInvalidEmail
	}
	if len(password) < 6 {
		return "", platform.ErrWeakPassword
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.emailIndex[email]; exists {
		return "", platform.ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	uid := uuid.New().String()
	a.accounts[uid] = &account{uid: uid, email: email, passwordHash: string(hash)}
	a.emailIndex[email] = uid
	return uid, nil
}

func (a *Auth) Authenticate(ctx context.Context, sessionID, email, password string) (*platform.Principal, error) {
	a.mu.Lock()
	uid, ok := a.emailIndex[email]
	if !ok {
		a.mu.Unlock()
		return nil, platform.ErrWrongCredentials
	}
	acc := a.accounts[uid]
	if acc.federated || bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)) != nil {
		a.mu.Unlock()
		return nil, platform.ErrWrongCredentials
	}
	a.sessions[sessionID] = uid
	principal := &platform.Principal{UID: uid, Email: email}
	event, handlers := a.buildEventLocked(sessionID, principal)
	a.mu.Unlock()

	dispatch(event, handlers)
	return principal, nil
}

func (a *Auth) FederatedSignIn(ctx context.Context, sessionID string, p platform.Principal) (*platform.Principal, error) {
	a.mu.Lock()
	uid, ok := a.emailIndex[p.Email]
	if !ok {
		uid = uuid.New().String()
		a.accounts[uid] = &account{uid: uid, email: p.Email, federated: true}
		a.emailIndex[p.Email] = uid
	}
	a.sessions[sessionID] = uid
	principal := &platform.Principal{UID: uid, Email: p.Email, DisplayName: p.DisplayName}
	event, handlers := a.buildEventLocked(sessionID, principal)
	a.mu.Unlock()

	dispatch(event, handlers)
	return principal, nil
}

func (a *Auth) DeleteAccount(ctx context.Context, uid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.accounts[uid]
	if !ok {
		return platform.ErrUserNotFound
	}
	delete(a.emailIndex, acc.email)
	delete(a.accounts, uid)
	for sessionID, sessionUID := range a.sessions {
		if sessionUID == uid {
			delete(a.sessions, sessionID)
		}
	}
	return nil
}

func (a *Auth) EndSession(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	delete(a.sessions, sessionID)
	event, handlers := a.buildEventLocked(sessionID, nil)
	a.mu.Unlock()

	dispatch(event, handlers)
	return nil
}

func (a *Auth) SendPasswordReset(ctx context.Context, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.emailIndex[email]; !ok {
		return platform.ErrUserNotFound
	}
	a.resets = append(a.resets, email)
	return nil
}

func (a *Auth) Subscribe(handler platform.SessionHandler) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextSub
	a.nextSub++
	a.subscribers[id] = handler
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subscribers, id)
	}
}

// PasswordResets returns the emails reset links were sent to.
func (a *Auth) PasswordResets() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.resets...)
}

// HasAccount reports whether a credential exists for the email.
func (a *Auth) HasAccount(email string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.emailIndex[email]
	return ok
}

func (a *Auth) buildEventLocked(sessionID string, principal *platform.Principal) (platform.SessionEvent, []platform.SessionHandler) {
	a.seq[sessionID]++
	event := platform.SessionEvent{
		SessionID: sessionID,
		Principal: principal,
		Seq:       a.seq[sessionID],
	}
	handlers := make([]platform.SessionHandler, 0, len(a.subscribers))
	for _, h := range a.subscribers {
		handlers = append(handlers, h)
	}
	return event, handlers
}

// dispatch runs outside the lock so a handler may call back into Auth.
func dispatch(event platform.SessionEvent, handlers []platform.SessionHandler) {
	for _, h := range handlers {
		h(event)
	}
}

// Documents implements platform.Documents over a map. Reads and writes deep
// copy so callers never share document memory.
type Documents struct {
	mu        sync.RWMutex
	docs      map[string]map[string]any
	failWrite error            // one-shot injected write failure
	failRead  map[string]error // persistent injected read failures by path
}

var _ platform.Documents = (*Documents)(nil)

func NewDocuments() *Documents {
	return &Documents{
		docs:     make(map[string]map[string]any),
		failRead: make(map[string]error),
	}
}

func (d *Documents) Read(ctx context.Context, path string) (map[string]any, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err, ok := d.failRead[path]; ok {
		return nil, err
	}
	doc, ok := d.docs[path]
	if !ok {
		return nil, platform.ErrMissing
	}
	return cloneDoc(doc), nil
}

func (d *Documents) Write(ctx context.Context, path string, data map[string]any, merge bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failWrite != nil {
		err := d.failWrite
		d.failWrite = nil
		return err
	}

	if merge {
		existing, ok := d.docs[path]
		if ok {
			merged := cloneDoc(existing)
			for k, v := range data {
				merged[k] = v
			}
			d.docs[path] = merged
			return nil
		}
	}
	d.docs[path] = cloneDoc(data)
	return nil
}

func (d *Documents) Delete(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, path)
	return nil
}

func (d *Documents) List(ctx context.Context, collection string) (map[string]map[string]any, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	prefix := collection + "/"
	out := make(map[string]map[string]any)
	for path, doc := range d.docs {
		if strings.HasPrefix(path, prefix) {
			out[strings.TrimPrefix(path, prefix)] = cloneDoc(doc)
		}
	}
	return out, nil
}

// FailNextWrite injects an error into the next Write call.
func (d *Documents) FailNextWrite(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWrite = err
}

// FailReads makes every Read of path return err until cleared with nil.
func (d *Documents) FailReads(path string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.failRead, path)
		return
	}
	d.failRead[path] = err
}

func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// Files implements platform.Files over a map.
type Files struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ platform.Files = (*Files)(nil)

func NewFiles() *Files {
	return &Files{files: make(map[string][]byte)}
}

func (f *Files) Upload(ctx context.Context, path string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = append([]byte(nil), data...)
	return "mem://" + path, nil
}
