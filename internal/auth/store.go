// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/store"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnauthenticated: no valid credential. The login page is the
	// only reachable surface.
	StateUnauthenticated State = iota

	// StateRestoring: a persisted credential is being validated against
	// the profile endpoint. The UI shows a loading indicator.
	StateRestoring

	// StateAuthenticated: a current user is in memory.
	StateAuthenticated

	// StateExpired: the credential was rejected mid-session. Equivalent
	// to Unauthenticated except the login page shows a session-expired
	// notice.
	StateExpired
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// MsgInvalidCredentials is the default login failure message when the
// server provides no detail.
const MsgInvalidCredentials = "Usuário ou senha inválidos."

// MsgTooManyAttempts is returned when the client-side login throttle
// rejects an attempt before any network call.
const MsgTooManyAttempts = "Muitas tentativas de login. Aguarde alguns segundos."

// loginBurst and loginInterval bound local login attempts: a small burst,
// then one attempt per interval.
const (
	loginBurst    = 5
	loginInterval = 3 * time.Second
)

// LoginResult is the structured outcome of a login attempt. Failures do
// not cross the boundary as errors; the message is user-facing.
type LoginResult struct {
	OK      bool
	Message string
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store is the process-wide session store.
type Store struct {
	mu      sync.Mutex
	state   State
	user    *api.User
	client  *api.Client
	durable store.Scope
	session store.Scope
	limiter *rate.Limiter

	// onExpired is invoked (once per credential, via the client's
	// response observer) when the backend rejects the bearer credential
	// mid-session.
	onExpired func()
}

// NewStore creates the session store and installs the global unauthorized
// observer on the client's response pipeline. Installation replaces any
// previous observer, so re-initialization cannot stack handlers. The
// observer stays disarmed until a credential validates: a rejected login
// or failed restore must surface as a structured failure, never as a
// session expiry.
func NewStore(client *api.Client, durable, session store.Scope) *Store {
	s := &Store{
		state:   StateUnauthenticated,
		client:  client,
		durable: durable,
		session: session,
		limiter: rate.NewLimiter(rate.Every(loginInterval), loginBurst),
	}
	client.SetUnauthorizedHandler(s.expire)
	return s
}

// SetExpiredHandler registers the UI callback fired on mid-session
// credential rejection, after the store has already reset itself.
func (s *Store) SetExpiredHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the current user, or nil outside StateAuthenticated.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// RefreshProfile refetches the operator profile, picking up server-side
// changes such as a cleared forced password-change flag.
func (s *Store) RefreshProfile(ctx context.Context) error {
	user, err := s.client.Me(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.state == StateAuthenticated {
		s.user = user
	}
	s.mu.Unlock()
	return nil
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore attempts a silent session restore from a persisted credential,
// checking the durable scope ("remember me") before the session scope.
// Without a stored token it settles in Unauthenticated with no network
// call. A token that fails profile validation is discarded from both
// scopes.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	token, ok := s.durable.Get(store.KeyToken)
	if !ok {
		token, ok = s.session.Get(store.KeyToken)
	}
	if !ok || token == "" {
		s.state = StateUnauthenticated
		s.mu.Unlock()
		return
	}
	s.state = StateRestoring
	s.mu.Unlock()

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		log.Printf("session restore failed: %v", err)
		s.clearCredentials()
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.user = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	s.client.Rearm()

	s.maybeSyncCatalog(user)
}

// =============================================================================
// LOGIN / LOGOUT
// =============================================================================

// Login exchanges credentials for a bearer token, fetches the profile and
// persists the token to the durable or session scope per remember.
// Concurrent duplicate logins are not special-cased; the last write to
// storage wins.
func (s *Store) Login(ctx context.Context, username, password string, remember bool) LoginResult {
	if !s.limiter.Allow() {
		return LoginResult{Message: MsgTooManyAttempts}
	}

	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		return LoginResult{Message: loginMessage(err)}
	}

	if remember {
		s.session.Delete(store.KeyToken)
		if err := s.durable.Set(store.KeyToken, token); err != nil {
			log.Printf("failed to persist credential: %v", err)
		}
	} else {
		s.durable.Delete(store.KeyToken)
		s.session.Set(store.KeyToken, token)
	}

	s.client.SetToken(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		// A token that cannot fetch its own profile is useless; drop it.
		s.clearCredentials()
		return LoginResult{Message: loginMessage(err)}
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	s.client.Rearm()

	s.maybeSyncCatalog(user)
	return LoginResult{OK: true}
}

// Logout discards the credential from both scopes and returns the store to
// Unauthenticated. The observer is disarmed so a late 401 from an
// in-flight request cannot repaint the deliberate logout as an expiry.
func (s *Store) Logout() {
	s.client.Disarm()
	s.clearCredentials()
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.mu.Unlock()
}

// expire handles a mid-session credential rejection reported by the
// client's response observer. The credential is discarded and the UI
// callback redirects to the login entry with a session-expired marker.
// The observer itself guarantees this runs at most once per credential.
func (s *Store) expire() {
	s.clearCredentials()
	s.mu.Lock()
	s.state = StateExpired
	s.user = nil
	fn := s.onExpired
	s.mu.Unlock()

	log.Printf("session expired, forcing logout")
	if fn != nil {
		fn()
	}
}

// clearCredentials removes the token from both scopes and the client.
func (s *Store) clearCredentials() {
	s.durable.Delete(store.KeyToken)
	s.session.Delete(store.KeyToken)
	s.client.ClearToken()
}

// loginMessage maps a login error to its user-facing message.
func loginMessage(err error) string {
	if errors.Is(err, api.ErrUnavailable) {
		return "Não foi possível conectar ao servidor."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, api.ErrInvalidCredentials) {
		// The wrapped detail, when present, follows the sentinel text.
		if msg := trimSentinel(err.Error()); msg != "" {
			return msg
		}
	}
	return MsgInvalidCredentials
}

// trimSentinel extracts the server detail appended after the sentinel in
// "invalid credentials: <detail>".
func trimSentinel(msg string) string {
	const prefix = "invalid credentials: "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return ""
}

// =============================================================================
// PRIVILEGE CATALOG SYNC
// =============================================================================

// maybeSyncCatalog pushes the menu catalog to the server privilege
// registry when the user is a superuser. Best effort: fired without
// blocking, failures logged and otherwise ignored. A superseded sync is
// allowed to resolve; the operation is idempotent server side.
func (s *Store) maybeSyncCatalog(user *api.User) {
	if user == nil || !user.IsSuperuser {
		return
	}

	entries := catalogEntries()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.client.SyncPrivileges(ctx, entries); err != nil {
			log.Printf("privilege catalog sync failed: %v", err)
		}
	}()
}

// catalogEntries flattens the menu catalog into privilege registry rows.
func catalogEntries() []api.PrivilegeEntry {
	var entries []api.PrivilegeEntry
	for _, m := range nav.Modules() {
		for _, r := range m.Routes {
			entries = append(entries, api.PrivilegeEntry{
				Path:   r.Path,
				Title:  r.Title,
				Module: m.Key,
			})
		}
	}
	return entries
}
