// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/store"
)

// backend is a minimal clinic API for session tests.
type backend struct {
	token     string
	user      string
	superuser bool
	syncCalls int32
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access":"` + b.token + `"}`))
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"token inválido"}`))
			return
		}
		super := "false"
		if b.superuser {
			super = "true"
		}
		w.Write([]byte(`{"id":1,"username":"` + b.user + `","is_superuser":` + super + `}`))
	})
	mux.HandleFunc("/configuracoes/funcionalidades/sincronizar/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.syncCalls, 1)
		w.Write([]byte(`{}`))
	})
	return mux
}

func newTestStore(t *testing.T, b *backend) (*Store, *store.MemoryScope, *store.MemoryScope) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	durable := store.NewMemoryScope()
	session := store.NewMemoryScope()
	return NewStore(api.NewClient(srv.URL), durable, session), durable, session
}

// =============================================================================
// RESTORE TESTS
// =============================================================================

func TestRestore_NoCredential(t *testing.T) {
	s, _, _ := newTestStore(t, &backend{token: "tok", user: "maria"})

	s.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
}

func TestRestore_FromDurableScope(t *testing.T) {
	s, durable, _ := newTestStore(t, &backend{token: "tok", user: "maria"})
	durable.Set(store.KeyToken, "tok")

	s.Restore(context.Background())
	require.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "maria", s.User().Username)
}

func TestRestore_FromSessionScope(t *testing.T) {
	s, _, session := newTestStore(t, &backend{token: "tok", user: "maria"})
	session.Set(store.KeyToken, "tok")

	s.Restore(context.Background())
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestRestore_InvalidTokenDiscardsBothScopes(t *testing.T) {
	s, durable, session := newTestStore(t, &backend{token: "valid", user: "maria"})
	durable.Set(store.KeyToken, "stale")
	session.Set(store.KeyToken, "stale")

	s.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())

	_, inDurable := durable.Get(store.KeyToken)
	_, inSession := session.Get(store.KeyToken)
	assert.False(t, inDurable, "stale token must leave the durable scope")
	assert.False(t, inSession, "stale token must leave the session scope")
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestLogin_RememberPersistsDurably(t *testing.T) {
	s, durable, session := newTestStore(t, &backend{token: "tok", user: "maria"})

	res := s.Login(context.Background(), "maria", "s3cret", true)
	require.True(t, res.OK, "login failed: %s", res.Message)
	assert.Equal(t, StateAuthenticated, s.State())

	v, ok := durable.Get(store.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
	_, ok = session.Get(store.KeyToken)
	assert.False(t, ok, "remember-me token belongs in the durable scope only")
}

func TestLogin_WithoutRememberPersistsToSession(t *testing.T) {
	s, durable, session := newTestStore(t, &backend{token: "tok", user: "maria"})

	res := s.Login(context.Background(), "maria", "s3cret", false)
	require.True(t, res.OK)

	_, ok := durable.Get(store.KeyToken)
	assert.False(t, ok)
	v, ok := session.Get(store.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestLogin_FailureMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Conta bloqueada."}`))
	}))
	defer srv.Close()

	s := NewStore(api.NewClient(srv.URL), store.NewMemoryScope(), store.NewMemoryScope())
	res := s.Login(context.Background(), "maria", "wrong", false)
	assert.False(t, res.OK)
	assert.Equal(t, "Conta bloqueada.", res.Message)
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestLogin_FailureDefaultMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewStore(api.NewClient(srv.URL), store.NewMemoryScope(), store.NewMemoryScope())
	res := s.Login(context.Background(), "maria", "wrong", false)
	assert.False(t, res.OK)
	assert.Equal(t, MsgInvalidCredentials, res.Message)
}

func TestLogin_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewStore(api.NewClient(srv.URL), store.NewMemoryScope(), store.NewMemoryScope())
	var throttled bool
	for i := 0; i < loginBurst+2; i++ {
		res := s.Login(context.Background(), "maria", "wrong", false)
		if res.Message == MsgTooManyAttempts {
			throttled = true
			break
		}
	}
	assert.True(t, throttled, "burst of failed logins should hit the local throttle")
}

// =============================================================================
// LOGOUT / EXPIRY TESTS
// =============================================================================

func TestLogout_ClearsEverything(t *testing.T) {
	s, durable, session := newTestStore(t, &backend{token: "tok", user: "maria"})
	require.True(t, s.Login(context.Background(), "maria", "s3cret", true).OK)

	s.Logout()
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
	_, ok := durable.Get(store.KeyToken)
	assert.False(t, ok)
	_, ok = session.Get(store.KeyToken)
	assert.False(t, ok)
}

func TestExpiry_MidSession(t *testing.T) {
	b := &backend{token: "tok", user: "maria"}
	srv := httptest.NewServer(b.handler())
	defer srv.Close()

	client := api.NewClient(srv.URL)
	durable := store.NewMemoryScope()
	s := NewStore(client, durable, store.NewMemoryScope())

	var expired int32
	s.SetExpiredHandler(func() { atomic.AddInt32(&expired, 1) })

	require.True(t, s.Login(context.Background(), "maria", "s3cret", true).OK)

	// Backend rotates the token: the old credential is now rejected.
	b.token = "rotated"
	for i := 0; i < 3; i++ {
		client.Me(context.Background())
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&expired),
		"expiry handler must fire exactly once for a burst of failures")
	assert.Equal(t, StateExpired, s.State())
	_, ok := durable.Get(store.KeyToken)
	assert.False(t, ok, "expired credential must be discarded")
}

func TestExpiry_NotFiredByFailedLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Usuário ou senha inválidos."}`))
	}))
	defer srv.Close()

	s := NewStore(api.NewClient(srv.URL), store.NewMemoryScope(), store.NewMemoryScope())
	var expired int32
	s.SetExpiredHandler(func() { atomic.AddInt32(&expired, 1) })

	res := s.Login(context.Background(), "maria", "wrong", false)
	assert.False(t, res.OK)
	assert.Equal(t, int32(0), atomic.LoadInt32(&expired),
		"a rejected password is a login failure, not a session expiry")
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestExpiry_NotFiredByFailedRestore(t *testing.T) {
	s, durable, _ := newTestStore(t, &backend{token: "tok", user: "maria"})
	durable.Set(store.KeyToken, "stale")

	var expired int32
	s.SetExpiredHandler(func() { atomic.AddInt32(&expired, 1) })

	s.Restore(context.Background())
	assert.Equal(t, int32(0), atomic.LoadInt32(&expired),
		"a dead persisted token settles silently in Unauthenticated")
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
}

func TestExpiry_SilentAfterLogout(t *testing.T) {
	b := &backend{token: "tok", user: "maria"}
	srv := httptest.NewServer(b.handler())
	defer srv.Close()

	client := api.NewClient(srv.URL)
	s := NewStore(client, store.NewMemoryScope(), store.NewMemoryScope())
	var expired int32
	s.SetExpiredHandler(func() { atomic.AddInt32(&expired, 1) })

	require.True(t, s.Login(context.Background(), "maria", "s3cret", false).OK)
	s.Logout()

	// A straggler request after logout carries no token and gets a 401.
	client.Me(context.Background())
	assert.Equal(t, int32(0), atomic.LoadInt32(&expired))
	assert.Equal(t, StateUnauthenticated, s.State())
}

// =============================================================================
// PRIVILEGE SYNC TESTS
// =============================================================================

func TestLogin_SuperuserFiresCatalogSync(t *testing.T) {
	b := &backend{token: "tok", user: "root", superuser: true}
	s, _, _ := newTestStore(t, b)

	require.True(t, s.Login(context.Background(), "root", "s3cret", false).OK)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&b.syncCalls) == 1
	}, 2*time.Second, 10*time.Millisecond, "superuser login should fire one catalog sync")
}

func TestLogin_RegularUserSkipsCatalogSync(t *testing.T) {
	b := &backend{token: "tok", user: "maria"}
	s, _, _ := newTestStore(t, b)

	require.True(t, s.Login(context.Background(), "maria", "s3cret", false).OK)
	assert.Equal(t, int32(0), atomic.LoadInt32(&b.syncCalls))
}

func TestCatalogEntries_CoverCatalog(t *testing.T) {
	entries := catalogEntries()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.NotEmpty(t, e.Path)
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Module)
	}
}
