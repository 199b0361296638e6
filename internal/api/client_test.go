// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/token/", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"tok-123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, err := c.Login(context.Background(), "maria", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Usuário ou senha inválidos."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "maria", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "Usuário ou senha inválidos.")
}

// =============================================================================
// UNAUTHORIZED OBSERVER TESTS
// =============================================================================

func TestClient_UnauthorizedObserver_FiresOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expirado"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("stale")

	var fired int32
	c.SetUnauthorizedHandler(func() { atomic.AddInt32(&fired, 1) })
	c.Rearm()

	for i := 0; i < 3; i++ {
		_, err := c.Me(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired),
		"observer must fire exactly once per arm cycle")

	// A new login re-arms the observer.
	c.Rearm()
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestClient_UnauthorizedObserver_DisarmedUntilRearm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Usuário ou senha inválidos."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	var fired int32
	c.SetUnauthorizedHandler(func() { atomic.AddInt32(&fired, 1) })

	// A 401 on the credential exchange itself is a call failure, not an
	// expiry: nothing has been validated yet.
	_, err := c.Login(context.Background(), "maria", "wrong")
	require.Error(t, err)
	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired),
		"observer must stay silent before a credential validates")

	c.Rearm()
	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// Deliberate logout silences late responses.
	c.Rearm()
	c.Disarm()
	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestClient_Me(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": 7,
			"username": "maria",
			"is_superuser": false,
			"acesso_agendamento": true,
			"force_password_change": true,
			"allowed_routes": ["/pacientes", "/agenda/marcar"]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok-123")

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "maria", u.Username)
	assert.False(t, u.IsSuperuser)
	assert.True(t, u.AcessoAgendamento)
	assert.True(t, u.ForcePasswordChange)
	assert.Equal(t, []string{"/pacientes", "/agenda/marcar"}, u.AllowedRoutes)
}

// =============================================================================
// RETRY TESTS
// =============================================================================

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":1,"username":"admin","is_superuser":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok")

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.True(t, u.IsSuperuser)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Unavailable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// =============================================================================
// RESOURCE FETCH TESTS
// =============================================================================

func TestClient_Fetch_PagedAndBare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pacientes/":
			w.Write([]byte(`{"results":[{"nome":"Ana"},{"nome":"Bia"}]}`))
		case "/especialidades/":
			w.Write([]byte(`[{"nome":"Cardiologia"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok")

	rows, err := c.Fetch(context.Background(), "/pacientes/")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = c.Fetch(context.Background(), "/especialidades/")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Cardiologia", rows[0]["nome"])
}
