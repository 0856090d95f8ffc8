package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-tenant-client/client"
	interrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/querycache"
	"github.com/jrsteele09/go-tenant-client/session"
	"github.com/jrsteele09/go-tenant-client/token"
)

func makeToken(exp time.Time) string {
	seg := func(v any) string {
		data, _ := json.Marshal(v)
		return base64.RawURLEncoding.EncodeToString(data)
	}
	header := seg(map[string]any{"alg": "HS256", "typ": "JWT"})
	return header + "." + seg(map[string]any{"exp": exp.Unix(), "sub": "a@b.com"}) + ".sig"
}

type backend struct {
	srv        *httptest.Server
	meHits     atomic.Int64
	logoutCode int
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{logoutCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": makeToken(time.Now().Add(time.Hour)),
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.meHits.Add(1)
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user_id":          1,
			"email":            "a@b.com",
			"role":             "admin",
			"is_owner":         true,
			"tenant_id":        10,
			"tenant_name":      "Acme",
			"tenant_subdomain": "acme",
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(b.logoutCode)
		if b.logoutCode >= 400 {
			w.Write([]byte(`{"detail":"revocation failed"}`))
		}
	})
	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

type fixture struct {
	backend    *backend
	tokens     *token.MemoryStore
	cache      *querycache.Cache
	controller *session.Controller
	redirects  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend: newBackend(t),
		tokens:  token.NewMemoryStore(),
		cache:   querycache.NewCache(),
	}
	c := client.New(f.backend.srv.URL, f.tokens)
	f.controller = session.NewController(
		session.Deps{Client: c, Tokens: f.tokens, Cache: f.cache},
		session.WithNavigate(func() { f.redirects++ }),
	)
	return f
}

func TestController_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores token then fetches user", func(t *testing.T) {
		f := newFixture(t)
		require.False(t, f.controller.IsAuthenticated())

		require.NoError(t, f.controller.Login(ctx, "a@b.com", "pw"))

		_, present := f.tokens.Get()
		require.True(t, present)
		require.EqualValues(t, 1, f.backend.meHits.Load())
		require.True(t, f.controller.IsAuthenticated())
	})

	t.Run("failure surfaces backend detail and leaves token untouched", func(t *testing.T) {
		f := newFixture(t)
		err := f.controller.Login(ctx, "a@b.com", "wrong")
		require.Error(t, err)
		require.Contains(t, err.Error(), "Incorrect email or password")

		_, present := f.tokens.Get()
		require.False(t, present)
		require.False(t, f.controller.IsAuthenticated())
		require.Equal(t, 0, f.redirects)
	})
}

func TestController_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("no token yields no user and no network call", func(t *testing.T) {
		f := newFixture(t)
		user, err := f.controller.CurrentUser(ctx)
		require.NoError(t, err)
		require.Nil(t, user)
		require.Zero(t, f.backend.meHits.Load())
	})

	t.Run("served from cache after login", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.controller.Login(ctx, "a@b.com", "pw"))

		user, err := f.controller.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "a@b.com", user.Email)
		require.Equal(t, "Acme", user.TenantName)
		require.EqualValues(t, 1, f.backend.meHits.Load())
	})

	t.Run("expired token redirects without a network call", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.Set(makeToken(time.Now().Add(-time.Hour))))

		_, err := f.controller.CurrentUser(ctx)
		require.Error(t, err)
		require.ErrorIs(t, err, interrors.ErrAuthInvalid)

		require.Zero(t, f.backend.meHits.Load())
		_, present := f.tokens.Get()
		require.False(t, present)
		require.Equal(t, 1, f.redirects)
		require.False(t, f.controller.IsAuthenticated())
	})

	t.Run("401 clears the session and redirects", func(t *testing.T) {
		f := newFixture(t)
		// Well-formed and unexpired, but the backend rejects it anyway.
		require.NoError(t, f.tokens.Set(makeToken(time.Now().Add(time.Hour))))

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()
		c := client.New(srv.URL, f.tokens)
		redirects := 0
		ctrl := session.NewController(
			session.Deps{Client: c, Tokens: f.tokens, Cache: f.cache},
			session.WithNavigate(func() { redirects++ }),
		)

		_, err := ctrl.CurrentUser(ctx)
		require.Error(t, err)
		require.ErrorIs(t, err, interrors.ErrAuthInvalid)

		_, present := f.tokens.Get()
		require.False(t, present)
		require.Equal(t, 1, redirects)
	})
}

func TestController_Logout(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, f *fixture) {
		require.NoError(t, f.controller.Login(ctx, "a@b.com", "pw"))
		require.True(t, f.controller.IsAuthenticated())
	}

	t.Run("backend success", func(t *testing.T) {
		f := newFixture(t)
		login(t, f)

		require.NoError(t, f.controller.Logout(ctx))

		_, present := f.tokens.Get()
		require.False(t, present)
		require.Zero(t, f.cache.Len())
		require.False(t, f.controller.IsAuthenticated())
	})

	t.Run("backend 500 still clears locally", func(t *testing.T) {
		f := newFixture(t)
		login(t, f)
		f.backend.logoutCode = http.StatusInternalServerError

		require.NoError(t, f.controller.Logout(ctx))

		_, present := f.tokens.Get()
		require.False(t, present)
		require.Zero(t, f.cache.Len())
		require.False(t, f.controller.IsAuthenticated())
	})

	t.Run("unreachable backend still clears locally", func(t *testing.T) {
		f := newFixture(t)
		login(t, f)
		f.backend.srv.Close()

		require.NoError(t, f.controller.Logout(ctx))

		_, present := f.tokens.Get()
		require.False(t, present)
		require.Zero(t, f.cache.Len())
	})

	t.Run("logout without a token skips the notification", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.controller.Logout(ctx))
		require.Zero(t, f.cache.Len())
	})
}
