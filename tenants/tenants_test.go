package tenants_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/querycache"
	"github.com/jrsteele09/go-tenant-client/tenants"
	"github.com/jrsteele09/go-tenant-client/token"
)

type backend struct {
	srv          *httptest.Server
	settingsHits atomic.Int64
	usersHits    atomic.Int64
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tenants/settings", func(w http.ResponseWriter, r *http.Request) {
		b.settingsHits.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"id":           1,
			"display_name": "Acme Corp",
			"created_at":   time.Now().UTC(),
			"updated_at":   time.Now().UTC(),
		})
	})
	mux.HandleFunc("PATCH /tenants/settings", func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		require.Contains(t, patch, "display_name")
		require.NotContains(t, patch, "logo_url")
		json.NewEncoder(w).Encode(map[string]any{
			"id":           1,
			"display_name": patch["display_name"],
			"created_at":   time.Now().UTC(),
			"updated_at":   time.Now().UTC(),
		})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		b.usersHits.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{
				"id": 1, "email": "a@b.com", "role": "admin",
				"is_owner": true, "is_active": true,
				"created_at": time.Now().UTC(), "updated_at": time.Now().UTC(),
			}},
			"total": 1,
		})
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 2, "email": "new@b.com", "role": "member",
			"is_owner": false, "is_active": true,
			"created_at": time.Now().UTC(), "updated_at": time.Now().UTC(),
		})
	})
	mux.HandleFunc("DELETE /users/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func TestSettingsService_UpdateInvalidation(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)
	cache := querycache.NewCache()
	c := client.New(b.srv.URL, token.NewMemoryStore())
	svc := tenants.NewSettingsService(c, cache)

	// Prime both the settings entry and a current-user entry.
	_, err := svc.Get(ctx)
	require.NoError(t, err)
	cache.Set(querycache.KeyCurrentUser, "cached-user", time.Minute)

	updated, err := svc.Update(ctx, tenants.SettingsPatch{DisplayName: utils.Ptr("New Name")})
	require.NoError(t, err)
	require.Equal(t, "New Name", utils.Value(updated.DisplayName))

	// The display name flows into the session view, so the current-user
	// entry must be invalidated alongside the settings entry.
	_, ok := cache.Get(querycache.KeyCurrentUser)
	require.False(t, ok)
	_, ok = cache.Get(querycache.KeyTenantSettings)
	require.False(t, ok)

	_, err = svc.Get(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, b.settingsHits.Load())
}

func TestUsersService(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)
	cache := querycache.NewCache()
	c := client.New(b.srv.URL, token.NewMemoryStore())
	svc := tenants.NewUsersService(c, cache)

	t.Run("list is cached within the window", func(t *testing.T) {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, list.Total)

		_, err = svc.List(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, b.usersHits.Load())
	})

	t.Run("create invalidates the list", func(t *testing.T) {
		created, err := svc.Create(ctx, tenants.CreateUserPayload{
			Email: "new@b.com", Password: "pw", Role: "member",
		})
		require.NoError(t, err)
		require.Equal(t, "new@b.com", created.Email)

		_, err = svc.List(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, b.usersHits.Load())
	})

	t.Run("delete invalidates the list", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, 2))
		_, err := svc.List(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 3, b.usersHits.Load())
	})
}
