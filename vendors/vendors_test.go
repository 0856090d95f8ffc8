package vendors_test

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
	"github.com/jrsteele09/go-tenant-client/token"
	"github.com/jrsteele09/go-tenant-client/vendors"
)

func newService(t *testing.T) (*vendors.Service, *atomic.Int64) {
	t.Helper()
	var listHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vendors", func(w http.ResponseWriter, r *http.Request) {
		listHits.Add(1)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Initech", "created_at": time.Now().UTC()},
		})
	})
	mux.HandleFunc("GET /vendors/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "Initech", "created_at": time.Now().UTC()})
	})
	mux.HandleFunc("POST /vendors", func(w http.ResponseWriter, r *http.Request) {
		var payload vendors.CreatePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload.Name == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"name is required"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 2, "name": payload.Name, "created_at": time.Now().UTC()})
	})
	mux.HandleFunc("PUT /vendors/1", func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		// Partial patch: absent fields must not be sent at all.
		require.NotContains(t, patch, "website")
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": patch["name"], "created_at": time.Now().UTC()})
	})
	mux.HandleFunc("DELETE /vendors/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, token.NewMemoryStore())
	return vendors.NewService(c, querycache.NewCache()), &listHits
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, listHits := newService(t)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Initech", list[0].Name)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, listHits.Load())
}

func TestService_Get(t *testing.T) {
	svc, _ := newService(t)
	v, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, v.ID)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates the vendor list", func(t *testing.T) {
		svc, listHits := newService(t)
		_, err := svc.List(ctx)
		require.NoError(t, err)

		created, err := svc.Create(ctx, vendors.CreatePayload{Name: "Globex"})
		require.NoError(t, err)
		require.Equal(t, "Globex", created.Name)

		_, err = svc.List(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, listHits.Load())
	})

	t.Run("surfaces backend detail", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Create(ctx, vendors.CreatePayload{})
		require.Error(t, err)
		require.EqualError(t, err, "name is required")
	})
}

func TestService_UpdateSendsPartialPatch(t *testing.T) {
	svc, _ := newService(t)
	v, err := svc.Update(context.Background(), 1, vendors.UpdatePayload{Name: utils.Ptr("Initrode")})
	require.NoError(t, err)
	require.Equal(t, "Initrode", v.Name)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, listHits := newService(t)

	_, err := svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, listHits.Load())
}
