package milestones_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-go/keyval/storefake"
	"github.com/studyhub-app/studyhub-go/milestones"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, handler http.HandlerFunc) *milestones.Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return milestones.NewStore(rest.New(srv.URL, 5*time.Second, storefake.New()))
}

func TestFetchAllFilteredByProject(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "p1", r.URL.Query().Get("projectId"))
		w.Write([]byte(`[{"_id":"m1","title":"Design review","status":"pending"}]`))
	})

	items, err := store.FetchAll(context.Background(), map[string]string{"projectId": "p1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Design review", items[0].Title)
}

func TestUpdateStatusInPlace(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[{"_id":"m1","title":"Design review","status":"pending"},{"_id":"m2","title":"Demo","status":"pending"}]`))
		case r.Method == http.MethodPatch:
			require.Equal(t, "/milestones/m2/status", r.URL.Path)
			w.Write([]byte(`{"_id":"m2","title":"Demo","status":"completed"}`))
		}
	})

	_, err := store.FetchAll(context.Background(), nil)
	require.NoError(t, err)

	_, err = store.UpdateStatus(context.Background(), "m2", "completed")
	require.NoError(t, err)

	items := store.Items()
	require.Equal(t, "pending", items[0].Status)
	require.Equal(t, "completed", items[1].Status)
	require.Equal(t, state.StatusSucceeded, store.Status())
}

func TestDeleteFailureKeepsItems(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"_id":"m1","title":"Design review"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"Milestone has open tasks"}`))
		}
	})

	_, err := store.FetchAll(context.Background(), nil)
	require.NoError(t, err)

	err = store.Delete(context.Background(), "m1")
	require.Error(t, err)
	require.Len(t, store.Items(), 1)
	require.Equal(t, state.StatusFailed, store.Status())
	require.Equal(t, "Milestone has open tasks", store.LastError())
}
