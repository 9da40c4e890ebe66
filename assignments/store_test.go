package assignments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-go/assignments"
	"github.com/studyhub-app/studyhub-go/keyval/storefake"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, handler http.HandlerFunc) *assignments.Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return assignments.NewStore(rest.New(srv.URL, 5*time.Second, storefake.New()))
}

func TestAssignAppends(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[{"_id":"a1","status":"assigned"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/assignments/assign":
			var input assignments.AssignInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			require.Equal(t, "p1", input.ProjectID)
			require.Equal(t, "u2", input.StudentID)
			w.Write([]byte(`{"_id":"a2","projectId":"p1","studentId":"u2","status":"assigned"}`))
		}
	})

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	created, err := store.Assign(context.Background(), assignments.AssignInput{ProjectID: "p1", StudentID: "u2"})
	require.NoError(t, err)
	require.Equal(t, "a2", created.ID)

	items := store.Items()
	require.Len(t, items, 2)
	require.Equal(t, "a2", items[1].ID)
}

func TestFetchByProjectKeepsMainCollection(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assignments":
			w.Write([]byte(`[{"_id":"a1"},{"_id":"a2"}]`))
		case "/assignments/project/p1":
			w.Write([]byte(`[{"_id":"a2"}]`))
		}
	})

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	projectItems, err := store.FetchByProject(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, projectItems, 1)

	require.Len(t, store.Items(), 2)
	require.Len(t, store.ProjectAssignments(), 1)
	require.Equal(t, "a2", store.ProjectAssignments()[0].ID)
}

func TestUpdateStatusFailureRecordsMessage(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"_id":"a1","status":"assigned"}]`))
		case http.MethodPatch:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Invalid transition"}`))
		}
	})

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	_, err = store.UpdateStatus(context.Background(), "a1", "bogus")
	require.Error(t, err)
	require.Equal(t, state.StatusFailed, store.Status())
	require.Equal(t, "Invalid transition", store.LastError())
	require.Equal(t, "assigned", store.Items()[0].Status)
}
