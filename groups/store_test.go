package groups_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-go/groups"
	"github.com/studyhub-app/studyhub-go/keyval/storefake"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, handler http.HandlerFunc) *groups.Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return groups.NewStore(rest.New(srv.URL, 5*time.Second, storefake.New()))
}

func TestDeleteAbsentGroupIsNoop(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"_id":"g1","name":"Alpha"}]`))
		case http.MethodDelete:
			w.Write([]byte(`{"message":"deleted"}`))
		}
	})

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	// g9 is not in the collection; the server call succeeds and the
	// identifier filter removes nothing.
	require.NoError(t, store.Delete(context.Background(), "g9"))
	require.Len(t, store.Items(), 1)
	require.Equal(t, state.StatusSucceeded, store.Status())
	require.Empty(t, store.LastError())
}

func TestAddMemberFollowsUpdateContract(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[{"_id":"g1","name":"Alpha","members":[]}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/groups/g1/members":
			var member groups.MemberInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&member))
			require.Equal(t, "u2", member.UserID)
			require.Equal(t, "member", member.Role)
			w.Write([]byte(`{"_id":"g1","name":"Alpha","members":[{"userId":"u2","role":"member"}]}`))
		}
	})

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	updated, err := store.AddMember(context.Background(), "g1", groups.MemberInput{UserID: "u2", Role: "member"})
	require.NoError(t, err)
	require.Len(t, updated.Members, 1)
	require.Equal(t, "u2", updated.Members[0].User.ID)

	items := store.Items()
	require.Len(t, items, 1)
	require.Len(t, items[0].Members, 1)
}

func TestRemoveMember(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/groups/g1":
			w.Write([]byte(`{"_id":"g1","name":"Alpha","members":[{"userId":"u2","role":"member"}]}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/groups/g1/members/u2":
			w.Write([]byte(`{"_id":"g1","name":"Alpha","members":[]}`))
		}
	})

	_, err := store.FetchByID(context.Background(), "g1")
	require.NoError(t, err)

	updated, err := store.RemoveMember(context.Background(), "g1", "u2")
	require.NoError(t, err)
	require.Empty(t, updated.Members)

	// The current slot refers to g1, so it is refreshed.
	current := store.Current()
	require.NotNil(t, current)
	require.Empty(t, current.Members)
}

func TestEmbeddedProjectReference(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"g1","name":"Alpha","projectId":{"_id":"p1","title":"Compilers"}}]`))
	})

	items, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "p1", items[0].Project.ID)
	require.Equal(t, "Compilers", items[0].Project.Doc["title"])
}
