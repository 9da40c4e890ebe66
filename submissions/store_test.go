package submissions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-go/keyval/storefake"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
	"github.com/studyhub-app/studyhub-go/submissions"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, handler http.HandlerFunc) *submissions.Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return submissions.NewStore(rest.New(srv.URL, 5*time.Second, storefake.New()))
}

func TestCreateUploadsMultipartAndAppends(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "p1", r.FormValue("projectId"))
		require.Equal(t, "g1", r.FormValue("groupId"))
		require.Equal(t, "final report", r.FormValue("description"))
		require.Len(t, r.MultipartForm.File["files"], 2)

		w.Write([]byte(`{"_id":"s1","projectId":"p1","groupId":"g1","description":"final report","status":"submitted"}`))
	})

	created, err := store.Create(context.Background(), submissions.CreateInput{
		ProjectID:   "p1",
		GroupID:     "g1",
		Description: "final report",
		Files: []submissions.Upload{
			{Name: "report.pdf", Content: strings.NewReader("pdf")},
			{Name: "code.zip", Content: strings.NewReader("zip")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "s1", created.ID)

	items := store.Items()
	require.Len(t, items, 1)
	require.Equal(t, "s1", items[0].ID)
	require.Equal(t, state.StatusSucceeded, store.Status())
}

func TestGradeRefreshesMatchingCurrent(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/submissions/s1":
			w.Write([]byte(`{"_id":"s1","status":"submitted"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/submissions/s1/grade":
			w.Write([]byte(`{"_id":"s1","status":"approved","feedback":"Well done"}`))
		}
	})

	_, err := store.FetchByID(context.Background(), "s1")
	require.NoError(t, err)

	graded, err := store.Grade(context.Background(), "s1", submissions.GradeInput{Status: "approved", Feedback: "Well done"})
	require.NoError(t, err)
	require.Equal(t, "approved", graded.Status)

	current := store.Current()
	require.NotNil(t, current)
	require.Equal(t, "approved", current.Status)
	require.Equal(t, "Well done", current.Feedback)
}

func TestGradeDoesNotClobberDifferentCurrent(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/submissions/s1":
			w.Write([]byte(`{"_id":"s1","status":"submitted"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/submissions/s2/grade":
			w.Write([]byte(`{"_id":"s2","status":"approved"}`))
		}
	})

	_, err := store.FetchByID(context.Background(), "s1")
	require.NoError(t, err)

	_, err = store.Grade(context.Background(), "s2", submissions.GradeInput{Status: "approved"})
	require.NoError(t, err)

	current := store.Current()
	require.NotNil(t, current)
	require.Equal(t, "s1", current.ID)
	require.Equal(t, "submitted", current.Status)
}

func TestCreateFailureRecordsServerMessage(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"message":"Files too large"}`))
	})

	_, err := store.Create(context.Background(), submissions.CreateInput{
		ProjectID: "p1", GroupID: "g1",
		Files: []submissions.Upload{{Name: "huge.bin", Content: strings.NewReader("x")}},
	})
	require.Error(t, err)
	require.Equal(t, state.StatusFailed, store.Status())
	require.Equal(t, "Files too large", store.LastError())
	require.Empty(t, store.Items())
}
