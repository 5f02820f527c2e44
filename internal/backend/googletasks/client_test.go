package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/source"
)

// fakeAPI serves the subset of the Tasks API the client uses. The default
// list's real id is "real-default".
type fakeAPI struct {
	lists []map[string]string
	tasks map[string][]map[string]string // list id -> tasks
	// status, when set, is returned for every request.
	status int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"fake"}}`, f.status)
		return
	}
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, "/users/@me/lists/@default"):
		writeJSON(w, map[string]string{"id": "real-default", "title": "My Tasks"})
	case strings.HasSuffix(path, "/users/@me/lists"):
		writeJSON(w, map[string]any{"items": f.lists})
	case strings.HasSuffix(path, "/tasks") && strings.Contains(path, "/lists/"):
		listID := strings.TrimSuffix(path[strings.Index(path, "/lists/")+len("/lists/"):], "/tasks")
		items := f.tasks[listID]
		// One task per page so paging is exercised.
		page := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			fmt.Sscanf(tok, "p%d", &page)
		}
		resp := map[string]any{}
		if page < len(items) {
			resp["items"] = items[page : page+1]
		}
		if page+1 < len(items) {
			resp["nextPageToken"] = fmt.Sprintf("p%d", page+1)
		}
		writeJSON(w, resp)
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	return c
}

func testAPI() *fakeAPI {
	return &fakeAPI{
		lists: []map[string]string{
			{"id": "real-default", "title": "My Tasks"},
			{"id": "shop", "title": "Shopping"},
			{"id": "w1", "title": "Work"},
			{"id": "w2", "title": " work "},
		},
		tasks: map[string][]map[string]string{
			"shop": {
				{"id": "s1", "title": "bread"},
				{"id": "s2", "title": "butter"},
			},
		},
	}
}

func TestClient_DefaultList(t *testing.T) {
	c := newTestClient(t, testAPI())

	list, err := c.DefaultList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, source.TaskList{ID: DefaultListID, Title: "My Tasks", IsDefault: true}, list)
}

func TestClient_ListLists(t *testing.T) {
	c := newTestClient(t, testAPI())

	lists, err := c.ListLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 4)
	assert.Equal(t, source.TaskList{ID: DefaultListID, Title: "My Tasks", IsDefault: true}, lists[0])
	assert.Equal(t, source.TaskList{ID: "shop", Title: "Shopping"}, lists[1])
}

func TestClient_ResolveList(t *testing.T) {
	c := newTestClient(t, testAPI())
	ctx := context.Background()

	list, err := c.ResolveList(ctx, " shopping ")
	require.NoError(t, err)
	assert.Equal(t, "shop", list.ID)

	_, err = c.ResolveList(ctx, "Work")
	assert.ErrorIs(t, err, source.ErrAmbiguous)

	_, err = c.ResolveList(ctx, "Nope")
	assert.ErrorIs(t, err, source.ErrNotFound)
}

func TestClient_ListOpenTasks(t *testing.T) {
	c := newTestClient(t, testAPI())
	ctx := context.Background()

	first, err := c.ListOpenTasks(ctx, "shop", 1)
	require.NoError(t, err)
	assert.Equal(t, []source.Task{{ID: "s1", Title: "bread"}}, first)

	second, err := c.ListOpenTasks(ctx, "shop", 2)
	require.NoError(t, err)
	assert.Equal(t, []source.Task{{ID: "s2", Title: "butter"}}, second)

	past, err := c.ListOpenTasks(ctx, "shop", 3)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusNotFound, func(t *testing.T, err error) { assert.ErrorIs(t, err, source.ErrNotFound) }},
		{http.StatusUnauthorized, func(t *testing.T, err error) { assert.Contains(t, err.Error(), "run: todo login") }},
		{http.StatusForbidden, func(t *testing.T, err error) { assert.Contains(t, err.Error(), "run: todo login") }},
	}

	for _, tt := range tests {
		api := testAPI()
		api.status = tt.status
		c := newTestClient(t, api)

		_, err := c.ListOpenTasks(context.Background(), "shop", 1)
		require.Error(t, err, "status %d", tt.status)
		tt.check(t, err)
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError(nil))
	assert.EqualError(t, wrapError(errors.New("context deadline exceeded")), "request timed out")
	other := errors.New("boom")
	assert.Equal(t, other, wrapError(other))
}
