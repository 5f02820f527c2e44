package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/kv"
	"todo/internal/persist"
	"todo/internal/store"
	"todo/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupServer returns a server over a fresh in-memory backend. Ids are
// "t1", "t2", ... in creation order.
func setupServer(t *testing.T) (*Server, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	n := 0
	st := store.New(persist.New(mem, "", nil),
		store.WithIDGenerator(func() string { n++; return fmt.Sprintf("t%d", n) }))
	return NewServer(st, nil), mem
}

func seed(t *testing.T, s *Server, texts ...string) {
	t.Helper()
	for _, text := range texts {
		_, err := s.store.Add(text)
		require.NoError(t, err)
	}
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestNewServer_NilStorePanics(t *testing.T) {
	assert.PanicsWithValue(t, store.ErrNoStore, func() { NewServer(nil, nil) })
}

func TestHandleIndex(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "buy milk", "walk dog")
	_, err := s.store.Toggle("t2")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		contains []string
		excludes []string
	}{
		{
			name:     "all",
			path:     "/",
			contains: []string{"buy milk", "walk dog", `href="/?todos=active"`, `href="/?todos=completed"`},
		},
		{
			name:     "active",
			path:     "/?todos=active",
			contains: []string{"buy milk", `name="todos" value="active"`},
			excludes: []string{"walk dog"},
		},
		{
			name:     "completed",
			path:     "/?todos=completed",
			contains: []string{"walk dog", "/tasks/t2/delete"},
			excludes: []string{"buy milk"},
		},
		{
			name:     "unknown value shows all",
			path:     "/?todos=bogus",
			contains: []string{"buy milk", "walk dog"},
		},
		{
			name:     "values are case sensitive",
			path:     "/?todos=ACTIVE",
			contains: []string{"buy milk", "walk dog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			for _, want := range tt.contains {
				assert.Contains(t, body, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, body, unwanted)
			}
		})
	}
}

func TestHandleIndex_DeleteOnlyForCompleted(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "buy milk")

	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), "/tasks/t1/delete")

	_, _ = s.store.Toggle("t1")
	w = serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), "/tasks/t1/delete")
	assert.Contains(t, w.Body.String(), "checked")
}

func TestHandleIndex_EscapesText(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "<script>alert(1)</script>")

	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestHandleIndex_LoadWarning(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(persist.DefaultKey, []byte("not json")))
	s := NewServer(store.New(persist.New(mem, "", nil)), nil)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "set aside as TodoData.corrupt")
}

func TestHandleFormMutations(t *testing.T) {
	s, mem := setupServer(t)

	w := serve(s, postForm("/tasks", url.Values{"task": {"buy milk"}, "todos": {"active"}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?todos=active", w.Header().Get("Location"))

	w = serve(s, postForm("/tasks/t1/toggle", url.Values{"todos": {""}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	got, _ := s.store.Get("t1")
	assert.True(t, got.Completed)

	w = serve(s, postForm("/tasks/t1/delete", url.Values{"todos": {"completed"}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?todos=completed", w.Header().Get("Location"))
	assert.Empty(t, s.store.Collection())

	// Every change was written through.
	assert.Empty(t, persist.New(mem, "", nil).Load().Tasks)
}

func TestHandleAdd_SaveFailure(t *testing.T) {
	s, mem := setupServer(t)
	mem.SetErr = errors.New("disk full")

	w := serve(s, postForm("/tasks", url.Values{"task": {"buy milk"}}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Changes may not survive a reload")
	assert.Contains(t, w.Body.String(), "buy milk")
}

func TestHandleAPIList(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "buy milk", "walk dog")
	_, _ = s.store.Toggle("t1")

	tests := []struct {
		query      string
		wantFilter string
		wantTexts  []string
	}{
		{"", "all", []string{"walk dog", "buy milk"}},
		{"?todos=active", "active", []string{"walk dog"}},
		{"?todos=completed", "completed", []string{"buy milk"}},
		{"?todos=Completed", "all", []string{"walk dog", "buy milk"}},
	}

	for _, tt := range tests {
		w := serve(s, httptest.NewRequest(http.MethodGet, "/api/tasks"+tt.query, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tt.wantFilter, resp.Filter)

		var texts []string
		for _, tk := range resp.Tasks {
			texts = append(texts, tk.Text)
		}
		assert.Equal(t, tt.wantTexts, texts, "query %q", tt.query)
	}
}

func TestHandleAPIList_Empty(t *testing.T) {
	s, _ := setupServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.JSONEq(t, `{"filter":"all","tasks":[]}`, w.Body.String())
}

func TestHandleAPIAdd(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"task":"buy milk"}`, http.StatusCreated},
		{"empty text allowed", `{"task":""}`, http.StatusCreated},
		{"missing field", `{}`, http.StatusBadRequest},
		{"invalid json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setupServer(t)
			req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := serve(s, req)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusCreated {
				assert.Empty(t, s.store.Collection())
				return
			}
			var resp taskResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Task)
			assert.Equal(t, "t1", resp.Task.ID)
			assert.False(t, resp.Task.Completed)
			assert.Empty(t, resp.Warning)
		})
	}
}

func TestHandleAPIAdd_SaveFailure(t *testing.T) {
	s, mem := setupServer(t)
	mem.SetErr = errors.New("disk full")

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString(`{"task":"buy milk"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Task)
	assert.Equal(t, "buy milk", resp.Task.Text)
	assert.Contains(t, resp.Warning, "disk full")
	assert.Len(t, s.store.Collection(), 1)
}

func TestHandleAPIToggle(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "buy milk")

	w := serve(s, httptest.NewRequest(http.MethodPost, "/api/tasks/t1/toggle", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Task)
	assert.True(t, resp.Task.Completed)

	w = serve(s, httptest.NewRequest(http.MethodPost, "/api/tasks/missing/toggle", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())
}

func TestHandleAPIDelete(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "buy milk", "walk dog")

	w := serve(s, httptest.NewRequest(http.MethodDelete, "/api/tasks/t1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []task.Task{mustGet(t, s, "t2")}, s.store.Collection())

	// Repeating the delete changes nothing.
	w = serve(s, httptest.NewRequest(http.MethodDelete, "/api/tasks/t1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, s.store.Collection(), 1)
}

func mustGet(t *testing.T, s *Server, id string) task.Task {
	t.Helper()
	tk, ok := s.store.Get(id)
	require.True(t, ok)
	return tk
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/", pageURL(task.FilterAll))
	assert.Equal(t, "/?todos=active", pageURL(task.FilterActive))
	assert.Equal(t, "/?todos=completed", pageURL(task.FilterCompleted))
}
