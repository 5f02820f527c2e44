package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo/internal/task"
)

// Web handlers

// pageData is what the index template renders.
type pageData struct {
	Filter  string
	Tasks   []task.Task
	Warning string
}

func (s *Server) handleIndex(c *gin.Context) {
	f := task.FilterFromQuery(c.Request.URL.RawQuery)
	s.render(c, http.StatusOK, f, s.loadWarning())
}

func (s *Server) handleAdd(c *gin.Context) {
	f := task.ParseFilter(c.PostForm(task.QueryParam))

	s.mu.Lock()
	_, err := s.store.Add(c.PostForm("task"))
	s.mu.Unlock()

	s.finish(c, f, err)
}

func (s *Server) handleToggle(c *gin.Context) {
	f := task.ParseFilter(c.PostForm(task.QueryParam))

	s.mu.Lock()
	_, err := s.store.Toggle(c.Param("id"))
	s.mu.Unlock()

	s.finish(c, f, err)
}

func (s *Server) handleDelete(c *gin.Context) {
	f := task.ParseFilter(c.PostForm(task.QueryParam))

	s.mu.Lock()
	_, err := s.store.Delete(c.Param("id"))
	s.mu.Unlock()

	s.finish(c, f, err)
}

// finish redirects back to the filtered page, or renders it with a warning
// when the change could not be saved.
func (s *Server) finish(c *gin.Context, f task.Filter, err error) {
	if err != nil {
		s.render(c, http.StatusInternalServerError, f, saveWarning(err))
		return
	}
	c.Redirect(http.StatusSeeOther, pageURL(f))
}

func (s *Server) render(c *gin.Context, status int, f task.Filter, warning string) {
	s.mu.Lock()
	view := s.store.Filtered(f)
	s.mu.Unlock()

	filter := ""
	if f != task.FilterAll {
		filter = f.String()
	}
	c.HTML(status, indexTemplate, pageData{
		Filter:  filter,
		Tasks:   view,
		Warning: warning,
	})
}

func (s *Server) loadWarning() string {
	s.mu.Lock()
	res := s.store.LoadResult()
	s.mu.Unlock()

	if !res.Discarded() {
		return ""
	}
	if res.BackupKey != "" {
		return "Stored tasks were unreadable and have been set aside as " + res.BackupKey + "."
	}
	return "Stored tasks were unreadable; starting with an empty list."
}

func saveWarning(err error) string {
	return "Changes may not survive a reload: " + err.Error()
}

func pageURL(f task.Filter) string {
	if q := f.Query(); q != "" {
		return "/?" + q
	}
	return "/"
}

// API handlers

type listResponse struct {
	Filter string      `json:"filter"`
	Tasks  []task.Task `json:"tasks"`
}

type addRequest struct {
	Task *string `json:"task" binding:"required"`
}

type taskResponse struct {
	Task    *task.Task `json:"task,omitempty"`
	Warning string     `json:"warning,omitempty"`
}

func (s *Server) handleAPIList(c *gin.Context) {
	f := task.FilterFromQuery(c.Request.URL.RawQuery)

	s.mu.Lock()
	view := s.store.Filtered(f)
	s.mu.Unlock()

	c.JSON(http.StatusOK, listResponse{Filter: f.String(), Tasks: view})
}

func (s *Server) handleAPIAdd(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	s.mu.Lock()
	t, err := s.store.Add(*req.Task)
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusInternalServerError, taskResponse{Task: &t, Warning: saveWarning(err)})
		return
	}
	c.JSON(http.StatusCreated, taskResponse{Task: &t})
}

func (s *Server) handleAPIToggle(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	found, err := s.store.Toggle(id)
	t, _ := s.store.Get(id)
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, taskResponse{Task: &t, Warning: saveWarning(err)})
		return
	}
	c.JSON(http.StatusOK, taskResponse{Task: &t})
}

func (s *Server) handleAPIDelete(c *gin.Context) {
	s.mu.Lock()
	found, err := s.store.Delete(c.Param("id"))
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, taskResponse{Warning: saveWarning(err)})
		return
	}
	c.Status(http.StatusNoContent)
}
