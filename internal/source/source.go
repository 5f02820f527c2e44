// Package source defines the read-only interface the import command pulls
// remote tasks through. Commands never import a remote SDK directly.
package source

import (
	"context"
	"errors"
)

// PageSize is the number of tasks per page returned by ListOpenTasks.
const PageSize = 100

var (
	// ErrNotFound is returned when a list name matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")
)

// Task is an open task on the remote side.
type Task struct {
	ID    string
	Title string
}

// TaskList is a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// Source reads task lists from a remote task service.
type Source interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous (possibly wrapped).
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns one page of open tasks in API order.
	// page is 1-based. Returns an empty slice past the last page.
	ListOpenTasks(ctx context.Context, listID string, page int) ([]Task, error)
}

// AllOpenTasks reads every page of open tasks for a list.
func AllOpenTasks(ctx context.Context, src Source, listID string) ([]Task, error) {
	var all []Task
	for page := 1; ; page++ {
		tasks, err := src.ListOpenTasks(ctx, listID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
		if len(tasks) < PageSize {
			return all, nil
		}
	}
}
