// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todo/internal/source"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeSource is an in-memory implementation of source.Source for testing.
type FakeSource struct {
	mu    sync.RWMutex
	lists []source.TaskList
	tasks map[string][]source.Task // listID -> open tasks

	// Error injection for testing
	DefaultListErr   error
	ListListsErr     error
	ResolveListErr   error
	ListOpenTasksErr map[string]error // listID -> error

	// Calls counts ListOpenTasks calls per list.
	Calls map[string]int
}

// NewFakeSource creates a new FakeSource with a default list.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		lists: []source.TaskList{
			{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		},
		tasks:            map[string][]source.Task{DefaultListID: nil},
		ListOpenTasksErr: make(map[string]error),
		Calls:            make(map[string]int),
	}
}

// AddList adds a list to the fake source.
func (f *FakeSource) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, source.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask appends an open task to a list.
func (f *FakeSource) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], source.Task{ID: taskID, Title: title})
}

// AddTasks appends n tasks titled "<prefix> 1" .. "<prefix> n".
func (f *FakeSource) AddTasks(listID, prefix string, n int) {
	for i := 1; i <= n; i++ {
		f.AddTask(listID, fmt.Sprintf("%s-%d", listID, i), fmt.Sprintf("%s %d", prefix, i))
	}
}

// DefaultList implements source.Source.
func (f *FakeSource) DefaultList(ctx context.Context) (source.TaskList, error) {
	if f.DefaultListErr != nil {
		return source.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return source.TaskList{}, fmt.Errorf("default list: %w", source.ErrNotFound)
}

// ListLists implements source.Source.
func (f *FakeSource) ListLists(ctx context.Context) ([]source.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]source.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements source.Source.
func (f *FakeSource) ResolveList(ctx context.Context, name string) (source.TaskList, error) {
	if f.ResolveListErr != nil {
		return source.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []source.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return source.TaskList{}, source.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return source.TaskList{}, source.ErrAmbiguous
	}
}

// ListOpenTasks implements source.Source.
func (f *FakeSource) ListOpenTasks(ctx context.Context, listID string, page int) ([]source.Task, error) {
	if err, ok := f.ListOpenTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[listID]++

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, source.ErrNotFound
	}

	start := (page - 1) * source.PageSize
	if start >= len(tasks) {
		return nil, nil
	}
	end := start + source.PageSize
	if end > len(tasks) {
		end = len(tasks)
	}
	out := make([]source.Task, end-start)
	copy(out, tasks[start:end])
	return out, nil
}
