// Package task defines the task record and the filtered views over a
// task collection.
package task

import "time"

// Task is a single to-do entry.
//
// Completed is the only field that changes after creation. The JSON field
// names are the persisted layout and must not change.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"task"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy of tasks that shares no backing array with it.
// A nil input yields an empty, non-nil slice.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
