package commands

import (
	"fmt"
	"strings"

	"todo/internal/task"
)

// ResolveTaskRefs maps references to task ids against the full collection.
// Every reference must resolve before any id is returned, so a bad
// reference leaves the collection untouched. Repeated tasks are returned once.
func ResolveTaskRefs(tasks []task.Task, refs []TaskRef) ([]string, error) {
	ids := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		id, err := resolveTaskRef(tasks, ref)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func resolveTaskRef(tasks []task.Task, ref TaskRef) (string, error) {
	if ref.IsNum() {
		inRange := ref.Num >= 1 && ref.Num <= len(tasks)
		// A long enough digit run may also be an id prefix printed by list --ids.
		if len(ref.Raw) >= MinIDPrefix {
			id, err := matchIDPrefix(tasks, ref.Raw, ref.Raw)
			if err != nil {
				return "", err
			}
			if id != "" {
				if inRange && tasks[ref.Num-1].ID != id {
					return "", fmt.Errorf("ambiguous task reference: %s", ref.Raw)
				}
				return id, nil
			}
		}
		if !inRange {
			return "", fmt.Errorf("task number out of range: %d", ref.Num)
		}
		return tasks[ref.Num-1].ID, nil
	}

	id, err := matchIDPrefix(tasks, ref.ID, ref.Raw)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("task not found: %s", ref.Raw)
	}
	return id, nil
}

// matchIDPrefix returns the id equal to prefix, or the single id starting
// with it. It returns "" when nothing matches.
func matchIDPrefix(tasks []task.Task, prefix, raw string) (string, error) {
	prefix = strings.ToLower(prefix)
	var match string
	for _, t := range tasks {
		id := strings.ToLower(t.ID)
		if id == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous task reference: %s", raw)
			}
			match = t.ID
		}
	}
	return match, nil
}

// positions maps task ids to their 1-based position in tasks.
func positions(tasks []task.Task) map[string]int {
	pos := make(map[string]int, len(tasks))
	for i, t := range tasks {
		pos[t.ID] = i + 1
	}
	return pos
}
