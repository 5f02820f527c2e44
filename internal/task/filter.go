package task

import (
	"net/url"
	"strings"
)

// QueryParam is the navigable-address parameter that selects a filter,
// as in "/?todos=active".
const QueryParam = "todos"

// Filter selects which tasks a view shows.
type Filter int

const (
	// FilterAll shows every task.
	FilterAll Filter = iota
	// FilterActive shows tasks that are not completed.
	FilterActive
	// FilterCompleted shows completed tasks.
	FilterCompleted
)

// String returns the query value for the filter. FilterAll is "all".
func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Query returns the query string that selects f, without the leading "?".
// FilterAll has no query.
func (f Filter) Query() string {
	if f == FilterAll {
		return ""
	}
	return url.Values{QueryParam: {f.String()}}.Encode()
}

// ParseFilter resolves a selector value. Only the exact values "active"
// and "completed" narrow the view; anything else, including "ACTIVE" or
// " active", selects all tasks.
func ParseFilter(s string) Filter {
	switch s {
	case "active":
		return FilterActive
	case "completed":
		return FilterCompleted
	default:
		return FilterAll
	}
}

// LookupFilter is the strict form of ParseFilter: it accepts only "all",
// "active" and "completed" and reports whether s was one of them.
func LookupFilter(s string) (Filter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return FilterAll, true
	case "active":
		return FilterActive, true
	case "completed":
		return FilterCompleted, true
	default:
		return FilterAll, false
	}
}

// FilterFromQuery resolves the filter from a raw query string such as
// "todos=active" or "?todos=completed". An absent or unparsable query
// selects all tasks.
func FilterFromQuery(rawQuery string) Filter {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return FilterAll
	}
	return ParseFilter(values.Get(QueryParam))
}

// Apply returns the subsequence of tasks selected by f, in order.
// It never modifies tasks and always returns a fresh slice.
func Apply(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Selector supplies the current filter from whatever navigation state the
// caller owns.
type Selector interface {
	Selector() Filter
}

// StaticSelector always selects the same filter.
type StaticSelector Filter

// Selector implements Selector.
func (s StaticSelector) Selector() Filter { return Filter(s) }

// QuerySelector reads the filter from a raw query string each time it is
// asked, so a changed query is never served from a stale value.
type QuerySelector struct {
	RawQuery func() string
}

// Selector implements Selector.
func (s QuerySelector) Selector() Filter {
	if s.RawQuery == nil {
		return FilterAll
	}
	return FilterFromQuery(s.RawQuery())
}

// View applies the selector's current filter to tasks.
func View(tasks []Task, sel Selector) []Task {
	if sel == nil {
		return Apply(tasks, FilterAll)
	}
	return Apply(tasks, sel.Selector())
}
