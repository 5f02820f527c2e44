// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

const (
	// ListSeparator is the separator line around a list header.
	ListSeparator = "------------"

	// ShortIDLen is how many id characters FormatTaskVerbose prints.
	ShortIDLen = 8
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces,
// completion box, title). The number is the task's position in the full
// collection.
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(t), normalizeTitle(t.Text))
}

// FormatTaskVerbose is FormatTask followed by the short id.
func FormatTaskVerbose(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, checkbox(t), normalizeTitle(t.Text), ShortID(t.ID))
}

// FormatHeader formats a filter section header.
func FormatHeader(w io.Writer, f task.Filter) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, HeaderTitle(f))
	fmt.Fprintln(w, ListSeparator)
}

// HeaderTitle names the view for a filter, as the navigation links do.
func HeaderTitle(f task.Filter) string {
	switch f {
	case task.FilterActive:
		return "Active List"
	case task.FilterCompleted:
		return "Completed List"
	default:
		return "All List"
	}
}

// ShortID returns the leading characters of an id.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
