package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/store"
	"todo/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list [filter]`.
type ListCmd struct {
	filter  string
	showIDs bool
}

// SetFilter sets the --filter value (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.filter = f
}

// SetShowIDs sets the --ids flag (for testing).
func (c *ListCmd) SetShowIDs(v bool) {
	c.showIDs = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "todo list [--filter all|active|completed] [--ids] [?todos=<filter>]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.BoolVar(&c.showIDs, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	st = store.Must(st)

	sel, err := c.selector(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	all := st.Collection()
	view := task.View(all, sel)
	f := sel.Selector()

	if len(view) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if f != task.FilterAll {
		output.FormatHeader(out, f)
	}

	pos := positions(all)
	for _, t := range view {
		if c.showIDs {
			output.FormatTaskVerbose(out, pos[t.ID], t)
		} else {
			output.FormatTask(out, pos[t.ID], t)
		}
	}
	return exitcode.Success
}

// selector resolves the filter from the --filter flag or a positional
// argument. A positional that looks like an address query ("?todos=active",
// "todos=completed") is read the way the web view reads its URL; a bare
// word must name a filter.
func (c *ListCmd) selector(args []string) (task.Selector, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("too many arguments")
	}
	if len(args) == 1 && c.filter != "" {
		return nil, fmt.Errorf("cannot use both --filter and a filter argument")
	}

	raw := c.filter
	if len(args) == 1 {
		raw = args[0]
		if strings.HasPrefix(raw, "?") || strings.Contains(raw, "=") {
			return task.QuerySelector{RawQuery: func() string { return raw }}, nil
		}
	}

	f, known := task.LookupFilter(raw)
	if !known {
		return nil, fmt.Errorf("invalid filter: %s", raw)
	}
	return task.StaticSelector(f), nil
}
