package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/source"
	"todo/internal/store"
)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd copies open tasks from a Google Tasks list into the local list.
// It is a one-shot copy: nothing is written back to the remote side.
type ImportCmd struct {
	// NewSource opens the remote source. Nil means Google Tasks.
	NewSource SourceFactory

	listName   string
	duplicates bool
}

// SetListName sets the --list value (for testing).
func (c *ImportCmd) SetListName(name string) {
	c.listName = name
}

// SetDuplicates sets the --duplicates flag (for testing).
func (c *ImportCmd) SetDuplicates(v bool) {
	c.duplicates = v
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Import open tasks from Google Tasks" }
func (c *ImportCmd) Usage() string     { return "todo import [--list <list-name>] [--duplicates]" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.duplicates, "duplicates", false, "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	st = store.Must(st)

	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	src, code, ok := openSource(ctx, cfg, c.NewSource, errOut)
	if !ok {
		return code
	}

	list, code, ok := resolveRemoteList(ctx, src, c.listName, errOut)
	if !ok {
		return code
	}

	remote, err := source.AllOpenTasks(ctx, src, list.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	existing := make(map[string]bool)
	if !c.duplicates {
		for _, t := range st.Collection() {
			existing[t.Text] = true
		}
	}

	// Adding prepends, so walk backwards to keep the remote order on top.
	var imported, skipped int
	var saveErr error
	for i := len(remote) - 1; i >= 0; i-- {
		title := remote[i].Title
		if !c.duplicates && existing[title] {
			skipped++
			continue
		}
		existing[title] = true
		if _, err := st.Add(title); err != nil && saveErr == nil {
			saveErr = err
		}
		imported++
	}

	cfg.Log().Debug("import finished",
		"list", list.Title, "imported", imported, "skipped", skipped)

	if saveErr != nil {
		return reportSaveErr(errOut, saveErr)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d, skipped %d\n", imported, skipped)
	}
	return exitcode.Success
}
