package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/source"
	"todo/internal/store"
)

func init() {
	Register(&RemotesCmd{})
}

// RemotesCmd prints the Google Tasks lists available to import.
type RemotesCmd struct {
	// NewSource opens the remote source. Nil means Google Tasks.
	NewSource SourceFactory
}

func (c *RemotesCmd) Name() string      { return "remotes" }
func (c *RemotesCmd) Aliases() []string { return nil }
func (c *RemotesCmd) Synopsis() string  { return "Print Google Tasks lists available to import" }
func (c *RemotesCmd) Usage() string     { return "todo remotes [common flags]" }
func (c *RemotesCmd) NeedsStore() bool  { return false }

func (c *RemotesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemotesCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	src, code, ok := openSource(ctx, cfg, c.NewSource, errOut)
	if !ok {
		return code
	}

	lists, err := src.ListLists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	for _, list := range lists {
		fmt.Fprintln(out, remoteListName(list))
	}
	return exitcode.Success
}

// remoteListName formats a list name, marking the default list.
func remoteListName(list source.TaskList) string {
	title := list.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	if list.IsDefault {
		title += " [default]"
	}
	return title
}
