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
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	printID bool
}

// SetPrintID makes the command print the new task's id instead of "ok"
// (for testing).
func (c *AddCmd) SetPrintID(v bool) {
	c.printID = v
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "todo add [--id] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.printID, "id", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	st = store.Must(st)

	// Text is stored as given, empty included.
	text := strings.Join(args, " ")

	t, err := st.Add(text)
	if err != nil {
		return reportSaveErr(errOut, err)
	}

	if c.printID {
		fmt.Fprintln(out, t.ID)
		return exitcode.Success
	}
	if !cfg.Quiet {
		output.FormatTask(out, 1, t)
	}
	return exitcode.Success
}
