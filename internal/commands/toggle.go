package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/store"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip tasks between active and completed" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <ref...>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	st = store.Must(st)
	return mutate(cfg, st, args, out, errOut, st.Toggle)
}

// mutate resolves every reference, then applies op to each task in order.
// Write failures do not stop the remaining changes.
func mutate(cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer, op func(id string) (bool, error)) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ids, err := ResolveTaskRefs(st.Collection(), refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var saveErr error
	for _, id := range ids {
		if _, err := op(id); err != nil && saveErr == nil {
			saveErr = err
		}
	}
	if saveErr != nil {
		return reportSaveErr(errOut, saveErr)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
