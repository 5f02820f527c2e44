package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/persist"
)

// reportSaveErr prints a write failure as a warning and returns the exit
// code for it. The change is still in effect for this session.
func reportSaveErr(errOut io.Writer, err error) int {
	var se *persist.SaveError
	if errors.As(err, &se) {
		fmt.Fprintf(errOut, "warning: changes may not survive a reload: %v\n", se.Err)
	} else {
		fmt.Fprintf(errOut, "warning: changes may not survive a reload: %v\n", err)
	}
	return exitcode.StorageError
}

// printOK prints the acknowledgement line unless quiet.
func printOK(out io.Writer, quiet bool) {
	if !quiet {
		fmt.Fprintln(out, "ok")
	}
}
