package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/source"
)

// SourceFactory creates the remote source the import commands read from.
type SourceFactory func(ctx context.Context, cfg *config.Config) (source.Source, error)

// AuthError reports missing or unusable credentials for a remote source.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// GoogleTasksSource checks for credentials in the config directory and
// opens a Google Tasks client.
func GoogleTasksSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	if !cfg.HasOAuthClient() {
		return nil, &AuthError{Msg: fmt.Sprintf("oauth_client.json not found in %s", cfg.Dir)}
	}
	if !cfg.HasToken() {
		return nil, &AuthError{Msg: "not logged in (run: todo login)"}
	}
	src, err := googletasks.New(ctx, cfg)
	if err != nil {
		return nil, &AuthError{Msg: err.Error()}
	}
	return src, nil
}

// openSource runs factory and prints a failure. ok is false on failure, with
// code holding the exit code.
func openSource(ctx context.Context, cfg *config.Config, factory SourceFactory, errOut io.Writer) (src source.Source, code int, ok bool) {
	if factory == nil {
		factory = GoogleTasksSource
	}
	src, err := factory(ctx, cfg)
	if err != nil {
		var ae *AuthError
		if errors.As(err, &ae) {
			fmt.Fprintf(errOut, "error: %s\n", ae.Msg)
			return nil, exitcode.AuthError, false
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return nil, exitcode.BackendError, false
	}
	return src, exitcode.Success, true
}

// resolveRemoteList resolves a remote list by name, or the default list when
// name is empty, printing failures the same way for every command.
func resolveRemoteList(ctx context.Context, src source.Source, name string, errOut io.Writer) (source.TaskList, int, bool) {
	var (
		list source.TaskList
		err  error
	)
	if name != "" {
		list, err = src.ResolveList(ctx, name)
	} else {
		list, err = src.DefaultList(ctx)
	}
	switch {
	case err == nil:
		return list, exitcode.Success, true
	case name != "" && errors.Is(err, source.ErrNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s\n", name)
		return list, exitcode.UserError, false
	case name != "" && errors.Is(err, source.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return list, exitcode.UserError, false
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return list, exitcode.BackendError, false
	}
}
