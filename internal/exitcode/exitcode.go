// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference).
	UserError = 1

	// AuthError indicates an auth/config error for the Google Tasks import.
	AuthError = 2

	// BackendError indicates a network failure: the remote API during
	// import, or the listen address for serve.
	BackendError = 3

	// StorageError indicates the local store could not be opened or a
	// change could not be written.
	StorageError = 4
)
