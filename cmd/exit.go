package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfigError = 2
	ExitInterrupted = 130
)

// ErrInterrupted is returned by run when the session was cancelled before
// completing. It only selects the exit code; nothing failed.
var ErrInterrupted = errors.New("interrupted")

// ExitCode maps the error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInterrupted):
		return ExitInterrupted
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return ExitConfigError
	default:
		return ExitFailure
	}
}

// reportError prints err to stderr. Interruption has already been shown by
// the display and is not reported as an error.
func reportError(cmd *cobra.Command, err error) {
	if errors.Is(err, ErrInterrupted) {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
