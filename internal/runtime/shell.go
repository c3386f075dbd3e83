// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Default shell configuration, matching the traditional sh invocation:
// -c takes the command string, -u makes undefined shell variables fatal.
const DefaultShell = "sh"

// DefaultShellArgs are the arguments passed before the command string when
// none are configured.
var DefaultShellArgs = []string{"-cu"}

type (
	// Shell dispatches a single command string to an interpreter. An
	// implementation reports the command's exit status; a nonzero status
	// is not an error at this level, callers decide whether it is fatal.
	Shell interface {
		// Run executes command with the given working directory and
		// environment, streaming output to the provided writers. It
		// returns the exit status, or an error when the command could not
		// be started or the context was canceled.
		Run(ctx context.Context, command string, io ShellIO) (int, error)
		// Capture executes command and returns its standard output and
		// standard error along with the exit status.
		Capture(ctx context.Context, command string, dir string, env []string) (stdout, stderr string, status int, err error)
	}

	// ShellIO carries the execution context of a single command.
	ShellIO struct {
		Dir    string
		Env    []string
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// NativeShell spawns the configured system shell as a child process
	// for every command.
	NativeShell struct {
		// Shell is the interpreter executable.
		Shell string
		// Args are passed before the command string.
		Args []string
	}
)

// NewNativeShell creates a NativeShell for the given interpreter and
// arguments, falling back to the defaults when unset.
func NewNativeShell(shell string, args []string) *NativeShell {
	if shell == "" {
		shell = DefaultShell
	}
	if args == nil {
		args = DefaultShellArgs
	}
	return &NativeShell{Shell: shell, Args: args}
}

// Run implements Shell.
func (s *NativeShell) Run(ctx context.Context, command string, shio ShellIO) (int, error) {
	cmd := exec.CommandContext(ctx, s.Shell, append(append([]string{}, s.Args...), command)...)
	cmd.Dir = shio.Dir
	cmd.Env = shio.Env
	cmd.Stdin = shio.Stdin
	cmd.Stdout = shio.Stdout
	cmd.Stderr = shio.Stderr
	configureProcess(cmd)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		if ctx.Err() != nil {
			return 1, ctx.Err()
		}
		return 1, &SpawnError{Shell: s.Shell, Err: err}
	}
	return 0, nil
}

// Capture implements Shell.
func (s *NativeShell) Capture(ctx context.Context, command, dir string, env []string) (string, string, int, error) {
	var stdout, stderr bytes.Buffer
	status, err := s.Run(ctx, command, ShellIO{
		Dir:    dir,
		Env:    env,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return stdout.String(), stderr.String(), status, err
}
