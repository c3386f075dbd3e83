// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// VirtualShell executes commands with the embedded POSIX interpreter
	// instead of spawning a system shell. It is always available,
	// behaves identically across platforms, and validates command syntax
	// before running anything.
	VirtualShell struct{}
)

// NewVirtualShell creates a VirtualShell.
func NewVirtualShell() *VirtualShell {
	return &VirtualShell{}
}

// Run implements Shell.
func (s *VirtualShell) Run(ctx context.Context, command string, shio ShellIO) (int, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return 1, &SpawnError{Shell: "virtual", Err: fmt.Errorf("syntax error: %w", err)}
	}

	runner, err := interp.New(
		interp.Dir(shio.Dir),
		interp.Env(expand.ListEnviron(shio.Env...)),
		interp.StdIO(shio.Stdin, shio.Stdout, shio.Stderr),
	)
	if err != nil {
		return 1, &SpawnError{Shell: "virtual", Err: err}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return int(exitStatus), nil
		}
		if ctx.Err() != nil {
			return 1, ctx.Err()
		}
		return 1, &SpawnError{Shell: "virtual", Err: err}
	}
	return 0, nil
}

// Capture implements Shell.
func (s *VirtualShell) Capture(ctx context.Context, command, dir string, env []string) (string, string, int, error) {
	var stdout, stderr bytes.Buffer
	status, err := s.Run(ctx, command, ShellIO{
		Dir:    dir,
		Env:    env,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return stdout.String(), stderr.String(), status, err
}
