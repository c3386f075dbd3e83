// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gust-cli/pkg/justfile"
)

var echoStyle = lipgloss.NewStyle().Bold(true)

// Run resolves the requested recipes into an execution plan and runs
// it. Execution stops at the first failing recipe.
func (e *Engine) Run(ctx context.Context, requests []Request) error {
	plan, err := e.resolve(ctx, requests)
	if err != nil {
		return err
	}
	for _, invocation := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runInvocation(ctx, invocation); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runInvocation(ctx context.Context, invocation *Invocation) error {
	recipe := invocation.Recipe
	e.logger.Debug("running recipe", "recipe", recipe.Name.Lexeme, "arguments", invocation.Arguments)
	sc := &scope{bindings: invocation.Scope}
	if recipe.Shebang {
		return e.runShebang(ctx, recipe, sc)
	}
	return e.runLines(ctx, recipe, sc)
}

// runLines executes a linewise recipe body: each line is rendered,
// echoed, and dispatched to the shell in its own invocation.
func (e *Engine) runLines(ctx context.Context, recipe *justfile.Recipe, sc *scope) error {
	env, err := e.executionEnv(sc)
	if err != nil {
		return err
	}
	for _, line := range recipe.Body {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(line.Fragments) == 0 {
			continue
		}
		command, err := e.renderLine(ctx, line, sc)
		if err != nil {
			return err
		}
		if strings.TrimSpace(command) == "" {
			continue
		}
		quiet := line.Quiet || recipe.Quiet || e.opts.Quiet || e.justfile.Settings.Quiet
		if e.opts.DryRun || !quiet {
			e.echo(command)
		}
		if e.opts.DryRun {
			continue
		}
		status, err := e.shell.Run(ctx, command, ShellIO{
			Dir:    e.opts.WorkingDirectory,
			Env:    env,
			Stdin:  e.opts.Stdin,
			Stdout: e.opts.Stdout,
			Stderr: e.opts.Stderr,
		})
		if err != nil {
			return err
		}
		if status != 0 && !line.IgnoreError {
			return &LineError{Recipe: recipe.Name.Lexeme, ExitStatus: status}
		}
	}
	return nil
}

// runShebang renders the whole body into a temporary script and
// executes it in one go. An absolute interpreter path makes the script
// directly executable, a relative one is resolved through PATH and
// receives the script path as its final argument.
func (e *Engine) runShebang(ctx context.Context, recipe *justfile.Recipe, sc *scope) error {
	env, err := e.executionEnv(sc)
	if err != nil {
		return err
	}

	var script strings.Builder
	for _, line := range recipe.Body {
		rendered, err := e.renderLine(ctx, line, sc)
		if err != nil {
			return err
		}
		if e.opts.DryRun || !(recipe.Quiet || e.opts.Quiet || e.justfile.Settings.Quiet) {
			e.echo(rendered)
		}
		script.WriteString(rendered)
		script.WriteString("\n")
	}
	if e.opts.DryRun {
		return nil
	}

	interpreter, args := parseShebang(strings.TrimSpace(strings.SplitN(script.String(), "\n", 2)[0]))
	if interpreter == "" {
		return &SpawnError{Shell: "shebang", Err: errors.New("shebang line names no interpreter")}
	}

	dir, err := os.MkdirTemp("", "gust-*")
	if err != nil {
		return &SpawnError{Shell: interpreter, Err: err}
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, recipe.Name.Lexeme)
	if err := os.WriteFile(path, []byte(script.String()), 0o700); err != nil {
		return &SpawnError{Shell: interpreter, Err: err}
	}

	var cmd *exec.Cmd
	if filepath.IsAbs(interpreter) {
		cmd = exec.CommandContext(ctx, path)
	} else {
		cmd = exec.CommandContext(ctx, interpreter, append(args, path)...)
	}
	cmd.Dir = e.opts.WorkingDirectory
	cmd.Env = env
	cmd.Stdin = e.opts.Stdin
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr
	configureProcess(cmd)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &LineError{Recipe: recipe.Name.Lexeme, ExitStatus: exitErr.ExitCode()}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &SpawnError{Shell: interpreter, Err: err}
	}
	return nil
}

// renderLine evaluates a line's interpolations and joins the fragments
// back into the command text.
func (e *Engine) renderLine(ctx context.Context, line justfile.Line, sc *scope) (string, error) {
	var sb strings.Builder
	for _, fragment := range line.Fragments {
		if fragment.Expression != nil {
			value, err := e.evaluateExpression(ctx, fragment.Expression, sc)
			if err != nil {
				return "", err
			}
			sb.WriteString(value)
			continue
		}
		sb.WriteString(fragment.Text)
	}
	return sb.String(), nil
}

// echo writes a command line to stderr before it runs, so recipe
// output on stdout stays clean.
func (e *Engine) echo(command string) {
	if e.opts.Highlight {
		command = echoStyle.Render(command)
	}
	fmt.Fprintln(e.opts.Stderr, command)
}

// parseShebang splits a "#!" line into the interpreter path and its
// arguments.
func parseShebang(line string) (string, []string) {
	rest := strings.TrimPrefix(line, "#!")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
