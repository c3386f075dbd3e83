// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"gust-cli/pkg/justfile"
)

type (
	// Options configures an execution engine. Zero values select the
	// defaults: native shell, process stdio, no overrides.
	Options struct {
		// DryRun prints recipe lines instead of executing them.
		// Backticks and assignments are still evaluated.
		DryRun bool
		// Highlight renders echoed lines in bold.
		Highlight bool
		// Quiet suppresses line echoing for all recipes.
		Quiet bool
		// Shell overrides the shell configured by the recipe file.
		Shell string
		// ShellArgs overrides the shell arguments. A non-nil empty
		// slice clears the defaults.
		ShellArgs []string
		// Virtual selects the embedded interpreter instead of the
		// system shell.
		Virtual bool
		// WorkingDirectory overrides the directory recipes run in.
		// Defaults to the directory containing the recipe file.
		WorkingDirectory string
		// InvocationDirectory is the directory the command was invoked
		// from, surfaced through the invocation_directory() function.
		InvocationDirectory string
		// Overrides maps variable names to values supplied on the
		// command line. Overridden assignments are never evaluated.
		Overrides map[string]string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		Logger *log.Logger
	}

	// Engine evaluates and executes recipes from a compiled file.
	Engine struct {
		justfile *justfile.Justfile
		opts     Options
		shell    Shell
		logger   *log.Logger

		// variables holds the evaluated assignment values, including
		// command line overrides.
		variables map[string]string
	}

	// scope is the variable environment of a single recipe invocation:
	// bound parameters layered over the global variables.
	scope struct {
		bindings map[string]string
	}
)

// NewEngine creates an engine for the given compiled file. Assignments
// are not evaluated until the first operation that needs them.
func NewEngine(jf *justfile.Justfile, opts Options) *Engine {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.WorkingDirectory == "" {
		opts.WorkingDirectory = jf.Dir
	}
	if opts.InvocationDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.InvocationDirectory = wd
		} else {
			opts.InvocationDirectory = jf.Dir
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine := &Engine{
		justfile: jf,
		opts:     opts,
		logger:   logger,
	}
	if opts.Virtual {
		engine.shell = NewVirtualShell()
	} else {
		shell, shellArgs := engine.shellInvocation()
		engine.shell = NewNativeShell(shell, shellArgs)
	}
	return engine
}

// shellInvocation returns the shell binary and arguments that recipe
// lines run with. Command line options win over `set shell`, which wins
// over the defaults. A non-nil empty ShellArgs clears the defaults.
func (e *Engine) shellInvocation() (string, []string) {
	shell := DefaultShell
	args := DefaultShellArgs
	if e.justfile.Settings.Shell != "" {
		shell = e.justfile.Settings.Shell
		if e.justfile.Settings.ShellArgs != nil {
			args = e.justfile.Settings.ShellArgs
		}
	}
	if e.opts.Shell != "" {
		shell = e.opts.Shell
	}
	if e.opts.ShellArgs != nil {
		args = e.opts.ShellArgs
	}
	return shell, args
}

// Variables evaluates every assignment and returns the resulting
// values, with command line overrides applied.
func (e *Engine) Variables(ctx context.Context) (map[string]string, error) {
	if err := e.evaluateAssignments(ctx); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(e.variables))
	for name, value := range e.variables {
		out[name] = value
	}
	return out, nil
}

// evaluateAssignments walks the assignments in dependency order,
// skipping any whose value was overridden on the command line.
func (e *Engine) evaluateAssignments(ctx context.Context) error {
	if e.variables != nil {
		return nil
	}
	e.variables = make(map[string]string, len(e.justfile.EvalOrder))
	for _, assignment := range e.justfile.EvalOrder {
		name := assignment.Name.Lexeme
		if value, ok := e.opts.Overrides[name]; ok {
			e.variables[name] = value
			continue
		}
		value, err := e.evaluateExpression(ctx, assignment.Value, nil)
		if err != nil {
			return err
		}
		e.variables[name] = value
	}
	for name, value := range e.opts.Overrides {
		if _, ok := e.variables[name]; !ok {
			e.variables[name] = value
		}
	}
	return nil
}

// Evaluate resolves every assignment and returns the value of a single
// variable, or all variables rendered one per line when name is empty.
func (e *Engine) Evaluate(ctx context.Context, name string) (string, error) {
	if err := e.evaluateAssignments(ctx); err != nil {
		return "", err
	}
	if name != "" {
		value, ok := e.variables[name]
		if !ok {
			return "", &UndefinedVariableError{Name: name}
		}
		return value, nil
	}
	var sb strings.Builder
	for _, assignment := range e.justfile.Assignments {
		n := assignment.Name.Lexeme
		sb.WriteString(n)
		sb.WriteString(" := ")
		sb.WriteString(enquoteValue(e.variables[n]))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// evaluateExpression computes the string value of an expression. The
// scope carries recipe parameter bindings and is nil when evaluating
// top level assignments.
func (e *Engine) evaluateExpression(ctx context.Context, expr justfile.Expression, sc *scope) (string, error) {
	switch v := expr.(type) {
	case *justfile.Literal:
		return v.Text, nil
	case *justfile.Variable:
		return e.lookupVariable(v.Name, sc)
	case *justfile.Concatenation:
		lhs, err := e.evaluateExpression(ctx, v.Lhs, sc)
		if err != nil {
			return "", err
		}
		rhs, err := e.evaluateExpression(ctx, v.Rhs, sc)
		if err != nil {
			return "", err
		}
		return lhs + rhs, nil
	case *justfile.Conditional:
		lhs, err := e.evaluateExpression(ctx, v.Lhs, sc)
		if err != nil {
			return "", err
		}
		rhs, err := e.evaluateExpression(ctx, v.Rhs, sc)
		if err != nil {
			return "", err
		}
		matched := lhs == rhs
		if v.Negated {
			matched = !matched
		}
		if matched {
			return e.evaluateExpression(ctx, v.Then, sc)
		}
		return e.evaluateExpression(ctx, v.Else, sc)
	case *justfile.Call:
		return e.evaluateCall(ctx, v, sc)
	case *justfile.Backtick:
		return e.evaluateBacktick(ctx, v, sc)
	default:
		return "", &UndefinedVariableError{Name: expr.String()}
	}
}

// lookupVariable resolves a variable reference: recipe parameters shadow
// assignments (with overrides already folded in), which shadow the
// process environment. A name absent from all three is an error rather
// than an empty string.
func (e *Engine) lookupVariable(name justfile.Name, sc *scope) (string, error) {
	if sc != nil {
		if value, ok := sc.bindings[name.Lexeme]; ok {
			return value, nil
		}
	}
	if value, ok := e.variables[name.Lexeme]; ok {
		return value, nil
	}
	if value, ok := os.LookupEnv(name.Lexeme); ok {
		return value, nil
	}
	return "", &UndefinedVariableError{Name: name.Lexeme, Line: name.Line}
}

// evaluateBacktick runs the command through the configured shell and
// returns its stdout with a single trailing newline stripped.
func (e *Engine) evaluateBacktick(ctx context.Context, b *justfile.Backtick, sc *scope) (string, error) {
	env, err := e.executionEnv(sc)
	if err != nil {
		return "", err
	}
	stdout, stderr, status, err := e.shell.Capture(ctx, b.Command, e.opts.WorkingDirectory, env)
	if err != nil {
		return "", err
	}
	if status != 0 {
		return "", &BacktickError{
			Command:    b.Command,
			Line:       b.Line,
			ExitStatus: status,
			Stderr:     strings.TrimRight(stderr, "\n"),
		}
	}
	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")
	return stdout, nil
}

// executionEnv builds the process environment for a shell invocation:
// the parent environment plus exported variables. When `set export` is
// on, every variable and parameter is exported.
func (e *Engine) executionEnv(sc *scope) ([]string, error) {
	env := os.Environ()
	exportAll := e.justfile.Settings.Export
	for _, assignment := range e.justfile.EvalOrder {
		if exportAll || assignment.Exported {
			name := assignment.Name.Lexeme
			// Skip assignments not yet evaluated: a backtick early in
			// the evaluation order must not see later exports.
			if value, ok := e.variables[name]; ok {
				env = append(env, name+"="+value)
			}
		}
	}
	if sc != nil && exportAll {
		for name, value := range sc.bindings {
			env = append(env, name+"="+value)
		}
	}
	return env, nil
}

// enquoteValue renders a value as a cooked string literal for
// `gust evaluate` and `gust variables` output.
func enquoteValue(value string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
