// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"gust-cli/pkg/justfile"
)

// builtin is a function callable from `{{...}}` expressions. Arguments
// arrive already evaluated.
type builtin struct {
	arity int
	call  func(e *Engine, args []string) (string, error)
}

var builtins = map[string]builtin{
	"arch": {0, func(e *Engine, _ []string) (string, error) {
		return runtime.GOARCH, nil
	}},
	"os": {0, func(e *Engine, _ []string) (string, error) {
		return runtime.GOOS, nil
	}},
	"os_family": {0, func(e *Engine, _ []string) (string, error) {
		if runtime.GOOS == "windows" {
			return "windows", nil
		}
		return "unix", nil
	}},
	"env_var": {1, func(e *Engine, args []string) (string, error) {
		value, ok := os.LookupEnv(args[0])
		if !ok {
			return "", fmt.Errorf("environment variable '%s' not present", args[0])
		}
		return value, nil
	}},
	"env_var_or_default": {2, func(e *Engine, args []string) (string, error) {
		if value, ok := os.LookupEnv(args[0]); ok {
			return value, nil
		}
		return args[1], nil
	}},
	"invocation_directory": {0, func(e *Engine, _ []string) (string, error) {
		return e.opts.InvocationDirectory, nil
	}},
	"justfile": {0, func(e *Engine, _ []string) (string, error) {
		return e.justfile.Path, nil
	}},
	"justfile_directory": {0, func(e *Engine, _ []string) (string, error) {
		return e.justfile.Dir, nil
	}},
}

// evaluateCall dispatches a function call expression to its builtin.
func (e *Engine) evaluateCall(ctx context.Context, call *justfile.Call, sc *scope) (string, error) {
	fn, ok := builtins[call.Function.Lexeme]
	if !ok {
		return "", &UnknownFunctionError{Name: call.Function.Lexeme, Line: call.Function.Line}
	}
	if len(call.Arguments) != fn.arity {
		return "", &FunctionError{
			Function: call.Function.Lexeme,
			Err:      fmt.Errorf("expected %d arguments but got %d", fn.arity, len(call.Arguments)),
		}
	}
	args := make([]string, len(call.Arguments))
	for i, argExpr := range call.Arguments {
		value, err := e.evaluateExpression(ctx, argExpr, sc)
		if err != nil {
			return "", err
		}
		args[i] = value
	}
	value, err := fn.call(e, args)
	if err != nil {
		return "", &FunctionError{Function: call.Function.Lexeme, Err: err}
	}
	return value, nil
}
