// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRuntime is the sentinel wrapped by every evaluation and execution
// error, so callers can distinguish runtime failures from compile-phase
// failures with errors.Is.
var ErrRuntime = errors.New("runtime error")

type (
	// UndefinedVariableError reports a variable reference that no
	// parameter, override, assignment, or environment variable satisfies.
	UndefinedVariableError struct {
		Name string
		Line int
	}

	// UnknownRecipeError reports a requested recipe that does not exist,
	// with an optional "did you mean" suggestion.
	UnknownRecipeError struct {
		Name       string
		Suggestion string
	}

	// MissingArgumentError reports a parameter with neither an argument
	// nor a default.
	MissingArgumentError struct {
		Recipe    string
		Parameter string
	}

	// ArgumentCountError reports a requested invocation with more
	// arguments than the recipe accepts.
	ArgumentCountError struct {
		Recipe string
		Found  int
		Max    int
	}

	// UnknownFunctionError reports a call to a function outside the
	// builtin set.
	UnknownFunctionError struct {
		Name string
		Line int
	}

	// FunctionError wraps a builtin function's own failure.
	FunctionError struct {
		Function string
		Err      error
	}

	// BacktickError reports a backtick command that exited nonzero during
	// expression evaluation.
	BacktickError struct {
		Command    string
		Line       int
		ExitStatus int
		Stderr     string
	}

	// LineError reports a recipe body line whose shell invocation exited
	// nonzero.
	LineError struct {
		Recipe     string
		ExitStatus int
	}

	// SpawnError reports a shell that could not be started at all.
	SpawnError struct {
		Shell string
		Err   error
	}
)

func (e *UndefinedVariableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("variable '%s' referenced on line %d is not defined", e.Name, e.Line)
	}
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}

func (e *UndefinedVariableError) Unwrap() error { return ErrRuntime }

func (e *UnknownRecipeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("justfile does not contain recipe '%s', did you mean '%s'?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("justfile does not contain recipe '%s'", e.Name)
}

func (e *UnknownRecipeError) Unwrap() error { return ErrRuntime }

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("recipe '%s' got no value for parameter '%s'", e.Recipe, e.Parameter)
}

func (e *MissingArgumentError) Unwrap() error { return ErrRuntime }

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("recipe '%s' got %d arguments but takes at most %d", e.Recipe, e.Found, e.Max)
}

func (e *ArgumentCountError) Unwrap() error { return ErrRuntime }

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("call to unknown function '%s' on line %d", e.Name, e.Line)
}

func (e *UnknownFunctionError) Unwrap() error { return ErrRuntime }

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function '%s' failed: %v", e.Function, e.Err)
}

func (e *FunctionError) Unwrap() error { return ErrRuntime }

func (e *BacktickError) Error() string {
	message := fmt.Sprintf("backtick command `%s` on line %d failed with exit status %d", e.Command, e.Line, e.ExitStatus)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		message += ": " + stderr
	}
	return message
}

func (e *BacktickError) Unwrap() error { return ErrRuntime }

func (e *LineError) Error() string {
	return fmt.Sprintf("recipe '%s' failed with exit status %d", e.Recipe, e.ExitStatus)
}

func (e *LineError) Unwrap() error { return ErrRuntime }

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to invoke shell '%s': %v", e.Shell, e.Err)
}

func (e *SpawnError) Unwrap() error { return ErrRuntime }

// ExitStatus maps an execution error to the process exit status the CLI
// should report: a failed line or backtick propagates the child's status,
// anything else maps to 1, nil to 0.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var lineErr *LineError
	if errors.As(err, &lineErr) {
		return lineErr.ExitStatus
	}
	var backtickErr *BacktickError
	if errors.As(err, &backtickErr) {
		return backtickErr.ExitStatus
	}
	return 1
}
