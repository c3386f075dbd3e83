// SPDX-License-Identifier: MPL-2.0

package justfile

import (
	"errors"
	"fmt"
	"strings"
)

// Phase sentinels. Every error produced by this package unwraps to exactly
// one of these, so callers can distinguish the failing phase with errors.Is
// without inspecting concrete types.
var (
	// ErrLex is the sentinel wrapped by all tokenization errors.
	ErrLex = errors.New("lex error")
	// ErrParse is the sentinel wrapped by all parse errors.
	ErrParse = errors.New("parse error")
	// ErrCompile is the sentinel wrapped by all post-parse compilation
	// errors.
	ErrCompile = errors.New("compile error")
)

type (
	// LexError reports a tokenization failure at an exact source position.
	LexError struct {
		Line   int
		Column int
		Reason string
	}

	// ParseError reports an unexpected token and the construct that was
	// expected in its place.
	ParseError struct {
		Found    Token
		Expected string
	}

	// DuplicateRecipeError reports a recipe name defined twice.
	DuplicateRecipeError struct {
		Name  Name
		First Name
	}

	// DuplicateVariableError reports an assignment name defined twice.
	DuplicateVariableError struct {
		Name  Name
		First Name
	}

	// DuplicateAliasError reports an alias name defined twice.
	DuplicateAliasError struct {
		Name  Name
		First Name
	}

	// UnknownAliasTargetError reports an alias whose target names no
	// recipe.
	UnknownAliasTargetError struct {
		Alias *Alias
	}

	// UnknownDependencyError reports a recipe depending on a recipe that
	// does not exist.
	UnknownDependencyError struct {
		Recipe     Name
		Dependency Name
	}

	// DependencyArgumentCountError reports a dependency invoked with an
	// argument count its recipe cannot accept.
	DependencyArgumentCountError struct {
		Recipe     Name
		Dependency Name
		Found      int
		Min        int
		Max        int
	}

	// VariadicNotLastError reports a variadic parameter followed by
	// further parameters.
	VariadicNotLastError struct {
		Recipe    Name
		Parameter Name
	}

	// RequiredAfterDefaultError reports a parameter without a default
	// following one with a default.
	RequiredAfterDefaultError struct {
		Recipe    Name
		Parameter Name
	}

	// DependencyArgumentMismatchError reports a recipe reached through two
	// dependency edges whose evaluated argument lists differ. Dependency
	// deduplication assumes a single argument binding per run, so this is
	// rejected rather than running the recipe twice.
	DependencyArgumentMismatchError struct {
		Recipe string
		First  []string
		Second []string
	}

	// CircularVariableDependencyError reports a reference cycle among
	// assignments, in encounter order.
	CircularVariableDependencyError struct {
		Cycle []string
	}

	// CircularRecipeDependencyError reports a dependency cycle among
	// recipes, in encounter order.
	CircularRecipeDependencyError struct {
		Cycle []string
	}
)

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Reason)
}

func (e *LexError) Unwrap() error { return ErrLex }

func (e *ParseError) Error() string {
	found := e.Found.Kind.String()
	if e.Found.Kind == TokenName || e.Found.Kind == TokenText {
		found = fmt.Sprintf("%s '%s'", found, e.Found.Lexeme)
	}
	return fmt.Sprintf("line %d:%d: expected %s, found %s", e.Found.Line, e.Found.Column, e.Expected, found)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func (e *DuplicateRecipeError) Error() string {
	return fmt.Sprintf("recipe '%s' on line %d is already defined on line %d", e.Name.Lexeme, e.Name.Line, e.First.Line)
}

func (e *DuplicateRecipeError) Unwrap() error { return ErrCompile }

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("variable '%s' on line %d is already defined on line %d", e.Name.Lexeme, e.Name.Line, e.First.Line)
}

func (e *DuplicateVariableError) Unwrap() error { return ErrCompile }

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias '%s' on line %d is already defined on line %d", e.Name.Lexeme, e.Name.Line, e.First.Line)
}

func (e *DuplicateAliasError) Unwrap() error { return ErrCompile }

func (e *UnknownAliasTargetError) Error() string {
	return fmt.Sprintf("alias '%s' on line %d has an unknown target '%s'", e.Alias.Name.Lexeme, e.Alias.Name.Line, e.Alias.Target.Lexeme)
}

func (e *UnknownAliasTargetError) Unwrap() error { return ErrCompile }

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("recipe '%s' depends on unknown recipe '%s'", e.Recipe.Lexeme, e.Dependency.Lexeme)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrCompile }

func (e *DependencyArgumentCountError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("recipe '%s' invokes '%s' with %d arguments, but it requires at least %d",
			e.Recipe.Lexeme, e.Dependency.Lexeme, e.Found, e.Min)
	}
	return fmt.Sprintf("recipe '%s' invokes '%s' with %d arguments, but it accepts between %d and %d",
		e.Recipe.Lexeme, e.Dependency.Lexeme, e.Found, e.Min, e.Max)
}

func (e *DependencyArgumentCountError) Unwrap() error { return ErrCompile }

func (e *VariadicNotLastError) Error() string {
	return fmt.Sprintf("recipe '%s': variadic parameter '%s' must be the last parameter", e.Recipe.Lexeme, e.Parameter.Lexeme)
}

func (e *VariadicNotLastError) Unwrap() error { return ErrCompile }

func (e *RequiredAfterDefaultError) Error() string {
	return fmt.Sprintf("recipe '%s': required parameter '%s' follows a parameter with a default value", e.Recipe.Lexeme, e.Parameter.Lexeme)
}

func (e *RequiredAfterDefaultError) Unwrap() error { return ErrCompile }

func (e *DependencyArgumentMismatchError) Error() string {
	return fmt.Sprintf("recipe '%s' is invoked as a dependency with conflicting arguments: [%s] and [%s]",
		e.Recipe, strings.Join(e.First, ", "), strings.Join(e.Second, ", "))
}

func (e *DependencyArgumentMismatchError) Unwrap() error { return ErrCompile }

func (e *CircularVariableDependencyError) Error() string {
	return fmt.Sprintf("circular variable dependency: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CircularVariableDependencyError) Unwrap() error { return ErrCompile }

func (e *CircularRecipeDependencyError) Error() string {
	return fmt.Sprintf("circular recipe dependency: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CircularRecipeDependencyError) Unwrap() error { return ErrCompile }
