// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"strings"

	"gust-cli/pkg/justfile"
)

type (
	// Request names a recipe to run along with its command line
	// arguments. The target may be an alias.
	Request struct {
		Target    string
		Arguments []string
	}

	// Invocation is a fully resolved recipe run: the recipe, its bound
	// parameter values, and the original argument list.
	Invocation struct {
		Recipe    *justfile.Recipe
		Scope     map[string]string
		Arguments []string
	}
)

// resolve expands a set of requests into an execution plan: every
// dependency before its dependent, each distinct recipe/argument pair
// exactly once, in depth first postorder.
func (e *Engine) resolve(ctx context.Context, requests []Request) ([]*Invocation, error) {
	if err := e.evaluateAssignments(ctx); err != nil {
		return nil, err
	}
	var plan []*Invocation
	seen := make(map[string]bool)
	for _, request := range requests {
		recipe := e.justfile.RecipeByName(request.Target)
		if recipe == nil {
			return nil, &UnknownRecipeError{
				Name:       request.Target,
				Suggestion: e.justfile.Suggest(request.Target),
			}
		}
		if maxArgs := recipe.MaxArguments(); maxArgs >= 0 && len(request.Arguments) > maxArgs {
			return nil, &ArgumentCountError{
				Recipe: recipe.Name.Lexeme,
				Found:  len(request.Arguments),
				Max:    maxArgs,
			}
		}
		var err error
		plan, err = e.resolveRecipe(ctx, recipe, request.Arguments, seen, plan)
		if err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// resolveRecipe binds arguments, recurses into dependencies, then
// appends the invocation. Duplicate recipe/argument pairs are skipped;
// the same recipe invoked with different arguments runs once per
// argument list, and a repeat with different arguments is an error.
func (e *Engine) resolveRecipe(ctx context.Context, recipe *justfile.Recipe, arguments []string, seen map[string]bool, plan []*Invocation) ([]*Invocation, error) {
	key := invocationKey(recipe.Name.Lexeme, arguments)
	if seen[key] {
		return plan, nil
	}
	for existing := range seen {
		name, args, ok := strings.Cut(existing, "\x00")
		if ok && name == recipe.Name.Lexeme {
			return nil, &justfile.DependencyArgumentMismatchError{
				Recipe: recipe.Name.Lexeme,
				First:  splitKeyArguments(args),
				Second: arguments,
			}
		}
	}
	seen[key] = true

	sc, err := e.bindArguments(ctx, recipe, arguments)
	if err != nil {
		return nil, err
	}

	for _, dependency := range recipe.Dependencies {
		target := e.justfile.RecipeByName(dependency.Recipe.Lexeme)
		if target == nil {
			// Compilation validates dependency existence, this is a bug.
			return nil, &UnknownRecipeError{Name: dependency.Recipe.Lexeme}
		}
		depArguments := make([]string, len(dependency.Arguments))
		for i, argExpr := range dependency.Arguments {
			value, err := e.evaluateExpression(ctx, argExpr, sc)
			if err != nil {
				return nil, err
			}
			depArguments[i] = value
		}
		plan, err = e.resolveRecipe(ctx, target, depArguments, seen, plan)
		if err != nil {
			return nil, err
		}
	}

	return append(plan, &Invocation{
		Recipe:    recipe,
		Scope:     sc.bindings,
		Arguments: arguments,
	}), nil
}

// bindArguments maps positional arguments onto a recipe's parameters.
// Missing values fall back to defaults, evaluated in the assignment
// environment. A variadic `*` parameter collects the remaining
// arguments joined by spaces, falling back to its default and then to
// the empty string when none remain; a `+` parameter must receive at
// least one.
func (e *Engine) bindArguments(ctx context.Context, recipe *justfile.Recipe, arguments []string) (*scope, error) {
	sc := &scope{bindings: make(map[string]string, len(recipe.Parameters))}
	rest := arguments
	for _, parameter := range recipe.Parameters {
		switch {
		case parameter.Variadic:
			if len(rest) == 0 {
				if parameter.Required {
					return nil, &MissingArgumentError{
						Recipe:    recipe.Name.Lexeme,
						Parameter: parameter.Name.Lexeme,
					}
				}
				if parameter.Default != nil {
					value, err := e.evaluateExpression(ctx, parameter.Default, nil)
					if err != nil {
						return nil, err
					}
					sc.bindings[parameter.Name.Lexeme] = value
					continue
				}
			}
			sc.bindings[parameter.Name.Lexeme] = strings.Join(rest, " ")
			rest = nil
		case len(rest) > 0:
			sc.bindings[parameter.Name.Lexeme] = rest[0]
			rest = rest[1:]
		case parameter.Default != nil:
			value, err := e.evaluateExpression(ctx, parameter.Default, nil)
			if err != nil {
				return nil, err
			}
			sc.bindings[parameter.Name.Lexeme] = value
		default:
			return nil, &MissingArgumentError{
				Recipe:    recipe.Name.Lexeme,
				Parameter: parameter.Name.Lexeme,
			}
		}
	}
	return sc, nil
}

func invocationKey(name string, arguments []string) string {
	return name + "\x00" + strings.Join(arguments, "\x00")
}

func splitKeyArguments(args string) []string {
	if args == "" {
		return nil
	}
	return strings.Split(args, "\x00")
}
