// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gust-cli/internal/runtime"
	"gust-cli/pkg/justfile"
)

// runRecipes is the default command: compile the justfile, split the
// arguments into variable overrides and recipe requests, and execute.
func runRecipes(cmd *cobra.Command, args []string) error {
	jf, err := loadJustfile()
	if err != nil {
		return err
	}

	overrides, words := splitOverrides(args)
	for _, pair := range setOverrides {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --set value %q: expected NAME=VALUE", pair)
		}
		overrides[name] = value
	}

	requests, err := groupRequests(jf, words)
	if err != nil {
		return err
	}

	engine := runtime.NewEngine(jf, engineOptions(overrides))
	if err := engine.Run(cmd.Context(), requests); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		return &ExitError{Code: runtime.ExitStatus(err), Err: err}
	}
	return nil
}

// splitOverrides separates NAME=VALUE words from recipe targets and
// arguments. Overrides may appear anywhere before the first target.
func splitOverrides(args []string) (map[string]string, []string) {
	overrides := make(map[string]string)
	for i, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || !isName(name) {
			return overrides, args[i:]
		}
		overrides[name] = value
	}
	return overrides, nil
}

// groupRequests assigns argument words to targets: each target consumes
// following words greedily up to its maximum arity, a variadic recipe
// takes everything that remains.
func groupRequests(jf *justfile.Justfile, words []string) ([]runtime.Request, error) {
	if len(words) == 0 {
		recipe := jf.DefaultRecipe()
		if recipe == nil {
			return nil, fmt.Errorf("justfile contains no recipes")
		}
		return []runtime.Request{{Target: recipe.Name.Lexeme}}, nil
	}

	var requests []runtime.Request
	for len(words) > 0 {
		target := words[0]
		words = words[1:]
		recipe := jf.RecipeByName(target)
		if recipe == nil {
			return nil, &runtime.UnknownRecipeError{
				Name:       target,
				Suggestion: jf.Suggest(target),
			}
		}
		take := len(words)
		if maxArgs := recipe.MaxArguments(); maxArgs >= 0 && maxArgs < take {
			take = maxArgs
		}
		requests = append(requests, runtime.Request{
			Target:    target,
			Arguments: words[:take],
		})
		words = words[take:]
	}
	return requests, nil
}

// isName reports whether s is a valid variable name, distinguishing
// overrides from target words that merely contain '='.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
