// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"gust-cli/pkg/justfile"
)

// newListCommand creates the `gust list` command.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [pattern]",
		Short: "List available recipes",
		Long: `List the recipes the justfile defines, with their parameters and doc
comments. An optional pattern fuzzy-filters the list by recipe name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jf, err := loadJustfile()
			if err != nil {
				return err
			}
			recipes := jf.PublicRecipes()
			if len(args) == 1 {
				recipes = filterRecipes(recipes, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available recipes:")
			styled := colorEnabled()
			for _, recipe := range recipes {
				header := recipeHeader(recipe, styled)
				if recipe.Doc != "" {
					doc := "# " + recipe.Doc
					if styled {
						doc = DocStyle.Render(doc)
					}
					fmt.Fprintf(out, "    %s %s\n", header, doc)
				} else {
					fmt.Fprintf(out, "    %s\n", header)
				}
			}
			return nil
		},
	}
}

// recipeHeader renders "name param param=default" for a listing line.
func recipeHeader(recipe *justfile.Recipe, styled bool) string {
	parts := []string{recipe.Name.Lexeme}
	if styled {
		parts[0] = RecipeStyle.Render(parts[0])
	}
	for _, parameter := range recipe.Parameters {
		part := parameter.String()
		if styled {
			part = ParameterStyle.Render(part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

// filterRecipes keeps the recipes whose names fuzzy-match pattern, best
// matches first.
func filterRecipes(recipes []*justfile.Recipe, pattern string) []*justfile.Recipe {
	names := make([]string, len(recipes))
	for i, recipe := range recipes {
		names[i] = recipe.Name.Lexeme
	}
	matches := fuzzy.Find(pattern, names)
	filtered := make([]*justfile.Recipe, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, recipes[match.Index])
	}
	return filtered
}
