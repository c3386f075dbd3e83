// SPDX-License-Identifier: MPL-2.0

// Package justfile compiles recipe files into an executable model: a lexer
// and recursive-descent parser for the justfile grammar, an expression AST,
// dependency resolution for assignments and recipes with deterministic
// cycle diagnostics, and the compiled Justfile value consumed by the
// evaluation and execution engine in internal/runtime.
package justfile

import (
	"strings"
)

type (
	// Justfile is the compiled unit: the recipe, alias, and assignment
	// tables of one source file, plus non-fatal warnings accumulated
	// during compilation. It is constructed once by Compile and read-only
	// afterwards.
	Justfile struct {
		// Recipes maps recipe names to recipes.
		Recipes map[string]*Recipe
		// RecipeOrder lists recipe names in declaration order.
		RecipeOrder []string
		// Aliases maps alias names to aliases.
		Aliases map[string]*Alias
		// Assignments in declaration order, for display.
		Assignments []*Assignment
		// EvalOrder is the assignment list reordered so every assignment
		// follows the assignments it references.
		EvalOrder []*Assignment
		// Settings holds the file-scoped set directives.
		Settings Settings
		// Warnings accumulated during compilation.
		Warnings []Warning
		// Path is the absolute path of the source file, or "" when the
		// source did not come from disk.
		Path string
		// Dir is the directory recipes run in.
		Dir string

		aliasOrder []string
	}
)

// RecipeByName looks up a recipe directly or through an alias. Aliases
// never shadow recipes: a direct recipe match wins.
func (j *Justfile) RecipeByName(name string) *Recipe {
	if recipe, ok := j.Recipes[name]; ok {
		return recipe
	}
	if alias, ok := j.Aliases[name]; ok {
		return j.Recipes[alias.Target.Lexeme]
	}
	return nil
}

// DefaultRecipe returns the first non-private recipe in declaration order,
// or nil if there is none.
func (j *Justfile) DefaultRecipe() *Recipe {
	for _, name := range j.RecipeOrder {
		if recipe := j.Recipes[name]; !recipe.Private {
			return recipe
		}
	}
	return nil
}

// PublicRecipes returns the non-private recipes in declaration order.
func (j *Justfile) PublicRecipes() []*Recipe {
	var recipes []*Recipe
	for _, name := range j.RecipeOrder {
		if recipe := j.Recipes[name]; !recipe.Private {
			recipes = append(recipes, recipe)
		}
	}
	return recipes
}

// Names returns every name a run request may target: recipes and aliases,
// recipes in declaration order first. Used for suggestions and completion.
func (j *Justfile) Names() []string {
	names := make([]string, 0, len(j.RecipeOrder)+len(j.aliasOrder))
	names = append(names, j.RecipeOrder...)
	names = append(names, j.aliasOrder...)
	return names
}

// String renders the whole file in canonical, re-parseable form: settings,
// assignments in declaration order, aliases, then recipes in declaration
// order, separated by blank lines. Compiling the rendering yields an equal
// compiled structure.
func (j *Justfile) String() string {
	var blocks []string
	if settings := j.Settings.String(); settings != "" {
		blocks = append(blocks, settings)
	}
	for _, assignment := range j.Assignments {
		blocks = append(blocks, assignment.String())
	}
	for _, name := range j.aliasOrder {
		blocks = append(blocks, j.Aliases[name].String())
	}
	for _, name := range j.RecipeOrder {
		blocks = append(blocks, j.Recipes[name].String())
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
