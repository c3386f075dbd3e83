// SPDX-License-Identifier: MPL-2.0

package justfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gust-cli/internal/graph"
)

// Compile tokenizes, parses, and analyzes src, producing the compiled
// Justfile or the first error encountered. dir is the directory recipes
// will run in; path is the source file's path, used by the justfile()
// builtin and diagnostics (it may be empty for in-memory sources).
//
// Compilation is all-or-nothing: no recipe runs and no backtick executes
// before the whole file has compiled.
func Compile(src, path, dir string) (*Justfile, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	justfile, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	justfile.Path = path
	justfile.Dir = dir

	if err := justfile.analyze(); err != nil {
		return nil, err
	}
	return justfile, nil
}

// CompileFile reads and compiles the justfile at path. Recipes run in the
// file's directory.
func CompileFile(path string) (*Justfile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read justfile: %w", err)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve justfile path: %w", err)
	}
	return Compile(string(src), absolute, filepath.Dir(absolute))
}

// analyze performs the post-parse, pre-run validation passes: parameter
// ordering rules, alias target resolution, dependency existence and arity,
// assignment evaluation ordering, static recipe cycle detection, and
// warning collection.
func (j *Justfile) analyze() error {
	for _, name := range j.RecipeOrder {
		if err := validateParameters(j.Recipes[name]); err != nil {
			return err
		}
	}

	for _, name := range j.aliasOrder {
		alias := j.Aliases[name]
		if _, ok := j.Recipes[alias.Target.Lexeme]; !ok {
			return &UnknownAliasTargetError{Alias: alias}
		}
		if _, ok := j.Recipes[name]; ok {
			j.Warnings = append(j.Warnings, Warning{Kind: WarningAliasShadowsRecipe, Name: alias.Name})
		}
	}

	for _, name := range j.RecipeOrder {
		recipe := j.Recipes[name]
		for _, dependency := range recipe.Dependencies {
			target, ok := j.Recipes[dependency.Recipe.Lexeme]
			if !ok {
				return &UnknownDependencyError{Recipe: recipe.Name, Dependency: dependency.Recipe}
			}
			found := len(dependency.Arguments)
			minArgs, maxArgs := target.MinArguments(), target.MaxArguments()
			if found < minArgs || (maxArgs >= 0 && found > maxArgs) {
				return &DependencyArgumentCountError{
					Recipe:     recipe.Name,
					Dependency: dependency.Recipe,
					Found:      found,
					Min:        minArgs,
					Max:        maxArgs,
				}
			}
		}
	}

	if err := j.resolveAssignmentOrder(); err != nil {
		return err
	}
	if err := j.checkRecipeCycles(); err != nil {
		return err
	}

	j.collectUnreachableWarnings()
	return nil
}

func validateParameters(recipe *Recipe) error {
	defaulted := false
	for i, parameter := range recipe.Parameters {
		if parameter.Variadic && i != len(recipe.Parameters)-1 {
			return &VariadicNotLastError{Recipe: recipe.Name, Parameter: parameter.Name}
		}
		if parameter.Default != nil {
			defaulted = true
		} else if defaulted && !parameter.Variadic {
			return &RequiredAfterDefaultError{Recipe: recipe.Name, Parameter: parameter.Name}
		}
	}
	return nil
}

// resolveAssignmentOrder orders assignments so each is evaluated after the
// assignments it references. References to names with no assignment are
// ignored here: overrides and the process environment may supply them, so
// they are only validated during evaluation.
func (j *Justfile) resolveAssignmentOrder() error {
	byName := make(map[string]*Assignment, len(j.Assignments))
	g := graph.New()
	for _, assignment := range j.Assignments {
		byName[assignment.Name.Lexeme] = assignment
		g.AddNode(assignment.Name.Lexeme)
	}
	for _, assignment := range j.Assignments {
		for _, reference := range assignment.Value.Variables(nil) {
			if _, ok := byName[reference.Lexeme]; ok {
				g.AddEdge(assignment.Name.Lexeme, reference.Lexeme)
			}
		}
	}
	order, err := g.SortAll()
	if err != nil {
		if cycle, ok := err.(*graph.CycleError); ok {
			return &CircularVariableDependencyError{Cycle: cycle.Cycle}
		}
		return err
	}
	j.EvalOrder = make([]*Assignment, 0, len(order))
	for _, name := range order {
		j.EvalOrder = append(j.EvalOrder, byName[name])
	}
	return nil
}

// checkRecipeCycles walks the full declared dependency graph so cycles are
// reported at compile time, before any shell command runs, even for recipes
// the current invocation would not reach.
func (j *Justfile) checkRecipeCycles() error {
	g := graph.New()
	for _, name := range j.RecipeOrder {
		g.AddNode(name)
		for _, dependency := range j.Recipes[name].Dependencies {
			g.AddEdge(name, dependency.Recipe.Lexeme)
		}
	}
	if _, err := g.SortAll(); err != nil {
		if cycle, ok := err.(*graph.CycleError); ok {
			return &CircularRecipeDependencyError{Cycle: cycle.Cycle}
		}
		return err
	}
	return nil
}

// collectUnreachableWarnings flags private recipes that nothing refers to:
// not a dependency of any recipe and not the target of any alias.
func (j *Justfile) collectUnreachableWarnings() {
	referenced := make(map[string]bool)
	for _, name := range j.RecipeOrder {
		for _, dependency := range j.Recipes[name].Dependencies {
			referenced[dependency.Recipe.Lexeme] = true
		}
	}
	for _, name := range j.aliasOrder {
		referenced[j.Aliases[name].Target.Lexeme] = true
	}
	for _, name := range j.RecipeOrder {
		recipe := j.Recipes[name]
		if recipe.Private && !referenced[name] {
			j.Warnings = append(j.Warnings, Warning{Kind: WarningUnreachableRecipe, Name: recipe.Name})
		}
	}
}
