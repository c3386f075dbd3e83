// SPDX-License-Identifier: MPL-2.0

package justfile

import "strings"

type (
	// Dependency is an edge from a recipe to one of its prerequisites,
	// together with the argument expressions the calling recipe supplies.
	// Arguments are evaluated in the caller's parameter scope when the run
	// is resolved.
	Dependency struct {
		// Recipe names the prerequisite recipe.
		Recipe Name
		// Arguments are the expressions bound to the prerequisite's
		// parameters, in order. Empty for a bare dependency.
		Arguments []Expression
	}
)

// String renders the dependency in canonical form: a bare name, or a
// parenthesized name-plus-arguments list.
func (d *Dependency) String() string {
	if len(d.Arguments) == 0 {
		return d.Recipe.Lexeme
	}
	parts := make([]string, 0, len(d.Arguments)+1)
	parts = append(parts, d.Recipe.Lexeme)
	for _, argument := range d.Arguments {
		parts = append(parts, argument.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}
