// SPDX-License-Identifier: MPL-2.0

package justfile

import "fmt"

type (
	// WarningKind classifies a non-fatal compilation finding.
	WarningKind int

	// Warning is a non-fatal finding accumulated during compilation.
	// Warnings never abort compilation; callers decide whether to print
	// them.
	Warning struct {
		// Kind classifies the warning.
		Kind WarningKind
		// Name is the construct the warning is about.
		Name Name
	}
)

const (
	// WarningAliasShadowsRecipe reports an alias with the same name as a
	// recipe; the recipe wins at lookup and the alias is inert.
	WarningAliasShadowsRecipe WarningKind = iota
	// WarningUnreachableRecipe reports a private recipe that is neither a
	// dependency of any recipe nor the target of any alias.
	WarningUnreachableRecipe
)

// String renders the warning as a one-line diagnostic.
func (w Warning) String() string {
	switch w.Kind {
	case WarningAliasShadowsRecipe:
		return fmt.Sprintf("alias '%s' on line %d is shadowed by the recipe of the same name", w.Name.Lexeme, w.Name.Line)
	case WarningUnreachableRecipe:
		return fmt.Sprintf("private recipe '%s' on line %d is never used", w.Name.Lexeme, w.Name.Line)
	default:
		return fmt.Sprintf("unknown warning for '%s'", w.Name.Lexeme)
	}
}
