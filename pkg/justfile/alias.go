// SPDX-License-Identifier: MPL-2.0

package justfile

type (
	// Alias is an alternate name for a recipe. The target is resolved
	// against the completed recipe table after parsing, so forward
	// references are legal.
	Alias struct {
		// Name is the alias itself.
		Name Name
		// Target names the aliased recipe.
		Target Name
	}
)

// String renders the alias in canonical form.
func (a *Alias) String() string {
	return "alias " + a.Name.Lexeme + " := " + a.Target.Lexeme
}
