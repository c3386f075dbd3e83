// SPDX-License-Identifier: MPL-2.0

package justfile

type (
	// Assignment is a top-level variable binding. Exported assignments are
	// additionally placed in the environment of every child shell.
	Assignment struct {
		// Name is the variable name.
		Name Name
		// Value is the expression evaluated to produce the variable's
		// value.
		Value Expression
		// Exported is true for "export name := value".
		Exported bool
	}
)

// String renders the assignment in canonical form.
func (a *Assignment) String() string {
	s := a.Name.Lexeme + " := " + a.Value.String()
	if a.Exported {
		s = "export " + s
	}
	return s
}
