// SPDX-License-Identifier: MPL-2.0

package justfile

type (
	// Parameter is a single recipe parameter. Only the last parameter of a
	// recipe may be variadic, and a parameter without a default may not
	// follow one that has a default; both rules are enforced at compile
	// time.
	Parameter struct {
		// Name is the parameter name.
		Name Name
		// Variadic marks a parameter that collects all surplus positional
		// arguments, space-joined.
		Variadic bool
		// Required distinguishes "+name" (one or more arguments) from
		// "*name" (zero or more) for variadic parameters. Non-variadic
		// parameters are required iff they have no default.
		Required bool
		// Default is the expression evaluated when no argument is
		// supplied, or nil.
		Default Expression
	}
)

// String renders the parameter in canonical form: an optional variadic
// marker, the name, and an optional default.
func (p *Parameter) String() string {
	var s string
	if p.Variadic {
		if p.Required {
			s = "+"
		} else {
			s = "*"
		}
	}
	s += p.Name.Lexeme
	if p.Default != nil {
		s += "=" + p.Default.String()
	}
	return s
}
