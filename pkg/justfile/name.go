// SPDX-License-Identifier: MPL-2.0

package justfile

type (
	// Name is an identifier together with its defining source position.
	// Two Names are equal iff their lexemes match; the position exists
	// only for diagnostics.
	Name struct {
		// Lexeme is the identifier text.
		Lexeme string
		// Line is the 1-based source line of the identifier.
		Line int
		// Column is the 1-based source column of the identifier.
		Column int
	}
)

// nameFromToken builds a Name from an identifier token.
func nameFromToken(t Token) Name {
	return Name{Lexeme: t.Lexeme, Line: t.Line, Column: t.Column}
}

// String returns the identifier text.
func (n Name) String() string {
	return n.Lexeme
}

// Equal reports whether two names have the same text, irrespective of
// where they appear in the source.
func (n Name) Equal(other Name) bool {
	return n.Lexeme == other.Lexeme
}
