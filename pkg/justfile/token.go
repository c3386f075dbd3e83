// SPDX-License-Identifier: MPL-2.0

package justfile

import "fmt"

type (
	// TokenKind identifies the grammatical class of a Token.
	TokenKind int

	// Token is a single lexeme with its source position. Tokens are
	// immutable once produced by the lexer.
	Token struct {
		// Kind is the grammatical class of the token.
		Kind TokenKind
		// Lexeme is the exact source slice, including string quotes and
		// backticks.
		Lexeme string
		// Line is the 1-based source line the token starts on.
		Line int
		// Column is the 1-based source column the token starts at.
		Column int
	}
)

const (
	// TokenAsterisk is "*" (zero-or-more variadic marker).
	TokenAsterisk TokenKind = iota
	// TokenAt is "@" (quiet recipe marker).
	TokenAt
	// TokenBacktick is a `command` span, quotes included in the lexeme.
	TokenBacktick
	// TokenBangEquals is "!=".
	TokenBangEquals
	// TokenBraceL is "{".
	TokenBraceL
	// TokenBraceR is "}".
	TokenBraceR
	// TokenColon is ":".
	TokenColon
	// TokenColonEquals is ":=".
	TokenColonEquals
	// TokenComma is ",".
	TokenComma
	// TokenComment is a "#" comment; the lexeme excludes the "#".
	TokenComment
	// TokenDedent marks the end of an indented recipe body.
	TokenDedent
	// TokenEof marks the end of input.
	TokenEof
	// TokenEol is an end of line.
	TokenEol
	// TokenEquals is "=".
	TokenEquals
	// TokenEqualsEquals is "==".
	TokenEqualsEquals
	// TokenIndent marks the start of an indented recipe body.
	TokenIndent
	// TokenInterpolationStart is "{{" inside a recipe body line.
	TokenInterpolationStart
	// TokenInterpolationEnd is "}}" closing an interpolation.
	TokenInterpolationEnd
	// TokenName is an identifier.
	TokenName
	// TokenParenL is "(".
	TokenParenL
	// TokenParenR is ")".
	TokenParenR
	// TokenPlus is "+" (concatenation, one-or-more variadic marker).
	TokenPlus
	// TokenRawString is a '...' string literal, quotes included.
	TokenRawString
	// TokenString is a "..." string literal, quotes included.
	TokenString
	// TokenText is literal recipe body text.
	TokenText
)

var tokenKindNames = map[TokenKind]string{
	TokenAsterisk:           "'*'",
	TokenAt:                 "'@'",
	TokenBacktick:           "backtick",
	TokenBangEquals:         "'!='",
	TokenBraceL:             "'{'",
	TokenBraceR:             "'}'",
	TokenColon:              "':'",
	TokenColonEquals:        "':='",
	TokenComma:              "','",
	TokenComment:            "comment",
	TokenDedent:             "dedent",
	TokenEof:                "end of file",
	TokenEol:                "end of line",
	TokenEquals:             "'='",
	TokenEqualsEquals:       "'=='",
	TokenIndent:             "indent",
	TokenInterpolationStart: "'{{'",
	TokenInterpolationEnd:   "'}}'",
	TokenName:               "name",
	TokenParenL:             "'('",
	TokenParenR:             "')'",
	TokenPlus:               "'+'",
	TokenRawString:          "raw string",
	TokenString:             "string",
	TokenText:               "text",
}

// String returns a human-readable name for the token kind, used in
// expected-vs-found parse diagnostics.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}
