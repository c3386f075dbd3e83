// SPDX-License-Identifier: MPL-2.0

package justfile

import "strings"

type (
	// Expression is a value-producing node in a justfile. It is a closed
	// set of variants; the evaluator switches exhaustively on the concrete
	// types rather than dispatching through this interface.
	Expression interface {
		// String renders the expression in canonical, re-parseable form.
		String() string
		// Variables appends every variable name referenced anywhere in the
		// expression tree, including both branches of conditionals.
		Variables(names []Name) []Name

		// expression restricts implementations to this package.
		expression()
	}

	// Literal is a string literal. Text holds the unescaped value.
	Literal struct {
		Text string
		// Raw records whether the source used the verbatim '...' form,
		// so rendering can reproduce it.
		Raw bool
	}

	// Variable is a reference to an assignment or recipe parameter.
	Variable struct {
		Name Name
	}

	// Concatenation joins the values of two expressions with "+".
	Concatenation struct {
		Lhs Expression
		Rhs Expression
	}

	// Conditional compares Lhs and Rhs for equality (inequality when
	// Negated) and produces the value of exactly one branch. The untaken
	// branch is never evaluated.
	Conditional struct {
		Lhs     Expression
		Rhs     Expression
		Negated bool
		Then    Expression
		Else    Expression
	}

	// Call invokes one of the builtin functions.
	Call struct {
		Function  Name
		Arguments []Expression
	}

	// Backtick runs Command through the shell at evaluation time and
	// produces its captured standard output.
	Backtick struct {
		Command string
		// Line is the 1-based source line of the opening backtick, kept
		// for failure diagnostics.
		Line int
	}
)

func (*Literal) expression()       {}
func (*Variable) expression()      {}
func (*Concatenation) expression() {}
func (*Conditional) expression()   {}
func (*Call) expression()          {}
func (*Backtick) expression()      {}

func (l *Literal) String() string {
	if l.Raw {
		return "'" + l.Text + "'"
	}
	return enquote(l.Text)
}

func (v *Variable) String() string {
	return v.Name.Lexeme
}

func (c *Concatenation) String() string {
	return c.Lhs.String() + " + " + c.Rhs.String()
}

func (c *Conditional) String() string {
	operator := "=="
	if c.Negated {
		operator = "!="
	}
	return "if " + c.Lhs.String() + " " + operator + " " + c.Rhs.String() +
		" { " + c.Then.String() + " } else { " + c.Else.String() + " }"
}

func (c *Call) String() string {
	arguments := make([]string, len(c.Arguments))
	for i, argument := range c.Arguments {
		arguments[i] = argument.String()
	}
	return c.Function.Lexeme + "(" + strings.Join(arguments, ", ") + ")"
}

func (b *Backtick) String() string {
	return "`" + b.Command + "`"
}

func (l *Literal) Variables(names []Name) []Name {
	return names
}

func (v *Variable) Variables(names []Name) []Name {
	return append(names, v.Name)
}

func (c *Concatenation) Variables(names []Name) []Name {
	return c.Rhs.Variables(c.Lhs.Variables(names))
}

func (c *Conditional) Variables(names []Name) []Name {
	names = c.Lhs.Variables(names)
	names = c.Rhs.Variables(names)
	names = c.Then.Variables(names)
	return c.Else.Variables(names)
}

func (c *Call) Variables(names []Name) []Name {
	for _, argument := range c.Arguments {
		names = argument.Variables(names)
	}
	return names
}

func (b *Backtick) Variables(names []Name) []Name {
	return names
}

// enquote renders text as a cooked string literal, escaping the characters
// the lexer recognizes.
func enquote(text string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range text {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
