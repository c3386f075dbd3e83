// SPDX-License-Identifier: MPL-2.0

package justfile

import "strings"

type (
	// Recipe is a named task: parameters, dependencies, and a body of
	// shell lines. Recipes are constructed once during parsing and are
	// immutable afterwards.
	Recipe struct {
		// Name is the recipe name.
		Name Name
		// Doc is the comment immediately preceding the recipe header, or
		// empty.
		Doc string
		// Quiet suppresses echoing for every body line ("@name:").
		Quiet bool
		// Private recipes (leading underscore) are hidden from listings
		// and cannot be the default target.
		Private bool
		// Parameters in declaration order.
		Parameters []*Parameter
		// Dependencies in declaration order.
		Dependencies []*Dependency
		// Body lines in declaration order.
		Body []Line
		// Shebang is true when the first body line starts with "#!"; the
		// whole body is then dispatched as one script instead of line by
		// line.
		Shebang bool
	}

	// Line is one recipe body line: its interpolation fragments plus the
	// leading modifier flags stripped from the source text.
	Line struct {
		// Fragments in order; rendering a line concatenates the rendered
		// fragments.
		Fragments []Fragment
		// Quiet suppresses echoing this line ("@" prefix).
		Quiet bool
		// IgnoreError tolerates a nonzero exit from this line ("-" prefix).
		IgnoreError bool
	}

	// Fragment is either literal text or an embedded expression; exactly
	// one of the fields is set.
	Fragment struct {
		// Text is the literal form. Meaningful when Expression is nil.
		Text string
		// Expression is the interpolated form ("{{ ... }}").
		Expression Expression
	}
)

// MinArguments returns the number of arguments the recipe requires.
func (r *Recipe) MinArguments() int {
	count := 0
	for _, parameter := range r.Parameters {
		if parameter.Default == nil && (!parameter.Variadic || parameter.Required) {
			count++
		}
	}
	return count
}

// MaxArguments returns the number of arguments the recipe accepts, or -1
// when the last parameter is variadic.
func (r *Recipe) MaxArguments() int {
	if len(r.Parameters) > 0 && r.Parameters[len(r.Parameters)-1].Variadic {
		return -1
	}
	return len(r.Parameters)
}

// String renders the recipe in canonical, re-parseable form: the doc
// comment, if any, then the header, then the body re-indented with four
// spaces.
func (r *Recipe) String() string {
	var b strings.Builder
	if r.Doc != "" {
		b.WriteString("# ")
		b.WriteString(r.Doc)
		b.WriteByte('\n')
	}
	if r.Quiet {
		b.WriteByte('@')
	}
	b.WriteString(r.Name.Lexeme)
	for _, parameter := range r.Parameters {
		b.WriteByte(' ')
		b.WriteString(parameter.String())
	}
	b.WriteByte(':')
	for _, dependency := range r.Dependencies {
		b.WriteByte(' ')
		b.WriteString(dependency.String())
	}
	for _, line := range r.Body {
		b.WriteString("\n    ")
		b.WriteString(line.String())
	}
	return b.String()
}

// String renders the line with its modifier prefixes restored.
func (l Line) String() string {
	var b strings.Builder
	if l.Quiet {
		b.WriteByte('@')
	}
	if l.IgnoreError {
		b.WriteByte('-')
	}
	for _, fragment := range l.Fragments {
		if fragment.Expression != nil {
			b.WriteString("{{")
			b.WriteString(fragment.Expression.String())
			b.WriteString("}}")
		} else {
			b.WriteString(fragment.Text)
		}
	}
	return b.String()
}
