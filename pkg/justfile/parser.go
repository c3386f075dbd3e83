// SPDX-License-Identifier: MPL-2.0

package justfile

import (
	"strings"
)

type (
	// parser is a recursive-descent parser over the lexer's token
	// sequence. It builds the Justfile item tables directly; graph
	// resolution and cross-item validation happen afterwards in compile.
	parser struct {
		tokens []Token
		pos    int

		justfile *Justfile
		// firstAssignment/firstRecipe/firstAlias remember the defining
		// occurrence of each name for duplicate diagnostics.
		firstAssignment map[string]Name
		firstRecipe     map[string]Name
		firstAlias      map[string]Name
	}
)

// Keywords are contextual: they only act as keywords in the positions the
// grammar gives them, so recipes and variables may still use these names.
const (
	keywordAlias  = "alias"
	keywordSet    = "set"
	keywordExport = "export"
	keywordIf     = "if"
	keywordElse   = "else"
)

// parse consumes the full token sequence and returns the populated item
// tables, or the first error encountered.
func parse(tokens []Token) (*Justfile, error) {
	p := &parser{
		tokens: tokens,
		justfile: &Justfile{
			Recipes: make(map[string]*Recipe),
			Aliases: make(map[string]*Alias),
		},
		firstAssignment: make(map[string]Name),
		firstRecipe:     make(map[string]Name),
		firstAlias:      make(map[string]Name),
	}
	if err := p.parseItems(); err != nil {
		return nil, err
	}
	return p.justfile, nil
}

func (p *parser) peek() Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Eof
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) next() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind TokenKind) (Token, bool) {
	if p.peek().Kind == kind {
		return p.next(), true
	}
	return Token{}, false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if t, ok := p.accept(kind); ok {
		return t, nil
	}
	return Token{}, &ParseError{Found: p.peek(), Expected: kind.String()}
}

// expectEol consumes an optional trailing comment and the line ending. End
// of file is accepted in place of a final end of line.
func (p *parser) expectEol() error {
	p.accept(TokenComment)
	if p.peek().Kind == TokenEof {
		return nil
	}
	_, err := p.expect(TokenEol)
	return err
}

func (p *parser) parseItems() error {
	doc := ""
	for {
		t := p.peek()
		switch t.Kind {
		case TokenEof:
			return nil
		case TokenEol:
			p.next()
			doc = ""
		case TokenComment:
			p.next()
			doc = strings.TrimSpace(t.Lexeme)
			if err := p.expectEol(); err != nil {
				return err
			}
		case TokenAt:
			p.next()
			name, err := p.expect(TokenName)
			if err != nil {
				return err
			}
			if err := p.parseRecipe(nameFromToken(name), true, doc); err != nil {
				return err
			}
			doc = ""
		case TokenName:
			if err := p.parseNamedItem(doc); err != nil {
				return err
			}
			doc = ""
		default:
			return &ParseError{Found: t, Expected: "an item (assignment, alias, set directive, or recipe)"}
		}
	}
}

// parseNamedItem disambiguates the constructs that begin with an
// identifier: alias and set directives, exported and plain assignments,
// and recipe headers.
func (p *parser) parseNamedItem(doc string) error {
	t := p.peek()
	switch {
	case t.Lexeme == keywordAlias && p.peekAt(1).Kind == TokenName && p.peekAt(2).Kind == TokenColonEquals:
		return p.parseAlias()
	case t.Lexeme == keywordSet && p.peekAt(1).Kind == TokenName:
		return p.parseSet()
	case t.Lexeme == keywordExport && p.peekAt(1).Kind == TokenName &&
		(p.peekAt(2).Kind == TokenColonEquals || p.peekAt(2).Kind == TokenEquals):
		p.next()
		return p.parseAssignment(true)
	case p.peekAt(1).Kind == TokenColonEquals || p.peekAt(1).Kind == TokenEquals:
		return p.parseAssignment(false)
	default:
		p.next()
		return p.parseRecipe(nameFromToken(t), false, doc)
	}
}

func (p *parser) parseAssignment(exported bool) error {
	nameToken, err := p.expect(TokenName)
	if err != nil {
		return err
	}
	p.next() // ":=" or "="
	value, err := p.parseExpression()
	if err != nil {
		return err
	}
	if err := p.expectEol(); err != nil {
		return err
	}
	name := nameFromToken(nameToken)
	if first, ok := p.firstAssignment[name.Lexeme]; ok {
		return &DuplicateVariableError{Name: name, First: first}
	}
	p.firstAssignment[name.Lexeme] = name
	p.justfile.Assignments = append(p.justfile.Assignments, &Assignment{
		Name:     name,
		Value:    value,
		Exported: exported,
	})
	return nil
}

func (p *parser) parseAlias() error {
	p.next() // "alias"
	nameToken, err := p.expect(TokenName)
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenColonEquals); err != nil {
		return err
	}
	targetToken, err := p.expect(TokenName)
	if err != nil {
		return err
	}
	if err := p.expectEol(); err != nil {
		return err
	}
	name := nameFromToken(nameToken)
	if first, ok := p.firstAlias[name.Lexeme]; ok {
		return &DuplicateAliasError{Name: name, First: first}
	}
	p.firstAlias[name.Lexeme] = name
	alias := &Alias{Name: name, Target: nameFromToken(targetToken)}
	p.justfile.Aliases[name.Lexeme] = alias
	p.justfile.aliasOrder = append(p.justfile.aliasOrder, name.Lexeme)
	return nil
}

func (p *parser) parseSet() error {
	p.next() // "set"
	nameToken, err := p.expect(TokenName)
	if err != nil {
		return err
	}
	switch nameToken.Lexeme {
	case settingShell:
		value, err := p.parseSettingValue()
		if err != nil {
			return err
		}
		p.justfile.Settings.Shell = value
	case settingShellArgs:
		value, err := p.parseSettingValue()
		if err != nil {
			return err
		}
		p.justfile.Settings.ShellArgs = append(p.justfile.Settings.ShellArgs, value)
	case settingExport:
		p.justfile.Settings.Export = true
	case settingQuiet:
		p.justfile.Settings.Quiet = true
	default:
		return &ParseError{
			Found:    nameToken,
			Expected: "a setting name ('shell', 'shell-args', 'export', or 'quiet')",
		}
	}
	return p.expectEol()
}

func (p *parser) parseSettingValue() (string, error) {
	if _, err := p.expect(TokenColonEquals); err != nil {
		return "", err
	}
	t := p.peek()
	switch t.Kind {
	case TokenString:
		p.next()
		return unescapeString(t)
	case TokenRawString:
		p.next()
		return rawStringText(t), nil
	default:
		return "", &ParseError{Found: t, Expected: "a string"}
	}
}

func (p *parser) parseRecipe(name Name, quiet bool, doc string) error {
	recipe := &Recipe{
		Name:    name,
		Doc:     doc,
		Quiet:   quiet,
		Private: strings.HasPrefix(name.Lexeme, "_"),
	}

	for {
		t := p.peek()
		if t.Kind != TokenName && t.Kind != TokenPlus && t.Kind != TokenAsterisk {
			break
		}
		parameter, err := p.parseParameter()
		if err != nil {
			return err
		}
		recipe.Parameters = append(recipe.Parameters, parameter)
	}

	if _, err := p.expect(TokenColon); err != nil {
		return err
	}

	for {
		t := p.peek()
		if t.Kind == TokenName {
			p.next()
			recipe.Dependencies = append(recipe.Dependencies, &Dependency{Recipe: nameFromToken(t)})
			continue
		}
		if t.Kind == TokenParenL {
			p.next()
			dependency, err := p.parseDependencyGroup()
			if err != nil {
				return err
			}
			recipe.Dependencies = append(recipe.Dependencies, dependency)
			continue
		}
		break
	}

	if err := p.expectEol(); err != nil {
		return err
	}

	if _, ok := p.accept(TokenIndent); ok {
		if err := p.parseBody(recipe); err != nil {
			return err
		}
	}

	if first, ok := p.firstRecipe[name.Lexeme]; ok {
		return &DuplicateRecipeError{Name: name, First: first}
	}
	p.firstRecipe[name.Lexeme] = name
	p.justfile.Recipes[name.Lexeme] = recipe
	p.justfile.RecipeOrder = append(p.justfile.RecipeOrder, name.Lexeme)
	return nil
}

func (p *parser) parseParameter() (*Parameter, error) {
	variadic := false
	required := false
	if _, ok := p.accept(TokenPlus); ok {
		variadic = true
		required = true
	} else if _, ok := p.accept(TokenAsterisk); ok {
		variadic = true
	}
	nameToken, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}
	parameter := &Parameter{
		Name:     nameFromToken(nameToken),
		Variadic: variadic,
		Required: required,
	}
	if _, ok := p.accept(TokenEquals); ok {
		// Defaults are restricted to primaries so the parameter list stays
		// unambiguous: a following name is the next parameter, not a
		// concatenation operand.
		parameter.Default, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}
	return parameter, nil
}

// parseDependencyGroup parses "(name argument...)" with the opening paren
// already consumed.
func (p *parser) parseDependencyGroup() (*Dependency, error) {
	nameToken, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}
	dependency := &Dependency{Recipe: nameFromToken(nameToken)}
	for {
		if _, ok := p.accept(TokenParenR); ok {
			return dependency, nil
		}
		argument, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		dependency.Arguments = append(dependency.Arguments, argument)
	}
}

func (p *parser) parseBody(recipe *Recipe) error {
	for {
		t := p.peek()
		switch t.Kind {
		case TokenDedent:
			p.next()
			finishBody(recipe)
			return nil
		case TokenEof:
			finishBody(recipe)
			return nil
		case TokenEol:
			// A blank line inside the body.
			p.next()
			recipe.Body = append(recipe.Body, Line{})
		default:
			line, err := p.parseBodyLine()
			if err != nil {
				return err
			}
			recipe.Body = append(recipe.Body, line)
		}
	}
}

func (p *parser) parseBodyLine() (Line, error) {
	var line Line
	for {
		t := p.peek()
		switch t.Kind {
		case TokenText:
			p.next()
			line.Fragments = append(line.Fragments, Fragment{Text: t.Lexeme})
		case TokenInterpolationStart:
			p.next()
			expression, err := p.parseExpression()
			if err != nil {
				return line, err
			}
			if _, err := p.expect(TokenInterpolationEnd); err != nil {
				return line, err
			}
			line.Fragments = append(line.Fragments, Fragment{Expression: expression})
		case TokenEol:
			p.next()
			return line, nil
		case TokenDedent, TokenEof:
			// The body's final line may end at a dedent or end of file;
			// leave the token for parseBody.
			return line, nil
		default:
			return line, &ParseError{Found: t, Expected: "recipe body text"}
		}
	}
}

// finishBody trims trailing blank lines, detects shebang bodies, and strips
// per-line modifier prefixes from non-shebang bodies.
func finishBody(recipe *Recipe) {
	for len(recipe.Body) > 0 && len(recipe.Body[len(recipe.Body)-1].Fragments) == 0 {
		recipe.Body = recipe.Body[:len(recipe.Body)-1]
	}
	if len(recipe.Body) == 0 {
		return
	}
	first := recipe.Body[0]
	if len(first.Fragments) > 0 && first.Fragments[0].Expression == nil &&
		strings.HasPrefix(first.Fragments[0].Text, "#!") {
		recipe.Shebang = true
		return
	}
	for i := range recipe.Body {
		stripLinePrefixes(&recipe.Body[i])
	}
}

// stripLinePrefixes consumes at most one "@" and one "-" from the start of
// the line, in either order, setting the corresponding flags.
func stripLinePrefixes(line *Line) {
	if len(line.Fragments) == 0 || line.Fragments[0].Expression != nil {
		return
	}
	text := line.Fragments[0].Text
	for len(text) > 0 {
		if text[0] == '@' && !line.Quiet {
			line.Quiet = true
			text = text[1:]
			continue
		}
		if text[0] == '-' && !line.IgnoreError {
			line.IgnoreError = true
			text = text[1:]
			continue
		}
		break
	}
	line.Fragments[0].Text = text
}

func (p *parser) parseExpression() (Expression, error) {
	t := p.peek()
	if t.Kind == TokenName && t.Lexeme == keywordIf {
		return p.parseConditional()
	}
	return p.parseConcatenation()
}

func (p *parser) parseConcatenation() (Expression, error) {
	expression, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(TokenPlus); !ok {
			return expression, nil
		}
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expression = &Concatenation{Lhs: expression, Rhs: rhs}
	}
}

func (p *parser) parseConditional() (Expression, error) {
	p.next() // "if"
	conditional := &Conditional{}
	var err error
	if conditional.Lhs, err = p.parseConcatenation(); err != nil {
		return nil, err
	}
	switch p.peek().Kind {
	case TokenEqualsEquals:
		p.next()
	case TokenBangEquals:
		p.next()
		conditional.Negated = true
	default:
		return nil, &ParseError{Found: p.peek(), Expected: "'==' or '!='"}
	}
	if conditional.Rhs, err = p.parseConcatenation(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenBraceL); err != nil {
		return nil, err
	}
	if conditional.Then, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenBraceR); err != nil {
		return nil, err
	}
	elseToken, err := p.expect(TokenName)
	if err != nil {
		return nil, &ParseError{Found: p.peek(), Expected: "'else'"}
	}
	if elseToken.Lexeme != keywordElse {
		return nil, &ParseError{Found: elseToken, Expected: "'else'"}
	}
	if _, err := p.expect(TokenBraceL); err != nil {
		return nil, err
	}
	if conditional.Else, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenBraceR); err != nil {
		return nil, err
	}
	return conditional, nil
}

func (p *parser) parsePrimary() (Expression, error) {
	t := p.peek()
	switch t.Kind {
	case TokenString:
		p.next()
		text, err := unescapeString(t)
		if err != nil {
			return nil, err
		}
		return &Literal{Text: text}, nil
	case TokenRawString:
		p.next()
		return &Literal{Text: rawStringText(t), Raw: true}, nil
	case TokenBacktick:
		p.next()
		return &Backtick{Command: t.Lexeme[1 : len(t.Lexeme)-1], Line: t.Line}, nil
	case TokenName:
		p.next()
		if _, ok := p.accept(TokenParenL); ok {
			return p.parseCall(nameFromToken(t))
		}
		return &Variable{Name: nameFromToken(t)}, nil
	case TokenParenL:
		p.next()
		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenParenR); err != nil {
			return nil, err
		}
		return expression, nil
	default:
		return nil, &ParseError{Found: t, Expected: "an expression"}
	}
}

// parseCall parses a builtin invocation with the name and opening paren
// already consumed.
func (p *parser) parseCall(function Name) (Expression, error) {
	call := &Call{Function: function}
	if _, ok := p.accept(TokenParenR); ok {
		return call, nil
	}
	for {
		argument, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, argument)
		if _, ok := p.accept(TokenComma); ok {
			continue
		}
		if _, err := p.expect(TokenParenR); err != nil {
			return nil, err
		}
		return call, nil
	}
}

// unescapeString converts a cooked string token to its value, validating
// escape sequences.
func unescapeString(t Token) (string, error) {
	body := t.Lexeme[1 : len(t.Lexeme)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", &ParseError{Found: t, Expected: "a complete escape sequence"}
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", &ParseError{
				Found:    t,
				Expected: "a valid escape sequence (\\n, \\r, \\t, \\\" or \\\\), found '\\" + string(body[i]) + "'",
			}
		}
	}
	return b.String(), nil
}

func rawStringText(t Token) string {
	return t.Lexeme[1 : len(t.Lexeme)-1]
}
