// SPDX-License-Identifier: MPL-2.0

package justfile

import "strings"

type (
	// lexer converts source text into a flat token sequence. It is
	// line-oriented: recipe bodies are delimited by the indentation of
	// their first line, tracked in indent, and body text is tokenized in a
	// separate mode that recognizes only "{{" interpolations, line
	// continuations, and line endings.
	lexer struct {
		src    string
		pos    int
		line   int
		column int
		// indent is the leading whitespace that opened the current recipe
		// body, or "" at top level.
		indent string
		tokens []Token
	}
)

// lex tokenizes src, or fails with a LexError at the offending position.
func lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1, column: 1}
	for !l.eof() {
		if err := l.lexLine(); err != nil {
			return nil, err
		}
	}
	if l.indent != "" {
		l.emit(TokenDedent, "", l.line, l.column)
	}
	l.emit(TokenEof, "", l.line, l.column)
	return l.tokens, nil
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) emit(kind TokenKind, lexeme string, line, column int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column})
}

// advance consumes n bytes, maintaining the line and column counters.
func (l *lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *lexer) errorf(reason string) error {
	return &LexError{Line: l.line, Column: l.column, Reason: reason}
}

// leadingWhitespace returns the run of spaces and tabs at the current
// position without consuming it.
func (l *lexer) leadingWhitespace() string {
	end := l.pos
	for end < len(l.src) && (l.src[end] == ' ' || l.src[end] == '\t') {
		end++
	}
	return l.src[l.pos:end]
}

// lexLine tokenizes one source line. The position must be at a line start.
func (l *lexer) lexLine() error {
	ws := l.leadingWhitespace()

	// Blank lines never terminate a recipe body and carry no indentation
	// significance; they reduce to a bare end of line.
	rest := l.pos + len(ws)
	if rest >= len(l.src) || l.src[rest] == '\n' || (l.src[rest] == '\r' && rest+1 < len(l.src) && l.src[rest+1] == '\n') {
		l.advance(len(ws))
		return l.lexEol()
	}

	if l.indent != "" {
		switch {
		case strings.HasPrefix(ws, l.indent):
			// Continuation of the current body. Whitespace beyond the
			// established indent belongs to the line's text.
			l.advance(len(l.indent))
			return l.lexText()
		case ws == "":
			l.emit(TokenDedent, "", l.line, l.column)
			l.indent = ""
		default:
			return l.errorf("inconsistent leading whitespace")
		}
	}

	if ws != "" {
		if strings.ContainsRune(ws, ' ') && strings.ContainsRune(ws, '\t') {
			return l.errorf("leading whitespace mixes spaces and tabs")
		}
		l.emit(TokenIndent, ws, l.line, l.column)
		l.advance(len(ws))
		l.indent = ws
		return l.lexText()
	}
	return l.lexTokens(false)
}

// lexEol consumes an optional carriage return and the line feed, emitting a
// single end-of-line token. At end of input it emits nothing; the parser
// accepts end of file wherever it accepts end of line.
func (l *lexer) lexEol() error {
	if l.eof() {
		return nil
	}
	line, column := l.line, l.column
	if l.peek(0) == '\r' {
		if l.peek(1) != '\n' {
			return l.errorf("bare carriage return")
		}
		l.advance(1)
	}
	if l.peek(0) != '\n' {
		return l.errorf("expected end of line")
	}
	l.advance(1)
	l.emit(TokenEol, "", line, column)
	return nil
}

// lexTokens tokenizes top-level constructs up to the end of the line. When
// interpolation is true it instead runs inside a "{{ ... }}" span and
// returns at the closing delimiter without consuming the line ending.
func (l *lexer) lexTokens(interpolation bool) error {
	depth := 0
	for {
		if l.eof() {
			if interpolation {
				return l.errorf("unterminated interpolation")
			}
			return nil
		}
		line, column := l.line, l.column
		c := l.peek(0)
		switch {
		case c == ' ' || c == '\t':
			l.advance(1)
		case c == '\n' || c == '\r':
			if interpolation {
				return l.errorf("unterminated interpolation")
			}
			return l.lexEol()
		case c == '\\' && l.peek(1) == '\n':
			l.advance(2)
		case c == '\\' && l.peek(1) == '\r' && l.peek(2) == '\n':
			l.advance(3)
		case c == '#' && !interpolation:
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				end = len(l.src) - l.pos
			}
			l.emit(TokenComment, strings.TrimSuffix(l.src[l.pos+1:l.pos+end], "\r"), line, column)
			l.advance(end)
		case c == '}' && l.peek(1) == '}' && interpolation && depth == 0:
			l.emit(TokenInterpolationEnd, "}}", line, column)
			l.advance(2)
			return nil
		case isNameStart(c):
			end := l.pos + 1
			for end < len(l.src) && isNameContinue(l.src[end]) {
				end++
			}
			l.emit(TokenName, l.src[l.pos:end], line, column)
			l.advance(end - l.pos)
		case c == '"':
			if err := l.lexString(TokenString, '"', false); err != nil {
				return err
			}
		case c == '\'':
			if err := l.lexString(TokenRawString, '\'', true); err != nil {
				return err
			}
		case c == '`':
			if err := l.lexString(TokenBacktick, '`', true); err != nil {
				return err
			}
		case c == ':':
			if l.peek(1) == '=' {
				l.emit(TokenColonEquals, ":=", line, column)
				l.advance(2)
			} else {
				l.emit(TokenColon, ":", line, column)
				l.advance(1)
			}
		case c == '=':
			if l.peek(1) == '=' {
				l.emit(TokenEqualsEquals, "==", line, column)
				l.advance(2)
			} else {
				l.emit(TokenEquals, "=", line, column)
				l.advance(1)
			}
		case c == '!':
			if l.peek(1) != '=' {
				return l.errorf("expected '=' after '!'")
			}
			l.emit(TokenBangEquals, "!=", line, column)
			l.advance(2)
		case c == '{':
			depth++
			l.emit(TokenBraceL, "{", line, column)
			l.advance(1)
		case c == '}':
			depth--
			l.emit(TokenBraceR, "}", line, column)
			l.advance(1)
		case c == '+':
			l.emit(TokenPlus, "+", line, column)
			l.advance(1)
		case c == '*':
			l.emit(TokenAsterisk, "*", line, column)
			l.advance(1)
		case c == ',':
			l.emit(TokenComma, ",", line, column)
			l.advance(1)
		case c == '(':
			l.emit(TokenParenL, "(", line, column)
			l.advance(1)
		case c == ')':
			l.emit(TokenParenR, ")", line, column)
			l.advance(1)
		case c == '@':
			l.emit(TokenAt, "@", line, column)
			l.advance(1)
		default:
			return l.errorf("unknown start of token '" + string(rune(c)) + "'")
		}
	}
}

// lexString consumes a quoted span. Cooked strings may not contain a bare
// line feed; raw strings and backticks may.
func (l *lexer) lexString(kind TokenKind, terminator byte, multiline bool) error {
	line, column := l.line, l.column
	end := l.pos + 1
	for {
		if end >= len(l.src) {
			// end may sit past the input when a trailing backslash
			// consumed the closing quote position.
			l.advance(len(l.src) - l.pos)
			return &LexError{Line: line, Column: column, Reason: "unterminated " + unterminatedName(kind)}
		}
		c := l.src[end]
		switch {
		case c == terminator:
			l.emit(kind, l.src[l.pos:end+1], line, column)
			l.advance(end + 1 - l.pos)
			return nil
		case c == '\\' && kind == TokenString:
			end += 2
		case c == '\n' && !multiline:
			return &LexError{Line: line, Column: column, Reason: "unterminated " + unterminatedName(kind)}
		default:
			end++
		}
	}
}

func unterminatedName(kind TokenKind) string {
	switch kind {
	case TokenBacktick:
		return "backtick"
	case TokenRawString:
		return "raw string"
	default:
		return "string"
	}
}

// lexText tokenizes the content of a recipe body line: literal text
// interleaved with "{{ ... }}" interpolations. A backslash immediately
// before the line ending joins the next line, dropping the backslash, the
// newline, and the recipe's indentation.
func (l *lexer) lexText() error {
	var text strings.Builder
	line, column := l.line, l.column
	flush := func() {
		if text.Len() > 0 {
			l.emit(TokenText, text.String(), line, column)
			text.Reset()
		}
	}
	for {
		if l.eof() {
			flush()
			return nil
		}
		c := l.peek(0)
		switch {
		case c == '\n' || (c == '\r' && l.peek(1) == '\n'):
			flush()
			return l.lexEol()
		case c == '\\' && l.peek(1) == '\n',
			c == '\\' && l.peek(1) == '\r' && l.peek(2) == '\n':
			if c == '\\' && l.peek(1) == '\r' {
				l.advance(3)
			} else {
				l.advance(2)
			}
			if strings.HasPrefix(l.src[l.pos:], l.indent) {
				l.advance(len(l.indent))
			}
		case c == '{' && l.peek(1) == '{':
			flush()
			l.emit(TokenInterpolationStart, "{{", l.line, l.column)
			l.advance(2)
			if err := l.lexTokens(true); err != nil {
				return err
			}
			line, column = l.line, l.column
		default:
			text.WriteByte(c)
			l.advance(1)
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || c == '-' || ('0' <= c && c <= '9')
}
