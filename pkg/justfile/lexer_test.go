// SPDX-License-Identifier: MPL-2.0

package justfile

import (
	"errors"
	"slices"
	"testing"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLex_Assignment(t *testing.T) {
	t.Parallel()
	tokens, err := lex("foo := \"bar\"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []TokenKind{TokenName, TokenColonEquals, TokenString, TokenEol, TokenEof}
	if !slices.Equal(kinds(tokens), expected) {
		t.Errorf("expected %v, got %v", expected, kinds(tokens))
	}
	if tokens[2].Lexeme != `"bar"` {
		t.Errorf("string lexeme should include quotes, got %q", tokens[2].Lexeme)
	}
}

func TestLex_RecipeBody(t *testing.T) {
	t.Parallel()
	tokens, err := lex("build:\n  echo hi\n  echo bye\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []TokenKind{
		TokenName, TokenColon, TokenEol,
		TokenIndent, TokenText, TokenEol,
		TokenText, TokenEol,
		TokenDedent, TokenEof,
	}
	if !slices.Equal(kinds(tokens), expected) {
		t.Errorf("expected %v, got %v", expected, kinds(tokens))
	}
	if tokens[4].Lexeme != "echo hi" {
		t.Errorf("unexpected body text %q", tokens[4].Lexeme)
	}
}

func TestLex_Interpolation(t *testing.T) {
	t.Parallel()
	tokens, err := lex("greet:\n  echo {{name}}!\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []TokenKind{
		TokenName, TokenColon, TokenEol,
		TokenIndent, TokenText, TokenInterpolationStart, TokenName, TokenInterpolationEnd, TokenText, TokenEol,
		TokenDedent, TokenEof,
	}
	if !slices.Equal(kinds(tokens), expected) {
		t.Errorf("expected %v, got %v", expected, kinds(tokens))
	}
}

func TestLex_BlankLineDoesNotEndBody(t *testing.T) {
	t.Parallel()
	tokens, err := lex("a:\n  one\n\n  two\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []TokenKind{
		TokenName, TokenColon, TokenEol,
		TokenIndent, TokenText, TokenEol,
		TokenEol,
		TokenText, TokenEol,
		TokenDedent, TokenEof,
	}
	if !slices.Equal(kinds(tokens), expected) {
		t.Errorf("expected %v, got %v", expected, kinds(tokens))
	}
}

func TestLex_DedentOnOutdentedLine(t *testing.T) {
	t.Parallel()
	tokens, err := lex("a:\n  one\nb:\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []TokenKind{
		TokenName, TokenColon, TokenEol,
		TokenIndent, TokenText, TokenEol,
		TokenDedent, TokenName, TokenColon, TokenEol,
		TokenEof,
	}
	if !slices.Equal(kinds(tokens), expected) {
		t.Errorf("expected %v, got %v", expected, kinds(tokens))
	}
}

func TestLex_LineContinuationInBody(t *testing.T) {
	t.Parallel()
	tokens, err := lex("a:\n  echo one \\\n  two\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var text string
	for _, tok := range tokens {
		if tok.Kind == TokenText {
			text = tok.Lexeme
		}
	}
	if text != "echo one two" {
		t.Errorf("continuation should join lines, got %q", text)
	}
}

func TestLex_CommentToken(t *testing.T) {
	t.Parallel()
	tokens, err := lex("# builds the thing\nbuild:\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokenComment || tokens[0].Lexeme != " builds the thing" {
		t.Errorf("unexpected comment token: %v %q", tokens[0].Kind, tokens[0].Lexeme)
	}
}

func TestLex_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{"unterminated string", "x := \"abc\n", "unterminated string"},
		{"unterminated string at eof", "x := \"abc", "unterminated string"},
		{"unterminated string ending in backslash", "x := \"abc\\", "unterminated string"},
		{"unterminated raw string", "x := 'abc", "unterminated raw string"},
		{"unterminated backtick", "x := `abc", "unterminated backtick"},
		{"mixed indentation", "a:\n \techo\n", "leading whitespace mixes spaces and tabs"},
		{"inconsistent indentation", "a:\n\techo 1\n  echo 2\n", "inconsistent leading whitespace"},
		{"disallowed character", "x := $\n", "unknown start of token '$'"},
		{"bare bang", "x := !\n", "expected '=' after '!'"},
		{"unterminated interpolation", "a:\n  echo {{x\n", "unterminated interpolation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := lex(tt.src)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected LexError, got %v", err)
			}
			if lexErr.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, lexErr.Reason)
			}
			if !errors.Is(err, ErrLex) {
				t.Error("lex errors must unwrap to ErrLex")
			}
		})
	}
}

func TestLex_RawStringSpansLines(t *testing.T) {
	t.Parallel()
	tokens, err := lex("x := 'a\nb'\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Kind != TokenRawString || tokens[2].Lexeme != "'a\nb'" {
		t.Errorf("unexpected raw string token: %v %q", tokens[2].Kind, tokens[2].Lexeme)
	}
}

func TestLex_Positions(t *testing.T) {
	t.Parallel()
	tokens, err := lex("a := 'x'\nbb := 'y'\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := tokens[4]
	if second.Kind != TokenName || second.Lexeme != "bb" {
		t.Fatalf("unexpected token %v %q", second.Kind, second.Lexeme)
	}
	if second.Line != 2 || second.Column != 1 {
		t.Errorf("expected 2:1, got %d:%d", second.Line, second.Column)
	}
}
