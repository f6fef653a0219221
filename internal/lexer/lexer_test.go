package lexer

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := NewLexer([]byte(src)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return tokens
}

func kindsOf(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, token.Kind)
	}
	return out
}

func wantKinds(t *testing.T, src string, want ...TokenKind) []Token {
	t.Helper()
	got := toks(t, src)
	if !reflect.DeepEqual(kindsOf(got), want) {
		t.Fatalf("\nsource:\n%s\nwant kinds:\n%v\ngot kinds:\n%v\n", src, want, kindsOf(got))
	}
	return got
}

func TestEmptySourceYieldsOnlyEOF(t *testing.T) {
	got := wantKinds(t, "", EOF)
	if got[0].Lexeme != "" || got[0].Line != 1 {
		t.Fatalf("unexpected EOF token %#v", got[0])
	}
}

func TestSingleCharacterTokens(t *testing.T) {
	wantKinds(t, "().+;", LEFT_PAREN, RIGHT_PAREN, DOT, PLUS, SEMICOLON, EOF)
	wantKinds(t, "{},-*/", LEFT_BRACE, RIGHT_BRACE, COMMA, MINUS, STAR, SLASH, EOF)
}

func TestTwoCharacterOperatorsAreGreedy(t *testing.T) {
	wantKinds(t, "! != = == < <= > >=",
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, EOF)
	wantKinds(t, "!==", BANG_EQUAL, EQUAL, EOF)
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		src   string
		value float64
	}{
		{"0", 0},
		{"7", 7},
		{"123", 123},
		{"45.67", 45.67},
		{"0.5", 0.5},
		{"1000000.000001", 1000000.000001},
	}

	for _, tt := range tests {
		got := wantKinds(t, tt.src, NUMBER, EOF)
		if got[0].Lexeme != tt.src {
			t.Fatalf("lexeme = %q, want %q", got[0].Lexeme, tt.src)
		}
		if got[0].Literal.(float64) != tt.value {
			t.Fatalf("literal = %v, want %v", got[0].Literal, tt.value)
		}
	}
}

func TestTrailingDotIsNotPartOfNumber(t *testing.T) {
	got := wantKinds(t, "1.", NUMBER, DOT, EOF)
	if got[0].Lexeme != "1" {
		t.Fatalf("expected lexeme 1, got %q", got[0].Lexeme)
	}
	wantKinds(t, "1.foo", NUMBER, DOT, IDENTIFIER, EOF)
	wantKinds(t, ".5", DOT, NUMBER, EOF)
}

func TestIdentifiersAndKeywords(t *testing.T) {
	got := wantKinds(t, "var _tmp1 = nil and orchid or fun",
		VAR, IDENTIFIER, EQUAL, NIL, AND, IDENTIFIER, OR, FUN, EOF)
	if got[1].Literal.(string) != "_tmp1" {
		t.Fatalf("identifier literal = %v", got[1].Literal)
	}
	if got[5].Lexeme != "orchid" {
		t.Fatalf("keyword prefix must not split identifiers, got %q", got[5].Lexeme)
	}

	wantKinds(t, "and class else false for fun if nil or print return super this true var while",
		AND, CLASS, ELSE, FALSE, FOR, FUN, IF, NIL, OR, PRINT, RETURN, SUPER, THIS, TRUE, VAR, WHILE, EOF)
}

func TestStringLiterals(t *testing.T) {
	got := wantKinds(t, `"hello" "a\"b" "tab\there"`, STRING, STRING, STRING, EOF)
	if got[0].Literal.(string) != "hello" || got[0].Lexeme != `"hello"` {
		t.Fatalf("unexpected string token %#v", got[0])
	}
	if got[1].Literal.(string) != `a"b` {
		t.Fatalf("escaped quote not decoded: %q", got[1].Literal)
	}
	if got[2].Literal.(string) != "tab\there" {
		t.Fatalf("escaped tab not decoded: %q", got[2].Literal)
	}
}

func TestMultilineStringAdvancesLine(t *testing.T) {
	got := wantKinds(t, "\"a\nb\" x", STRING, IDENTIFIER, EOF)
	if got[0].Line != 1 || got[1].Line != 2 {
		t.Fatalf("unexpected lines %d, %d", got[0].Line, got[1].Line)
	}
}

func TestCommentsAndWhitespaceAreDiscarded(t *testing.T) {
	got := wantKinds(t, "// leading comment\nprint 1; // trailing\n\t\r\n  2 / 3",
		PRINT, NUMBER, SEMICOLON, NUMBER, SLASH, NUMBER, EOF)
	if got[0].Line != 2 || got[3].Line != 4 {
		t.Fatalf("unexpected lines %d, %d", got[0].Line, got[3].Line)
	}
	if got[3].Column != 3 {
		t.Fatalf("expected column 3, got %d", got[3].Column)
	}
}

func TestLineNumbersNeverDecrease(t *testing.T) {
	tokens := toks(t, "var a = 1;\n{\n  print a;\n}\n\"x\ny\" + a;")
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Line < tokens[i-1].Line {
			t.Fatalf("line decreased at token %d: %v", i, tokens[i].String())
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := NewLexer([]byte("print \"oops;")).Tokenize()
	lexErr, ok := err.(*LexerError)
	if !ok {
		t.Fatalf("expected *LexerError, got %T", err)
	}
	if lexErr.Message != "unterminated string" || lexErr.Line != 1 || lexErr.Column != 7 {
		t.Fatalf("unexpected error %#v", lexErr)
	}
}

func TestInvalidCharacter(t *testing.T) {
	_, err := NewLexer([]byte("var a = 1;\na @ b")).Tokenize()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "[line 2] Error: invalid character '@'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestInvalidNonASCIICharacter(t *testing.T) {
	_, err := NewLexer([]byte("var é = 1;")).Tokenize()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "[line 1] Error: invalid character 'é'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestTokenString(t *testing.T) {
	tokens := toks(t, "foo")
	if got := tokens[0].String(); got != "[IDENTIFIER 'foo']" {
		t.Fatalf("unexpected token text %q", got)
	}
	if got := tokens[1].String(); got != "[EOF '']" {
		t.Fatalf("unexpected EOF text %q", got)
	}
}

func TestTokenScannerStopsAtEOF(t *testing.T) {
	scanner := NewTokenScanner(toks(t, "a b"))
	if scanner.Previous() != nil {
		t.Fatalf("expected no previous token at start")
	}
	if scanner.Read().Lexeme != "a" || scanner.Read().Lexeme != "b" {
		t.Fatalf("unexpected read order")
	}
	if scanner.HasTokens() {
		t.Fatalf("expected scanner to be at EOF")
	}
	if scanner.Read().Kind != EOF || scanner.Read().Kind != EOF {
		t.Fatalf("Read must not move past EOF")
	}
	if scanner.Previous().Lexeme != "b" {
		t.Fatalf("Previous should stay on b, got %v", scanner.Previous().String())
	}
}
