package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type LexerError struct {
	Message string

	Line   int
	Column int
}

func newInvalidCharacterError(unexpected rune, line int, column int) *LexerError {
	return &LexerError{
		Message: fmt.Sprintf("invalid character '%c'", unexpected),
		Line:    line,
		Column:  column,
	}
}

func newUnterminatedStringError(line int, column int) *LexerError {
	return &LexerError{
		Message: "unterminated string",
		Line:    line,
		Column:  column,
	}
}

func (e *LexerError) GetMessage() string {
	return e.Message
}

func (e *LexerError) GetLine() int {
	return e.Line
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Lexer scans a source buffer once. Every process* method starts with pos on
// the first character of its token and leaves pos on the last one.
type Lexer struct {
	buf []byte
	pos int

	line      int
	lineStart int

	start       int
	startLine   int
	startColumn int
}

func NewLexer(buf []byte) *Lexer {
	return &Lexer{
		buf: buf,
		pos: 0,

		line:      1,
		lineStart: 0,
	}
}

// Tokenize scans the whole buffer. The returned slice always ends with a
// single EOF token; the first lexical error aborts the scan.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)

	for l.hasChars() {
		l.start = l.pos
		l.startLine = l.line
		l.startColumn = l.column()

		switch {
		case l.isCurrSkippable():
			if l.isCurrNewline() {
				l.newline()
			}

		case l.isCurrDigit():
			tokens = append(tokens, l.processNumber())

		case l.isCurrIdentifierStart():
			tokens = append(tokens, l.processIdentifier())

		case l.read() == '"':
			token, err := l.processStringLiteral()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)

		case l.read() == '/' && l.hasNext() && l.next() == '/':
			l.processOneLineComment()

		case l.isCurrPunctuation():
			tokens = append(tokens, l.processPunctuation())

		default:
			unexpected, _ := utf8.DecodeRune(l.buf[l.pos:])
			return nil, newInvalidCharacterError(unexpected, l.startLine, l.startColumn)
		}

		l.advance()
	}

	tokens = append(tokens, Token{
		Kind:   EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column(),
	})

	return tokens, nil
}

func (l *Lexer) isCurrIdentifierStart() bool {
	return isAlpha(l.read())
}

func (l *Lexer) isCurrDigit() bool {
	return isDigit(l.read())
}

func (l *Lexer) isCurrPunctuation() bool {
	switch l.read() {
	case '(', ')', '{', '}', ',', '.', '-', '+', ';', '/', '*', '!', '=', '<', '>':
		return true
	}
	return false
}

func (l *Lexer) isCurrNewline() bool {
	return l.read() == '\n'
}

func (l *Lexer) isCurrSkippable() bool {
	switch l.read() {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

func (l *Lexer) processIdentifier() Token {
	for l.hasNext() && (isAlpha(l.next()) || isDigit(l.next())) {
		l.advance()
	}

	identifier := l.lexeme()
	kind := LookupKeyword(identifier)
	if kind == IDENTIFIER {
		return l.makeToken(IDENTIFIER, identifier)
	}

	return l.makeToken(kind, nil)
}

// processNumber consumes digits, then a '.' only when a digit follows it, so
// "1." scans as NUMBER DOT.
func (l *Lexer) processNumber() Token {
	for l.hasNext() && isDigit(l.next()) {
		l.advance()
	}

	if l.hasNext() && l.next() == '.' && l.pos+2 < len(l.buf) && isDigit(l.buf[l.pos+2]) {
		l.advance()
		for l.hasNext() && isDigit(l.next()) {
			l.advance()
		}
	}

	// a run of digits only fails to parse on overflow, which yields +Inf
	value, _ := strconv.ParseFloat(l.lexeme(), 64)

	return l.makeToken(NUMBER, value)
}

func (l *Lexer) processStringLiteral() (Token, error) {
	var value strings.Builder

	for {
		l.advance()
		if !l.hasChars() {
			return Token{}, newUnterminatedStringError(l.startLine, l.startColumn)
		}

		switch c := l.read(); c {
		case '"':
			return l.makeToken(STRING, value.String()), nil
		case '\\':
			l.advance()
			if !l.hasChars() {
				return Token{}, newUnterminatedStringError(l.startLine, l.startColumn)
			}
			if l.isCurrNewline() {
				l.newline()
			}
			value.WriteByte(unescape(l.read()))
		case '\n':
			l.newline()
			value.WriteByte(c)
		default:
			value.WriteByte(c)
		}
	}
}

func (l *Lexer) processOneLineComment() {
	for l.hasNext() && l.next() != '\n' {
		l.advance()
	}
}

func (l *Lexer) processWithEquals(single TokenKind, withEquals TokenKind) Token {
	if l.hasNext() && l.next() == '=' {
		l.advance()
		return l.makeToken(withEquals, nil)
	}

	return l.makeToken(single, nil)
}

func (l *Lexer) processPunctuation() Token {
	switch l.read() {
	case '(':
		return l.makeToken(LEFT_PAREN, nil)
	case ')':
		return l.makeToken(RIGHT_PAREN, nil)
	case '{':
		return l.makeToken(LEFT_BRACE, nil)
	case '}':
		return l.makeToken(RIGHT_BRACE, nil)
	case ',':
		return l.makeToken(COMMA, nil)
	case '.':
		return l.makeToken(DOT, nil)
	case '-':
		return l.makeToken(MINUS, nil)
	case '+':
		return l.makeToken(PLUS, nil)
	case ';':
		return l.makeToken(SEMICOLON, nil)
	case '/':
		return l.makeToken(SLASH, nil)
	case '*':
		return l.makeToken(STAR, nil)
	case '!':
		return l.processWithEquals(BANG, BANG_EQUAL)
	case '=':
		return l.processWithEquals(EQUAL, EQUAL_EQUAL)
	case '<':
		return l.processWithEquals(LESS, LESS_EQUAL)
	case '>':
		return l.processWithEquals(GREATER, GREATER_EQUAL)
	}

	panic("unreachable")
}

func (l *Lexer) makeToken(kind TokenKind, literal any) Token {
	return Token{
		Kind:    kind,
		Lexeme:  l.lexeme(),
		Literal: literal,

		Line:   l.startLine,
		Column: l.startColumn,
	}
}

func (l *Lexer) lexeme() string {
	return string(l.buf[l.start : l.pos+1])
}

func (l *Lexer) newline() {
	l.line++
	l.lineStart = l.pos + 1
}

func (l *Lexer) column() int {
	return l.pos - l.lineStart + 1
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return c
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) hasNext() bool {
	return l.pos+1 < len(l.buf)
}

func (l *Lexer) advance()   { l.pos++ }
func (l *Lexer) next() byte { return l.buf[l.pos+1] }
func (l *Lexer) read() byte { return l.buf[l.pos] }
