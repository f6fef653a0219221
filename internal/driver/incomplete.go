package driver

import (
	"errors"

	"github.com/kievzenit/slox/internal/lexer"
)

// IsIncomplete reports whether source stops inside a string literal or with
// an unclosed '(' or '{'. The REPL keeps reading lines while it is true.
func IsIncomplete(source string) bool {
	tokens, err := lexer.NewLexer([]byte(source)).Tokenize()
	if err != nil {
		var lexErr *lexer.LexerError
		return errors.As(err, &lexErr) && lexErr.Message == "unterminated string"
	}

	depth := 0
	for _, token := range tokens {
		switch token.Kind {
		case lexer.LEFT_PAREN, lexer.LEFT_BRACE:
			depth++
		case lexer.RIGHT_PAREN, lexer.RIGHT_BRACE:
			depth--
		}
	}
	return depth > 0
}
