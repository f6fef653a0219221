package lexer

// TokenScanner is the parser's single forward cursor over a token slice that
// ends with EOF. Read never moves past the EOF token.
type TokenScanner interface {
	Read() *Token
	Peek() *Token
	Previous() *Token
	HasTokens() bool
}

type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, Token{Kind: EOF})
	}

	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() *Token {
	token := &s.tokens[s.pos]
	if s.HasTokens() {
		s.pos++
	}

	return token
}

func (s *SimpleTokenScanner) Peek() *Token {
	return &s.tokens[s.pos]
}

func (s *SimpleTokenScanner) Previous() *Token {
	if s.pos == 0 {
		return nil
	}
	return &s.tokens[s.pos-1]
}

func (s *SimpleTokenScanner) HasTokens() bool {
	return s.tokens[s.pos].Kind != EOF
}
