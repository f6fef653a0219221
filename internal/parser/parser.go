package parser

import (
	"fmt"
	"slices"

	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/lexer"
	"github.com/kievzenit/slox/internal/lox_errors"
)

type SyntaxError struct {
	Token   *lexer.Token
	Message string
}

func (e *SyntaxError) GetMessage() string {
	return e.Message
}

func (e *SyntaxError) GetLine() int {
	return e.Token.Line
}

func (e *SyntaxError) Error() string {
	if e.Token.Kind == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// bailout unwinds the parser to the nearest declaration after a syntax
// error has been reported.
type bailout struct{}

type Parser struct {
	scanner lexer.TokenScanner
	eh      lox_errors.ErrorHandler

	curr   *lexer.Token
	failed bool
}

var bindingPowerLookup map[lexer.TokenKind]int = map[lexer.TokenKind]int{
	lexer.OR:            10,
	lexer.AND:           20,
	lexer.EQUAL_EQUAL:   30,
	lexer.BANG_EQUAL:    30,
	lexer.GREATER:       40,
	lexer.GREATER_EQUAL: 40,
	lexer.LESS:          40,
	lexer.LESS_EQUAL:    40,
	lexer.PLUS:          50,
	lexer.MINUS:         50,
	lexer.STAR:          60,
	lexer.SLASH:         60,
}

var statementStarts = []lexer.TokenKind{
	lexer.CLASS,
	lexer.FUN,
	lexer.VAR,
	lexer.FOR,
	lexer.IF,
	lexer.WHILE,
	lexer.PRINT,
	lexer.RETURN,
}

func NewParser(scanner lexer.TokenScanner, eh lox_errors.ErrorHandler) *Parser {
	return &Parser{
		scanner: scanner,
		eh:      eh,
		curr:    scanner.Peek(),
	}
}

// Parse returns every statement in the token stream, or nil when any syntax
// error was reported. Parsing continues after an error so that later,
// independent errors are reported in the same pass.
func (p *Parser) Parse() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)
	for p.scanner.HasTokens() {
		if stmt := p.parseDeclarationRecovering(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if p.failed {
		return nil
	}
	return stmts
}

// ParseExpression parses a single expression that must span the whole token
// stream. It returns nil on a syntax error.
func (p *Parser) ParseExpression() (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			expr = nil
		}
	}()

	expr = p.parseExpr()
	if p.scanner.HasTokens() {
		p.fail(p.curr, "expected end of expression")
	}

	if p.failed {
		return nil
	}
	return expr
}

func (p *Parser) parseDeclarationRecovering() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	return p.parseDeclaration()
}

// synchronize skips tokens until the one after a ';' or one that starts a
// statement.
func (p *Parser) synchronize() {
	p.read()

	for p.scanner.HasTokens() {
		if p.scanner.Previous().Kind == lexer.SEMICOLON {
			return
		}
		if p.isCurrAny(statementStarts...) {
			return
		}

		p.read()
	}
}

func (p *Parser) parseDeclaration() ast.Stmt {
	switch p.curr.Kind {
	case lexer.FUN:
		return p.parseFunctionStmt()
	case lexer.VAR:
		return p.parseVarStmt()
	}

	return p.parseStmt()
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curr.Kind {
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.LEFT_BRACE:
		return p.parseBlockStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	}

	return p.parseExprStmt()
}

func (p *Parser) parseFunctionStmt() *ast.FunctionStmt {
	startToken := p.expect(lexer.FUN, "expected 'fun'")
	name := p.expect(lexer.IDENTIFIER, "expected function name")
	p.expect(lexer.LEFT_PAREN, "expected '(' after function name")

	params := make([]*lexer.Token, 0)
	if p.curr.Kind != lexer.RIGHT_PAREN {
		for {
			if len(params) >= ast.MaxArgs {
				p.report(p.curr, fmt.Sprintf("can't have more than %d parameters", ast.MaxArgs))
			}
			params = append(params, p.expect(lexer.IDENTIFIER, "expected parameter name"))

			if p.match(lexer.COMMA) == nil {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "expected ')' after parameters")

	p.expect(lexer.LEFT_BRACE, "expected '{' before function body")
	body := p.parseBlockBody()

	return &ast.FunctionStmt{
		StartToken: startToken,

		Name:   name,
		Params: params,
		Body:   body,
	}
}

func (p *Parser) parseVarStmt() *ast.VarStmt {
	startToken := p.expect(lexer.VAR, "expected 'var'")
	name := p.expect(lexer.IDENTIFIER, "expected variable name")

	var initializer ast.Expr
	if p.match(lexer.EQUAL) != nil {
		initializer = p.parseExpr()
	}
	p.expect(lexer.SEMICOLON, "expected ';' after variable declaration")

	return &ast.VarStmt{
		StartToken: startToken,

		Name:        name,
		Initializer: initializer,
	}
}

func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	startToken := p.expect(lexer.PRINT, "expected 'print'")
	expr := p.parseExpr()
	p.expect(lexer.SEMICOLON, "expected ';' after value")

	return &ast.PrintStmt{
		StartToken: startToken,

		Expr: expr,
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	startToken := p.expect(lexer.LEFT_BRACE, "expected '{'")

	return &ast.BlockStmt{
		StartToken: startToken,

		Stmts: p.parseBlockBody(),
	}
}

// parseBlockBody parses declarations up to and including the closing '}'.
func (p *Parser) parseBlockBody() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)
	for p.scanner.HasTokens() && p.curr.Kind != lexer.RIGHT_BRACE {
		if stmt := p.parseDeclarationRecovering(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(lexer.RIGHT_BRACE, "expected '}' after block")

	return stmts
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	startToken := p.expect(lexer.IF, "expected 'if'")
	cond := p.parseParenExpr("if")

	then := p.parseStmt()
	var elseStmt ast.Stmt
	if p.match(lexer.ELSE) != nil {
		elseStmt = p.parseStmt()
	}

	return &ast.IfStmt{
		StartToken: startToken,

		Cond: cond,
		Then: then,
		Else: elseStmt,
	}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	startToken := p.expect(lexer.WHILE, "expected 'while'")
	cond := p.parseParenExpr("while")
	body := p.parseStmt()

	return &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}
}

// parseForStmt desugars "for (init; cond; incr) body" into
// { init; while (cond) { body; incr; } }. A missing condition becomes true;
// the outer block only exists when there is an initializer.
func (p *Parser) parseForStmt() ast.Stmt {
	startToken := p.expect(lexer.FOR, "expected 'for'")
	p.expect(lexer.LEFT_PAREN, "expected '(' after 'for'")

	var initializer ast.Stmt
	switch p.curr.Kind {
	case lexer.SEMICOLON:
		p.read()
	case lexer.VAR:
		initializer = p.parseVarStmt()
	default:
		initializer = p.parseExprStmt()
	}

	var cond ast.Expr
	if p.curr.Kind != lexer.SEMICOLON {
		cond = p.parseExpr()
	}
	p.expect(lexer.SEMICOLON, "expected ';' after loop condition")

	var increment ast.Expr
	if p.curr.Kind != lexer.RIGHT_PAREN {
		increment = p.parseExpr()
	}
	p.expect(lexer.RIGHT_PAREN, "expected ')' after for clauses")

	body := p.parseStmt()

	if increment != nil {
		body = &ast.BlockStmt{
			StartToken: body.FirstToken(),

			Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: increment}},
		}
	}

	if cond == nil {
		cond = &ast.LiteralExpr{
			StartToken: startToken,

			Value: true,
		}
	}

	var loop ast.Stmt = &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}

	if initializer != nil {
		loop = &ast.BlockStmt{
			StartToken: startToken,

			Stmts: []ast.Stmt{initializer, loop},
		}
	}

	return loop
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	keyword := p.expect(lexer.RETURN, "expected 'return'")

	var value ast.Expr
	if p.curr.Kind != lexer.SEMICOLON {
		value = p.parseExpr()
	}
	p.expect(lexer.SEMICOLON, "expected ';' after return value")

	return &ast.ReturnStmt{
		Keyword: keyword,

		Value: value,
	}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpr()
	p.expect(lexer.SEMICOLON, "expected ';' after expression")

	return &ast.ExprStmt{
		Expr: expr,
	}
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// parseAssignExpr is right-associative: a = b = c assigns c to both.
func (p *Parser) parseAssignExpr() ast.Expr {
	expr := p.parseBinaryExpr(0)

	if p.curr.Kind != lexer.EQUAL {
		return expr
	}
	equals := p.read()
	value := p.parseAssignExpr()

	if variable, ok := expr.(*ast.VariableExpr); ok {
		return &ast.AssignExpr{
			StartToken: variable.StartToken,

			Name:  variable.Name,
			Value: value,
		}
	}

	p.report(equals, "invalid assignment target")
	return expr
}

// parseBinaryExpr climbs bindingPowerLookup; every binary operator is
// left-associative.
func (p *Parser) parseBinaryExpr(bindingPower int) ast.Expr {
	left := p.parseUnaryExpr()

	for {
		op := p.curr
		currentBindingPower, ok := bindingPowerLookup[op.Kind]
		if !ok || currentBindingPower < bindingPower {
			return left
		}
		p.read()

		right := p.parseBinaryExpr(currentBindingPower + 1)

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    op,
			Right: right,
		}
	}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	if !p.isCurrAny(lexer.BANG, lexer.MINUS) {
		return p.parseCallExpr()
	}

	op := p.read()
	right := p.parseUnaryExpr()

	return &ast.UnaryExpr{
		StartToken: op,

		Op:    op,
		Right: right,
	}
}

func (p *Parser) parseCallExpr() ast.Expr {
	expr := p.parsePrimaryExpr()

	for p.curr.Kind == lexer.LEFT_PAREN {
		p.read()

		args := make([]ast.Expr, 0)
		if p.curr.Kind != lexer.RIGHT_PAREN {
			for {
				if len(args) >= ast.MaxArgs {
					p.report(p.curr, fmt.Sprintf("can't have more than %d arguments", ast.MaxArgs))
				}
				args = append(args, p.parseExpr())

				if p.match(lexer.COMMA) == nil {
					break
				}
			}
		}
		paren := p.expect(lexer.RIGHT_PAREN, "expected ')' after arguments")

		expr = &ast.CallExpr{
			StartToken: expr.FirstToken(),

			Callee: expr,
			Paren:  paren,
			Args:   args,
		}
	}

	return expr
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.curr.Kind {
	case lexer.NUMBER, lexer.STRING:
		token := p.read()
		return &ast.LiteralExpr{
			StartToken: token,

			Value: token.Literal,
		}
	case lexer.TRUE, lexer.FALSE:
		token := p.read()
		return &ast.LiteralExpr{
			StartToken: token,

			Value: token.Kind == lexer.TRUE,
		}
	case lexer.NIL:
		token := p.read()
		return &ast.LiteralExpr{
			StartToken: token,

			Value: nil,
		}
	case lexer.IDENTIFIER:
		token := p.read()
		return &ast.VariableExpr{
			StartToken: token,

			Name: token,
		}
	case lexer.LEFT_PAREN:
		startToken := p.read()
		inner := p.parseExpr()
		p.expect(lexer.RIGHT_PAREN, "expected ')' after expression")

		return &ast.GroupingExpr{
			StartToken: startToken,

			Inner: inner,
		}
	}

	p.fail(p.curr, "expected literal or open parenthesis")
	panic("unreachable")
}

func (p *Parser) parseParenExpr(keyword string) ast.Expr {
	p.expect(lexer.LEFT_PAREN, fmt.Sprintf("expected '(' after '%s'", keyword))
	expr := p.parseExpr()
	p.expect(lexer.RIGHT_PAREN, fmt.Sprintf("expected ')' after %s condition", keyword))

	return expr
}

// read consumes the current token and returns it.
func (p *Parser) read() *lexer.Token {
	token := p.scanner.Read()
	p.curr = p.scanner.Peek()
	return token
}

func (p *Parser) match(kinds ...lexer.TokenKind) *lexer.Token {
	if p.isCurrAny(kinds...) {
		return p.read()
	}
	return nil
}

func (p *Parser) expect(kind lexer.TokenKind, message string) *lexer.Token {
	if p.curr.Kind != kind {
		p.fail(p.curr, message)
	}
	return p.read()
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr.Kind)
}

// report records a syntax error without abandoning the current statement.
func (p *Parser) report(token *lexer.Token, message string) {
	p.failed = true
	p.eh.AddError(&SyntaxError{
		Token:   token,
		Message: message,
	})
}

func (p *Parser) fail(token *lexer.Token, message string) {
	p.report(token, message)
	panic(bailout{})
}
