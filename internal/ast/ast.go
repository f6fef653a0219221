package ast

import "github.com/kievzenit/slox/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
	String() string
}

// Program is the ordered statement list a parse produces.
type Program struct {
	Stmts []Stmt
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}

func (p *Program) String() string {
	return printStmts(p.Stmts)
}
