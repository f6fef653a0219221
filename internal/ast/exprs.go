package ast

import "github.com/kievzenit/slox/internal/lexer"

// MaxArgs bounds both call arguments and function parameters.
const MaxArgs = 255

// LiteralExpr holds a float64, string, bool or nil.
type LiteralExpr struct {
	StartToken *lexer.Token

	Value any
}

type GroupingExpr struct {
	StartToken *lexer.Token

	Inner Expr
}

type UnaryExpr struct {
	StartToken *lexer.Token

	Op    *lexer.Token
	Right Expr
}

// BinaryExpr covers arithmetic, comparison, equality and the logical
// AND/OR operators.
type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

type VariableExpr struct {
	StartToken *lexer.Token

	Name *lexer.Token
}

type AssignExpr struct {
	StartToken *lexer.Token

	Name  *lexer.Token
	Value Expr
}

type CallExpr struct {
	StartToken *lexer.Token

	Callee Expr
	Paren  *lexer.Token
	Args   []Expr
}

func (LiteralExpr) AstNode()  {}
func (GroupingExpr) AstNode() {}
func (UnaryExpr) AstNode()    {}
func (BinaryExpr) AstNode()   {}
func (VariableExpr) AstNode() {}
func (AssignExpr) AstNode()   {}
func (CallExpr) AstNode()     {}

func (e *LiteralExpr) FirstToken() *lexer.Token  { return e.StartToken }
func (e *GroupingExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *UnaryExpr) FirstToken() *lexer.Token    { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *VariableExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *AssignExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *CallExpr) FirstToken() *lexer.Token     { return e.StartToken }

func (LiteralExpr) ExprNode()  {}
func (GroupingExpr) ExprNode() {}
func (UnaryExpr) ExprNode()    {}
func (BinaryExpr) ExprNode()   {}
func (VariableExpr) ExprNode() {}
func (AssignExpr) ExprNode()   {}
func (CallExpr) ExprNode()     {}
