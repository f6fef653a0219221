package ast

import "github.com/kievzenit/slox/internal/lexer"

type ExprStmt struct {
	Expr Expr
}

type PrintStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

// VarStmt declares Name in the current scope; Initializer may be nil.
type VarStmt struct {
	StartToken *lexer.Token

	Name        *lexer.Token
	Initializer Expr
}

type BlockStmt struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

type IfStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body Stmt
}

type FunctionStmt struct {
	StartToken *lexer.Token

	Name   *lexer.Token
	Params []*lexer.Token
	Body   []Stmt
}

// ReturnStmt's Value is nil for a bare "return;".
type ReturnStmt struct {
	Keyword *lexer.Token

	Value Expr
}

func (s *ExprStmt) AstNode()     {}
func (s *PrintStmt) AstNode()    {}
func (s *VarStmt) AstNode()      {}
func (s *BlockStmt) AstNode()    {}
func (s *IfStmt) AstNode()       {}
func (s *WhileStmt) AstNode()    {}
func (s *FunctionStmt) AstNode() {}
func (s *ReturnStmt) AstNode()   {}

func (s *ExprStmt) FirstToken() *lexer.Token     { return s.Expr.FirstToken() }
func (s *PrintStmt) FirstToken() *lexer.Token    { return s.StartToken }
func (s *VarStmt) FirstToken() *lexer.Token      { return s.StartToken }
func (s *BlockStmt) FirstToken() *lexer.Token    { return s.StartToken }
func (s *IfStmt) FirstToken() *lexer.Token       { return s.StartToken }
func (s *WhileStmt) FirstToken() *lexer.Token    { return s.StartToken }
func (s *FunctionStmt) FirstToken() *lexer.Token { return s.StartToken }
func (s *ReturnStmt) FirstToken() *lexer.Token   { return s.Keyword }

func (s *ExprStmt) StmtNode()     {}
func (s *PrintStmt) StmtNode()    {}
func (s *VarStmt) StmtNode()      {}
func (s *BlockStmt) StmtNode()    {}
func (s *IfStmt) StmtNode()       {}
func (s *WhileStmt) StmtNode()    {}
func (s *FunctionStmt) StmtNode() {}
func (s *ReturnStmt) StmtNode()   {}
