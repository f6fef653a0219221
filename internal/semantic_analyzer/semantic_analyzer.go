package semantic_analyzer

import (
	"fmt"

	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/lexer"
	"github.com/kievzenit/slox/internal/lox_errors"
)

// StaticError is found before execution and is reported like a syntax
// error.
type StaticError struct {
	Token   *lexer.Token
	Message string
}

func (e *StaticError) GetMessage() string { return e.Message }
func (e *StaticError) GetLine() int       { return e.Token.Line }

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

func newStaticError(token *lexer.Token, format string, args ...any) *StaticError {
	return &StaticError{
		Token:   token,
		Message: fmt.Sprintf(format, args...),
	}
}

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
)

type SemanticAnalyzer struct {
	eh    lox_errors.ErrorHandler
	stmts []ast.Stmt

	currentFunction functionKind
}

func NewSemanticAnalyzer(eh lox_errors.ErrorHandler, stmts []ast.Stmt) *SemanticAnalyzer {
	return &SemanticAnalyzer{
		eh:    eh,
		stmts: stmts,

		currentFunction: noFunction,
	}
}

// Analyze reports every static error in the program and returns false when
// there was at least one.
func (sa *SemanticAnalyzer) Analyze() bool {
	return sa.analyzeStmts(sa.stmts)
}

func (sa *SemanticAnalyzer) analyzeStmts(stmts []ast.Stmt) bool {
	ok := true
	for _, stmt := range stmts {
		if !sa.analyzeStmt(stmt) {
			ok = false
		}
	}
	return ok
}

func (sa *SemanticAnalyzer) analyzeStmt(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return sa.analyzeStmts(s.Stmts)
	case *ast.IfStmt:
		ok := sa.analyzeStmt(s.Then)
		if s.Else != nil && !sa.analyzeStmt(s.Else) {
			ok = false
		}
		return ok
	case *ast.WhileStmt:
		return sa.analyzeStmt(s.Body)
	case *ast.FunctionStmt:
		return sa.analyzeFunctionStmt(s)
	case *ast.ReturnStmt:
		if sa.currentFunction == noFunction {
			sa.eh.AddError(newStaticError(s.Keyword, "can't return from top-level code"))
			return false
		}
	}

	return true
}

func (sa *SemanticAnalyzer) analyzeFunctionStmt(s *ast.FunctionStmt) bool {
	ok := true

	seen := make(map[string]struct{}, len(s.Params))
	for _, param := range s.Params {
		if _, dup := seen[param.Lexeme]; dup {
			sa.eh.AddError(newStaticError(param, "duplicate parameter '%s'", param.Lexeme))
			ok = false
			continue
		}
		seen[param.Lexeme] = struct{}{}
	}

	enclosing := sa.currentFunction
	sa.currentFunction = inFunction
	defer func() { sa.currentFunction = enclosing }()

	if !sa.analyzeStmts(s.Body) {
		ok = false
	}
	return ok
}
