package ast

import (
	"strconv"
	"strings"
)

// FormatLiteral renders a literal value by its canonical text: numbers in
// their shortest form ("2", "45.67"), strings without quotes.
func FormatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	}

	panic("unreachable")
}

func parenthesize(name string, parts ...string) string {
	var b strings.Builder

	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}
	b.WriteByte(')')

	return b.String()
}

func printStmts(stmts []Stmt) string {
	lines := make([]string, len(stmts))
	for i, stmt := range stmts {
		lines[i] = stmt.String()
	}
	return strings.Join(lines, "\n")
}

func stringsOf[T AstNode](nodes []T) []string {
	out := make([]string, len(nodes))
	for i, node := range nodes {
		out[i] = node.String()
	}
	return out
}

func (e *LiteralExpr) String() string {
	return FormatLiteral(e.Value)
}

func (e *GroupingExpr) String() string {
	return parenthesize("group", e.Inner.String())
}

func (e *UnaryExpr) String() string {
	return parenthesize(e.Op.Lexeme, e.Right.String())
}

func (e *BinaryExpr) String() string {
	return parenthesize(e.Op.Lexeme, e.Left.String(), e.Right.String())
}

func (e *VariableExpr) String() string {
	return e.Name.Lexeme
}

func (e *AssignExpr) String() string {
	return parenthesize("=", e.Name.Lexeme, e.Value.String())
}

func (e *CallExpr) String() string {
	return parenthesize("call", append([]string{e.Callee.String()}, stringsOf(e.Args)...)...)
}

func (s *ExprStmt) String() string {
	return parenthesize(";", s.Expr.String())
}

func (s *PrintStmt) String() string {
	return parenthesize("print", s.Expr.String())
}

func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return parenthesize("var", s.Name.Lexeme)
	}
	return parenthesize("var", s.Name.Lexeme, s.Initializer.String())
}

func (s *BlockStmt) String() string {
	return parenthesize("block", stringsOf(s.Stmts)...)
}

func (s *IfStmt) String() string {
	if s.Else == nil {
		return parenthesize("if", s.Cond.String(), s.Then.String())
	}
	return parenthesize("if", s.Cond.String(), s.Then.String(), s.Else.String())
}

func (s *WhileStmt) String() string {
	return parenthesize("while", s.Cond.String(), s.Body.String())
}

func (s *FunctionStmt) String() string {
	params := make([]string, len(s.Params))
	for i, param := range s.Params {
		params[i] = param.Lexeme
	}

	parts := []string{s.Name.Lexeme, "(" + strings.Join(params, " ") + ")"}
	return parenthesize("fun", append(parts, stringsOf(s.Body)...)...)
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return parenthesize("return")
	}
	return parenthesize("return", s.Value.String())
}
