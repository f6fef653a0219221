package interpreter

import (
	"fmt"
	"strconv"

	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/lexer"
	"github.com/kievzenit/slox/internal/runtime"
)

func (i *Interpreter) evaluateExpr(expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return runtime.FromLiteral(e.Value), nil
	case *ast.GroupingExpr:
		return i.evaluateExpr(e.Inner, env)
	case *ast.UnaryExpr:
		return i.evaluateUnaryExpr(e, env)
	case *ast.BinaryExpr:
		return i.evaluateBinaryExpr(e, env)
	case *ast.VariableExpr:
		value, err := env.Get(e.Name.Lexeme)
		if err != nil {
			return nil, newRuntimeError(e.Name, "%s", err.Error())
		}
		return value, nil
	case *ast.AssignExpr:
		return i.evaluateAssignExpr(e, env)
	case *ast.CallExpr:
		return i.evaluateCallExpr(e, env)
	default:
		panic(fmt.Sprintf("unknown expression %T", expr))
	}
}

func (i *Interpreter) evaluateAssignExpr(e *ast.AssignExpr, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpr(e.Value, env)
	if err != nil {
		return nil, err
	}

	if err := env.Assign(e.Name.Lexeme, value); err != nil {
		return nil, newRuntimeError(e.Name, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) evaluateUnaryExpr(e *ast.UnaryExpr, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case lexer.BANG:
		return runtime.Bool(!runtime.IsTruthy(right)), nil
	case lexer.MINUS:
		n, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, newRuntimeError(e.Op, "operand of '-' must be a number, got %s", describe(right))
		}
		return runtime.NumberValue{Val: 0 - n.Val}, nil
	}

	panic(fmt.Sprintf("unknown unary operator %s", e.Op.Kind))
}

func (i *Interpreter) evaluateBinaryExpr(e *ast.BinaryExpr, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpr(e.Left, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case lexer.AND:
		if !runtime.IsTruthy(left) {
			return runtime.False, nil
		}
		return i.evaluateTruthiness(e.Right, env)
	case lexer.OR:
		if runtime.IsTruthy(left) {
			return runtime.True, nil
		}
		return i.evaluateTruthiness(e.Right, env)
	}

	right, err := i.evaluateExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case lexer.EQUAL_EQUAL:
		return runtime.Bool(runtime.Equal(left, right)), nil
	case lexer.BANG_EQUAL:
		return runtime.Bool(!runtime.Equal(left, right)), nil
	case lexer.PLUS:
		return i.evaluatePlus(e.Op, left, right)
	case lexer.MINUS, lexer.STAR, lexer.SLASH:
		return i.evaluateArithmetic(e.Op, left, right)
	case lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL:
		return i.evaluateComparison(e.Op, left, right)
	}

	panic(fmt.Sprintf("unknown binary operator %s", e.Op.Kind))
}

func (i *Interpreter) evaluateTruthiness(expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpr(expr, env)
	if err != nil {
		return nil, err
	}
	return runtime.Bool(runtime.IsTruthy(value)), nil
}

func (i *Interpreter) evaluatePlus(op *lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}

	return nil, operandsError(op, "two numbers or two strings", left, right)
}

func (i *Interpreter) evaluateArithmetic(op *lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, operandsError(op, "numbers", left, right)
	}

	switch op.Kind {
	case lexer.MINUS:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case lexer.STAR:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	default:
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	}
}

func (i *Interpreter) evaluateComparison(op *lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, operandsError(op, "two numbers or two strings", left, right)
		}
		return runtime.Bool(compareNumbers(op.Kind, l.Val, r.Val)), nil
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, operandsError(op, "two numbers or two strings", left, right)
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		}
	default:
		return nil, operandsError(op, "two numbers or two strings", left, right)
	}

	switch op.Kind {
	case lexer.GREATER:
		return runtime.Bool(cmp > 0), nil
	case lexer.GREATER_EQUAL:
		return runtime.Bool(cmp >= 0), nil
	case lexer.LESS:
		return runtime.Bool(cmp < 0), nil
	default:
		return runtime.Bool(cmp <= 0), nil
	}
}

// compareNumbers keeps IEEE semantics: every ordering involving NaN is false.
func compareNumbers(kind lexer.TokenKind, l, r float64) bool {
	switch kind {
	case lexer.GREATER:
		return l > r
	case lexer.GREATER_EQUAL:
		return l >= r
	case lexer.LESS:
		return l < r
	default:
		return l <= r
	}
}

func operandsError(op *lexer.Token, expected string, left, right runtime.Value) *RuntimeError {
	return newRuntimeError(op, "operands of '%s' must be %s, got %s and %s",
		op.Lexeme, expected, describe(left), describe(right))
}

// describe renders a value for diagnostics; strings are quoted so that "1"
// and 1 read differently.
func describe(v runtime.Value) string {
	if s, ok := v.(runtime.StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return runtime.Stringify(v)
}
