package interpreter

import (
	"fmt"

	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/runtime"
)

type outcomeKind int

const (
	completed outcomeKind = iota
	returned
)

// outcome is how a statement finished. A returned outcome carries the
// function result up to the nearest call.
type outcome struct {
	kind  outcomeKind
	value runtime.Value
}

var completedOutcome = outcome{kind: completed}

func (i *Interpreter) executeStmt(stmt ast.Stmt, env *runtime.Environment) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.evaluateExpr(s.Expr, env)
		return completedOutcome, err
	case *ast.PrintStmt:
		return i.executePrintStmt(s, env)
	case *ast.VarStmt:
		return i.executeVarStmt(s, env)
	case *ast.BlockStmt:
		return i.executeBlock(s.Stmts, env.Extend())
	case *ast.IfStmt:
		return i.executeIfStmt(s, env)
	case *ast.WhileStmt:
		return i.executeWhileStmt(s, env)
	case *ast.FunctionStmt:
		env.Define(s.Name.Lexeme, &runtime.FunctionValue{
			Declaration: s,
			Closure:     env,
		})
		return completedOutcome, nil
	case *ast.ReturnStmt:
		return i.executeReturnStmt(s, env)
	default:
		panic(fmt.Sprintf("unknown statement %T", stmt))
	}
}

// executeBlock runs stmts in env, which the caller has already created.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) (outcome, error) {
	for _, stmt := range stmts {
		out, err := i.executeStmt(stmt, env)
		if err != nil || out.kind != completed {
			return out, err
		}
	}

	return completedOutcome, nil
}

func (i *Interpreter) executePrintStmt(s *ast.PrintStmt, env *runtime.Environment) (outcome, error) {
	value, err := i.evaluateExpr(s.Expr, env)
	if err != nil {
		return completedOutcome, err
	}

	fmt.Fprintln(i.out, runtime.Stringify(value))
	return completedOutcome, nil
}

func (i *Interpreter) executeVarStmt(s *ast.VarStmt, env *runtime.Environment) (outcome, error) {
	value := runtime.Nil
	if s.Initializer != nil {
		var err error
		value, err = i.evaluateExpr(s.Initializer, env)
		if err != nil {
			return completedOutcome, err
		}
	}

	env.Define(s.Name.Lexeme, value)
	return completedOutcome, nil
}

func (i *Interpreter) executeIfStmt(s *ast.IfStmt, env *runtime.Environment) (outcome, error) {
	cond, err := i.evaluateExpr(s.Cond, env)
	if err != nil {
		return completedOutcome, err
	}

	if runtime.IsTruthy(cond) {
		return i.executeStmt(s.Then, env)
	}
	if s.Else != nil {
		return i.executeStmt(s.Else, env)
	}

	return completedOutcome, nil
}

func (i *Interpreter) executeWhileStmt(s *ast.WhileStmt, env *runtime.Environment) (outcome, error) {
	loopEnv := env.Extend()

	for {
		cond, err := i.evaluateExpr(s.Cond, loopEnv)
		if err != nil {
			return completedOutcome, err
		}
		if !runtime.IsTruthy(cond) {
			return completedOutcome, nil
		}

		out, err := i.executeStmt(s.Body, loopEnv)
		if err != nil || out.kind != completed {
			return out, err
		}
	}
}

func (i *Interpreter) executeReturnStmt(s *ast.ReturnStmt, env *runtime.Environment) (outcome, error) {
	value := runtime.Nil
	if s.Value != nil {
		var err error
		value, err = i.evaluateExpr(s.Value, env)
		if err != nil {
			return completedOutcome, err
		}
	}

	return outcome{kind: returned, value: value}, nil
}
