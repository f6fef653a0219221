package interpreter

import (
	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/runtime"
)

func (i *Interpreter) evaluateCallExpr(e *ast.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpr(e.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(e.Args))
	for _, arg := range e.Args {
		value, err := i.evaluateExpr(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "can only call functions")
	}
	if fn.Arity() != len(args) {
		return nil, newRuntimeError(e.Paren, "expected %d arguments but got %d", fn.Arity(), len(args))
	}

	if i.depth >= maxCallDepth {
		return nil, newRuntimeError(e.Paren, "stack overflow")
	}
	i.depth++
	defer func() { i.depth-- }()

	switch f := fn.(type) {
	case *runtime.NativeFunctionValue:
		value, err := f.Fn(args)
		if err != nil {
			return nil, newRuntimeError(e.Paren, "%s", err.Error())
		}
		return value, nil
	case *runtime.FunctionValue:
		return i.callFunction(f, args)
	}

	return nil, newRuntimeError(e.Paren, "can only call functions")
}

// callFunction binds args in a scope whose parent is the function's closure
// and runs the body there. A return inside the body ends the call.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	callEnv := fn.Closure.Extend()
	for idx, param := range fn.Declaration.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}

	out, err := i.executeBlock(fn.Declaration.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if out.kind == returned {
		return out.value, nil
	}

	return runtime.Nil, nil
}
