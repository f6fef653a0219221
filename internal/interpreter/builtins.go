package interpreter

import "github.com/kievzenit/slox/internal/runtime"

func (i *Interpreter) defineBuiltins() {
	i.globals.Define("clock", &runtime.NativeFunctionValue{
		Name:   "clock",
		ArityN: 0,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			elapsed := i.clock().Sub(i.started)
			return runtime.NumberValue{Val: elapsed.Seconds()}, nil
		},
	})
}
