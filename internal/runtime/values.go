package runtime

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kievzenit/slox/internal/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native function"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Value interface {
	Kind() Kind
}

// Callable is implemented by every value that can appear as a callee.
type Callable interface {
	Value
	Arity() int
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// FunctionValue is a user-declared function together with the environment it
// was declared in.
type FunctionValue struct {
	Declaration *ast.FunctionStmt
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name   string
	ArityN int
	Fn     NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ArityN }

var (
	Nil   Value = NilValue{}
	True  Value = BoolValue{Val: true}
	False Value = BoolValue{Val: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// FromLiteral converts a literal produced by the lexer into a runtime value.
func FromLiteral(literal any) Value {
	switch v := literal.(type) {
	case nil:
		return Nil
	case bool:
		return Bool(v)
	case float64:
		return NumberValue{Val: v}
	case string:
		return StringValue{Val: v}
	default:
		panic(fmt.Sprintf("unsupported literal %T", literal))
	}
}

// IsTruthy reports false for nil and false, true for everything else.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares values of the same variant structurally. Values of
// different variants are never equal; functions compare by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && av == bv
	}
	return false
}

func Stringify(v Value) string {
	switch val := v.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return formatNumber(val.Val)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return fmt.Sprintf("<fn %s>", val.Name())
	case *NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", val.Name)
	}
	return fmt.Sprintf("<%s>", v.Kind())
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
