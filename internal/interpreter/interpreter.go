package interpreter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/lexer"
	"github.com/kievzenit/slox/internal/runtime"
)

// maxCallDepth bounds nested calls so runaway recursion becomes a runtime
// error instead of exhausting the goroutine stack.
const maxCallDepth = 2048

type RuntimeError struct {
	Token   *lexer.Token
	Message string
}

func newRuntimeError(token *lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Token:   token,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *RuntimeError) GetMessage() string {
	return e.Message
}

func (e *RuntimeError) GetLine() int {
	if e.Token == nil {
		return 0
	}
	return e.Token.Line
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] RuntimeError: %s", e.GetLine(), e.Message)
}

// Interpreter evaluates statements against a global environment that
// survives across Execute calls.
type Interpreter struct {
	globals *runtime.Environment

	out     io.Writer
	clock   func() time.Time
	started time.Time

	depth int
}

type Option func(*Interpreter)

// WithOutput sets where print statements write.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithClock replaces the time source behind the clock builtin.
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) { i.clock = clock }
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals: runtime.NewEnvironment(nil),
		out:     os.Stdout,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.started = i.clock()
	i.defineBuiltins()

	return i
}

func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Execute runs stmts in order. The first runtime error stops execution and
// is returned as a *RuntimeError.
func (i *Interpreter) Execute(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		out, err := i.executeStmt(stmt, i.globals)
		if err != nil {
			return err
		}
		if out.kind == returned {
			return newRuntimeError(stmt.FirstToken(), "return outside of function")
		}
	}

	return nil
}

func (i *Interpreter) Evaluate(expr ast.Expr) (runtime.Value, error) {
	return i.evaluateExpr(expr, i.globals)
}
