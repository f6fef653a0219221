package driver

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/kievzenit/slox/internal/ast"
	"github.com/kievzenit/slox/internal/interpreter"
	"github.com/kievzenit/slox/internal/lexer"
	"github.com/kievzenit/slox/internal/lox_errors"
	"github.com/kievzenit/slox/internal/parser"
	"github.com/kievzenit/slox/internal/runtime"
	"github.com/kievzenit/slox/internal/semantic_analyzer"
	"github.com/sanity-io/litter"
)

const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitDataError    = 65
	ExitNoInput      = 66
	ExitRuntimeError = 70
)

var dumpOptions = litter.Options{
	StripPackageNames: true,
	HideZeroValues:    true,
	FieldExclusions:   regexp.MustCompile(`^StartToken$`),
}

type Options struct {
	// Output receives everything print statements write. Defaults to stdout.
	Output io.Writer
	// DumpTokens and DumpAST, when set, receive a litter dump of every
	// successfully lexed token stream and parsed program.
	DumpTokens io.Writer
	DumpAST    io.Writer
	Logger     *log.Logger
}

// RunResult describes how one source text went through the pipeline.
// Diagnostics holds lexical, syntax and static errors; a runtime error is
// kept apart because it maps to a different exit code.
type RunResult struct {
	Statements   int
	Diagnostics  []lox_errors.LoxError
	RuntimeError *interpreter.RuntimeError
}

func (r RunResult) Failed() bool {
	return len(r.Diagnostics) > 0 || r.RuntimeError != nil
}

func (r RunResult) ExitCode() int {
	switch {
	case len(r.Diagnostics) > 0:
		return ExitDataError
	case r.RuntimeError != nil:
		return ExitRuntimeError
	default:
		return ExitOK
	}
}

// Driver runs source text against one interpreter, so globals declared by
// one Run are visible to the next.
type Driver struct {
	interp *interpreter.Interpreter
	eh     lox_errors.ErrorHandler
	opts   Options
	logger *log.Logger
}

func New(eh lox_errors.ErrorHandler, opts Options) *Driver {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Driver{
		interp: interpreter.New(interpreter.WithOutput(opts.Output)),
		eh:     eh,
		opts:   opts,
		logger: logger,
	}
}

// GlobalNames lists every name bound in the global scope, sorted.
func (d *Driver) GlobalNames() []string {
	return d.interp.Globals().Keys()
}

// Run lexes, parses, checks and executes source. Every diagnostic is
// reported through the error handler before Run returns.
func (d *Driver) Run(source string) RunResult {
	d.eh.Reset()
	defer d.eh.Report()

	stmts, ok := d.compile(source)
	if !ok {
		return RunResult{Diagnostics: d.eh.Errors()}
	}

	result := RunResult{Statements: len(stmts)}

	started := time.Now()
	err := d.interp.Execute(stmts)
	d.logger.Printf("executed %d statements in %s", len(stmts), time.Since(started))

	if err != nil {
		result.RuntimeError = d.runtimeError(err)
	}
	return result
}

// EvalLine runs one REPL line. A line that is a single bare expression is
// evaluated and its value returned so the caller can echo it; anything else
// runs as a program and the returned value is nil.
func (d *Driver) EvalLine(line string) (runtime.Value, RunResult) {
	expr := d.parseBareExpression(line)
	if expr == nil {
		return nil, d.Run(line)
	}

	d.eh.Reset()
	defer d.eh.Report()

	value, err := d.interp.Evaluate(expr)
	if err != nil {
		return nil, RunResult{Statements: 1, RuntimeError: d.runtimeError(err)}
	}
	return value, RunResult{Statements: 1}
}

func (d *Driver) compile(source string) ([]ast.Stmt, bool) {
	started := time.Now()

	tokens, err := lexer.NewLexer([]byte(source)).Tokenize()
	if err != nil {
		var lexErr *lexer.LexerError
		if errors.As(err, &lexErr) {
			d.eh.AddError(lexErr)
		}
		return nil, false
	}
	d.logger.Printf("lexed %d tokens in %s", len(tokens), time.Since(started))
	d.dump(d.opts.DumpTokens, tokens)

	started = time.Now()
	stmts := parser.NewParser(lexer.NewTokenScanner(tokens), d.eh).Parse()
	if d.eh.HasErrors() {
		d.logger.Printf("parse failed with %d errors", len(d.eh.Errors()))
		return nil, false
	}
	d.logger.Printf("parsed %d statements in %s", len(stmts), time.Since(started))
	d.dump(d.opts.DumpAST, &ast.Program{Stmts: stmts})

	if !semantic_analyzer.NewSemanticAnalyzer(d.eh, stmts).Analyze() {
		d.logger.Printf("analysis failed with %d errors", len(d.eh.Errors()))
		return nil, false
	}

	return stmts, true
}

func (d *Driver) parseBareExpression(line string) ast.Expr {
	tokens, err := lexer.NewLexer([]byte(line)).Tokenize()
	if err != nil {
		return nil
	}

	scratch := lox_errors.NewErrorHandler(io.Discard)
	expr := parser.NewParser(lexer.NewTokenScanner(tokens), scratch).ParseExpression()
	if expr == nil {
		return nil
	}

	d.dump(d.opts.DumpTokens, tokens)
	d.dump(d.opts.DumpAST, expr)
	return expr
}

func (d *Driver) runtimeError(err error) *interpreter.RuntimeError {
	var rerr *interpreter.RuntimeError
	if !errors.As(err, &rerr) {
		rerr = &interpreter.RuntimeError{Message: err.Error()}
	}

	d.eh.AddError(rerr)
	d.logger.Printf("runtime error on line %d", rerr.GetLine())
	return rerr
}

func (d *Driver) dump(w io.Writer, value any) {
	if w == nil {
		return
	}
	fmt.Fprintln(w, dumpOptions.Sdump(value))
}
