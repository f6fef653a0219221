package driver

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/kievzenit/slox/internal/lox_errors"
	"github.com/kievzenit/slox/internal/runtime"
)

type testDriver struct {
	*Driver

	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestDriver(opts Options) *testDriver {
	td := &testDriver{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	opts.Output = td.out
	td.Driver = New(lox_errors.NewErrorHandler(td.errOut), opts)
	return td
}

func TestRunSuccess(t *testing.T) {
	d := newTestDriver(Options{})

	result := d.Run("var a = 6;\nprint a + 2 * 3;")

	if result.Failed() || result.ExitCode() != ExitOK {
		t.Fatalf("unexpected failure: %+v", result)
	}
	if result.Statements != 2 {
		t.Errorf("expected 2 statements, got %d", result.Statements)
	}
	if d.out.String() != "12\n" {
		t.Errorf("unexpected output %q", d.out.String())
	}
	if d.errOut.Len() != 0 {
		t.Errorf("unexpected diagnostics %q", d.errOut.String())
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   int
		stderr string
	}{
		{"lexical", "print \"open;", ExitDataError, "[line 1] Error: unterminated string\n"},
		{"invalid character", "print 1 @ 2;", ExitDataError, "[line 1] Error: invalid character '@'\n"},
		{"syntax", "print (1;", ExitDataError, "[line 1] Error at ';': expected ')' after expression\n"},
		{"static", "return 1;", ExitDataError, "[line 1] Error at 'return': can't return from top-level code\n"},
		{"runtime", "print -nil;", ExitRuntimeError, "[line 1] RuntimeError: operand of '-' must be a number, got nil\n"},
		{"ok", "print 1;", ExitOK, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := newTestDriver(Options{})

			result := d.Run(test.source)
			if result.ExitCode() != test.code {
				t.Errorf("exit code %d, want %d", result.ExitCode(), test.code)
			}
			if d.errOut.String() != test.stderr {
				t.Errorf("stderr %q, want %q", d.errOut.String(), test.stderr)
			}
		})
	}
}

func TestSyntaxErrorsPreventExecution(t *testing.T) {
	d := newTestDriver(Options{})

	result := d.Run("print 1;\nprint (2;\nvar = 3;")

	if len(result.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", result.Diagnostics)
	}
	if d.out.Len() != 0 {
		t.Errorf("program ran despite syntax errors: %q", d.out.String())
	}
	if lines := strings.Count(d.errOut.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 reported lines, got %d", lines)
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	d := newTestDriver(Options{})

	d.Run("var a = 1;")
	d.Run("{ var a = 2; }")
	result := d.Run("print a;")

	if result.Failed() {
		t.Fatalf("unexpected failure: %+v", result)
	}
	if d.out.String() != "1\n" {
		t.Errorf("unexpected output %q", d.out.String())
	}
}

func TestGlobalNames(t *testing.T) {
	d := newTestDriver(Options{})

	d.Run("var b = 1;\nfun a() {}\n{ var local = 2; }")

	got := strings.Join(d.GlobalNames(), " ")
	if got != "a b clock" {
		t.Errorf("unexpected globals %q", got)
	}
}

func TestDiagnosticsResetBetweenRuns(t *testing.T) {
	d := newTestDriver(Options{})

	if result := d.Run("print ;"); !result.Failed() {
		t.Fatal("expected the first run to fail")
	}
	if result := d.Run("print 1;"); result.Failed() {
		t.Fatalf("second run inherited diagnostics: %+v", result)
	}
}

func TestEvalLineEchoesExpressions(t *testing.T) {
	d := newTestDriver(Options{})

	value, result := d.EvalLine("6 + 2 * 3")
	if result.Failed() {
		t.Fatalf("unexpected failure: %+v", result)
	}
	if !runtime.Equal(value, runtime.NumberValue{Val: 12}) {
		t.Errorf("got %v", value)
	}

	value, result = d.EvalLine("var greeting = \"hi\";")
	if value != nil || result.Failed() {
		t.Errorf("statement line returned %v, %+v", value, result)
	}

	value, _ = d.EvalLine("greeting + \"!\"")
	if runtime.Stringify(value) != "hi!" {
		t.Errorf("got %v", value)
	}
}

func TestEvalLineRuntimeError(t *testing.T) {
	d := newTestDriver(Options{})

	value, result := d.EvalLine("missing")

	if value != nil {
		t.Errorf("unexpected value %v", value)
	}
	if result.ExitCode() != ExitRuntimeError {
		t.Errorf("exit code %d", result.ExitCode())
	}
	if d.errOut.String() != "[line 1] RuntimeError: undefined variable 'missing'\n" {
		t.Errorf("unexpected stderr %q", d.errOut.String())
	}
}

func TestDumps(t *testing.T) {
	var tokens, tree bytes.Buffer
	d := newTestDriver(Options{DumpTokens: &tokens, DumpAST: &tree})

	d.Run("print 1 + 2;")

	if !strings.Contains(tokens.String(), "Lexeme: \"print\"") {
		t.Errorf("token dump missing print: %s", tokens.String())
	}
	if !strings.Contains(tree.String(), "Program{") {
		t.Errorf("ast dump should wrap statements in a Program: %s", tree.String())
	}
	if !strings.Contains(tree.String(), "PrintStmt") {
		t.Errorf("ast dump missing PrintStmt: %s", tree.String())
	}
	if strings.Contains(tree.String(), "StartToken") {
		t.Errorf("ast dump should exclude StartToken: %s", tree.String())
	}
}

func TestDebugLogger(t *testing.T) {
	var logs bytes.Buffer
	d := newTestDriver(Options{Logger: log.New(&logs, "slox: ", 0)})

	d.Run("print 1;")

	for _, want := range []string{"lexed 4 tokens", "parsed 1 statements", "executed 1 statements"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
}
