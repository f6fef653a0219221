package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kievzenit/slox/internal/driver"
)

func writeScript(t *testing.T, name, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunScript(t *testing.T) {
	script := writeScript(t, "ok.lox", `
fun greet(name) { return "hello " + name; }
print greet("lox");
for (var i = 0; i < 2; i = i + 1) print i;
`)

	code, stdout, stderr := runCLI(t, "-no-color", script)

	if code != driver.ExitOK {
		t.Errorf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "hello lox\n0\n1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestScriptExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   int
	}{
		{"syntax.lox", "print (;", driver.ExitDataError},
		{"lexical.lox", "print #;", driver.ExitDataError},
		{"runtime.lox", "print 1;\nprint nil - 1;", driver.ExitRuntimeError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "-no-color", writeScript(t, test.name, test.source))
			if code != test.code {
				t.Errorf("exit code %d, want %d", code, test.code)
			}
			if !strings.HasPrefix(stderr, "[line ") {
				t.Errorf("unexpected stderr %q", stderr)
			}
		})
	}
}

func TestMissingScript(t *testing.T) {
	code, _, stderr := runCLI(t, "-no-color", filepath.Join(t.TempDir(), "missing.lox"))

	if code != driver.ExitNoInput {
		t.Errorf("exit code %d", code)
	}
	if stderr == "" {
		t.Error("expected an error message")
	}
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCLI(t, "a.lox", "b.lox")

	if code != driver.ExitUsage {
		t.Errorf("exit code %d", code)
	}
	if !strings.HasPrefix(stderr, "Usage: slox") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "-version")

	if code != driver.ExitOK || stdout != "slox version "+version+"\n" {
		t.Errorf("unexpected result %d %q", code, stdout)
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	cfgPath := writeScript(t, "slox.yml", "color: false\ndump_ast: true\n")
	script := writeScript(t, "s.lox", "print 1;")

	code, stdout, stderr := runCLI(t, "-config", cfgPath, script)
	if code != driver.ExitOK || stdout != "1\n" {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
	if !strings.Contains(stderr, "PrintStmt") {
		t.Errorf("expected an AST dump on stderr, got %q", stderr)
	}

	_, _, stderr = runCLI(t, "-config", cfgPath, "-ast=false", script)
	if stderr != "" {
		t.Errorf("flag did not override config: %q", stderr)
	}
}

func TestBadConfig(t *testing.T) {
	cfgPath := writeScript(t, "slox.yml", "unknown: 1\n")

	code, _, stderr := runCLI(t, "-config", cfgPath, writeScript(t, "s.lox", "print 1;"))
	if code != driver.ExitUsage {
		t.Errorf("exit code %d", code)
	}
	if !strings.HasPrefix(stderr, "config: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
