// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	goruntime "runtime"
	"strings"
	"testing"

	"gust-cli/pkg/justfile"
)

func compile(t *testing.T, src string) *justfile.Justfile {
	t.Helper()
	dir := t.TempDir()
	jf, err := justfile.Compile(src, dir+"/justfile", dir)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return jf
}

func newTestEngine(t *testing.T, src string, opts Options) (*Engine, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.Stdin = strings.NewReader("")
	opts.Stdout = &stdout
	opts.Stderr = &stderr
	return NewEngine(compile(t, src), opts), &stdout, &stderr
}

func TestVariables(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := \"1\"\nb := a + \"2\"\n", Options{})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["a"] != "1" || variables["b"] != "12" {
		t.Errorf("Variables() = %v, want a=1 b=12", variables)
	}
}

func TestVariablesOverride(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := \"1\"\nb := a + \"2\"\n", Options{
		Overrides: map[string]string{"a": "9"},
	})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["a"] != "9" || variables["b"] != "92" {
		t.Errorf("Variables() = %v, want a=9 b=92", variables)
	}
}

func TestOverrideSkipsEvaluation(t *testing.T) {
	t.Parallel()

	// The overridden backtick would fail if it ran.
	engine, _, _ := newTestEngine(t, "a := `exit 1`\n", Options{
		Overrides: map[string]string{"a": "safe"},
	})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["a"] != "safe" {
		t.Errorf("Variables()[a] = %q, want %q", variables["a"], "safe")
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := \"x\"\nb := a + \"y\"\n", Options{})

	value, err := engine.Evaluate(context.Background(), "b")
	if err != nil {
		t.Fatalf("Evaluate(b) error = %v", err)
	}
	if value != "xy" {
		t.Errorf("Evaluate(b) = %q, want %q", value, "xy")
	}

	all, err := engine.Evaluate(context.Background(), "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	want := "a := \"x\"\nb := \"xy\"\n"
	if all != want {
		t.Errorf("Evaluate() = %q, want %q", all, want)
	}
}

func TestEvaluateUnknownVariable(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := \"x\"\n", Options{})
	_, err := engine.Evaluate(context.Background(), "nope")
	var undefErr *UndefinedVariableError
	if !errors.As(err, &undefErr) {
		t.Fatalf("Evaluate(nope) error = %v, want UndefinedVariableError", err)
	}
	if !errors.Is(err, ErrRuntime) {
		t.Error("error does not unwrap to ErrRuntime")
	}
}

func TestUndefinedVariableReference(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := GUST_TEST_NO_SUCH_VARIABLE\n", Options{})
	_, err := engine.Variables(context.Background())
	var undefErr *UndefinedVariableError
	if !errors.As(err, &undefErr) {
		t.Fatalf("Variables() error = %v, want UndefinedVariableError", err)
	}
	if undefErr.Name != "GUST_TEST_NO_SUCH_VARIABLE" {
		t.Errorf("Name = %q, want %q", undefErr.Name, "GUST_TEST_NO_SUCH_VARIABLE")
	}
}

func TestVariableFallsBackToEnvironment(t *testing.T) {
	t.Setenv("GUST_TEST_ENV_FALLBACK", "from-env")

	engine, _, _ := newTestEngine(t, "a := GUST_TEST_ENV_FALLBACK\n", Options{})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["a"] != "from-env" {
		t.Errorf("Variables()[a] = %q, want %q", variables["a"], "from-env")
	}
}

func TestAssignmentShadowsEnvironment(t *testing.T) {
	t.Setenv("GUST_TEST_SHADOWED", "from-env")

	engine, _, _ := newTestEngine(t, "GUST_TEST_SHADOWED := \"from-file\"\na := GUST_TEST_SHADOWED\n", Options{})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["a"] != "from-file" {
		t.Errorf("Variables()[a] = %q, want %q", variables["a"], "from-file")
	}
}

func TestConditionalEvaluation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"equal", "v := if \"a\" == \"a\" { \"yes\" } else { \"no\" }\n", "yes"},
		{"unequal", "v := if \"a\" == \"b\" { \"yes\" } else { \"no\" }\n", "no"},
		{"negated", "v := if \"a\" != \"b\" { \"yes\" } else { \"no\" }\n", "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine, _, _ := newTestEngine(t, tt.src, Options{})
			value, err := engine.Evaluate(context.Background(), "v")
			if err != nil {
				t.Fatalf("Evaluate(v) error = %v", err)
			}
			if value != tt.want {
				t.Errorf("Evaluate(v) = %q, want %q", value, tt.want)
			}
		})
	}
}

func TestConditionalSkipsUntakenBranch(t *testing.T) {
	t.Parallel()

	// The untaken branch references an undefined variable and would
	// fail if evaluated.
	engine, _, _ := newTestEngine(t, "v := if \"a\" == \"a\" { \"ok\" } else { missing }\n", Options{})
	value, err := engine.Evaluate(context.Background(), "v")
	if err != nil {
		t.Fatalf("Evaluate(v) error = %v", err)
	}
	if value != "ok" {
		t.Errorf("Evaluate(v) = %q, want %q", value, "ok")
	}
}

func TestBacktickTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "v := `echo hello`\n", Options{})
	value, err := engine.Evaluate(context.Background(), "v")
	if err != nil {
		t.Fatalf("Evaluate(v) error = %v", err)
	}
	if value != "hello" {
		t.Errorf("Evaluate(v) = %q, want %q", value, "hello")
	}
}

func TestBacktickFailure(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "v := `exit 3`\n", Options{})
	_, err := engine.Evaluate(context.Background(), "v")
	var backtickErr *BacktickError
	if !errors.As(err, &backtickErr) {
		t.Fatalf("Evaluate(v) error = %v, want BacktickError", err)
	}
	if backtickErr.ExitStatus != 3 {
		t.Errorf("ExitStatus = %d, want 3", backtickErr.ExitStatus)
	}
	if ExitStatus(err) != 3 {
		t.Errorf("ExitStatus(err) = %d, want 3", ExitStatus(err))
	}
}

func TestBuiltinFunctions(t *testing.T) {
	engine, _, _ := newTestEngine(t, "o := os()\na := arch()\nf := os_family()\nd := justfile_directory()\n", Options{})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["o"] != goruntime.GOOS {
		t.Errorf("os() = %q, want %q", variables["o"], goruntime.GOOS)
	}
	if variables["a"] != goruntime.GOARCH {
		t.Errorf("arch() = %q, want %q", variables["a"], goruntime.GOARCH)
	}
	wantFamily := "unix"
	if goruntime.GOOS == "windows" {
		wantFamily = "windows"
	}
	if variables["f"] != wantFamily {
		t.Errorf("os_family() = %q, want %q", variables["f"], wantFamily)
	}
	if variables["d"] == "" {
		t.Error("justfile_directory() is empty")
	}
}

func TestEnvVarFunctions(t *testing.T) {
	t.Setenv("GUST_TEST_PRESENT", "value")

	engine, _, _ := newTestEngine(t, "a := env_var(\"GUST_TEST_PRESENT\")\nb := env_var_or_default(\"GUST_TEST_ABSENT\", \"fallback\")\n", Options{})
	variables, err := engine.Variables(context.Background())
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if variables["a"] != "value" {
		t.Errorf("env_var = %q, want %q", variables["a"], "value")
	}
	if variables["b"] != "fallback" {
		t.Errorf("env_var_or_default = %q, want %q", variables["b"], "fallback")
	}
}

func TestEnvVarMissing(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := env_var(\"GUST_TEST_DEFINITELY_ABSENT\")\n", Options{})
	_, err := engine.Variables(context.Background())
	var fnErr *FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("Variables() error = %v, want FunctionError", err)
	}
	if fnErr.Function != "env_var" {
		t.Errorf("Function = %q, want %q", fnErr.Function, "env_var")
	}
}

func TestUnknownFunction(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := nonsense()\n", Options{})
	_, err := engine.Variables(context.Background())
	var unknownErr *UnknownFunctionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Variables() error = %v, want UnknownFunctionError", err)
	}
	if unknownErr.Name != "nonsense" {
		t.Errorf("Name = %q, want %q", unknownErr.Name, "nonsense")
	}
}

func TestFunctionArityMismatch(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "a := os(\"extra\")\n", Options{})
	_, err := engine.Variables(context.Background())
	var fnErr *FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("Variables() error = %v, want FunctionError", err)
	}
}

func TestVirtualShellCapture(t *testing.T) {
	t.Parallel()

	shell := NewVirtualShell()
	stdout, _, status, err := shell.Capture(context.Background(), "echo virtual", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if status != 0 {
		t.Fatalf("Capture() status = %d, want 0", status)
	}
	if stdout != "virtual\n" {
		t.Errorf("Capture() stdout = %q, want %q", stdout, "virtual\n")
	}
}

func TestVirtualShellExitStatus(t *testing.T) {
	t.Parallel()

	shell := NewVirtualShell()
	_, _, status, err := shell.Capture(context.Background(), "exit 7", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if status != 7 {
		t.Errorf("Capture() status = %d, want 7", status)
	}
}

func TestVirtualShellBacktick(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, "v := `echo inner`\n", Options{Virtual: true})
	value, err := engine.Evaluate(context.Background(), "v")
	if err != nil {
		t.Fatalf("Evaluate(v) error = %v", err)
	}
	if value != "inner" {
		t.Errorf("Evaluate(v) = %q, want %q", value, "inner")
	}
}
