package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errs bytes.Buffer
	savedOut, savedErr := stdout, stderr
	stdout, stderr = &out, &errs
	t.Cleanup(func() {
		stdout, stderr = savedOut, savedErr
	})
	return &out, &errs
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunScriptExitCodes(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		source string
		exit   int
		stdout string
		stderr string
	}{
		{"ok", "print \"hello\";\n", driver.ExitOK, "hello\n", ""},
		{"static", "print;\n", driver.ExitDataErr, "", "[line 1] Error at ';': Expect expression.\n"},
		{"runtime", "print 1;\nprint -nil;\n", driver.ExitSoftware, "1\n", "[line 2] Operand must be a number.\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, errs := captureOutput(t)
			path := writeFile(t, dir, tc.name+".lox", tc.source)
			if code := run([]string{path}); code != tc.exit {
				t.Fatalf("exit = %d, want %d (stderr %q)", code, tc.exit, errs.String())
			}
			if got := out.String(); got != tc.stdout {
				t.Fatalf("stdout = %q, want %q", got, tc.stdout)
			}
			if got := errs.String(); got != tc.stderr {
				t.Fatalf("stderr = %q, want %q", got, tc.stderr)
			}
		})
	}
}

func TestRunMissingScript(t *testing.T) {
	_, errs := captureOutput(t)
	missing := filepath.Join(t.TempDir(), "nope.lox")
	if code := run([]string{missing}); code != driver.ExitNoInput {
		t.Fatalf("exit = %d, want %d", code, driver.ExitNoInput)
	}
	if !strings.Contains(errs.String(), "no such file") {
		t.Fatalf("stderr = %q, want missing-file message", errs.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"a.lox", "b.lox"},
		{"--bogus"},
		{"run", "a.lox", "b.lox"},
		{"tokens"},
		{"ast", "a.lox", "b.lox"},
		{"repl", "extra"},
	} {
		captureOutput(t)
		if code := run(args); code != driver.ExitUsage {
			t.Fatalf("run(%q) = %d, want %d", args, code, driver.ExitUsage)
		}
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	out, _ := captureOutput(t)
	if code := run([]string{"--version"}); code != driver.ExitOK {
		t.Fatalf("--version exit = %d", code)
	}
	if got := strings.TrimSpace(out.String()); got != cliToolVersion {
		t.Fatalf("--version output = %q, want %q", got, cliToolVersion)
	}
	out.Reset()
	if code := run([]string{"--help"}); code != driver.ExitOK {
		t.Fatalf("--help exit = %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("--help output = %q", out.String())
	}
}

func TestRunTraceLogsCalls(t *testing.T) {
	_, errs := captureOutput(t)
	path := writeFile(t, t.TempDir(), "trace.lox", "fun f() {}\nf();\n")
	if code := run([]string{"--trace", path}); code != driver.ExitOK {
		t.Fatalf("exit = %d, stderr %q", code, errs.String())
	}
	if !strings.Contains(errs.String(), "msg=call") {
		t.Fatalf("stderr = %q, want call trace", errs.String())
	}
}

func TestRunUsesManifestMain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, driver.ManifestFileName, "name: demo\nmain: src/main.lox\n")
	writeFile(t, dir, filepath.Join("src", "main.lox"), "print \"from manifest\";\n")
	nested := filepath.Join(dir, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, nested)

	out, errs := captureOutput(t)
	if code := run([]string{"run"}); code != driver.ExitOK {
		t.Fatalf("exit = %d, stderr %q", code, errs.String())
	}
	if got, want := out.String(), "from manifest\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunRejectsBadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, driver.ManifestFileName, "name: demo\nentry: main.lox\n")
	chdir(t, dir)

	_, errs := captureOutput(t)
	if code := run([]string{"run"}); code != driver.ExitConfig {
		t.Fatalf("exit = %d, want %d", code, driver.ExitConfig)
	}
	if !strings.Contains(errs.String(), "failed to load manifest") {
		t.Fatalf("stderr = %q", errs.String())
	}
}

func TestTokensCommand(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeFile(t, t.TempDir(), "t.lox", "var x = 1.5;")
	if code := run([]string{"tokens", path}); code != driver.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	var tokens []ast.Token
	if err := json.Unmarshal(out.Bytes(), &tokens); err != nil {
		t.Fatalf("decode tokens: %v\n%s", err, out.String())
	}
	wantTypes := []ast.TokenType{ast.TokenVar, ast.TokenIdentifier, ast.TokenEqual, ast.TokenNumber, ast.TokenSemicolon, ast.TokenEOF}
	if len(tokens) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(wantTypes))
	}
	for i, want := range wantTypes {
		if tokens[i].Type != want {
			t.Fatalf("tokens[%d].Type = %s, want %s", i, tokens[i].Type, want)
		}
	}
	if lit, ok := tokens[3].Literal.(float64); !ok || lit != 1.5 {
		t.Fatalf("number literal = %#v, want 1.5", tokens[3].Literal)
	}
}

func TestTokensCommandReportsScanErrors(t *testing.T) {
	_, errs := captureOutput(t)
	path := writeFile(t, t.TempDir(), "bad.lox", "var @ = 1;")
	if code := run([]string{"tokens", path}); code != driver.ExitDataErr {
		t.Fatalf("exit = %d, want %d", code, driver.ExitDataErr)
	}
	if !strings.Contains(errs.String(), "Unexpected character") {
		t.Fatalf("stderr = %q", errs.String())
	}
}

func TestASTCommand(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeFile(t, t.TempDir(), "a.lox", "print 1 + 2 * 3;\n")
	if code := run([]string{"ast", path}); code != driver.ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if got, want := out.String(), "(print (+ 1 (* 2 3)))\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pass.yml", `fixtures:
  - name: prints
    source: print 1;
    expect:
      stdout: ["1"]
`)
	out, _ := captureOutput(t)
	if code := run([]string{"test", dir}); code != driver.ExitOK {
		t.Fatalf("exit = %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "1 passed, 0 failed") {
		t.Fatalf("stdout = %q", out.String())
	}

	writeFile(t, dir, "fail.yml", `fixtures:
  - name: wrong
    source: print 1;
    expect:
      stdout: ["2"]
`)
	out.Reset()
	if code := run([]string{"test", dir}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "FAIL fail.yml/wrong") {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestTestCommandRunsRepositoryFixtures(t *testing.T) {
	out, _ := captureOutput(t)
	if code := run([]string{"test", "../../testdata/fixtures"}); code != driver.ExitOK {
		t.Fatalf("exit = %d\n%s", code, out.String())
	}
}

func TestTestCommandMissingDir(t *testing.T) {
	captureOutput(t)
	if code := run([]string{"test", filepath.Join(t.TempDir(), "absent")}); code != driver.ExitNoInput {
		t.Fatalf("exit = %d, want %d", code, driver.ExitNoInput)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	opts, rest := parseGlobalFlags([]string{"--trace", "run", "x.lox", "--", "--trace"})
	if !opts.trace {
		t.Fatalf("trace not set")
	}
	if got, want := strings.Join(rest, " "), "run x.lox --trace"; got != want {
		t.Fatalf("remaining = %q, want %q", got, want)
	}
}

func TestNeedsContinuation(t *testing.T) {
	cases := map[string]bool{
		"print 1;":              false,
		"fun f() {":             true,
		"fun f() {\n}":          false,
		"var a = [1,":           true,
		"print \"open":          true,
		"/* still":              true,
		"print (1 + 2));":       false,
		"class A { m() { } }":   false,
		"if (a) { print a; } {": true,
	}
	for src, want := range cases {
		if got := needsContinuation(src); got != want {
			t.Fatalf("needsContinuation(%q) = %v, want %v", src, got, want)
		}
	}
}

type scriptedPrompter struct {
	lines   []string
	prompts []string
	err     error
}

func (s *scriptedPrompter) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestReadChunkJoinsContinuationLines(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"fun f() {", "  print 1;", "}", "f();"}}
	chunk, ok := readChunk(p)
	if !ok {
		t.Fatalf("readChunk returned !ok")
	}
	if want := "fun f() {\n  print 1;\n}"; chunk != want {
		t.Fatalf("chunk = %q, want %q", chunk, want)
	}
	if got, want := strings.Join(p.prompts, "|"), "> |... |... "; got != want {
		t.Fatalf("prompts = %q, want %q", got, want)
	}
	chunk, ok = readChunk(p)
	if !ok || chunk != "f();" {
		t.Fatalf("second chunk = %q, %v", chunk, ok)
	}
	if _, ok := readChunk(p); ok {
		t.Fatalf("expected end of input")
	}
}

func TestReadChunkAbortDiscardsBuffer(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"fun f() {"}, err: liner.ErrPromptAborted}
	chunk, ok := readChunk(p)
	if !ok || chunk != "" {
		t.Fatalf("chunk = %q, ok = %v, want empty and ok", chunk, ok)
	}
}

func TestReplCommands(t *testing.T) {
	captureOutput(t)
	session := driver.NewSession(driver.SessionOptions{Stdout: io.Discard, Stderr: io.Discard})
	session.Run("var answer = 42; fun greet() {}")

	var out bytes.Buffer
	if replCommand(":globals", session, &out) {
		t.Fatalf(":globals should not quit")
	}
	got := out.String()
	for _, want := range []string{"answer = 42\n", "clock = <native fn>\n", "greet = <fn greet>\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf(":globals output %q missing %q", got, want)
		}
	}
	if !replCommand(":quit", session, &out) {
		t.Fatalf(":quit should quit")
	}
	out.Reset()
	replCommand(":what", session, &out)
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("unknown command output = %q", out.String())
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv(historyEnv, "/tmp/custom_history")
	if got := historyPath(nil); got != "/tmp/custom_history" {
		t.Fatalf("historyPath with env = %q", got)
	}

	t.Setenv(historyEnv, "")
	manifest := &driver.Manifest{Path: filepath.Join("/proj", driver.ManifestFileName), History: ".hist"}
	if got, want := historyPath(manifest), filepath.Join("/proj", ".hist"); got != want {
		t.Fatalf("historyPath(manifest) = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	if got, want := historyPath(nil), filepath.Join(home, defaultHistoryFile); got != want {
		t.Fatalf("historyPath(nil) = %q, want %q", got, want)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore dir: %v", err)
		}
	})
}
