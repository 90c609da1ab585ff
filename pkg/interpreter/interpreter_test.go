package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// runSource executes source and returns printed lines plus the runtime error,
// if any. Static errors fail the test.
func runSource(t *testing.T, source string, opts ...Option) ([]string, error) {
	t.Helper()
	var out, errs bytes.Buffer
	reporter := diagnostics.NewReporter(&errs)
	stmts := parser.Parse(scanner.Scan(source, reporter), reporter)
	bindings := resolver.Resolve(stmts, reporter)
	if reporter.HadError {
		t.Fatalf("static errors:\n%s", errs.String())
	}
	interp := New(append([]Option{WithOutput(&out)}, opts...)...)
	err := interp.Interpret(stmts, bindings)
	return splitLines(out.String()), err
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	got, err := runSource(t, source)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func expectRuntimeError(t *testing.T, source string, line int, message string) []string {
	t.Helper()
	got, err := runSource(t, source)
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %v (output %q)", err, got)
	}
	if rtErr.Message != message || rtErr.Line() != line {
		t.Fatalf("runtime error = [line %d] %s, want [line %d] %s", rtErr.Line(), rtErr.Message, line, message)
	}
	return got
}

func TestArithmeticAndStrings(t *testing.T) {
	expectOutput(t, `
print 1 + 2 * 3;
print (1 + 2) * 3;
print 10 / 4;
print -(3);
print "foo" + "bar";
print "n=" + 1;
print 2 + "x";
print 1 / 0;
print -1 / 0;
print 0.1 + 0.2;
print !nil;
print !0;
`, "7", "9", "2.5", "-3", "foobar", "n=1", "2x", "Infinity", "-Infinity", "0.30000000000000004", "true", "false")
}

func TestComparisonAndEquality(t *testing.T) {
	expectOutput(t, `
print 1 < 2;
print 2 <= 1;
print 3 > 2;
print 3 >= 3;
print 1 == 1;
print "a" == "a";
print nil == nil;
print nil == false;
print 1 == "1";
print 0 / 0 == 0 / 0;
print [1] == [1];
var a = [1];
print a == a;
print true != false;
`, "true", "false", "true", "true", "true", "true", "true", "false", "false", "false", "false", "true", "true")
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	expectOutput(t, `
print "hi" or 2;
print nil or "yes";
print "1" and "2";
print nil and "never";
print false or false;
`, "hi", "yes", "2", "nil", "false")
}

func TestLogicalShortCircuits(t *testing.T) {
	expectOutput(t, `
var called = false;
fun mark() { called = true; return true; }
print true or mark();
print false and mark();
print called;
`, "true", "false", "false")
}

func TestTernary(t *testing.T) {
	expectOutput(t, `
var x = 5;
print x > 3 ? "big" : "small";
print x < 3 ? "big" : "small";
print 0 ? "truthy" : "falsy";
`, "big", "small", "truthy")
}

func TestBlockScoping(t *testing.T) {
	expectOutput(t, `
var a = "global a";
var b = "global b";
{
  var a = "outer a";
  {
    var a = "inner a";
    print a;
    print b;
  }
  print a;
}
print a;
`, "inner a", "global b", "outer a", "global a")
}

func TestLoops(t *testing.T) {
	expectOutput(t, `
var i = 0;
while (i < 3) { print i; i = i + 1; }
for (var j = 0; j < 2; j = j + 1) print "j" + j;
var k = 10;
for (; k > 8;) k = k - 1;
print k;
`, "0", "1", "2", "j0", "j1", "8")
}

func TestRecursion(t *testing.T) {
	expectOutput(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(15);
`, "610")
}

func TestReturnUnwindsLoops(t *testing.T) {
	expectOutput(t, `
fun firstOver(limit) {
  var i = 0;
  while (true) {
    i = i + 1;
    if (i > limit) { return i; }
  }
}
fun noReturn() { 1; }
print firstOver(4);
print noReturn();
`, "5", "nil")
}

func TestClosureCounter(t *testing.T) {
	expectOutput(t, `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    print i;
  }
  return count;
}
var counter = makeCounter();
counter();
counter();
`, "1", "2")
}

func TestStaticScopeResolution(t *testing.T) {
	expectOutput(t, `
var a = "global";
{
  fun showA() {
    print a;
  }
  showA();
  var a = "block";
  showA();
}
`, "global", "global")
}

func TestLambdas(t *testing.T) {
	expectOutput(t, `
var add = fun (a, b) { return a + b; };
print add(1, 2);
fun apply(f, x) { return f(x); }
print apply(fun (n) { return n * 10; }, 4);
print fun () {};
fun () { print "iife"; }();
print add;
`, "3", "40", "<lambda>", "iife", "<lambda>")
}

func TestFunctionDisplay(t *testing.T) {
	expectOutput(t, `
fun greet() {}
class Bagel {}
print greet;
print Bagel;
print Bagel();
`, "<fn greet>", "Bagel", "Bagel instance")
}

func TestCookieInitializer(t *testing.T) {
	expectOutput(t, `
class Cookie {
  init(flavor) {
    this.flavor = flavor;
    return;
    this.flavor = "never";
  }
}
var c = Cookie("choc");
print c.flavor;
var again = c.init("oat");
print again == c;
print c.flavor;
`, "choc", "true", "oat")
}

func TestInheritanceSuperDispatch(t *testing.T) {
	expectOutput(t, `
class A {
  method() { print "A method"; }
}
class B < A {
  method() { print "B method"; }
  test() { super.method(); }
}
class C < B {}
C().test();
`, "A method")
}

func TestMethodsAndFields(t *testing.T) {
	expectOutput(t, `
class Point {
  init(x, y) { this.x = x; this.y = y; }
  sum() { return this.x + this.y; }
}
var p = Point(1, 2);
print p.sum();
p.x = 10;
print p.sum();
var m = p.sum;
p.y = 5;
print m();
class Greeter { hi() { return "hi " + this.name; } }
var g = Greeter();
g.name = "lox";
print g.hi();
`, "3", "12", "15", "hi lox")
}

func TestInheritedInitializer(t *testing.T) {
	expectOutput(t, `
class Base { init(v) { this.v = v; } }
class Derived < Base {
  init(v) { super.init(v * 2); }
  show() { print this.v; }
}
Derived(21).show();
`, "42")
}

func TestArrays(t *testing.T) {
	expectOutput(t, `
var arr = [1, 2, 3];
print arr;
print arr[0];
arr[0] = 50;
print arr;
print arr.length;
var nested = [ ["blib", "blub"], [[4], [5], [6]] ];
print nested;
print [];
var alias = arr;
alias[1] = "two";
print arr[1];
fun idx(i) { return i; }
arr[idx(2)] = idx(9);
print arr[2];
print [nil, true];
`, "[ 1, 2, 3 ]", "1", "[ 50, 2, 3 ]", "3", "[ [ blib, blub ], [ [ 4 ], [ 5 ], [ 6 ] ] ]", "[  ]", "two", "9", "[ nil, true ]")
}

func TestSelfReferentialArray(t *testing.T) {
	expectOutput(t, `
var a = [1];
a[0] = a;
print a;
print "s" + a;
print a[0] == a;
`, "[ [  ] ]", "s[ [  ] ]", "true")
}

func TestArrayErrors(t *testing.T) {
	expectRuntimeError(t, "var arr = [1, 2, 3];\n\nprint arr[ \"index\" ];", 3, "Only numbers are allowed as index.")
	expectRuntimeError(t, "var arr = [1, 2, 3];\narr[\"index\"] = \"chicken\";", 2, "Only numbers are allowed as index.")
	expectRuntimeError(t, "var arr = [1, 2, 3];\n\nprint arr.magic;", 3, "Undefined property 'magic'.")
	expectRuntimeError(t, "print [1][1.5];", 1, "Array index must be an integer.")
	expectRuntimeError(t, "print [1][1];", 1, "Array index out of range.")
	expectRuntimeError(t, "print [1][-1];", 1, "Array index out of range.")
	expectRuntimeError(t, "var s = \"str\"; print s[0];", 1, "Only arrays can be indexed.")
	expectRuntimeError(t, "var a = [1]; a.length = 3;", 1, "Only instances have fields.")
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		line    int
		message string
	}{
		{"negate string", `print -"a";`, 1, "Operand must be a number."},
		{"subtract", `print 1 - "a";`, 1, "Operands must be numbers."},
		{"compare", `print "a" < "b";`, 1, "Operands must be numbers."},
		{"add", "print nil + 1;", 1, "Operands must be two numbers or at least one string."},
		{"undefined read", "print missing;", 1, "Undefined variable 'missing'."},
		{"undefined assign", "missing = 1;", 1, "Undefined variable 'missing'."},
		{"call non-callable", `"str"();`, 1, "Can only call functions and classes."},
		{"arity", "fun f(a, b) {}\nf(1);", 2, "Expected 2 arguments but got 1."},
		{"class arity", "class A { init(x) {} }\nA();", 2, "Expected 1 arguments but got 0."},
		{"no init arity", "class A {}\nA(1);", 2, "Expected 0 arguments but got 1."},
		{"property on number", "var x = 1;\nprint x.y;", 2, "Only instances have properties."},
		{"field on number", "var x = 1;\nx.y = 2;", 2, "Only instances have fields."},
		{"undefined property", "class A {}\nprint A().nope;", 2, "Undefined property 'nope'."},
		{"bad superclass", "var NotAClass = 1;\nclass B < NotAClass {}", 2, "Superclass must be a class."},
		{"undefined super method", "class A {}\nclass B < A { m() { super.nope(); } }\nB().m();", 2, "Undefined property 'nope'."},
		{"stack overflow", "fun f() { f(); }\nf();", 1, "Stack overflow."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectRuntimeError(t, tc.source, tc.line, tc.message)
		})
	}
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	got := expectRuntimeError(t, "print 1;\nprint nil + 1;\nprint 3;", 2, "Operands must be two numbers or at least one string.")
	if strings.Join(got, ",") != "1" {
		t.Fatalf("output = %q, want only the first print", got)
	}
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	run := func(source string) error {
		reporter := diagnostics.NewReporter(&bytes.Buffer{})
		stmts := parser.Parse(scanner.Scan(source, reporter), reporter)
		return interp.Interpret(stmts, resolver.Resolve(stmts, reporter))
	}
	if err := run("fun make() { var n = 0; fun inc() { n = n + 1; return n; } return inc; }\nvar inc = make();"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := run("print oops;"); err == nil {
		t.Fatalf("expected runtime error")
	}
	if err := run("print inc(); print inc();"); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if got := out.String(); got != "1\n2\n" {
		t.Fatalf("output = %q", got)
	}
	if keys := interp.GlobalEnvironment().Keys(); strings.Join(keys, ",") != "inc,make" {
		t.Fatalf("globals = %v", keys)
	}
}

func TestNativeGlobals(t *testing.T) {
	double := runtime.NewNativeFunction("double", 1, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		n, ok := args[0].(runtime.NumberValue)
		if !ok {
			return nil, errors.New("double expects a number.")
		}
		return runtime.NumberValue{Val: n.Val * 2}, nil
	})
	got, err := runSource(t, "print double(21);\nprint double;", WithGlobal("double", double))
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if strings.Join(got, ",") != "42,<native fn>" {
		t.Fatalf("output = %q", got)
	}

	_, err = runSource(t, "\ndouble(\"x\");", WithGlobal("double", double))
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Message != "double expects a number." || rtErr.Line() != 2 {
		t.Fatalf("native error = %v", err)
	}
}

func TestDefineGlobalAfterConstruction(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	interp.DefineGlobal("answer", runtime.NumberValue{Val: 42})
	if v, err := interp.GlobalEnvironment().Get("answer"); err != nil || v != (runtime.NumberValue{Val: 42}) {
		t.Fatalf("Get(answer) = %#v, %v", v, err)
	}
	reporter := diagnostics.NewReporter(&bytes.Buffer{})
	stmts := parser.Parse(scanner.Scan("print answer + 1;", reporter), reporter)
	if err := interp.Interpret(stmts, resolver.Resolve(stmts, reporter)); err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if got := out.String(); got != "43\n" {
		t.Fatalf("output = %q, want %q", got, "43\n")
	}
}

func TestEvaluateHandBuiltTree(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	program := []ast.Statement{
		ast.Let("x", ast.Num(2)),
		ast.PrintStmt(ast.Cond(ast.Bin(ast.Ref("x"), ">", ast.Num(1)), ast.Str("yes"), ast.Str("no"))),
		ast.PrintStmt(ast.Index(ast.Arr(ast.Num(7), ast.Num(8)), ast.Num(1))),
	}
	if err := interp.Interpret(program, nil); err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if got := out.String(); got != "yes\n8\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		value runtime.Value
		want  bool
	}{
		{runtime.Nil, false},
		{runtime.BoolValue{Val: false}, false},
		{runtime.BoolValue{Val: true}, true},
		{runtime.NumberValue{Val: 0}, true},
		{runtime.StringValue{Val: ""}, true},
		{runtime.NewArray(nil), true},
	}
	for _, tc := range cases {
		if got := isTruthy(tc.value); got != tc.want {
			t.Fatalf("isTruthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
