package parser

import (
	"testing"

	"github.com/saruga/jsopt/internal/ast"
)

func parseOne(t *testing.T, src string) ast.Node {
	t.Helper()
	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Body))
	}
	return prog.Body[0]
}

func TestParseVarWithInitializer(t *testing.T) {
	v := parseOne(t, "var a = x + 1;").(*ast.Var)
	if len(v.Defs) != 1 || v.Defs[0].Name != "a" {
		t.Fatalf("unexpected defs: %+v", v.Defs)
	}
	bin, ok := v.Defs[0].Value.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected binary +, got %#v", v.Defs[0].Value)
	}
}

func TestParseVarMultipleBindingsNoInitializer(t *testing.T) {
	v := parseOne(t, "var a, b = 2;").(*ast.Var)
	if len(v.Defs) != 2 {
		t.Fatalf("expected 2 defs, got %d", len(v.Defs))
	}
	if v.Defs[0].Value != nil {
		t.Error("expected nil initializer for bare declaration")
	}
	if num, ok := v.Defs[1].Value.(*ast.Num); !ok || num.Value != 2 {
		t.Errorf("unexpected second initializer: %#v", v.Defs[1].Value)
	}
}

func TestParseAssignAndIncrement(t *testing.T) {
	es := parseOne(t, "a = 2;").(*ast.ExprStatement)
	assign, ok := es.X.(*ast.Assign)
	if !ok || assign.Op != "=" {
		t.Fatalf("expected assign, got %#v", es.X)
	}

	es2 := parseOne(t, "x++;").(*ast.ExprStatement)
	post, ok := es2.X.(*ast.UnaryPostfix)
	if !ok || post.Op != "++" {
		t.Fatalf("expected postfix ++, got %#v", es2.X)
	}
}

func TestParseCallAndMemberChain(t *testing.T) {
	es := parseOne(t, "HEAP32[f(x).y] = 1;").(*ast.ExprStatement)
	assign := es.X.(*ast.Assign)
	sub, ok := assign.Left.(*ast.Sub)
	if !ok {
		t.Fatalf("expected sub, got %#v", assign.Left)
	}
	if _, ok := sub.Expr.(*ast.Name); !ok {
		t.Errorf("expected HEAP32 as base name, got %#v", sub.Expr)
	}
	prop, ok := sub.Property.(*ast.Sub)
	if !ok {
		t.Fatalf("expected property to be f(x).y sub, got %#v", sub.Property)
	}
	if _, ok := prop.Expr.(*ast.Call); !ok {
		t.Errorf("expected f(x) call, got %#v", prop.Expr)
	}
}

func TestParseNewExpression(t *testing.T) {
	v := parseOne(t, "var a = new Err(1, 2);").(*ast.Var)
	n, ok := v.Defs[0].Value.(*ast.New)
	if !ok {
		t.Fatalf("expected new, got %#v", v.Defs[0].Value)
	}
	if len(n.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(n.Args))
	}
}

func TestParseIfElse(t *testing.T) {
	ifNode := parseOne(t, "if (x) { a(); } else b();").(*ast.If)
	if ifNode.Else == nil {
		t.Fatal("expected else branch")
	}
	if _, ok := ifNode.Then.(*ast.Block); !ok {
		t.Errorf("expected block then-branch, got %#v", ifNode.Then)
	}
	if _, ok := ifNode.Else.(*ast.ExprStatement); !ok {
		t.Errorf("expected bare statement else-branch, got %#v", ifNode.Else)
	}
}

func TestParseForLoopCStyle(t *testing.T) {
	f := parseOne(t, "for (var i = 0; i < 10; i++) { a(i); }").(*ast.For)
	if _, ok := f.Init.(*ast.Var); !ok {
		t.Fatalf("expected var init, got %#v", f.Init)
	}
	if _, ok := f.Cond.(*ast.Binary); !ok {
		t.Fatalf("expected binary cond, got %#v", f.Cond)
	}
}

func TestParseForIn(t *testing.T) {
	f := parseOne(t, "for (var k in obj) { use(k); }").(*ast.ForIn)
	if _, ok := f.Init.(*ast.Var); !ok {
		t.Fatalf("expected var binding, got %#v", f.Init)
	}
	obj, ok := f.Object.(*ast.Name)
	if !ok || obj.Value != "obj" {
		t.Fatalf("expected obj, got %#v", f.Object)
	}
}

func TestParseForWithRelationalInNotConfusedWithForIn(t *testing.T) {
	f := parseOne(t, "for (i = (x in y); i < 10; i++) {}").(*ast.For)
	es, ok := f.Init.(*ast.Assign)
	if !ok {
		t.Fatalf("expected assign init, got %#v", f.Init)
	}
	if _, ok := es.Right.(*ast.Binary); !ok {
		t.Fatalf("expected parenthesized `in` binary, got %#v", es.Right)
	}
}

func TestParseSwitch(t *testing.T) {
	s := parseOne(t, "switch (x) { case 1: a(); break; default: b(); }").(*ast.Switch)
	if len(s.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(s.Cases))
	}
	if s.Cases[0].Test == nil {
		t.Error("expected case 1 to have a test")
	}
	if s.Cases[1].Test != nil {
		t.Error("expected default clause to have a nil test")
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	tr := parseOne(t, "try { a(); } catch (e) { b(e); } finally { c(); }").(*ast.Try)
	if tr.Catch == nil || tr.Catch.Param != "e" {
		t.Fatalf("unexpected catch: %+v", tr.Catch)
	}
	if len(tr.Finally) != 1 {
		t.Fatalf("expected 1 finally statement, got %d", len(tr.Finally))
	}
}

func TestParseLabelBreakContinue(t *testing.T) {
	lbl := parseOne(t, "outer: while (x) { break outer; }").(*ast.Label)
	if lbl.Name != "outer" {
		t.Fatalf("unexpected label name %q", lbl.Name)
	}
	while := lbl.Body.(*ast.While)
	block := while.Body.(*ast.Block)
	brk := block.Body[0].(*ast.Break)
	if brk.Label != "outer" {
		t.Errorf("expected break label outer, got %q", brk.Label)
	}
}

func TestParseDefunAndNestedFunctionExpr(t *testing.T) {
	d := parseOne(t, "function f(a, b) { return function(c) { return c; }(a); }").(*ast.Defun)
	if d.Name != "f" || len(d.Params) != 2 {
		t.Fatalf("unexpected defun: %+v", d)
	}
	ret := d.Body[0].(*ast.Return)
	call := ret.Value.(*ast.Call)
	if _, ok := call.Func.(*ast.Function); !ok {
		t.Errorf("expected function expression callee, got %#v", call.Func)
	}
}

func TestParseDebuggerAndThrow(t *testing.T) {
	dbg := parseOne(t, "debugger;")
	if dbg.Kind() != ast.KindDebugger {
		t.Errorf("expected debugger, got %v", dbg.Kind())
	}
	thr := parseOne(t, `throw "boom";`).(*ast.Throw)
	if str, ok := thr.Value.(*ast.String); !ok || str.Value != "boom" {
		t.Errorf("unexpected throw value: %#v", thr.Value)
	}
}

func TestParseSyntaxErrorReturnsError(t *testing.T) {
	_, err := ParseString("var = ;")
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
