package fold

import (
	"strings"
	"testing"

	"github.com/saruga/jsopt/internal/ast"
	"github.com/saruga/jsopt/internal/parser"
	"github.com/saruga/jsopt/internal/printer"
)

func foldSource(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	FoldBody(prog.Body)
	var b strings.Builder
	for _, n := range prog.Body {
		b.WriteString(printer.Print(n))
	}
	return b.String()
}

func TestFoldCollapsesLiteralsToOneConstant(t *testing.T) {
	out := foldSource(t, "var a = 1 + 2 + x;")
	if !strings.Contains(out, "3 + x") {
		t.Errorf("expected 3 + x, got %q", out)
	}
}

func TestFoldKeepsNameOrderAfterConstant(t *testing.T) {
	out := foldSource(t, "var a = x + 1 + y + 2;")
	if !strings.Contains(out, "3 + x + y") {
		t.Errorf("expected constant first then names in encounter order, got %q", out)
	}
}

func TestFoldAbortsWithoutALiteral(t *testing.T) {
	out := foldSource(t, "var a = x + y;")
	if !strings.Contains(out, "x + y") {
		t.Errorf("expected chain left unchanged, got %q", out)
	}
}

func TestFoldAbortsOnNonAdditiveOperator(t *testing.T) {
	out := foldSource(t, "var a = (x - y) + 1;")
	if !strings.Contains(out, "x - y") || !strings.Contains(out, "+ 1") {
		t.Errorf("expected subtraction left unfolded, got %q", out)
	}
}

func TestFoldAbortsOnCallOperand(t *testing.T) {
	out := foldSource(t, "var a = f() + 1;")
	if !strings.Contains(out, "f() + 1") {
		t.Errorf("expected call operand to block folding, got %q", out)
	}
}

func TestFoldAppliesInsideReturnAndCallArgs(t *testing.T) {
	out := foldSource(t, "function f() { return g(1 + 2 + x); }")
	if !strings.Contains(out, "3 + x") {
		t.Errorf("expected fold to reach nested call args, got %q", out)
	}
}

func TestFoldAdditionsSingleNode(t *testing.T) {
	n := &ast.Binary{Op: "+", Left: &ast.Num{Value: 1}, Right: &ast.Num{Value: 2}}
	var replaced ast.Node = n
	result, stopped := ast.Walk(replaced, visitFold)
	if stopped {
		t.Fatal("unexpected stop")
	}
	num, ok := result.(*ast.Num)
	if !ok || num.Value != 3 {
		t.Errorf("expected folded literal 3, got %#v", result)
	}
}
