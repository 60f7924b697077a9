package printer

import (
	"strings"
	"testing"

	"github.com/saruga/jsopt/internal/ast"
	"github.com/saruga/jsopt/internal/parser"
)

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var b strings.Builder
	for _, child := range prog.Body {
		b.WriteString(Print(child))
	}
	return b.String()
}

func TestPrintPreservesAdditionAssociativity(t *testing.T) {
	out := roundTrip(t, "var a = x - (y - z);")
	if !strings.Contains(out, "x - (y - z)") {
		t.Errorf("expected parens preserved around right operand, got %q", out)
	}
}

func TestPrintDropsUnnecessaryParens(t *testing.T) {
	out := roundTrip(t, "var a = (x + y) + z;")
	if strings.Contains(out, "(") {
		t.Errorf("expected no parens for left-associative chain, got %q", out)
	}
}

func TestPrintMemberAccessUsesDotForIdentLikeProperty(t *testing.T) {
	out := roundTrip(t, "x.y = 1;")
	if !strings.Contains(out, "x.y") {
		t.Errorf("expected dot-form member access, got %q", out)
	}
}

func TestPrintBinaryMultiplicationHigherThanAddition(t *testing.T) {
	out := roundTrip(t, "var a = (x + y) * z;")
	if !strings.Contains(out, "(x + y) * z") {
		t.Errorf("expected parens around lower-precedence left operand, got %q", out)
	}
}

func TestPrintCallChain(t *testing.T) {
	out := roundTrip(t, "f()();")
	if !strings.Contains(out, "f()()") {
		t.Errorf("expected chained call, got %q", out)
	}
}

func TestPrintIfWithoutBraces(t *testing.T) {
	out := roundTrip(t, "if (x) a(); else b();")
	if !strings.Contains(out, "if (x) a();") {
		t.Errorf("unexpected if rendering: %q", out)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	in := "a\n\n\n\nb\n\nc"
	got := CollapseBlankLines(in)
	want := "a\n\nb\n\nc"
	if got != want {
		t.Errorf("CollapseBlankLines() = %q, want %q", got, want)
	}
}

func TestPrintTopLevelChildrenOnePerElement(t *testing.T) {
	prog, err := parser.ParseString("var a = 1; var b = 2;")
	if err != nil {
		t.Fatal(err)
	}
	children := PrintTopLevelChildren(prog)
	if len(children) != 2 {
		t.Fatalf("expected 2 printed children, got %d", len(children))
	}
	if !strings.Contains(children[0], "a = 1") || !strings.Contains(children[1], "b = 2") {
		t.Errorf("unexpected children: %v", children)
	}
}

func TestPrintNumberFormatting(t *testing.T) {
	out := Print(&ast.Var{Defs: []*ast.VarDef{{Name: "a", Value: &ast.Num{Value: 3}}}})
	if !strings.Contains(out, "a = 3") || strings.Contains(out, "3.0") {
		t.Errorf("unexpected integer formatting: %q", out)
	}
	out2 := Print(&ast.Var{Defs: []*ast.VarDef{{Name: "a", Value: &ast.Num{Value: 1.5}}}})
	if !strings.Contains(out2, "1.5") {
		t.Errorf("unexpected float formatting: %q", out2)
	}
}
