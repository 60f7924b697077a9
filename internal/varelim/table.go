// Package varelim implements the post-pass variable-elimination optimizer:
// inlining single-use, single-assignment, pure local bindings at their use
// site and erasing the declarations they leave behind.
package varelim

import "github.com/saruga/jsopt/internal/ast"

// Binding records everything the analysis knows about one declared or
// referenced name within a single function body.
type Binding struct {
	Name string

	// Def points at the *ast.VarDef of the most recently scanned
	// declaration of this name, and is nil for a name that is never
	// declared. It identifies the one declaration only while IsSingleDef
	// holds; for a redeclared name it is just the last one seen.
	Def *ast.VarDef

	IsLocal     bool // declared by a var node somewhere in this body
	IsSingleDef bool // declared exactly once, never reassigned or incremented
	UseCount    int  // every `name` occurrence; the var declaration itself is not counted

	// Initial is this binding's initializer subtree, or a synthesized
	// Undefined() if it was declared without one. Meaningless for
	// bindings that are not IsSingleDef.
	Initial ast.Node

	UsesOnlyPureNodes      bool // set by AnalyzeInitializers
	DependsOnGlobal        bool // set by AnalyzeInitializers and Closure
	DepsMutatedInLiveRange bool // set by AnalyzeLiveRange

	declared bool // internal: has a var node for this name been scanned yet
}

// Table is the binding table built by Scan and enriched by the later
// analysis passes.
type Table struct {
	Bindings map[string]*Binding
	Order    []string // first-occurrence order, declaration or use alike

	// Affects is the dependency graph: Affects[x][y] is set when y's
	// initializer reads x. Closure saturates this map to its transitive
	// closure. Only single-def local bindings ever appear as a key on
	// the target side, but a source may be any name, local or not.
	Affects map[string]map[string]bool
}

func newTable() *Table {
	return &Table{Bindings: make(map[string]*Binding)}
}

// skipNestedFunctions wraps visit so *ast.Defun and *ast.Function are
// treated as opaque leaves: visit still sees the node itself, but its
// body is never descended into. Every pass that walks a function body
// (Scan, AnalyzeInitializers, and the rewriter's body-wide walks) uses
// this so a nested function's own locals never leak into the enclosing
// function's binding table, matching AnalyzeLiveRange's existing,
// documented opaque treatment of nested functions.
func skipNestedFunctions(visit ast.VisitFunc) ast.VisitFunc {
	return func(n ast.Node) (ast.Node, ast.Action) {
		switch n.(type) {
		case *ast.Defun, *ast.Function:
			if _, action := visit(n); action == ast.ActionStop {
				return nil, ast.ActionStop
			}
			return n, ast.ActionReplace
		}
		return visit(n)
	}
}

func (t *Table) get(name string) *Binding {
	b, ok := t.Bindings[name]
	if !ok {
		b = &Binding{Name: name, Initial: ast.Undefined()}
		t.Bindings[name] = b
		t.Order = append(t.Order, name)
	}
	return b
}

func (t *Table) addAffectsEdge(source, target string) {
	if t.Affects == nil {
		t.Affects = make(map[string]map[string]bool)
	}
	set, ok := t.Affects[source]
	if !ok {
		set = make(map[string]bool)
		t.Affects[source] = set
	}
	set[target] = true
}

// Scan performs the basic variable scan over a function body (§4.2): it
// walks every statement, building the binding table's declaration and
// use-count bookkeeping. It does not look at initializer purity or
// liveness — AnalyzeInitializers and AnalyzeLiveRange do that in later
// passes over the same table.
func Scan(body []ast.Node) *Table {
	t := newTable()
	wrapper := &ast.Block{Body: body}
	ast.Walk(wrapper, skipNestedFunctions(t.visitScan))
	return t
}

func (t *Table) visitScan(n ast.Node) (ast.Node, ast.Action) {
	switch x := n.(type) {
	case *ast.Var:
		for _, def := range x.Defs {
			t.declareVar(def)
		}

	case *ast.Name:
		t.get(x.Value).UseCount++

	case *ast.Assign:
		if name, ok := x.Left.(*ast.Name); ok {
			if b, exists := t.Bindings[name.Value]; exists {
				b.IsSingleDef = false
			}
		}

	case *ast.UnaryPrefix:
		if isIncDec(x.Op) {
			t.clearSingleDefOfName(x.X)
		}

	case *ast.UnaryPostfix:
		t.clearSingleDefOfName(x.X)
	}
	return nil, ast.ActionContinue
}

func isIncDec(op string) bool { return op == "++" || op == "--" }

func (t *Table) clearSingleDefOfName(n ast.Node) {
	if name, ok := n.(*ast.Name); ok {
		if b, exists := t.Bindings[name.Value]; exists {
			b.IsSingleDef = false
		}
	}
}

func (t *Table) declareVar(def *ast.VarDef) {
	name := def.Name
	_, existed := t.Bindings[name]
	b := t.get(name)

	initial := def.Value
	if initial == nil {
		initial = ast.Undefined()
	}
	b.Initial = initial
	b.Def = def
	b.IsLocal = true

	switch {
	case !b.declared && !existed:
		// first-ever sighting of this name, and it's a declaration:
		// eligible for single-def.
		b.IsSingleDef = true
	default:
		// either a redeclaration, or the name was already in the
		// table from a use that preceded this declaration — neither
		// is eliminable.
		b.IsSingleDef = false
	}
	b.declared = true
}
