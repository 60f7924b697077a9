package varelim

import "github.com/saruga/jsopt/internal/ast"

// AnalyzeInitializers performs the initializer analysis (§4.3): for every
// single-def binding, it checks whether the initializer is built entirely
// from pure node kinds and records an edge in the affects graph for every
// name the initializer reads, marking the binding as depending on a global
// whenever one of those names is not itself a local.
func AnalyzeInitializers(t *Table) {
	for _, name := range t.Order {
		b := t.Bindings[name]
		if !b.IsSingleDef {
			continue
		}
		analyzeInitializer(t, b)
	}
}

func analyzeInitializer(t *Table, b *Binding) {
	b.UsesOnlyPureNodes = true
	ast.Walk(b.Initial, skipNestedFunctions(func(n ast.Node) (ast.Node, ast.Action) {
		if !ast.PureInitializerKind(n.Kind()) {
			b.UsesOnlyPureNodes = false
		}
		if name, ok := n.(*ast.Name); ok && name.Value != "undefined" {
			t.addAffectsEdge(name.Value, b.Name)
			src, exists := t.Bindings[name.Value]
			if !exists || !src.IsLocal {
				b.DependsOnGlobal = true
			}
		}
		return nil, ast.ActionContinue
	}))
}
