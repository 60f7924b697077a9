package varelim

import (
	"fmt"

	"github.com/saruga/jsopt/internal/ast"
)

// MaxUses is the maximum use_count a used binding may have and still be
// eliminated; such a binding is eliminated only if no use observed a
// possibly mutated dependency (DepsMutatedInLiveRange unset). A binding
// with zero uses is always eliminable regardless of this constant.
// Exported so callers can trade inlining aggressiveness for safety
// margin.
var MaxUses = 1

// Eliminable reports whether b satisfies the elimination test (§4.5): it
// must be a pure, single-def local, and either never used or used at most
// MaxUses times with no intervening mutation of anything it depends on.
func Eliminable(b *Binding) bool {
	if !b.IsLocal || !b.IsSingleDef || !b.UsesOnlyPureNodes {
		return false
	}
	if b.UseCount == 0 {
		return true
	}
	return b.UseCount <= MaxUses && !b.DepsMutatedInLiveRange
}

func collectEliminable(t *Table) map[string]*Binding {
	out := make(map[string]*Binding)
	for _, name := range t.Order {
		b := t.Bindings[name]
		if Eliminable(b) {
			out[name] = b
		}
	}
	return out
}

// Rewrite applies the rewriter (§4.6) given a precomputed eliminable set:
// it removes the chosen declarations, collapses any initializer that
// itself references another eliminated binding to a fixed point, and
// substitutes every remaining use with a clone of the final value. It
// returns the number of bindings eliminated.
func Rewrite(t *Table, body []ast.Node, eliminable map[string]*Binding) int {
	if len(eliminable) == 0 {
		return 0
	}

	values := make(map[string]ast.Node, len(eliminable))
	for name, b := range eliminable {
		values[name] = ast.Clone(b.Initial)
	}

	collapseValues(values)
	removeDeclarations(body, eliminable)
	substituteUses(body, values)

	return len(eliminable)
}

// collapseValues rewrites every value in place so that any reference to
// another eliminated binding is replaced by that binding's own
// (similarly collapsed) value, iterating to a fixed point. Mutual
// initializer references among eliminated bindings are only possible if
// one of them directly reads its own name, which the single-def
// invariant rules out for well-formed input — collapseSubstitute panics
// if it ever sees one, rather than looping forever.
func collapseValues(values map[string]ast.Node) {
	for {
		changed := false
		for name, value := range values {
			newValue, didReplace := collapseSubstitute(value, values, name)
			if didReplace {
				values[name] = newValue
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func collapseSubstitute(n ast.Node, values map[string]ast.Node, selfName string) (ast.Node, bool) {
	replaced := false
	result, _ := ast.Walk(n, func(x ast.Node) (ast.Node, ast.Action) {
		name, ok := x.(*ast.Name)
		if !ok {
			return nil, ast.ActionContinue
		}
		if name.Value == selfName {
			panic(fmt.Sprintf("varelim: self-referential initializer collapse for %q — violates the single-def invariant", selfName))
		}
		if other, ok := values[name.Value]; ok {
			replaced = true
			return ast.Clone(other), ast.ActionReplace
		}
		return nil, ast.ActionContinue
	})
	return result, replaced
}

// removeDeclarations strips every eliminated binding's VarDef out of its
// enclosing var node, replacing the node with an empty placeholder
// statement if none remain.
func removeDeclarations(body []ast.Node, eliminable map[string]*Binding) {
	wrapper := &ast.Block{Body: body}
	ast.Walk(wrapper, skipNestedFunctions(func(n ast.Node) (ast.Node, ast.Action) {
		v, ok := n.(*ast.Var)
		if !ok {
			return nil, ast.ActionContinue
		}
		kept := v.Defs[:0]
		for _, def := range v.Defs {
			if _, dropped := eliminable[def.Name]; !dropped {
				kept = append(kept, def)
			}
		}
		v.Defs = kept
		if len(v.Defs) == 0 {
			return &ast.Empty{}, ast.ActionReplace
		}
		return nil, ast.ActionContinue
	}))
}

// substituteUses replaces every remaining reference to an eliminated
// binding with a clone of its collapsed value.
func substituteUses(body []ast.Node, values map[string]ast.Node) {
	wrapper := &ast.Block{Body: body}
	ast.Walk(wrapper, skipNestedFunctions(func(n ast.Node) (ast.Node, ast.Action) {
		name, ok := n.(*ast.Name)
		if !ok {
			return nil, ast.ActionContinue
		}
		if value, ok := values[name.Value]; ok {
			return ast.Clone(value), ast.ActionReplace
		}
		return nil, ast.ActionContinue
	}))
}
