package varelim

import "github.com/saruga/jsopt/internal/ast"

// liveSet tracks which single-def bindings are currently live: declared
// and not yet invalidated by an intervening mutation. Absence means dead;
// every present key is implicitly true.
type liveSet map[string]bool

func snapshot(l liveSet) liveSet {
	out := make(liveSet, len(l))
	for k := range l {
		out[k] = true
	}
	return out
}

// intersect keeps only the names live in every one of sets — the
// join-on-merge rule used at the far side of if/switch/try branches.
func intersect(sets ...liveSet) liveSet {
	if len(sets) == 0 {
		return liveSet{}
	}
	out := snapshot(sets[0])
	for _, s := range sets[1:] {
		for k := range out {
			if !s[k] {
				delete(out, k)
			}
		}
	}
	return out
}

// AnalyzeLiveRange runs the live-range mutation analyzer (§4.5) over a
// function body, setting DepsMutatedInLiveRange on every binding in t
// whose recorded value may no longer match what a later use would read.
func AnalyzeLiveRange(t *Table, body []ast.Node) {
	a := &liveRangeAnalyzer{t: t}
	a.stmts(body, liveSet{})
}

type liveRangeAnalyzer struct {
	t *Table
}

func (a *liveRangeAnalyzer) stmts(body []ast.Node, l liveSet) liveSet {
	for _, s := range body {
		l = a.visit(s, l)
	}
	return l
}

// visit is the structured, block-aware traversal at the heart of the live
// range analyzer: every node kind gets its own effect on l before (and,
// for compound nodes, while) recursing into its children.
func (a *liveRangeAnalyzer) visit(n ast.Node, l liveSet) liveSet {
	if n == nil {
		return l
	}
	switch x := n.(type) {
	case *ast.Block:
		return a.stmts(x.Body, l)

	case *ast.ExprStatement:
		return a.visit(x.X, l)

	case *ast.Var:
		for _, def := range x.Defs {
			if def.Value != nil {
				l = a.visit(def.Value, l)
			}
			if b, ok := a.t.Bindings[def.Name]; ok && b.IsSingleDef {
				l[def.Name] = true
			}
			l = a.killDependents(def.Name, l)
		}
		return l

	case *ast.If:
		l = a.visit(x.Cond, l)
		thenL := a.visit(x.Then, snapshot(l))
		var elseL liveSet
		if x.Else != nil {
			elseL = a.visit(x.Else, snapshot(l))
		} else {
			elseL = snapshot(l)
		}
		return intersect(thenL, elseL)

	case *ast.Switch:
		l = a.visit(x.Disc, l)
		if len(x.Cases) == 0 {
			return l
		}
		branches := make([]liveSet, 0, len(x.Cases))
		for _, c := range x.Cases {
			b := snapshot(l)
			if c.Test != nil {
				b = a.visit(c.Test, b)
			}
			b = a.stmts(c.Body, b)
			branches = append(branches, b)
		}
		return intersect(branches...)

	case *ast.Try:
		branches := []liveSet{a.stmts(x.Body, snapshot(l))}
		if x.Catch != nil {
			branches = append(branches, a.stmts(x.Catch.Body, snapshot(l)))
		}
		result := intersect(branches...)
		if x.Finally != nil {
			result = a.stmts(x.Finally, result)
		}
		return result

	case *ast.Do:
		return a.loop(l, func(inner liveSet) liveSet {
			inner = a.visit(x.Body, inner)
			return a.visit(x.Cond, inner)
		})

	case *ast.While:
		return a.loop(l, func(inner liveSet) liveSet {
			inner = a.visit(x.Cond, inner)
			return a.visit(x.Body, inner)
		})

	case *ast.For:
		return a.loop(l, func(inner liveSet) liveSet {
			inner = a.visit(x.Init, inner)
			inner = a.visit(x.Cond, inner)
			inner = a.visit(x.Step, inner)
			return a.visit(x.Body, inner)
		})

	case *ast.ForIn:
		return a.loop(l, func(inner liveSet) liveSet {
			if x.Init != nil && x.Init.Kind() != ast.KindVar {
				inner = a.visit(x.Init, inner)
			}
			inner = a.visit(x.Object, inner)
			return a.visit(x.Body, inner)
		})

	case *ast.Return:
		return a.visit(x.Value, l)

	case *ast.Throw:
		return a.controlFlowNode(x, l, func(l liveSet) liveSet {
			return a.visit(x.Value, l)
		})

	case *ast.Call:
		return a.controlFlowNode(x, l, func(l liveSet) liveSet {
			l = a.visit(x.Func, l)
			for _, arg := range x.Args {
				l = a.visit(arg, l)
			}
			return l
		})

	case *ast.New:
		return a.controlFlowNode(x, l, func(l liveSet) liveSet {
			l = a.visit(x.Func, l)
			for _, arg := range x.Args {
				l = a.visit(arg, l)
			}
			return l
		})

	case *ast.Label:
		return a.controlFlowNode(x, l, func(l liveSet) liveSet {
			return a.visit(x.Body, l)
		})

	case *ast.Debugger:
		return a.controlFlowNode(x, l, func(l liveSet) liveSet { return l })

	case *ast.Assign:
		l = a.visit(x.Right, l)
		l = a.visit(x.Left, l)
		if base, ok := baseName(x.Left); ok {
			l = a.killDependents(base, l)
		}
		return a.killGlobalDependentsUnlessUsed(x, l)

	case *ast.UnaryPrefix:
		l = a.visit(x.X, l)
		if isIncDec(x.Op) {
			if base, ok := baseName(x.X); ok {
				l = a.killDependents(base, l)
			}
		}
		return l

	case *ast.UnaryPostfix:
		l = a.visit(x.X, l)
		if base, ok := baseName(x.X); ok {
			l = a.killDependents(base, l)
		}
		return l

	case *ast.Binary:
		l = a.visit(x.Left, l)
		return a.visit(x.Right, l)

	case *ast.Sub:
		l = a.visit(x.Expr, l)
		return a.visit(x.Property, l)

	case *ast.Name:
		if x.Value == "undefined" {
			return l
		}
		if b, ok := a.t.Bindings[x.Value]; ok && b.IsSingleDef {
			if !l[x.Value] {
				b.DepsMutatedInLiveRange = true
			}
		}
		return l

	case *ast.Num, *ast.String, *ast.Break, *ast.Continue, *ast.Empty:
		return l

	case *ast.Defun, *ast.Function:
		// A nested function is not analyzed as part of this body — the
		// optimizer is intra-procedural (§ Non-goals) — and merely
		// defining one has no effect on liveness here.
		return l

	default:
		panic("varelim: unexpected node kind in live-range analysis")
	}
}

// loop implements the loop-boundary rule: L is reset to empty before
// entering any loop construct and reset to empty after exit, regardless
// of what runs inside it. No binding live before a loop may be assumed
// live inside it, and nothing that becomes live inside escapes — this
// also intentionally treats the whole header (init/cond/step) and body as
// a single iteration, never modeling the back edge.
func (a *liveRangeAnalyzer) loop(outer liveSet, body func(liveSet) liveSet) liveSet {
	body(liveSet{})
	return liveSet{}
}

// controlFlowNode applies the shared kill rule for new/throw/call/label/
// debugger (§4.5): a live binding survives only if it does not depend on
// a global and is syntactically referenced somewhere inside n, then
// recurses into n's children via recurse.
func (a *liveRangeAnalyzer) controlFlowNode(n ast.Node, l liveSet, recurse func(liveSet) liveSet) liveSet {
	names := ast.NamesIn(n)
	for y := range l {
		b := a.t.Bindings[y]
		if b.DependsOnGlobal || !names[y] {
			delete(l, y)
		}
	}
	return recurse(l)
}

// killGlobalDependentsUnlessUsed implements the assign node's extra rule:
// beyond killing dependents of the assigned name, any live binding that
// depends on a global is also killed unless this very statement
// references it.
func (a *liveRangeAnalyzer) killGlobalDependentsUnlessUsed(n ast.Node, l liveSet) liveSet {
	names := ast.NamesIn(n)
	for y := range l {
		b := a.t.Bindings[y]
		if b.DependsOnGlobal && !names[y] {
			delete(l, y)
		}
	}
	return l
}

// killDependents removes from l every binding the (already closed)
// affects graph says depends on name — used both when name is declared
// (§4.5's var rule) and when it is mutated by assignment or ++/--.
func (a *liveRangeAnalyzer) killDependents(name string, l liveSet) liveSet {
	for target := range a.t.Affects[name] {
		delete(l, target)
	}
	return l
}

// baseName walks down a subscript chain to the name at its root, e.g.
// HEAP32[x] -> "HEAP32". Returns ok=false for anything else (a call
// result, a literal, ...), which cannot be an assignment or increment
// target resolving to a known binding in well-formed input.
func baseName(n ast.Node) (string, bool) {
	for {
		switch x := n.(type) {
		case *ast.Name:
			return x.Value, true
		case *ast.Sub:
			n = x.Expr
		default:
			return "", false
		}
	}
}
