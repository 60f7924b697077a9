package ast

// PureInitializerKind reports whether k is one of the node kinds the
// specification allows inside a pure initializer: name, num, string,
// binary, sub, unary-prefix. These cannot, in the generated-code dialect
// this optimizer targets, issue a call, construct, throw, or reassign.
//
// unary-prefix is included only because the generator this tool targets
// never emits `++x`/`--x` in initializer position — if that assumption
// stops holding for a given input dialect, this set needs to shrink to
// exclude the increment/decrement prefix operators specifically.
func PureInitializerKind(k Kind) bool {
	switch k {
	case KindName, KindNum, KindString, KindBinary, KindSub, KindUnaryPrefix:
		return true
	default:
		return false
	}
}

// UsesOnlyPureNodes walks n and reports whether every node in it is of a
// pure-initializer kind. A nil n (no initializer) is vacuously pure —
// callers should synthesize Undefined() for such cases before calling
// this, but an untouched nil is harmless too.
func UsesOnlyPureNodes(n Node) bool {
	if n == nil {
		return true
	}
	pure := true
	Walk(n, func(x Node) (Node, Action) {
		if !pure {
			return nil, ActionStop
		}
		if !PureInitializerKind(x.Kind()) {
			pure = false
			return nil, ActionStop
		}
		return nil, ActionContinue
	})
	return pure
}

// FreeNames walks n and returns every distinct name it reads, in
// first-encounter order, excluding the synthetic "undefined" literal.
func FreeNames(n Node) []string {
	if n == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	Walk(n, func(x Node) (Node, Action) {
		if name, ok := x.(*Name); ok && name.Value != "undefined" {
			if !seen[name.Value] {
				seen[name.Value] = true
				names = append(names, name.Value)
			}
		}
		return nil, ActionContinue
	})
	return names
}

// NamesIn walks n and returns the set of distinct names syntactically
// appearing inside it (including "undefined", unlike FreeNames — callers
// that need to exclude it should do so themselves). Used by the
// live-range analyzer to decide whether a binding is referenced inside a
// control-flow statement.
func NamesIn(n Node) map[string]bool {
	names := make(map[string]bool)
	if n == nil {
		return names
	}
	Walk(n, func(x Node) (Node, Action) {
		if name, ok := x.(*Name); ok {
			names[name.Value] = true
		}
		return nil, ActionContinue
	})
	return names
}
