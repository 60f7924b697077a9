package ast

// Action tells Walk what to do after an observer has looked at a node.
type Action int

const (
	// ActionContinue means: keep the node as-is and recurse into its
	// children.
	ActionContinue Action = iota
	// ActionReplace means: splice the returned node into the parent slot
	// and do not recurse into it this round.
	ActionReplace
	// ActionStop aborts the whole traversal immediately.
	ActionStop
)

// VisitFunc observes a node during a Walk. It returns a replacement node
// (only meaningful when action is ActionReplace) and the action to take.
type VisitFunc func(n Node) (replacement Node, action Action)

// Walk performs a pre-order traversal of root, calling visit on every
// node reached. Each child slot that holds a node is visited recursively
// after its parent; if a visit call returns ActionReplace, the returned
// subtree is installed in the slot in place of the original and is not
// itself descended into. If any visit call returns ActionStop, the whole
// traversal aborts and Walk returns stopped=true.
//
// One exception: inside a for-in node, the Init slot is skipped entirely
// when it holds a *Var — the iterated binding is opaque to every pass.
func Walk(root Node, visit VisitFunc) (result Node, stopped bool) {
	if root == nil {
		return nil, false
	}
	replacement, action := visit(root)
	switch action {
	case ActionStop:
		return root, true
	case ActionReplace:
		return replacement, false
	}
	if walkChildren(root, visit) {
		return root, true
	}
	return root, false
}

// visitSlot walks *slot in place, overwriting it with any replacement.
// It reports whether the traversal was aborted.
func visitSlot(slot *Node, visit VisitFunc) bool {
	if slot == nil || *slot == nil {
		return false
	}
	result, stopped := Walk(*slot, visit)
	if stopped {
		return true
	}
	*slot = result
	return false
}

// visitList walks every element of list in place.
func visitList(list []Node, visit VisitFunc) bool {
	for i := range list {
		if visitSlot(&list[i], visit) {
			return true
		}
	}
	return false
}

func walkChildren(n Node, visit VisitFunc) (stopped bool) {
	switch x := n.(type) {
	case *Toplevel:
		return visitList(x.Body, visit)

	case *Defun:
		return visitList(x.Body, visit)

	case *Function:
		return visitList(x.Body, visit)

	case *Block:
		return visitList(x.Body, visit)

	case *Var:
		for _, def := range x.Defs {
			if def.Value == nil {
				continue
			}
			if visitSlot(&def.Value, visit) {
				return true
			}
		}
		return false

	case *ExprStatement:
		return visitSlot(&x.X, visit)

	case *If:
		if visitSlot(&x.Cond, visit) {
			return true
		}
		if visitSlot(&x.Then, visit) {
			return true
		}
		return visitSlot(&x.Else, visit)

	case *Switch:
		if visitSlot(&x.Disc, visit) {
			return true
		}
		for _, c := range x.Cases {
			if c.Test != nil {
				if visitSlot(&c.Test, visit) {
					return true
				}
			}
			if visitList(c.Body, visit) {
				return true
			}
		}
		return false

	case *Try:
		if visitList(x.Body, visit) {
			return true
		}
		if x.Catch != nil {
			if visitList(x.Catch.Body, visit) {
				return true
			}
		}
		return visitList(x.Finally, visit)

	case *Do:
		if visitSlot(&x.Body, visit) {
			return true
		}
		return visitSlot(&x.Cond, visit)

	case *While:
		if visitSlot(&x.Cond, visit) {
			return true
		}
		return visitSlot(&x.Body, visit)

	case *For:
		if visitSlot(&x.Init, visit) {
			return true
		}
		if visitSlot(&x.Cond, visit) {
			return true
		}
		if visitSlot(&x.Step, visit) {
			return true
		}
		return visitSlot(&x.Body, visit)

	case *ForIn:
		if x.Init != nil && x.Init.Kind() != KindVar {
			if visitSlot(&x.Init, visit) {
				return true
			}
		}
		if visitSlot(&x.Object, visit) {
			return true
		}
		return visitSlot(&x.Body, visit)

	case *Return:
		return visitSlot(&x.Value, visit)

	case *Throw:
		return visitSlot(&x.Value, visit)

	case *Label:
		return visitSlot(&x.Body, visit)

	case *Binary:
		if visitSlot(&x.Left, visit) {
			return true
		}
		return visitSlot(&x.Right, visit)

	case *UnaryPrefix:
		return visitSlot(&x.X, visit)

	case *UnaryPostfix:
		return visitSlot(&x.X, visit)

	case *Sub:
		if visitSlot(&x.Expr, visit) {
			return true
		}
		return visitSlot(&x.Property, visit)

	case *Assign:
		if visitSlot(&x.Left, visit) {
			return true
		}
		return visitSlot(&x.Right, visit)

	case *Call:
		if visitSlot(&x.Func, visit) {
			return true
		}
		return visitList(x.Args, visit)

	case *New:
		if visitSlot(&x.Func, visit) {
			return true
		}
		return visitList(x.Args, visit)

	case *Name, *Num, *String, *Break, *Continue, *Debugger, *Empty:
		return false

	default:
		panic(fmtUnexpectedKind(n))
	}
}
